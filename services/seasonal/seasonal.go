// Package seasonal selects the curated campaign collection for the
// current date. Campaign windows never overlap.
package seasonal

import (
	"fmt"
	"time"

	"simplstream/models"
)

type window struct {
	startMonth time.Month
	startDay   int
	endMonth   time.Month
	endDay     int
	campaign   models.SeasonalCampaign
}

// Windows are half open: a date matches from the start day up to but not
// including the end day. Windows crossing no year boundary compare
// month-day pairs directly.
var windows = []window{
	{
		startMonth: time.October, startDay: 6,
		endMonth: time.November, endDay: 2,
		campaign: halloween,
	},
	{
		startMonth: time.November, startDay: 12,
		endMonth: time.December, endDay: 27,
		campaign: christmas,
	},
	{
		startMonth: time.February, startDay: 1,
		endMonth: time.February, endDay: 21,
		campaign: valentines,
	},
	{
		startMonth: time.June, startDay: 1,
		endMonth: time.July, endDay: 1,
		campaign: summer,
	},
}

// CampaignFor returns the campaign active on the given date, or nil when
// no window matches.
func CampaignFor(t time.Time) *models.SeasonalCampaign {
	month, day := t.Month(), t.Day()
	key := int(month)*100 + day

	for _, w := range windows {
		start := int(w.startMonth)*100 + w.startDay
		end := int(w.endMonth)*100 + w.endDay
		if key >= start && key < end {
			campaign := w.campaign
			return &campaign
		}
	}
	return nil
}

// DayBucket collapses a time to a month-day string used to show a
// campaign at most once per calendar day.
func DayBucket(t time.Time) string {
	return fmt.Sprintf("%d-%d", int(t.Month()), t.Day())
}

var halloween = models.SeasonalCampaign{
	Key:         "halloween",
	Title:       "🎃 Halloween Special",
	Description: "Spooky season is here! The SimplStream Team picked these frightfully fun favorites for you.",
	Gradient:    "linear-gradient(135deg, #f97316 0%, #7c2d12 100%)",
	Items: []models.SeasonalItem{
		{TMDBID: 14836, Title: "Coraline", Year: "2009", PosterPath: "/4jeFXQYytChdZYE9JYO7Un87IlW.jpg"},
		{TMDBID: 620, Title: "Ghostbusters", Year: "1984", PosterPath: "/3FS3oBdrgfBXNNEMWB3m6CmMFyQ.jpg"},
		{TMDBID: 9479, Title: "The Nightmare Before Christmas", Year: "1993", PosterPath: "/aEUMAoGvZHt16fF7Uh8ULxWzPLv.jpg"},
	},
}

var christmas = models.SeasonalCampaign{
	Key:         "christmas",
	Title:       "🎄 Christmas Magic",
	Description: "Cozy up for the holidays! Festive classics hand picked by the SimplStream Team.",
	Gradient:    "linear-gradient(135deg, #dc2626 0%, #14532d 100%)",
	Items: []models.SeasonalItem{
		{TMDBID: 771, Title: "Home Alone", Year: "1990", PosterPath: "/onTSipZ8R3bliBdKfPtsDuHTdlL.jpg"},
		{TMDBID: 8871, Title: "How the Grinch Stole Christmas", Year: "2000", PosterPath: "/1TiO4N6OhFfYJGJXy25EwYMC6O7.jpg"},
		{TMDBID: 5255, Title: "The Polar Express", Year: "2004", PosterPath: "/aqjKHvM8zpHtSJhfx81JHfPD8U5.jpg"},
		{TMDBID: 508965, Title: "Klaus", Year: "2019", PosterPath: "/q125RHUDgR4gjwh1QkfYuJLYkL3.jpg"},
	},
}

var valentines = models.SeasonalCampaign{
	Key:         "valentines",
	Title:       "💕 Valentine's Romance",
	Description: "Love is in the air! Heartwarming picks from the SimplStream Team.",
	Gradient:    "linear-gradient(135deg, #ec4899 0%, #831843 100%)",
	Items: []models.SeasonalItem{
		{TMDBID: 4523, Title: "Enchanted", Year: "2007", PosterPath: "/fXFJSRbjKhKHQwwNhZXjqfNpJtd.jpg"},
		{TMDBID: 10681, Title: "WALL-E", Year: "2008", PosterPath: "/hbhFnRzzg6ZDmm8YAmxBnQpQIPh.jpg"},
		{TMDBID: 2493, Title: "The Princess Bride", Year: "1987", PosterPath: "/gpxjoE0yvRwIhFEJgNArtKtaN7S.jpg"},
	},
}

var summer = models.SeasonalCampaign{
	Key:         "summer",
	Title:       "☀️ Summer Vibes",
	Description: "School's out! Sunny adventures picked by the SimplStream Team.",
	Gradient:    "linear-gradient(135deg, #eab308 0%, #0ea5e9 100%)",
	Items: []models.SeasonalItem{
		{TMDBID: 12, Title: "Finding Nemo", Year: "2003", PosterPath: "/eHuGQ10FUzK1mdOY69wF5pGgEf5.jpg"},
		{TMDBID: 277834, Title: "Moana", Year: "2016", PosterPath: "/4JeejGugONWpJkbnvL12hVoYEDa.jpg"},
		{TMDBID: 862, Title: "Toy Story", Year: "1995", PosterPath: "/uXDfjJbdP4ijW5hWSBrPrlKpxab.jpg"},
	},
}
