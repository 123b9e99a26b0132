package handlers

import (
	"simplstream/services/preferences"
	"simplstream/services/ratings"
	"simplstream/services/watchlist"
)

// DataRemover fans profile data removal out to the individual stores.
type DataRemover struct {
	Watchlist   *watchlist.Service
	Ratings     *ratings.Service
	Preferences *preferences.Service
}

var _ profileDataRemover = DataRemover{}

func (d DataRemover) ClearWatchlist(profileID string) error {
	return d.Watchlist.Clear(profileID)
}

func (d DataRemover) ClearHistory(profileID string) error {
	return d.Ratings.Clear(profileID)
}

func (d DataRemover) ClearSearchHistory(profileID string) error {
	return d.Preferences.ClearSearchHistory(profileID)
}

func (d DataRemover) ClearPreferences(profileID string) error {
	return d.Preferences.Clear(profileID)
}
