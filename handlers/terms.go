package handlers

import "net/http"

type termsSection struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

type termsDocument struct {
	Title         string         `json:"title"`
	EffectiveDate string         `json:"effectiveDate"`
	Sections      []termsSection `json:"sections"`
}

var terms = termsDocument{
	Title:         "Terms and Conditions",
	EffectiveDate: "October 2025",
	Sections: []termsSection{
		{
			Heading: "1. Introduction",
			Body:    "Welcome to SimplStream. By accessing or using the service you agree to be bound by these terms. If you do not agree, do not use the service.",
		},
		{
			Heading: "2. Ownership and Intellectual Property",
			Body:    "The SimplStream application, its design and its source code are the property of the SimplStream Team. Title metadata and artwork are provided by third parties and remain the property of their respective owners.",
		},
		{
			Heading: "3. Content Disclaimer",
			Body:    "SimplStream does not host, store or distribute any media content. The service aggregates publicly available metadata about films and television shows for informational purposes only.",
		},
		{
			Heading: "4. Privacy and Data Protection",
			Body:    "Profile data including watchlists, ratings and viewing history is stored locally on your own server and is never transmitted to third parties. Optional profile PINs are stored as salted hashes. Search history collection can be disabled per profile at any time.",
		},
		{
			Heading: "5. User Responsibilities",
			Body:    "You are responsible for maintaining the security of your installation and for ensuring that your use of the service complies with the laws of your jurisdiction.",
		},
		{
			Heading: "6. DMCA and Copyright Infringement",
			Body:    "SimplStream respects the intellectual property rights of others. Because the service hosts no media content, takedown requests should be directed at the parties hosting the content in question.",
		},
		{
			Heading: "7. Changes to These Terms",
			Body:    "The SimplStream Team may revise these terms from time to time. Continued use of the service after changes take effect constitutes acceptance of the revised terms.",
		},
	},
}

// Terms serves the static terms and conditions document.
func Terms(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, terms)
}
