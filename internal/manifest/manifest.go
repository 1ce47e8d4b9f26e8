// Package manifest serves the /.well-known/farcaster.json document the host
// client reads when the app is installed as a frame.
package manifest

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Signed for the production domain; only valid there.
var association = AccountAssociation{
	Header:    "eyJmaWQiOjE5MjMwMCwidHlwZSI6ImN1c3RvZHkiLCJrZXkiOiIweDM3MzdFMzU3Y2NhZGMyN2I5NTU1NGIzMGM1OEI5RTFmMzMwNjRjMUYifQ",
	Payload:   "eyJkb21haW4iOiJteS1maXJzdC1taW5pLWFwcC52ZXJjZWwuYXBwIn0",
	Signature: "MHgzMjgyOTIyY2U5ZmNlMThiNDFhNWM2MjM2YWNhZDI5NjNmOGMyNTg4ODFhYjNlOTU0MzJiYjdlY2U2OTRjYzIwMzdjZWU5M2M3NTY2YjU0NDUyNTBiNTUzMGZjMGZlZTgzNzM3YzQxYTZkNjAxMTJjZTdhODFhMWFjYzhjOWU4ZTFi",
}

type AccountAssociation struct {
	Header    string `json:"header"`
	Payload   string `json:"payload"`
	Signature string `json:"signature"`
}

type Frame struct {
	Version               string `json:"version"`
	Name                  string `json:"name"`
	HomeURL               string `json:"homeUrl"`
	IconURL               string `json:"iconUrl"`
	ImageURL              string `json:"imageUrl"`
	ButtonTitle           string `json:"buttonTitle"`
	SplashImageURL        string `json:"splashImageUrl"`
	SplashBackgroundColor string `json:"splashBackgroundColor"`
	WebhookURL            string `json:"webhookUrl"`
}

type Trigger struct {
	Type string `json:"type"`
	ID   string `json:"id"`
	URL  string `json:"url"`
	Name string `json:"name"`
}

type Manifest struct {
	AccountAssociation AccountAssociation `json:"accountAssociation"`
	Frame              Frame              `json:"frame"`
	Triggers           []Trigger          `json:"triggers"`
}

// Build derives every URL from appURL, which has no trailing slash.
func Build(appURL string) Manifest {
	splash := appURL + "/splash.png"
	return Manifest{
		AccountAssociation: association,
		Frame: Frame{
			Version:               "1",
			Name:                  "Vibe projects",
			HomeURL:               appURL,
			IconURL:               splash,
			ImageURL:              splash,
			ButtonTitle:           "Launch app",
			SplashImageURL:        splash,
			SplashBackgroundColor: "#FFFFFF",
			WebhookURL:            appURL + "/api/webhook",
		},
		Triggers: []Trigger{
			{Type: "cast", ID: "view-app", URL: appURL, Name: "View minikit-test"},
		},
	}
}

// Handler returns the manifest for appURL on every request.
func Handler(appURL string) gin.HandlerFunc {
	m := Build(appURL)
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, m)
	}
}
