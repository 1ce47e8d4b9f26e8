// Package domain holds the push-notification vocabulary shared by the
// token store, the frame client and the broadcaster.
package domain

import "errors"

var ErrTokenNotFound = errors.New("notification token not found")

// Details is what the host client hands us when a user adds the frame.
type Details struct {
	URL   string `json:"url"`
	Token string `json:"token"`
}

// Registration binds Details to the user's social id. FID 0 means unknown.
type Registration struct {
	FID     int64
	Details Details
}

// Result is the delivery outcome of a single frame notification.
type Result string

const (
	ResultSuccess      Result = "success"
	ResultInvalidToken Result = "invalid_token"
	ResultRateLimit    Result = "rate_limit"
	ResultError        Result = "error"
)

// Stats tallies a broadcast.
type Stats struct {
	Total      int `json:"total"`
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
}

// Message is one entry of the notification log.
type Message struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	URL   string `json:"url"`
	Token string `json:"token"`
}
