// Package identity resolves wallet addresses and fids to Farcaster profiles
// through the Neynar API.
package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultTimeout = 10 * time.Second

var (
	ErrNotConfigured = errors.New("neynar api key not configured")
	ErrUserNotFound  = errors.New("farcaster user not found")
)

// User is the subset of the Neynar user object we read.
type User struct {
	FID         int64  `json:"fid"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	PfpURL      string `json:"pfp_url"`
}

// Profile is a resolved user. Found is false for the placeholder returned
// when the API cannot answer.
type Profile struct {
	FID         int64
	Username    string
	DisplayName string
	PfpURL      string
	Found       bool
}

type NeynarClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewNeynarClient(baseURL, apiKey string) *NeynarClient {
	return &NeynarClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// Configured reports whether an API key is set.
func (c *NeynarClient) Configured() bool {
	return c.apiKey != ""
}

// UserByFID never fails on API errors: it returns a placeholder profile
// with Found set to false instead.
func (c *NeynarClient) UserByFID(ctx context.Context, fid int64) (*Profile, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}
	if fid == 0 {
		return nil, ErrUserNotFound
	}

	placeholder := &Profile{
		FID:         fid,
		Username:    fmt.Sprintf("fid:%d", fid),
		DisplayName: fmt.Sprintf("Farcaster User %d", fid),
	}

	var out struct {
		Users []User `json:"users"`
	}
	q := url.Values{"fids": {strconv.FormatInt(fid, 10)}}
	if err := c.get(ctx, "/v2/farcaster/user/bulk", q, &out); err != nil || len(out.Users) == 0 {
		return placeholder, nil
	}
	return toProfile(out.Users[0]), nil
}

// UserByAddress looks up the first account verified for address.
func (c *NeynarClient) UserByAddress(ctx context.Context, address string) (*Profile, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, ErrUserNotFound
	}

	// Response is keyed by lower-cased address.
	var out map[string][]User
	q := url.Values{"addresses": {address}}
	if err := c.get(ctx, "/v2/farcaster/user/bulk-by-address", q, &out); err != nil {
		return nil, err
	}

	users := out[strings.ToLower(address)]
	if len(users) == 0 {
		return nil, ErrUserNotFound
	}
	return toProfile(users[0]), nil
}

// SearchByVerification lists users with a verified address.
func (c *NeynarClient) SearchByVerification(ctx context.Context, address string) ([]User, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	var out struct {
		Users []User `json:"users"`
	}
	q := url.Values{"address": {address}}
	if err := c.get(ctx, "/v2/farcaster/user/search-by-verification", q, &out); err != nil {
		return nil, err
	}
	return out.Users, nil
}

func (c *NeynarClient) get(ctx context.Context, path string, q url.Values, into any) error {
	reqURL := c.baseURL + path + "?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("api_key", c.apiKey)
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("neynar request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("neynar API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(into); err != nil {
		return fmt.Errorf("decode JSON: %w", err)
	}
	return nil
}

func toProfile(u User) *Profile {
	display := u.DisplayName
	if display == "" {
		display = u.Username
	}
	return &Profile{
		FID:         u.FID,
		Username:    u.Username,
		DisplayName: display,
		PfpURL:      u.PfpURL,
		Found:       true,
	}
}
