package identity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibe-directory/vibe-backend/internal/logging"
)

const addr = "0xAbCdEf0000000000000000000000000000000001"

// fakeNeynar serves canned bodies per path and checks the key headers.
func fakeNeynar(t *testing.T, routes map[string]string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("api_key"))
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))

		body, ok := routes[r.URL.Path]
		if !ok {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestUserByFID(t *testing.T) {
	server := fakeNeynar(t, map[string]string{
		"/v2/farcaster/user/bulk": `{"users":[{"fid":192300,"username":"chrislarsc.eth","display_name":"","pfp_url":"https://img"}]}`,
	})
	c := NewNeynarClient(server.URL, "test-key")

	p, err := c.UserByFID(context.Background(), 192300)
	require.NoError(t, err)
	assert.True(t, p.Found)
	assert.Equal(t, "chrislarsc.eth", p.Username)
	assert.Equal(t, "chrislarsc.eth", p.DisplayName)
	assert.Equal(t, "https://img", p.PfpURL)
}

func TestUserByFID_PlaceholderOnAPIError(t *testing.T) {
	server := fakeNeynar(t, nil)
	c := NewNeynarClient(server.URL, "test-key")

	p, err := c.UserByFID(context.Background(), 7)
	require.NoError(t, err)
	assert.False(t, p.Found)
	assert.Equal(t, "fid:7", p.Username)
	assert.Equal(t, "Farcaster User 7", p.DisplayName)
}

func TestUserByAddress(t *testing.T) {
	server := fakeNeynar(t, map[string]string{
		"/v2/farcaster/user/bulk-by-address": `{"0xabcdef0000000000000000000000000000000001":[{"fid":5,"username":"alice","display_name":"Alice"}]}`,
	})
	c := NewNeynarClient(server.URL, "test-key")

	p, err := c.UserByAddress(context.Background(), addr)
	require.NoError(t, err)
	assert.Equal(t, int64(5), p.FID)
	assert.Equal(t, "Alice", p.DisplayName)

	_, err = c.UserByAddress(context.Background(), "0x0000000000000000000000000000000000000002")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestNotConfigured(t *testing.T) {
	c := NewNeynarClient("http://unused.invalid", "")
	ctx := context.Background()

	_, err := c.UserByFID(ctx, 1)
	assert.ErrorIs(t, err, ErrNotConfigured)
	_, err = c.UserByAddress(ctx, addr)
	assert.ErrorIs(t, err, ErrNotConfigured)
	_, err = c.SearchByVerification(ctx, addr)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestResolver(t *testing.T) {
	server := fakeNeynar(t, map[string]string{
		"/v2/farcaster/user/bulk-by-address": `{"0xabcdef0000000000000000000000000000000001":[{"fid":5,"username":"alice","display_name":"Alice"}]}`,
	})
	r := NewResolver(NewNeynarClient(server.URL, "test-key"), logging.Discard())

	name, fid, ok := r.ResolveAuthor(context.Background(), addr)
	assert.True(t, ok)
	assert.Equal(t, "alice", name)
	assert.Equal(t, int64(5), fid)

	_, _, ok = r.ResolveAuthor(context.Background(), "0x0000000000000000000000000000000000000002")
	assert.False(t, ok)

	unconfigured := NewResolver(NewNeynarClient(server.URL, ""), logging.Discard())
	_, _, ok = unconfigured.ResolveAuthor(context.Background(), addr)
	assert.False(t, ok)
}

func TestResolver_NameByFID(t *testing.T) {
	server := fakeNeynar(t, map[string]string{
		"/v2/farcaster/user/bulk": `{"users":[{"fid":7,"username":"","display_name":"Seven"}]}`,
	})
	r := NewResolver(NewNeynarClient(server.URL, "test-key"), logging.Discard())

	name, ok := r.NameByFID(context.Background(), 7)
	assert.True(t, ok)
	assert.Equal(t, "Seven", name)

	_, ok = r.NameByFID(context.Background(), 0)
	assert.False(t, ok)

	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer down.Close()
	_, ok = NewResolver(NewNeynarClient(down.URL, "test-key"), logging.Discard()).NameByFID(context.Background(), 7)
	assert.False(t, ok, "placeholder names are not used as authors")
}
