package manifest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/.well-known/farcaster.json", Handler("https://my-first-mini-app.vercel.app"))

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/.well-known/farcaster.json", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))

	frame := got["frame"].(map[string]any)
	assert.Equal(t, "1", frame["version"])
	assert.Equal(t, "https://my-first-mini-app.vercel.app", frame["homeUrl"])
	assert.Equal(t, "https://my-first-mini-app.vercel.app/splash.png", frame["splashImageUrl"])
	assert.Equal(t, "https://my-first-mini-app.vercel.app/api/webhook", frame["webhookUrl"])

	assoc := got["accountAssociation"].(map[string]any)
	assert.Equal(t, association.Header, assoc["header"])

	triggers := got["triggers"].([]any)
	require.Len(t, triggers, 1)
	assert.Equal(t, "view-app", triggers[0].(map[string]any)["id"])
}

func TestBuild_UsesAppURL(t *testing.T) {
	m := Build("http://localhost:3000")
	assert.Equal(t, "http://localhost:3000/splash.png", m.Frame.IconURL)
	assert.Equal(t, "http://localhost:3000", m.Triggers[0].URL)
}
