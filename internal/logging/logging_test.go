package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNew_Levels(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, New("debug", "development").GetLevel())
	assert.Equal(t, logrus.InfoLevel, New("loud", "development").GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, New("info", "production").Formatter)
}

func TestFromContext_AddsRequestID(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetFormatter(&logrus.JSONFormatter{})

	FromContext(context.Background(), log).Warn("plain")
	assert.NotContains(t, buf.String(), "request_id")

	buf.Reset()
	ctx := ContextWithRequestID(context.Background(), "rid-1")
	assert.Equal(t, "rid-1", RequestID(ctx))
	FromContext(ctx, log).Warn("tagged")
	assert.Contains(t, buf.String(), `"request_id":"rid-1"`)
}
