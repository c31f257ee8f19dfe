package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"atlas/internal/session"
	"atlas/internal/utils/crypto"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const webhookSecret = "test-webhook-secret"

func postIdentityEvent(t *testing.T, hub *session.Hub, body, signature string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/session/events", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if signature != "" {
		req.Header.Set(SignatureHeader, signature)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := NewSessionHandler(hub, webhookSecret)
	require.NoError(t, handler.IdentityEvent(c))
	return rec
}

func TestIdentityEventPublishesSignIn(t *testing.T) {
	hub := session.NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	updates := hub.Subscribe(ctx)

	body := `{"email":"editor@atlas.test","signed_in":true}`
	rec := postIdentityEvent(t, hub, body, crypto.ComputeSignature([]byte(body), webhookSecret))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	select {
	case u := <-updates:
		assert.Equal(t, "editor@atlas.test", u.Email)
		assert.NoError(t, u.Err)
	case <-time.After(time.Second):
		t.Fatal("no update published")
	}
}

func TestIdentityEventSignOutPublishesEmptyEmail(t *testing.T) {
	hub := session.NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	updates := hub.Subscribe(ctx)

	body := `{"email":"editor@atlas.test","signed_in":false}`
	rec := postIdentityEvent(t, hub, body, crypto.ComputeSignature([]byte(body), webhookSecret))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	select {
	case u := <-updates:
		assert.Empty(t, u.Email)
	case <-time.After(time.Second):
		t.Fatal("no update published")
	}
}

func TestIdentityEventRejectsBadSignature(t *testing.T) {
	hub := session.NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	updates := hub.Subscribe(ctx)

	body := `{"email":"mallory@atlas.test","signed_in":true}`
	rec := postIdentityEvent(t, hub, body, "deadbeef")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	select {
	case <-updates:
		t.Fatal("unsigned event must not be published")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestIdentityEventMalformedBodyPublishesError(t *testing.T) {
	hub := session.NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	updates := hub.Subscribe(ctx)

	body := `{"email": not json`
	rec := postIdentityEvent(t, hub, body, crypto.ComputeSignature([]byte(body), webhookSecret))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	select {
	case u := <-updates:
		assert.Error(t, u.Err)
	case <-time.After(time.Second):
		t.Fatal("no update published")
	}
}
