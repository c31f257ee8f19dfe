package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"atlas/internal/session"
	"atlas/internal/utils/crypto"
	"atlas/internal/utils/logger"

	"github.com/labstack/echo/v4"
)

// SignatureHeader carries the identity provider's HMAC over the request body.
const SignatureHeader = "X-Atlas-Signature"

type SessionHandler struct {
	hub    *session.Hub
	secret string
	log    *logger.Logger
}

func NewSessionHandler(hub *session.Hub, webhookSecret string) *SessionHandler {
	return &SessionHandler{
		hub:    hub,
		secret: webhookSecret,
		log:    logger.New("SessionHandler"),
	}
}

type identityEvent struct {
	Email    string `json:"email"`
	SignedIn bool   `json:"signed_in"`
}

// IdentityEvent receives a push notification from the identity provider and
// fans it out to every live session scope. An unverifiable signature is
// rejected; a malformed body is published as a provider error so scopes fail
// closed to anonymous rather than hang.
// @Summary Identity-provider push endpoint
// @Tags session
// @Accept json
// @Success 204 "Accepted"
// @Failure 401 {object} map[string]string "Bad signature"
// @Router /session/events [post]
func (h *SessionHandler) IdentityEvent(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Unreadable body"})
	}

	if !crypto.VerifySignature(body, h.secret, c.Request().Header.Get(SignatureHeader)) {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid signature"})
	}

	var event identityEvent
	if err := json.Unmarshal(body, &event); err != nil {
		h.log.Warn("Malformed identity event, publishing as provider error")
		h.hub.Publish(session.Update{Err: err})
		return c.NoContent(http.StatusNoContent)
	}

	update := session.Update{}
	if event.SignedIn {
		update.Email = event.Email
	}
	h.hub.Publish(update)

	return c.NoContent(http.StatusNoContent)
}
