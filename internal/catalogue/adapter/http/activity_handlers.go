package http

import (
	"time"

	authHTTP "curiovault/internal/auth/adapter/http"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

// ListActivity handles GET /activity
func (h *CatalogueHTTPHandler) ListActivity(c *fiber.Ctx) error {
	entries, err := h.activity.List(c.Context(), authHTTP.UserID(c), c.QueryInt("limit", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"activity": entries})
}

// setupActivityStream registers GET /activity/stream, a websocket pushing the
// caller's new feed entries as they are recorded.
func (h *CatalogueHTTPHandler) setupActivityStream(router fiber.Router, middleware *authHTTP.AuthMiddleware) {
	router.Use("/activity/stream", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	router.Get("/activity/stream", middleware.Protect(), websocket.New(h.handleActivityStream))
}

func (h *CatalogueHTTPHandler) handleActivityStream(conn *websocket.Conn) {
	userID, _ := conn.Locals("user_id").(string)
	if userID == "" {
		conn.Close()
		return
	}

	listenerID, entries := h.activity.StreamListener(userID)
	defer h.activity.StopListener(listenerID)

	h.logger.WithFields(map[string]interface{}{
		"user_id": userID,
	}).Debug("Activity stream opened")

	done := make(chan struct{})

	// reader goroutine detects the client going away
	go func() {
		defer close(done)
		for {
			conn.SetReadDeadline(time.Now().Add(60 * time.Second))
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case entry, ok := <-entries:
			if !ok {
				return
			}
			if err := conn.WriteJSON(entry); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
