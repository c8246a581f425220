package telegram

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gwsanta/secret-santa-backend/middleware"
)

type Handler struct {
	Service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{Service: s}
}

// ===========================
// 🔢 Issue a link code for the current user
// @Router /api/v1/telegram/link-code [post]
func (h *Handler) RequestLinkCode(c *gin.Context) {
	accessContext, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	code, err := h.Service.RequestLinkCode(accessContext, middleware.GetIPFromContext(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": code, "expires_in_minutes": 10})
}

// ✅ Verify a code relayed through the bot and bind the chat.
// Called by the bot bridge, not by a logged-in browser session.
// @Router /api/v1/telegram/verify [post]
func (h *Handler) VerifyLinkCode(c *gin.Context) {
	var req VerifyLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	link, err := h.Service.VerifyLinkCode(&req, middleware.GetIPFromContext(c))
	if err != nil {
		if errors.Is(err, ErrCodeExpired) {
			c.JSON(http.StatusGone, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, link)
}

// 🔍 Own link details
// @Router /api/v1/telegram/link [get]
func (h *Handler) GetOwnLink(c *gin.Context) {
	accessContext, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	link, err := h.Service.GetOwnLink(accessContext)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, link)
}

// 🎯 Toggle telegram notifications
// @Router /api/v1/telegram/notifications [put]
func (h *Handler) SetNotifications(c *gin.Context) {
	accessContext, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req NotificationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Service.SetNotifications(*req.Enabled, accessContext, middleware.GetIPFromContext(c)); err != nil {
		if errors.Is(err, ErrNotLinked) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification preference updated"})
}

// 🗑️ Unlink telegram
// @Router /api/v1/telegram/link [delete]
func (h *Handler) Unlink(c *gin.Context) {
	accessContext, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.Service.Unlink(accessContext, middleware.GetIPFromContext(c)); err != nil {
		if errors.Is(err, ErrNotLinked) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Telegram unlinked"})
}
