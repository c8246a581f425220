package registration

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gwsanta/secret-santa-backend/middleware"
)

type Handler struct {
	Service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{Service: s}
}

func eventIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return 0, false
	}
	return uint(id), true
}

// ===========================
// 🎯 Register - POST /events/:id/registrations
func (h *Handler) Register(c *gin.Context) {
	accessContext, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "access context missing"})
		return
	}

	eventID, ok := eventIDParam(c)
	if !ok {
		return
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	ip := middleware.GetIPFromContext(c)

	reg, err := h.Service.Register(eventID, &req, accessContext, ip)
	if err != nil {
		switch {
		case errors.Is(err, ErrRegistrationClosed):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, ErrAlreadyRegistered):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to register: " + err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "registered successfully", "registration": reg})
}

// ===========================
// 🔍 Own registration - GET /events/:id/registrations/me
func (h *Handler) GetOwn(c *gin.Context) {
	accessContext, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "access context missing"})
		return
	}

	eventID, ok := eventIDParam(c)
	if !ok {
		return
	}

	reg, err := h.Service.GetOwn(eventID, accessContext)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not registered for this event"})
		return
	}

	c.JSON(http.StatusOK, reg)
}

// ===========================
// ❌ Withdraw - DELETE /events/:id/registrations/me
func (h *Handler) Withdraw(c *gin.Context) {
	accessContext, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "access context missing"})
		return
	}

	eventID, ok := eventIDParam(c)
	if !ok {
		return
	}

	ip := middleware.GetIPFromContext(c)

	if err := h.Service.Withdraw(eventID, accessContext, ip); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "registration withdrawn"})
}

// ===========================
// 📄 List registrations - GET /events/:id/registrations (admin)
func (h *Handler) ListByEvent(c *gin.Context) {
	accessContext, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "access context missing"})
		return
	}

	eventID, ok := eventIDParam(c)
	if !ok {
		return
	}

	regs, err := h.Service.ListByEvent(eventID, accessContext)
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"registrations": regs, "count": len(regs)})
}

// ===========================
// 🛠 Approve - PATCH /events/:id/approvals (admin)
func (h *Handler) Approve(c *gin.Context) {
	accessContext, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "access context missing"})
		return
	}

	eventID, ok := eventIDParam(c)
	if !ok {
		return
	}

	var req ApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	ip := middleware.GetIPFromContext(c)

	approval, err := h.Service.Approve(eventID, &req, accessContext, ip)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to save approval: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "approval saved", "approval": approval})
}
