package assignment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gwsanta/secret-santa-backend/middleware"
	"github.com/gwsanta/secret-santa-backend/utils"
)

type Handler struct {
	Service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{Service: s}
}

func idParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || v == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(v), true
}

// ===========================
// 🎲 Run pairing for an event
// @Router /api/v1/events/:id/assignments/run [post]
func (h *Handler) RunAssignment(c *gin.Context) {
	accessContext, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	eventID, ok := idParam(c, "id")
	if !ok {
		return
	}

	rows, err := h.Service.RunAssignment(eventID, accessContext, middleware.GetIPFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, ErrPairingNotAllowed), errors.Is(err, ErrAssignmentsExist):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, ErrInsufficientParticipants):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Assignments generated successfully",
		"assignments": len(rows),
	})
}

// 🔍 Own santa-side assignment
// @Router /api/v1/events/:id/assignments/mine [get]
func (h *Handler) GetOwnAsSanta(c *gin.Context) {
	accessContext, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	eventID, ok := idParam(c, "id")
	if !ok {
		return
	}

	view, err := h.Service.GetOwnAsSanta(eventID, accessContext)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, view)
}

// 🔍 Own recipient-side assignment (santa hidden)
// @Router /api/v1/events/:id/assignments/incoming [get]
func (h *Handler) GetOwnAsRecipient(c *gin.Context) {
	accessContext, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	eventID, ok := idParam(c, "id")
	if !ok {
		return
	}

	a, err := h.Service.GetOwnAsRecipient(eventID, accessContext)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, a)
}

// 📄 All assignments for an event (admin)
// @Router /api/v1/events/:id/assignments [get]
func (h *Handler) ListByEvent(c *gin.Context) {
	accessContext, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	eventID, ok := idParam(c, "id")
	if !ok {
		return
	}

	rows, err := h.Service.ListByEvent(eventID, accessContext)
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"assignments": rows, "count": len(rows)})
}

// ===========================
// 🎁 Mark own gift sent
// @Router /api/v1/events/:id/assignments/sent [post]
func (h *Handler) MarkSent(c *gin.Context) {
	accessContext, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	eventID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req MarkSentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	a, err := h.Service.MarkSent(eventID, &req, accessContext, middleware.GetIPFromContext(c))
	if err != nil {
		writeStatusError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// 🎁 Mark own gift received
// @Router /api/v1/events/:id/assignments/received [post]
func (h *Handler) MarkReceived(c *gin.Context) {
	accessContext, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	eventID, ok := idParam(c, "id")
	if !ok {
		return
	}

	a, err := h.Service.MarkReceived(eventID, accessContext, middleware.GetIPFromContext(c))
	if err != nil {
		writeStatusError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// 🙏 Thanks message for the santa
// @Router /api/v1/events/:id/assignments/thanks [post]
func (h *Handler) SetThanks(c *gin.Context) {
	accessContext, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	eventID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req ThanksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	a, err := h.Service.SetThanks(eventID, &req, accessContext, middleware.GetIPFromContext(c))
	if err != nil {
		writeStatusError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// 📷 Upload a receipt photo for the received gift
// @Router /api/v1/events/:id/assignments/receipt [post]
func (h *Handler) UploadReceipt(c *gin.Context) {
	accessContext, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	eventID, ok := idParam(c, "id")
	if !ok {
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}

	save := func() (string, error) {
		return utils.SaveUpload(c, file, "receipts")
	}
	a, err := h.Service.SetReceiptImage(eventID, save, accessContext, middleware.GetIPFromContext(c))
	if err != nil {
		writeStatusError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// ===========================
// 🔒 Admin: set lock flags on an assignment
// @Router /api/v1/assignments/:id/locks [put]
func (h *Handler) SetLocks(c *gin.Context) {
	accessContext, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	assignmentID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req LockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	a, err := h.Service.SetLocks(assignmentID, &req, accessContext, middleware.GetIPFromContext(c))
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, a)
}

// 🔄 Admin: reset the santa track to pending
// @Router /api/v1/assignments/:id/reset-sent [post]
func (h *Handler) ResetSent(c *gin.Context) {
	accessContext, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	assignmentID, ok := idParam(c, "id")
	if !ok {
		return
	}

	a, err := h.Service.ResetSent(assignmentID, accessContext, middleware.GetIPFromContext(c))
	if err != nil {
		writeStatusError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// 🔄 Admin: swap recipients between two assignments
// @Router /api/v1/assignments/:id/swap/:other_id [post]
func (h *Handler) SwapRecipients(c *gin.Context) {
	accessContext, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	firstID, ok := idParam(c, "id")
	if !ok {
		return
	}
	secondID, ok := idParam(c, "other_id")
	if !ok {
		return
	}

	if err := h.Service.SwapRecipients(firstID, secondID, accessContext, middleware.GetIPFromContext(c)); err != nil {
		if errors.Is(err, ErrPairingLocked) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Recipients swapped successfully"})
}

func writeStatusError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrStatusLocked), errors.Is(err, ErrAlreadySent),
		errors.Is(err, ErrAlreadyReceived), errors.Is(err, ErrNotReceived):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, ErrNotYourAssignment):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
