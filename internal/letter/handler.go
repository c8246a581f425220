package letter

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

func eventIDParam(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || v == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return 0, false
	}
	return uint(v), true
}

// Letters arrive as multipart so an optional attachment can ride along
// with the body.
func letterForm(c *gin.Context) (body, attachmentPath string, ok bool) {
	body = c.PostForm("body")

	if file, err := c.FormFile("attachment"); err == nil {
		path, err := utils.SaveUpload(c, file, "letters")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return "", "", false
		}
		attachmentPath = path
	}
	return body, attachmentPath, true
}

// ===========================
// ✉️ Write to own grandchild
// @Router /api/v1/events/:id/letters/to-grandchild [post]
func (h *Handler) PostToGrandchild(c *gin.Context) {
	accessContext, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	eventID, ok := eventIDParam(c)
	if !ok {
		return
	}
	body, attachmentPath, ok := letterForm(c)
	if !ok {
		return
	}

	msg, err := h.Service.PostToGrandchild(eventID, body, attachmentPath, accessContext, middleware.GetIPFromContext(c))
	if err != nil {
		writeLetterError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// ✉️ Write to own santa
// @Router /api/v1/events/:id/letters/to-santa [post]
func (h *Handler) PostToSanta(c *gin.Context) {
	accessContext, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	eventID, ok := eventIDParam(c)
	if !ok {
		return
	}
	body, attachmentPath, ok := letterForm(c)
	if !ok {
		return
	}

	msg, err := h.Service.PostToSanta(eventID, body, attachmentPath, accessContext, middleware.GetIPFromContext(c))
	if err != nil {
		writeLetterError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// 📄 Thread with own grandchild
// @Router /api/v1/events/:id/letters/with-grandchild [get]
func (h *Handler) ThreadWithGrandchild(c *gin.Context) {
	accessContext, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	eventID, ok := eventIDParam(c)
	if !ok {
		return
	}

	msgs, err := h.Service.ThreadWithGrandchild(eventID, accessContext)
	if err != nil {
		writeLetterError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs, "count": len(msgs)})
}

// 📄 Thread with own santa
// @Router /api/v1/events/:id/letters/with-santa [get]
func (h *Handler) ThreadWithSanta(c *gin.Context) {
	accessContext, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	eventID, ok := eventIDParam(c)
	if !ok {
		return
	}

	msgs, err := h.Service.ThreadWithSanta(eventID, accessContext)
	if err != nil {
		writeLetterError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs, "count": len(msgs)})
}

func writeLetterError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNoThread):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrEmptyLetter), errors.Is(err, ErrBadSenderRole):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrEventClosed):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
