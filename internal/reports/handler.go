package reports

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gwsanta/secret-santa-backend/middleware"
)

type Handler struct {
	Service ReportService
}

func NewHandler(s ReportService) *Handler {
	return &Handler{Service: s}
}

func writeAttachment(c *gin.Context, data []byte, filename, mime string) {
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, mime, data)
}

// ===========================
// 📊 Export assignments for an event
// @Router /api/v1/events/:id/reports/assignments [get]
func (h *Handler) ExportAssignments(c *gin.Context) {
	accessContext, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || eventID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}
	format := c.DefaultQuery("format", FormatExcel)

	data, filename, mime, err := h.Service.ExportAssignments(c.Request.Context(), uint(eventID), format, accessContext, middleware.GetIPFromContext(c))
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}
	writeAttachment(c, data, filename, mime)
}

// 📊 Export registrations for an event
// @Router /api/v1/events/:id/reports/registrations [get]
func (h *Handler) ExportRegistrations(c *gin.Context) {
	accessContext, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || eventID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}
	format := c.DefaultQuery("format", FormatExcel)

	data, filename, mime, err := h.Service.ExportRegistrations(c.Request.Context(), uint(eventID), format, accessContext, middleware.GetIPFromContext(c))
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}
	writeAttachment(c, data, filename, mime)
}

// 📊 Export activity logs (superadmin)
// @Router /api/v1/reports/activity-logs [get]
func (h *Handler) ExportActivityLogs(c *gin.Context) {
	accessContext, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	format := c.DefaultQuery("format", FormatCSV)

	var start, end time.Time
	if raw := c.Query("start_date"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date, expected YYYY-MM-DD"})
			return
		}
		start = t
	}
	if raw := c.Query("end_date"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date, expected YYYY-MM-DD"})
			return
		}
		end = t.Add(24*time.Hour - time.Second)
	}

	data, filename, mime, err := h.Service.ExportActivityLogs(c.Request.Context(), start, end, format, accessContext, middleware.GetIPFromContext(c))
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}
	writeAttachment(c, data, filename, mime)
}
