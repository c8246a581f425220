package admin

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

func idParam(c *gin.Context) (uint, bool) {
	v, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || v == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(v), true
}

func writeAdminError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrAdminRequired):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// ===========================
// 🏆 Awards

// @Router /api/v1/admin/awards [post]
func (h *Handler) CreateAward(c *gin.Context) {
	accessContext, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req AwardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	a, err := h.Service.CreateAward(&req, accessContext, middleware.GetIPFromContext(c))
	if err != nil {
		writeAdminError(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

// @Router /api/v1/awards [get]
func (h *Handler) ListAwards(c *gin.Context) {
	rows, err := h.Service.ListAwards()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"awards": rows})
}

// @Router /api/v1/admin/awards/:id [put]
func (h *Handler) UpdateAward(c *gin.Context) {
	accessContext, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req AwardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	a, err := h.Service.UpdateAward(id, &req, accessContext, middleware.GetIPFromContext(c))
	if err != nil {
		writeAdminError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// @Router /api/v1/admin/awards/:id [delete]
func (h *Handler) DeleteAward(c *gin.Context) {
	accessContext, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.Service.DeleteAward(id, accessContext, middleware.GetIPFromContext(c)); err != nil {
		writeAdminError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Award deleted"})
}

// @Router /api/v1/admin/awards/:id/grant [post]
func (h *Handler) GrantAward(c *gin.Context) {
	accessContext, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req GrantAwardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	g, err := h.Service.GrantAward(id, &req, accessContext, middleware.GetIPFromContext(c))
	if err != nil {
		writeAdminError(c, err)
		return
	}
	c.JSON(http.StatusCreated, g)
}

// @Router /api/v1/users/:id/awards [get]
func (h *Handler) ListUserAwards(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	rows, err := h.Service.ListUserAwards(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"awards": rows})
}

// ===========================
// 🎖️ Titles

// @Router /api/v1/admin/titles [post]
func (h *Handler) CreateTitle(c *gin.Context) {
	accessContext, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req TitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	t, err := h.Service.CreateTitle(&req, accessContext, middleware.GetIPFromContext(c))
	if err != nil {
		writeAdminError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

// @Router /api/v1/titles [get]
func (h *Handler) ListTitles(c *gin.Context) {
	rows, err := h.Service.ListTitles()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"titles": rows})
}

// @Router /api/v1/admin/titles/:id [delete]
func (h *Handler) DeleteTitle(c *gin.Context) {
	accessContext, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.Service.DeleteTitle(id, accessContext, middleware.GetIPFromContext(c)); err != nil {
		writeAdminError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Title deleted"})
}

// @Router /api/v1/admin/titles/assign [post]
func (h *Handler) AssignTitle(c *gin.Context) {
	accessContext, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req AssignTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Service.AssignTitle(&req, accessContext, middleware.GetIPFromContext(c)); err != nil {
		writeAdminError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Title assigned"})
}

// ===========================
// ❓ FAQ

// @Router /api/v1/faq [get]
// @Router /api/v1/admin/faq [get]
func (h *Handler) ListFAQ(c *gin.Context) {
	// unauthenticated visitors see active entries only; admins also get
	// unpublished entries on the admin route
	accessContext, _ := middleware.GetAccessContext(c)

	rows, err := h.Service.ListFAQ(accessContext)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"faq": rows})
}

// @Router /api/v1/admin/faq [post]
func (h *Handler) CreateFAQ(c *gin.Context) {
	accessContext, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req FAQRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	f, err := h.Service.CreateFAQ(&req, accessContext, middleware.GetIPFromContext(c))
	if err != nil {
		writeAdminError(c, err)
		return
	}
	c.JSON(http.StatusCreated, f)
}

// @Router /api/v1/admin/faq/:id [put]
func (h *Handler) UpdateFAQ(c *gin.Context) {
	accessContext, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req FAQRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	f, err := h.Service.UpdateFAQ(id, &req, accessContext, middleware.GetIPFromContext(c))
	if err != nil {
		writeAdminError(c, err)
		return
	}
	c.JSON(http.StatusOK, f)
}

// @Router /api/v1/admin/faq/:id [delete]
func (h *Handler) DeleteFAQ(c *gin.Context) {
	accessContext, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.Service.DeleteFAQ(id, accessContext, middleware.GetIPFromContext(c)); err != nil {
		writeAdminError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "FAQ entry deleted"})
}

// ===========================
// ⚙️ Settings

// @Router /api/v1/settings/:key [get]
func (h *Handler) GetSetting(c *gin.Context) {
	key := c.Param("key")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid key"})
		return
	}

	setting, err := h.Service.GetSetting(key)
	if err != nil {
		writeAdminError(c, err)
		return
	}
	c.JSON(http.StatusOK, setting)
}

// @Router /api/v1/admin/settings [get]
func (h *Handler) ListSettings(c *gin.Context) {
	accessContext, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	rows, err := h.Service.ListSettings(accessContext)
	if err != nil {
		writeAdminError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": rows})
}

// @Router /api/v1/admin/settings/:key [put]
func (h *Handler) SetSetting(c *gin.Context) {
	accessContext, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	key := c.Param("key")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid key"})
		return
	}

	var req SettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	setting, err := h.Service.SetSetting(key, &req, accessContext, middleware.GetIPFromContext(c))
	if err != nil {
		writeAdminError(c, err)
		return
	}
	c.JSON(http.StatusOK, setting)
}
