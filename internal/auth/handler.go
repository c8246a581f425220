package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gwsanta/secret-santa-backend/config"
	"github.com/gwsanta/secret-santa-backend/internal/auditlog"
)

// clientIP reads the address stored by the audit middleware. Importing the
// middleware package here would close an import cycle with it, so the
// context key is read directly.
func clientIP(c *gin.Context) string {
	if ip, exists := c.Get("client_ip"); exists {
		if s, ok := ip.(string); ok {
			return s
		}
	}
	return c.ClientIP()
}

type Handler struct {
	Service  Service
	AuditSvc auditlog.Service
	Cfg      *config.Config
}

func NewHandler(s Service, auditSvc auditlog.Service, cfg *config.Config) *Handler {
	return &Handler{Service: s, AuditSvc: auditSvc, Cfg: cfg}
}

// ===========================
// 🔑 GWars Login - GET /auth/gwars
//
// Without signed parameters the browser is redirected to the game's
// cross-server login page, which sends it back here with the signature set.
func (h *Handler) GWarsLogin(c *gin.Context) {
	sign := c.Query("sign")
	userIDStr := c.Query("user_id")

	if sign == "" || userIDStr == "" {
		callback := fmt.Sprintf("%s/api/v1/auth/gwars", config.BaseURL)
		c.Redirect(http.StatusFound, LoginRedirectURL(h.Cfg.GWarsSiteID, callback))
		return
	}

	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_id"})
		return
	}

	level, _ := strconv.Atoi(c.DefaultQuery("level", "0"))
	synd, _ := strconv.ParseFloat(c.DefaultQuery("synd", "0"), 64)
	hasPassport, _ := strconv.Atoi(c.DefaultQuery("has_passport", "0"))
	hasMobile, _ := strconv.Atoi(c.DefaultQuery("has_mobile", "0"))
	oldPassport, _ := strconv.Atoi(c.DefaultQuery("old_passport", "0"))

	params := GWarsLoginParams{
		Sign:        sign,
		UserID:      userID,
		Name:        c.Query("name"),
		NameEncoded: rawQueryValue(c.Request.URL.RawQuery, "name"),
		Level:       level,
		Synd:        synd,
		Sign2:       c.Query("sign2"),
		HasPassport: hasPassport,
		HasMobile:   hasMobile,
		OldPassport: oldPassport,
		Sign3:       c.Query("sign3"),
		UserSex:     c.Query("usersex"),
		Sign4:       c.Query("sign4"),
	}

	ip := clientIP(c)

	tokens, user, err := h.Service.GWarsLogin(c.Request.Context(), params)
	if err != nil {
		h.AuditSvc.LogAction(c.Request.Context(), nil, nil, "USER_LOGIN",
			map[string]interface{}{"game_user_id": userID, "error": err.Error()}, ip, "failure")

		status := http.StatusUnauthorized
		if errors.Is(err, ErrStaleLogin) {
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	h.AuditSvc.LogAction(c.Request.Context(), &user.ID, nil, "USER_LOGIN",
		map[string]interface{}{"game_user_id": userID, "username": user.Username}, ip, "success")

	c.JSON(http.StatusOK, gin.H{"tokens": tokens, "user": user})
}

// rawQueryValue pulls a parameter straight out of the raw query string.
// The game computes its signature over the pre-encoding name, so the
// verification needs the value exactly as it arrived on the wire.
func rawQueryValue(rawQuery, key string) string {
	for _, param := range strings.Split(rawQuery, "&") {
		if strings.HasPrefix(param, key+"=") {
			return strings.SplitN(param, "=", 2)[1]
		}
	}
	return ""
}

// ===========================
// 🔑 Local Login - POST /auth/login
func (h *Handler) LocalLogin(c *gin.Context) {
	var req LocalLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	ip := clientIP(c)

	tokens, user, err := h.Service.LocalLogin(req)
	if err != nil {
		h.AuditSvc.LogAction(c.Request.Context(), nil, nil, "ADMIN_LOGIN",
			map[string]interface{}{"email": req.Email, "error": err.Error()}, ip, "failure")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	h.AuditSvc.LogAction(c.Request.Context(), &user.ID, nil, "ADMIN_LOGIN",
		map[string]interface{}{"email": req.Email}, ip, "success")

	c.JSON(http.StatusOK, gin.H{"tokens": tokens, "user": user})
}

// ===========================
// ♻️ Refresh - POST /auth/refresh
func (h *Handler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refreshToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	access, err := h.Service.Refresh(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"accessToken": access})
}

// ===========================
// 👤 Me - GET /auth/me
func (h *Handler) Me(c *gin.Context) {
	userVal, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": userVal})
}
