package i18n

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const cookieMaxAge = 365 * 24 * 60 * 60

type Handler struct {
	secureCookie bool
}

func NewHandler(secureCookie bool) *Handler {
	return &Handler{secureCookie: secureCookie}
}

// --------------------------------------------------
// List supported languages
// --------------------------------------------------
func (h *Handler) ListLanguages(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"languages": Languages,
		"current":   FromContext(c.Request.Context()),
	})
}

// --------------------------------------------------
// Select language (stored in a cookie)
// --------------------------------------------------
func (h *Handler) SetLanguage(c *gin.Context) {
	var req struct {
		Language string `json:"language" form:"language"`
	}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	code := Normalize(req.Language)
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported language"})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, code, cookieMaxAge, "/", "", h.secureCookie, false)
	c.JSON(http.StatusOK, gin.H{"language": code})
}
