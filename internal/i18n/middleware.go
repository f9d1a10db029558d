package i18n

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	CookieName = "lang"
	HeaderName = "X-Language"
)

// Middleware resolves the request language and stores it in the request
// context. Order: lang query/form value, X-Language header, lang cookie,
// Accept-Language. Multipart bodies are left for the handler to read under
// its own size limit.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := Resolve(c)
		c.Set(CookieName, lang)
		c.Request = c.Request.WithContext(WithLanguage(c.Request.Context(), lang))
		c.Next()
	}
}

// Resolve picks the first supported language the request offers.
func Resolve(c *gin.Context) string {
	candidates := []string{c.Query("lang")}
	if c.ContentType() == "application/x-www-form-urlencoded" {
		candidates = append(candidates, c.PostForm("lang"))
	}
	candidates = append(candidates, c.GetHeader(HeaderName))
	if cookie, err := c.Cookie(CookieName); err == nil {
		candidates = append(candidates, cookie)
	}
	candidates = append(candidates, acceptLanguage(c.GetHeader("Accept-Language"))...)

	for _, candidate := range candidates {
		if code := Normalize(candidate); code != "" {
			return code
		}
	}
	return DefaultLanguage
}

// acceptLanguage returns the tags in header order, ignoring q-values.
func acceptLanguage(header string) []string {
	if header == "" {
		return nil
	}
	var tags []string
	for _, part := range strings.Split(header, ",") {
		tag, _, _ := strings.Cut(part, ";")
		if tag = strings.TrimSpace(tag); tag != "" && tag != "*" {
			tags = append(tags, tag)
		}
	}
	return tags
}
