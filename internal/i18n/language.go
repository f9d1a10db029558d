package i18n

import (
	"context"
	"strings"
)

const DefaultLanguage = "en"

type Language struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Languages is the fixed set offered on the language picker, in display order.
var Languages = []Language{
	{Code: "en", Name: "English"},
	{Code: "hi", Name: "हिन्दी"},
	{Code: "te", Name: "తెలుగు"},
	{Code: "ta", Name: "தமிழ்"},
	{Code: "kn", Name: "ಕನ್ನಡ"},
	{Code: "ml", Name: "മലയാളം"},
	{Code: "bn", Name: "বাংলা"},
	{Code: "gu", Name: "ગુજરાતી"},
	{Code: "pa", Name: "ਪੰਜਾਬੀ"},
	{Code: "mr", Name: "मराठी"},
	{Code: "ur", Name: "اردو"},
	{Code: "or", Name: "ଓଡ଼ିଆ"},
	{Code: "as", Name: "অসমীয়া"},
}

var supported = func() map[string]bool {
	m := make(map[string]bool, len(Languages))
	for _, l := range Languages {
		m[l.Code] = true
	}
	return m
}()

// Normalize reduces a tag like "hi-IN" or " TE " to a supported code.
// It returns "" when the language is not supported.
func Normalize(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if i := strings.IndexAny(tag, "-_"); i >= 0 {
		tag = tag[:i]
	}
	if supported[tag] {
		return tag
	}
	return ""
}

func Supported(code string) bool {
	return supported[code]
}

type ctxKey struct{}

// WithLanguage returns a copy of ctx carrying the request language.
func WithLanguage(ctx context.Context, code string) context.Context {
	if n := Normalize(code); n != "" {
		code = n
	} else {
		code = DefaultLanguage
	}
	return context.WithValue(ctx, ctxKey{}, code)
}

// FromContext returns the request language, DefaultLanguage when unset.
func FromContext(ctx context.Context) string {
	if ctx == nil {
		return DefaultLanguage
	}
	if code, ok := ctx.Value(ctxKey{}).(string); ok && code != "" {
		return code
	}
	return DefaultLanguage
}
