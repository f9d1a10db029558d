package i18n

import (
	"context"

	"go.uber.org/zap"
)

// Localizer renders English UI strings in the request language.
type Localizer struct {
	translator Translator
}

// NewLocalizer accepts a nil translator; every string then stays English.
func NewLocalizer(translator Translator) *Localizer {
	return &Localizer{translator: translator}
}

// T never fails. Untranslatable text is returned as given.
func (l *Localizer) T(ctx context.Context, text string) string {
	lang := FromContext(ctx)
	if l == nil || l.translator == nil || lang == DefaultLanguage || text == "" {
		return text
	}

	out, err := l.translator.Translate(ctx, text, lang)
	if err != nil {
		zap.L().Warn("translation failed",
			zap.String("lang", lang),
			zap.Error(err),
		)
		return text
	}
	return out
}
