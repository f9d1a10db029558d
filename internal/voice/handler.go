package voice

import (
	"errors"
	"net/http"

	"yieldx/internal/i18n"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxAudioBytes = 20 << 20

type Handler struct {
	service   *Service
	localizer *i18n.Localizer
}

func NewHandler(service *Service, localizer *i18n.Localizer) *Handler {
	return &Handler{service: service, localizer: localizer}
}

// --------------------------------------------------
// POST /chat
// --------------------------------------------------
func (h *Handler) Chat(c *gin.Context) {
	var req struct {
		Message string `json:"message" form:"message"`
	}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	c.JSON(http.StatusOK, h.service.Chat(c.Request.Context(), req.Message))
}

// --------------------------------------------------
// POST /voice
// --------------------------------------------------
func (h *Handler) Voice(c *gin.Context) {
	ctx := c.Request.Context()
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxAudioBytes)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": h.localizer.T(ctx, "Audio file is too large")})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": h.localizer.T(ctx, "No audio uploaded")})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read audio"})
		return
	}
	defer file.Close()

	reply, err := h.service.Voice(ctx, file)
	switch {
	case errors.Is(err, ErrNoSpeech):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": h.service.NoSpeechMessage(ctx)})
		return
	case errors.Is(err, ErrSpeechNotConfigured):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	case err != nil:
		zap.L().Error("voice processing failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": h.service.NoSpeechMessage(ctx)})
		return
	}

	c.JSON(http.StatusOK, reply)
}
