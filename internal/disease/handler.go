package disease

import (
	"errors"
	"io"
	"net/http"

	"yieldx/internal/i18n"

	"github.com/gin-gonic/gin"
)

const msgTooLarge = "File is too large"

type Handler struct {
	service   *Service
	localizer *i18n.Localizer
}

func NewHandler(service *Service, localizer *i18n.Localizer) *Handler {
	return &Handler{service: service, localizer: localizer}
}

// --------------------------------------------------
// Upload leaf image for disease detection
// --------------------------------------------------
func (h *Handler) Upload(c *gin.Context) {
	ctx := c.Request.Context()
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": h.localizer.T(ctx, msgTooLarge)})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": h.localizer.T(ctx, "No file uploaded")})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read file"})
		return
	}
	defer file.Close()

	image, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read file"})
		return
	}
	if len(image) > maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": h.localizer.T(ctx, msgTooLarge)})
		return
	}

	diagnosis, err := h.service.Diagnose(ctx, fileHeader.Filename, image)
	switch {
	case errors.Is(err, ErrMissingExtension), errors.Is(err, ErrFileType), errors.Is(err, ErrEmptyFile):
		c.JSON(http.StatusBadRequest, gin.H{"error": h.localizer.T(ctx, err.Error())})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process image"})
		return
	}

	c.JSON(http.StatusOK, diagnosis)
}
