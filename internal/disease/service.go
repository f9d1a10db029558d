package disease

import (
	"bytes"
	"context"
	"net/http"

	"yieldx/internal/i18n"
	"yieldx/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service struct {
	classifier Classifier
	labels     []string
	store      storage.ObjectStore
	localizer  *i18n.Localizer
}

// NewService accepts a nil classifier, nil labels or a nil store; each
// missing piece degrades the response instead of failing it.
func NewService(classifier Classifier, labels []string, store storage.ObjectStore, localizer *i18n.Localizer) *Service {
	return &Service{
		classifier: classifier,
		labels:     labels,
		store:      store,
		localizer:  localizer,
	}
}

// Diagnose classifies an uploaded leaf image. Only input validation errors
// are returned; model problems are reported inside the Diagnosis.
func (s *Service) Diagnose(ctx context.Context, filename string, image []byte) (Diagnosis, error) {
	ext, err := ValidateFileExtension(filename)
	if err != nil {
		return Diagnosis{}, err
	}
	if len(image) == 0 {
		return Diagnosis{}, ErrEmptyFile
	}

	contentType := http.DetectContentType(image)
	if contentType == "" {
		contentType = defaultImageMIME
	}

	imageURL := s.storeImage(ctx, ext, image, contentType)

	diagnosis := s.classify(ctx, image, contentType)
	diagnosis.Crop = s.localizer.T(ctx, diagnosis.Crop)
	diagnosis.Status = s.localizer.T(ctx, diagnosis.Status)
	diagnosis.ImageURL = imageURL
	return diagnosis, nil
}

func (s *Service) classify(ctx context.Context, image []byte, contentType string) Diagnosis {
	if s.classifier == nil || len(s.labels) == 0 {
		return notLoaded()
	}

	logits, err := s.classifier.Classify(ctx, image, contentType)
	if err != nil {
		zap.L().Warn("disease classifier failed", zap.Error(err))
		return failed()
	}

	diagnosis, err := Interpret(logits, s.labels)
	if err != nil {
		zap.L().Warn("disease classifier output rejected", zap.Error(err))
		return failed()
	}
	return diagnosis
}

func (s *Service) storeImage(ctx context.Context, ext string, image []byte, contentType string) string {
	if s.store == nil {
		return ""
	}

	key := uploadKeyPrefix + uuid.New().String() + ext
	url, err := s.store.Upload(ctx, key, bytes.NewReader(image), contentType)
	if err != nil {
		zap.L().Warn("scan image not stored", zap.String("key", key), zap.Error(err))
		return ""
	}
	return url
}
