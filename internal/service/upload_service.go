package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"
)

// FileUploader abstracts the evidence file store.
type FileUploader interface {
	Upload(ctx context.Context, name string, reader io.Reader) (string, error)
}

// UploadService stores evidence files (certificates, photos, reports) that
// students reference from their entry fields.
type UploadService interface {
	UploadEvidence(ctx context.Context, actor Actor, file *multipart.FileHeader) (string, error)
}

type uploadService struct {
	uploader FileUploader
	logger   zerolog.Logger
}

// NewUploadService constructs an UploadService instance.
func NewUploadService(uploader FileUploader, logger zerolog.Logger) UploadService {
	return &uploadService{
		uploader: uploader,
		logger:   logger.With().Str("component", "upload_service").Logger(),
	}
}

func (s *uploadService) UploadEvidence(ctx context.Context, actor Actor, file *multipart.FileHeader) (string, error) {
	if !actor.IsStudent() {
		return "", ErrNotAuthorized
	}

	if file == nil {
		return "", fmt.Errorf("%w: evidence file is required", ErrValidation)
	}

	if err := validateEvidenceType(file); err != nil {
		return "", err
	}

	reader, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer reader.Close()

	url, err := s.uploader.Upload(ctx, file.Filename, reader)
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	s.logger.Info().Uint("owner_id", actor.ID).Str("file", file.Filename).Msg("evidence uploaded")

	return url, nil
}

func validateEvidenceType(file *multipart.FileHeader) error {
	reader, err := file.Open()
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer reader.Close()

	mime, err := mimetype.DetectReader(reader)
	if err != nil {
		return fmt.Errorf("failed to detect file type: %w", err)
	}

	allowed := []string{"application/pdf", "image/jpeg", "image/png"}
	for _, a := range allowed {
		if mime.Is(a) {
			return nil
		}
	}

	return fmt.Errorf("%w: unsupported evidence type %s", ErrValidation, mime.String())
}
