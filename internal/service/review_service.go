package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/gorm"

	"github.com/tndevelopers2024/scribe-api/internal/dto"
	"github.com/tndevelopers2024/scribe-api/internal/models"
	"github.com/tndevelopers2024/scribe-api/internal/observability"
	"github.com/tndevelopers2024/scribe-api/internal/repository"
)

// ReviewService is the single entry point faculty use to change an entry's
// status and attach feedback. Authorization runs through the scope resolver,
// and the status change lands in the same transaction as the owner's points
// adjustment.
type ReviewService interface {
	Review(ctx context.Context, actor Actor, payload dto.ReviewRequest) (dto.SubmissionItemResponse, error)
}

type reviewService struct {
	submissions repository.SubmissionRepository
	scope       ScopeService
	notifier    NotificationService
	cache       *redis.Client
	validator   *validator.Validate
	sanitizer   *bluemonday.Policy
	logger      zerolog.Logger
	now         func() time.Time
}

// NewReviewService constructs the review orchestrator. The notifier and cache
// are best-effort collaborators and may be nil.
func NewReviewService(submissions repository.SubmissionRepository, scope ScopeService, notifier NotificationService, cache *redis.Client, validate *validator.Validate, logger zerolog.Logger) ReviewService {
	return &reviewService{
		submissions: submissions,
		scope:       scope,
		notifier:    notifier,
		cache:       cache,
		validator:   validate,
		sanitizer:   bluemonday.StrictPolicy(),
		logger:      logger.With().Str("component", "review_service").Logger(),
		now:         time.Now,
	}
}

func (s *reviewService) Review(ctx context.Context, actor Actor, payload dto.ReviewRequest) (dto.SubmissionItemResponse, error) {
	tracer := otel.Tracer("github.com/tndevelopers2024/scribe-api/internal/service/review")
	ctx, span := tracer.Start(ctx, "review.decide")
	span.SetAttributes(
		attribute.Int64("review.item_id", int64(payload.ItemID)),
		attribute.Int64("review.actor_id", int64(actor.ID)),
		attribute.String("review.status", payload.Status),
	)
	defer span.End()

	if err := s.validator.Struct(payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation_failed")
		return dto.SubmissionItemResponse{}, err
	}

	category, err := models.ParseCategory(payload.Section)
	if err != nil {
		span.SetStatus(codes.Error, "unknown_category")
		return dto.SubmissionItemResponse{}, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	item, err := s.submissions.GetByID(ctx, payload.ItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			span.SetStatus(codes.Error, "item_not_found")
			return dto.SubmissionItemResponse{}, ErrItemNotFound
		}
		span.RecordError(err)
		return dto.SubmissionItemResponse{}, err
	}

	if item.Category != category || item.OwnerID != payload.StudentID {
		span.SetStatus(codes.Error, "item_mismatch")
		return dto.SubmissionItemResponse{}, ErrItemNotFound
	}

	if err := s.scope.CanReview(ctx, actor, item.OwnerID); err != nil {
		span.SetStatus(codes.Error, "scope_denied")
		return dto.SubmissionItemResponse{}, err
	}

	feedback := strings.TrimSpace(s.sanitizer.Sanitize(payload.Feedback))
	if payload.Status == models.SubmissionStatusRejected && feedback == "" {
		span.SetStatus(codes.Error, "feedback_required")
		return dto.SubmissionItemResponse{}, fmt.Errorf("%w: rejection requires feedback", ErrValidation)
	}

	// A repeated decision with the same status is treated as idempotent
	// intent: no write, no points movement.
	if item.Status == payload.Status {
		span.SetAttributes(attribute.Bool("review.idempotent", true))
		return dto.NewSubmissionItemResponse(item), nil
	}

	reviewedAt := s.now()
	reviewed, err := s.submissions.Review(ctx, repository.ReviewUpdate{
		ItemID:         item.ID,
		Status:         payload.Status,
		Feedback:       feedback,
		ReviewedBy:     actor.ID,
		ReviewedAt:     reviewedAt,
		ExpectedStatus: payload.ExpectedStatus,
	})
	if err != nil {
		if errors.Is(err, repository.ErrStaleStatus) {
			span.SetStatus(codes.Error, "review_conflict")
			return dto.SubmissionItemResponse{}, ErrConflict
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionItemResponse{}, ErrItemNotFound
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "review_write_failed")
		return dto.SubmissionItemResponse{}, err
	}

	observability.ReviewDecisions().WithLabelValues(payload.Status).Inc()
	s.invalidatePendingCounts(ctx, item.OwnerID)
	s.notifyStudent(ctx, reviewed)

	s.logger.Info().
		Uint("item_id", reviewed.ID).
		Uint("student_id", reviewed.OwnerID).
		Uint("reviewer_id", actor.ID).
		Str("status", reviewed.Status).
		Msg("review decision applied")

	return dto.NewSubmissionItemResponse(reviewed), nil
}

// invalidatePendingCounts drops the cached badge counters for the student.
// Cache failures only log; the decision already committed.
func (s *reviewService) invalidatePendingCounts(ctx context.Context, studentID uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, pendingCountsKey(studentID)).Err(); err != nil {
		s.logger.Warn().Err(err).Uint("student_id", studentID).Msg("failed to invalidate pending counts cache")
	}
}

func (s *reviewService) notifyStudent(ctx context.Context, item models.SubmissionItem) {
	if s.notifier == nil {
		return
	}

	message := fmt.Sprintf("Your %s entry was %s.", item.Category, item.Status)
	if item.Feedback != "" {
		message = fmt.Sprintf("%s Feedback: %s", message, item.Feedback)
	}

	_, err := s.notifier.Publish(ctx, dto.NotificationCreateRequest{
		StudentID: item.OwnerID,
		Type:      "review." + item.Status,
		Message:   message,
	})
	if err != nil {
		s.logger.Warn().Err(err).Uint("item_id", item.ID).Msg("failed to publish review notification")
	}
}
