package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/tndevelopers2024/scribe-api/internal/dto"
	"github.com/tndevelopers2024/scribe-api/internal/models"
	"github.com/tndevelopers2024/scribe-api/internal/repository"
)

// PortfolioService covers the student-facing lifecycle: profile reads plus
// create, edit, resubmit and delete of entries. Review decisions live in
// ReviewService.
type PortfolioService interface {
	Profile(ctx context.Context, actor Actor, studentID uint) (dto.StudentProfileResponse, error)
	Create(ctx context.Context, actor Actor, category models.Category, payload dto.ItemCreateRequest) (dto.SubmissionItemResponse, error)
	UpdateFields(ctx context.Context, actor Actor, category models.Category, itemID uint, payload dto.ItemUpdateRequest) (dto.SubmissionItemResponse, error)
	Resubmit(ctx context.Context, actor Actor, category models.Category, itemID uint) (dto.SubmissionItemResponse, error)
	Delete(ctx context.Context, actor Actor, category models.Category, itemID uint) error
}

type portfolioService struct {
	submissions repository.SubmissionRepository
	students    repository.StudentRepository
	scope       ScopeService
	validator   *validator.Validate
	logger      zerolog.Logger
}

// NewPortfolioService constructs a PortfolioService instance.
func NewPortfolioService(submissions repository.SubmissionRepository, students repository.StudentRepository, scope ScopeService, validate *validator.Validate, logger zerolog.Logger) PortfolioService {
	return &portfolioService{
		submissions: submissions,
		students:    students,
		scope:       scope,
		validator:   validate,
		logger:      logger.With().Str("component", "portfolio_service").Logger(),
	}
}

func (s *portfolioService) Profile(ctx context.Context, actor Actor, studentID uint) (dto.StudentProfileResponse, error) {
	if err := s.scope.CanRead(ctx, actor, studentID); err != nil {
		return dto.StudentProfileResponse{}, err
	}

	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StudentProfileResponse{}, ErrStudentNotFound
		}
		return dto.StudentProfileResponse{}, err
	}

	items, err := s.submissions.List(ctx, repository.SubmissionFilter{OwnerID: &studentID})
	if err != nil {
		return dto.StudentProfileResponse{}, err
	}

	return dto.NewStudentProfileResponse(student, items), nil
}

func (s *portfolioService) Create(ctx context.Context, actor Actor, category models.Category, payload dto.ItemCreateRequest) (dto.SubmissionItemResponse, error) {
	if !actor.IsStudent() {
		return dto.SubmissionItemResponse{}, ErrNotAuthorized
	}

	if err := s.validator.Struct(payload); err != nil {
		return dto.SubmissionItemResponse{}, err
	}

	fields, err := validateFields(category, payload.Fields)
	if err != nil {
		return dto.SubmissionItemResponse{}, err
	}

	item := models.SubmissionItem{
		Category: category,
		OwnerID:  actor.ID,
		Fields:   fields,
		Status:   models.SubmissionStatusPending,
	}

	if err := s.submissions.Create(ctx, &item); err != nil {
		return dto.SubmissionItemResponse{}, err
	}

	s.logger.Info().
		Uint("item_id", item.ID).
		Uint("owner_id", actor.ID).
		Str("category", category.String()).
		Msg("portfolio entry created")

	return dto.NewSubmissionItemResponse(item), nil
}

func (s *portfolioService) UpdateFields(ctx context.Context, actor Actor, category models.Category, itemID uint, payload dto.ItemUpdateRequest) (dto.SubmissionItemResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SubmissionItemResponse{}, err
	}

	item, err := s.ownedItem(ctx, actor, category, itemID)
	if err != nil {
		return dto.SubmissionItemResponse{}, err
	}

	// An approved entry already scored a point; editing it would silently
	// invalidate a completed review.
	if item.IsApproved() {
		return dto.SubmissionItemResponse{}, fmt.Errorf("%w: approved entries cannot be edited", ErrValidation)
	}

	fields, err := validateFields(category, payload.Fields)
	if err != nil {
		return dto.SubmissionItemResponse{}, err
	}

	// Status stays untouched; moving a rejected entry back into review is the
	// explicit Resubmit action.
	item.Fields = fields
	if err := s.submissions.Update(ctx, &item); err != nil {
		return dto.SubmissionItemResponse{}, err
	}

	s.logger.Info().Uint("item_id", item.ID).Msg("portfolio entry updated")

	return dto.NewSubmissionItemResponse(item), nil
}

func (s *portfolioService) Resubmit(ctx context.Context, actor Actor, category models.Category, itemID uint) (dto.SubmissionItemResponse, error) {
	item, err := s.ownedItem(ctx, actor, category, itemID)
	if err != nil {
		return dto.SubmissionItemResponse{}, err
	}

	if item.Status != models.SubmissionStatusRejected {
		return dto.SubmissionItemResponse{}, fmt.Errorf("%w: only rejected entries can be resubmitted", ErrValidation)
	}

	// Prior feedback is retained for display; resubmitted means the last
	// review no longer stands.
	item.Status = models.SubmissionStatusResubmitted
	if err := s.submissions.Update(ctx, &item); err != nil {
		return dto.SubmissionItemResponse{}, err
	}

	s.logger.Info().Uint("item_id", item.ID).Msg("portfolio entry resubmitted")

	return dto.NewSubmissionItemResponse(item), nil
}

func (s *portfolioService) Delete(ctx context.Context, actor Actor, category models.Category, itemID uint) error {
	item, err := s.ownedItem(ctx, actor, category, itemID)
	if err != nil {
		return err
	}

	if err := s.submissions.Delete(ctx, item.ID); err != nil {
		return err
	}

	s.logger.Info().
		Uint("item_id", item.ID).
		Bool("was_approved", item.IsApproved()).
		Msg("portfolio entry deleted")

	return nil
}

// ownedItem loads the entry and enforces ownership plus the category named in
// the route. A category mismatch is reported as not-found to avoid leaking
// other students' item identifiers.
func (s *portfolioService) ownedItem(ctx context.Context, actor Actor, category models.Category, itemID uint) (models.SubmissionItem, error) {
	if !actor.IsStudent() {
		return models.SubmissionItem{}, ErrNotAuthorized
	}

	item, err := s.submissions.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.SubmissionItem{}, ErrItemNotFound
		}
		return models.SubmissionItem{}, err
	}

	if item.Category != category {
		return models.SubmissionItem{}, ErrItemNotFound
	}

	if item.OwnerID != actor.ID {
		return models.SubmissionItem{}, ErrNotAuthorized
	}

	return item, nil
}

// validateFields checks the payload against the category's JSON schema and
// returns it serialized for storage.
func validateFields(category models.Category, fields map[string]interface{}) (datatypes.JSON, error) {
	schema, err := models.FieldsSchema(category)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	if err := schema.Validate(fields); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	raw, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("%w: fields payload is not serializable", ErrValidation)
	}

	return datatypes.JSON(raw), nil
}
