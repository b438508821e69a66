package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/tndevelopers2024/scribe-api/internal/repository"
)

// ScopeService decides which students' data an actor may read or review.
// It is the sole authorization gate and is consulted before every read or
// mutation; client-side role checks are advisory only.
type ScopeService interface {
	CanRead(ctx context.Context, actor Actor, studentID uint) error
	CanReview(ctx context.Context, actor Actor, studentID uint) error
	CanViewFaculty(ctx context.Context, actor Actor, facultyID uint) error
}

type scopeService struct {
	students  repository.StudentRepository
	faculties repository.FacultyRepository
	logger    zerolog.Logger
}

// NewScopeService constructs the visibility resolver.
func NewScopeService(students repository.StudentRepository, faculties repository.FacultyRepository, logger zerolog.Logger) ScopeService {
	return &scopeService{
		students:  students,
		faculties: faculties,
		logger:    logger.With().Str("component", "scope_service").Logger(),
	}
}

// CanRead allows students their own record and reviewers their assigned
// scope.
func (s *scopeService) CanRead(ctx context.Context, actor Actor, studentID uint) error {
	if actor.IsStudent() {
		if actor.ID == studentID {
			return nil
		}
		return ErrNotAuthorized
	}

	return s.CanReview(ctx, actor, studentID)
}

// CanReview allows a faculty member their directly assigned students and a
// lead faculty additionally the students of every faculty member under them.
// Students are never reviewers, regardless of ownership.
func (s *scopeService) CanReview(ctx context.Context, actor Actor, studentID uint) error {
	if !actor.IsReviewer() {
		return ErrNotAuthorized
	}

	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStudentNotFound
		}
		return err
	}

	if student.FacultyID == actor.ID {
		return nil
	}

	if actor.IsLeadFaculty() {
		assigned, err := s.faculties.GetByID(ctx, student.FacultyID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotAuthorized
			}
			return err
		}
		if assigned.LeadID != nil && *assigned.LeadID == actor.ID {
			return nil
		}
	}

	s.logger.Debug().
		Uint("actor_id", actor.ID).
		Str("actor_role", actor.Role).
		Uint("student_id", studentID).
		Msg("review scope denied")

	return ErrNotAuthorized
}

// CanViewFaculty allows a lead faculty to drill into the roster of a faculty
// member assigned to them.
func (s *scopeService) CanViewFaculty(ctx context.Context, actor Actor, facultyID uint) error {
	if !actor.IsLeadFaculty() {
		return ErrNotAuthorized
	}

	faculty, err := s.faculties.GetByID(ctx, facultyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFacultyNotFound
		}
		return err
	}

	if faculty.LeadID == nil || *faculty.LeadID != actor.ID {
		return ErrNotAuthorized
	}

	return nil
}
