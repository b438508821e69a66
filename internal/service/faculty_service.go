package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/tndevelopers2024/scribe-api/internal/dto"
	"github.com/tndevelopers2024/scribe-api/internal/repository"
)

// FacultyService serves the reviewer-facing views: assigned-student rosters,
// the lead faculty drill-down, and the single-student record with its
// per-category pending counts.
type FacultyService interface {
	MyStudents(ctx context.Context, actor Actor) ([]dto.StudentSummaryResponse, error)
	MyFaculties(ctx context.Context, actor Actor) ([]dto.FacultySummaryResponse, error)
	FacultyStudents(ctx context.Context, actor Actor, facultyID uint) ([]dto.StudentSummaryResponse, error)
	StudentRecord(ctx context.Context, actor Actor, studentID uint) (dto.StudentRecordResponse, error)
}

type facultyService struct {
	students    repository.StudentRepository
	faculties   repository.FacultyRepository
	submissions repository.SubmissionRepository
	scope       ScopeService
	cache       *redis.Client
	cacheTTL    time.Duration
	logger      zerolog.Logger
}

// NewFacultyService builds the reviewer view aggregator. The cache may be nil.
func NewFacultyService(students repository.StudentRepository, faculties repository.FacultyRepository, submissions repository.SubmissionRepository, scope ScopeService, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) FacultyService {
	return &facultyService{
		students:    students,
		faculties:   faculties,
		submissions: submissions,
		scope:       scope,
		cache:       cache,
		cacheTTL:    ttl,
		logger:      logger.With().Str("component", "faculty_service").Logger(),
	}
}

func (s *facultyService) MyStudents(ctx context.Context, actor Actor) ([]dto.StudentSummaryResponse, error) {
	if !actor.IsReviewer() {
		return nil, ErrNotAuthorized
	}

	return s.studentSummaries(ctx, actor.ID)
}

func (s *facultyService) MyFaculties(ctx context.Context, actor Actor) ([]dto.FacultySummaryResponse, error) {
	if !actor.IsLeadFaculty() {
		return nil, ErrNotAuthorized
	}

	faculties, err := s.faculties.ListByLead(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	summaries := make([]dto.FacultySummaryResponse, 0, len(faculties))
	for _, faculty := range faculties {
		students, err := s.students.ListByFaculty(ctx, faculty.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, dto.NewFacultySummaryResponse(faculty, len(students)))
	}

	return summaries, nil
}

func (s *facultyService) FacultyStudents(ctx context.Context, actor Actor, facultyID uint) ([]dto.StudentSummaryResponse, error) {
	if err := s.scope.CanViewFaculty(ctx, actor, facultyID); err != nil {
		return nil, err
	}

	return s.studentSummaries(ctx, facultyID)
}

func (s *facultyService) StudentRecord(ctx context.Context, actor Actor, studentID uint) (dto.StudentRecordResponse, error) {
	if err := s.scope.CanReview(ctx, actor, studentID); err != nil {
		return dto.StudentRecordResponse{}, err
	}

	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StudentRecordResponse{}, ErrStudentNotFound
		}
		return dto.StudentRecordResponse{}, err
	}

	items, err := s.submissions.List(ctx, repository.SubmissionFilter{OwnerID: &studentID})
	if err != nil {
		return dto.StudentRecordResponse{}, err
	}

	counts, err := s.pendingCounts(ctx, studentID)
	if err != nil {
		return dto.StudentRecordResponse{}, err
	}

	return dto.StudentRecordResponse{
		Profile:       dto.NewStudentProfileResponse(student, items),
		PendingCounts: counts,
	}, nil
}

func (s *facultyService) studentSummaries(ctx context.Context, facultyID uint) ([]dto.StudentSummaryResponse, error) {
	students, err := s.students.ListByFaculty(ctx, facultyID)
	if err != nil {
		return nil, err
	}

	summaries := make([]dto.StudentSummaryResponse, 0, len(students))
	for _, student := range students {
		ownerID := student.ID
		items, err := s.submissions.List(ctx, repository.SubmissionFilter{OwnerID: &ownerID})
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, dto.NewStudentSummaryResponse(student, items))
	}

	return summaries, nil
}

// pendingCounts serves the per-category badge counters, cache-aside with TTL.
// The review service invalidates the key on every decision.
func (s *facultyService) pendingCounts(ctx context.Context, studentID uint) (map[string]int64, error) {
	cacheKey := pendingCountsKey(studentID)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var counts map[string]int64
			if unmarshalErr := json.Unmarshal([]byte(cached), &counts); unmarshalErr == nil {
				s.logger.Debug().Uint("student_id", studentID).Msg("pending counts cache hit")
				return counts, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read pending counts cache")
		}
	}

	raw, err := s.submissions.PendingCounts(ctx, studentID)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(raw))
	for category, total := range raw {
		counts[category.String()] = total
	}

	if s.cache != nil {
		if payload, err := json.Marshal(counts); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store pending counts cache")
			}
		}
	}

	return counts, nil
}

func pendingCountsKey(studentID uint) string {
	return fmt.Sprintf("pending:student:%d", studentID)
}
