package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/tndevelopers2024/scribe-api/internal/dto"
	"github.com/tndevelopers2024/scribe-api/internal/models"
)

func portfolioFixture(t *testing.T) (PortfolioService, *memorySubmissionRepo, *memoryStudentRepo) {
	t.Helper()

	students := newMemoryStudentRepo()
	faculties := newMemoryFacultyRepo()
	submissions := newMemorySubmissionRepo()

	require.NoError(t, faculties.Create(context.Background(), &models.Faculty{ID: 11, Name: "Dr. Mehta", Email: "mehta@example.com", Role: models.RoleFaculty}))
	require.NoError(t, students.Create(context.Background(), &models.Student{ID: 1, Name: "Asha", Email: "asha@example.com", FacultyID: 11}))
	require.NoError(t, students.Create(context.Background(), &models.Student{ID: 2, Name: "Bala", Email: "bala@example.com", FacultyID: 11}))

	scope := NewScopeService(students, faculties, testLogger())
	validate := validator.New(validator.WithRequiredStructEnabled())

	return NewPortfolioService(submissions, students, scope, validate, testLogger()), submissions, students
}

func TestPortfolioCreateStartsPending(t *testing.T) {
	svc, _, _ := portfolioFixture(t)
	actor := Actor{ID: 1, Role: models.RoleStudent}

	created, err := svc.Create(context.Background(), actor, models.CategoryCourseReflections, dto.ItemCreateRequest{
		Fields: map[string]interface{}{"courseName": "Bioethics I", "reflection": "Learned about informed consent."},
	})
	require.NoError(t, err)
	require.Equal(t, models.SubmissionStatusPending, created.Status)
	require.Equal(t, actor.ID, created.OwnerID)
	require.Equal(t, "Bioethics I", created.Fields["courseName"])
}

func TestPortfolioCreateRejectsMissingRequiredField(t *testing.T) {
	svc, _, _ := portfolioFixture(t)

	_, err := svc.Create(context.Background(), Actor{ID: 1, Role: models.RoleStudent}, models.CategoryCourseReflections, dto.ItemCreateRequest{
		Fields: map[string]interface{}{"courseName": "Bioethics I"},
	})
	require.ErrorIs(t, err, ErrValidation)
}

func TestPortfolioCreateRejectsBlankRequiredField(t *testing.T) {
	svc, _, _ := portfolioFixture(t)

	_, err := svc.Create(context.Background(), Actor{ID: 1, Role: models.RoleStudent}, models.CategoryClinicalExperiences, dto.ItemCreateRequest{
		Fields: map[string]interface{}{"title": "ICU rotation", "setting": ""},
	})
	require.ErrorIs(t, err, ErrValidation)
}

func TestPortfolioCreateFacultyForbidden(t *testing.T) {
	svc, _, _ := portfolioFixture(t)

	_, err := svc.Create(context.Background(), Actor{ID: 11, Role: models.RoleFaculty}, models.CategoryCourseReflections, dto.ItemCreateRequest{
		Fields: map[string]interface{}{"courseName": "Bioethics I", "reflection": "x"},
	})
	require.ErrorIs(t, err, ErrNotAuthorized)
}

func TestPortfolioUpdateKeepsStatus(t *testing.T) {
	svc, repo, _ := portfolioFixture(t)
	actor := Actor{ID: 1, Role: models.RoleStudent}
	ctx := context.Background()

	created, err := svc.Create(ctx, actor, models.CategoryBeTheChange, dto.ItemCreateRequest{
		Fields: map[string]interface{}{"title": "Clean water drive", "description": "Organized a village campaign."},
	})
	require.NoError(t, err)

	// A rejected entry stays rejected after an edit; only Resubmit moves it.
	item := repo.items[created.ID]
	item.Status = models.SubmissionStatusRejected
	item.Feedback = "Add outcomes."
	repo.items[created.ID] = item

	updated, err := svc.UpdateFields(ctx, actor, models.CategoryBeTheChange, created.ID, dto.ItemUpdateRequest{
		Fields: map[string]interface{}{"title": "Clean water drive", "description": "Campaign reached 200 households."},
	})
	require.NoError(t, err)
	require.Equal(t, models.SubmissionStatusRejected, updated.Status)
	require.Equal(t, "Add outcomes.", updated.Feedback)
}

func TestPortfolioUpdateApprovedForbidden(t *testing.T) {
	svc, repo, _ := portfolioFixture(t)
	actor := Actor{ID: 1, Role: models.RoleStudent}
	ctx := context.Background()

	created, err := svc.Create(ctx, actor, models.CategoryBeTheChange, dto.ItemCreateRequest{
		Fields: map[string]interface{}{"title": "Clean water drive", "description": "Organized a village campaign."},
	})
	require.NoError(t, err)

	item := repo.items[created.ID]
	item.Status = models.SubmissionStatusApproved
	repo.items[created.ID] = item

	_, err = svc.UpdateFields(ctx, actor, models.CategoryBeTheChange, created.ID, dto.ItemUpdateRequest{
		Fields: map[string]interface{}{"title": "Clean water drive", "description": "Edited."},
	})
	require.ErrorIs(t, err, ErrValidation)
}

func TestPortfolioUpdateByNonOwner(t *testing.T) {
	svc, _, _ := portfolioFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, Actor{ID: 1, Role: models.RoleStudent}, models.CategoryEthicsThroughArt, dto.ItemCreateRequest{
		Fields: map[string]interface{}{"title": "Dignity", "medium": "Charcoal sketch"},
	})
	require.NoError(t, err)

	_, err = svc.UpdateFields(ctx, Actor{ID: 2, Role: models.RoleStudent}, models.CategoryEthicsThroughArt, created.ID, dto.ItemUpdateRequest{
		Fields: map[string]interface{}{"title": "Dignity", "medium": "Oil"},
	})
	require.ErrorIs(t, err, ErrNotAuthorized)
}

func TestPortfolioCategoryMismatchReadsAsNotFound(t *testing.T) {
	svc, _, _ := portfolioFixture(t)
	ctx := context.Background()
	actor := Actor{ID: 1, Role: models.RoleStudent}

	created, err := svc.Create(ctx, actor, models.CategoryEthicsThroughArt, dto.ItemCreateRequest{
		Fields: map[string]interface{}{"title": "Dignity", "medium": "Charcoal sketch"},
	})
	require.NoError(t, err)

	_, err = svc.UpdateFields(ctx, actor, models.CategoryBeTheChange, created.ID, dto.ItemUpdateRequest{
		Fields: map[string]interface{}{"title": "Dignity", "description": "x"},
	})
	require.ErrorIs(t, err, ErrItemNotFound)
}

func TestPortfolioResubmitOnlyFromRejected(t *testing.T) {
	svc, repo, _ := portfolioFixture(t)
	actor := Actor{ID: 1, Role: models.RoleStudent}
	ctx := context.Background()

	created, err := svc.Create(ctx, actor, models.CategoryWorkshopsTraining, dto.ItemCreateRequest{
		Fields: map[string]interface{}{"title": "Research ethics workshop", "organizer": "IRB cell"},
	})
	require.NoError(t, err)

	_, err = svc.Resubmit(ctx, actor, models.CategoryWorkshopsTraining, created.ID)
	require.ErrorIs(t, err, ErrValidation)

	item := repo.items[created.ID]
	item.Status = models.SubmissionStatusRejected
	item.Feedback = "Attach the certificate."
	repo.items[created.ID] = item

	resubmitted, err := svc.Resubmit(ctx, actor, models.CategoryWorkshopsTraining, created.ID)
	require.NoError(t, err)
	require.Equal(t, models.SubmissionStatusResubmitted, resubmitted.Status)
	require.Equal(t, "Attach the certificate.", resubmitted.Feedback)
}

func TestPortfolioProfileGroupsSectionsAndSeedsEmptyOnes(t *testing.T) {
	svc, _, _ := portfolioFixture(t)
	actor := Actor{ID: 1, Role: models.RoleStudent}
	ctx := context.Background()

	_, err := svc.Create(ctx, actor, models.CategoryCourseReflections, dto.ItemCreateRequest{
		Fields: map[string]interface{}{"courseName": "Bioethics I", "reflection": "Notes."},
	})
	require.NoError(t, err)

	profile, err := svc.Profile(ctx, actor, actor.ID)
	require.NoError(t, err)
	require.Len(t, profile.Sections, len(models.Categories()))
	require.Len(t, profile.Sections[models.CategoryCourseReflections.String()], 1)
	require.Empty(t, profile.Sections[models.CategoryBeTheChange.String()])
}

func TestPortfolioDeleteOwnEntry(t *testing.T) {
	svc, repo, _ := portfolioFixture(t)
	actor := Actor{ID: 1, Role: models.RoleStudent}
	ctx := context.Background()

	created, err := svc.Create(ctx, actor, models.CategoryCompetitionsAwards, dto.ItemCreateRequest{
		Fields: map[string]interface{}{"title": "Ethics quiz", "award": "First place"},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, actor, models.CategoryCompetitionsAwards, created.ID))
	require.NotContains(t, repo.items, created.ID)

	err = svc.Delete(ctx, actor, models.CategoryCompetitionsAwards, created.ID)
	require.ErrorIs(t, err, ErrItemNotFound)
}
