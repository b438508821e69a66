package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/tndevelopers2024/scribe-api/internal/models"
)

func TestStudentRepositorySetPasswordClearsFirstLoginFlag(t *testing.T) {
	db := setupSubmissionTestDB(t)
	repo := NewStudentRepository(db)
	ctx := context.Background()

	student := models.Student{Name: "Asha", Email: "asha@example.com", PasswordHash: "old", MustChangePassword: true, FacultyID: 11}
	require.NoError(t, repo.Create(ctx, &student))

	require.NoError(t, repo.SetPassword(ctx, student.ID, "new-hash"))

	stored, err := repo.GetByID(ctx, student.ID)
	require.NoError(t, err)
	require.Equal(t, "new-hash", stored.PasswordHash)
	require.False(t, stored.MustChangePassword)
}

func TestStudentRepositoryListByFacultyOrdersByName(t *testing.T) {
	db := setupSubmissionTestDB(t)
	repo := NewStudentRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Student{Name: "Bala", Email: "bala@example.com", PasswordHash: "x", FacultyID: 11}))
	require.NoError(t, repo.Create(ctx, &models.Student{Name: "Asha", Email: "asha@example.com", PasswordHash: "x", FacultyID: 11}))
	require.NoError(t, repo.Create(ctx, &models.Student{Name: "Charu", Email: "charu@example.com", PasswordHash: "x", FacultyID: 12}))

	students, err := repo.ListByFaculty(ctx, 11)
	require.NoError(t, err)
	require.Len(t, students, 2)
	require.Equal(t, "Asha", students[0].Name)
	require.Equal(t, "Bala", students[1].Name)
}

func TestFacultyRepositoryListByLead(t *testing.T) {
	db := setupSubmissionTestDB(t)
	repo := NewFacultyRepository(db)
	ctx := context.Background()

	lead := models.Faculty{Name: "Dr. Rao", Email: "rao@example.com", PasswordHash: "x", Role: models.RoleLeadFaculty}
	require.NoError(t, repo.Create(ctx, &lead))
	require.NoError(t, repo.Create(ctx, &models.Faculty{Name: "Dr. Mehta", Email: "mehta@example.com", PasswordHash: "x", Role: models.RoleFaculty, LeadID: &lead.ID}))
	require.NoError(t, repo.Create(ctx, &models.Faculty{Name: "Dr. Iyer", Email: "iyer@example.com", PasswordHash: "x", Role: models.RoleFaculty}))

	faculties, err := repo.ListByLead(ctx, lead.ID)
	require.NoError(t, err)
	require.Len(t, faculties, 1)
	require.Equal(t, "Dr. Mehta", faculties[0].Name)

	_, err = repo.GetByEmail(ctx, "missing@example.com")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestNotificationRepositoryMarkReadScopedToStudent(t *testing.T) {
	db := setupSubmissionTestDB(t)
	repo := NewNotificationRepository(db)
	ctx := context.Background()

	notification := models.Notification{StudentID: 1, Type: "review.approved", Message: "Approved."}
	require.NoError(t, repo.Create(ctx, &notification))

	_, err := repo.MarkRead(ctx, notification.ID, 2)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	read, err := repo.MarkRead(ctx, notification.ID, 1)
	require.NoError(t, err)
	require.True(t, read.Read)

	// Marking again is a no-op.
	again, err := repo.MarkRead(ctx, notification.ID, 1)
	require.NoError(t, err)
	require.True(t, again.Read)
}
