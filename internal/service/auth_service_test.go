package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tndevelopers2024/scribe-api/internal/dto"
	"github.com/tndevelopers2024/scribe-api/internal/models"
)

func authFixture(t *testing.T) (AuthService, *memoryStudentRepo, *memoryFacultyRepo) {
	t.Helper()

	students := newMemoryStudentRepo()
	faculties := newMemoryFacultyRepo()
	ctx := context.Background()

	studentHash, err := bcrypt.GenerateFromPassword([]byte("student-pass"), bcrypt.MinCost)
	require.NoError(t, err)
	facultyHash, err := bcrypt.GenerateFromPassword([]byte("faculty-pass"), bcrypt.MinCost)
	require.NoError(t, err)

	require.NoError(t, students.Create(ctx, &models.Student{
		ID: 1, Name: "Asha", Email: "asha@example.com",
		PasswordHash: string(studentHash), MustChangePassword: true, FacultyID: 11,
	}))
	require.NoError(t, faculties.Create(ctx, &models.Faculty{
		ID: 11, Name: "Dr. Mehta", Email: "mehta@example.com",
		PasswordHash: string(facultyHash), Role: models.RoleFaculty,
	}))

	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewAuthService(students, faculties, validate, "test-secret", time.Hour, testLogger())

	return svc, students, faculties
}

func TestAuthLoginStudent(t *testing.T) {
	svc, _, _ := authFixture(t)

	response, err := svc.Login(context.Background(), dto.LoginRequest{Email: "asha@example.com", Password: "student-pass"})
	require.NoError(t, err)
	require.Equal(t, uint(1), response.UserID)
	require.Equal(t, models.RoleStudent, response.Role)
	require.True(t, response.MustChangePassword)

	token, err := jwt.Parse(response.Token, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	require.Equal(t, "1", claims["sub"])
	require.Equal(t, models.RoleStudent, claims["role"])
}

func TestAuthLoginFaculty(t *testing.T) {
	svc, _, _ := authFixture(t)

	response, err := svc.Login(context.Background(), dto.LoginRequest{Email: "mehta@example.com", Password: "faculty-pass"})
	require.NoError(t, err)
	require.Equal(t, uint(11), response.UserID)
	require.Equal(t, models.RoleFaculty, response.Role)
}

func TestAuthLoginInvalidCredentials(t *testing.T) {
	svc, _, _ := authFixture(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, dto.LoginRequest{Email: "asha@example.com", Password: "wrong-password"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, dto.LoginRequest{Email: "nobody@example.com", Password: "whatever12"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthChangePasswordClearsFirstLoginFlag(t *testing.T) {
	svc, students, _ := authFixture(t)
	ctx := context.Background()

	err := svc.ChangePassword(ctx, Actor{ID: 1, Role: models.RoleStudent}, dto.ChangePasswordRequest{
		CurrentPassword: "student-pass",
		NewPassword:     "fresh-pass-123",
	})
	require.NoError(t, err)

	student, err := students.GetByID(ctx, 1)
	require.NoError(t, err)
	require.False(t, student.MustChangePassword)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(student.PasswordHash), []byte("fresh-pass-123")))

	response, err := svc.Login(ctx, dto.LoginRequest{Email: "asha@example.com", Password: "fresh-pass-123"})
	require.NoError(t, err)
	require.False(t, response.MustChangePassword)
}

func TestAuthChangePasswordWrongCurrent(t *testing.T) {
	svc, _, _ := authFixture(t)

	err := svc.ChangePassword(context.Background(), Actor{ID: 1, Role: models.RoleStudent}, dto.ChangePasswordRequest{
		CurrentPassword: "not-the-password",
		NewPassword:     "fresh-pass-123",
	})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}
