package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/tndevelopers2024/scribe-api/internal/dto"
	"github.com/tndevelopers2024/scribe-api/internal/models"
	"github.com/tndevelopers2024/scribe-api/internal/repository"
)

// ErrInvalidCredentials covers both unknown accounts and wrong passwords so
// login failures do not reveal which half was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService issues bearer tokens and rotates credentials. Accounts with
// MustChangePassword set are expected to call ChangePassword before anything
// else; the flag travels in the login response.
type AuthService interface {
	Login(ctx context.Context, payload dto.LoginRequest) (dto.LoginResponse, error)
	ChangePassword(ctx context.Context, actor Actor, payload dto.ChangePasswordRequest) error
}

type authService struct {
	students  repository.StudentRepository
	faculties repository.FacultyRepository
	validator *validator.Validate
	secret    []byte
	tokenTTL  time.Duration
	logger    zerolog.Logger
	now       func() time.Time
}

// NewAuthService constructs the authentication service.
func NewAuthService(students repository.StudentRepository, faculties repository.FacultyRepository, validate *validator.Validate, secret string, tokenTTL time.Duration, logger zerolog.Logger) AuthService {
	return &authService{
		students:  students,
		faculties: faculties,
		validator: validate,
		secret:    []byte(secret),
		tokenTTL:  tokenTTL,
		logger:    logger.With().Str("component", "auth_service").Logger(),
		now:       time.Now,
	}
}

func (s *authService) Login(ctx context.Context, payload dto.LoginRequest) (dto.LoginResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.LoginResponse{}, err
	}

	account, err := s.lookupAccount(ctx, payload.Email)
	if err != nil {
		return dto.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.passwordHash), []byte(payload.Password)); err != nil {
		return dto.LoginResponse{}, ErrInvalidCredentials
	}

	token, err := s.issueToken(account.id, account.role)
	if err != nil {
		return dto.LoginResponse{}, err
	}

	s.logger.Info().Uint("user_id", account.id).Str("role", account.role).Msg("login succeeded")

	return dto.LoginResponse{
		Token:              token,
		UserID:             account.id,
		Name:               account.name,
		Role:               account.role,
		MustChangePassword: account.mustChangePassword,
	}, nil
}

func (s *authService) ChangePassword(ctx context.Context, actor Actor, payload dto.ChangePasswordRequest) error {
	if err := s.validator.Struct(payload); err != nil {
		return err
	}

	var currentHash string
	switch {
	case actor.IsStudent():
		student, err := s.students.GetByID(ctx, actor.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrStudentNotFound
			}
			return err
		}
		currentHash = student.PasswordHash
	case actor.IsReviewer():
		faculty, err := s.faculties.GetByID(ctx, actor.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrFacultyNotFound
			}
			return err
		}
		currentHash = faculty.PasswordHash
	default:
		return ErrNotAuthorized
	}

	if err := bcrypt.CompareHashAndPassword([]byte(currentHash), []byte(payload.CurrentPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if actor.IsStudent() {
		err = s.students.SetPassword(ctx, actor.ID, string(hash))
	} else {
		err = s.faculties.SetPassword(ctx, actor.ID, string(hash))
	}
	if err != nil {
		return err
	}

	s.logger.Info().Uint("user_id", actor.ID).Str("role", actor.Role).Msg("password changed")

	return nil
}

type account struct {
	id                 uint
	name               string
	role               string
	passwordHash       string
	mustChangePassword bool
}

func (s *authService) lookupAccount(ctx context.Context, email string) (account, error) {
	student, err := s.students.GetByEmail(ctx, email)
	if err == nil {
		return account{
			id:                 student.ID,
			name:               student.Name,
			role:               models.RoleStudent,
			passwordHash:       student.PasswordHash,
			mustChangePassword: student.MustChangePassword,
		}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return account{}, err
	}

	faculty, err := s.faculties.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return account{}, ErrInvalidCredentials
		}
		return account{}, err
	}

	return account{
		id:                 faculty.ID,
		name:               faculty.Name,
		role:               faculty.Role,
		passwordHash:       faculty.PasswordHash,
		mustChangePassword: faculty.MustChangePassword,
	}, nil
}

func (s *authService) issueToken(userID uint, role string) (string, error) {
	issuedAt := s.now()
	claims := jwt.MapClaims{
		"sub":  fmt.Sprintf("%d", userID),
		"role": role,
		"iat":  issuedAt.Unix(),
		"exp":  issuedAt.Add(s.tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}
