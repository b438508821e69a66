package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/tndevelopers2024/scribe-api/internal/models"
)

// FacultyRepository defines data operations for reviewers.
type FacultyRepository interface {
	GetByID(ctx context.Context, id uint) (models.Faculty, error)
	GetByEmail(ctx context.Context, email string) (models.Faculty, error)
	ListByLead(ctx context.Context, leadID uint) ([]models.Faculty, error)
	Create(ctx context.Context, faculty *models.Faculty) error
	SetPassword(ctx context.Context, id uint, hash string) error
}

type facultyRepository struct {
	db *gorm.DB
}

// NewFacultyRepository instantiates the repository.
func NewFacultyRepository(db *gorm.DB) FacultyRepository {
	return &facultyRepository{db: db}
}

func (r *facultyRepository) GetByID(ctx context.Context, id uint) (models.Faculty, error) {
	var faculty models.Faculty
	if err := r.db.WithContext(ctx).First(&faculty, id).Error; err != nil {
		return models.Faculty{}, err
	}

	return faculty, nil
}

func (r *facultyRepository) GetByEmail(ctx context.Context, email string) (models.Faculty, error) {
	var faculty models.Faculty
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&faculty).Error; err != nil {
		return models.Faculty{}, err
	}

	return faculty, nil
}

func (r *facultyRepository) ListByLead(ctx context.Context, leadID uint) ([]models.Faculty, error) {
	var faculties []models.Faculty
	err := r.db.WithContext(ctx).
		Where("lead_id = ?", leadID).
		Order("name ASC").
		Find(&faculties).Error
	if err != nil {
		return nil, err
	}

	return faculties, nil
}

func (r *facultyRepository) Create(ctx context.Context, faculty *models.Faculty) error {
	return r.db.WithContext(ctx).Create(faculty).Error
}

func (r *facultyRepository) SetPassword(ctx context.Context, id uint, hash string) error {
	return r.db.WithContext(ctx).Model(&models.Faculty{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"password_hash":        hash,
			"must_change_password": false,
		}).Error
}
