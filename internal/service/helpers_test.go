package service

import (
	"context"
	"io"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/tndevelopers2024/scribe-api/internal/models"
	"github.com/tndevelopers2024/scribe-api/internal/repository"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

type memoryStudentRepo struct {
	students map[uint]models.Student
	nextID   uint
}

func newMemoryStudentRepo() *memoryStudentRepo {
	return &memoryStudentRepo{students: make(map[uint]models.Student), nextID: 1}
}

func (m *memoryStudentRepo) GetByID(ctx context.Context, id uint) (models.Student, error) {
	student, ok := m.students[id]
	if !ok {
		return models.Student{}, gorm.ErrRecordNotFound
	}
	return student, nil
}

func (m *memoryStudentRepo) GetByEmail(ctx context.Context, email string) (models.Student, error) {
	for _, student := range m.students {
		if student.Email == email {
			return student, nil
		}
	}
	return models.Student{}, gorm.ErrRecordNotFound
}

func (m *memoryStudentRepo) ListByFaculty(ctx context.Context, facultyID uint) ([]models.Student, error) {
	results := make([]models.Student, 0)
	for _, student := range m.students {
		if student.FacultyID == facultyID {
			results = append(results, student)
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Name < results[j].Name })
	return results, nil
}

func (m *memoryStudentRepo) Create(ctx context.Context, student *models.Student) error {
	if student.ID == 0 {
		student.ID = m.nextID
		m.nextID++
	} else if student.ID >= m.nextID {
		m.nextID = student.ID + 1
	}
	m.students[student.ID] = *student
	return nil
}

func (m *memoryStudentRepo) SetPassword(ctx context.Context, id uint, hash string) error {
	student, ok := m.students[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	student.PasswordHash = hash
	student.MustChangePassword = false
	m.students[id] = student
	return nil
}

type memoryFacultyRepo struct {
	faculties map[uint]models.Faculty
	nextID    uint
}

func newMemoryFacultyRepo() *memoryFacultyRepo {
	return &memoryFacultyRepo{faculties: make(map[uint]models.Faculty), nextID: 1}
}

func (m *memoryFacultyRepo) GetByID(ctx context.Context, id uint) (models.Faculty, error) {
	faculty, ok := m.faculties[id]
	if !ok {
		return models.Faculty{}, gorm.ErrRecordNotFound
	}
	return faculty, nil
}

func (m *memoryFacultyRepo) GetByEmail(ctx context.Context, email string) (models.Faculty, error) {
	for _, faculty := range m.faculties {
		if faculty.Email == email {
			return faculty, nil
		}
	}
	return models.Faculty{}, gorm.ErrRecordNotFound
}

func (m *memoryFacultyRepo) ListByLead(ctx context.Context, leadID uint) ([]models.Faculty, error) {
	results := make([]models.Faculty, 0)
	for _, faculty := range m.faculties {
		if faculty.LeadID != nil && *faculty.LeadID == leadID {
			results = append(results, faculty)
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Name < results[j].Name })
	return results, nil
}

func (m *memoryFacultyRepo) Create(ctx context.Context, faculty *models.Faculty) error {
	if faculty.ID == 0 {
		faculty.ID = m.nextID
		m.nextID++
	} else if faculty.ID >= m.nextID {
		m.nextID = faculty.ID + 1
	}
	m.faculties[faculty.ID] = *faculty
	return nil
}

func (m *memoryFacultyRepo) SetPassword(ctx context.Context, id uint, hash string) error {
	faculty, ok := m.faculties[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	faculty.PasswordHash = hash
	faculty.MustChangePassword = false
	m.faculties[id] = faculty
	return nil
}

// memorySubmissionRepo mirrors the transactional repository closely enough
// for service tests: Review honors the expected-status check and records the
// points delta it would have applied, so tests can assert on it.
type memorySubmissionRepo struct {
	items       map[uint]models.SubmissionItem
	nextID      uint
	pointsDelta map[uint]int
}

func newMemorySubmissionRepo() *memorySubmissionRepo {
	return &memorySubmissionRepo{
		items:       make(map[uint]models.SubmissionItem),
		nextID:      1,
		pointsDelta: make(map[uint]int),
	}
}

func (m *memorySubmissionRepo) List(ctx context.Context, filter repository.SubmissionFilter) ([]models.SubmissionItem, error) {
	results := make([]models.SubmissionItem, 0)
	for _, item := range m.items {
		if filter.OwnerID != nil && item.OwnerID != *filter.OwnerID {
			continue
		}
		if filter.Category != nil && item.Category != *filter.Category {
			continue
		}
		if filter.Status != nil && item.Status != *filter.Status {
			continue
		}
		results = append(results, item)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].ID < results[j].ID })
	return results, nil
}

func (m *memorySubmissionRepo) GetByID(ctx context.Context, id uint) (models.SubmissionItem, error) {
	item, ok := m.items[id]
	if !ok {
		return models.SubmissionItem{}, gorm.ErrRecordNotFound
	}
	return item, nil
}

func (m *memorySubmissionRepo) Create(ctx context.Context, item *models.SubmissionItem) error {
	item.ID = m.nextID
	item.CreatedAt = time.Now()
	item.UpdatedAt = time.Now()
	m.items[item.ID] = *item
	m.nextID++
	return nil
}

func (m *memorySubmissionRepo) Update(ctx context.Context, item *models.SubmissionItem) error {
	if _, ok := m.items[item.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	item.UpdatedAt = time.Now()
	m.items[item.ID] = *item
	return nil
}

func (m *memorySubmissionRepo) Delete(ctx context.Context, id uint) error {
	item, ok := m.items[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if item.IsApproved() {
		m.pointsDelta[item.OwnerID]--
	}
	delete(m.items, id)
	return nil
}

func (m *memorySubmissionRepo) Review(ctx context.Context, update repository.ReviewUpdate) (models.SubmissionItem, error) {
	item, ok := m.items[update.ItemID]
	if !ok {
		return models.SubmissionItem{}, gorm.ErrRecordNotFound
	}
	if update.ExpectedStatus != "" && item.Status != update.ExpectedStatus {
		return models.SubmissionItem{}, repository.ErrStaleStatus
	}

	if update.Status == models.SubmissionStatusApproved && !item.IsApproved() {
		m.pointsDelta[item.OwnerID]++
	}
	if update.Status != models.SubmissionStatusApproved && item.IsApproved() {
		m.pointsDelta[item.OwnerID]--
	}

	reviewedBy := update.ReviewedBy
	reviewedAt := update.ReviewedAt
	item.Status = update.Status
	item.Feedback = update.Feedback
	item.ReviewedBy = &reviewedBy
	item.ReviewedAt = &reviewedAt
	item.UpdatedAt = time.Now()
	m.items[item.ID] = item
	return item, nil
}

func (m *memorySubmissionRepo) PendingCounts(ctx context.Context, ownerID uint) (map[models.Category]int64, error) {
	counts := make(map[models.Category]int64, len(models.Categories()))
	for _, category := range models.Categories() {
		counts[category] = 0
	}
	for _, item := range m.items {
		if item.OwnerID != ownerID {
			continue
		}
		if item.Status == models.SubmissionStatusPending || item.Status == models.SubmissionStatusResubmitted {
			counts[item.Category]++
		}
	}
	return counts, nil
}

func (m *memorySubmissionRepo) RecountPoints(ctx context.Context, ownerID uint) (int, error) {
	total := 0
	for _, item := range m.items {
		if item.OwnerID == ownerID && item.IsApproved() {
			total++
		}
	}
	return total, nil
}

type memoryNotificationRepo struct {
	notifications map[uint]models.Notification
	nextID        uint
}

func newMemoryNotificationRepo() *memoryNotificationRepo {
	return &memoryNotificationRepo{notifications: make(map[uint]models.Notification), nextID: 1}
}

func (m *memoryNotificationRepo) Create(ctx context.Context, notification *models.Notification) error {
	notification.ID = m.nextID
	notification.CreatedAt = time.Now()
	m.notifications[notification.ID] = *notification
	m.nextID++
	return nil
}

func (m *memoryNotificationRepo) ListByStudent(ctx context.Context, studentID uint, limit, offset int) ([]models.Notification, error) {
	results := make([]models.Notification, 0)
	for _, notification := range m.notifications {
		if notification.StudentID == studentID {
			results = append(results, notification)
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].ID > results[j].ID })
	if offset >= len(results) {
		return []models.Notification{}, nil
	}
	results = results[offset:]
	if limit > 0 && limit < len(results) {
		results = results[:limit]
	}
	return results, nil
}

func (m *memoryNotificationRepo) MarkRead(ctx context.Context, id, studentID uint) (models.Notification, error) {
	notification, ok := m.notifications[id]
	if !ok || notification.StudentID != studentID {
		return models.Notification{}, gorm.ErrRecordNotFound
	}
	notification.Read = true
	m.notifications[id] = notification
	return notification, nil
}
