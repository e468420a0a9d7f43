package database

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ecogai/pollution-backend/internal/domain/entities"
	"github.com/ecogai/pollution-backend/internal/domain/repositories"
	apperrors "github.com/ecogai/pollution-backend/pkg/errors"
)

// The memory adapters back local development and tests. They replace
// the throwaway in-memory array the first backend prototype kept inside
// its route handlers: same behavior, but behind the repository ports so
// the rest of the system cannot tell them from DynamoDB.

// MemoryUserRepository is an in-memory UserRepository.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]entities.User
}

// NewMemoryUserRepository creates an empty in-memory user store.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[string]entities.User)}
}

// Create stores a user, refusing duplicates by ID.
func (m *MemoryUserRepository) Create(ctx context.Context, user *entities.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.ID]; ok {
		return apperrors.NewConflictError("user already exists")
	}
	m.users[user.ID] = *user
	return nil
}

// GetByID returns a stored user.
func (m *MemoryUserRepository) GetByID(ctx context.Context, userID string) (*entities.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[userID]
	if !ok {
		return nil, apperrors.NewNotFoundError("User not found")
	}
	return &user, nil
}

// GetByEmail returns the first user with a matching email.
func (m *MemoryUserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, user := range m.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, apperrors.NewNotFoundError("User not found")
}

// Update applies a partial update.
func (m *MemoryUserRepository) Update(ctx context.Context, userID string, update entities.ProfileUpdate) (*entities.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[userID]
	if !ok {
		return nil, apperrors.NewNotFoundError("User not found")
	}
	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.Phone != nil {
		user.Phone = *update.Phone
	}
	if update.HealthConditions != nil {
		user.HealthConditions = *update.HealthConditions
	}
	if update.ProfileImage != nil {
		user.ProfileImage = *update.ProfileImage
	}
	if update.Barangay != nil {
		user.Barangay = *update.Barangay
	}
	if update.City != nil {
		user.City = *update.City
	}
	user.UpdatedAt = time.Now().UTC()
	m.users[userID] = user
	return &user, nil
}

// MemoryReportRepository is an in-memory ReportRepository.
type MemoryReportRepository struct {
	mu      sync.RWMutex
	reports map[string]entities.PollutionReport
}

// NewMemoryReportRepository creates an empty in-memory report store.
func NewMemoryReportRepository() *MemoryReportRepository {
	return &MemoryReportRepository{reports: make(map[string]entities.PollutionReport)}
}

// Create stores a report.
func (m *MemoryReportRepository) Create(ctx context.Context, report *entities.PollutionReport) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.reports[report.ID]; ok {
		return apperrors.NewConflictError("report already exists")
	}
	m.reports[report.ID] = *report
	return nil
}

// GetByID returns a stored report.
func (m *MemoryReportRepository) GetByID(ctx context.Context, reportID string) (*entities.PollutionReport, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	report, ok := m.reports[reportID]
	if !ok {
		return nil, apperrors.NewNotFoundError("Report not found")
	}
	return &report, nil
}

// List filters and sorts reports newest first.
func (m *MemoryReportRepository) List(ctx context.Context, filter repositories.ReportFilter) ([]*entities.PollutionReport, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	var result []*entities.PollutionReport
	for _, report := range m.reports {
		r := report
		if filter.UserID != "" && r.UserID != filter.UserID {
			continue
		}
		if filter.Type != "" && r.Type != filter.Type {
			continue
		}
		if filter.Severity != "" && r.Severity != filter.Severity {
			continue
		}
		if filter.Barangay != "" && r.Location.Barangay != filter.Barangay {
			continue
		}
		if filter.City != "" && r.Location.City != filter.City {
			continue
		}
		result = append(result, &r)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].TimestampMS > result[j].TimestampMS
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// UpdateStatus moves a report to a new lifecycle state.
func (m *MemoryReportRepository) UpdateStatus(ctx context.Context, reportID string, status entities.ReportStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	report, ok := m.reports[reportID]
	if !ok {
		return apperrors.NewNotFoundError("Report not found")
	}
	report.Status = status
	report.IsVerified = status == entities.StatusVerified
	m.reports[reportID] = report
	return nil
}

// MemoryAlertRepository is an in-memory AlertRepository.
type MemoryAlertRepository struct {
	mu     sync.RWMutex
	alerts []entities.HealthAlert
}

// NewMemoryAlertRepository creates an empty in-memory alert store.
func NewMemoryAlertRepository() *MemoryAlertRepository {
	return &MemoryAlertRepository{}
}

// Create stores an alert.
func (m *MemoryAlertRepository) Create(ctx context.Context, alert *entities.HealthAlert) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.alerts = append(m.alerts, *alert)
	return nil
}

// ListByUser returns a user's alerts, newest first.
func (m *MemoryAlertRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*entities.HealthAlert, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []*entities.HealthAlert
	for i := range m.alerts {
		if m.alerts[i].UserID == userID {
			a := m.alerts[i]
			result = append(result, &a)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// MemoryVerificationRepository is an in-memory VerificationRepository.
type MemoryVerificationRepository struct {
	mu    sync.RWMutex
	codes map[string]entities.Verification
}

// NewMemoryVerificationRepository creates an empty in-memory code store.
func NewMemoryVerificationRepository() *MemoryVerificationRepository {
	return &MemoryVerificationRepository{codes: make(map[string]entities.Verification)}
}

// Put upserts the code for an email.
func (m *MemoryVerificationRepository) Put(ctx context.Context, verification *entities.Verification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.codes[verification.Email] = *verification
	return nil
}

// Get fetches the pending code for an email.
func (m *MemoryVerificationRepository) Get(ctx context.Context, email string) (*entities.Verification, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	verification, ok := m.codes[email]
	if !ok {
		return nil, apperrors.NewNotFoundError("no pending verification")
	}
	return &verification, nil
}

// Delete removes a consumed or invalidated code.
func (m *MemoryVerificationRepository) Delete(ctx context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.codes, email)
	return nil
}
