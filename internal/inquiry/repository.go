package inquiry

import (
	"context"
	"strings"
	"sync"

	"gorm.io/gorm"

	"github.com/MirBabaTravels/booking_svc/internal/localcache"
	"github.com/MirBabaTravels/booking_svc/internal/model"
	"github.com/MirBabaTravels/booking_svc/internal/storage"
)

// Filter selects inquiries by contact details. Empty fields match everything;
// when both email and phone are present a record matches if either one does.
type Filter struct {
	Email string
	Phone string
}

// IsEmpty reports whether the filter matches every inquiry.
func (filter Filter) IsEmpty() bool {
	return strings.TrimSpace(filter.Email) == "" && strings.TrimSpace(filter.Phone) == ""
}

// Matches reports whether the inquiry satisfies the filter.
func (filter Filter) Matches(record model.Inquiry) bool {
	if filter.IsEmpty() {
		return true
	}
	if filter.Email != "" && record.Email == filter.Email {
		return true
	}
	if filter.Phone != "" && record.Phone == filter.Phone {
		return true
	}
	return false
}

// Repository provides inquiry persistence operations over a single backing
// location. Two implementations exist: the database-backed RemoteRepository
// and the cache-backed LocalCacheRepository.
type Repository interface {
	Insert(ctx context.Context, record *model.Inquiry) error
	List(ctx context.Context, filter Filter) ([]model.Inquiry, error)
	UpdateStatus(ctx context.Context, id string, status string) error
	Delete(ctx context.Context, id string) error
}

// RemoteRepository persists inquiries in the application database.
type RemoteRepository struct {
	database *gorm.DB
}

// NewRemoteRepository creates a RemoteRepository over the provided database.
func NewRemoteRepository(database *gorm.DB) *RemoteRepository {
	return &RemoteRepository{database: database}
}

// Insert stores the record, assigning an identifier when none is set. The
// assigned identifier and creation timestamp are written back to the record.
func (repository *RemoteRepository) Insert(ctx context.Context, record *model.Inquiry) error {
	if record.ID == "" {
		record.ID = storage.NewID()
	}
	return repository.database.WithContext(ctx).Create(record).Error
}

// List returns inquiries matching the filter, newest first.
func (repository *RemoteRepository) List(ctx context.Context, filter Filter) ([]model.Inquiry, error) {
	query := repository.database.WithContext(ctx).Model(&model.Inquiry{})

	switch {
	case filter.Email != "" && filter.Phone != "":
		query = query.Where("email = ? OR phone = ?", filter.Email, filter.Phone)
	case filter.Email != "":
		query = query.Where("email = ?", filter.Email)
	case filter.Phone != "":
		query = query.Where("phone = ?", filter.Phone)
	}

	var records []model.Inquiry
	if queryErr := query.Order("created_at DESC").Find(&records).Error; queryErr != nil {
		return nil, queryErr
	}
	return records, nil
}

// UpdateStatus sets the status of the inquiry with the given identifier.
// An unknown identifier updates nothing and is not an error.
func (repository *RemoteRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	return repository.database.WithContext(ctx).
		Model(&model.Inquiry{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// Delete removes the inquiry with the given identifier. An unknown
// identifier removes nothing and is not an error.
func (repository *RemoteRepository) Delete(ctx context.Context, id string) error {
	return repository.database.WithContext(ctx).Delete(&model.Inquiry{}, "id = ?", id).Error
}

// LocalCacheRepository persists inquiries through a localcache.Store holding
// the full list as a single document. Every mutation is a read-modify-write
// of that document, so a mutex serializes them to preserve the no-lost-update
// property under concurrent handlers.
type LocalCacheRepository struct {
	store localcache.Store
	mutex sync.Mutex
}

// NewLocalCacheRepository creates a LocalCacheRepository over the provided store.
func NewLocalCacheRepository(store localcache.Store) *LocalCacheRepository {
	return &LocalCacheRepository{store: store}
}

// Insert prepends the record to the cached list, keeping newest-first order
// without a separate sort at write time.
func (repository *LocalCacheRepository) Insert(_ context.Context, record *model.Inquiry) error {
	repository.mutex.Lock()
	defer repository.mutex.Unlock()

	existing, loadErr := repository.store.Load()
	if loadErr != nil {
		return loadErr
	}

	updated := make([]model.Inquiry, 0, len(existing)+1)
	updated = append(updated, *record)
	updated = append(updated, existing...)
	return repository.store.Save(updated)
}

// List returns cached inquiries matching the filter.
func (repository *LocalCacheRepository) List(_ context.Context, filter Filter) ([]model.Inquiry, error) {
	repository.mutex.Lock()
	defer repository.mutex.Unlock()

	records, loadErr := repository.store.Load()
	if loadErr != nil {
		return nil, loadErr
	}

	matched := make([]model.Inquiry, 0, len(records))
	for _, record := range records {
		if filter.Matches(record) {
			matched = append(matched, record)
		}
	}
	return matched, nil
}

// UpdateStatus rewrites the cached list with the matching record's status
// replaced. The rewrite always runs; an absent identifier changes nothing.
func (repository *LocalCacheRepository) UpdateStatus(_ context.Context, id string, status string) error {
	repository.mutex.Lock()
	defer repository.mutex.Unlock()

	records, loadErr := repository.store.Load()
	if loadErr != nil {
		return loadErr
	}

	for index := range records {
		if records[index].ID == id {
			records[index].Status = status
		}
	}
	return repository.store.Save(records)
}

// Delete rewrites the cached list with the matching record removed.
func (repository *LocalCacheRepository) Delete(_ context.Context, id string) error {
	repository.mutex.Lock()
	defer repository.mutex.Unlock()

	records, loadErr := repository.store.Load()
	if loadErr != nil {
		return loadErr
	}

	remaining := make([]model.Inquiry, 0, len(records))
	for _, record := range records {
		if record.ID != id {
			remaining = append(remaining, record)
		}
	}
	return repository.store.Save(remaining)
}
