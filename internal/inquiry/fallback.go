package inquiry

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/MirBabaTravels/booking_svc/internal/model"
)

const (
	logEventRemoteInsertFailed = "remote_insert_failed"
	logEventRemoteListFailed   = "remote_list_failed"
	logEventRemoteUpdateFailed = "remote_update_failed"
	logEventRemoteDeleteFailed = "remote_delete_failed"
	logEventLocalListFailed    = "local_list_failed"
	logFieldInquiryID          = "inquiry_id"

	errorMessageFallbackWrite = "inquiry: fallback cache write"
	errorMessageMissingFields = "inquiry: missing required fields"
)

// NewInquiry carries the fields of a submission before it has been assigned
// an identifier. PackageFromDatabase reports whether PackageID references a
// package row that actually exists in the database; references to builtin
// catalog entries are dropped so no dangling foreign reference is stored.
type NewInquiry struct {
	Name                string
	Email               string
	Phone               string
	Message             string
	PackageID           string
	PackageFromDatabase bool
}

// Store mediates inquiry reads and writes across the database and the local
// fallback cache. Writes try the database first and fall back to the cache,
// so a given submission lands in exactly one of the two locations; reads see
// the union of both.
type Store struct {
	remote Repository
	local  Repository
	logger *zap.Logger
	clock  func() time.Time
}

// NewStore composes the remote and local repositories into a fallback store.
func NewStore(remote Repository, local Repository, logger *zap.Logger) *Store {
	return &Store{
		remote: remote,
		local:  local,
		logger: logger,
		clock:  time.Now,
	}
}

// WithClock overrides the time source. Intended for tests.
func (store *Store) WithClock(clock func() time.Time) *Store {
	store.clock = clock
	return store
}

// Create persists the submission. The database insert runs first; when it
// succeeds the database-assigned identifier and timestamp are authoritative.
// When it fails for any reason the submission is written to the local cache
// instead, under a timestamp-based identifier, and the failure is not
// surfaced to the submitter. Create only returns an error when both
// locations reject the write.
func (store *Store) Create(ctx context.Context, submission NewInquiry) (model.Inquiry, error) {
	if validationErr := validateSubmission(submission); validationErr != nil {
		return model.Inquiry{}, validationErr
	}

	record := model.Inquiry{
		Name:    strings.TrimSpace(submission.Name),
		Email:   strings.TrimSpace(submission.Email),
		Phone:   strings.TrimSpace(submission.Phone),
		Message: strings.TrimSpace(submission.Message),
		Status:  model.InquiryStatusPending,
	}
	if submission.PackageFromDatabase {
		record.PackageID = strings.TrimSpace(submission.PackageID)
	}

	remoteRecord := record
	remoteErr := store.remote.Insert(ctx, &remoteRecord)
	if remoteErr == nil {
		return remoteRecord, nil
	}
	store.logger.Warn(logEventRemoteInsertFailed, zap.Error(remoteErr))

	now := store.clock()
	localRecord := record
	localRecord.ID = strconv.FormatInt(now.UnixMilli(), 10)
	localRecord.CreatedAt = now

	if localErr := store.local.Insert(ctx, &localRecord); localErr != nil {
		return model.Inquiry{}, fmt.Errorf("%s: %w", errorMessageFallbackWrite, localErr)
	}
	return localRecord, nil
}

// List returns the union of both locations, deduplicated by identifier and
// sorted newest first. A database failure degrades the result to cache-only
// records; List itself never fails.
func (store *Store) List(ctx context.Context, filter Filter) ([]model.Inquiry, error) {
	remoteRecords, remoteErr := store.remote.List(ctx, filter)
	if remoteErr != nil {
		store.logger.Warn(logEventRemoteListFailed, zap.Error(remoteErr))
		remoteRecords = nil
	}

	localRecords, localErr := store.local.List(ctx, filter)
	if localErr != nil {
		store.logger.Warn(logEventLocalListFailed, zap.Error(localErr))
		localRecords = nil
	}

	remoteIdentifiers := make(map[string]struct{}, len(remoteRecords))
	for _, record := range remoteRecords {
		remoteIdentifiers[record.ID] = struct{}{}
	}

	merged := make([]model.Inquiry, 0, len(remoteRecords)+len(localRecords))
	merged = append(merged, remoteRecords...)
	for _, record := range localRecords {
		if _, duplicate := remoteIdentifiers[record.ID]; duplicate {
			continue
		}
		merged = append(merged, record)
	}

	sort.SliceStable(merged, func(first, second int) bool {
		return merged[first].CreatedAt.After(merged[second].CreatedAt)
	})
	return merged, nil
}

// UpdateStatus applies the status change against both locations. The caller
// does not know which location holds the identifier, and since identifier
// spaces never overlap the side that does not hold it performs a harmless
// no-op. A database failure is tolerated and logged.
func (store *Store) UpdateStatus(ctx context.Context, id string, status string) error {
	if remoteErr := store.remote.UpdateStatus(ctx, id, status); remoteErr != nil {
		store.logger.Warn(logEventRemoteUpdateFailed, zap.String(logFieldInquiryID, id), zap.Error(remoteErr))
	}
	return store.local.UpdateStatus(ctx, id, status)
}

// Delete removes the inquiry from both locations. Deleting an identifier
// neither location holds is a no-op.
func (store *Store) Delete(ctx context.Context, id string) error {
	if remoteErr := store.remote.Delete(ctx, id); remoteErr != nil {
		store.logger.Warn(logEventRemoteDeleteFailed, zap.String(logFieldInquiryID, id), zap.Error(remoteErr))
	}
	return store.local.Delete(ctx, id)
}

func validateSubmission(submission NewInquiry) error {
	var missingFields []string

	if strings.TrimSpace(submission.Name) == "" {
		missingFields = append(missingFields, "name")
	}
	if strings.TrimSpace(submission.Email) == "" {
		missingFields = append(missingFields, "email")
	}
	if strings.TrimSpace(submission.Phone) == "" {
		missingFields = append(missingFields, "phone")
	}
	if strings.TrimSpace(submission.Message) == "" {
		missingFields = append(missingFields, "message")
	}

	if len(missingFields) == 0 {
		return nil
	}
	return fmt.Errorf("%s: %s", errorMessageMissingFields, strings.Join(missingFields, ", "))
}
