package postgres

import (
	"time"

	"gorm.io/gorm"

	eventDatamodel "github.com/frahmantamala/workforce-management/internal/core/datamodel/event"
	"github.com/frahmantamala/workforce-management/internal/event"
)

// EventRepository implements the event.Repository interface using GORM
type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(e *event.Event) error {
	return r.db.Create(event.ToDataModel(e)).Error
}

func (r *EventRepository) GetByID(id string) (*event.Event, error) {
	var dm eventDatamodel.Event
	if err := r.db.Where("id = ?", id).First(&dm).Error; err != nil {
		return nil, err
	}
	return event.FromDataModel(&dm), nil
}

// GetByIDForUser returns the event only when it belongs to the given user.
func (r *EventRepository) GetByIDForUser(id, userID string) (*event.Event, error) {
	var dm eventDatamodel.Event
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&dm).Error; err != nil {
		return nil, err
	}
	return event.FromDataModel(&dm), nil
}

func (r *EventRepository) GetByUserID(userID string) ([]*event.Event, error) {
	var dms []*eventDatamodel.Event
	if err := r.db.Where("user_id = ?", userID).Find(&dms).Error; err != nil {
		return nil, err
	}
	return event.FromDataModelSlice(dms), nil
}

func (r *EventRepository) GetAll() ([]*event.Event, error) {
	var dms []*eventDatamodel.Event
	if err := r.db.Find(&dms).Error; err != nil {
		return nil, err
	}
	return event.FromDataModelSlice(dms), nil
}

// GetFromDate lists the user's events dated on or after the given instant.
func (r *EventRepository) GetFromDate(userID string, date time.Time) ([]*event.Event, error) {
	var dms []*eventDatamodel.Event
	err := r.db.
		Where("user_id = ? AND date >= ?", userID, date).
		Find(&dms).Error
	if err != nil {
		return nil, err
	}
	return event.FromDataModelSlice(dms), nil
}

// GetRemoteWorkFromDate lists the user's remote-work events dated on or after
// the given instant, regardless of status.
func (r *EventRepository) GetRemoteWorkFromDate(userID string, from time.Time) ([]*event.Event, error) {
	var dms []*eventDatamodel.Event
	err := r.db.
		Where("user_id = ? AND event_type = ? AND date >= ?", userID, string(event.EventTypeRemoteWork), from).
		Find(&dms).Error
	if err != nil {
		return nil, err
	}
	return event.FromDataModelSlice(dms), nil
}

// UpdateStatusIfPending flips the event into the given status only while it
// is still pending, and reports how many rows changed. Zero rows means a
// concurrent transition already finalized the event.
func (r *EventRepository) UpdateStatusIfPending(id string, status event.EventStatus) (int64, error) {
	result := r.db.Model(&eventDatamodel.Event{}).
		Where("id = ? AND event_status = ?", id, string(event.EventStatusPending)).
		Updates(map[string]interface{}{
			"event_status": string(status),
			"updated_at":   time.Now(),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// AcceptedPaidLeaveDates lists the dates of the user's accepted paid-leave
// events within [from, to]. The meal-voucher computation subtracts these from
// the working days of a month.
func (r *EventRepository) AcceptedPaidLeaveDates(userID string, from, to time.Time) ([]time.Time, error) {
	var dms []*eventDatamodel.Event
	err := r.db.
		Where("user_id = ? AND event_type = ? AND event_status = ? AND date >= ? AND date <= ?",
			userID, string(event.EventTypePaidLeave), string(event.EventStatusAccepted), from, to).
		Find(&dms).Error
	if err != nil {
		return nil, err
	}
	dates := make([]time.Time, len(dms))
	for i, dm := range dms {
		dates[i] = dm.Date
	}
	return dates, nil
}
