package event_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/workforce-management/internal"
	"github.com/frahmantamala/workforce-management/internal/auth"
	"github.com/frahmantamala/workforce-management/internal/event"
)

func TestEventService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Event Service Suite")
}

// MockRepository implements event.Repository for testing
type MockRepository struct {
	events     map[string]*event.Event
	shouldFail bool
	failError  error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{events: make(map[string]*event.Event)}
}

func (m *MockRepository) Create(e *event.Event) error {
	if m.shouldFail {
		return m.failError
	}
	copied := *e
	m.events[e.ID] = &copied
	return nil
}

func (m *MockRepository) GetByID(id string) (*event.Event, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	e, ok := m.events[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	copied := *e
	return &copied, nil
}

func (m *MockRepository) GetByIDForUser(id, userID string) (*event.Event, error) {
	e, err := m.GetByID(id)
	if err != nil {
		return nil, err
	}
	if e.UserID != userID {
		return nil, errors.New("record not found")
	}
	return e, nil
}

func (m *MockRepository) GetByUserID(userID string) ([]*event.Event, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	var result []*event.Event
	for _, e := range m.events {
		if e.UserID == userID {
			result = append(result, e)
		}
	}
	return result, nil
}

func (m *MockRepository) GetAll() ([]*event.Event, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	var result []*event.Event
	for _, e := range m.events {
		result = append(result, e)
	}
	return result, nil
}

func (m *MockRepository) GetFromDate(userID string, date time.Time) ([]*event.Event, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	var result []*event.Event
	for _, e := range m.events {
		if e.UserID == userID && !e.Date.Before(date) {
			result = append(result, e)
		}
	}
	return result, nil
}

func (m *MockRepository) GetRemoteWorkFromDate(userID string, from time.Time) ([]*event.Event, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	var result []*event.Event
	for _, e := range m.events {
		if e.UserID == userID && e.EventType == event.EventTypeRemoteWork && !e.Date.Before(from) {
			result = append(result, e)
		}
	}
	return result, nil
}

func (m *MockRepository) UpdateStatusIfPending(id string, status event.EventStatus) (int64, error) {
	if m.shouldFail {
		return 0, m.failError
	}
	e, ok := m.events[id]
	if !ok || e.EventStatus != event.EventStatusPending {
		return 0, nil
	}
	e.EventStatus = status
	e.UpdatedAt = time.Now()
	return 1, nil
}

func (m *MockRepository) AddEvent(e *event.Event) {
	copied := *e
	m.events[e.ID] = &copied
}

// MockAssignmentDirectory implements event.AssignmentDirectory for testing
type MockAssignmentDirectory struct {
	assignedOnDate bool
	leadOnDate     bool
	shouldFail     bool
	failError      error
}

func (m *MockAssignmentDirectory) HasAssignmentOnDate(userID string, dayStart, dayEnd time.Time) (bool, error) {
	if m.shouldFail {
		return false, m.failError
	}
	return m.assignedOnDate, nil
}

func (m *MockAssignmentDirectory) IsLeadOnDate(leadID, ownerID string, dayStart, dayEnd time.Time) (bool, error) {
	if m.shouldFail {
		return false, m.failError
	}
	return m.leadOnDate, nil
}

var _ = Describe("Event Service", func() {
	var (
		mockRepo *MockRepository
		mockDir  *MockAssignmentDirectory
		service  *event.Service

		employee *auth.User
		admin    *auth.User
		manager  *auth.User
	)

	day := func(d int) time.Time {
		return time.Date(2026, 9, d, 0, 0, 0, 0, time.UTC)
	}

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		mockDir = &MockAssignmentDirectory{}
		log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = event.NewService(mockRepo, mockDir, log)

		employee = &auth.User{ID: "emp-1", Username: "emp", Role: auth.RoleEmployee}
		admin = &auth.User{ID: "adm-1", Username: "adm", Role: auth.RoleAdmin}
		manager = &auth.User{ID: "mgr-1", Username: "mgr", Role: auth.RoleProjectManager}
	})

	Describe("CreateEvent", func() {
		It("should create a pending paid leave", func() {
			ev, err := service.CreateEvent(event.CreateEventDTO{
				Date:      day(10),
				EventType: event.EventTypePaidLeave,
			}, employee)

			Expect(err).NotTo(HaveOccurred())
			Expect(ev.EventStatus).To(Equal(event.EventStatusPending))
			Expect(ev.UserID).To(Equal(employee.ID))
		})

		It("should auto-accept remote work", func() {
			ev, err := service.CreateEvent(event.CreateEventDTO{
				Date:      day(10),
				EventType: event.EventTypeRemoteWork,
			}, employee)

			Expect(err).NotTo(HaveOccurred())
			Expect(ev.EventStatus).To(Equal(event.EventStatusAccepted))
		})

		It("should reject an unknown event type", func() {
			_, err := service.CreateEvent(event.CreateEventDTO{
				Date:      day(10),
				EventType: event.EventType("Sabbatical"),
			}, employee)

			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidEventType))
		})

		It("should reject when an event already exists on the same day", func() {
			mockRepo.AddEvent(&event.Event{
				ID:        "ev-existing",
				UserID:    employee.ID,
				Date:      day(10),
				EventType: event.EventTypePaidLeave,
			})

			_, err := service.CreateEvent(event.CreateEventDTO{
				Date:      day(10),
				EventType: event.EventTypePaidLeave,
			}, employee)

			Expect(err).To(Equal(internal.ErrEventSameDay))
		})

		It("should reject when an existing event is dated after the candidate", func() {
			mockRepo.AddEvent(&event.Event{
				ID:        "ev-later",
				UserID:    employee.ID,
				Date:      day(20),
				EventType: event.EventTypePaidLeave,
			})

			_, err := service.CreateEvent(event.CreateEventDTO{
				Date:      day(10),
				EventType: event.EventTypePaidLeave,
			}, employee)

			Expect(err).To(Equal(internal.ErrEventSameDay))
		})

		It("should not count another user's events", func() {
			mockRepo.AddEvent(&event.Event{
				ID:        "ev-other",
				UserID:    "someone-else",
				Date:      day(10),
				EventType: event.EventTypePaidLeave,
			})

			_, err := service.CreateEvent(event.CreateEventDTO{
				Date:      day(10),
				EventType: event.EventTypePaidLeave,
			}, employee)

			Expect(err).NotTo(HaveOccurred())
		})

		It("should allow a second remote work day in the same week", func() {
			// 2026-09-07 is a Monday
			mockRepo.AddEvent(&event.Event{
				ID:        "rw-1",
				UserID:    employee.ID,
				Date:      day(7),
				EventType: event.EventTypeRemoteWork,
			})

			_, err := service.CreateEvent(event.CreateEventDTO{
				Date:      day(9),
				EventType: event.EventTypeRemoteWork,
			}, employee)

			Expect(err).NotTo(HaveOccurred())
		})

		It("should reject a third remote work day in the same week", func() {
			mockRepo.AddEvent(&event.Event{
				ID:        "rw-1",
				UserID:    employee.ID,
				Date:      day(7),
				EventType: event.EventTypeRemoteWork,
			})
			mockRepo.AddEvent(&event.Event{
				ID:        "rw-2",
				UserID:    employee.ID,
				Date:      day(8),
				EventType: event.EventTypeRemoteWork,
			})

			_, err := service.CreateEvent(event.CreateEventDTO{
				Date:      day(9),
				EventType: event.EventTypeRemoteWork,
			}, employee)

			Expect(err).To(Equal(internal.ErrEventWeeklyCap))
		})

		It("should not apply the weekly cap to paid leave", func() {
			mockRepo.AddEvent(&event.Event{
				ID:        "rw-1",
				UserID:    employee.ID,
				Date:      day(7),
				EventType: event.EventTypeRemoteWork,
			})
			mockRepo.AddEvent(&event.Event{
				ID:        "rw-2",
				UserID:    employee.ID,
				Date:      day(8),
				EventType: event.EventTypeRemoteWork,
			})

			_, err := service.CreateEvent(event.CreateEventDTO{
				Date:      day(9),
				EventType: event.EventTypePaidLeave,
			}, employee)

			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("Validate and Decline", func() {
		var pending *event.Event

		BeforeEach(func() {
			pending = &event.Event{
				ID:          "ev-pending",
				UserID:      employee.ID,
				Date:        day(3),
				EventType:   event.EventTypePaidLeave,
				EventStatus: event.EventStatusPending,
			}
			mockRepo.AddEvent(pending)
		})

		It("should let an admin validate any pending event", func() {
			ev, err := service.Validate(pending.ID, admin)

			Expect(err).NotTo(HaveOccurred())
			Expect(ev.EventStatus).To(Equal(event.EventStatusAccepted))
		})

		It("should let an admin decline any pending event", func() {
			ev, err := service.Decline(pending.ID, admin)

			Expect(err).NotTo(HaveOccurred())
			Expect(ev.EventStatus).To(Equal(event.EventStatusDeclined))
		})

		It("should return not found for an unknown event", func() {
			_, err := service.Validate("no-such-event", admin)

			Expect(err).To(Equal(internal.ErrEventNotFound))
		})

		It("should refuse to touch a finalized event, even for an admin", func() {
			mockRepo.AddEvent(&event.Event{
				ID:          "ev-done",
				UserID:      employee.ID,
				Date:        day(3),
				EventType:   event.EventTypePaidLeave,
				EventStatus: event.EventStatusAccepted,
			})

			_, err := service.Decline("ev-done", admin)

			Expect(err).To(Equal(internal.ErrEventFinalized))
		})

		It("should reject a requester with no assignment on the day", func() {
			mockDir.assignedOnDate = false

			_, err := service.Validate(pending.ID, manager)

			Expect(err).To(Equal(internal.ErrNotAssignedOnDate))
		})

		It("should reject a requester who does not lead the owner's project", func() {
			mockDir.assignedOnDate = true
			mockDir.leadOnDate = false

			_, err := service.Validate(pending.ID, manager)

			Expect(err).To(Equal(internal.ErrNotEventManager))
		})

		It("should let the project lead validate the event", func() {
			mockDir.assignedOnDate = true
			mockDir.leadOnDate = true

			ev, err := service.Validate(pending.ID, manager)

			Expect(err).NotTo(HaveOccurred())
			Expect(ev.EventStatus).To(Equal(event.EventStatusAccepted))
		})

		It("should refuse an owner declining their own accepted event", func() {
			mockRepo.AddEvent(&event.Event{
				ID:          "ev-own",
				UserID:      employee.ID,
				Date:        day(3),
				EventType:   event.EventTypeRemoteWork,
				EventStatus: event.EventStatusAccepted,
			})

			_, err := service.Decline("ev-own", employee)

			Expect(err).To(Equal(internal.ErrEventFinalized))
		})

		It("should report finalized when a concurrent transition won", func() {
			mockDir.assignedOnDate = true
			mockDir.leadOnDate = true

			// Simulate a racing transition landing between read and write.
			mockRepo.events[pending.ID].EventStatus = event.EventStatusDeclined

			_, err := service.Validate(pending.ID, manager)

			Expect(err).To(Equal(internal.ErrEventFinalized))
		})
	})

	Describe("List", func() {
		BeforeEach(func() {
			mockRepo.AddEvent(&event.Event{ID: "ev-1", UserID: employee.ID, Date: day(1), EventType: event.EventTypePaidLeave})
			mockRepo.AddEvent(&event.Event{ID: "ev-2", UserID: "other", Date: day(2), EventType: event.EventTypePaidLeave})
		})

		It("should return only the employee's own events", func() {
			events, err := service.List(employee)

			Expect(err).NotTo(HaveOccurred())
			Expect(events).To(HaveLen(1))
			Expect(events[0].ID).To(Equal("ev-1"))
		})

		It("should return all events for an admin", func() {
			events, err := service.List(admin)

			Expect(err).NotTo(HaveOccurred())
			Expect(events).To(HaveLen(2))
		})

		It("should return all events for a project manager", func() {
			events, err := service.List(manager)

			Expect(err).NotTo(HaveOccurred())
			Expect(events).To(HaveLen(2))
		})

		It("should deny an unrecognized role", func() {
			stranger := &auth.User{ID: "x", Role: "Contractor"}

			_, err := service.List(stranger)

			Expect(err).To(Equal(internal.ErrUnknownRole))
		})
	})

	Describe("Get", func() {
		BeforeEach(func() {
			mockRepo.AddEvent(&event.Event{ID: "ev-1", UserID: employee.ID, Date: day(1), EventType: event.EventTypePaidLeave})
		})

		It("should return the employee's own event", func() {
			ev, err := service.Get("ev-1", employee)

			Expect(err).NotTo(HaveOccurred())
			Expect(ev.ID).To(Equal("ev-1"))
		})

		It("should hide another user's event from an employee", func() {
			other := &auth.User{ID: "other", Role: auth.RoleEmployee}

			_, err := service.Get("ev-1", other)

			Expect(err).To(Equal(internal.ErrEventNotFound))
		})

		It("should return any event for an admin", func() {
			ev, err := service.Get("ev-1", admin)

			Expect(err).NotTo(HaveOccurred())
			Expect(ev.ID).To(Equal("ev-1"))
		})
	})
})
