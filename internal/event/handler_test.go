package event_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	assignmentPostgres "github.com/frahmantamala/workforce-management/internal/assignment/postgres"
	"github.com/frahmantamala/workforce-management/internal/auth"
	assignmentDatamodel "github.com/frahmantamala/workforce-management/internal/core/datamodel/assignment"
	eventDatamodel "github.com/frahmantamala/workforce-management/internal/core/datamodel/event"
	projectDatamodel "github.com/frahmantamala/workforce-management/internal/core/datamodel/project"
	"github.com/frahmantamala/workforce-management/internal/event"
	eventPostgres "github.com/frahmantamala/workforce-management/internal/event/postgres"
	"github.com/frahmantamala/workforce-management/pkg/logger"
)

var _ = Describe("Event Handler Integration", func() {
	var (
		db      *gorm.DB
		router  *chi.Mux
		handler *event.Handler

		employee *auth.User
		admin    *auth.User
	)

	asUser := func(req *http.Request, u *auth.User) *http.Request {
		return req.WithContext(auth.ContextWithUser(req.Context(), u))
	}

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&eventDatamodel.Event{}, &assignmentDatamodel.ProjectAssignment{}, &projectDatamodel.Project{})
		Expect(err).NotTo(HaveOccurred())

		eventRepo := eventPostgres.NewEventRepository(db)
		assignmentRepo := assignmentPostgres.NewAssignmentRepository(db)
		service := event.NewService(eventRepo, assignmentRepo, logger.L())
		handler = event.NewHandler(service)

		router = chi.NewRouter()
		router.Post("/events", handler.CreateEvent)
		router.Get("/events", handler.GetEvents)
		router.Get("/events/{id}", handler.GetEvent)
		router.Post("/events/{id}/validate", handler.ValidateEvent)
		router.Post("/events/{id}/decline", handler.DeclineEvent)

		employee = &auth.User{ID: "emp-1", Username: "emp", Role: auth.RoleEmployee}
		admin = &auth.User{ID: "adm-1", Username: "adm", Role: auth.RoleAdmin}
	})

	createEvent := func(u *auth.User, date time.Time, eventType event.EventType) *event.Event {
		body, err := json.Marshal(event.CreateEventDTO{Date: date, EventType: eventType})
		Expect(err).NotTo(HaveOccurred())

		req := asUser(httptest.NewRequest(http.MethodPost, "/events", bytes.NewReader(body)), u)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusCreated))

		var created event.Event
		Expect(json.NewDecoder(w.Body).Decode(&created)).To(Succeed())
		return &created
	}

	It("should create a pending paid leave over HTTP", func() {
		created := createEvent(employee, time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC), event.EventTypePaidLeave)

		Expect(created.EventStatus).To(Equal(event.EventStatusPending))
		Expect(created.UserID).To(Equal(employee.ID))
	})

	It("should surface the same-day violation as a bad request", func() {
		createEvent(employee, time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC), event.EventTypePaidLeave)

		body, _ := json.Marshal(event.CreateEventDTO{
			Date:      time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
			EventType: event.EventTypePaidLeave,
		})
		req := asUser(httptest.NewRequest(http.MethodPost, "/events", bytes.NewReader(body)), employee)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(w.Body.String()).To(ContainSubstring("EVENT_SAME_DAY"))
	})

	It("should let an admin validate a pending event over HTTP", func() {
		created := createEvent(employee, time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC), event.EventTypePaidLeave)

		req := asUser(httptest.NewRequest(http.MethodPost, "/events/"+created.ID+"/validate", nil), admin)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))

		var validated event.Event
		Expect(json.NewDecoder(w.Body).Decode(&validated)).To(Succeed())
		Expect(validated.EventStatus).To(Equal(event.EventStatusAccepted))
	})

	It("should refuse a second transition over HTTP", func() {
		created := createEvent(employee, time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC), event.EventTypePaidLeave)

		req := asUser(httptest.NewRequest(http.MethodPost, "/events/"+created.ID+"/validate", nil), admin)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		Expect(w.Code).To(Equal(http.StatusOK))

		req = asUser(httptest.NewRequest(http.MethodPost, "/events/"+created.ID+"/decline", nil), admin)
		w = httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusUnauthorized))
		Expect(w.Body.String()).To(ContainSubstring("EVENT_ALREADY_FINALIZED"))
	})

	It("should scope the event list to the caller", func() {
		createEvent(employee, time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC), event.EventTypePaidLeave)
		other := &auth.User{ID: "emp-2", Username: "emp2", Role: auth.RoleEmployee}
		createEvent(other, time.Date(2026, 9, 11, 0, 0, 0, 0, time.UTC), event.EventTypeRemoteWork)

		req := asUser(httptest.NewRequest(http.MethodGet, "/events", nil), employee)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))

		var events []*event.Event
		Expect(json.NewDecoder(w.Body).Decode(&events)).To(Succeed())
		Expect(events).To(HaveLen(1))
		Expect(events[0].UserID).To(Equal(employee.ID))
	})

	It("should reject an unauthenticated request", func() {
		req := httptest.NewRequest(http.MethodGet, "/events", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusUnauthorized))
	})
})
