package update_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueBooking/internal/api/middleware"
	"github.com/m04kA/SMC-VenueBooking/internal/domain"
	"github.com/m04kA/SMC-VenueBooking/internal/service/bookings/models"
	updateBooking "github.com/m04kA/SMC-VenueBooking/internal/usecase/update_booking"
	"github.com/m04kA/SMC-VenueBooking/pkg/logger"
)

type fakeUseCase struct {
	got *updateBooking.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *updateBooking.Request) (*updateBooking.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &updateBooking.Response{
		Booking:   &models.BookingResponse{ID: req.BookingID, Title: req.Title, Status: string(domain.StatusPending)},
		Conflicts: []models.ConflictView{},
	}, nil
}

const body = `{"title":"Gala","description":"Annual dinner","category":"Dinner","venue":"Al Fresco","date":"2024-06-02","startTime":"17:00","additionalHours":1}`

func serve(uc UpdateBookingUseCase, bookingID, payload string, actor *domain.Actor) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/bookings/{bookingId}", NewHandler(uc, logger.Nop()).Handle).Methods(http.MethodPut)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/bookings/"+bookingID, strings.NewReader(payload))
	if actor != nil {
		req = req.WithContext(middleware.WithActor(req.Context(), *actor))
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandle_OK(t *testing.T) {
	id := uuid.New()
	actor := domain.Actor{ID: uuid.New(), Role: domain.RoleUser}
	uc := &fakeUseCase{}

	rec := serve(uc, id.String(), body, &actor)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, id, uc.got.BookingID)
	assert.Equal(t, actor, uc.got.Actor)
	assert.Equal(t, "Al Fresco", uc.got.Venue)
	assert.Equal(t, "17:00", uc.got.StartTime)
	assert.Equal(t, 1, uc.got.AdditionalHours)

	var resp updateBooking.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Gala", resp.Booking.Title)
	assert.NotNil(t, resp.Conflicts)
}

func TestHandle_ErrorMapping(t *testing.T) {
	actor := domain.Actor{ID: uuid.New(), Role: domain.RoleUser}

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid input", updateBooking.ErrInvalidInput, http.StatusBadRequest},
		{"unknown venue", updateBooking.ErrUnknownVenue, http.StatusBadRequest},
		{"not found", updateBooking.ErrBookingNotFound, http.StatusNotFound},
		{"forbidden", updateBooking.ErrAccessDenied, http.StatusForbidden},
		{"deleted", updateBooking.ErrAlreadyDeleted, http.StatusConflict},
		{"not editable", updateBooking.ErrNotEditable, http.StatusConflict},
		{"too soon", updateBooking.ErrTooSoon, http.StatusUnprocessableEntity},
		{"organizer", updateBooking.ErrOrganizerRequired, http.StatusUnprocessableEntity},
		{"blocked", updateBooking.ErrConflictDetected, http.StatusConflict},
		{"internal", updateBooking.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeUseCase{err: tt.err}, uuid.NewString(), body, &actor)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandle_RejectsBeforeUseCase(t *testing.T) {
	actor := domain.Actor{ID: uuid.New(), Role: domain.RoleUser}

	tests := []struct {
		name       string
		bookingID  string
		payload    string
		actor      *domain.Actor
		wantStatus int
	}{
		{"bad booking id", "123", body, &actor, http.StatusBadRequest},
		{"no actor", uuid.NewString(), body, nil, http.StatusUnauthorized},
		{"empty body", uuid.NewString(), "", &actor, http.StatusBadRequest},
		{"status is not editable here", uuid.NewString(), `{"title":"Gala","status":"APPROVED"}`, &actor, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{}
			rec := serve(uc, tt.bookingID, tt.payload, tt.actor)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Nil(t, uc.got)
		})
	}
}
