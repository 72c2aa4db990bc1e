package get_booking_conflicts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueBooking/internal/api/middleware"
	"github.com/m04kA/SMC-VenueBooking/internal/domain"
	"github.com/m04kA/SMC-VenueBooking/internal/service/bookings"
	"github.com/m04kA/SMC-VenueBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-VenueBooking/pkg/logger"
)

type fakeService struct {
	gotID uuid.UUID
	err   error
}

func (f *fakeService) GetConflicts(_ context.Context, id uuid.UUID, _ domain.Actor) (*models.ConflictsResponse, error) {
	f.gotID = id
	if f.err != nil {
		return nil, f.err
	}
	return &models.ConflictsResponse{
		BookingID: id,
		Conflicts: []models.ConflictView{{ID: uuid.New(), Venue: "function hall", Status: "APPROVED"}},
	}, nil
}

func serve(svc BookingService, bookingID string, actor *domain.Actor) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/bookings/{bookingId}/conflicts", NewHandler(svc, logger.Nop()).Handle).Methods(http.MethodGet)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/"+bookingID+"/conflicts", nil)
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
	svc := &fakeService{}

	rec := serve(svc, id.String(), &actor)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, id, svc.gotID)

	var raw struct {
		BookingID uuid.UUID                `json:"bookingId"`
		Conflicts []map[string]interface{} `json:"conflicts"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	assert.Equal(t, id, raw.BookingID)
	require.Len(t, raw.Conflicts, 1)
	assert.Equal(t, "APPROVED", raw.Conflicts[0]["status"])
	assert.NotContains(t, raw.Conflicts[0], "ownerId")
	assert.NotContains(t, raw.Conflicts[0], "title")
}

func TestHandle_Errors(t *testing.T) {
	actor := domain.Actor{ID: uuid.New(), Role: domain.RoleUser}

	tests := []struct {
		name       string
		bookingID  string
		actor      *domain.Actor
		err        error
		wantStatus int
	}{
		{"bad id", "123", &actor, nil, http.StatusBadRequest},
		{"no actor", uuid.NewString(), nil, nil, http.StatusUnauthorized},
		{"not found", uuid.NewString(), &actor, bookings.ErrBookingNotFound, http.StatusNotFound},
		{"forbidden", uuid.NewString(), &actor, bookings.ErrAccessDenied, http.StatusForbidden},
		{"internal", uuid.NewString(), &actor, errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeService{err: tt.err}, tt.bookingID, tt.actor)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
