package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueBooking/internal/domain"
)

func TestAuth(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name       string
		id         string
		role       string
		wantStatus int
		wantRole   string
	}{
		{"user default role", userID.String(), "", http.StatusOK, domain.RoleUser},
		{"admin lower case", userID.String(), "admin", http.StatusOK, domain.RoleAdmin},
		{"missing id", "", "", http.StatusUnauthorized, ""},
		{"malformed id", "42", "", http.StatusUnauthorized, ""},
		{"nil id", uuid.Nil.String(), "", http.StatusUnauthorized, ""},
		{"unknown role", userID.String(), "ROOT", http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got domain.Actor
			h := Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				actor, ok := GetActor(r.Context())
				require.True(t, ok)
				got = actor
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.id != "" {
				req.Header.Set(HeaderUserID, tt.id)
			}
			if tt.role != "" {
				req.Header.Set(HeaderUserRole, tt.role)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, userID, got.ID)
				assert.Equal(t, tt.wantRole, got.Role)
			}
		})
	}
}

type observation struct {
	method string
	route  string
	status int
}

type fakeObserver struct {
	seen []observation
}

func (o *fakeObserver) ObserveHTTP(method, route string, status int, _ float64) {
	o.seen = append(o.seen, observation{method, route, status})
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	obs := &fakeObserver{}
	r := mux.NewRouter()
	r.Use(MetricsMiddleware(obs))
	r.HandleFunc("/bookings/{bookingId}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bookings/"+uuid.NewString(), nil))

	require.Len(t, obs.seen, 1)
	assert.Equal(t, observation{http.MethodGet, "/bookings/{bookingId}", http.StatusNotFound}, obs.seen[0])
}
