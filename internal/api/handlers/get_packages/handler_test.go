package get_packages

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueBooking/internal/service/catering/models"
	"github.com/m04kA/SMC-VenueBooking/pkg/logger"
)

type fakeService struct {
	err error
}

func (f *fakeService) ListPackages(context.Context) (*models.PackagesResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.PackagesResponse{Packages: []models.PackageResponse{
		{ID: "silver", Name: "Silver", NumOfDishes: 4, Price: 450, MinPax: 50, MaxPax: 100},
		{ID: "gold", Name: "Gold", NumOfDishes: 6, Price: 650, MinPax: 50},
	}}, nil
}

func serve(svc CateringService) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/catering/packages", nil)
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.Nop()).Handle(rec, req)
	return rec
}

func TestHandle_OK(t *testing.T) {
	rec := serve(&fakeService{})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.PackagesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Packages, 2)
	assert.Equal(t, 4, resp.Packages[0].NumOfDishes)
	assert.Zero(t, resp.Packages[1].MaxPax, "no upper bound")
	assert.NotContains(t, rec.Body.String(), `"maxPax":0`)
}

func TestHandle_Internal(t *testing.T) {
	rec := serve(&fakeService{err: errors.New("db down")})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
