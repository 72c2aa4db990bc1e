package list_bookings

import (
	"net/url"
	"strings"

	"github.com/m04kA/SMC-VenueBooking/internal/domain"
	"github.com/m04kA/SMC-VenueBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-VenueBooking/pkg/ptr"
)

// ToServiceRequest формирует запрос к сервису из query параметров
// Query params: status, venue, q (все опциональны)
func ToServiceRequest(actor domain.Actor, query url.Values) *models.ListBookingsRequest {
	req := &models.ListBookingsRequest{
		Actor: actor,
		Query: strings.TrimSpace(query.Get("q")),
	}

	if status := strings.TrimSpace(query.Get("status")); status != "" {
		req.Status = ptr.Ptr(status)
	}

	if venue := strings.TrimSpace(query.Get("venue")); venue != "" {
		req.Venue = ptr.Ptr(venue)
	}

	return req
}
