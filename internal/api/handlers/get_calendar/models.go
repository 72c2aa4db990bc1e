package get_calendar

import (
	"net/url"
	"strings"

	"github.com/m04kA/SMC-VenueBooking/internal/domain"
	"github.com/m04kA/SMC-VenueBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-VenueBooking/pkg/ptr"
)

// ToServiceRequest формирует запрос к сервису из query параметров
// Query params: venue, filter (статус, по умолчанию approved)
func ToServiceRequest(actor domain.Actor, query url.Values) *models.CalendarRequest {
	req := &models.CalendarRequest{Actor: actor}

	if venue := strings.TrimSpace(query.Get("venue")); venue != "" {
		req.Venue = ptr.Ptr(venue)
	}

	if filter := strings.TrimSpace(query.Get("filter")); filter != "" {
		req.Status = ptr.Ptr(filter)
	}

	return req
}
