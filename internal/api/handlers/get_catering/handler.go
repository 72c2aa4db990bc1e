package get_catering

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-VenueBooking/internal/api/handlers"
	"github.com/m04kA/SMC-VenueBooking/internal/api/middleware"
	"github.com/m04kA/SMC-VenueBooking/internal/service/catering"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgNotFound         = "бронирование не найдено"
	msgForbidden        = "доступ запрещен"
)

type Handler struct {
	service CateringService
	logger  Logger
}

func NewHandler(service CateringService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/{bookingId}/catering
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathUUID(r, "bookingId")
	if err != nil {
		h.logger.Warn("GET /bookings/{id}/catering - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings/{id}/catering - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	selection, err := h.service.GetSelection(r.Context(), bookingID, actor)
	if err != nil {
		switch {
		case errors.Is(err, catering.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/{id}/catering - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, catering.ErrAccessDenied):
			h.logger.Warn("GET /bookings/{id}/catering - Access denied: booking_id=%s, user_id=%s", bookingID, actor.ID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /bookings/{id}/catering - Failed to get selection: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/{id}/catering - Selection retrieved: booking_id=%s, dishes=%d",
		bookingID, len(selection.SelectedDishes))
	handlers.RespondJSON(w, http.StatusOK, selection)
}
