package select_package

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-VenueBooking/internal/api/handlers"
	"github.com/m04kA/SMC-VenueBooking/internal/api/middleware"
	"github.com/m04kA/SMC-VenueBooking/internal/service/catering"
	"github.com/m04kA/SMC-VenueBooking/internal/service/catering/models"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidData        = "укажите пакет и количество гостей"
	msgNotFound           = "бронирование не найдено"
	msgPackageNotFound    = "пакет кейтеринга не найден"
	msgForbidden          = "доступ запрещен"
	msgLocked             = "кейтеринг для этого бронирования больше нельзя изменить"
	msgPaxOutOfRange      = "количество гостей не подходит для выбранного пакета"
	msgSelectionTooLarge  = "выбрано больше блюд, чем допускает пакет"
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

// Handle PUT /api/v1/bookings/{bookingId}/catering/package
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathUUID(r, "bookingId")
	if err != nil {
		h.logger.Warn("PUT /bookings/{id}/catering/package - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PUT /bookings/{id}/catering/package - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.SelectPackageRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /bookings/{id}/catering/package - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	selection, err := h.service.SelectPackage(r.Context(), bookingID, actor, &req)
	if err != nil {
		switch {
		case errors.Is(err, catering.ErrInvalidInput):
			h.logger.Warn("PUT /bookings/{id}/catering/package - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)

		case errors.Is(err, catering.ErrBookingNotFound):
			h.logger.Warn("PUT /bookings/{id}/catering/package - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, catering.ErrPackageNotFound):
			h.logger.Warn("PUT /bookings/{id}/catering/package - Package not found: package_id=%s", req.PackageID)
			handlers.RespondNotFound(w, msgPackageNotFound)

		case errors.Is(err, catering.ErrAccessDenied):
			h.logger.Warn("PUT /bookings/{id}/catering/package - Access denied: booking_id=%s, user_id=%s", bookingID, actor.ID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, catering.ErrCateringLocked):
			h.logger.Warn("PUT /bookings/{id}/catering/package - Catering locked: booking_id=%s", bookingID)
			handlers.RespondConflict(w, msgLocked)

		case errors.Is(err, catering.ErrPaxOutOfRange):
			h.logger.Warn("PUT /bookings/{id}/catering/package - Pax out of range: %v", err)
			handlers.RespondUnprocessable(w, msgPaxOutOfRange)

		case errors.Is(err, catering.ErrSelectionExceedsPackage):
			h.logger.Warn("PUT /bookings/{id}/catering/package - Selection too large: %v", err)
			handlers.RespondConflict(w, msgSelectionTooLarge)

		default:
			h.logger.Error("PUT /bookings/{id}/catering/package - Failed to select package: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /bookings/{id}/catering/package - Package selected: booking_id=%s, package_id=%s",
		bookingID, req.PackageID)
	handlers.RespondJSON(w, http.StatusOK, selection)
}
