package toggle_dish

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-VenueBooking/internal/api/handlers"
	"github.com/m04kA/SMC-VenueBooking/internal/api/middleware"
	"github.com/m04kA/SMC-VenueBooking/internal/service/catering"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgMissingDishID    = "не указано блюдо"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgNotFound         = "бронирование не найдено"
	msgDishNotFound     = "блюдо не найдено"
	msgNotMainDish      = "можно выбрать только основное блюдо"
	msgForbidden        = "доступ запрещен"
	msgLocked           = "кейтеринг для этого бронирования больше нельзя изменить"
	msgCapacityExceeded = "выбрано максимальное количество блюд"
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

// Handle POST /api/v1/bookings/{bookingId}/catering/dishes/{dishId}/toggle
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathUUID(r, "bookingId")
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/catering/dishes/{dishId}/toggle - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	dishID := mux.Vars(r)["dishId"]
	if dishID == "" {
		handlers.RespondBadRequest(w, msgMissingDishID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/{id}/catering/dishes/{dishId}/toggle - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	selection, err := h.service.ToggleDish(r.Context(), bookingID, dishID, actor)
	if err != nil {
		switch {
		case errors.Is(err, catering.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgMissingDishID)

		case errors.Is(err, catering.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/catering/dishes/{dishId}/toggle - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, catering.ErrDishNotFound):
			h.logger.Warn("POST /bookings/{id}/catering/dishes/{dishId}/toggle - Dish not found: dish_id=%s", dishID)
			handlers.RespondNotFound(w, msgDishNotFound)

		case errors.Is(err, catering.ErrNotMainDish):
			h.logger.Warn("POST /bookings/{id}/catering/dishes/{dishId}/toggle - Not a main dish: dish_id=%s", dishID)
			handlers.RespondBadRequest(w, msgNotMainDish)

		case errors.Is(err, catering.ErrAccessDenied):
			h.logger.Warn("POST /bookings/{id}/catering/dishes/{dishId}/toggle - Access denied: booking_id=%s, user_id=%s",
				bookingID, actor.ID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, catering.ErrCateringLocked):
			h.logger.Warn("POST /bookings/{id}/catering/dishes/{dishId}/toggle - Catering locked: booking_id=%s", bookingID)
			handlers.RespondConflict(w, msgLocked)

		case errors.Is(err, catering.ErrCapacityExceeded):
			h.logger.Warn("POST /bookings/{id}/catering/dishes/{dishId}/toggle - Capacity exceeded: %v", err)
			handlers.RespondConflict(w, msgCapacityExceeded)

		default:
			h.logger.Error("POST /bookings/{id}/catering/dishes/{dishId}/toggle - Failed to toggle dish: booking_id=%s, dish_id=%s, error=%v",
				bookingID, dishID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/catering/dishes/{dishId}/toggle - Toggled: booking_id=%s, dish_id=%s, selected=%d",
		bookingID, dishID, len(selection.SelectedDishes))
	handlers.RespondJSON(w, http.StatusOK, selection)
}
