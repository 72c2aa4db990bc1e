package check_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-VenueBooking/internal/api/handlers"
	checkAvailability "github.com/m04kA/SMC-VenueBooking/internal/usecase/check_availability"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgUnknownVenue       = "неизвестная площадка"
	msgInvalidInterval    = "некорректные дата, время начала или количество дополнительных часов"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/availability/check
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CheckAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /availability/check - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrUnknownVenue):
			h.logger.Warn("POST /availability/check - Unknown venue: venue=%q", req.Venue)
			handlers.RespondBadRequest(w, msgUnknownVenue)

		case errors.Is(err, checkAvailability.ErrInvalidInput):
			h.logger.Warn("POST /availability/check - Invalid interval: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		default:
			h.logger.Error("POST /availability/check - Failed to check availability: venue=%s, error=%v", req.Venue, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /availability/check - Checked: venue=%s, date=%s, available=%t, conflicts=%d",
		result.Venue, result.Date, result.Available, len(result.Conflicts))
	handlers.RespondJSON(w, http.StatusOK, result)
}
