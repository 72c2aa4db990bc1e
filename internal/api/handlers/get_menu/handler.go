package get_menu

import (
	"net/http"

	"github.com/m04kA/SMC-VenueBooking/internal/api/handlers"
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

// Handle GET /api/v1/catering/menu
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	menu, err := h.service.ListMenu(r.Context())
	if err != nil {
		h.logger.Error("GET /catering/menu - Failed to get menu: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /catering/menu - Menu retrieved: categories=%d", len(menu.Categories))
	handlers.RespondJSON(w, http.StatusOK, menu)
}
