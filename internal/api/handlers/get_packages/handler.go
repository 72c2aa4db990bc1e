package get_packages

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

// Handle GET /api/v1/catering/packages
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	packages, err := h.service.ListPackages(r.Context())
	if err != nil {
		h.logger.Error("GET /catering/packages - Failed to get packages: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /catering/packages - Packages retrieved: count=%d", len(packages.Packages))
	handlers.RespondJSON(w, http.StatusOK, packages)
}
