package httpx

import (
	"net/http"

	"github.com/plantflix/marketplace/internal/service"
)

// StatsHandlers exposes sales aggregates for the admin dashboards.
type StatsHandlers struct {
	Orders *service.OrderService
}

// Sales handles GET /api/stats/sales. Super admins see marketplace-wide
// numbers, nursery admins their own storefront's.
func (h *StatsHandlers) Sales(w http.ResponseWriter, r *http.Request) {
	sess, _ := GetSessionFromContext(r.Context())

	stats, err := h.Orders.Stats(r.Context(), sess)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, stats)
}
