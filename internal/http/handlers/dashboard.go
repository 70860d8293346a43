package handlers

import (
	"adminhub/internal/services"

	"github.com/gin-gonic/gin"
)

func (h Handler) dashboards(c *gin.Context) services.DashboardService {
	return services.DashboardService{DB: h.DB, RequestID: requestID(c), Now: h.Now}
}

// GET /api/dashboard/inventory
func (h Handler) InventoryDashboard(c *gin.Context) {
	d, err := h.dashboards(c).Inventory(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	ok(c, d)
}

// GET /api/dashboard/sports
func (h Handler) SportsDashboard(c *gin.Context) {
	d, err := h.dashboards(c).Sports(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	ok(c, d)
}
