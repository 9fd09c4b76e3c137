package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/minhlunguyen/beauty-salon-management-api-sub000/internal/httperr"
	"github.com/minhlunguyen/beauty-salon-management-api-sub000/internal/httpresp"
	"github.com/minhlunguyen/beauty-salon-management-api-sub000/internal/middleware"
	"github.com/minhlunguyen/beauty-salon-management-api-sub000/internal/models"
)

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	var logs []models.AuditLog
	if err := h.db.
		Where("salon_id = ?", salonID).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error; err != nil {
		httperr.Internal(c, "failed_to_get_audit_logs", "failed to load audit logs")
		return
	}

	httpresp.List(c, logs)
}
