package notification

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bookline/booking-api/internal/middleware"
	"github.com/bookline/booking-api/internal/model"
	"github.com/bookline/booking-api/internal/service/notification"
	"github.com/bookline/booking-api/pkg/httputil"
)

type Handler struct {
	service notification.Service
}

func NewHandler(service notification.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	group := r.Group("/notifications")
	{
		group.GET("", h.Feed)
		group.POST("/:id/read", h.MarkRead)
		group.POST("/read-all", h.MarkAllRead)
	}
}

func (h *Handler) Feed(c *gin.Context) {
	unreadOnly := c.Query("unread") == "true"
	limit := 50
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	notifications, err := h.service.Feed(c.Request.Context(), middleware.BusinessID(c), unreadOnly, limit)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	if notifications == nil {
		notifications = []*model.Notification{}
	}
	httputil.OK(c, notifications)
}

func (h *Handler) MarkRead(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.BadRequest(c, "invalid notification ID")
		return
	}

	if err := h.service.MarkRead(c.Request.Context(), middleware.BusinessID(c), id); err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, gin.H{"read": true})
}

func (h *Handler) MarkAllRead(c *gin.Context) {
	if err := h.service.MarkAllRead(c.Request.Context(), middleware.BusinessID(c)); err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, gin.H{"read": true})
}
