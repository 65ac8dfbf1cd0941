package business

import (
	"github.com/gin-gonic/gin"

	"github.com/bookline/booking-api/internal/middleware"
	"github.com/bookline/booking-api/internal/model"
	"github.com/bookline/booking-api/internal/service/business"
	"github.com/bookline/booking-api/pkg/httputil"
)

type Handler struct {
	service *business.Service
}

func NewHandler(service *business.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	group := r.Group("/business")
	{
		group.GET("", h.Get)
		group.PATCH("", h.Update)
		group.GET("/availability", h.GetAvailability)
		group.PUT("/availability", h.UpdateAvailability)
	}
}

func (h *Handler) Get(c *gin.Context) {
	biz, err := h.service.Get(c.Request.Context(), middleware.BusinessID(c))
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, biz)
}

func (h *Handler) Update(c *gin.Context) {
	var req model.UpdateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	biz, err := h.service.Update(c.Request.Context(), middleware.UserID(c), middleware.BusinessID(c), &req)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, biz)
}

func (h *Handler) GetAvailability(c *gin.Context) {
	availability, err := h.service.GetAvailability(c.Request.Context(), middleware.BusinessID(c))
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, availability)
}

func (h *Handler) UpdateAvailability(c *gin.Context) {
	var req model.UpdateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	availability, err := h.service.UpdateAvailability(c.Request.Context(), middleware.UserID(c), middleware.BusinessID(c), &req)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, availability)
}
