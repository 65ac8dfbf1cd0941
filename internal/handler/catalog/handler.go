package catalog

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bookline/booking-api/internal/middleware"
	"github.com/bookline/booking-api/internal/model"
	"github.com/bookline/booking-api/internal/service/catalog"
	"github.com/bookline/booking-api/pkg/httputil"
)

type Handler struct {
	service *catalog.Service
}

func NewHandler(service *catalog.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	group := r.Group("/services")
	{
		group.GET("", h.List)
		group.POST("", h.Create)
		group.GET("/:id", h.Get)
		group.PATCH("/:id", h.Update)
		group.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) List(c *gin.Context) {
	includeArchived := c.Query("include_archived") == "true"

	services, err := h.service.List(c.Request.Context(), middleware.BusinessID(c), includeArchived)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	if services == nil {
		services = []*model.Service{}
	}
	httputil.OK(c, services)
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	svc, err := h.service.Create(c.Request.Context(), middleware.UserID(c), middleware.BusinessID(c), &req)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.Created(c, svc)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.BadRequest(c, "invalid service ID")
		return
	}

	svc, err := h.service.Get(c.Request.Context(), middleware.BusinessID(c), id)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, svc)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.BadRequest(c, "invalid service ID")
		return
	}

	var req model.UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	svc, err := h.service.Update(c.Request.Context(), middleware.UserID(c), middleware.BusinessID(c), id, &req)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, svc)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.BadRequest(c, "invalid service ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), middleware.UserID(c), middleware.BusinessID(c), id); err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, gin.H{"deleted": true})
}
