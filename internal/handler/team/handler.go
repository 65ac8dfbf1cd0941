package team

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bookline/booking-api/internal/middleware"
	"github.com/bookline/booking-api/internal/model"
	"github.com/bookline/booking-api/internal/service/team"
	"github.com/bookline/booking-api/pkg/httputil"
)

type Handler struct {
	service *team.Service
}

func NewHandler(service *team.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	group := r.Group("/team-members")
	{
		group.GET("", h.List)
		group.POST("", h.Create)
		group.GET("/:id", h.Get)
		group.PATCH("/:id", h.Update)
		group.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) List(c *gin.Context) {
	members, err := h.service.List(c.Request.Context(), middleware.BusinessID(c))
	if err != nil {
		httputil.Error(c, err)
		return
	}
	if members == nil {
		members = []*model.TeamMember{}
	}
	httputil.OK(c, members)
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateTeamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	member, err := h.service.Create(c.Request.Context(), middleware.UserID(c), middleware.BusinessID(c), &req)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.Created(c, member)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.BadRequest(c, "invalid team member ID")
		return
	}

	member, err := h.service.Get(c.Request.Context(), middleware.BusinessID(c), id)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, member)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.BadRequest(c, "invalid team member ID")
		return
	}

	var req model.UpdateTeamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	member, err := h.service.Update(c.Request.Context(), middleware.UserID(c), middleware.BusinessID(c), id, &req)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, member)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.BadRequest(c, "invalid team member ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), middleware.UserID(c), middleware.BusinessID(c), id); err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, gin.H{"deleted": true})
}
