package customer

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bookline/booking-api/internal/middleware"
	"github.com/bookline/booking-api/internal/model"
	"github.com/bookline/booking-api/internal/repository"
	"github.com/bookline/booking-api/pkg/errors"
	"github.com/bookline/booking-api/pkg/httputil"
)

type Handler struct {
	repo repository.CustomerRepository
}

func NewHandler(repo repository.CustomerRepository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	group := r.Group("/customers")
	{
		group.GET("", h.List)
		group.GET("/:id", h.Get)
	}
}

func (h *Handler) List(c *gin.Context) {
	filters := &model.CustomerFilters{SearchTerm: c.Query("search")}
	if v := c.Query("page"); v != "" {
		filters.Page, _ = strconv.Atoi(v)
	}
	if v := c.Query("page_size"); v != "" {
		filters.PageSize, _ = strconv.Atoi(v)
	}

	customers, err := h.repo.List(c.Request.Context(), middleware.BusinessID(c), filters)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	if customers == nil {
		customers = []*model.Customer{}
	}
	httputil.OK(c, customers)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.BadRequest(c, "invalid customer ID")
		return
	}

	customer, err := h.repo.Get(c.Request.Context(), id)
	if err != nil {
		httputil.Error(c, errors.NotFound("customer", err))
		return
	}
	if customer.BusinessID != middleware.BusinessID(c) {
		httputil.Error(c, errors.NotFound("customer", nil))
		return
	}
	httputil.OK(c, customer)
}
