package booking

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bookline/booking-api/internal/middleware"
	"github.com/bookline/booking-api/internal/model"
	"github.com/bookline/booking-api/internal/service/booking"
	"github.com/bookline/booking-api/pkg/httputil"
)

type Handler struct {
	service *booking.Service
}

func NewHandler(service *booking.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	group := r.Group("/bookings")
	{
		group.GET("", h.List)
		group.POST("", h.Create)
		group.POST("/with-team", h.CreateWithTeam)
		group.GET("/calendar", h.Calendar)
		group.GET("/:id", h.Get)
		group.PATCH("/:id", h.Update)
		group.DELETE("/:id", h.Delete)
		group.PATCH("/:id/reschedule", h.Reschedule)
		group.POST("/:id/cancel", h.Cancel)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	b, err := h.service.Create(c.Request.Context(), middleware.UserID(c), middleware.BusinessID(c), &req)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.Created(c, b)
}

// CreateWithTeam is Create with a mandatory team member assignment.
func (h *Handler) CreateWithTeam(c *gin.Context) {
	var req model.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}
	if req.TeamMemberID == "" {
		httputil.BadRequest(c, "team_member_id is required")
		return
	}

	b, err := h.service.Create(c.Request.Context(), middleware.UserID(c), middleware.BusinessID(c), &req)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.Created(c, b)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.BadRequest(c, "invalid booking ID")
		return
	}

	b, err := h.service.Get(c.Request.Context(), middleware.BusinessID(c), id)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, b)
}

func (h *Handler) List(c *gin.Context) {
	filters := &model.BookingFilters{}

	if v := c.Query("team_member_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			httputil.BadRequest(c, "invalid team member ID")
			return
		}
		filters.TeamMemberID = &id
	}
	if v := c.Query("service_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			httputil.BadRequest(c, "invalid service ID")
			return
		}
		filters.ServiceID = &id
	}
	if v := c.Query("status"); v != "" {
		filters.Status = model.BookingStatus(v)
	}
	if v := c.Query("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			httputil.BadRequest(c, "from must be RFC3339")
			return
		}
		filters.From = t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			httputil.BadRequest(c, "to must be RFC3339")
			return
		}
		filters.To = t
	}

	bookings, err := h.service.List(c.Request.Context(), middleware.BusinessID(c), filters)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	if bookings == nil {
		bookings = []*model.Booking{}
	}
	httputil.OK(c, bookings)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.BadRequest(c, "invalid booking ID")
		return
	}

	var req model.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	b, err := h.service.Update(c.Request.Context(), middleware.UserID(c), middleware.BusinessID(c), id, &req)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, b)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.BadRequest(c, "invalid booking ID")
		return
	}

	// Cancel-then-delete is not required; delete hides the booking from
	// every listing while cancel keeps it visible.
	cancelReq := &model.CancelBookingRequest{Reason: "deleted by owner"}
	if _, err := h.service.Cancel(c.Request.Context(), middleware.UserID(c), middleware.BusinessID(c), id, cancelReq); err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, gin.H{"deleted": true})
}

func (h *Handler) Reschedule(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.BadRequest(c, "invalid booking ID")
		return
	}

	var req model.RescheduleBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	b, err := h.service.Reschedule(c.Request.Context(), middleware.UserID(c), middleware.BusinessID(c), id, &req)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, b)
}

func (h *Handler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.BadRequest(c, "invalid booking ID")
		return
	}

	// The reason body is optional.
	var req model.CancelBookingRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httputil.BadRequest(c, err.Error())
			return
		}
	}

	b, err := h.service.Cancel(c.Request.Context(), middleware.UserID(c), middleware.BusinessID(c), id, &req)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, b)
}

func (h *Handler) Calendar(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	gridStartHour := 0
	if v := c.Query("grid_start_hour"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > 23 {
			httputil.BadRequest(c, "grid_start_hour must be 0-23")
			return
		}
		gridStartHour = n
	}

	view, err := h.service.Calendar(c.Request.Context(), middleware.BusinessID(c), date, c.Query("view"), gridStartHour)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, view)
}
