package public

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/bookline/booking-api/internal/model"
	"github.com/bookline/booking-api/internal/schedule"
	"github.com/bookline/booking-api/internal/service/booking"
	"github.com/bookline/booking-api/internal/service/business"
	"github.com/bookline/booking-api/internal/service/catalog"
	"github.com/bookline/booking-api/internal/service/team"
	"github.com/bookline/booking-api/pkg/httputil"
)

const (
	profileCacheTTL = 5 * time.Minute
	cleanupInterval = 10 * time.Minute
)

// Handler serves the unauthenticated booking surface. Profile and service
// lookups are cached; slot listings and submissions always hit the
// database.
type Handler struct {
	businessSvc *business.Service
	catalogSvc  *catalog.Service
	teamSvc     *team.Service
	bookingSvc  *booking.Service
	cache       *cache.Cache
}

func NewHandler(businessSvc *business.Service, catalogSvc *catalog.Service, teamSvc *team.Service, bookingSvc *booking.Service) *Handler {
	return &Handler{
		businessSvc: businessSvc,
		catalogSvc:  catalogSvc,
		teamSvc:     teamSvc,
		bookingSvc:  bookingSvc,
		cache:       cache.New(profileCacheTTL, cleanupInterval),
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	group := r.Group("/public")
	{
		group.GET("/business/:slug", h.Profile)
		group.GET("/business/:slug/services", h.Services)
		group.GET("/business/:slug/team", h.Team)
		group.GET("/business/:slug/slots", h.Slots)
		group.POST("/bookings", h.SubmitBooking)
	}
}

func (h *Handler) resolveBusiness(c *gin.Context, slug string) (*model.Business, bool) {
	key := "business:" + slug
	if cached, ok := h.cache.Get(key); ok {
		return cached.(*model.Business), true
	}

	biz, err := h.businessSvc.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		httputil.Error(c, err)
		return nil, false
	}

	h.cache.SetDefault(key, biz)
	return biz, true
}

func (h *Handler) Profile(c *gin.Context) {
	biz, ok := h.resolveBusiness(c, c.Param("slug"))
	if !ok {
		return
	}

	availability, err := h.businessSvc.GetAvailability(c.Request.Context(), biz.ID)
	if err != nil {
		httputil.Error(c, err)
		return
	}

	c.Header("Cache-Control", "public, max-age=300")
	httputil.OK(c, model.PublicProfile{Business: biz, Rules: availability.Rules})
}

func (h *Handler) Services(c *gin.Context) {
	biz, ok := h.resolveBusiness(c, c.Param("slug"))
	if !ok {
		return
	}

	key := "services:" + biz.ID.String()
	if cached, found := h.cache.Get(key); found {
		c.Header("Cache-Control", "public, max-age=300")
		httputil.OK(c, cached)
		return
	}

	services, err := h.catalogSvc.List(c.Request.Context(), biz.ID, false)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	if services == nil {
		services = []*model.Service{}
	}

	h.cache.SetDefault(key, services)
	c.Header("Cache-Control", "public, max-age=300")
	httputil.OK(c, services)
}

func (h *Handler) Team(c *gin.Context) {
	biz, ok := h.resolveBusiness(c, c.Param("slug"))
	if !ok {
		return
	}

	members, err := h.teamSvc.List(c.Request.Context(), biz.ID)
	if err != nil {
		httputil.Error(c, err)
		return
	}

	// Only active members are bookable publicly.
	active := make([]*model.TeamMember, 0, len(members))
	for _, m := range members {
		if m.Status == model.TeamMemberStatusActive {
			active = append(active, m)
		}
	}

	c.Header("Cache-Control", "public, max-age=300")
	httputil.OK(c, active)
}

func (h *Handler) Slots(c *gin.Context) {
	biz, ok := h.resolveBusiness(c, c.Param("slug"))
	if !ok {
		return
	}

	date := c.Query("date")
	if date == "" {
		httputil.BadRequest(c, "date is required")
		return
	}

	duration := 0
	if v := c.Query("duration"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			httputil.BadRequest(c, "duration must be a positive number of minutes")
			return
		}
		duration = n
	}

	var serviceIDs []uuid.UUID
	if v := c.Query("service_ids"); v != "" {
		for _, raw := range strings.Split(v, ",") {
			id, err := uuid.Parse(strings.TrimSpace(raw))
			if err != nil {
				httputil.BadRequest(c, "invalid service ID")
				return
			}
			serviceIDs = append(serviceIDs, id)
		}
	}

	var teamMemberID *uuid.UUID
	if v := c.Query("team_member_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			httputil.BadRequest(c, "invalid team member ID")
			return
		}
		teamMemberID = &id
	}

	band, ok := schedule.ParseBand(c.Query("band"))
	if !ok {
		httputil.BadRequest(c, fmt.Sprintf("unknown band %q", c.Query("band")))
		return
	}

	slots, err := h.bookingSvc.PublicSlots(c.Request.Context(), biz, date, duration, serviceIDs, teamMemberID, band)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	if slots == nil {
		slots = []string{}
	}
	httputil.OK(c, gin.H{"date": date, "slots": slots})
}

func (h *Handler) SubmitBooking(c *gin.Context) {
	var req model.PublicBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	biz, err := h.businessSvc.GetBySlug(c.Request.Context(), req.BusinessSlug)
	if err != nil {
		httputil.Error(c, err)
		return
	}

	resp, err := h.bookingSvc.SubmitPublic(c.Request.Context(), biz, &req)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.Created(c, resp)
}
