package analytics

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bookline/booking-api/internal/middleware"
	"github.com/bookline/booking-api/internal/service/analytics"
	"github.com/bookline/booking-api/pkg/httputil"
)

type Handler struct {
	service *analytics.Service
}

func NewHandler(service *analytics.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	group := r.Group("/analytics")
	{
		group.GET("/summary", h.Summary)
	}
}

// Summary defaults to the last 30 days when no range is given.
func (h *Handler) Summary(c *gin.Context) {
	to := time.Now()
	from := to.AddDate(0, 0, -30)

	if v := c.Query("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			httputil.BadRequest(c, "from must be YYYY-MM-DD")
			return
		}
		from = t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			httputil.BadRequest(c, "to must be YYYY-MM-DD")
			return
		}
		to = t.AddDate(0, 0, 1)
	}

	summary, err := h.service.Summary(c.Request.Context(), middleware.BusinessID(c), from, to)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, summary)
}
