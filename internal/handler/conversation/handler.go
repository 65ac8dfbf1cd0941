package conversation

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bookline/booking-api/internal/middleware"
	"github.com/bookline/booking-api/internal/model"
	"github.com/bookline/booking-api/internal/service/conversation"
	"github.com/bookline/booking-api/pkg/httputil"
)

type Handler struct {
	service *conversation.Service
}

func NewHandler(service *conversation.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	group := r.Group("/conversations")
	{
		group.GET("", h.List)
		group.POST("", h.Start)
		group.GET("/:id/messages", h.Messages)
		group.POST("/:id/messages", h.Post)
		group.POST("/:id/read", h.MarkRead)
	}
}

func (h *Handler) List(c *gin.Context) {
	conversations, err := h.service.List(c.Request.Context(), middleware.BusinessID(c))
	if err != nil {
		httputil.Error(c, err)
		return
	}
	if conversations == nil {
		conversations = []*model.Conversation{}
	}
	httputil.OK(c, conversations)
}

// Start opens (or returns) the thread for a customer.
func (h *Handler) Start(c *gin.Context) {
	var req model.StartConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		httputil.BadRequest(c, "invalid customer ID")
		return
	}

	conv, err := h.service.StartForCustomer(c.Request.Context(), middleware.BusinessID(c), customerID)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.Created(c, conv)
}

func (h *Handler) Messages(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.BadRequest(c, "invalid conversation ID")
		return
	}

	var since *time.Time
	if v := c.Query("since"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			httputil.BadRequest(c, "since must be RFC3339")
			return
		}
		since = &t
	}

	messages, err := h.service.Messages(c.Request.Context(), middleware.BusinessID(c), id, since, true)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	if messages == nil {
		messages = []*model.Message{}
	}
	httputil.OK(c, messages)
}

func (h *Handler) Post(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.BadRequest(c, "invalid conversation ID")
		return
	}

	var req model.PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	message, err := h.service.Post(c.Request.Context(), middleware.BusinessID(c), id, model.MessageSenderBusiness, &req)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.Created(c, message)
}

func (h *Handler) MarkRead(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.BadRequest(c, "invalid conversation ID")
		return
	}

	if _, err := h.service.Messages(c.Request.Context(), middleware.BusinessID(c), id, nil, true); err != nil {
		httputil.Error(c, err)
		return
	}
	httputil.OK(c, gin.H{"read": true})
}
