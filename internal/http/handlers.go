package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tazhibayda/community-service/internal/domain"
	"github.com/tazhibayda/community-service/internal/log"
	"github.com/tazhibayda/community-service/internal/metrics"
	"github.com/tazhibayda/community-service/internal/queue"
	"github.com/tazhibayda/community-service/internal/service"
	"go.uber.org/zap"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	Svc    *service.Service
	Health Pinger
	Events queue.Publisher
	Log    *zap.Logger
}

func NewHandler(svc *service.Service, health Pinger, pub queue.Publisher, logger *zap.Logger) *Handler {
	if pub == nil {
		pub = queue.NewNoop()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{Svc: svc, Health: health, Events: pub, Log: logger}
}

// Root godoc
// @Summary Liveness banner
// @Produce plain
// @Success 200 {string} string
// @Router / [get]
func (h *Handler) Root(c *gin.Context) {
	c.String(http.StatusOK, "The server is running")
}

// Healthz godoc
// @Summary Health check (pings MongoDB)
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /healthz [get]
func (h *Handler) Healthz(c *gin.Context) {
	if err := h.Health.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// RegisterUser godoc
// @Summary Register user
// @Description Inserts the user unless one with the same email exists.
// @Tags users
// @Accept json
// @Produce json
// @Param payload body object true "user document, email required"
// @Success 201 {object} domain.InsertResult
// @Success 200 {object} map[string]string "user already exists"
// @Failure 400 {object} errorBody
// @Router /users [post]
func (h *Handler) RegisterUser(c *gin.Context) {
	var u domain.User
	if err := c.ShouldBindJSON(&u); err != nil {
		badJSON(c)
		return
	}
	res, err := h.Svc.Register(c.Request.Context(), &u)
	if errors.Is(err, service.ErrUserExists) {
		c.JSON(http.StatusOK, gin.H{"message": "user already exists"})
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	h.publish(c, queue.UserRegistered{UserID: res.InsertedID, Email: u.Email})
	c.JSON(http.StatusCreated, res)
}

// FindUser godoc
// @Summary Find user by email
// @Tags users
// @Produce json
// @Param email path string true "email"
// @Success 200 {object} object "user document or null"
// @Router /findUser/{email} [get]
func (h *Handler) FindUser(c *gin.Context) {
	u, err := h.Svc.FindUserByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// JoinedCommunities godoc
// @Summary User document with joined community ids
// @Tags users
// @Produce json
// @Param userEmail query string true "email"
// @Success 200 {object} object "user document or null"
// @Failure 400 {object} errorBody
// @Router /joinedCommunities [get]
func (h *Handler) JoinedCommunities(c *gin.Context) {
	u, err := h.Svc.ListJoinedCommunities(c.Request.Context(), c.Query("userEmail"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// publish emits an event after the response-producing work succeeded.
// Delivery is fire-and-forget and never affects the response.
func (h *Handler) publish(c *gin.Context, ev queue.Event) {
	ctx := context.WithoutCancel(c.Request.Context())
	go func() {
		key := ev.RoutingKey()
		status := "ok"
		if err := h.Events.Publish(ctx, ev, log.RequestID(ctx)); err != nil {
			status = "error"
			log.For(ctx, h.Log).Warn("publish event failed", zap.String("key", key), zap.Error(err))
		}
		metrics.EventsPublished.WithLabelValues(key, status).Inc()
	}()
}

func emailField(email string) zap.Field {
	return log.Email("email_hash", email)
}
