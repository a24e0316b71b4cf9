package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/vku-onelove/alert-notifier/internal/api/dto"
	"github.com/vku-onelove/alert-notifier/internal/api/respond"
	"github.com/vku-onelove/alert-notifier/internal/config"
	"github.com/vku-onelove/alert-notifier/internal/model"
	"github.com/vku-onelove/alert-notifier/internal/repository/dispatch"
)

// notificationService defines the interface that the Handler depends on.
//
// It abstracts the dispatch engine: enqueueing bulk jobs for a request
// and exposing job status and the dead-letter surface.
//
//go:generate mockgen -source=handler.go -destination=../../../mocks/api/handlers/notification/mock.go -package=mocks
type notificationService interface {
	Dispatch(ctx context.Context, strategy retry.Strategy, req model.NotificationRequest) (model.DispatchStats, error)
	GetJobStatusByID(ctx context.Context, strategy retry.Strategy, id uuid.UUID) (string, error)
	GetFailedJobs(ctx context.Context) ([]model.Job, error)
}

// Handler handles HTTP requests for the notification API.
type Handler struct {
	service   notificationService
	validator *validator.Validate
	cfg       *config.Config
}

// NewHandler creates a new Handler instance.
func NewHandler(
	s notificationService,
	v *validator.Validate,
	cfg *config.Config,
) *Handler {
	return &Handler{service: s, validator: v, cfg: cfg}
}

// Create handles POST /api/notifications.
//
// It validates the request body, fans the recipients out into bulk
// dispatch jobs and returns the per-channel enqueue counts. Delivery
// itself is asynchronous; a 200 only means the jobs were enqueued.
func (h *Handler) Create(c *ginext.Context) {
	var req dto.NotificationRequest

	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to decode request body")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid request body"))
		return
	}

	if err := h.validator.Struct(req); err != nil {
		zlog.Logger.Warn().Err(err).Msg("failed to validate request body")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("validation error: %s", err.Error()))
		return
	}

	stats, err := h.service.Dispatch(c.Request.Context(), h.cfg.Retry, req.ToModel())
	if err != nil {
		zlog.Logger.Error().Err(err).Str("title", req.Title).Msg("failed to dispatch notification")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, dto.CreateResponse{
		Message: "Notification tasks enqueued successfully!",
		Stats:   stats,
	})
}

// JobStatus handles GET /api/notifications/jobs/:id.
func (h *Handler) JobStatus(c *ginext.Context) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("idStr", idStr).Msg("failed to parse id")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid id"))
		return
	}

	status, err := h.service.GetJobStatusByID(c.Request.Context(), h.cfg.Retry, id)
	if err != nil {
		if errors.Is(err, dispatch.ErrJobNotFound) {
			zlog.Logger.Warn().Str("id", id.String()).Err(err).Msg("job not found")
			respond.Fail(c.Writer, http.StatusNotFound, fmt.Errorf("job not found"))
			return
		}

		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to get job status")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, map[string]string{"id": id.String(), "status": status})
}

// ListFailed handles GET /api/notifications/dead: the jobs that
// exhausted their retries.
func (h *Handler) ListFailed(c *ginext.Context) {
	jobs, err := h.service.GetFailedJobs(c.Request.Context())
	if err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to list failed jobs")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, jobs)
}
