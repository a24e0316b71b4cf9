package dispatch

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/vku-onelove/alert-notifier/internal/metrics"
	"github.com/vku-onelove/alert-notifier/internal/model"
	"github.com/vku-onelove/alert-notifier/internal/rabbitmq/queue"
	svc "github.com/vku-onelove/alert-notifier/internal/service/dispatch"
)

//go:generate mockgen -source=handler.go -destination=../../../mocks/rabbitmq/handlers/dispatch/mock.go -package=mocks

type dispatchService interface {
	RunJob(ctx context.Context, msg queue.JobMessage) error
	SetStatus(ctx context.Context, strategy retry.Strategy, id uuid.UUID, status string, attempt int) error
}

type jobRequeuer interface {
	Requeue(msg queue.JobMessage, after time.Duration, strategy retry.Strategy) error
	PublishDead(msg queue.JobMessage, strategy retry.Strategy) error
}

// Handler drives one bulk dispatch job through its state machine. The
// job itself only reports success or "retry after N seconds"; the
// handler owns requeueing, attempt accounting and dead-lettering.
type Handler struct {
	service     dispatchService
	queue       jobRequeuer
	maxAttempts int
}

func NewHandler(service dispatchService, queue jobRequeuer, maxAttempts int) *Handler {
	return &Handler{
		service:     service,
		queue:       queue,
		maxAttempts: maxAttempts,
	}
}

func (h *Handler) HandleMessage(ctx context.Context, msg queue.JobMessage, strategy retry.Strategy) {
	zlog.Logger.Info().
		Str("id", msg.ID.String()).
		Str("channel", string(msg.Channel)).
		Int("attempt", msg.Attempt).
		Int("recipients", len(msg.Recipients)).
		Msg("running bulk dispatch job")

	err := h.service.RunJob(ctx, msg)
	if err == nil {
		h.setStatus(ctx, strategy, msg, model.StatusSucceeded, msg.Attempt)
		return
	}

	after := queue.RetryShortDelay
	var ra *svc.RetryAfterError
	if errors.As(err, &ra) {
		after = ra.After
	}

	next := msg.Attempt + 1
	if next >= h.maxAttempts {
		zlog.Logger.Error().Err(err).
			Str("id", msg.ID.String()).
			Str("channel", string(msg.Channel)).
			Int("attempts", next).
			Msg("bulk dispatch job exhausted retries, dead-lettering")
		metrics.JobFailuresTotal.WithLabelValues(string(msg.Channel)).Inc()

		msg.Attempt = next
		if pubErr := h.queue.PublishDead(msg, strategy); pubErr != nil {
			zlog.Logger.Error().Err(pubErr).Str("id", msg.ID.String()).Msg("failed to dead-letter job")
		}

		h.setStatus(ctx, strategy, msg, model.StatusFailed, next)
		return
	}

	zlog.Logger.Warn().Err(err).
		Str("id", msg.ID.String()).
		Str("channel", string(msg.Channel)).
		Int("attempt", next).
		Dur("after", after).
		Msg("bulk dispatch job failed, requeueing")
	metrics.JobRetriesTotal.WithLabelValues(string(msg.Channel)).Inc()

	msg.Attempt = next
	if reqErr := h.queue.Requeue(msg, after, strategy); reqErr != nil {
		zlog.Logger.Error().Err(reqErr).Str("id", msg.ID.String()).Msg("failed to requeue job")
	}

	h.setStatus(ctx, strategy, msg, model.StatusRetrying, next)
}

func (h *Handler) setStatus(ctx context.Context, strategy retry.Strategy, msg queue.JobMessage, status string, attempt int) {
	if err := h.service.SetStatus(ctx, strategy, msg.ID, status, attempt); err != nil {
		zlog.Logger.Error().Err(err).
			Str("id", msg.ID.String()).
			Str("status", status).
			Msg("failed to set job status")
	}
}
