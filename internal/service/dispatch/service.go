// Package dispatch implements the bulk-notification dispatch engine:
// partitioning recipients by channel, enqueuing one bulk job per
// non-empty partition, and executing those jobs against the channel
// transports.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/vku-onelove/alert-notifier/internal/model"
	"github.com/vku-onelove/alert-notifier/internal/rabbitmq/queue"
	"github.com/vku-onelove/alert-notifier/pkg/email"
	"github.com/vku-onelove/alert-notifier/pkg/sms"
)

//go:generate mockgen -source=service.go -destination=../../mocks/service/dispatch/mock.go -package=mocks

type jobPublisher interface {
	Publish(msg queue.JobMessage, strategy retry.Strategy) error
}

type jobRepository interface {
	CreateJob(ctx context.Context, job model.Job) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, attempt int) error
	GetJobStatusByID(ctx context.Context, id uuid.UUID) (string, error)
	GetFailedJobs(ctx context.Context) ([]model.Job, error)
}

type mailDialer interface {
	Dial() (email.Session, error)
}

type cache interface {
	SetWithRetry(ctx context.Context, strategy retry.Strategy, key string, value interface{}) error
	GetWithRetry(ctx context.Context, strategy retry.Strategy, key string) (string, error)
}

// RetryAfterError signals a systemic job fault: the whole batch should
// be re-executed after the given countdown. The queue handler owns the
// requeue mechanics; the job only reports the verdict.
type RetryAfterError struct {
	After time.Duration
	Err   error
}

func (e *RetryAfterError) Error() string {
	return fmt.Sprintf("job failed, retry after %s: %v", e.After, e.Err)
}

func (e *RetryAfterError) Unwrap() error { return e.Err }

type Service struct {
	repo      jobRepository
	queue     jobPublisher
	mailer    mailDialer
	sms       sms.Provider
	cache     cache
	sendRetry retry.Strategy // per-recipient email send retry
}

func NewService(
	repo jobRepository,
	queue jobPublisher,
	mailer mailDialer,
	smsProvider sms.Provider,
	cache cache,
	sendRetry retry.Strategy,
) *Service {
	return &Service{
		repo:      repo,
		queue:     queue,
		mailer:    mailer,
		sms:       smsProvider,
		cache:     cache,
		sendRetry: sendRetry,
	}
}

// Dispatch partitions the request's recipients by channel and submits
// one bulk job per non-empty partition. It returns as soon as the jobs
// are enqueued; delivery happens asynchronously on the workers.
func (s *Service) Dispatch(ctx context.Context, strategy retry.Strategy, req model.NotificationRequest) (model.DispatchStats, error) {
	var emailRecipients, smsRecipients []model.Recipient

	for _, r := range req.Recipients {
		if r.Channels.Email {
			emailRecipients = append(emailRecipients, r)
		}
		if r.Channels.SMS {
			smsRecipients = append(smsRecipients, r)
		}
	}

	if len(emailRecipients) > 0 {
		if err := s.enqueueJob(ctx, strategy, req, model.ChannelEmail, emailRecipients); err != nil {
			return model.DispatchStats{}, err
		}
	}

	if len(smsRecipients) > 0 {
		if err := s.enqueueJob(ctx, strategy, req, model.ChannelSMS, smsRecipients); err != nil {
			return model.DispatchStats{}, err
		}
	}

	return model.DispatchStats{
		EmailRecipients: len(emailRecipients),
		SMSRecipients:   len(smsRecipients),
	}, nil
}

func (s *Service) enqueueJob(
	ctx context.Context,
	strategy retry.Strategy,
	req model.NotificationRequest,
	channel model.Channel,
	recipients []model.Recipient,
) error {
	job := model.Job{
		ID:             uuid.New(),
		Channel:        channel,
		Type:           req.Type,
		Title:          req.Title,
		Content:        req.Content,
		RecipientCount: len(recipients),
		Attempt:        0,
		Status:         model.StatusPending,
	}

	if err := s.repo.CreateJob(ctx, job); err != nil {
		return fmt.Errorf("create %s job: %w", channel, err)
	}

	if err := s.cache.SetWithRetry(ctx, strategy, job.ID.String(), job.Status); err != nil {
		zlog.Logger.Error().Err(err).Str("id", job.ID.String()).Msg("failed to cache job status")
	}

	msg := queue.JobMessage{
		ID:         job.ID,
		Channel:    channel,
		Type:       req.Type,
		Title:      req.Title,
		Content:    req.Content,
		Recipients: recipients,
		Attempt:    0,
	}

	if err := s.queue.Publish(msg, strategy); err != nil {
		return fmt.Errorf("publish %s job: %w", channel, err)
	}

	zlog.Logger.Info().
		Str("id", job.ID.String()).
		Str("channel", string(channel)).
		Int("recipients", len(recipients)).
		Msg("bulk dispatch job enqueued")

	return nil
}

// GetJobStatusByID returns a job's status, consulting the cache first
// and falling back to the database.
func (s *Service) GetJobStatusByID(ctx context.Context, strategy retry.Strategy, id uuid.UUID) (string, error) {
	status, err := s.cache.GetWithRetry(ctx, strategy, id.String())
	if err != nil && !errors.Is(err, redis.Nil) {
		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to get job status from cache")
	}

	if err != nil {
		status, err = s.repo.GetJobStatusByID(ctx, id)
		if err != nil {
			return "", fmt.Errorf("get job status: %w", err)
		}

		if err := s.cache.SetWithRetry(ctx, strategy, id.String(), status); err != nil {
			zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to cache job status")
		}
	}

	return status, nil
}

// SetStatus records a job status transition in the database and cache.
func (s *Service) SetStatus(ctx context.Context, strategy retry.Strategy, id uuid.UUID, status string, attempt int) error {
	if err := s.repo.UpdateStatus(ctx, id, status, attempt); err != nil {
		return fmt.Errorf("update job status: %w", err)
	}

	if err := s.cache.SetWithRetry(ctx, strategy, id.String(), status); err != nil {
		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to cache job status")
	}

	return nil
}

// GetFailedJobs returns the terminally failed jobs.
func (s *Service) GetFailedJobs(ctx context.Context) ([]model.Job, error) {
	jobs, err := s.repo.GetFailedJobs(ctx)
	if err != nil {
		return nil, fmt.Errorf("get failed jobs: %w", err)
	}

	return jobs, nil
}
