package dispatch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/vku-onelove/alert-notifier/internal/metrics"
	"github.com/vku-onelove/alert-notifier/internal/model"
	"github.com/vku-onelove/alert-notifier/internal/rabbitmq/queue"
	"github.com/vku-onelove/alert-notifier/internal/render"
	"github.com/vku-onelove/alert-notifier/pkg/phone"
	"github.com/vku-onelove/alert-notifier/pkg/sms"
)

// RunJob executes one bulk dispatch job. A nil return means every
// recipient was either sent or skipped; a *RetryAfterError means the
// whole batch hit a systemic fault and should be re-executed.
func (s *Service) RunJob(ctx context.Context, msg queue.JobMessage) error {
	start := time.Now()
	defer func() {
		metrics.NotificationDuration.Observe(time.Since(start).Seconds())
	}()

	switch msg.Channel {
	case model.ChannelEmail:
		return s.runEmailJob(ctx, msg)
	case model.ChannelSMS:
		return s.runSMSJob(ctx, msg)
	default:
		// Unknown channel cannot succeed on retry either; report it as
		// a plain error so the handler dead-letters it when attempts
		// run out.
		return fmt.Errorf("unknown job channel %q", msg.Channel)
	}
}

// runEmailJob opens one SMTP session for the whole batch and sends each
// recipient's message over it. Individual sends are retried locally
// before the fault is promoted to job level.
func (s *Service) runEmailJob(ctx context.Context, msg queue.JobMessage) error {
	sess, err := s.mailer.Dial()
	if err != nil {
		return &RetryAfterError{After: queue.RetryLongDelay, Err: err}
	}
	defer func() {
		if err := sess.Close(); err != nil {
			zlog.Logger.Warn().Err(err).Str("id", msg.ID.String()).Msg("failed to close smtp session")
		}
	}()

	for _, rcpt := range msg.Recipients {
		if ctx.Err() != nil {
			return &RetryAfterError{After: queue.RetryShortDelay, Err: ctx.Err()}
		}

		if rcpt.Email == "" {
			continue
		}

		body, err := render.Email(msg.Title, msg.Content, rcpt.Email)
		if err != nil {
			zlog.Logger.Error().Err(err).Str("to", rcpt.Email).Msg("failed to render email, skipping recipient")
			continue
		}

		err = retry.Do(func() error {
			return sess.Send(rcpt.Email, msg.Title, body)
		}, s.sendRetry)
		if err != nil {
			// Local retries exhausted: treat as a batch-wide fault so
			// the remaining recipients are covered by the job retry.
			return &RetryAfterError{After: queue.RetryLongDelay, Err: err}
		}

		zlog.Logger.Info().
			Str("id", msg.ID.String()).
			Str("to", rcpt.Email).
			Msg("email sent")
		metrics.NotificationsTotal.WithLabelValues(msg.Type, string(model.ChannelEmail)).Inc()
	}

	return nil
}

// runSMSJob sends the rendered text to each recipient through the
// configured provider. Provider rejections are logged and skipped;
// transport faults stop the batch and trigger a job retry.
func (s *Service) runSMSJob(ctx context.Context, msg queue.JobMessage) error {
	text := render.SMS(msg.Title, msg.Content)

	for _, rcpt := range msg.Recipients {
		if ctx.Err() != nil {
			return &RetryAfterError{After: queue.RetryShortDelay, Err: ctx.Err()}
		}

		if rcpt.Phone == "" {
			continue
		}

		to := phone.Normalize(rcpt.Phone)

		err := s.sms.Send(to, text)

		var rej *sms.RejectionError
		if errors.As(err, &rej) {
			// Retrying will not fix a malformed destination.
			zlog.Logger.Error().Err(rej).Str("id", msg.ID.String()).Str("to", to).Msg("sms rejected by provider, skipping recipient")
			continue
		}

		if err != nil {
			return &RetryAfterError{After: queue.RetryShortDelay, Err: err}
		}

		zlog.Logger.Info().
			Str("id", msg.ID.String()).
			Str("to", to).
			Msg("sms sent")
		metrics.NotificationsTotal.WithLabelValues(msg.Type, string(model.ChannelSMS)).Inc()
	}

	return nil
}
