package dispatch

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/wb-go/wbf/retry"

	mocks "github.com/vku-onelove/alert-notifier/internal/mocks/rabbitmq/handlers/dispatch"
	"github.com/vku-onelove/alert-notifier/internal/model"
	"github.com/vku-onelove/alert-notifier/internal/rabbitmq/queue"
	svc "github.com/vku-onelove/alert-notifier/internal/service/dispatch"
)

const maxAttempts = 3

func setupHandler(t *testing.T) (*Handler, *mocks.MockdispatchService, *mocks.MockjobRequeuer) {
	ctrl := gomock.NewController(t)
	service := mocks.NewMockdispatchService(ctrl)
	q := mocks.NewMockjobRequeuer(ctrl)
	h := NewHandler(service, q, maxAttempts)

	return h, service, q
}

func testMsg(attempt int) queue.JobMessage {
	return queue.JobMessage{
		ID:      uuid.New(),
		Channel: model.ChannelSMS,
		Type:    model.TypeEmergencyAlert,
		Title:   "Flood Warning",
		Content: "Evacuate now",
		Recipients: []model.Recipient{
			{Phone: "0356496966", Channels: model.Channels{SMS: true}},
		},
		Attempt: attempt,
	}
}

func TestHandler_HandleMessage_Success(t *testing.T) {
	h, service, _ := setupHandler(t)

	msg := testMsg(0)
	strategy := retry.Strategy{Attempts: 1, Delay: time.Millisecond}

	service.EXPECT().RunJob(gomock.Any(), msg).Return(nil)
	service.EXPECT().SetStatus(gomock.Any(), strategy, msg.ID, model.StatusSucceeded, 0).Return(nil)

	h.HandleMessage(context.Background(), msg, strategy)
}

func TestHandler_HandleMessage_RetryableFaultRequeues(t *testing.T) {
	h, service, q := setupHandler(t)

	msg := testMsg(0)
	strategy := retry.Strategy{Attempts: 1, Delay: time.Millisecond}

	runErr := &svc.RetryAfterError{After: queue.RetryShortDelay, Err: errors.New("connection reset")}

	service.EXPECT().RunJob(gomock.Any(), msg).Return(runErr)

	requeued := msg
	requeued.Attempt = 1
	q.EXPECT().Requeue(requeued, queue.RetryShortDelay, strategy).Return(nil)
	service.EXPECT().SetStatus(gomock.Any(), strategy, msg.ID, model.StatusRetrying, 1).Return(nil)

	h.HandleMessage(context.Background(), msg, strategy)
}

func TestHandler_HandleMessage_LongCountdownHonored(t *testing.T) {
	h, service, q := setupHandler(t)

	msg := testMsg(1)
	msg.Channel = model.ChannelEmail
	strategy := retry.Strategy{Attempts: 1, Delay: time.Millisecond}

	runErr := &svc.RetryAfterError{After: queue.RetryLongDelay, Err: errors.New("535 auth failed")}

	service.EXPECT().RunJob(gomock.Any(), msg).Return(runErr)

	requeued := msg
	requeued.Attempt = 2
	q.EXPECT().Requeue(requeued, queue.RetryLongDelay, strategy).Return(nil)
	service.EXPECT().SetStatus(gomock.Any(), strategy, msg.ID, model.StatusRetrying, 2).Return(nil)

	h.HandleMessage(context.Background(), msg, strategy)
}

func TestHandler_HandleMessage_ExhaustedAttemptsDeadLetters(t *testing.T) {
	h, service, q := setupHandler(t)

	// Third execution: attempts 0 and 1 already failed.
	msg := testMsg(2)
	strategy := retry.Strategy{Attempts: 1, Delay: time.Millisecond}

	runErr := &svc.RetryAfterError{After: queue.RetryShortDelay, Err: errors.New("connection reset")}

	service.EXPECT().RunJob(gomock.Any(), msg).Return(runErr)

	dead := msg
	dead.Attempt = 3
	q.EXPECT().PublishDead(dead, strategy).Return(nil)
	service.EXPECT().SetStatus(gomock.Any(), strategy, msg.ID, model.StatusFailed, 3).Return(nil)

	h.HandleMessage(context.Background(), msg, strategy)
}

func TestHandler_HandleMessage_PlainErrorUsesDefaultCountdown(t *testing.T) {
	h, service, q := setupHandler(t)

	msg := testMsg(0)
	strategy := retry.Strategy{Attempts: 1, Delay: time.Millisecond}

	service.EXPECT().RunJob(gomock.Any(), msg).Return(errors.New("boom"))

	requeued := msg
	requeued.Attempt = 1
	q.EXPECT().Requeue(requeued, queue.RetryShortDelay, strategy).Return(nil)
	service.EXPECT().SetStatus(gomock.Any(), strategy, msg.ID, model.StatusRetrying, 1).Return(nil)

	h.HandleMessage(context.Background(), msg, strategy)
}

func TestHandler_HandleMessage_RequeueFailureStillSetsStatus(t *testing.T) {
	h, service, q := setupHandler(t)

	msg := testMsg(0)
	strategy := retry.Strategy{Attempts: 1, Delay: time.Millisecond}

	service.EXPECT().RunJob(gomock.Any(), msg).Return(errors.New("boom"))

	requeued := msg
	requeued.Attempt = 1
	q.EXPECT().Requeue(requeued, queue.RetryShortDelay, strategy).Return(errors.New("broker down"))
	service.EXPECT().SetStatus(gomock.Any(), strategy, msg.ID, model.StatusRetrying, 1).Return(nil)

	h.HandleMessage(context.Background(), msg, strategy)
}
