package worker

import (
	"context"
	"sync"

	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/vku-onelove/alert-notifier/internal/rabbitmq/queue"
)

//go:generate mockgen -source=dispatcher.go -destination=../mocks/worker/mock.go -package=mocks

type jobConsumer interface {
	Consume(out chan<- queue.JobMessage, strategy retry.Strategy) error
}

type jobHandler interface {
	HandleMessage(ctx context.Context, msg queue.JobMessage, strategy retry.Strategy)
}

// Dispatcher consumes bulk dispatch jobs from the broker and fans them
// out to a pool of worker goroutines. Jobs from different channels run
// concurrently with no ordering guarantee between them; recipients
// within one job keep their submitted order.
type Dispatcher struct {
	queue   jobConsumer
	handler jobHandler
}

func NewDispatcher(q jobConsumer, h jobHandler) *Dispatcher {
	return &Dispatcher{
		queue:   q,
		handler: h,
	}
}

func (d *Dispatcher) Run(ctx context.Context, strategy retry.Strategy, workerCount int) {
	var wg sync.WaitGroup
	msgChan := make(chan queue.JobMessage, workerCount*10)

	go func() {
		if err := d.queue.Consume(msgChan, strategy); err != nil {
			zlog.Logger.Error().Err(err).Msg("failed to consume messages")
		}
	}()

	wg.Add(workerCount)
	for i := 0; i < workerCount; i++ {
		go func(id int) {
			defer wg.Done()

			zlog.Logger.Printf("worker-%d started", id)

			for {
				select {
				case <-ctx.Done():
					zlog.Logger.Printf("worker-%d shutting down", id)
					return
				case msg, ok := <-msgChan:
					if !ok {
						zlog.Logger.Printf("worker-%d channel closed, shutting down", id)
						return
					}

					d.handler.HandleMessage(ctx, msg, strategy)
				}
			}
		}(i)
	}

	<-ctx.Done()
	wg.Wait()
	zlog.Logger.Print("dispatcher stopped")
}
