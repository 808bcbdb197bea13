package notifications

import (
	"clinic-admin-service/internal/app/contracts"
	"clinic-admin-service/internal/pkg/constvars"
	"clinic-admin-service/internal/pkg/exceptions"
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	consumerTag   = "notification-worker"
	handleTimeout = 30 * time.Second
)

// Worker turns domain events from the event queue into notifications.
type Worker struct {
	log                 *zap.Logger
	channel             *amqp091.Channel
	queue               string
	prefetch            int
	notificationUsecase contracts.NotificationUsecase
	cancel              context.CancelFunc
	wg                  sync.WaitGroup
}

func NewWorker(log *zap.Logger, connection *amqp091.Connection, queue string, prefetch int, notificationUsecase contracts.NotificationUsecase) (*Worker, error) {
	channel, err := connection.Channel()
	if err != nil {
		return nil, err
	}
	return &Worker{
		log:                 log,
		channel:             channel,
		queue:               queue,
		prefetch:            prefetch,
		notificationUsecase: notificationUsecase,
	}, nil
}

// Start declares the queue and consumes it until Stop is called or ctx ends.
func (w *Worker) Start(ctx context.Context) error {
	_, err := w.channel.QueueDeclare(w.queue, true, false, false, false, nil)
	if err != nil {
		return err
	}

	err = w.channel.Qos(w.prefetch, 0, false)
	if err != nil {
		return err
	}

	deliveries, err := w.channel.Consume(w.queue, consumerTag, false, false, false, false, nil)
	if err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.consume(runCtx, deliveries)
	}()

	w.log.Info("notification.worker: consuming",
		zap.String(constvars.LoggingQueueKey, w.queue),
	)
	return nil
}

// Stop cancels the consumer and waits for the in-flight delivery.
func (w *Worker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	if err := w.channel.Cancel(consumerTag, false); err != nil {
		w.log.Warn("notification.worker: failed to cancel consumer", zap.Error(err))
	}
	w.wg.Wait()
	w.channel.Close()
}

func (w *Worker) consume(ctx context.Context, deliveries <-chan amqp091.Delivery) {
	for {
		select {
		case <-ctx.Done():
			return
		case delivery, ok := <-deliveries:
			if !ok {
				w.log.Warn("notification.worker: delivery channel closed")
				return
			}
			// Stop only ends the receive loop; an accepted delivery runs to completion.
			handleCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), handleTimeout)
			w.handle(handleCtx, delivery)
			cancel()
		}
	}
}

// handle acks processed events. A malformed event is dropped, any other
// failure is requeued once. Interrupted handling is always requeued.
func (w *Worker) handle(ctx context.Context, delivery amqp091.Delivery) {
	err := w.notificationUsecase.HandleEvent(ctx, delivery.Body)
	if err == nil {
		if ackErr := delivery.Ack(false); ackErr != nil {
			w.log.Warn("notification.worker: ack failed", zap.Error(ackErr))
		}
		return
	}

	requeue := isInterrupted(err) || (!delivery.Redelivered && !isMalformed(err))
	w.log.Error("notification.worker: failed to handle event",
		zap.String(constvars.LoggingRequestIDKey, delivery.CorrelationId),
		zap.Bool("requeue", requeue),
		zap.Error(err),
	)
	if nackErr := delivery.Nack(false, requeue); nackErr != nil {
		w.log.Warn("notification.worker: nack failed", zap.Error(nackErr))
	}
}

func isMalformed(err error) bool {
	var customErr *exceptions.CustomError
	return errors.As(err, &customErr) && customErr.StatusCode == constvars.StatusBadRequest
}

func isInterrupted(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
