package notifications

import (
	"clinic-admin-service/internal/app/models"
	"clinic-admin-service/internal/pkg/dto/requests"
	"clinic-admin-service/internal/pkg/exceptions"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockNotificationUsecase struct {
	mock.Mock
}

func (m *MockNotificationUsecase) FindAll(ctx context.Context, session *models.Session, request *requests.FindNotifications) ([]models.Notification, int, error) {
	called := m.Called(ctx, session, request)
	data, _ := called.Get(0).([]models.Notification)
	return data, called.Int(1), called.Error(2)
}

func (m *MockNotificationUsecase) MarkRead(ctx context.Context, session *models.Session, notificationID string) error {
	return m.Called(ctx, session, notificationID).Error(0)
}

func (m *MockNotificationUsecase) HandleEvent(ctx context.Context, body []byte) error {
	return m.Called(ctx, string(body)).Error(0)
}

func (m *MockNotificationUsecase) PurgeRead(ctx context.Context, olderThan time.Duration) (int64, error) {
	called := m.Called(ctx, olderThan)
	return called.Get(0).(int64), called.Error(1)
}

// recordingAcknowledger captures how a delivery was settled.
type recordingAcknowledger struct {
	acked   bool
	nacked  bool
	requeue bool
}

func (a *recordingAcknowledger) Ack(tag uint64, multiple bool) error {
	a.acked = true
	return nil
}

func (a *recordingAcknowledger) Nack(tag uint64, multiple, requeue bool) error {
	a.nacked = true
	a.requeue = requeue
	return nil
}

func (a *recordingAcknowledger) Reject(tag uint64, requeue bool) error {
	return a.Nack(tag, false, requeue)
}

func TestWorker_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("Acks Handled Event", func(t *testing.T) {
		usecase := new(MockNotificationUsecase)
		usecase.On("HandleEvent", mock.Anything, `{"name":"billing.updated"}`).Return(nil)
		worker := &Worker{log: zap.NewNop(), notificationUsecase: usecase}
		ack := &recordingAcknowledger{}

		worker.handle(ctx, amqp091.Delivery{Acknowledger: ack, Body: []byte(`{"name":"billing.updated"}`)})

		assert.True(t, ack.acked, "handled events should be acked")
		assert.False(t, ack.nacked)
	})

	t.Run("Drops Malformed Event", func(t *testing.T) {
		usecase := NewNotificationUsecase(new(MockNotificationRepository), zap.NewNop())
		worker := &Worker{log: zap.NewNop(), notificationUsecase: usecase}
		ack := &recordingAcknowledger{}

		worker.handle(ctx, amqp091.Delivery{Acknowledger: ack, Body: []byte(`not json`)})

		assert.True(t, ack.nacked)
		assert.False(t, ack.requeue, "a malformed event can never succeed and should not be requeued")
	})

	t.Run("Requeues Transient Failure Once", func(t *testing.T) {
		usecase := new(MockNotificationUsecase)
		usecase.On("HandleEvent", mock.Anything, mock.Anything).Return(errors.New("mongo unavailable"))
		worker := &Worker{log: zap.NewNop(), notificationUsecase: usecase}

		first := &recordingAcknowledger{}
		worker.handle(ctx, amqp091.Delivery{Acknowledger: first, Body: []byte(`{}`)})
		assert.True(t, first.requeue, "first failure should be requeued")

		second := &recordingAcknowledger{}
		worker.handle(ctx, amqp091.Delivery{Acknowledger: second, Body: []byte(`{}`), Redelivered: true})
		assert.True(t, second.nacked)
		assert.False(t, second.requeue, "a redelivered event that fails again is dropped")
	})

	t.Run("Requeues Interrupted Redelivery", func(t *testing.T) {
		usecase := new(MockNotificationUsecase)
		usecase.On("HandleEvent", mock.Anything, mock.Anything).Return(exceptions.ErrMongoDBInsertDocument(context.Canceled))
		worker := &Worker{log: zap.NewNop(), notificationUsecase: usecase}
		ack := &recordingAcknowledger{}

		worker.handle(ctx, amqp091.Delivery{Acknowledger: ack, Body: []byte(`{}`), Redelivered: true})

		assert.True(t, ack.nacked)
		assert.True(t, ack.requeue, "an interrupted event should go back to the queue")
	})
}

func TestWorker_StopFinishesInFlightDelivery(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var handleErr error

	usecase := new(MockNotificationUsecase)
	usecase.On("HandleEvent", mock.Anything, `{}`).
		Run(func(args mock.Arguments) {
			close(started)
			<-release
			handleErr = args.Get(0).(context.Context).Err()
		}).
		Return(nil)
	worker := &Worker{log: zap.NewNop(), notificationUsecase: usecase}

	deliveries := make(chan amqp091.Delivery, 1)
	ack := &recordingAcknowledger{}
	deliveries <- amqp091.Delivery{Acknowledger: ack, Body: []byte(`{}`), Redelivered: true}

	runCtx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.consume(runCtx, deliveries)
		close(done)
	}()

	<-started
	cancel()
	close(release)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("consume should return after the in-flight delivery")
	}
	assert.NoError(t, handleErr, "stopping the consumer should not cancel the delivery being handled")
	assert.True(t, ack.acked)
	assert.False(t, ack.nacked)
}

func TestWorker_Consume(t *testing.T) {
	usecase := new(MockNotificationUsecase)
	usecase.On("HandleEvent", mock.Anything, `{}`).Return(nil)
	worker := &Worker{log: zap.NewNop(), notificationUsecase: usecase}

	deliveries := make(chan amqp091.Delivery, 2)
	first, second := &recordingAcknowledger{}, &recordingAcknowledger{}
	deliveries <- amqp091.Delivery{Acknowledger: first, Body: []byte(`{}`)}
	deliveries <- amqp091.Delivery{Acknowledger: second, Body: []byte(`{}`)}
	close(deliveries)

	done := make(chan struct{})
	go func() {
		worker.consume(context.Background(), deliveries)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("consume should return once the delivery channel closes")
	}
	assert.True(t, first.acked)
	assert.True(t, second.acked)
}
