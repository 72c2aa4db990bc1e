package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueBooking/internal/domain"
	"github.com/m04kA/SMC-VenueBooking/pkg/logger"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaPublisher_Publish(t *testing.T) {
	w := &fakeWriter{}
	p := newKafkaPublisher(w, "bookings", logger.Nop())

	start := time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)
	b := &domain.Booking{
		ID:       uuid.New(),
		Venue:    domain.VenueAlFresco,
		Status:   domain.StatusApproved,
		Interval: domain.Interval{Start: start, End: start.Add(5 * time.Hour)},
	}
	event := NewBookingEvent(TypeForStatus(b.Status), b, start.Add(-time.Hour))

	require.NoError(t, p.Publish(context.Background(), event))
	require.Len(t, w.messages, 1)

	msg := w.messages[0]
	assert.Equal(t, b.ID.String(), string(msg.Key))

	var decoded BookingEvent
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, TypeApproved, decoded.Type)
	assert.Equal(t, "al fresco", decoded.Venue)
	assert.Equal(t, "APPROVED", decoded.Status)
	assert.True(t, decoded.End.Equal(b.Interval.End))

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestKafkaPublisher_WriteError(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker down")}
	p := newKafkaPublisher(w, "bookings", logger.Nop())

	err := p.Publish(context.Background(), BookingEvent{Type: TypeCreated, BookingID: uuid.New()})
	assert.ErrorIs(t, err, ErrPublish)
}

func TestNewKafkaPublisher_Config(t *testing.T) {
	_, err := NewKafkaPublisher(nil, "bookings", time.Second, logger.Nop())
	assert.ErrorIs(t, err, ErrConfig)

	_, err = NewKafkaPublisher([]string{"localhost:9092"}, "", time.Second, logger.Nop())
	assert.ErrorIs(t, err, ErrConfig)
}

func TestTypeForStatus(t *testing.T) {
	assert.Equal(t, TypeRejected, TypeForStatus(domain.StatusRejected))
	assert.Equal(t, TypeCancelled, TypeForStatus(domain.StatusCancelled))
	assert.Equal(t, TypeCompleted, TypeForStatus(domain.StatusCompleted))
	assert.Equal(t, TypeCreated, TypeForStatus(domain.StatusPending))
}
