package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEvent() *BookingEvent {
	event := NewBookingEvent(EventTypeBookingConfirmed)
	event.BookingID = uuid.New()
	event.BookingRef = "RS-20260601-ABCDEF"
	event.RoomID = uuid.New()
	event.Total = 12544
	event.Source = "CUSTOMER"
	return event
}

func TestKafkaPublisherSendsEvent(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	event := sampleEvent()

	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		assert.Equal(t, "booking-events", msg.Topic)

		key, err := msg.Key.Encode()
		require.NoError(t, err)
		assert.Equal(t, event.BookingID.String(), string(key))

		value, err := msg.Value.Encode()
		require.NoError(t, err)
		var decoded BookingEvent
		require.NoError(t, json.Unmarshal(value, &decoded))
		assert.Equal(t, EventTypeBookingConfirmed, decoded.Type)
		assert.Equal(t, 12544.0, decoded.Total)

		headers := map[string]string{}
		for _, h := range msg.Headers {
			headers[string(h.Key)] = string(h.Value)
		}
		assert.Equal(t, "BOOKING_CONFIRMED", headers["event_type"])
		assert.Equal(t, event.BookingRef, headers["booking_ref"])
		return nil
	})

	publisher := NewKafkaPublisherWithProducer(producer, "booking-events")
	require.NoError(t, publisher.Publish(context.Background(), event))
	require.NoError(t, publisher.Close())
}

func TestKafkaPublisherReturnsSendError(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	publisher := NewKafkaPublisherWithProducer(producer, "booking-events")
	err := publisher.Publish(context.Background(), sampleEvent())
	assert.True(t, errors.Is(err, sarama.ErrOutOfBrokers))
	require.NoError(t, publisher.Close())
}

func TestProducerConfigUsesHashPartitioner(t *testing.T) {
	cfg := DefaultKafkaProducerConfig().SaramaConfig()
	assert.True(t, cfg.Producer.Return.Successes)
	assert.Equal(t, 1, cfg.Net.MaxOpenRequests)
	assert.NotNil(t, cfg.Producer.Partitioner)
}

func TestNoopPublisher(t *testing.T) {
	var p Publisher = NoopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), sampleEvent()))
	assert.NoError(t, p.Close())
}
