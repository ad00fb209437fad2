package rabbitmq

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/mehndi-booking-service/internal/domain"
	"github.com/m04kA/mehndi-booking-service/pkg/logger"
)

func TestRoutingKey(t *testing.T) {
	assert.Equal(t, "booking.escalation.calendar_write_failed", RoutingKey(domain.ReasonCalendarWriteFailed))
}

func TestPublisher_Escalate(t *testing.T) {
	url := os.Getenv("TEST_RABBITMQ_URL")
	if url == "" {
		t.Skip("TEST_RABBITMQ_URL not set")
	}

	exchange := "test.escalations." + time.Now().Format("150405.000")
	pub, err := NewPublisher(url, exchange, logger.NewNop())
	require.NoError(t, err)
	defer pub.Close()

	conn, err := amqp.Dial(url)
	require.NoError(t, err)
	defer conn.Close()
	ch, err := conn.Channel()
	require.NoError(t, err)
	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	require.NoError(t, err)
	require.NoError(t, ch.QueueBind(q.Name, "booking.escalation.#", exchange, false, nil))
	msgs, err := ch.Consume(q.Name, "", true, true, false, false, nil)
	require.NoError(t, err)

	err = pub.Escalate(context.Background(), domain.ReconciliationItem{
		PaymentIntentID: "pi_1",
		Reason:          domain.ReasonNotificationFailed,
		Details:         "emailjs 503",
	})
	require.NoError(t, err)

	select {
	case msg := <-msgs:
		assert.Equal(t, "booking.escalation.notification_failed", msg.RoutingKey)
		var got domain.ReconciliationItem
		require.NoError(t, json.Unmarshal(msg.Body, &got))
		assert.Equal(t, "pi_1", got.PaymentIntentID)
	case <-time.After(5 * time.Second):
		t.Fatal("escalation not delivered")
	}
}
