package notification

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/messaging"
	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test 1: an outbound message lands in the log with recipient, text and button payloads
func TestLogNotifier_Send_RecordsMessage(t *testing.T) {
	// Arrange
	var buf bytes.Buffer
	notifier := NewLogNotifier(slog.New(slog.NewTextHandler(&buf, nil)))
	recipient, err := shared.NewActorID(555)
	require.NoError(t, err)

	// Act
	err = notifier.Send(context.Background(), messaging.Message{
		Recipient: recipient,
		Text:      "Запрос на начисление баллов",
		Buttons: []messaging.Button{
			{Label: "✅ Подтвердить", Payload: "purchase_confirm:483920:14"},
			{Label: "❌ Отклонить", Payload: "purchase_reject:483920"},
		},
	})

	// Assert
	require.NoError(t, err)
	logged := buf.String()
	assert.Contains(t, logged, "outbound message")
	assert.Contains(t, logged, "recipient=555")
	assert.Contains(t, logged, "purchase_confirm:483920:14")
	assert.Contains(t, logged, "purchase_reject:483920")
}

// Test 2: a plain text message logs without a buttons attribute
func TestLogNotifier_Send_PlainText(t *testing.T) {
	// Arrange
	var buf bytes.Buffer
	notifier := NewLogNotifier(slog.New(slog.NewTextHandler(&buf, nil)))
	recipient, err := shared.NewActorID(100)
	require.NoError(t, err)

	// Act
	err = notifier.Send(context.Background(), messaging.Message{
		Recipient: recipient,
		Text:      "Ваш баланс: 20",
	})

	// Assert
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "recipient=100")
	assert.NotContains(t, buf.String(), "buttons")
}
