package notification

import (
	"context"
	"log/slog"

	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/messaging"
)

// ===========================
// Log Notifier
// ===========================

// LogNotifier 以結構化日誌落地出站訊息的 Notifier 實作
//
// 聊天平台的投遞通道（Telegram Bot API 等）部署在進程外，
// 由讀取日誌（或替換此實作）的轉發器負責實際發送。核心只
// 保證訊息內容與收件人被完整記錄。
//
// 出站通知是盡力而為：結算已提交，記錄失敗不回滾交易。
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier 創建日誌 Notifier
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Send 記錄一條出站訊息
func (n *LogNotifier) Send(ctx context.Context, msg messaging.Message) error {
	attrs := []any{
		slog.Int64("recipient", msg.Recipient.Int64()),
		slog.String("text", msg.Text),
	}
	if len(msg.Buttons) > 0 {
		payloads := make([]string, 0, len(msg.Buttons))
		for _, b := range msg.Buttons {
			payloads = append(payloads, b.Payload)
		}
		attrs = append(attrs, slog.Any("buttons", payloads))
	}

	n.logger.InfoContext(ctx, "outbound message", attrs...)
	return nil
}
