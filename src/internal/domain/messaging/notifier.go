package messaging

import (
	"context"

	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/shared"
)

// ===========================
// Outbound Messaging Port
// ===========================

// Button 訊息附帶的互動按鈕
//
// Payload 是 codes 包定義的回呼負載線上格式；
// 這裡不解析，原樣透傳給聊天平台。
type Button struct {
	Label   string
	Payload string
}

// Message 對外送出的一則訊息
type Message struct {
	Recipient shared.ActorID
	Text      string
	Buttons   []Button // 可為空：純文字訊息
}

// Notifier 對外通知介面
//
// 架構原則：
// - 介面定義在 Domain Layer，由 Infrastructure 實作（聊天平台 API）
// - 通知是盡力而為（best-effort）：結算已在事務內完成後才發通知，
//   通知失敗不回滾交易，由實作記錄日誌
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}
