package codes

import (
	"fmt"
	"strconv"
	"strings"
)

// ===========================
// Callback Payload Codec
// ===========================

// 按鈕回呼負載的線上格式：
//
//   {action}:{code}[:{amount}]
//
// 其中 action 是下列四個之一，amount 僅確認動作攜帶：
//
//   purchase_confirm:483920:14   — 確認發放 14 分
//   purchase_reject:483920       — 拒絕發放
//   spend_confirm:483920:50      — 確認兌換（成本 50 分）
//   spend_reject:483920          — 拒絕兌換
//
// 負載在入口處解析一次成帶類型的變體（sealed interface），
// 之後的分派全部基於類型，不再碰字串。
const (
	actionEarnAccept  = "purchase_confirm"
	actionEarnReject  = "purchase_reject"
	actionSpendAccept = "spend_confirm"
	actionSpendReject = "spend_reject"
)

// Callback 已解析的按鈕回呼（sealed：僅本包的四個變體實作）
type Callback interface {
	// Encode 序列化回線上格式
	Encode() string

	// sealed 防止包外實作
	sealed()
}

// EarnAccept 確認發放積分
type EarnAccept struct {
	Code   Code
	Points int
}

// EarnReject 拒絕發放
type EarnReject struct {
	Code Code
}

// SpendAccept 確認兌換
type SpendAccept struct {
	Code Code
	Cost int
}

// SpendReject 拒絕兌換
type SpendReject struct {
	Code Code
}

// Encode 實現 Callback 介面
func (c EarnAccept) Encode() string {
	return fmt.Sprintf("%s:%s:%d", actionEarnAccept, c.Code.String(), c.Points)
}

// Encode 實現 Callback 介面
func (c EarnReject) Encode() string {
	return fmt.Sprintf("%s:%s", actionEarnReject, c.Code.String())
}

// Encode 實現 Callback 介面
func (c SpendAccept) Encode() string {
	return fmt.Sprintf("%s:%s:%d", actionSpendAccept, c.Code.String(), c.Cost)
}

// Encode 實現 Callback 介面
func (c SpendReject) Encode() string {
	return fmt.Sprintf("%s:%s", actionSpendReject, c.Code.String())
}

func (EarnAccept) sealed()  {}
func (EarnReject) sealed()  {}
func (SpendAccept) sealed() {}
func (SpendReject) sealed() {}

// ParseCallback 解析按鈕回呼負載
//
// 任何畸形負載（未知動作、缺欄位、碼或金額不合法）一律返回
// ErrInvalidCallback —— 回呼來自外部，入口必須把它當不可信輸入。
func ParseCallback(payload string) (Callback, error) {
	parts := strings.Split(payload, ":")
	if len(parts) < 2 {
		return nil, ErrInvalidCallback.WithContext("payload", payload)
	}

	action := parts[0]
	code, err := NewCode(parts[1])
	if err != nil {
		return nil, ErrInvalidCallback.WithContext("payload", payload, "reason", "bad code")
	}

	switch action {
	case actionEarnAccept, actionSpendAccept:
		if len(parts) != 3 {
			return nil, ErrInvalidCallback.WithContext("payload", payload, "reason", "missing amount")
		}
		amount, err := strconv.Atoi(parts[2])
		if err != nil || amount <= 0 {
			return nil, ErrInvalidCallback.WithContext("payload", payload, "reason", "bad amount")
		}
		if action == actionEarnAccept {
			return EarnAccept{Code: code, Points: amount}, nil
		}
		return SpendAccept{Code: code, Cost: amount}, nil

	case actionEarnReject:
		if len(parts) != 2 {
			return nil, ErrInvalidCallback.WithContext("payload", payload)
		}
		return EarnReject{Code: code}, nil

	case actionSpendReject:
		if len(parts) != 2 {
			return nil, ErrInvalidCallback.WithContext("payload", payload)
		}
		return SpendReject{Code: code}, nil

	default:
		return nil, ErrInvalidCallback.WithContext("payload", payload, "action", action)
	}
}
