package client

import (
	"time"

	"github.com/Niko-MM/BonusLinkBot/src/internal/domain/shared"
)

// ===========================
// Points Ledger
// ===========================

// ledgerEntryMarker EntityID 的標記類型
type ledgerEntryMarker struct{}

// LedgerEntryID 帳本記錄 ID（UUID）
type LedgerEntryID = shared.EntityID[ledgerEntryMarker]

// NewLedgerEntryID 生成新的帳本記錄 ID
func NewLedgerEntryID() LedgerEntryID {
	return shared.NewEntityID[ledgerEntryMarker]()
}

// LedgerEntryIDFromString 從字串解析帳本記錄 ID
func LedgerEntryIDFromString(s string) (LedgerEntryID, error) {
	return shared.EntityIDFromString[ledgerEntryMarker](s, ErrInvalidLedgerEntryID)
}

// LedgerEntryKind 帳本記錄類型
type LedgerEntryKind string

const (
	// LedgerCredit 入帳（購買確認）
	LedgerCredit LedgerEntryKind = "credit"
	// LedgerDebit 扣帳（兌換確認）
	LedgerDebit LedgerEntryKind = "debit"
)

// IsValid 檢查記錄類型是否有效
func (k LedgerEntryKind) IsValid() bool {
	return k == LedgerCredit || k == LedgerDebit
}

// LedgerEntry 帳本記錄（append-only）
//
// 每筆已結算的交易在帳本留一筆記錄：誰、方向、多少分、
// 對應的一次性碼。帳本只追加、不修改，供審計與對帳使用。
//
// 不變量：
// 1. Amount > 0（零分交易不產生記錄）
// 2. Code 為已核銷的一次性碼原文
type LedgerEntry struct {
	id         LedgerEntryID
	actorID    shared.ActorID
	kind       LedgerEntryKind
	amount     PointsAmount
	code       string
	recordedAt time.Time
}

// NewLedgerEntry 創建帳本記錄（Checked Constructor）
func NewLedgerEntry(
	actorID shared.ActorID,
	kind LedgerEntryKind,
	amount PointsAmount,
	code string,
) (*LedgerEntry, error) {
	if actorID.IsZero() {
		return nil, shared.ErrInvalidActorID
	}
	if !kind.IsValid() {
		return nil, ErrInvalidLedgerKind.WithContext("kind", string(kind))
	}
	if amount.Value() <= 0 {
		return nil, ErrNegativePointsAmount.WithContext("amount", amount.Value())
	}

	return &LedgerEntry{
		id:         NewLedgerEntryID(),
		actorID:    actorID,
		kind:       kind,
		amount:     amount,
		code:       code,
		recordedAt: time.Now(),
	}, nil
}

// ReconstructLedgerEntry 重建帳本記錄（用於從資料庫載入）
func ReconstructLedgerEntry(
	id LedgerEntryID,
	actorID shared.ActorID,
	kind LedgerEntryKind,
	amount PointsAmount,
	code string,
	recordedAt time.Time,
) (*LedgerEntry, error) {
	if !kind.IsValid() {
		return nil, ErrInvalidLedgerKind.WithContext("kind", string(kind))
	}

	return &LedgerEntry{
		id:         id,
		actorID:    actorID,
		kind:       kind,
		amount:     amount,
		code:       code,
		recordedAt: recordedAt,
	}, nil
}

// ===========================
// LedgerEntry Getters
// ===========================

// ID 返回帳本記錄 ID
func (l *LedgerEntry) ID() LedgerEntryID {
	return l.id
}

// ActorID 返回客戶平台標識
func (l *LedgerEntry) ActorID() shared.ActorID {
	return l.actorID
}

// Kind 返回記錄類型
func (l *LedgerEntry) Kind() LedgerEntryKind {
	return l.kind
}

// Amount 返回積分數量
func (l *LedgerEntry) Amount() PointsAmount {
	return l.amount
}

// Code 返回對應的一次性碼
func (l *LedgerEntry) Code() string {
	return l.code
}

// RecordedAt 返回記錄時間
func (l *LedgerEntry) RecordedAt() time.Time {
	return l.recordedAt
}
