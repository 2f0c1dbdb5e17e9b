package client

import "github.com/Niko-MM/BonusLinkBot/src/internal/domain/shared"

// ===========================
// Client Domain 錯誤定義
// ===========================

// Client Domain 錯誤代碼常量
const (
	ErrCodeNegativePointsAmount shared.ErrorCode = "POINTS_NEGATIVE"
	ErrCodeInsufficientPoints   shared.ErrorCode = "POINTS_INSUFFICIENT"
	ErrCodeClientNotFound       shared.ErrorCode = "CLIENT_NOT_FOUND"
	ErrCodeInvalidLedgerEntryID shared.ErrorCode = "LEDGER_ENTRY_ID_INVALID"
	ErrCodeInvalidLedgerKind    shared.ErrorCode = "LEDGER_KIND_INVALID"
	ErrCodeCorruptedBalance     shared.ErrorCode = "BALANCE_CORRUPTED"
)

// 積分相關錯誤
var (
	ErrNegativePointsAmount = &shared.DomainError{
		Code:    ErrCodeNegativePointsAmount,
		Message: "количество баллов не может быть отрицательным",
	}

	ErrInsufficientPoints = &shared.DomainError{
		Code:    ErrCodeInsufficientPoints,
		Message: "недостаточно баллов",
	}
)

// 客戶相關錯誤
var (
	ErrClientNotFound = &shared.DomainError{
		Code:    ErrCodeClientNotFound,
		Message: "клиент не найден",
	}

	// ErrCorruptedBalance 資料庫中的餘額違反不變條件（重建聚合時檢出）
	ErrCorruptedBalance = &shared.DomainError{
		Code:    ErrCodeCorruptedBalance,
		Message: "повреждённый баланс в базе данных",
	}
)

// 帳本相關錯誤
var (
	ErrInvalidLedgerEntryID = &shared.DomainError{
		Code:    ErrCodeInvalidLedgerEntryID,
		Message: "некорректный идентификатор записи журнала",
	}

	ErrInvalidLedgerKind = &shared.DomainError{
		Code:    ErrCodeInvalidLedgerKind,
		Message: "неизвестный тип операции журнала",
	}
)
