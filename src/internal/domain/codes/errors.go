package codes

import "github.com/Niko-MM/BonusLinkBot/src/internal/domain/shared"

// ===========================
// Codes Domain 錯誤定義
// ===========================

// Codes Domain 錯誤代碼常量
const (
	ErrCodeInvalidCode     shared.ErrorCode = "CODE_INVALID"
	ErrCodeTakenCode       shared.ErrorCode = "CODE_TAKEN"
	ErrCodeNotFoundCode    shared.ErrorCode = "CODE_NOT_FOUND"
	ErrCodeUsed            shared.ErrorCode = "CODE_ALREADY_USED"
	ErrCodeInvalidKind     shared.ErrorCode = "CODE_KIND_INVALID"
	ErrCodeInvalidAmount   shared.ErrorCode = "CODE_AMOUNT_INVALID"
	ErrCodeInvalidCallback shared.ErrorCode = "CALLBACK_INVALID"
	ErrCodeInvalidAccrual  shared.ErrorCode = "ACCRUAL_AMOUNT_INVALID"
	ErrCodeExhausted       shared.ErrorCode = "CODE_SPACE_EXHAUSTED"
)

var (
	// ErrInvalidCode 碼格式不合法（非純數字或長度越界）
	ErrInvalidCode = &shared.DomainError{
		Code:    ErrCodeInvalidCode,
		Message: "некорректный формат кода",
	}

	// ErrCodeTaken 預留失敗：碼已被其他交易佔用（唯一索引衝突）
	ErrCodeTaken = &shared.DomainError{
		Code:    ErrCodeTakenCode,
		Message: "код уже занят",
	}

	// ErrCodeNotFound 碼不存在（輸入錯誤或已被清理）
	ErrCodeNotFound = &shared.DomainError{
		Code:    ErrCodeNotFoundCode,
		Message: "код не найден",
	}

	// ErrCodeAlreadyUsed 碼已被核銷（重複提交或競態中落敗的一方）
	ErrCodeAlreadyUsed = &shared.DomainError{
		Code:    ErrCodeUsed,
		Message: "код уже использован",
	}

	ErrInvalidKind = &shared.DomainError{
		Code:    ErrCodeInvalidKind,
		Message: "неизвестный тип кода",
	}

	ErrInvalidAmount = &shared.DomainError{
		Code:    ErrCodeInvalidAmount,
		Message: "сумма по коду должна быть положительной",
	}

	ErrInvalidCallback = &shared.DomainError{
		Code:    ErrCodeInvalidCallback,
		Message: "некорректные данные кнопки",
	}

	ErrInvalidAccrualAmount = &shared.DomainError{
		Code:    ErrCodeInvalidAccrual,
		Message: "сумма покупки должна быть положительной",
	}

	// ErrCodeSpaceExhausted 連最大長度都反覆碰撞（實務上幾乎不可能）
	ErrCodeSpaceExhausted = &shared.DomainError{
		Code:    ErrCodeExhausted,
		Message: "не удалось сгенерировать уникальный код",
	}
)
