package staff

import "github.com/Niko-MM/BonusLinkBot/src/internal/domain/shared"

// ===========================
// Staff Domain 錯誤定義
// ===========================

// Staff Domain 錯誤代碼常量
const (
	ErrCodeInvalidStaffName shared.ErrorCode = "STAFF_NAME_INVALID"
	ErrCodeStaffNotFound    shared.ErrorCode = "STAFF_NOT_FOUND"
	ErrCodeNoActiveStaff    shared.ErrorCode = "STAFF_NONE_ACTIVE"
)

var (
	ErrInvalidStaffName = &shared.DomainError{
		Code:    ErrCodeInvalidStaffName,
		Message: "кассир должен иметь имя",
	}

	ErrStaffNotFound = &shared.DomainError{
		Code:    ErrCodeStaffNotFound,
		Message: "кассир не найден",
	}

	// ErrNoActiveStaff 網點當前沒有可接單的收銀員
	//
	// 「無收銀員」是兩個流程都要檢查的合法終止信號，
	// 不是基礎設施故障。
	ErrNoActiveStaff = &shared.DomainError{
		Code:    ErrCodeNoActiveStaff,
		Message: "в этой кофейне сейчас нет кассиров",
	}
)
