package shared

import (
	"strconv"
	"strings"
)

// ===========================
// ActorID Value Object
// ===========================

// ActorID 聊天平台參與者的不透明標識
//
// 業務規則：
// 1. 平台分配的正整數（Telegram 風格的 chat id）
// 2. 同一個 ActorID 依角色解析結果可能是客戶、收銀員或管理員
//
// 設計原則：
// - 不可變性、自我驗證、值相等
// - 與 EntityID[T]（UUID）區分：ActorID 由外部平台分配，不由本系統生成
type ActorID struct {
	value int64
}

// ActorID 相關錯誤
var (
	ErrInvalidActorID = &DomainError{
		Code:    "ACTOR_ID_INVALID",
		Message: "участник должен иметь положительный числовой идентификатор",
	}
)

// NewActorID 創建 ActorID（Checked Constructor）
//
// 驗證規則：value 必須為正數
func NewActorID(value int64) (ActorID, error) {
	if value <= 0 {
		return ActorID{}, ErrInvalidActorID.WithContext("value", value)
	}
	return ActorID{value: value}, nil
}

// ParseActorID 從字串解析 ActorID
//
// 使用場景：管理員對話中輸入收銀員的數字 ID。
// 非數字輸入返回 ErrInvalidActorID（上層重新提示，不得崩潰）。
func ParseActorID(s string) (ActorID, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return ActorID{}, ErrInvalidActorID.WithContext(
			"input", s,
			"parse_error", err.Error(),
		)
	}
	return NewActorID(v)
}

// Int64 返回底層數值（供持久化與外部通知使用）
func (a ActorID) Int64() int64 {
	return a.value
}

// String 返回十進制字串表示
func (a ActorID) String() string {
	return strconv.FormatInt(a.value, 10)
}

// Equals 比較兩個 ActorID 是否相等
func (a ActorID) Equals(other ActorID) bool {
	return a.value == other.value
}

// IsZero 判斷是否為零值（未初始化）
func (a ActorID) IsZero() bool {
	return a.value == 0
}
