package shared

import (
	"github.com/google/uuid"
)

// ===========================
// EntityID[T] 泛型實體 ID
// ===========================

// EntityID 泛型實體 ID 值對象
//
// 設計原則：
// 1. 使用泛型消除各實體 ID 的重複代碼（DRY）
// 2. 類型安全：不同實體的 ID 不能混用（編譯器強制檢查）
// 3. 不可變性（unexported field）
//
// 泛型參數 T 是標記類型（marker type），只用於編譯時區分，
// 不需要任何方法或字段。
type EntityID[T any] struct {
	value uuid.UUID
}

// NewEntityID 生成新的實體 ID（UUID v4）
func NewEntityID[T any]() EntityID[T] {
	return EntityID[T]{value: uuid.New()}
}

// EntityIDFromString 從字串解析實體 ID
//
// 參數：
//   s - UUID 字串（標準格式）
//   errTemplate - 解析失敗時返回的錯誤模板（由各 bounded context 提供，
//     保持錯誤類型一致性；shared 層不依賴具體業務錯誤）
func EntityIDFromString[T any](s string, errTemplate *DomainError) (EntityID[T], error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return EntityID[T]{}, errTemplate.WithContext(
			"input", s,
			"parse_error", err.Error(),
		)
	}
	return EntityID[T]{value: id}, nil
}

// String 轉換為字串表示（小寫 UUID）
func (e EntityID[T]) String() string {
	return e.value.String()
}

// Equals 比較兩個同類型 EntityID 是否相等
func (e EntityID[T]) Equals(other EntityID[T]) bool {
	return e.value == other.value
}

// IsEmpty 判斷是否為空 ID（零值）
func (e EntityID[T]) IsEmpty() bool {
	return e.value == uuid.Nil
}
