package shared

import (
	"fmt"
	"sort"
	"strings"
)

// ===========================
// DomainError 結構
// ===========================

// ErrorCode 錯誤代碼類型
//
// 各 bounded context 在自己的 errors.go 中定義代碼常量，
// 共用同一個 DomainError 結構（避免每個 context 重複實作）。
type ErrorCode string

// DomainError 領域錯誤
//
// 設計原則：
// 1. 不使用裸字串錯誤（結構化：Code + Message + Context）
// 2. 支援 errors.Is 判斷（依 Code 比較）
// 3. 不可變性：WithContext 返回新實例
type DomainError struct {
	Code    ErrorCode
	Message string
	Context map[string]interface{}
}

// Error 實作 error 介面
func (e *DomainError) Error() string {
	if len(e.Context) == 0 {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return fmt.Sprintf("[%s] %s (context: %s)", e.Code, e.Message, formatContext(e.Context))
}

// WithContext 添加上下文信息（返回新的錯誤實例）
//
// 使用範例：
//   return ErrCodeNotFound.WithContext("code", code.String())
func (e *DomainError) WithContext(keyValues ...interface{}) *DomainError {
	if len(keyValues)%2 != 0 {
		panic("WithContext requires even number of arguments (key-value pairs)")
	}

	ctx := make(map[string]interface{}, len(e.Context)+len(keyValues)/2)
	for k, v := range e.Context {
		ctx[k] = v
	}
	for i := 0; i < len(keyValues); i += 2 {
		key, ok := keyValues[i].(string)
		if !ok {
			panic(fmt.Sprintf("context key must be string, got %T", keyValues[i]))
		}
		ctx[key] = keyValues[i+1]
	}

	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Context: ctx,
	}
}

// Is 實作 errors.Is 比較（依錯誤代碼判斷，忽略上下文）
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// formatContext 將上下文排序後格式化（確保輸出穩定，便於測試與日誌比對）
func formatContext(ctx map[string]interface{}) string {
	keys := make([]string, 0, len(ctx))
	for k := range ctx {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, ctx[k]))
	}
	return strings.Join(parts, ", ")
}
