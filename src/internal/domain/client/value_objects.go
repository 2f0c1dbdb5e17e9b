package client

import "fmt"

// PointsAmount 積分數量值對象
// 設計原則：值對象不可變、自我驗證
type PointsAmount struct {
	value int
}

// NewPointsAmount 建構函數（checked 版本）
//
// 建構約束：積分數量必須 >= 0（不存在負數積分的概念；
// 借記的「方向」由操作本身表達，而非負數金額）
func NewPointsAmount(value int) (PointsAmount, error) {
	if value < 0 {
		return PointsAmount{}, fmt.Errorf(
			"%w: attempted to create PointsAmount with value %d",
			ErrNegativePointsAmount,
			value,
		)
	}
	return PointsAmount{value: value}, nil
}

// newPointsAmountUnchecked 內部建構函數（unchecked 版本）
// 僅供內部使用，當值已保證有效時跳過重複驗證
//
// 前提條件：調用者必須保證 value >= 0
func newPointsAmountUnchecked(value int) PointsAmount {
	return PointsAmount{value: value}
}

// Value 獲取積分數量
func (p PointsAmount) Value() int {
	return p.value
}

// Add 相加（返回新的 PointsAmount，保持不變性）
//
// 設計假設：積分受業務規則限制（單帳戶遠低於 int 上限），
// 整數溢位在實際業務場景中不會發生
func (p PointsAmount) Add(other PointsAmount) PointsAmount {
	return newPointsAmountUnchecked(p.value + other.value)
}

// Subtract 相減（返回新的 PointsAmount）
// 業務規則：不能扣除超過當前數量的積分
func (p PointsAmount) Subtract(other PointsAmount) (PointsAmount, error) {
	if p.value < other.value {
		return PointsAmount{}, ErrInsufficientPoints.WithContext(
			"balance", p.value,
			"requested", other.value,
		)
	}
	return newPointsAmountUnchecked(p.value - other.value), nil
}

// Equals 比較兩個 PointsAmount 是否相等
func (p PointsAmount) Equals(other PointsAmount) bool {
	return p.value == other.value
}

// GreaterThan 判斷是否大於另一個 PointsAmount
func (p PointsAmount) GreaterThan(other PointsAmount) bool {
	return p.value > other.value
}

// LessThan 判斷是否小於另一個 PointsAmount
func (p PointsAmount) LessThan(other PointsAmount) bool {
	return p.value < other.value
}

// GreaterThanOrEqual 判斷是否大於等於另一個 PointsAmount
func (p PointsAmount) GreaterThanOrEqual(other PointsAmount) bool {
	return p.value >= other.value
}
