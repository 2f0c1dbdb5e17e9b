package codes

import (
	"math/rand/v2"
	"strings"
)

// ===========================
// Code Generator
// ===========================

// Generator 生成候選的數字碼
//
// 生成器本身不保證唯一性，唯一性由儲存層預留（insert-if-not-exists）
// 裁決：預留失敗（ErrCodeTaken）即視為一次碰撞，調用方帶著累計
// 碰撞次數重試。
//
// 長度升級規則：同一長度連續碰撞 attemptsPerLength 次後，
// 下一個候選碼長度 +1，直到 maxLength。碼空間隨長度指數擴張，
// 所以升級可以迅速把碰撞率壓回去。
type Generator struct {
	baseLength        int
	maxLength         int
	attemptsPerLength int
	intn              func(n int) int // 可注入，供測試固定隨機源
}

// 生成器預設參數
const (
	defaultBaseLength        = 6
	defaultAttemptsPerLength = 5
)

// NewGenerator 創建生成器（預設參數：6 位起步，每長度 5 次嘗試）
func NewGenerator() *Generator {
	return &Generator{
		baseLength:        defaultBaseLength,
		maxLength:         MaxCodeLength,
		attemptsPerLength: defaultAttemptsPerLength,
		intn:              rand.IntN,
	}
}

// LengthFor 根據累計碰撞次數計算候選碼長度
func (g *Generator) LengthFor(collisions int) int {
	length := g.baseLength + collisions/g.attemptsPerLength
	if length > g.maxLength {
		return g.maxLength
	}
	return length
}

// MaxCollisions 返回放棄前允許的碰撞總數
//
// 覆蓋從 baseLength 到 maxLength 的每個長度各 attemptsPerLength 次。
func (g *Generator) MaxCollisions() int {
	return (g.maxLength - g.baseLength + 1) * g.attemptsPerLength
}

// Generate 生成一個候選碼
//
// 參數：
//   collisions - 本次發碼流程中已累計的預留碰撞次數
//
// 碰撞次數超過 MaxCollisions 時返回 ErrCodeSpaceExhausted。
func (g *Generator) Generate(collisions int) (Code, error) {
	if collisions >= g.MaxCollisions() {
		return Code{}, ErrCodeSpaceExhausted.WithContext("collisions", collisions)
	}

	length := g.LengthFor(collisions)
	var b strings.Builder
	b.Grow(length)
	for i := 0; i < length; i++ {
		b.WriteByte(byte('0' + g.intn(10)))
	}

	return NewCode(b.String())
}
