package codes

import (
	"github.com/shopspring/decimal"
)

// ===========================
// Accrual Policy
// ===========================

// AccrualOption 發放選單中的一個預設項：購買金額與對應的積分
type AccrualOption struct {
	AmountRubles decimal.Decimal
	Points       int
}

// AccrualPolicy 積分發放政策
//
// 業務規則：每滿 per 盧布發 rate 積分，不足部分向下取整。
// 預設：每 100₽ 發 7 分，選單提供 100/200/300₽（即 7/14/21 分）。
//
// 金額用 decimal 而非 float：政策參數可配置（例如 7.5 分 /
// 100₽ 的促銷），二進制浮點在這裡會累積取整誤差。
type AccrualPolicy struct {
	rate    decimal.Decimal
	per     decimal.Decimal
	presets []decimal.Decimal
}

// NewAccrualPolicy 創建預設政策（7 分 / 100₽，選單 100/200/300₽）
func NewAccrualPolicy() *AccrualPolicy {
	return &AccrualPolicy{
		rate: decimal.NewFromInt(7),
		per:  decimal.NewFromInt(100),
		presets: []decimal.Decimal{
			decimal.NewFromInt(100),
			decimal.NewFromInt(200),
			decimal.NewFromInt(300),
		},
	}
}

// NewCustomAccrualPolicy 創建自定義政策（配置注入）
func NewCustomAccrualPolicy(rate, per decimal.Decimal, presets []decimal.Decimal) (*AccrualPolicy, error) {
	if !rate.IsPositive() || !per.IsPositive() {
		return nil, ErrInvalidAccrualAmount.WithContext(
			"rate", rate.String(),
			"per", per.String(),
		)
	}
	if len(presets) == 0 {
		return nil, ErrInvalidAccrualAmount.WithContext("reason", "empty presets")
	}
	return &AccrualPolicy{rate: rate, per: per, presets: presets}, nil
}

// PointsFor 計算購買金額對應的積分（向下取整）
//
// 驗證規則：金額必須為正數。金額過小可能算出 0 分，
// 由調用方決定是否拒絕零分交易。
func (p *AccrualPolicy) PointsFor(amountRubles decimal.Decimal) (int, error) {
	if !amountRubles.IsPositive() {
		return 0, ErrInvalidAccrualAmount.WithContext("amount", amountRubles.String())
	}

	points := amountRubles.Mul(p.rate).Div(p.per).Floor()
	return int(points.IntPart()), nil
}

// Options 返回發放選單（預設金額及其積分）
func (p *AccrualPolicy) Options() []AccrualOption {
	out := make([]AccrualOption, 0, len(p.presets))
	for _, amount := range p.presets {
		points, err := p.PointsFor(amount)
		if err != nil {
			continue // 無效預設在 NewCustomAccrualPolicy 已被擋下
		}
		out = append(out, AccrualOption{AmountRubles: amount, Points: points})
	}
	return out
}
