package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Coupon struct {
	ID                 uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Code               string          `gorm:"unique;not null" json:"code"`
	Description        string          `json:"description"`
	DiscountPercentage decimal.Decimal `gorm:"type:decimal(5,2);default:0" json:"discount_percentage"`
	DiscountAmount     decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"discount_amount"`
	MinimumPurchase    decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"minimum_purchase"`
	IsActive           bool            `gorm:"default:true" json:"is_active"`
	StartDate          *time.Time      `json:"start_date,omitempty"`
	EndDate            *time.Time      `json:"end_date,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// DiscountFor computes the discount this coupon grants on the given
// total. A fixed amount wins over a percentage when both are set.
func (cp Coupon) DiscountFor(total decimal.Decimal) decimal.Decimal {
	if cp.DiscountAmount.IsPositive() {
		return cp.DiscountAmount
	}
	return total.Mul(cp.DiscountPercentage).Div(decimal.NewFromInt(100)).Round(2)
}

// OrderCoupon records the exact discount applied to an order. Audit row,
// immutable after creation.
type OrderCoupon struct {
	ID              uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID         uint            `gorm:"not null;index" json:"order_id"`
	CouponID        uint            `gorm:"not null" json:"coupon_id"`
	Coupon          Coupon          `gorm:"foreignKey:CouponID" json:"coupon,omitempty"`
	DiscountApplied decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"discount_applied"`
	CreatedAt       time.Time       `json:"created_at"`
}
