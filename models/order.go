package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string
type PaymentStatus string
type PaymentMethod string

const (
	// Order statuses (typical e-commerce flow)
	OrderStatusPending    OrderStatus = "pending"    // Order placed, awaiting confirmation
	OrderStatusProcessing OrderStatus = "processing" // Being prepared for dispatch
	OrderStatusShipped    OrderStatus = "shipped"    // Out for delivery
	OrderStatusDelivered  OrderStatus = "delivered"  // Customer received the item
	OrderStatusCancelled  OrderStatus = "cancelled"  // Cancelled before delivery

	// Payment statuses
	PaymentStatusPending   PaymentStatus = "pending"   // Payment not completed yet
	PaymentStatusCompleted PaymentStatus = "completed" // Payment completed successfully
	PaymentStatusFailed    PaymentStatus = "failed"    // Payment attempt failed

	// Payment methods
	PaymentMethodCOD        PaymentMethod = "cod"
	PaymentMethodUPI        PaymentMethod = "upi"
	PaymentMethodNetBanking PaymentMethod = "net_banking"
)

type Order struct {
	ID              uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderRef        string          `gorm:"uniqueIndex" json:"order_ref"`
	UserID          uint            `gorm:"not null;index" json:"user_id"`
	User            User            `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	ShippingAddress string          `gorm:"not null" json:"shipping_address"`
	PaymentMethod   PaymentMethod   `gorm:"type:VARCHAR(20);default:'cod'" json:"payment_method"`
	PaymentStatus   PaymentStatus   `gorm:"type:VARCHAR(20);default:'pending'" json:"payment_status"`
	PaymentDetails  string          `json:"payment_details,omitempty"`
	PaymentDate     *time.Time      `json:"payment_date,omitempty"`
	OrderStatus     OrderStatus     `gorm:"type:VARCHAR(20);default:'pending'" json:"order_status"`
	Coupons         []OrderCoupon   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"coupons,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// OrderItem snapshots the product price and seller at purchase time.
// Rows are immutable after creation.
type OrderItem struct {
	ID                 uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID            uint            `gorm:"not null;index" json:"order_id"`
	ProductID          uint            `gorm:"not null" json:"product_id"`
	Product            Product         `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	SellerID           uint            `gorm:"not null;index" json:"seller_id"`
	Seller             User            `gorm:"foreignKey:SellerID" json:"seller,omitempty"`
	Quantity           int             `gorm:"not null" json:"quantity"`
	PriceAtTimeOfOrder decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price_at_time_of_order"`
}
