package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID            uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string          `gorm:"not null" json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	StockQuantity int             `gorm:"not null;default:0" json:"stock_quantity"`
	Image         string          `json:"image"`
	SellerID      uint            `gorm:"not null;index" json:"seller_id"`
	Seller        User            `gorm:"foreignKey:SellerID" json:"seller,omitempty"`
	CategoryID    uint            `gorm:"index" json:"category_id"`
	Category      Category        `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Reviews       []Review        `gorm:"foreignKey:ProductID" json:"reviews,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`
}
