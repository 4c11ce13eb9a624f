package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the wire and storage layout of Product.ImportDate.
const DateLayout = "2006-01-02"

// Product represents a product in the catalog.
// It includes a unique code, the import date, stock quantity, unit price
// and the category it belongs to.
type Product struct {
	ID         uint            `gorm:"primaryKey"`
	Code       string          `gorm:"uniqueIndex;not null"`
	Name       string          `gorm:"not null"`
	ImportDate time.Time       `gorm:"type:date;not null"`
	Quantity   int             `gorm:"not null"`
	Price      decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	CategoryID uint            `gorm:"not null"`
	Category   Category        `gorm:"foreignKey:CategoryID"`
}

func (p *Product) TableName() string {
	return "products"
}
