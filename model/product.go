package model

import "time"

type Product struct {
	ID uint64 `gorm:"primaryKey" json:"id"`

	SKU  string `gorm:"column:sku;size:64;uniqueIndex;not null" json:"sku"`
	Name string `gorm:"column:name;size:255;not null" json:"name"`

	Description string  `gorm:"column:description;type:text" json:"description,omitempty"`
	Price       float64 `gorm:"column:price;type:decimal(10,2);not null;default:0" json:"price"`
	Quantity    int     `gorm:"column:quantity;not null;default:0" json:"quantity"`

	// No column default: a zero value would otherwise be dropped on insert
	// and inactive imports silently flipped active.
	IsActive bool `gorm:"column:is_active;not null" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name.
func (Product) TableName() string {
	return "product"
}
