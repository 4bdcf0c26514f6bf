package model

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// 画像が無い商品のカート行に使う
const PlaceholderImage = "/placeholder.jpg"

type Product struct {
	ID          string          `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string          `gorm:"type:text;not null" json:"title"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	Images      pq.StringArray  `gorm:"type:text[]" json:"images"`
	Sizes       pq.StringArray  `gorm:"type:text[]" json:"sizes"`
	Colors      pq.StringArray  `gorm:"type:text[]" json:"colors"`
	Category    string          `gorm:"type:text;index" json:"category"`
	CreatedAt   time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (Product) TableName() string { return "products" }

// CoverImageは先頭の画像、無ければplaceholder
func (p Product) CoverImage() string {
	if len(p.Images) == 0 || p.Images[0] == "" {
		return PlaceholderImage
	}
	return p.Images[0]
}
