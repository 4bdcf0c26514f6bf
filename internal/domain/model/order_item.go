package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// チェックアウト時のカート行スナップショット
type OrderItem struct {
	ID                int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID           string          `gorm:"type:uuid;not null;index" json:"order_id"`
	LineID            string          `gorm:"type:text;not null" json:"line_id"`
	ProductID         string          `gorm:"type:uuid;not null;index" json:"product_id"`
	TitleSnapshot     string          `gorm:"type:text;not null" json:"title_snapshot"`
	UnitPriceSnapshot decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"unit_price_snapshot"`
	ImageSnapshot     string          `gorm:"type:text" json:"image_snapshot"`
	Quantity          int             `gorm:"not null" json:"quantity"`
	SelectedSize      string          `gorm:"type:text" json:"selected_size,omitempty"`
	SelectedColor     string          `gorm:"type:text" json:"selected_color,omitempty"`
	CreatedAt         time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}
