package model

import "github.com/shopspring/decimal"

const (
	noSizeSegment  = "no-size"
	noColorSegment = "no-color"
)

// セッションカートの1行。Title/Price/Imageは最初に追加した時点のスナップショット
type CartLineItem struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"productId"`
	Title         string          `json:"title"`
	Price         decimal.Decimal `json:"price"`
	Image         string          `json:"image"`
	Quantity      int             `json:"quantity"`
	SelectedSize  string          `json:"selectedSize,omitempty"`
	SelectedColor string          `json:"selectedColor,omitempty"`
}

// 行ID = productId-size-color（未指定はno-size/no-color）
func LineItemID(productID, size, color string) string {
	if size == "" {
		size = noSizeSegment
	}
	if color == "" {
		color = noColorSegment
	}
	return productID + "-" + size + "-" + color
}

func (i CartLineItem) Identity() string {
	return LineItemID(i.ProductID, i.SelectedSize, i.SelectedColor)
}

func (i CartLineItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
