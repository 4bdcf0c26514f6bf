package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending  OrderStatus = "PENDING"
	OrderStatusPaid     OrderStatus = "PAID"
	OrderStatusShipped  OrderStatus = "SHIPPED"
	OrderStatusCanceled OrderStatus = "CANCELED"
)

// 遷移可能なステータス（SHIPPED/CANCELEDは終端）
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending: {OrderStatusPaid, OrderStatusShipped, OrderStatusCanceled},
	OrderStatusPaid:    {OrderStatusShipped, OrderStatusCanceled},
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusShipped, OrderStatusCanceled:
		return true
	}
	return false
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, n := range orderTransitions[s] {
		if n == next {
			return true
		}
	}
	return false
}

const (
	ShippingDHL   = "DHL"
	ShippingFedEx = "FedEx"
	ShippingUPS   = "UPS"

	PaymentQRCode     = "QR Code"
	PaymentVisa       = "Visa"
	PaymentMastercard = "Mastercard"
	PaymentPayPal     = "PayPal"
)

var (
	ShippingMethods = []string{ShippingDHL, ShippingFedEx, ShippingUPS}
	PaymentMethods  = []string{PaymentQRCode, PaymentVisa, PaymentMastercard, PaymentPayPal}
)

// IdempotencyKeyはセッション内で一意
type Order struct {
	ID             string          `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID      string          `gorm:"type:varchar(64);not null;uniqueIndex:idx_orders_session_key" json:"-"`
	IdempotencyKey string          `gorm:"type:varchar(255);not null;uniqueIndex:idx_orders_session_key" json:"-"`
	Status         OrderStatus     `gorm:"type:varchar(20);not null;index" json:"status"`
	ShippingMethod string          `gorm:"type:varchar(32);not null" json:"shipping_method"`
	PaymentMethod  string          `gorm:"type:varchar(32);not null" json:"payment_method"`
	TotalPrice     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_price"`
	CreatedAt      time.Time       `gorm:"not null;autoCreateTime;index" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
