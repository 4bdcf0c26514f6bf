package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/LCtech96/EmilyBoutique/internal/domain/cart"
	"github.com/LCtech96/EmilyBoutique/internal/domain/model"
	repo "github.com/LCtech96/EmilyBoutique/internal/repository"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

type OrderUsecase struct {
	tx       repo.TransactionManager
	sessions *CartSessions
	clock    Clock
}

func NewOrderUsecase(tx repo.TransactionManager, sessions *CartSessions, clock Clock) *OrderUsecase {
	return &OrderUsecase{tx: tx, sessions: sessions, clock: clock}
}

type CheckoutInput struct {
	ShippingMethod string
	PaymentMethod  string
	// 任意。空ならランダムなキー
	IdempotencyKey string
}

type OrderItemOutput struct {
	LineID        string          `json:"line_id"`
	ProductID     string          `json:"product_id"`
	Title         string          `json:"title"`
	Price         decimal.Decimal `json:"price"`
	Image         string          `json:"image"`
	Quantity      int             `json:"quantity"`
	SelectedSize  string          `json:"selected_size,omitempty"`
	SelectedColor string          `json:"selected_color,omitempty"`
}

type OrderOutput struct {
	ID             string            `json:"id"`
	Status         string            `json:"status"`
	ShippingMethod string            `json:"shipping_method"`
	PaymentMethod  string            `json:"payment_method"`
	TotalPrice     decimal.Decimal   `json:"total_price"`
	CreatedAt      time.Time         `json:"created_at"`
	Items          []OrderItemOutput `json:"items"`
}

// カートからPENDINGの注文を作り、カートを空にする。
// 同じセッションで同じキーなら保存済みの注文を返す（カートはそのまま）
func (u *OrderUsecase) Checkout(ctx context.Context, sessionID string, in CheckoutInput) (OrderOutput, error) {
	if strings.TrimSpace(sessionID) == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "missing session")
	}
	if !lo.Contains(model.ShippingMethods, in.ShippingMethod) {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid shipping_method")
	}
	if !lo.Contains(model.PaymentMethods, in.PaymentMethod) {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid payment_method")
	}
	key := strings.TrimSpace(in.IdempotencyKey)
	if len(key) > 255 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid idempotency key")
	}
	if key == "" {
		key = newID()
	}

	var out OrderOutput

	err := u.sessions.With(ctx, sessionID, func(c *cart.Cart) error {
		replayed := false

		err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
			existing, found, err := r.Orders().FindByIdempotencyKey(ctx, sessionID, key)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if found {
				items, err := r.OrderItems().ListByOrderID(ctx, existing.ID)
				if err != nil {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}
				out = toOrderOutput(existing, items)
				replayed = true
				return nil
			}

			lines := c.Items()
			if len(lines) == 0 {
				return NewHTTPError(http.StatusBadRequest, "cart empty")
			}

			now := u.clock.Now()
			order, err := r.Orders().Create(ctx, model.Order{
				ID:             newID(),
				SessionID:      sessionID,
				IdempotencyKey: key,
				Status:         model.OrderStatusPending,
				ShippingMethod: in.ShippingMethod,
				PaymentMethod:  in.PaymentMethod,
				TotalPrice:     c.Total(),
				CreatedAt:      now,
				UpdatedAt:      now,
			})
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			orderItems := lo.Map(lines, func(l model.CartLineItem, _ int) model.OrderItem {
				return model.OrderItem{
					LineID:            l.ID,
					ProductID:         l.ProductID,
					TitleSnapshot:     l.Title,
					UnitPriceSnapshot: l.Price,
					ImageSnapshot:     l.Image,
					Quantity:          l.Quantity,
					SelectedSize:      l.SelectedSize,
					SelectedColor:     l.SelectedColor,
					CreatedAt:         now,
				}
			})
			if err := r.OrderItems().CreateBulk(ctx, order.ID, orderItems); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			out = toOrderOutput(order, orderItems)
			return nil
		})
		if err != nil {
			return err
		}

		// commit後にだけカートを空にする
		if !replayed {
			c.Clear(ctx)
		}
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// このセッションの注文だけ返す。他セッションの注文は404
func (u *OrderUsecase) GetSessionOrder(ctx context.Context, sessionID string, orderID string) (OrderOutput, error) {
	if strings.TrimSpace(sessionID) == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "missing session")
	}
	if !isUUID(orderID) {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if o.SessionID != sessionID {
			return NewHTTPError(http.StatusNotFound, "not found")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		out = toOrderOutput(o, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			LineID:        it.LineID,
			ProductID:     it.ProductID,
			Title:         it.TitleSnapshot,
			Price:         it.UnitPriceSnapshot,
			Image:         it.ImageSnapshot,
			Quantity:      it.Quantity,
			SelectedSize:  it.SelectedSize,
			SelectedColor: it.SelectedColor,
		})
	}

	return OrderOutput{
		ID:             o.ID,
		Status:         string(o.Status),
		ShippingMethod: o.ShippingMethod,
		PaymentMethod:  o.PaymentMethod,
		TotalPrice:     o.TotalPrice,
		CreatedAt:      o.CreatedAt,
		Items:          outItems,
	}
}
