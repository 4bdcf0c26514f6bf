package usecase

import (
	"context"
	"net/http"
	"strings"

	"github.com/LCtech96/EmilyBoutique/internal/domain/cart"
	"github.com/LCtech96/EmilyBoutique/internal/domain/model"
	repo "github.com/LCtech96/EmilyBoutique/internal/repository"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

const maxLineQuantity = 99

// /cartの業務ロジック
type CartUsecase struct {
	sessions    *CartSessions
	productRepo repo.ProductRepository
}

func NewCartUsecase(sessions *CartSessions, productRepo repo.ProductRepository) *CartUsecase {
	return &CartUsecase{sessions: sessions, productRepo: productRepo}
}

type CartItemOutput struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"product_id"`
	Title         string          `json:"title"`
	Price         decimal.Decimal `json:"price"`
	Image         string          `json:"image"`
	Quantity      int             `json:"quantity"`
	SelectedSize  string          `json:"selected_size,omitempty"`
	SelectedColor string          `json:"selected_color,omitempty"`
	Subtotal      decimal.Decimal `json:"subtotal"`
}

type CartOutput struct {
	Items []CartItemOutput `json:"items"`
	Total decimal.Decimal  `json:"total"`
	// 全行の数量合計（ナビのバッジ用）
	Count int `json:"count"`
}

type AddCartItemInput struct {
	ProductID string
	Quantity  int
	Size      string
	Color     string
}

// nilのフィールドは変更しない
type UpdateCartItemInput struct {
	Quantity *int
	Size     *string
	Color    *string
}

func (u *CartUsecase) GetCart(ctx context.Context, sessionID string) (CartOutput, error) {
	return u.mutate(ctx, sessionID, func(*cart.Cart) error { return nil })
}

// 商品の現在のタイトル・価格・画像をスナップショットして追加
func (u *CartUsecase) AddItem(ctx context.Context, sessionID string, in AddCartItemInput) (CartOutput, error) {
	if in.Quantity < 1 || in.Quantity > maxLineQuantity {
		return CartOutput{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	p, err := u.findProduct(ctx, in.ProductID)
	if err != nil {
		return CartOutput{}, err
	}

	size, err := resolveVariant(p.Sizes, strings.TrimSpace(in.Size), "invalid size")
	if err != nil {
		return CartOutput{}, err
	}
	color, err := resolveVariant(p.Colors, strings.TrimSpace(in.Color), "invalid color")
	if err != nil {
		return CartOutput{}, err
	}

	return u.mutate(ctx, sessionID, func(c *cart.Cart) error {
		c.AddItem(ctx, model.CartLineItem{
			ProductID:     p.ID,
			Title:         p.Title,
			Price:         p.Price,
			Image:         p.CoverImage(),
			Quantity:      in.Quantity,
			SelectedSize:  size,
			SelectedColor: color,
		})
		return nil
	})
}

// 数量を変更。0以下なら行を削除
func (u *CartUsecase) UpdateQuantity(ctx context.Context, sessionID string, lineID string, quantity int) (CartOutput, error) {
	if quantity > maxLineQuantity {
		return CartOutput{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	return u.mutate(ctx, sessionID, func(c *cart.Cart) error {
		if _, ok := c.Find(lineID); !ok {
			return NewHTTPError(http.StatusNotFound, "cart item not found")
		}
		c.UpdateQuantity(ctx, lineID, quantity)
		return nil
	})
}

// サイズ・色・数量を変更。サイズと色は商品の現在の選択肢でチェック
func (u *CartUsecase) UpdateItem(ctx context.Context, sessionID string, lineID string, in UpdateCartItemInput) (CartOutput, error) {
	if in.Quantity != nil && *in.Quantity > maxLineQuantity {
		return CartOutput{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	return u.mutate(ctx, sessionID, func(c *cart.Cart) error {
		line, ok := c.Find(lineID)
		if !ok {
			return NewHTTPError(http.StatusNotFound, "cart item not found")
		}

		patch := cart.Patch{Quantity: in.Quantity}
		if in.Size != nil || in.Color != nil {
			p, err := u.findProduct(ctx, line.ProductID)
			if err != nil {
				return err
			}
			if in.Size != nil {
				size, err := resolveVariant(p.Sizes, strings.TrimSpace(*in.Size), "invalid size")
				if err != nil {
					return err
				}
				patch.SelectedSize = &size
			}
			if in.Color != nil {
				color, err := resolveVariant(p.Colors, strings.TrimSpace(*in.Color), "invalid color")
				if err != nil {
					return err
				}
				patch.SelectedColor = &color
			}
		}

		c.UpdateItem(ctx, lineID, patch)
		return nil
	})
}

func (u *CartUsecase) RemoveItem(ctx context.Context, sessionID string, lineID string) (CartOutput, error) {
	return u.mutate(ctx, sessionID, func(c *cart.Cart) error {
		if _, ok := c.Find(lineID); !ok {
			return NewHTTPError(http.StatusNotFound, "cart item not found")
		}
		c.RemoveItem(ctx, lineID)
		return nil
	})
}

func (u *CartUsecase) Clear(ctx context.Context, sessionID string) (CartOutput, error) {
	return u.mutate(ctx, sessionID, func(c *cart.Cart) error {
		c.Clear(ctx)
		return nil
	})
}

// セッションのカートでfnを実行し、結果を返す
func (u *CartUsecase) mutate(ctx context.Context, sessionID string, fn func(c *cart.Cart) error) (CartOutput, error) {
	if strings.TrimSpace(sessionID) == "" {
		return CartOutput{}, NewHTTPError(http.StatusBadRequest, "missing session")
	}

	var out CartOutput
	err := u.sessions.With(ctx, sessionID, func(c *cart.Cart) error {
		if err := fn(c); err != nil {
			return err
		}
		out = toCartOutput(c)
		return nil
	})
	if err != nil {
		return CartOutput{}, err
	}
	return out, nil
}

func (u *CartUsecase) findProduct(ctx context.Context, productID string) (model.Product, error) {
	if !isUUID(productID) {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	p, err := u.productRepo.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

// 未指定なら先頭の選択肢、商品に無い選択肢は400
func resolveVariant(options []string, requested string, invalidMsg string) (string, error) {
	if len(options) == 0 {
		if requested != "" {
			return "", NewHTTPError(http.StatusBadRequest, invalidMsg)
		}
		return "", nil
	}
	if requested == "" {
		return options[0], nil
	}
	if !lo.Contains(options, requested) {
		return "", NewHTTPError(http.StatusBadRequest, invalidMsg)
	}
	return requested, nil
}

func toCartOutput(c *cart.Cart) CartOutput {
	items := lo.Map(c.Items(), func(it model.CartLineItem, _ int) CartItemOutput {
		return CartItemOutput{
			ID:            it.ID,
			ProductID:     it.ProductID,
			Title:         it.Title,
			Price:         it.Price,
			Image:         it.Image,
			Quantity:      it.Quantity,
			SelectedSize:  it.SelectedSize,
			SelectedColor: it.SelectedColor,
			Subtotal:      it.Subtotal(),
		}
	})
	return CartOutput{Items: items, Total: c.Total(), Count: c.Count()}
}
