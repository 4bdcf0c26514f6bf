package usecase

import (
	"context"
	"net/http"
	"strings"

	"github.com/LCtech96/EmilyBoutique/internal/domain/model"
	repo "github.com/LCtech96/EmilyBoutique/internal/repository"

	"github.com/cockroachdb/errors"
	"github.com/lib/pq"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

type ProductUsecase struct {
	productRepo repo.ProductRepository
	tx          repo.TransactionManager
	clock       Clock
}

func NewProductUsecase(productRepo repo.ProductRepository, tx repo.TransactionManager, clock Clock) *ProductUsecase {
	return &ProductUsecase{productRepo: productRepo, tx: tx, clock: clock}
}

// GET /products
type ListProductsInput struct {
	Page     int
	Limit    int
	Q        string
	Category string
	Sort     string
}

type ProductListOutput struct {
	Items []model.Product `json:"items"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

func (u *ProductUsecase) ListProducts(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
	if in.Page < 1 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if in.Limit < 1 || in.Limit > 100 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	if len(in.Q) > 100 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "q too long")
	}
	switch in.Sort {
	case "", "new", "price_asc", "price_desc":
	default:
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid sort")
	}

	items, total, err := u.productRepo.List(ctx, repo.ProductListQuery{
		Page:     in.Page,
		Limit:    in.Limit,
		Q:        strings.TrimSpace(in.Q),
		Category: strings.TrimSpace(in.Category),
		Sort:     in.Sort,
	})
	if err != nil {
		return ProductListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if items == nil {
		items = []model.Product{}
	}

	return ProductListOutput{
		Items: items,
		Total: total,
		Page:  in.Page,
		Limit: in.Limit,
	}, nil
}

// slug（jeans-donnaなど）をカテゴリ名に変換して一覧
func (u *ProductUsecase) ListByCategory(ctx context.Context, slug string, in ListProductsInput) (ProductListOutput, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid category")
	}
	in.Category = model.CategoryName(slug)
	return u.ListProducts(ctx, in)
}

func (u *ProductUsecase) GetProductDetail(ctx context.Context, productID string) (model.Product, error) {
	if !isUUID(productID) {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

type AdminProductInput struct {
	Title       string
	Description string
	Price       decimal.Decimal
	Images      []string
	Sizes       []string
	Colors      []string
	Category    string
}

// 前後の空白を削除し、空・重複の選択肢を除く
func (in AdminProductInput) normalize() (model.Product, error) {
	p := model.Product{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price.Round(2),
		Images:      pq.StringArray(cleanOptions(in.Images)),
		Sizes:       pq.StringArray(cleanOptions(in.Sizes)),
		Colors:      pq.StringArray(cleanOptions(in.Colors)),
		Category:    strings.TrimSpace(in.Category),
	}

	if p.Title == "" || len(p.Title) > 255 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "title required")
	}
	if p.Price.IsNegative() {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "price must be >= 0")
	}
	if len(p.Images) == 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "at least one image required")
	}
	return p, nil
}

func cleanOptions(values []string) []string {
	trimmed := lo.Map(values, func(v string, _ int) string { return strings.TrimSpace(v) })
	return lo.Uniq(lo.Compact(trimmed))
}

func (u *ProductUsecase) AdminCreateProduct(ctx context.Context, actorEmail string, in AdminProductInput) (model.Product, error) {
	if actorEmail == "" {
		return model.Product{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	p, err := in.normalize()
	if err != nil {
		return model.Product{}, err
	}
	p.ID = newID()
	p.CreatedAt = u.clock.Now()

	var created model.Product
	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		created, err = r.Products().Create(ctx, p)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return u.audit(ctx, r, actorEmail, model.AuditActionCreateProduct, created.ID, nil, created)
	})
	if err != nil {
		return model.Product{}, err
	}
	return created, nil
}

func (u *ProductUsecase) AdminUpdateProduct(ctx context.Context, actorEmail string, productID string, in AdminProductInput) (model.Product, error) {
	if actorEmail == "" {
		return model.Product{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if !isUUID(productID) {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	p, err := in.normalize()
	if err != nil {
		return model.Product{}, err
	}
	p.ID = productID

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		before, err := r.Products().FindByID(ctx, productID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.Products().Update(ctx, p); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, "not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		p.CreatedAt = before.CreatedAt
		return u.audit(ctx, r, actorEmail, model.AuditActionUpdateProduct, productID, before, p)
	})
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// 削除してもカートのスナップショットは残る
func (u *ProductUsecase) AdminDeleteProduct(ctx context.Context, actorEmail string, productID string) error {
	if actorEmail == "" {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if !isUUID(productID) {
		return NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		before, err := r.Products().FindByID(ctx, productID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.Products().Delete(ctx, productID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, "not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return u.audit(ctx, r, actorEmail, model.AuditActionDeleteProduct, productID, before, nil)
	})
}

func (u *ProductUsecase) audit(ctx context.Context, r repo.TxRepos, actor string, action model.AuditAction, id string, before, after interface{}) error {
	log, err := newAuditLog(actor, action, model.AuditResourceProduct, id, before, after, u.clock.Now())
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "audit error")
	}
	if err := r.AuditLogs().Create(ctx, log); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
