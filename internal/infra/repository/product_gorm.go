package repository

import (
	"context"
	"strings"

	"github.com/LCtech96/EmilyBoutique/internal/domain/model"
	repo "github.com/LCtech96/EmilyBoutique/internal/repository"

	"github.com/cockroachdb/errors"
	"gorm.io/gorm"
)

type ProductGormRepository struct {
	db *gorm.DB
}

func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

// 一覧検索（キーワード・カテゴリ・並び順・ページング）
func (r *ProductGormRepository) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	tx := r.db.WithContext(ctx).Model(&model.Product{})

	if s := strings.TrimSpace(q.Q); s != "" {
		like := containsPattern(s)
		tx = tx.Where("title ILIKE ? OR description ILIKE ?", like, like)
	}

	if c := strings.TrimSpace(q.Category); c != "" {
		tx = tx.Where("category ILIKE ?", containsPattern(c))
	}

	if err := tx.Count(&total).Error; err != nil {
		return []model.Product{}, 0, errors.Wrap(err, "count products")
	}

	switch q.Sort {
	case "price_asc":
		tx = tx.Order("price asc").Order("id asc")
	case "price_desc":
		tx = tx.Order("price desc").Order("id desc")
	default:
		tx = tx.Order("created_at desc").Order("id desc")
	}

	offset := (q.Page - 1) * q.Limit
	if err := tx.Offset(offset).Limit(q.Limit).Find(&products).Error; err != nil {
		return []model.Product{}, 0, errors.Wrap(err, "list products")
	}

	return products, total, nil
}

func (r *ProductGormRepository) FindByID(ctx context.Context, id string) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, errors.Wrapf(err, "find product %s", id)
	}
	return p, nil
}

func (r *ProductGormRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return model.Product{}, errors.Wrap(err, "create product")
	}
	return p, nil
}

func (r *ProductGormRepository) Update(ctx context.Context, p model.Product) error {
	res := r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
		"title":       p.Title,
		"description": p.Description,
		"price":       p.Price,
		"images":      p.Images,
		"sizes":       p.Sizes,
		"colors":      p.Colors,
		"category":    p.Category,
	})
	if res.Error != nil {
		return errors.Wrapf(res.Error, "update product %s", p.ID)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *ProductGormRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Product{})
	if res.Error != nil {
		return errors.Wrapf(res.Error, "delete product %s", id)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// %と_をエスケープして部分一致パターンにする（PostgresのLIKEはバックスラッシュがデフォルトのescape）
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
