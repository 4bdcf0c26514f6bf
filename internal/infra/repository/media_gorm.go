package repository

import (
	"context"

	"github.com/LCtech96/EmilyBoutique/internal/domain/model"
	repo "github.com/LCtech96/EmilyBoutique/internal/repository"

	"github.com/cockroachdb/errors"
	"gorm.io/gorm"
)

type HeroImageGormRepository struct {
	db *gorm.DB
}

func NewHeroImageGormRepository(db *gorm.DB) *HeroImageGormRepository {
	return &HeroImageGormRepository{db: db}
}

func (r *HeroImageGormRepository) Latest(ctx context.Context) (model.HeroImage, error) {
	var h model.HeroImage
	err := r.db.WithContext(ctx).Order("updated_at desc").Order("id desc").First(&h).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.HeroImage{}, repo.ErrNotFound
	}
	if err != nil {
		return model.HeroImage{}, errors.Wrap(err, "latest hero image")
	}
	return h, nil
}

func (r *HeroImageGormRepository) Create(ctx context.Context, h model.HeroImage) (model.HeroImage, error) {
	if err := r.db.WithContext(ctx).Create(&h).Error; err != nil {
		return model.HeroImage{}, errors.Wrap(err, "create hero image")
	}
	return h, nil
}

type SponsorImageGormRepository struct {
	db *gorm.DB
}

func NewSponsorImageGormRepository(db *gorm.DB) *SponsorImageGormRepository {
	return &SponsorImageGormRepository{db: db}
}

func (r *SponsorImageGormRepository) ListOrdered(ctx context.Context) ([]model.SponsorImage, error) {
	var items []model.SponsorImage
	if err := r.db.WithContext(ctx).Order("position asc").Find(&items).Error; err != nil {
		return []model.SponsorImage{}, errors.Wrap(err, "list sponsor images")
	}
	return items, nil
}

func (r *SponsorImageGormRepository) FindByPosition(ctx context.Context, position int) (model.SponsorImage, error) {
	var s model.SponsorImage
	err := r.db.WithContext(ctx).Where("position = ?", position).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.SponsorImage{}, repo.ErrNotFound
	}
	if err != nil {
		return model.SponsorImage{}, errors.Wrapf(err, "find sponsor image %d", position)
	}
	return s, nil
}

// 空の枠を削除してもエラーにしない
func (r *SponsorImageGormRepository) DeleteByPosition(ctx context.Context, position int) error {
	if err := r.db.WithContext(ctx).Where("position = ?", position).Delete(&model.SponsorImage{}).Error; err != nil {
		return errors.Wrapf(err, "delete sponsor image %d", position)
	}
	return nil
}

func (r *SponsorImageGormRepository) Create(ctx context.Context, s model.SponsorImage) (model.SponsorImage, error) {
	if err := r.db.WithContext(ctx).Create(&s).Error; err != nil {
		return model.SponsorImage{}, errors.Wrap(err, "create sponsor image")
	}
	return s, nil
}
