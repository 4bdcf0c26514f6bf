package repository

import (
	"context"

	"github.com/LCtech96/EmilyBoutique/internal/domain/model"
)

type HeroImageRepository interface {
	//一度も設定されていなければErrNotFound
	Latest(ctx context.Context) (model.HeroImage, error)
	Create(ctx context.Context, h model.HeroImage) (model.HeroImage, error)
}

type SponsorImageRepository interface {
	ListOrdered(ctx context.Context) ([]model.SponsorImage, error)
	FindByPosition(ctx context.Context, position int) (model.SponsorImage, error)
	DeleteByPosition(ctx context.Context, position int) error
	Create(ctx context.Context, s model.SponsorImage) (model.SponsorImage, error)
}

// 画像を保存して公開URLを返す約束
type ImageStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}
