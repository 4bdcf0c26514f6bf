package usecase

import (
	"context"
	"net/http"
	"strconv"

	"github.com/LCtech96/EmilyBoutique/internal/domain/imagefile"
	"github.com/LCtech96/EmilyBoutique/internal/domain/model"
	"github.com/LCtech96/EmilyBoutique/internal/logger"
	repo "github.com/LCtech96/EmilyBoutique/internal/repository"

	"github.com/cockroachdb/errors"
)

// ヒーロー画像・スポンサー枠(3つ)・商品画像アップロード
type MediaUsecase struct {
	heroRepo    repo.HeroImageRepository
	sponsorRepo repo.SponsorImageRepository
	tx          repo.TransactionManager
	storage     repo.ImageStorage
	clock       Clock
	logger      *logger.Logger
}

func NewMediaUsecase(
	heroRepo repo.HeroImageRepository,
	sponsorRepo repo.SponsorImageRepository,
	tx repo.TransactionManager,
	storage repo.ImageStorage,
	clock Clock,
	log *logger.Logger,
) *MediaUsecase {
	return &MediaUsecase{
		heroRepo:    heroRepo,
		sponsorRepo: sponsorRepo,
		tx:          tx,
		storage:     storage,
		clock:       clock,
		logger:      log,
	}
}

type UploadOutput struct {
	URL string `json:"url"`
}

func (u *MediaUsecase) GetHero(ctx context.Context) (model.HeroImage, error) {
	h, err := u.heroRepo.Latest(ctx)
	if errors.Is(err, repo.ErrNotFound) {
		return model.HeroImage{}, NewHTTPError(http.StatusNotFound, "hero image not set")
	}
	if err != nil {
		return model.HeroImage{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return h, nil
}

func (u *MediaUsecase) ListSponsors(ctx context.Context) ([]model.SponsorImage, error) {
	items, err := u.sponsorRepo.ListOrdered(ctx)
	if err != nil {
		return []model.SponsorImage{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if items == nil {
		items = []model.SponsorImage{}
	}
	return items, nil
}

// ヒーロー画像を更新。Storageが使えなければdata URIで保存
func (u *MediaUsecase) SetHero(ctx context.Context, actorEmail string, data []byte) (model.HeroImage, error) {
	if actorEmail == "" {
		return model.HeroImage{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	kind, err := detectImage(data)
	if err != nil {
		return model.HeroImage{}, err
	}

	now := u.clock.Now()
	url := u.uploadWithFallback(ctx, imagefile.HeroKey(kind, now), kind, data)

	var created model.HeroImage
	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		var before interface{}
		if prev, err := r.HeroImages().Latest(ctx); err == nil {
			before = prev
		} else if !errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		created, err = r.HeroImages().Create(ctx, model.HeroImage{ImageURL: url, UpdatedAt: now})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return u.audit(ctx, r, actorEmail, model.AuditActionSetHeroImage, model.AuditResourceHeroImage, "latest", before, created)
	})
	if err != nil {
		return model.HeroImage{}, err
	}
	return created, nil
}

// スポンサー枠の画像を差し替え
func (u *MediaUsecase) SetSponsor(ctx context.Context, actorEmail string, position int, data []byte) (model.SponsorImage, error) {
	if actorEmail == "" {
		return model.SponsorImage{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if position < model.SponsorPositionMin || position > model.SponsorPositionMax {
		return model.SponsorImage{}, NewHTTPError(http.StatusBadRequest, "invalid position")
	}
	kind, err := detectImage(data)
	if err != nil {
		return model.SponsorImage{}, err
	}

	now := u.clock.Now()
	url := u.uploadWithFallback(ctx, imagefile.SponsorKey(kind, position, now), kind, data)

	var created model.SponsorImage
	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		var before interface{}
		if prev, err := r.SponsorImages().FindByPosition(ctx, position); err == nil {
			before = prev
		} else if !errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.SponsorImages().DeleteByPosition(ctx, position); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		created, err = r.SponsorImages().Create(ctx, model.SponsorImage{Position: position, ImageURL: url, UpdatedAt: now})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return u.audit(ctx, r, actorEmail, model.AuditActionSetSponsorImage, model.AuditResourceSponsorImage, positionID(position), before, created)
	})
	if err != nil {
		return model.SponsorImage{}, err
	}
	return created, nil
}

// 商品画像をアップロード（data URIへのfallbackは無し）
func (u *MediaUsecase) UploadProductImage(ctx context.Context, data []byte) (UploadOutput, error) {
	kind, err := detectImage(data)
	if err != nil {
		return UploadOutput{}, err
	}

	key := imagefile.ProductKey(kind, u.clock.Now())
	url, err := u.storage.Upload(ctx, key, data, kind.MIME)
	if err != nil {
		u.logger.Errorw("product image upload failed", "key", key, "error", err)
		return UploadOutput{}, NewHTTPError(http.StatusBadGateway, "upload failed")
	}
	return UploadOutput{URL: url}, nil
}

func (u *MediaUsecase) uploadWithFallback(ctx context.Context, key string, kind imagefile.Kind, data []byte) string {
	url, err := u.storage.Upload(ctx, key, data, kind.MIME)
	if err != nil {
		u.logger.Warnw("image upload failed, storing inline", "key", key, "error", err)
		return imagefile.DataURI(kind, data)
	}
	return url
}

func (u *MediaUsecase) audit(ctx context.Context, r repo.TxRepos, actor string, action model.AuditAction, rt model.AuditResourceType, id string, before, after interface{}) error {
	log, err := newAuditLog(actor, action, rt, id, before, after, u.clock.Now())
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "audit error")
	}
	if err := r.AuditLogs().Create(ctx, log); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func detectImage(data []byte) (imagefile.Kind, error) {
	kind, err := imagefile.Detect(data)
	if err != nil {
		return imagefile.Kind{}, NewHTTPError(http.StatusUnsupportedMediaType, "file must be an image")
	}
	return kind, nil
}

func positionID(position int) string {
	return "position-" + strconv.Itoa(position)
}
