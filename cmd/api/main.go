package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/LCtech96/EmilyBoutique/internal/config"
	"github.com/LCtech96/EmilyBoutique/internal/handler"
	"github.com/LCtech96/EmilyBoutique/internal/infra/db"
	"github.com/LCtech96/EmilyBoutique/internal/infra/kvstore"
	infraRepo "github.com/LCtech96/EmilyBoutique/internal/infra/repository"
	"github.com/LCtech96/EmilyBoutique/internal/infra/storage"
	"github.com/LCtech96/EmilyBoutique/internal/infra/supabase"
	"github.com/LCtech96/EmilyBoutique/internal/logger"
	repo "github.com/LCtech96/EmilyBoutique/internal/repository"
	"github.com/LCtech96/EmilyBoutique/internal/sentry"
	"github.com/LCtech96/EmilyBoutique/internal/server"
	"github.com/LCtech96/EmilyBoutique/internal/usecase"

	"github.com/cockroachdb/errors"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(cfg.Logging.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Errorw("server exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	sentrySvc := sentry.NewSentryService(cfg.Sentry, log)
	if err := sentrySvc.Start(); err != nil {
		return err
	}
	defer sentrySvc.Flush()

	gormDB, err := db.Connect(cfg.Postgres, cfg.Logging.Level == "debug")
	if err != nil {
		return errors.Wrap(err, "connect postgres")
	}

	var extra []interface{}
	if cfg.Cart.Store == "postgres" {
		extra = append(extra, &kvstore.Entry{})
	}
	if err := db.Migrate(gormDB, extra...); err != nil {
		return errors.Wrap(err, "migrate")
	}

	cartStore, err := newCartStore(ctx, cfg.Cart, gormDB)
	if err != nil {
		return err
	}
	log.Infow("cart store ready", "backend", cfg.Cart.Store)

	s3Client, err := storage.NewS3Client(ctx, cfg.Storage, cfg.Supabase.URL)
	if err != nil {
		return errors.Wrap(err, "storage client")
	}
	images := storage.NewSupabaseStorage(s3Client, cfg.Storage.Bucket, cfg.Supabase.URL, log)

	productRepo := infraRepo.NewProductGormRepository(gormDB)
	heroRepo := infraRepo.NewHeroImageGormRepository(gormDB)
	sponsorRepo := infraRepo.NewSponsorImageGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	txm := infraRepo.NewTxManagerGorm(gormDB)

	sessions := usecase.NewCartSessions(cartStore, cfg.Cart.Namespace, cfg.Cart.IdleTTL, sentrySvc.ReportCartPersistence)
	clock := usecase.SystemClock

	productUC := usecase.NewProductUsecase(productRepo, txm, clock)
	mediaUC := usecase.NewMediaUsecase(heroRepo, sponsorRepo, txm, images, clock, log)
	authUC := usecase.NewAdminAuthUsecase(
		supabase.NewAuthClient(cfg.Supabase),
		cfg.Auth.AdminEmails,
		cfg.Auth.JWTSecret,
		cfg.Auth.TokenTTL,
		clock,
	)

	srv := server.New(cfg, log, server.Handlers{
		Products:      handler.NewProductHandler(productUC),
		AdminProducts: handler.NewAdminProductHandler(productUC),
		Cart:          handler.NewCartHandler(usecase.NewCartUsecase(sessions, productRepo)),
		Orders:        handler.NewOrderHandler(usecase.NewOrderUsecase(txm, sessions, clock)),
		AdminOrders:   handler.NewAdminOrderHandler(usecase.NewAdminOrderUsecase(txm, clock)),
		AdminAudit:    handler.NewAdminAuditHandler(usecase.NewAuditLogUsecase(auditRepo)),
		AdminAuth:     handler.NewAdminAuthHandler(authUC),
		Media:         handler.NewMediaHandler(mediaUC),
		AdminMedia:    handler.NewAdminMediaHandler(mediaUC, cfg.Server.MaxUploadBytes),
	})

	if err := srv.Start(ctx); err != nil {
		// deferのFlushで送信される
		sentrySvc.CaptureException(err)
		return err
	}
	return nil
}

// カートの保存先を設定で切り替える
func newCartStore(ctx context.Context, cfg config.CartConfig, gormDB *gorm.DB) (repo.KeyValueStore, error) {
	switch cfg.Store {
	case "memory":
		return kvstore.NewMemoryStore(), nil
	case "postgres":
		return kvstore.NewGormStore(gormDB), nil
	case "dynamodb":
		client, err := kvstore.NewDynamoClient(ctx, cfg.DynamoRegion)
		if err != nil {
			return nil, errors.Wrap(err, "dynamodb client")
		}
		return kvstore.NewDynamoStore(client, cfg.DynamoTable), nil
	default:
		return nil, errors.Newf("unknown cart store %q", cfg.Store)
	}
}
