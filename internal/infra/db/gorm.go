package db

import (
	"github.com/LCtech96/EmilyBoutique/internal/config"
	"github.com/LCtech96/EmilyBoutique/internal/domain/model"

	"github.com/cockroachdb/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Supabase Postgresに接続
func Connect(cfg config.PostgresConfig, debug bool) (*gorm.DB, error) {
	level := gormlogger.Warn
	if debug {
		level = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.GetDSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(level),
	})
	if err != nil {
		return nil, errors.Wrap(err, "open postgres")
	}
	return db, nil
}

// テーブル作成。extraで他コンポーネントのテーブル（カートkv）も追加できる
func Migrate(db *gorm.DB, extra ...interface{}) error {
	models := []interface{}{
		&model.Product{},
		&model.HeroImage{},
		&model.SponsorImage{},
		&model.Order{},
		&model.OrderItem{},
		&model.AuditLog{},
	}
	models = append(models, extra...)

	if err := db.AutoMigrate(models...); err != nil {
		return errors.Wrap(err, "auto migrate")
	}
	return nil
}
