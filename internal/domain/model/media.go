package model

import "time"

// 最新のupdated_atの行を表示する
type HeroImage struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ImageURL  string    `gorm:"type:text;not null;column:image_url" json:"image_url"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime;index" json:"updated_at"`
}

func (HeroImage) TableName() string { return "hero_image" }

const (
	SponsorPositionMin = 1
	SponsorPositionMax = 3
)

type SponsorImage struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Position  int       `gorm:"not null;uniqueIndex" json:"position"`
	ImageURL  string    `gorm:"type:text;not null;column:image_url" json:"image_url"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (SponsorImage) TableName() string { return "sponsor_images" }
