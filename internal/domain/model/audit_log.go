package model

import "time"

type AuditAction string

const (
	AuditActionCreateProduct     AuditAction = "CREATE_PRODUCT"
	AuditActionUpdateProduct     AuditAction = "UPDATE_PRODUCT"
	AuditActionDeleteProduct     AuditAction = "DELETE_PRODUCT"
	AuditActionSetHeroImage      AuditAction = "SET_HERO_IMAGE"
	AuditActionSetSponsorImage   AuditAction = "SET_SPONSOR_IMAGE"
	AuditActionUpdateOrderStatus AuditAction = "UPDATE_ORDER_STATUS"
)

type AuditResourceType string

const (
	AuditResourceProduct      AuditResourceType = "product"
	AuditResourceOrder        AuditResourceType = "order"
	AuditResourceHeroImage    AuditResourceType = "hero_image"
	AuditResourceSponsorImage AuditResourceType = "sponsor_image"
)

// 管理者操作の監査ログ（誰が・何を・どのリソースに・変更前後）
type AuditLog struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	// 操作した管理者のemail
	ActorEmail string `gorm:"type:varchar(255);not null;index" json:"actor_email"`

	Action       AuditAction       `gorm:"type:varchar(50);not null;index" json:"action"`
	ResourceType AuditResourceType `gorm:"type:varchar(50);not null;index" json:"resource_type"`
	ResourceID   string            `gorm:"type:varchar(64);not null;index" json:"resource_id"`

	// JSON文字列。状態が無いときは空
	BeforeJSON string `gorm:"type:text" json:"before_json"`
	AfterJSON  string `gorm:"type:text" json:"after_json"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}
