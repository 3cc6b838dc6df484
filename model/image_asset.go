package model

import "time"

// VariantOriginal tags the asset created at attach time. Derived assets use
// the target long-edge size as their tag ("256", "512", "1024").
const VariantOriginal = "original"

type ImageAsset struct {
	ID uint64 `gorm:"primaryKey" json:"id"`

	UploadID uint64        `gorm:"column:upload_id;not null;index;uniqueIndex:uk_upload_product_variant,priority:1" json:"upload_id"`
	Upload   UploadSession `gorm:"foreignKey:UploadID;references:ID" json:"-"`

	ProductID uint64  `gorm:"column:product_id;not null;index:idx_product_primary,priority:1;uniqueIndex:uk_upload_product_variant,priority:2" json:"product_id"`
	Product   Product `gorm:"foreignKey:ProductID;references:ID" json:"-"`

	Path    string `gorm:"column:path;size:512;not null" json:"path"`
	Variant string `gorm:"column:variant;size:16;not null;default:original;uniqueIndex:uk_upload_product_variant,priority:3" json:"variant"`

	Width  int `gorm:"column:width" json:"width,omitempty"`
	Height int `gorm:"column:height" json:"height,omitempty"`

	Size int64 `gorm:"column:size;not null" json:"size"`

	IsPrimary bool `gorm:"column:is_primary;not null;default:false;index:idx_product_primary,priority:2" json:"is_primary"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name.
func (ImageAsset) TableName() string {
	return "image_asset"
}
