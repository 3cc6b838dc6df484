package service

import (
	"Go_Mall/internal/repo"
	"Go_Mall/model"
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AttachToProduct binds a completed upload to a product as its original
// image asset. Re-attaching the same pair returns the existing asset
// unchanged. When setAsPrimary is true every other asset of the product is
// demoted and the new one promoted inside one transaction, serialized per
// product, so there is never a moment with two primaries. Variant generation
// is scheduled asynchronously; the asset is returned without waiting for it.
func AttachToProduct(ctx context.Context, token string, productID uint64, setAsPrimary bool) (*model.ImageAsset, error) {
	session, err := GetUploadByToken(token)
	if err != nil {
		return nil, err
	}
	product, err := GetProductByID(productID)
	if err != nil {
		return nil, err
	}

	var existing model.ImageAsset
	err = repo.Db.
		Where("upload_id = ? AND product_id = ? AND variant = ?", session.ID, product.ID, model.VariantOriginal).
		First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if !session.IsComplete() {
		return nil, ErrUploadIncomplete
	}

	mu := lockFor(fmt.Sprintf("primary:%d", productID))
	mu.Lock()
	defer mu.Unlock()

	asset := &model.ImageAsset{
		UploadID:  session.ID,
		ProductID: product.ID,
		Path:      PermanentPath(session.Token, session.Filename),
		Variant:   model.VariantOriginal,
		Size:      session.TotalSize,
		IsPrimary: setAsPrimary,
	}
	if err := repo.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "upload_id"},
				{Name: "product_id"},
				{Name: "variant"},
			},
			DoNothing: true,
		}).Create(asset).Error; err != nil {
			return err
		}
		if asset.ID == 0 {
			// Lost a concurrent attach race; adopt the winner's row.
			return tx.
				Where("upload_id = ? AND product_id = ? AND variant = ?", session.ID, product.ID, model.VariantOriginal).
				First(asset).Error
		}
		if setAsPrimary {
			if err := tx.Model(&model.ImageAsset{}).
				Where("product_id = ? AND id <> ?", product.ID, asset.ID).
				Update("is_primary", false).Error; err != nil {
				return err
			}
			if err := tx.Model(&model.ImageAsset{}).
				Where("id = ?", asset.ID).
				Update("is_primary", true).Error; err != nil {
				return err
			}
			asset.IsPrimary = true
		}
		return nil
	}); err != nil {
		return nil, err
	}

	if Variants == nil {
		log.Printf("attach: no variant scheduler configured, asset %d has no derived sizes", asset.ID)
		return asset, nil
	}
	if err := Variants.Enqueue(ctx, asset.ID); err != nil {
		// Generation failures never roll back the original asset.
		log.Printf("attach: schedule variant generation for asset %d failed: %v", asset.ID, err)
	}
	return asset, nil
}
