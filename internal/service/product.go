package service

import (
	"Go_Mall/internal/repo"
	"Go_Mall/model"
	"errors"

	"gorm.io/gorm"
)

// GetProductByID loads a product by primary key.
func GetProductByID(id uint64) (*model.Product, error) {
	var product model.Product
	if err := repo.Db.Where("id = ?", id).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

// ProductExists reports whether a product exists.
func ProductExists(id uint64) (bool, error) {
	_, err := GetProductByID(id)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, ErrProductNotFound) {
		return false, nil
	}
	return false, err
}

// upsertProductBySKU creates the product or updates the existing row with
// the same sku. Returns whether a new row was created.
func upsertProductBySKU(tx *gorm.DB, product *model.Product) (bool, error) {
	var existing model.Product
	err := tx.Where("sku = ?", product.SKU).First(&existing).Error
	if err == nil {
		product.ID = existing.ID
		return false, tx.Model(&existing).Updates(map[string]interface{}{
			"name":        product.Name,
			"description": product.Description,
			"price":       product.Price,
			"quantity":    product.Quantity,
			"is_active":   product.IsActive,
		}).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	return true, tx.Create(product).Error
}
