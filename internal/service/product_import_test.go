package service

import (
	"Go_Mall/internal/repo"
	"Go_Mall/model"
	"errors"
	"strings"
	"testing"
)

func TestImportProductsCreatesAndUpdates(t *testing.T) {
	setupServiceTest(t)
	if err := repo.Db.Create(&model.Product{SKU: "SKU-OLD", Name: "Old Name", Price: 1}).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}

	csv := strings.Join([]string{
		"sku,name,description,price,quantity,is_active",
		"SKU-OLD,New Name,refreshed,19.99,5,true",
		"SKU-NEW,Brand New,shiny,9.50,12,false",
	}, "\n")

	result, err := ImportProducts(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if result.Total != 2 || result.Created != 1 || result.Updated != 1 {
		t.Errorf("result = %+v, want total 2, created 1, updated 1", result)
	}

	var updated model.Product
	if err := repo.Db.Where("sku = ?", "SKU-OLD").First(&updated).Error; err != nil {
		t.Fatalf("reload updated: %v", err)
	}
	if updated.Name != "New Name" || updated.Price != 19.99 || updated.Quantity != 5 {
		t.Errorf("updated product = %+v", updated)
	}

	var created model.Product
	if err := repo.Db.Where("sku = ?", "SKU-NEW").First(&created).Error; err != nil {
		t.Fatalf("reload created: %v", err)
	}
	if created.IsActive {
		t.Error("created product should be inactive")
	}
}

func TestImportProductsCountsInvalidAndDuplicates(t *testing.T) {
	setupServiceTest(t)

	csv := strings.Join([]string{
		"sku,name,price",
		"SKU-1,First,10",
		"SKU-1,Repeat,11",
		",No Sku,12",
		"SKU-2,,13",
		"SKU-3,Wrong Columns",
		"SKU-4,Last,14",
	}, "\n")

	result, err := ImportProducts(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if result.Total != 6 {
		t.Errorf("total = %d, want 6", result.Total)
	}
	if result.Created != 2 {
		t.Errorf("created = %d, want 2", result.Created)
	}
	if result.Duplicates != 1 {
		t.Errorf("duplicates = %d, want 1", result.Duplicates)
	}
	if result.Invalid != 3 {
		t.Errorf("invalid = %d, want 3", result.Invalid)
	}

	var count int64
	repo.Db.Model(&model.Product{}).Count(&count)
	if count != 2 {
		t.Errorf("product rows = %d, want 2", count)
	}
}

func TestImportProductsMissingRequiredColumn(t *testing.T) {
	setupServiceTest(t)

	_, err := ImportProducts(strings.NewReader("name,price\nNo Sku Column,10\n"))
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("err = %v, want ErrInvalidArgument", err)
	}
}

func TestImportProductsEmptyFile(t *testing.T) {
	setupServiceTest(t)

	_, err := ImportProducts(strings.NewReader(""))
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("err = %v, want ErrInvalidArgument", err)
	}
}

func TestParseActive(t *testing.T) {
	trues := []string{"", "1", "true", "TRUE", "yes", "y", "on"}
	for _, v := range trues {
		if !parseActive(v) {
			t.Errorf("parseActive(%q) = false, want true", v)
		}
	}
	falses := []string{"0", "false", "no", "off", "nope"}
	for _, v := range falses {
		if parseActive(v) {
			t.Errorf("parseActive(%q) = true, want false", v)
		}
	}
}
