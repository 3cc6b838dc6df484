package service

import (
	"Go_Mall/internal/dto"
	"Go_Mall/internal/repo"
	"Go_Mall/model"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

var requiredImportColumns = []string{"sku", "name"}

// ImportProducts reads a product CSV and upserts one row per sku. Rows with
// missing required fields or the wrong column count are counted as invalid,
// repeated skus within the file as duplicates; neither aborts the import.
// The whole import runs in one transaction.
func ImportProducts(r io.Reader) (*dto.ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: csv file is empty or invalid", ErrInvalidArgument)
	}
	headerIdx := make(map[string]int, len(headers))
	for i, h := range headers {
		headerIdx[strings.TrimSpace(h)] = i
	}
	for _, col := range requiredImportColumns {
		if _, ok := headerIdx[col]; !ok {
			return nil, fmt.Errorf("%w: missing required column: %s", ErrInvalidArgument, col)
		}
	}

	result := &dto.ImportResult{}
	seen := make(map[string]bool)
	err = repo.Db.Transaction(func(tx *gorm.DB) error {
		for {
			row, err := reader.Read()
			if err == io.EOF {
				return nil
			}
			if err != nil {
				result.Total++
				result.Invalid++
				continue
			}
			result.Total++
			if len(row) != len(headers) {
				result.Invalid++
				continue
			}
			field := func(name string) string {
				idx, ok := headerIdx[name]
				if !ok || idx >= len(row) {
					return ""
				}
				return strings.TrimSpace(row[idx])
			}
			sku := field("sku")
			name := field("name")
			if sku == "" || name == "" {
				result.Invalid++
				continue
			}
			if seen[sku] {
				result.Duplicates++
				continue
			}
			seen[sku] = true

			product := &model.Product{
				SKU:         sku,
				Name:        name,
				Description: field("description"),
				Price:       parsePrice(field("price")),
				Quantity:    parseQuantity(field("quantity")),
				IsActive:    parseActive(field("is_active")),
			}
			created, err := upsertProductBySKU(tx, product)
			if err != nil {
				log.Printf("import: row for sku %s failed: %v", sku, err)
				result.Invalid++
				continue
			}
			if created {
				result.Created++
			} else {
				result.Updated++
			}
		}
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func parsePrice(value string) float64 {
	if value == "" {
		return 0
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return parsed
}

func parseQuantity(value string) int {
	if value == "" {
		return 0
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return parsed
}

func parseActive(value string) bool {
	switch strings.ToLower(value) {
	case "", "1", "true", "yes", "y", "on":
		return true
	default:
		return false
	}
}
