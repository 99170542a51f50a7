package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"warehouse/internal/models"
)

const SearchLimit = 10

// sortColumns is the allow-list of accepted sort keys. Caller input is only
// ever resolved through this map, never concatenated into query text.
var sortColumns = map[string]string{
	"id":          "id",
	"name":        "name",
	"quantity":    "quantity",
	"description": "description",
}

// SortColumn resolves a caller-supplied sort field to a verified column
// identifier. Unknown and empty fields fall back to "id".
func SortColumn(field string) string {
	if col, ok := sortColumns[strings.ToLower(field)]; ok {
		return col
	}
	return "id"
}

type ProductRepo struct {
	DB *gorm.DB
}

func (r *ProductRepo) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	product := models.Product{}
	if err := r.DB.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepo) Create(ctx context.Context, product *models.Product) error {
	return r.DB.WithContext(ctx).Raw(
		"INSERT INTO products (name, quantity, description) VALUES (?, ?, ?) RETURNING id",
		product.Name, product.Quantity, product.Description,
	).Scan(&product.ID).Error
}

// Update overwrites name/quantity/description of the record with the same
// id. A missing record is a silent no-op.
func (r *ProductRepo) Update(ctx context.Context, product *models.Product) error {
	var existing models.Product
	if err := r.DB.WithContext(ctx).First(&existing, product.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	existing.Name = product.Name
	existing.Quantity = product.Quantity
	existing.Description = product.Description

	return r.DB.WithContext(ctx).Save(&existing).Error
}

// Delete removes the record by id. A missing record is a silent no-op.
func (r *ProductRepo) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Exec("DELETE FROM products WHERE id = ?", id).Error
}

// SearchByName matches case-insensitively on a name substring, ordered by
// name ascending and capped at SearchLimit rows.
func (r *ProductRepo) SearchByName(ctx context.Context, substring string) ([]models.Product, error) {
	pattern := "%" + strings.ToLower(substring) + "%"

	items := make([]models.Product, 0, SearchLimit)
	if err := r.DB.WithContext(ctx).Raw(
		"SELECT id, name, quantity, description FROM products WHERE LOWER(name) LIKE ? ORDER BY name ASC LIMIT ?",
		pattern, SearchLimit,
	).Scan(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ListPage returns one page ordered by an allow-listed column.
func (r *ProductRepo) ListPage(ctx context.Context, pageNumber, pageSize int, sortField string, ascending bool) ([]models.Product, error) {
	col := SortColumn(sortField)
	dir := "DESC"
	if ascending {
		dir = "ASC"
	}
	offset := (pageNumber - 1) * pageSize

	query := fmt.Sprintf(
		"SELECT id, name, quantity, description FROM products ORDER BY %s %s LIMIT ? OFFSET ?",
		col, dir,
	)

	items := make([]models.Product, 0, pageSize)
	if err := r.DB.WithContext(ctx).Raw(query, pageSize, offset).Scan(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
