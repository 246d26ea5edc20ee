// internal/services/crud.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/javajoker/sustainchain-backend/internal/utils"
)

// findByID loads one row of T or returns a *NotFoundError.
func findByID[T any](db *gorm.DB, resource string, id uuid.UUID, preloads ...string) (*T, error) {
	var entity T
	query := db
	for _, p := range preloads {
		query = query.Preload(p)
	}

	if err := query.First(&entity, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: resource, ID: id}
		}
		return nil, fmt.Errorf("failed to load %s: %w", resource, err)
	}
	return &entity, nil
}

// updateByID applies column updates to exactly one live row.
func updateByID[T any](db *gorm.DB, resource string, id uuid.UUID, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return ensureFound[T](db, resource, id)
	}

	result := db.Model(new(T)).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update %s: %w", resource, result.Error)
	}
	if result.RowsAffected != 1 {
		return &NotFoundError{Resource: resource, ID: id}
	}
	return nil
}

// deleteByID soft-deletes one row. Deleting an already deleted row is a miss.
func deleteByID[T any](db *gorm.DB, resource string, id uuid.UUID) error {
	result := db.Where("id = ?", id).Delete(new(T))
	if result.Error != nil {
		return fmt.Errorf("failed to delete %s: %w", resource, result.Error)
	}
	if result.RowsAffected != 1 {
		return &NotFoundError{Resource: resource, ID: id}
	}
	return nil
}

func exists[T any](db *gorm.DB, id uuid.UUID) (bool, error) {
	var count int64
	if err := db.Model(new(T)).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func ensureFound[T any](db *gorm.DB, resource string, id uuid.UUID) error {
	ok, err := exists[T](db, id)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", resource, err)
	}
	if !ok {
		return &NotFoundError{Resource: resource, ID: id}
	}
	return nil
}

// ensureExists checks a foreign key before it is written.
func ensureExists[T any](db *gorm.DB, resource string, id uuid.UUID) error {
	ok, err := exists[T](db, id)
	if err != nil {
		return fmt.Errorf("failed to check %s: %w", resource, err)
	}
	if !ok {
		return &ReferenceError{Resource: resource, ID: id}
	}
	return nil
}

// paginate counts and pages a filtered query of T.
func paginate[T any](query *gorm.DB, params utils.PaginationParams, sortFields []string, preloads ...string) ([]T, int64, error) {
	if params.Limit <= 0 {
		params.Limit = utils.DefaultPageLimit
	}
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Order == "" {
		params.Order = "desc"
	}

	base := query.Model(new(T)).Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count: %w", err)
	}

	page := utils.ApplyPagination(utils.ApplySort(base, params, sortFields), params)
	for _, p := range preloads {
		page = page.Preload(p)
	}

	items := make([]T, 0, params.Limit)
	if err := page.Find(&items).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list: %w", err)
	}
	return items, total, nil
}

// setIf records a column update when the request supplied the field.
func setIf[V any](updates map[string]interface{}, column string, value *V) {
	if value != nil {
		updates[column] = *value
	}
}

func searchPattern(search string) string {
	return "%" + search + "%"
}
