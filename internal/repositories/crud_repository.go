package repositories

import (
	"context"

	"gorm.io/gorm"

	"identity/pkg/utils"
)

// CrudRepository is the generic find/count/delete helper behind the user admin endpoints.
type CrudRepository[T any] struct {
	db *gorm.DB
}

func NewCrudRepository[T any](db *gorm.DB) *CrudRepository[T] {
	return &CrudRepository[T]{db: db}
}

func (r *CrudRepository[T]) FindOne(ctx context.Context, query interface{}, args ...interface{}) (*T, error) {
	var entity T
	return firstOrNil(r.db.WithContext(ctx).Where(query, args...).First(&entity), &entity)
}

func (r *CrudRepository[T]) FindAndCount(ctx context.Context, page, limit int, order string) ([]T, int64, error) {
	var (
		items []T
		total int64
	)

	if err := r.db.WithContext(ctx).Model(new(T)).Count(&total).Error; err != nil {
		return nil, 0, storeError(err)
	}

	q := r.db.WithContext(ctx)
	if order != "" {
		q = q.Order(order)
	}
	if err := q.Limit(limit).Offset(utils.Offset(limit, page)).Find(&items).Error; err != nil {
		return nil, 0, storeError(err)
	}
	return items, total, nil
}

// SoftDelete stamps deleted_at and reports how many live rows it touched.
func (r *CrudRepository[T]) SoftDelete(ctx context.Context, id interface{}) (int64, error) {
	result := r.db.WithContext(ctx).Delete(new(T), "id = ?", id)
	if result.Error != nil {
		return 0, storeError(result.Error)
	}
	return result.RowsAffected, nil
}
