package db

import (
	"context"
	"errors"
	"fmt"

	apperrors "gavel-auction-service/internal/errors"
	"gavel-auction-service/internal/ports/outbound"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository is the single gorm-backed implementation of the generic
// outbound.Repository contract. Every entity repository embeds one.
type Repository[T any] struct {
	db       *gorm.DB
	resource string
}

// NewRepository creates a repository for one entity type. The resource name
// appears in not-found errors.
func NewRepository[T any](gormDB *gorm.DB, resource string) *Repository[T] {
	return &Repository[T]{db: gormDB, resource: resource}
}

// Writes are row-scoped: loaded relations on the entity are never written
// back, so reading an aggregate and saving it cannot touch its children.

func (r *Repository[T]) Create(ctx context.Context, entity *T) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(entity).Error; err != nil {
		return fmt.Errorf("failed to create %s: %w", r.resource, err)
	}
	return nil
}

func (r *Repository[T]) GetByID(ctx context.Context, id uuid.UUID, preloads ...string) (*T, error) {
	tx := r.db.WithContext(ctx)
	for _, preload := range preloads {
		tx = tx.Preload(preload)
	}

	var entity T
	err := tx.First(&entity, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError(r.resource)
		}
		return nil, fmt.Errorf("failed to get %s: %w", r.resource, err)
	}

	return &entity, nil
}

func (r *Repository[T]) Find(ctx context.Context, q outbound.Query) ([]*T, error) {
	tx := r.db.WithContext(ctx)
	for column, value := range q.Conds {
		tx = tx.Where(fmt.Sprintf("%s = ?", column), value)
	}
	if q.Order != "" {
		tx = tx.Order(q.Order)
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	for _, preload := range q.Preloads {
		tx = tx.Preload(preload)
	}

	var entities []*T
	if err := tx.Find(&entities).Error; err != nil {
		return nil, fmt.Errorf("failed to find %s: %w", r.resource, err)
	}

	return entities, nil
}

func (r *Repository[T]) Update(ctx context.Context, entity *T) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(entity).Error; err != nil {
		return fmt.Errorf("failed to update %s: %w", r.resource, err)
	}
	return nil
}

func (r *Repository[T]) Delete(ctx context.Context, id uuid.UUID) error {
	var entity T
	result := r.db.WithContext(ctx).Delete(&entity, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete %s: %w", r.resource, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError(r.resource)
	}
	return nil
}
