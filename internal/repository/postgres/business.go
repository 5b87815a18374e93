package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/turnoya/booking-api/internal/model"
	"github.com/turnoya/booking-api/internal/repository"
)

func (r *businessRepository) Create(ctx context.Context, business *model.Business) error {
	query := `
		INSERT INTO businesses (
			id, owner_id, name, slug, email, phone, address, is_active,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	business.ID = uuid.New()
	business.CreatedAt = time.Now()
	business.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		business.ID,
		business.OwnerID,
		business.Name,
		business.Slug,
		business.Email,
		business.Phone,
		business.Address,
		business.IsActive,
		business.CreatedAt,
		business.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to create business: %w", err)
	}
	return nil
}

func (r *businessRepository) Get(ctx context.Context, id uuid.UUID) (*model.Business, error) {
	query := `
		SELECT id, owner_id, name, slug, email, phone, address, is_active,
			   created_at, updated_at
		FROM businesses
		WHERE id = $1
	`
	var business model.Business
	if err := r.db.GetContext(ctx, &business, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get business: %w", err)
	}
	return &business, nil
}

func (r *businessRepository) GetByOwner(ctx context.Context, ownerID string) (*model.Business, error) {
	query := `
		SELECT id, owner_id, name, slug, email, phone, address, is_active,
			   created_at, updated_at
		FROM businesses
		WHERE owner_id = $1
	`
	var business model.Business
	if err := r.db.GetContext(ctx, &business, query, ownerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get business by owner: %w", err)
	}
	return &business, nil
}

func (r *businessRepository) GetBySlug(ctx context.Context, slug string) (*model.Business, error) {
	query := `
		SELECT id, owner_id, name, slug, email, phone, address, is_active,
			   created_at, updated_at
		FROM businesses
		WHERE slug = $1
	`
	var business model.Business
	if err := r.db.GetContext(ctx, &business, query, slug); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get business by slug: %w", err)
	}
	return &business, nil
}

func (r *businessRepository) Update(ctx context.Context, business *model.Business) error {
	query := `
		UPDATE businesses
		SET name = $1, email = $2, phone = $3, address = $4, is_active = $5,
			updated_at = $6
		WHERE id = $7
	`
	business.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		business.Name,
		business.Email,
		business.Phone,
		business.Address,
		business.IsActive,
		business.UpdatedAt,
		business.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update business: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}
