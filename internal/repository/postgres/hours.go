package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/turnoya/booking-api/internal/model"
	"github.com/turnoya/booking-api/internal/repository"
)

func (r *hoursRepository) ReplaceWeek(ctx context.Context, businessID uuid.UUID, days []*model.BusinessHours) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM business_hours WHERE business_id = $1`, businessID); err != nil {
		return fmt.Errorf("failed to clear business hours: %w", err)
	}

	query := `
		INSERT INTO business_hours (
			id, business_id, weekday, is_closed, open_time, close_time,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	now := time.Now()
	for _, day := range days {
		day.ID = uuid.New()
		day.BusinessID = businessID
		day.CreatedAt = now
		day.UpdatedAt = now

		if _, err := tx.ExecContext(ctx, query,
			day.ID,
			day.BusinessID,
			day.Weekday,
			day.IsClosed,
			day.OpenTime,
			day.CloseTime,
			day.CreatedAt,
			day.UpdatedAt,
		); err != nil {
			return fmt.Errorf("failed to insert hours for weekday %d: %w", day.Weekday, err)
		}
	}

	return tx.Commit()
}

func (r *hoursRepository) GetWeek(ctx context.Context, businessID uuid.UUID) ([]*model.BusinessHours, error) {
	query := `
		SELECT id, business_id, weekday, is_closed, open_time, close_time,
			   created_at, updated_at
		FROM business_hours
		WHERE business_id = $1
		ORDER BY weekday ASC
	`
	var hours []*model.BusinessHours
	if err := r.db.SelectContext(ctx, &hours, query, businessID); err != nil {
		return nil, fmt.Errorf("failed to get business hours: %w", err)
	}
	return hours, nil
}

func (r *hoursRepository) GetForWeekday(ctx context.Context, businessID uuid.UUID, weekday int) (*model.BusinessHours, error) {
	query := `
		SELECT id, business_id, weekday, is_closed, open_time, close_time,
			   created_at, updated_at
		FROM business_hours
		WHERE business_id = $1 AND weekday = $2
	`
	var hours model.BusinessHours
	if err := r.db.GetContext(ctx, &hours, query, businessID, weekday); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get hours for weekday: %w", err)
	}
	return &hours, nil
}
