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

const appointmentColumns = `
	id, business_id, service_id, customer_name, customer_phone, customer_email,
	appointment_date, duration_minutes, status, notes, reminder_sent_at,
	created_at, updated_at
`

// CreateWithConflictCheck re-checks the interval overlap and inserts inside a
// single serializable transaction so two concurrent bookings for the same slot
// cannot both commit. The EXISTS query pre-filters candidates to
// [start - 30min, start + duration] before the exact half-open overlap test.
func (r *appointmentRepository) CreateWithConflictCheck(ctx context.Context, appointment *model.Appointment) error {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	start := appointment.AppointmentDate
	end := appointment.EndTime()

	conflictQuery := `
		SELECT EXISTS (
			SELECT 1 FROM appointments
			WHERE business_id = $1
			AND status IN ('pending', 'confirmed')
			AND appointment_date BETWEEN $2::timestamptz - interval '30 minutes' AND $3
			AND appointment_date < $3
			AND appointment_date + duration_minutes * interval '1 minute' > $2
		)
	`
	var hasConflict bool
	if err := tx.GetContext(ctx, &hasConflict, conflictQuery, appointment.BusinessID, start, end); err != nil {
		return fmt.Errorf("failed to check conflicts: %w", err)
	}
	if hasConflict {
		return repository.ErrSlotTaken
	}

	insertQuery := `
		INSERT INTO appointments (
			id, business_id, service_id, customer_name, customer_phone,
			customer_email, appointment_date, duration_minutes, status, notes,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	appointment.ID = uuid.New()
	appointment.CreatedAt = time.Now()
	appointment.UpdatedAt = time.Now()

	if _, err := tx.ExecContext(ctx, insertQuery,
		appointment.ID,
		appointment.BusinessID,
		appointment.ServiceID,
		appointment.CustomerName,
		appointment.CustomerPhone,
		appointment.CustomerEmail,
		appointment.AppointmentDate,
		appointment.DurationMinutes,
		appointment.Status,
		appointment.Notes,
		appointment.CreatedAt,
		appointment.UpdatedAt,
	); err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}

	if err := tx.Commit(); err != nil {
		// Serialization failure means a concurrent booking won the slot.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "40001" {
			return repository.ErrSlotTaken
		}
		return fmt.Errorf("failed to commit booking: %w", err)
	}
	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE id = $1`

	var appointment model.Appointment
	if err := r.db.GetContext(ctx, &appointment, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &appointment, nil
}

func (r *appointmentRepository) ListActiveForRange(ctx context.Context, businessID uuid.UUID, from, to time.Time) ([]*model.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE business_id = $1
		AND status IN ('pending', 'confirmed')
		AND appointment_date < $3
		AND appointment_date + duration_minutes * interval '1 minute' > $2
		ORDER BY appointment_date ASC
	`
	var appointments []*model.Appointment
	if err := r.db.SelectContext(ctx, &appointments, query, businessID, from, to); err != nil {
		return nil, fmt.Errorf("failed to list active appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE business_id = $1
	`
	args := []interface{}{filters.BusinessID}
	argCount := 2

	if filters.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argCount)
		args = append(args, filters.Status)
		argCount++
	}

	if !filters.StartDate.IsZero() {
		query += fmt.Sprintf(" AND appointment_date >= $%d", argCount)
		args = append(args, filters.StartDate)
		argCount++
	}

	if !filters.EndDate.IsZero() {
		query += fmt.Sprintf(" AND appointment_date < $%d", argCount)
		args = append(args, filters.EndDate)
		argCount++
	}

	query += " ORDER BY appointment_date ASC"

	var appointments []*model.Appointment
	if err := r.db.SelectContext(ctx, &appointments, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) UpdateStatusWithPrecondition(ctx context.Context, id uuid.UUID, from []model.AppointmentStatus, to model.AppointmentStatus) error {
	states := make([]string, len(from))
	for i, s := range from {
		states[i] = string(s)
	}

	query := `
		UPDATE appointments
		SET status = $1, updated_at = $2
		WHERE id = $3 AND status = ANY($4)
	`
	result, err := r.db.ExecContext(ctx, query, to, time.Now(), id, pq.Array(states))
	if err != nil {
		return fmt.Errorf("failed to update appointment status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		var exists bool
		if err := r.db.GetContext(ctx, &exists,
			`SELECT EXISTS (SELECT 1 FROM appointments WHERE id = $1)`, id); err != nil {
			return fmt.Errorf("failed to check appointment existence: %w", err)
		}
		if !exists {
			return repository.ErrNotFound
		}
		return repository.ErrPrecondition
	}
	return nil
}

func (r *appointmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
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

func (r *appointmentRepository) ListDueReminders(ctx context.Context, from, to time.Time) ([]*model.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE appointment_date >= $1
		AND appointment_date < $2
		AND status IN ('pending', 'confirmed')
		AND reminder_sent_at IS NULL
		ORDER BY appointment_date ASC
	`
	var appointments []*model.Appointment
	if err := r.db.SelectContext(ctx, &appointments, query, from, to); err != nil {
		return nil, fmt.Errorf("failed to list due reminders: %w", err)
	}
	return appointments, nil
}

// MarkReminderSent is guarded by reminder_sent_at IS NULL so overlapping job
// runs cannot record (and therefore send) a reminder twice.
func (r *appointmentRepository) MarkReminderSent(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	query := `
		UPDATE appointments
		SET reminder_sent_at = $1, updated_at = $1
		WHERE id = $2 AND reminder_sent_at IS NULL
	`
	result, err := r.db.ExecContext(ctx, query, at, id)
	if err != nil {
		return false, fmt.Errorf("failed to mark reminder sent: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows > 0, nil
}

func (r *appointmentRepository) ListCustomers(ctx context.Context, businessID uuid.UUID) ([]*model.Customer, error) {
	query := `
		SELECT customer_name, customer_phone,
			   MAX(customer_email) AS customer_email,
			   COUNT(*) AS total_appointments,
			   MAX(appointment_date) FILTER (WHERE status = 'completed') AS last_visit
		FROM appointments
		WHERE business_id = $1
		GROUP BY customer_name, customer_phone
		ORDER BY total_appointments DESC, customer_name ASC
	`
	var customers []*model.Customer
	if err := r.db.SelectContext(ctx, &customers, query, businessID); err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, nil
}

func (r *appointmentRepository) GetDashboardStats(ctx context.Context, businessID uuid.UUID, now time.Time) (*model.DashboardStats, error) {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	query := `
		SELECT
			COUNT(*) FILTER (
				WHERE appointment_date >= $2 AND appointment_date < $3
				AND status IN ('pending', 'confirmed')
			) AS today_appointments,
			COUNT(*) FILTER (
				WHERE appointment_date >= $4
				AND status IN ('pending', 'confirmed')
			) AS upcoming_appointments,
			COUNT(*) FILTER (
				WHERE status = 'completed' AND appointment_date >= $5
			) AS completed_this_month,
			COALESCE(SUM(s.price) FILTER (
				WHERE a.status = 'completed' AND a.appointment_date >= $5
			), 0) AS revenue_this_month
		FROM appointments a
		JOIN services s ON s.id = a.service_id
		WHERE a.business_id = $1
	`
	var stats model.DashboardStats
	if err := r.db.GetContext(ctx, &stats, query, businessID, dayStart, dayEnd, now, monthStart); err != nil {
		return nil, fmt.Errorf("failed to get dashboard stats: %w", err)
	}
	return &stats, nil
}
