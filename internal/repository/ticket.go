package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pro-joshi-grammer/sahayatha/internal/domain"
)

// TicketRepository persists tickets in Postgres.
type TicketRepository struct {
	pool *pgxpool.Pool
}

func NewTicketRepository(pool *pgxpool.Pool) *TicketRepository {
	return &TicketRepository{pool: pool}
}

const ticketColumns = `id, public_id, type, title, details, status, department, phone, photo_key, latitude, longitude, created_at, updated_at`

// Create inserts the ticket and assigns its public id from the bigserial
// sequence, so ids are collision-free without any retry loop. Both steps run
// in one transaction; a half-created ticket without a public id can never be
// observed.
func (r *TicketRepository) Create(ctx context.Context, t *domain.Ticket) (*domain.Ticket, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	now := time.Now().UTC()
	err = tx.QueryRow(ctx,
		`INSERT INTO tickets (type, title, details, status, department, phone, photo_key, latitude, longitude, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
		 RETURNING id`,
		t.Type, t.Title, t.Details, t.Status, t.Department, t.Phone, t.PhotoKey, t.Latitude, t.Longitude, now,
	).Scan(&t.ID)
	if err != nil {
		return nil, err
	}

	t.PublicID = fmt.Sprintf("%s-%06d", t.Type.IDPrefix(), t.ID)
	t.CreatedAt = now
	t.UpdatedAt = now

	if _, err := tx.Exec(ctx, `UPDATE tickets SET public_id = $1 WHERE id = $2`, t.PublicID, t.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return t, nil
}

// List returns all tickets, newest first.
func (r *TicketRepository) List(ctx context.Context) ([]domain.Ticket, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+ticketColumns+` FROM tickets ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTicketRows(rows)
}

// GetByPublicID resolves one ticket by its public id.
func (r *TicketRepository) GetByPublicID(ctx context.Context, publicID string) (*domain.Ticket, error) {
	var t domain.Ticket
	err := r.pool.QueryRow(ctx,
		`SELECT `+ticketColumns+` FROM tickets WHERE public_id = $1`, publicID,
	).Scan(&t.ID, &t.PublicID, &t.Type, &t.Title, &t.Details, &t.Status, &t.Department, &t.Phone, &t.PhotoKey, &t.Latitude, &t.Longitude, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTicketNotFound
		}
		return nil, err
	}
	return &t, nil
}

// UpdateStatus moves the ticket to the new status. The single-row UPDATE is
// what serializes concurrent updates to the same ticket.
func (r *TicketRepository) UpdateStatus(ctx context.Context, publicID string, status domain.TicketStatus) (*domain.Ticket, error) {
	var t domain.Ticket
	err := r.pool.QueryRow(ctx,
		`UPDATE tickets SET status = $1, updated_at = now()
		 WHERE public_id = $2
		 RETURNING `+ticketColumns,
		status, publicID,
	).Scan(&t.ID, &t.PublicID, &t.Type, &t.Title, &t.Details, &t.Status, &t.Department, &t.Phone, &t.PhotoKey, &t.Latitude, &t.Longitude, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTicketNotFound
		}
		return nil, err
	}
	return &t, nil
}

func scanTicketRows(rows pgx.Rows) ([]domain.Ticket, error) {
	tickets := make([]domain.Ticket, 0)
	for rows.Next() {
		var t domain.Ticket
		if err := rows.Scan(&t.ID, &t.PublicID, &t.Type, &t.Title, &t.Details, &t.Status, &t.Department, &t.Phone, &t.PhotoKey, &t.Latitude, &t.Longitude, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}
