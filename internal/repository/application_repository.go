package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/hallticket-service/internal/domain"
	"github.com/spec-kit/hallticket-service/internal/store"
)

// applicationRepository is the Postgres-backed application store. Status
// transitions are status-guarded UPDATEs so that each one is atomic and
// concurrent webhook deliveries cannot both claim the same record.
type applicationRepository struct {
	pool *pgxpool.Pool
}

// NewApplicationRepository instantiates the durable application store.
func NewApplicationRepository(pool *pgxpool.Pool) store.ApplicationStore {
	return &applicationRepository{pool: pool}
}

func (r *applicationRepository) Create(ctx context.Context, app *domain.Application) error {
	const query = `
        INSERT INTO applications (ticket_id, name, email, phone, college, course, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING created_at, updated_at`
	err := r.pool.QueryRow(ctx, query,
		app.TicketID,
		app.Name,
		app.Email,
		app.Phone,
		app.College,
		app.Course,
		app.Status,
	).Scan(&app.CreatedAt, &app.UpdatedAt)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return store.ErrConflict
	}
	return err
}

func (r *applicationRepository) Get(ctx context.Context, ticketID string) (*domain.Application, error) {
	const query = `
        SELECT ticket_id, name, email, phone, college, course, status,
               document_url, payment_ref, payment_url, created_at, updated_at, paid_at
        FROM applications WHERE ticket_id=$1`
	var app domain.Application
	err := r.pool.QueryRow(ctx, query, ticketID).Scan(
		&app.TicketID,
		&app.Name,
		&app.Email,
		&app.Phone,
		&app.College,
		&app.Course,
		&app.Status,
		&app.DocumentURL,
		&app.PaymentRef,
		&app.PaymentURL,
		&app.CreatedAt,
		&app.UpdatedAt,
		&app.PaidAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepository) CompareAndSwapStatus(ctx context.Context, ticketID string, from, to domain.ApplicationStatus) (bool, error) {
	const query = `
        UPDATE applications SET status=$1, updated_at=NOW()
        WHERE ticket_id=$2 AND status=$3`
	cmd, err := r.pool.Exec(ctx, query, to, ticketID, from)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() == 1, nil
}

func (r *applicationRepository) MarkPaid(ctx context.Context, ticketID, documentURL, paymentRef string) error {
	const query = `
        UPDATE applications SET status=$1, document_url=$2, payment_ref=$3, paid_at=NOW(), updated_at=NOW()
        WHERE ticket_id=$4 AND status=$5`
	cmd, err := r.pool.Exec(ctx, query, domain.StatusPaid, documentURL, paymentRef, ticketID, domain.StatusProcessing)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() != 1 {
		return store.ErrConflict
	}
	return nil
}

func (r *applicationRepository) SetPaymentURL(ctx context.Context, ticketID, paymentURL string) error {
	const query = `
        UPDATE applications SET payment_url=$1, updated_at=NOW()
        WHERE ticket_id=$2`
	cmd, err := r.pool.Exec(ctx, query, paymentURL, ticketID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() != 1 {
		return store.ErrNotFound
	}
	return nil
}

func (r *applicationRepository) Delete(ctx context.Context, ticketID string) error {
	const query = `DELETE FROM applications WHERE ticket_id=$1`
	_, err := r.pool.Exec(ctx, query, ticketID)
	return err
}
