package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"kayakbay-backend/internal/domain"
	"kayakbay-backend/internal/repository"
)

type kayakRepository struct {
	db *sql.DB
}

func NewKayakRepository(db *sql.DB) repository.KayakRepository {
	return &kayakRepository{db: db}
}

func (r *kayakRepository) Create(ctx context.Context, k *domain.Kayak) error {
	query := `INSERT INTO kayaks (name, lock_id, is_available, location, created_on)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	return r.db.QueryRowContext(ctx, query, k.Name, k.LockID, k.IsAvailable, k.Location, time.Now()).Scan(&k.ID)
}

func (r *kayakRepository) GetByID(ctx context.Context, id int32) (*domain.Kayak, error) {
	k := &domain.Kayak{}
	query := `SELECT id, name, lock_id, is_available, location, created_on FROM kayaks WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&k.ID, &k.Name, &k.LockID, &k.IsAvailable, &k.Location, &k.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrKayakNotFound
	}
	if err != nil {
		return nil, err
	}
	return k, nil
}

func (r *kayakRepository) ListAvailable(ctx context.Context) ([]domain.Kayak, error) {
	query := `SELECT id, name, lock_id, is_available, location, created_on FROM kayaks WHERE is_available = TRUE ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var kayaks []domain.Kayak
	for rows.Next() {
		var k domain.Kayak
		if err := rows.Scan(&k.ID, &k.Name, &k.LockID, &k.IsAvailable, &k.Location, &k.CreatedOn); err != nil {
			return nil, err
		}
		kayaks = append(kayaks, k)
	}
	return kayaks, rows.Err()
}

func (r *kayakRepository) Count(ctx context.Context) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM kayaks`).Scan(&count)
	return count, err
}

func (r *kayakRepository) CountAvailable(ctx context.Context) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM kayaks WHERE is_available = TRUE`).Scan(&count)
	return count, err
}

// ClaimAvailable flips availability inside a single statement so concurrent
// rent requests cannot claim the same kayak. SKIP LOCKED keeps one request's
// claim from blocking on another's in-flight transaction.
func (r *kayakRepository) ClaimAvailable(ctx context.Context, limit int32) ([]domain.Kayak, error) {
	query := `UPDATE kayaks SET is_available = FALSE
	          WHERE id IN (
	              SELECT id FROM kayaks WHERE is_available = TRUE
	              ORDER BY id LIMIT $1 FOR UPDATE SKIP LOCKED
	          )
	          RETURNING id, name, lock_id, is_available, location, created_on`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var claimed []domain.Kayak
	for rows.Next() {
		var k domain.Kayak
		if err := rows.Scan(&k.ID, &k.Name, &k.LockID, &k.IsAvailable, &k.Location, &k.CreatedOn); err != nil {
			return nil, err
		}
		claimed = append(claimed, k)
	}
	return claimed, rows.Err()
}

func (r *kayakRepository) Release(ctx context.Context, id int32) error {
	_, err := r.db.ExecContext(ctx, `UPDATE kayaks SET is_available = TRUE WHERE id = $1`, id)
	return err
}

func (r *kayakRepository) SetAvailability(ctx context.Context, id int32, available bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE kayaks SET is_available = $1 WHERE id = $2`, available, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrKayakNotFound
	}
	return nil
}
