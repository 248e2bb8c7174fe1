package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"kayakbay-backend/internal/domain"
	"kayakbay-backend/internal/repository"
)

type waiverRepository struct {
	db *sql.DB
}

func NewWaiverRepository(db *sql.DB) repository.WaiverRepository {
	return &waiverRepository{db: db}
}

func (r *waiverRepository) Create(ctx context.Context, w *domain.Waiver) error {
	query := `INSERT INTO waivers (user_id, signature, date_signed) VALUES ($1, $2, $3) RETURNING id`
	if w.DateSigned.IsZero() {
		w.DateSigned = time.Now()
	}
	return r.db.QueryRowContext(ctx, query, w.UserID, w.Signature, w.DateSigned).Scan(&w.ID)
}

func (r *waiverRepository) GetByUser(ctx context.Context, userID int32) (*domain.Waiver, error) {
	w := &domain.Waiver{}
	query := `SELECT id, user_id, signature, date_signed FROM waivers
	          WHERE user_id = $1 ORDER BY date_signed DESC LIMIT 1`
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&w.ID, &w.UserID, &w.Signature, &w.DateSigned)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return w, nil
}
