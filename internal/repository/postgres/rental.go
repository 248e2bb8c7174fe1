package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"kayakbay-backend/internal/domain"
	"kayakbay-backend/internal/repository"
)

type rentalRepository struct {
	db *sql.DB
}

func NewRentalRepository(db *sql.DB) repository.RentalRepository {
	return &rentalRepository{db: db}
}

const rentalColumns = `id, user_id, kayak_id, rental_start, rental_end, passcode, passcode_id,
	payment_intent_id, payment_status, pickup_photo_url, return_photo_url, reminder_sent, created_on`

func (r *rentalRepository) Create(ctx context.Context, rt *domain.Rental) error {
	query := `INSERT INTO rentals (user_id, kayak_id, rental_start, rental_end, passcode, passcode_id,
	              payment_intent_id, payment_status, pickup_photo_url, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		rt.UserID, rt.KayakID, rt.RentalStart, rt.RentalEnd, rt.Passcode, rt.PasscodeID,
		rt.PaymentIntentID, rt.PaymentStatus, rt.PickupPhotoURL, time.Now()).Scan(&rt.ID)
}

func scanRental(row interface{ Scan(dest ...any) error }) (*domain.Rental, error) {
	rt := &domain.Rental{}
	var pickupPhoto, returnPhoto sql.NullString
	err := row.Scan(&rt.ID, &rt.UserID, &rt.KayakID, &rt.RentalStart, &rt.RentalEnd, &rt.Passcode,
		&rt.PasscodeID, &rt.PaymentIntentID, &rt.PaymentStatus, &pickupPhoto, &returnPhoto,
		&rt.ReminderSent, &rt.CreatedOn)
	if err != nil {
		return nil, err
	}
	rt.PickupPhotoURL = pickupPhoto.String
	rt.ReturnPhotoURL = returnPhoto.String
	return rt, nil
}

func (r *rentalRepository) GetByID(ctx context.Context, id int32) (*domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE id = $1`
	rt, err := scanRental(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrRentalNotFound
	}
	if err != nil {
		return nil, err
	}
	return rt, nil
}

func (r *rentalRepository) queryRentals(ctx context.Context, query string, args ...any) ([]domain.Rental, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		rt, err := scanRental(rows)
		if err != nil {
			return nil, err
		}
		rentals = append(rentals, *rt)
	}
	return rentals, rows.Err()
}

func (r *rentalRepository) ListByUser(ctx context.Context, userID int32) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE user_id = $1 ORDER BY created_on DESC`
	rentals, err := r.queryRentals(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	return r.attachKayaks(ctx, rentals)
}

func (r *rentalRepository) ListAll(ctx context.Context) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals ORDER BY created_on DESC`
	rentals, err := r.queryRentals(ctx, query)
	if err != nil {
		return nil, err
	}
	return r.attachKayaks(ctx, rentals)
}

// ListActive returns rentals that have not been returned yet, soonest
// rental_end first.
func (r *rentalRepository) ListActive(ctx context.Context) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals
	          WHERE return_photo_url IS NULL OR return_photo_url = ''
	          ORDER BY rental_end ASC`
	rentals, err := r.queryRentals(ctx, query)
	if err != nil {
		return nil, err
	}
	return r.attachKayaks(ctx, rentals)
}

func (r *rentalRepository) ListEndingBetween(ctx context.Context, from, to time.Time) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals
	          WHERE (return_photo_url IS NULL OR return_photo_url = '')
	            AND reminder_sent = FALSE
	            AND rental_end > $1 AND rental_end <= $2`
	rentals, err := r.queryRentals(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	return r.attachKayaks(ctx, rentals)
}

// attachKayaks populates the Kayak field for rental listings.
func (r *rentalRepository) attachKayaks(ctx context.Context, rentals []domain.Rental) ([]domain.Rental, error) {
	kayakRepo := NewKayakRepository(r.db)
	cache := map[int32]*domain.Kayak{}
	for i := range rentals {
		k, ok := cache[rentals[i].KayakID]
		if !ok {
			var err error
			k, err = kayakRepo.GetByID(ctx, rentals[i].KayakID)
			if err != nil {
				if errors.Is(err, domain.ErrKayakNotFound) {
					continue
				}
				return nil, err
			}
			cache[rentals[i].KayakID] = k
		}
		rentals[i].Kayak = k
	}
	return rentals, nil
}

func (r *rentalRepository) SetPickupPhoto(ctx context.Context, id int32, url string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE rentals SET pickup_photo_url = $1 WHERE id = $2`, url, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrRentalNotFound
	}
	return nil
}

// SetReturnPhoto is the ACTIVE → RETURNED transition. The availability guard
// lives in the WHERE clause so two concurrent returns cannot both win.
func (r *rentalRepository) SetReturnPhoto(ctx context.Context, id int32, url string) (bool, error) {
	query := `UPDATE rentals SET return_photo_url = $1
	          WHERE id = $2 AND (return_photo_url IS NULL OR return_photo_url = '')`
	res, err := r.db.ExecContext(ctx, query, url, id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

func (r *rentalRepository) MarkReminderSent(ctx context.Context, id int32) error {
	_, err := r.db.ExecContext(ctx, `UPDATE rentals SET reminder_sent = TRUE WHERE id = $1`, id)
	return err
}

func (r *rentalRepository) Count(ctx context.Context) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM rentals`).Scan(&count)
	return count, err
}

func (r *rentalRepository) CountActive(ctx context.Context) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM rentals WHERE return_photo_url IS NULL OR return_photo_url = ''`).Scan(&count)
	return count, err
}

func (r *rentalRepository) CountCreatedSince(ctx context.Context, since time.Time) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM rentals WHERE created_on >= $1`, since).Scan(&count)
	return count, err
}
