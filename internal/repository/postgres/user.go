package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"kayakbay-backend/internal/domain"
	"kayakbay-backend/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, username, email, password_hash, phone, name, waiver_signed, is_admin,
	reset_password_token, reset_password_expires, stripe_customer_id, default_payment_method_id,
	card_last4, card_brand, created_on`

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (username, email, password_hash, phone, name, waiver_signed, is_admin, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		u.Username, u.Email, u.PasswordHash, u.Phone, u.Name, u.WaiverSigned, u.IsAdmin, time.Now()).Scan(&u.ID)
}

func scanUser(row interface{ Scan(dest ...any) error }) (*domain.User, error) {
	u := &domain.User{}
	var username, phone, name, resetToken, customerID, paymentMethodID, cardLast4, cardBrand sql.NullString
	var resetExpires sql.NullTime
	err := row.Scan(&u.ID, &username, &u.Email, &u.PasswordHash, &phone, &name, &u.WaiverSigned, &u.IsAdmin,
		&resetToken, &resetExpires, &customerID, &paymentMethodID, &cardLast4, &cardBrand, &u.CreatedOn)
	if err != nil {
		return nil, err
	}
	u.Username = username.String
	u.Phone = phone.String
	u.Name = name.String
	u.ResetPasswordToken = resetToken.String
	if resetExpires.Valid {
		t := resetExpires.Time
		u.ResetPasswordExpires = &t
	}
	u.StripeCustomerID = customerID.String
	u.DefaultPaymentMethodID = paymentMethodID.String
	u.CardLast4 = cardLast4.String
	u.CardBrand = cardBrand.String
	return u, nil
}

func (r *userRepository) getBy(ctx context.Context, where string, arg any) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + where
	u, err := scanUser(r.db.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	return r.getBy(ctx, `id = $1`, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getBy(ctx, `email = $1`, email)
}

func (r *userRepository) GetByResetToken(ctx context.Context, token string) (*domain.User, error) {
	return r.getBy(ctx, `reset_password_token = $1`, token)
}

func (r *userRepository) Update(ctx context.Context, u *domain.User) error {
	query := `UPDATE users SET username=$1, email=$2, password_hash=$3, phone=$4, name=$5,
	              waiver_signed=$6, is_admin=$7, reset_password_token=$8, reset_password_expires=$9,
	              stripe_customer_id=$10, default_payment_method_id=$11, card_last4=$12, card_brand=$13
	          WHERE id=$14`
	res, err := r.db.ExecContext(ctx, query,
		u.Username, u.Email, u.PasswordHash, u.Phone, u.Name,
		u.WaiverSigned, u.IsAdmin, nullString(u.ResetPasswordToken), u.ResetPasswordExpires,
		nullString(u.StripeCustomerID), nullString(u.DefaultPaymentMethodID),
		nullString(u.CardLast4), nullString(u.CardBrand), u.ID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_on DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (r *userRepository) Count(ctx context.Context) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM users`).Scan(&count)
	return count, err
}

func (r *userRepository) ClearExpiredResetTokens(ctx context.Context, now time.Time) (int64, error) {
	query := `UPDATE users SET reset_password_token = NULL, reset_password_expires = NULL
	          WHERE reset_password_token IS NOT NULL AND reset_password_expires < $1`
	res, err := r.db.ExecContext(ctx, query, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
