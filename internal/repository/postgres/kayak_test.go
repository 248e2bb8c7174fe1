package postgres_test

import (
	"context"
	"testing"
	"time"

	"kayakbay-backend/internal/domain"
	"kayakbay-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func kayakRows(ids ...int32) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "name", "lock_id", "is_available", "location", "created_on"})
	for _, id := range ids {
		rows.AddRow(id, "Blue Heron", int64(42), false, "Dock A", time.Now())
	}
	return rows
}

func TestKayakRepository_ClaimAvailable(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewKayakRepository(db)
	ctx := context.Background()

	t.Run("ClaimsUpToLimit", func(t *testing.T) {
		mock.ExpectQuery("UPDATE kayaks SET is_available = FALSE").
			WithArgs(int32(2)).
			WillReturnRows(kayakRows(3, 5))

		claimed, err := repo.ClaimAvailable(ctx, 2)
		assert.NoError(t, err)
		assert.Len(t, claimed, 2)
		assert.Equal(t, int32(3), claimed[0].ID)
		assert.Equal(t, int32(5), claimed[1].ID)
	})

	t.Run("ShortfallReturnsFewerRows", func(t *testing.T) {
		mock.ExpectQuery("UPDATE kayaks SET is_available = FALSE").
			WithArgs(int32(3)).
			WillReturnRows(kayakRows(3))

		claimed, err := repo.ClaimAvailable(ctx, 3)
		assert.NoError(t, err)
		assert.Len(t, claimed, 1)
	})

	t.Run("NothingAvailable", func(t *testing.T) {
		mock.ExpectQuery("UPDATE kayaks SET is_available = FALSE").
			WithArgs(int32(1)).
			WillReturnRows(kayakRows())

		claimed, err := repo.ClaimAvailable(ctx, 1)
		assert.NoError(t, err)
		assert.Empty(t, claimed)
	})
}

func TestKayakRepository_Release(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewKayakRepository(db)

	mock.ExpectExec("UPDATE kayaks SET is_available = TRUE").
		WithArgs(int32(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Release(context.Background(), 3))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKayakRepository_SetAvailability(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewKayakRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE kayaks SET is_available =").
			WithArgs(false, int32(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.SetAvailability(ctx, 3, false))
	})

	t.Run("UnknownKayak", func(t *testing.T) {
		mock.ExpectExec("UPDATE kayaks SET is_available =").
			WithArgs(true, int32(99)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.SetAvailability(ctx, 99, true)
		assert.ErrorIs(t, err, domain.ErrKayakNotFound)
	})
}

func TestKayakRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewKayakRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM kayaks WHERE id = \\$1").
			WithArgs(int32(3)).
			WillReturnRows(kayakRows(3))

		k, err := repo.GetByID(ctx, 3)
		assert.NoError(t, err)
		assert.Equal(t, int64(42), k.LockID)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM kayaks WHERE id = \\$1").
			WithArgs(int32(99)).
			WillReturnRows(kayakRows())

		_, err := repo.GetByID(ctx, 99)
		assert.ErrorIs(t, err, domain.ErrKayakNotFound)
	})
}
