package postgres

import (
	"database/sql"

	"kayakbay-backend/internal/repository"

	_ "github.com/lib/pq"
)

// Store aggregates all repositories over one database handle.
type Store struct {
	db      *sql.DB
	Users   repository.UserRepository
	Kayaks  repository.KayakRepository
	Rentals repository.RentalRepository
	Waivers repository.WaiverRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:      db,
		Users:   NewUserRepository(db),
		Kayaks:  NewKayakRepository(db),
		Rentals: NewRentalRepository(db),
		Waivers: NewWaiverRepository(db),
	}
}
