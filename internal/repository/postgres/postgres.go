package postgres

import (
	"database/sql"

	_ "github.com/lib/pq"

	"docintake-backend/internal/repository"
)

type Store struct {
	db *sql.DB
	repository.RequestRepository
	repository.TenantRepository
	repository.CustomerRepository
	repository.EventRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                 db,
		RequestRepository:  NewRequestRepository(db),
		TenantRepository:   NewTenantRepository(db),
		CustomerRepository: NewCustomerRepository(db),
		EventRepository:    NewEventRepository(db),
	}
}
