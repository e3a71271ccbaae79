package repositories

import (
	"skimmer/internal/database"
)

type Repository struct {
	Customer         CustomerRepository
	Service          ServiceRepository
	RecurringService RecurringServiceRepository
}

func New(db database.DB) Repository {
	return Repository{
		Customer:         NewCustomerRepository(db), // customer repo caches reads in valkey
		Service:          NewServiceRepository(db),
		RecurringService: NewRecurringServiceRepository(db),
	}
}
