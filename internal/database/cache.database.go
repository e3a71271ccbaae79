package database

import (
	"fmt"

	"skimmer/config"

	"github.com/valkey-io/valkey-go"
)

// Valkey database index organization. Each index gives a logical separation
// between cache categories so a flush of one does not disturb the other.
const (
	// GENERAL_CACHE_INDEX (DB 0) - general purpose caching
	GENERAL_CACHE_INDEX = iota

	// CUSTOMER_CACHE_INDEX (DB 1) - customer records cached by id
	CUSTOMER_CACHE_INDEX
)

func (s *DB) initializeCacheDB(config config.Config) error {
	log := s.log.Function("initializeCacheDB")
	log.Info("initializing cache database")

	address := config.DatabaseCacheAddress
	port := config.DatabaseCachePort
	if address == "" || port == 0 {
		return log.Errorf("failed to initialize cache database", "address or port is empty")
	}

	var cacheDB Cache

	var err error
	cacheDB.General, err = valkey.NewClient(
		valkey.ClientOption{
			InitAddress: []string{fmt.Sprintf("%s:%d", address, port)},
			SelectDB:    GENERAL_CACHE_INDEX,
		},
	)
	if err != nil {
		return log.Err("failed to create general valkey client", err)
	}

	cacheDB.Customer, err = valkey.NewClient(
		valkey.ClientOption{
			InitAddress: []string{fmt.Sprintf("%s:%d", address, port)},
			SelectDB:    CUSTOMER_CACHE_INDEX,
		},
	)
	if err != nil {
		return log.Err("failed to create customer valkey client", err)
	}

	s.Cache = cacheDB

	log.Info("cache database initialized")
	return nil
}
