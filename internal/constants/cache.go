package constants

import "time"

const (
	CustomerCachePrefix = "customer:" // Single cache entry per customer ID
	CustomerCacheExpiry = 24 * time.Hour
)
