// Package database manages the MySQL connection used by the live data
// repository.
//
// It wraps GORM connection setup with sane pool limits, DSN-level timeouts and
// an initial ping so callers fail fast when the database is unreachable. GORM's
// own logging is silenced; the application's zap logger owns all output.
package database
