// Package config loads the application configuration from environment
// variables and an optional .env file.
//
// Configuration is split into partials owned by the packages they configure
// (server, database, log, archive, livesync). Defaults are declared as
// `default:"..."` struct tags on the partial fields and registered into Viper
// through reflection, so every key is overridable through the environment
// using the uppercased, underscore-joined form of its path
// (livesync.retry_attempts -> LIVESYNC_RETRY_ATTEMPTS).
package config
