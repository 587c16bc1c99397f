// Package persistence provides database repository implementations.
// It uses GORM to store RSA vault entries and the ciphertext blobs encrypted
// with them, on SQLite or PostgreSQL.
package persistence
