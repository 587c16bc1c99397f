// Package blobs defines the ciphertext blob entity stored by the vault and the
// service and repository contracts around it.
package blobs
