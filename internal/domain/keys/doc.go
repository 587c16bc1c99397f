// Package keys defines the RSA key records, the vault entity that persists them,
// the error values shared across the module and the service and repository contracts
// built around them.
package keys
