// Package cryptoalg defines the contracts of the RSA protocol engine and of the
// block stream codec built on top of it.
package cryptoalg
