// Package config provides the settings of the RSA vault: logging, the key store,
// key generation parameters and the REST server.
//
// Settings are loaded from YAML through viper, may be overridden from the environment,
// and are validated with go-playground/validator before use.
package config
