// Package config loads configuration from YAML files, .env files, and
// environment variables using viper.
//
// Values are merged in order: config file, .env file, process environment.
// Environment variables use the FIXTURES_ prefix with underscores for
// nesting, e.g. FIXTURES_LOAD_ON_STARTUP=true.
package config
