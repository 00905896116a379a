// Package config loads, normalizes, and validates converter configuration data.
package config
