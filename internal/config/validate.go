package config

import (
	"errors"
	"fmt"
	"regexp"
	"unicode/utf8"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateInput(); err != nil {
		return err
	}
	if err := c.validateColumns(); err != nil {
		return err
	}
	if err := c.validateOutput(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateInput() error {
	if utf8.RuneCountInString(c.Input.Delimiter) != 1 {
		return fmt.Errorf("input.delimiter must be a single character, got %q", c.Input.Delimiter)
	}
	switch c.DelimiterRune() {
	case '"', '\r', '\n', utf8.RuneError:
		return fmt.Errorf("input.delimiter %q is not allowed", c.Input.Delimiter)
	}
	switch c.Input.Encoding {
	case "utf-8", "windows-1252", "iso-8859-1":
	default:
		return fmt.Errorf("input.encoding must be utf-8, windows-1252, or iso-8859-1, got %q", c.Input.Encoding)
	}
	return nil
}

func (c *Config) validateColumns() error {
	if c.Columns.Slots < 1 || c.Columns.Slots > maxSlots {
		return fmt.Errorf("columns.slots must be between 1 and %d", maxSlots)
	}
	if c.Columns.RatePrefix == c.Columns.DescriptionPrefix {
		return errors.New("columns.rate_prefix and columns.description_prefix must differ")
	}
	return nil
}

func (c *Config) validateOutput() error {
	switch c.Output.Format {
	case "auto", "json", "ts":
	default:
		return fmt.Errorf("output.format must be auto, json, or ts, got %q", c.Output.Format)
	}
	if c.Output.DefaultRate < 0 || c.Output.DefaultRate > 1 {
		return errors.New("output.default_rate must be a ratio between 0 and 1")
	}
	for key, name := range map[string]string{
		"output.const_name":         c.Output.ConstName,
		"output.default_const_name": c.Output.DefaultConstName,
		"output.type_name":          c.Output.TypeName,
	} {
		if !identifierPattern.MatchString(name) {
			return fmt.Errorf("%s must be a valid identifier, got %q", key, name)
		}
	}
	if c.Output.ConstName == c.Output.DefaultConstName {
		return errors.New("output.const_name and output.default_const_name must differ")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
}
