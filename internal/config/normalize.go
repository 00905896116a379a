package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeInput()
	c.normalizeColumns()
	if err := c.normalizeOutput(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeInput() {
	if c.Input.Delimiter == "" {
		c.Input.Delimiter = defaultDelimiter
	}
	if c.Input.Delimiter == `\t` {
		c.Input.Delimiter = "\t"
	}
	c.Input.Encoding = strings.ToLower(strings.TrimSpace(c.Input.Encoding))
	switch c.Input.Encoding {
	case "", "utf8":
		c.Input.Encoding = defaultEncoding
	case "latin1", "latin-1":
		c.Input.Encoding = "iso-8859-1"
	case "cp1252":
		c.Input.Encoding = "windows-1252"
	}
	c.Input.Sheet = strings.TrimSpace(c.Input.Sheet)
}

func (c *Config) normalizeColumns() {
	defaults := Default().Columns
	c.Columns.Code = normalizeAliases(c.Columns.Code, defaults.Code)
	c.Columns.Name = normalizeAliases(c.Columns.Name, defaults.Name)
	c.Columns.Province = normalizeAliases(c.Columns.Province, defaults.Province)
	c.Columns.Exemption = normalizeAliases(c.Columns.Exemption, defaults.Exemption)
	c.Columns.RatePrefix = strings.ToUpper(strings.TrimSpace(c.Columns.RatePrefix))
	if c.Columns.RatePrefix == "" {
		c.Columns.RatePrefix = defaultRatePrefix
	}
	c.Columns.DescriptionPrefix = strings.ToUpper(strings.TrimSpace(c.Columns.DescriptionPrefix))
	if c.Columns.DescriptionPrefix == "" {
		c.Columns.DescriptionPrefix = defaultDescriptionPrefix
	}
	if c.Columns.Slots == 0 {
		c.Columns.Slots = defaultSlots
	}
}

func normalizeAliases(values, fallback []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		normalized := strings.ToUpper(strings.TrimSpace(value))
		if normalized == "" {
			continue
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		out = append(out, normalized)
	}
	if len(out) == 0 {
		return append([]string(nil), fallback...)
	}
	return out
}

func (c *Config) normalizeOutput() error {
	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	switch c.Output.Format {
	case "":
		c.Output.Format = defaultOutputFormat
	case "typescript":
		c.Output.Format = "ts"
	}
	if value, ok := os.LookupEnv("ADDIZIONALI_DEFAULT_RATE"); ok && strings.TrimSpace(value) != "" {
		rate, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return fmt.Errorf("ADDIZIONALI_DEFAULT_RATE: %w", err)
		}
		c.Output.DefaultRate = rate
	}
	c.Output.ConstName = strings.TrimSpace(c.Output.ConstName)
	if c.Output.ConstName == "" {
		c.Output.ConstName = defaultConstName
	}
	c.Output.DefaultConstName = strings.TrimSpace(c.Output.DefaultConstName)
	if c.Output.DefaultConstName == "" {
		c.Output.DefaultConstName = defaultDefaultConstName
	}
	c.Output.TypeName = strings.TrimSpace(c.Output.TypeName)
	if c.Output.TypeName == "" {
		c.Output.TypeName = defaultTypeName
	}
	c.Output.TypeImport = strings.TrimSpace(c.Output.TypeImport)
	return nil
}

func (c *Config) normalizeLogging() {
	if value, ok := os.LookupEnv("ADDIZIONALI_LOG_FORMAT"); ok && strings.TrimSpace(value) != "" {
		c.Logging.Format = value
	}
	if value, ok := os.LookupEnv("ADDIZIONALI_LOG_LEVEL"); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = value
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
