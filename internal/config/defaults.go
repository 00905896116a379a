package config

const (
	defaultConfigPath        = "~/.config/addizionali/config.toml"
	projectConfigName        = "addizionali.toml"
	defaultDelimiter         = ";"
	defaultEncoding          = "utf-8"
	defaultRatePrefix        = "ALIQUOTA"
	defaultDescriptionPrefix = "FASCIA"
	defaultSlots             = 12
	defaultOutputFormat      = "auto"
	defaultRate              = 0.008
	defaultConstName         = "ADDIZIONALI_COMUNALI"
	defaultDefaultConstName  = "ADDIZIONALE_DEFAULT"
	defaultTypeName          = "AddizionaleComunale"
	defaultTypeImport        = "../types"
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
	maxSlots                 = 50
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Input: Input{
			Delimiter: defaultDelimiter,
			Encoding:  defaultEncoding,
		},
		Columns: Columns{
			Code:              []string{"CODICE_CATASTALE", "CODICE"},
			Name:              []string{"COMUNE"},
			Province:          []string{"PR", "SIGLA_PROVINCIA", "PROVINCIA"},
			Exemption:         []string{"IMPORTO_ESENTE"},
			RatePrefix:        defaultRatePrefix,
			DescriptionPrefix: defaultDescriptionPrefix,
			Slots:             defaultSlots,
		},
		Output: Output{
			Format:           defaultOutputFormat,
			IncludeLocale:    true,
			DefaultRate:      defaultRate,
			ConstName:        defaultConstName,
			DefaultConstName: defaultDefaultConstName,
			TypeName:         defaultTypeName,
			TypeImport:       defaultTypeImport,
			Backup:           true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
