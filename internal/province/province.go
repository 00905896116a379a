// Package province maps Italian province codes to the region keys used by the
// regional surtax tables.
package province

import "strings"

// Autonomous provinces have their own regional surtax, so Trento and Bolzano
// map to dedicated keys instead of TRENTINO_ALTO_ADIGE.
var regions = map[string]string{
	"AG": "SICILIA", "AL": "PIEMONTE", "AN": "MARCHE", "AO": "VALLE_AOSTA",
	"AP": "MARCHE", "AQ": "ABRUZZO", "AR": "TOSCANA", "AT": "PIEMONTE",
	"AV": "CAMPANIA", "BA": "PUGLIA", "BG": "LOMBARDIA", "BI": "PIEMONTE",
	"BL": "VENETO", "BN": "CAMPANIA", "BO": "EMILIA_ROMAGNA", "BR": "PUGLIA",
	"BS": "LOMBARDIA", "BT": "PUGLIA", "BZ": "PROVINCIA_BOLZANO", "CA": "SARDEGNA",
	"CB": "MOLISE", "CE": "CAMPANIA", "CH": "ABRUZZO", "CI": "SARDEGNA",
	"CL": "SICILIA", "CN": "PIEMONTE", "CO": "LOMBARDIA", "CR": "LOMBARDIA",
	"CS": "CALABRIA", "CT": "SICILIA", "CZ": "CALABRIA", "EN": "SICILIA",
	"FC": "EMILIA_ROMAGNA", "FE": "EMILIA_ROMAGNA", "FG": "PUGLIA", "FI": "TOSCANA",
	"FM": "MARCHE", "FR": "LAZIO", "GE": "LIGURIA", "GO": "FRIULI_VENEZIA_GIULIA",
	"GR": "TOSCANA", "IM": "LIGURIA", "IS": "MOLISE", "KR": "CALABRIA",
	"LC": "LOMBARDIA", "LE": "PUGLIA", "LI": "TOSCANA", "LO": "LOMBARDIA",
	"LT": "LAZIO", "LU": "TOSCANA", "MB": "LOMBARDIA", "MC": "MARCHE",
	"ME": "SICILIA", "MI": "LOMBARDIA", "MN": "LOMBARDIA", "MO": "EMILIA_ROMAGNA",
	"MS": "TOSCANA", "MT": "BASILICATA", "NA": "CAMPANIA", "NO": "PIEMONTE",
	"NU": "SARDEGNA", "OG": "SARDEGNA", "OR": "SARDEGNA", "OT": "SARDEGNA",
	"PA": "SICILIA", "PC": "EMILIA_ROMAGNA", "PD": "VENETO", "PE": "ABRUZZO",
	"PG": "UMBRIA", "PI": "TOSCANA", "PN": "FRIULI_VENEZIA_GIULIA", "PO": "TOSCANA",
	"PR": "EMILIA_ROMAGNA", "PT": "TOSCANA", "PU": "MARCHE", "PV": "LOMBARDIA",
	"PZ": "BASILICATA", "RA": "EMILIA_ROMAGNA", "RC": "CALABRIA", "RE": "EMILIA_ROMAGNA",
	"RG": "SICILIA", "RI": "LAZIO", "RM": "LAZIO", "RN": "EMILIA_ROMAGNA",
	"RO": "VENETO", "SA": "CAMPANIA", "SI": "TOSCANA", "SO": "LOMBARDIA",
	"SP": "LIGURIA", "SR": "SICILIA", "SS": "SARDEGNA", "SU": "SARDEGNA",
	"SV": "LIGURIA", "TA": "PUGLIA", "TE": "ABRUZZO", "TN": "PROVINCIA_TRENTO",
	"TO": "PIEMONTE", "TP": "SICILIA", "TR": "UMBRIA", "TS": "FRIULI_VENEZIA_GIULIA",
	"TV": "VENETO", "UD": "FRIULI_VENEZIA_GIULIA", "VA": "LOMBARDIA", "VB": "PIEMONTE",
	"VC": "PIEMONTE", "VE": "VENETO", "VI": "VENETO", "VR": "VENETO",
	"VS": "SARDEGNA", "VT": "LAZIO", "VV": "CALABRIA",
}

// Region returns the region key for a province code such as "RM" or "bz".
func Region(code string) (string, bool) {
	region, ok := regions[strings.ToUpper(strings.TrimSpace(code))]
	return region, ok
}

// Normalize upper-cases and trims a province code.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
