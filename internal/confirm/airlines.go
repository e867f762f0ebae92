package confirm

import "fmt"

var airlineNames = map[string]string{
	"AA": "American Airlines",
	"AF": "Air France",
	"AS": "Alaska Airlines",
	"B6": "JetBlue Airways",
	"BA": "British Airways",
	"DL": "Delta Air Lines",
	"EK": "Emirates",
	"IB": "Iberia",
	"KL": "KLM",
	"LH": "Lufthansa",
	"QF": "Qantas",
	"SU": "Aeroflot",
	"UA": "United Airlines",
	"WN": "Southwest Airlines",
}

// AirlineName maps an IATA carrier code to a display label, falling back to
// a generic label for unknown carriers.
func AirlineName(code string) string {
	if name, ok := airlineNames[code]; ok {
		return name
	}
	return fmt.Sprintf("Carrier %s", code)
}
