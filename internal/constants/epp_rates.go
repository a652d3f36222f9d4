package constants

// EPP (easy payment plan) financing rates, percent of the charged amount,
// keyed by issuer bank and tenure in months. Values supplied by accounts;
// a (bank, tenure) pair missing here means the plan cannot be costed and
// the backfill skips the row.
var eppRates = map[string]map[int]float64{
	"Maybank": {
		6:  2.80,
		12: 5.00,
		24: 9.00,
	},
	"Public Bank": {
		6:  3.00,
		12: 5.50,
		24: 9.50,
	},
	"CIMB": {
		6:  3.20,
		12: 5.80,
	},
	"RHB": {
		6:  3.00,
		12: 5.50,
	},
	"Hong Leong": {
		6:  3.50,
		12: 6.00,
	},
	"AmBank": {
		12: 5.00,
	},
}

// EPPRate looks up the financing rate for a bank and tenure.
func EPPRate(bank string, months int) (float64, bool) {
	tenures, ok := eppRates[bank]
	if !ok {
		return 0, false
	}
	rate, ok := tenures[months]
	return rate, ok
}
