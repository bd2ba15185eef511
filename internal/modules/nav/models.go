// Package nav provides access to the daily net-asset-value records.
// Records are immutable reference data keyed by (instrument code, date);
// the application only ever reads them.
package nav

// Record is one instrument's NAV snapshot for one date.
// AdjustedNav is the dividend/split-adjusted value and is the only field
// return computations use.
type Record struct {
	Code           string  `json:"thsCode"`
	Date           string  `json:"time"` // ISO YYYY-MM-DD
	NetAssetValue  float64 `json:"netAssetValue"`
	AdjustedNav    float64 `json:"adjustedNav"`
	AccumulatedNav float64 `json:"accumulatedNav"`
	Premium        float64 `json:"premium"`
	PremiumRatio   float64 `json:"premiumRatio"`
}
