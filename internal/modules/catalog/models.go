// Package catalog provides the instrument and sector reference catalogs.
// Both are immutable reference data for the rest of the application.
package catalog

// Instrument is one ETF in the catalog, identified by its exchange code.
type Instrument struct {
	Code     string `json:"thsCode"`
	Name     string `json:"chineseName"`
	StartDay string `json:"startDay,omitempty"`
	EndDay   string `json:"endDay,omitempty"`
	Sector   string `json:"sector"`
}

// Sector is a named grouping of instruments with display metadata.
// Instruments reference sectors by name, not by id.
type Sector struct {
	CID         int64  `json:"cid"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	SortOrder   int    `json:"sortOrder"`
	Active      bool   `json:"active"`
	ItemCount   int    `json:"itemCount"`
}
