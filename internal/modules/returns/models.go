package returns

import "github.com/shopspring/decimal"

// CodesRequest asks for return rates of individual instruments between
// two trading days.
type CodesRequest struct {
	Codes     []string `json:"thsCodeList" validate:"required,min=1"`
	StartDate string   `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate   string   `json:"endDate" validate:"required,datetime=2006-01-02"`
}

// SectorsRequest asks for per-sector average return rates between two
// trading days. An empty Sectors list means every known instrument.
type SectorsRequest struct {
	Sectors        []string `json:"sectorList"`
	StartDate      string   `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate        string   `json:"endDate" validate:"required,datetime=2006-01-02"`
	IncludeDetails bool     `json:"includeDetails"`
}

// CodeResult is the per-instrument outcome of a codes query. Either the
// numeric fields or Error is populated, never both.
type CodeResult struct {
	ThsCode           string           `json:"thsCode"`
	ChineseName       string           `json:"chineseName,omitempty"`
	Sector            string           `json:"sector,omitempty"`
	StartDate         string           `json:"startDate,omitempty"`
	EndDate           string           `json:"endDate,omitempty"`
	StartAdjustedNav  *decimal.Decimal `json:"startAdjustedNav,omitempty"`
	EndAdjustedNav    *decimal.Decimal `json:"endAdjustedNav,omitempty"`
	ReturnRate        *decimal.Decimal `json:"returnRate,omitempty"`
	ReturnRatePercent string           `json:"returnRatePercent,omitempty"`
	Error             string           `json:"error,omitempty"`
}

// CodesResponse aggregates per-instrument results with outcome counts.
type CodesResponse struct {
	Total        int          `json:"total"`
	SuccessCount int          `json:"successCount"`
	FailCount    int          `json:"failCount"`
	Results      []CodeResult `json:"results"`
}

// SectorResult is the aggregated return of one sector, averaged over
// its instruments that had usable NAV data on both dates.
type SectorResult struct {
	Sector           string           `json:"sector"`
	Description      string           `json:"description"`
	Count            int              `json:"count"`
	ValidCount       int              `json:"validCount"`
	AvgReturnRate    *decimal.Decimal `json:"avgReturnRate"`
	AvgReturnRatePct string           `json:"avgReturnRatePercent"`
}

// SectorsResponse carries per-sector averages sorted best-first.
type SectorsResponse struct {
	StartDate    string         `json:"startDate"`
	EndDate      string         `json:"endDate"`
	TotalSectors int            `json:"totalSectors"`
	TotalEtfs    int            `json:"totalEtfs"`
	ValidEtfs    int            `json:"validEtfs"`
	Sectors      []SectorResult `json:"sectors"`
	Details      []CodeResult   `json:"details,omitempty"`
}

// EmptySectorsResponse is the canonical response when the requested
// sectors resolve to no instruments at all.
func EmptySectorsResponse(startDate, endDate string) *SectorsResponse {
	return &SectorsResponse{
		StartDate: startDate,
		EndDate:   endDate,
		Sectors:   []SectorResult{},
	}
}

// SectorInfo describes one selectable sector for client pickers.
type SectorInfo struct {
	CID         int64  `json:"cid"`
	Sector      string `json:"sector"`
	Description string `json:"description"`
	SortOrder   int    `json:"sortOrder"`
	EtfCount    int    `json:"etfCount"`
}

// SectorListResponse lists the active sectors.
type SectorListResponse struct {
	Total   int          `json:"total"`
	Sectors []SectorInfo `json:"sectors"`
}

// EtfDetail is the per-instrument breakdown inside one history day.
type EtfDetail struct {
	ThsCode           string           `json:"thsCode"`
	ChineseName       string           `json:"chineseName"`
	StartNav          *decimal.Decimal `json:"startNav"`
	EndNav            *decimal.Decimal `json:"endNav"`
	ReturnRate        *decimal.Decimal `json:"returnRate"`
	ReturnRatePercent string           `json:"returnRatePercent"`
}

// DailyReturn is the sector-average return of one consecutive
// trading-day pair inside a history window.
type DailyReturn struct {
	StartDate        string           `json:"startDate"`
	EndDate          string           `json:"endDate"`
	ValidEtfCount    int              `json:"validEtfCount"`
	AvgReturnRate    *decimal.Decimal `json:"avgReturnRate,omitempty"`
	AvgReturnRatePct string           `json:"avgReturnRatePercent"`
	Error            string           `json:"error,omitempty"`
	EtfDetails       []EtfDetail      `json:"etfDetails,omitempty"`
}

// HistoryResponse is the single-sector return-rate history.
type HistoryResponse struct {
	Sector            string        `json:"sector"`
	SectorDescription string        `json:"sectorDescription"`
	QueryDate         string        `json:"queryDate"`
	ActualEndDate     string        `json:"actualEndDate"`
	RequestedCount    int           `json:"requestedCount"`
	ActualCount       int           `json:"actualCount"`
	TotalEtfs         int           `json:"totalEtfs"`
	ReturnRateHistory []DailyReturn `json:"returnRateHistory"`
}

// SectorHistory is one sector's entry in a batch history response.
// Error is set, with an empty history, when the sector itself failed.
type SectorHistory struct {
	SectorDescription string        `json:"sectorDescription"`
	QueryDate         string        `json:"queryDate"`
	ActualEndDate     string        `json:"actualEndDate,omitempty"`
	RequestedCount    int           `json:"requestedCount"`
	ActualCount       int           `json:"actualCount"`
	TotalEtfs         int           `json:"totalEtfs"`
	ReturnRateHistory []DailyReturn `json:"returnRateHistory"`
	Error             string        `json:"error,omitempty"`
}

// PerformanceInfo reports how long a batch history query took. The
// per-phase breakdown is attached only when the caller asked for it.
type PerformanceInfo struct {
	ResponseTimeMs int64            `json:"responseTimeMs"`
	SectorsQueried int              `json:"sectorsQueried"`
	TradingDays    int              `json:"tradingDays"`
	DetailedTiming map[string]int64 `json:"detailedTiming,omitempty"`
}

// BatchHistoryResponse is the multi-sector return-rate history keyed by
// sector name.
type BatchHistoryResponse struct {
	SectorsCount     int                      `json:"sectorsCount"`
	QueryDate        string                   `json:"queryDate"`
	TradingDaysCount int                      `json:"tradingDaysCount"`
	Results          map[string]SectorHistory `json:"results"`
	Performance      *PerformanceInfo         `json:"performance,omitempty"`
}
