package returns

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/PersonNoName/NextPanel/internal/apperrors"
	"github.com/PersonNoName/NextPanel/internal/modules/calendar"
	"github.com/PersonNoName/NextPanel/internal/modules/catalog"
	"github.com/PersonNoName/NextPanel/internal/modules/nav"
	"github.com/PersonNoName/NextPanel/internal/utils"
)

// Service computes return rates from adjusted NAV data. Single-pair
// queries work per instrument; sector queries average over every
// instrument in the sector; history queries walk a window of
// consecutive trading days resolved by the calendar service.
type Service struct {
	calendar    *calendar.Service
	instruments *catalog.InstrumentRepository
	sectors     *catalog.SectorRepository
	navs        *nav.Repository
	log         zerolog.Logger
}

// NewService creates a return-rate service.
func NewService(cal *calendar.Service, instruments *catalog.InstrumentRepository, sectors *catalog.SectorRepository, navs *nav.Repository, log zerolog.Logger) *Service {
	return &Service{
		calendar:    cal,
		instruments: instruments,
		sectors:     sectors,
		navs:        navs,
		log:         log.With().Str("service", "returns").Logger(),
	}
}

// ByCodes computes the return rate of each requested instrument between
// the two dates. A failing instrument becomes an error entry in the
// results; it never aborts the batch.
func (s *Service) ByCodes(req *CodesRequest) (*CodesResponse, error) {
	codes := dedupe(req.Codes)
	if len(codes) == 0 {
		return nil, apperrors.BadRequest("codes list must not be empty")
	}

	resp := &CodesResponse{
		Total:   len(codes),
		Results: make([]CodeResult, 0, len(codes)),
	}
	for _, code := range codes {
		res := s.codeResult(code, req.StartDate, req.EndDate)
		if res.Error == "" {
			resp.SuccessCount++
		} else {
			resp.FailCount++
		}
		resp.Results = append(resp.Results, res)
	}

	s.log.Debug().
		Int("total", resp.Total).
		Int("success", resp.SuccessCount).
		Int("fail", resp.FailCount).
		Msg("Computed return rates by codes")
	return resp, nil
}

// codeResult computes one instrument's return rate. Any failure,
// including a panic, is captured as the entry's Error field.
func (s *Service) codeResult(code, startDate, endDate string) (res CodeResult) {
	res = CodeResult{ThsCode: code}
	defer func() {
		if p := recover(); p != nil {
			s.log.Error().Str("code", code).Interface("panic", p).Msg("Return rate computation panicked")
			res = CodeResult{ThsCode: code, Error: fmt.Sprintf("unexpected failure: %v", p)}
		}
	}()

	start, err := s.navs.FindByCodeAndDate(code, startDate)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	if start == nil {
		res.Error = fmt.Sprintf("no NAV data found for %s", startDate)
		return res
	}
	end, err := s.navs.FindByCodeAndDate(code, endDate)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	if end == nil {
		res.Error = fmt.Sprintf("no NAV data found for %s", endDate)
		return res
	}
	if start.AdjustedNav <= 0 {
		res.Error = fmt.Sprintf("start NAV is not positive on %s", startDate)
		return res
	}

	res.ChineseName = "unknown name"
	res.Sector = "unknown sector"
	inst, err := s.instruments.FindByCode(code)
	if err != nil {
		s.log.Warn().Err(err).Str("code", code).Msg("Failed to load instrument metadata")
	} else if inst != nil {
		res.ChineseName = inst.Name
		res.Sector = inst.Sector
	}

	rate := rateOf(start.AdjustedNav, end.AdjustedNav)
	res.StartDate = startDate
	res.EndDate = endDate
	res.StartAdjustedNav = ptr(decimal.NewFromFloat(start.AdjustedNav))
	res.EndAdjustedNav = ptr(decimal.NewFromFloat(end.AdjustedNav))
	res.ReturnRate = ptr(rate)
	res.ReturnRatePercent = percentOf(rate)
	return res
}

// BySectors computes the average return rate per sector between two
// dates. An empty sector list means every known instrument. Instruments
// lacking a usable NAV on either date are skipped entirely, and a
// sector where every instrument was skipped does not appear at all.
func (s *Service) BySectors(req *SectorsRequest) (*SectorsResponse, error) {
	sectors := dedupe(req.Sectors)

	var (
		instruments []catalog.Instrument
		err         error
	)
	if len(sectors) == 0 {
		instruments, err = s.instruments.FindAll()
	} else {
		instruments, err = s.instruments.FindBySectors(sectors)
	}
	if err != nil {
		return nil, fmt.Errorf("loading instruments: %w", err)
	}
	if len(instruments) == 0 {
		return EmptySectorsResponse(req.StartDate, req.EndDate), nil
	}

	codes := make([]string, len(instruments))
	for i, inst := range instruments {
		codes[i] = inst.Code
	}
	startNavs, err := s.navIndexForDate(codes, req.StartDate)
	if err != nil {
		return nil, err
	}
	endNavs, err := s.navIndexForDate(codes, req.EndDate)
	if err != nil {
		return nil, err
	}

	type accumulator struct {
		count int
		valid int
		sum   decimal.Decimal
	}
	accs := make(map[string]*accumulator)
	order := make([]string, 0)

	resp := &SectorsResponse{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		TotalEtfs: len(instruments),
	}
	for _, inst := range instruments {
		startNav, okStart := startNavs[inst.Code]
		endNav, okEnd := endNavs[inst.Code]
		if !okStart || !okEnd || startNav <= 0 {
			continue
		}

		// A sector only materializes once it has a computable result.
		acc, ok := accs[inst.Sector]
		if !ok {
			acc = &accumulator{}
			accs[inst.Sector] = acc
			order = append(order, inst.Sector)
		}

		rate := rateOf(startNav, endNav)
		acc.sum = acc.sum.Add(rate)
		acc.count++
		acc.valid++
		resp.ValidEtfs++

		if req.IncludeDetails {
			resp.Details = append(resp.Details, CodeResult{
				ThsCode:           inst.Code,
				ChineseName:       inst.Name,
				Sector:            inst.Sector,
				StartDate:         req.StartDate,
				EndDate:           req.EndDate,
				StartAdjustedNav:  ptr(decimal.NewFromFloat(startNav)),
				EndAdjustedNav:    ptr(decimal.NewFromFloat(endNav)),
				ReturnRate:        ptr(rate),
				ReturnRatePercent: percentOf(rate),
			})
		}
	}

	descriptions, err := s.descriptionsFor(order)
	if err != nil {
		return nil, err
	}

	resp.Sectors = make([]SectorResult, 0, len(order))
	for _, name := range order {
		acc := accs[name]
		mean := meanOf(acc.sum, acc.valid)
		resp.Sectors = append(resp.Sectors, SectorResult{
			Sector:           name,
			Description:      descriptions[name],
			Count:            acc.count,
			ValidCount:       acc.valid,
			AvgReturnRate:    ptr(mean),
			AvgReturnRatePct: percentOf(mean),
		})
	}
	sortSectorResults(resp.Sectors)
	resp.TotalSectors = len(resp.Sectors)

	return resp, nil
}

// AvailableSectors lists the active sectors in display order.
func (s *Service) AvailableSectors() (*SectorListResponse, error) {
	active, err := s.sectors.FindAllActive()
	if err != nil {
		return nil, fmt.Errorf("loading sectors: %w", err)
	}

	resp := &SectorListResponse{
		Total:   len(active),
		Sectors: make([]SectorInfo, 0, len(active)),
	}
	for _, sec := range active {
		resp.Sectors = append(resp.Sectors, SectorInfo{
			CID:         sec.CID,
			Sector:      sec.Name,
			Description: sec.Description,
			SortOrder:   sec.SortOrder,
			EtfCount:    sec.ItemCount,
		})
	}
	return resp, nil
}

// SectorHistory computes one sector's average day-over-day return for
// the n most recent trading days on or before the given date, newest
// first. Resolving the window needs n+1 trading days.
func (s *Service) SectorHistory(sector, date string, n int, includeDetails bool) (*HistoryResponse, error) {
	if strings.TrimSpace(sector) == "" {
		return nil, apperrors.BadRequest("sector must not be empty")
	}
	if n <= 0 {
		return nil, apperrors.BadRequest("count must be positive, got: %d", n)
	}

	days, err := s.calendar.ResolveWindow(date, n+1)
	if err != nil {
		return nil, err
	}

	instruments, err := s.instruments.FindBySector(sector)
	if err != nil {
		return nil, fmt.Errorf("loading instruments: %w", err)
	}
	if len(instruments) == 0 {
		return nil, apperrors.BadRequest("no instruments found for sector: %s", sector)
	}

	index, err := s.navIndexForDays(instruments, days)
	if err != nil {
		return nil, err
	}
	history := buildDailyReturns(instruments, days, index, includeDetails)

	descriptions, err := s.descriptionsFor([]string{sector})
	if err != nil {
		return nil, err
	}

	return &HistoryResponse{
		Sector:            sector,
		SectorDescription: descriptions[sector],
		QueryDate:         date,
		ActualEndDate:     days[len(days)-1].ISODate(),
		RequestedCount:    n,
		ActualCount:       len(history),
		TotalEtfs:         len(instruments),
		ReturnRateHistory: history,
	}, nil
}

// BatchHistory computes the return-rate history of several sectors in
// one pass, sharing the trading-day window and a single NAV fetch. A
// sector with no instruments becomes an error entry; the batch fails
// only when no requested sector has any.
func (s *Service) BatchHistory(sectors []string, date string, n int, includeDetails, includeTiming bool) (*BatchHistoryResponse, error) {
	defer utils.OperationTimer("batch_history", s.log)()
	began := time.Now()

	names := dedupe(sectors)
	if len(names) == 0 {
		return nil, apperrors.BadRequest("sectors list must not be empty")
	}
	if n <= 0 {
		return nil, apperrors.BadRequest("count must be positive, got: %d", n)
	}

	timing := make(map[string]int64)

	phase := time.Now()
	days, err := s.calendar.ResolveWindow(date, n+1)
	if err != nil {
		return nil, err
	}
	timing["calendar_query_ms"] = time.Since(phase).Milliseconds()

	phase = time.Now()
	all, err := s.instruments.FindBySectors(names)
	if err != nil {
		return nil, fmt.Errorf("loading instruments: %w", err)
	}
	if len(all) == 0 {
		return nil, apperrors.BadRequest("no instruments found for sectors: %s", strings.Join(names, ", "))
	}
	bySector := make(map[string][]catalog.Instrument)
	for _, inst := range all {
		bySector[inst.Sector] = append(bySector[inst.Sector], inst)
	}
	descriptions, err := s.descriptionsFor(names)
	if err != nil {
		return nil, err
	}
	timing["etf_info_query_ms"] = time.Since(phase).Milliseconds()

	phase = time.Now()
	index, err := s.navIndexForDays(all, days)
	if err != nil {
		return nil, err
	}
	timing["netasset_query_ms"] = time.Since(phase).Milliseconds()

	phase = time.Now()
	results := make(map[string]SectorHistory, len(names))
	for _, name := range names {
		entry := SectorHistory{
			SectorDescription: descriptions[name],
			QueryDate:         date,
			RequestedCount:    n,
			ReturnRateHistory: []DailyReturn{},
		}
		instruments := bySector[name]
		if len(instruments) == 0 {
			entry.Error = fmt.Sprintf("no instruments found for sector: %s", name)
			results[name] = entry
			continue
		}

		history := buildDailyReturns(instruments, days, index, includeDetails)
		entry.ActualEndDate = days[len(days)-1].ISODate()
		entry.ActualCount = len(history)
		entry.TotalEtfs = len(instruments)
		entry.ReturnRateHistory = history
		results[name] = entry
	}
	timing["calculation_ms"] = time.Since(phase).Milliseconds()

	perf := &PerformanceInfo{
		ResponseTimeMs: time.Since(began).Milliseconds(),
		SectorsQueried: len(names),
		TradingDays:    n,
	}
	if includeTiming {
		perf.DetailedTiming = timing
	}

	s.log.Debug().
		Int("sectors", len(names)).
		Int("instruments", len(all)).
		Int64("elapsed_ms", perf.ResponseTimeMs).
		Msg("Computed batch return-rate history")

	return &BatchHistoryResponse{
		SectorsCount:     len(names),
		QueryDate:        date,
		TradingDaysCount: len(days),
		Results:          results,
		Performance:      perf,
	}, nil
}

// navIndexForDate fetches the adjusted NAVs of the given codes on one
// date, keyed by code. Records without a positive adjusted NAV are
// still indexed; validity is the caller's call.
func (s *Service) navIndexForDate(codes []string, date string) (map[string]float64, error) {
	records, err := s.navs.FindByCodesAndDate(codes, date)
	if err != nil {
		return nil, fmt.Errorf("loading NAV records: %w", err)
	}
	index := make(map[string]float64, len(records))
	for _, rec := range records {
		index[rec.Code] = rec.AdjustedNav
	}
	return index, nil
}

// navIndexForDays fetches every (instrument, day) adjusted NAV of the
// window in one query, keyed by code + "_" + ISO date.
func (s *Service) navIndexForDays(instruments []catalog.Instrument, days []calendar.TradingDay) (map[string]float64, error) {
	codes := make([]string, len(instruments))
	for i, inst := range instruments {
		codes[i] = inst.Code
	}
	dates := make([]string, len(days))
	for i, day := range days {
		dates[i] = day.ISODate()
	}

	records, err := s.navs.FindByCodesAndDates(codes, dates)
	if err != nil {
		return nil, fmt.Errorf("loading NAV records: %w", err)
	}
	index := make(map[string]float64, len(records))
	for _, rec := range records {
		index[navKey(rec.Code, rec.Date)] = rec.AdjustedNav
	}
	return index, nil
}

func navKey(code, isoDate string) string {
	return code + "_" + isoDate
}

// buildDailyReturns averages each consecutive trading-day pair over the
// instruments with usable NAVs on both days, newest pair first. A pair
// with no usable instrument at all becomes an error entry.
func buildDailyReturns(instruments []catalog.Instrument, days []calendar.TradingDay, index map[string]float64, includeDetails bool) []DailyReturn {
	history := make([]DailyReturn, 0, len(days)-1)
	for i := 0; i+1 < len(days); i++ {
		startDate := days[i].ISODate()
		endDate := days[i+1].ISODate()

		daily := DailyReturn{StartDate: startDate, EndDate: endDate}
		sum := decimal.Zero
		for _, inst := range instruments {
			startNav, okStart := index[navKey(inst.Code, startDate)]
			endNav, okEnd := index[navKey(inst.Code, endDate)]
			if !okStart || !okEnd || startNav <= 0 {
				continue
			}

			rate := rateOf(startNav, endNav)
			sum = sum.Add(rate)
			daily.ValidEtfCount++

			if includeDetails {
				daily.EtfDetails = append(daily.EtfDetails, EtfDetail{
					ThsCode:           inst.Code,
					ChineseName:       inst.Name,
					StartNav:          ptr(decimal.NewFromFloat(startNav)),
					EndNav:            ptr(decimal.NewFromFloat(endNav)),
					ReturnRate:        ptr(rate),
					ReturnRatePercent: percentOf(rate),
				})
			}
		}

		if daily.ValidEtfCount == 0 {
			daily.AvgReturnRatePct = "N/A"
			daily.Error = "no valid NAV data for this period"
		} else {
			mean := meanOf(sum, daily.ValidEtfCount)
			daily.AvgReturnRate = ptr(mean)
			daily.AvgReturnRatePct = percentOf(mean)
		}
		history = append(history, daily)
	}

	// Most recent pair first.
	for i, j := 0, len(history)-1; i < j; i, j = i+1, j-1 {
		history[i], history[j] = history[j], history[i]
	}
	return history
}

// descriptionsFor maps each sector name to its category description,
// falling back to the name itself when the category is missing or has
// no description.
func (s *Service) descriptionsFor(names []string) (map[string]string, error) {
	out := make(map[string]string, len(names))
	for _, name := range names {
		out[name] = name
	}
	if len(names) == 0 {
		return out, nil
	}
	found, err := s.sectors.FindByNames(names)
	if err != nil {
		return nil, fmt.Errorf("loading sector descriptions: %w", err)
	}
	for _, sec := range found {
		if sec.Description != "" {
			out[sec.Name] = sec.Description
		}
	}
	return out, nil
}

// sortSectorResults orders sectors best average first, ties broken on
// name.
func sortSectorResults(results []SectorResult) {
	sort.Slice(results, func(i, j int) bool {
		a, b := results[i].AvgReturnRate, results[j].AvgReturnRate
		if a.Equal(*b) {
			return results[i].Sector < results[j].Sector
		}
		return a.GreaterThan(*b)
	})
}

// dedupe trims the given values, drops empties, and removes duplicates
// while preserving first-seen order.
func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
