package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"marketbrain/internal/provider"
)

const (
	dateLayout       = "2006-01-02"
	defaultLookback  = 30 * 24 * time.Hour
	maxBatchSymbols  = 100
	defaultNewsLimit = 20
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(v)
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]any{"error": msg})
}

// dateRange reads start and end query parameters. A missing end is now, a
// missing start is a month before end.
func dateRange(r *http.Request) (time.Time, time.Time, error) {
	q := r.URL.Query()

	end := time.Now().UTC().Truncate(24 * time.Hour)
	if v := q.Get("end"); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		end = t
	}

	start := end.Add(-defaultLookback)
	if v := q.Get("start"); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		start = t
	}
	return start, end, nil
}

func intParam(r *http.Request, name string, def int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.brain.GetQuote(r.Context(), mux.Vars(r)["symbol"]))
}

func (s *Server) handleQuotes(w http.ResponseWriter, r *http.Request) {
	symbols := splitCSV(r.URL.Query().Get("symbols"))
	if len(symbols) == 0 {
		badRequest(w, "missing symbols query param")
		return
	}
	if len(symbols) > maxBatchSymbols {
		badRequest(w, "too many symbols")
		return
	}
	writeJSON(w, http.StatusOK, s.brain.GetMultipleQuotes(r.Context(), symbols))
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	start, end, err := dateRange(r)
	if err != nil {
		badRequest(w, "dates must be YYYY-MM-DD")
		return
	}
	if end.Before(start) {
		badRequest(w, "end is before start")
		return
	}
	interval := r.URL.Query().Get("interval")
	writeJSON(w, http.StatusOK, s.brain.GetHistorical(r.Context(), mux.Vars(r)["symbol"], start, end, interval))
}

func (s *Server) handleOptionsChain(w http.ResponseWriter, r *http.Request) {
	var expiration time.Time
	if v := r.URL.Query().Get("expiration"); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			badRequest(w, "expiration must be YYYY-MM-DD")
			return
		}
		expiration = t
	}
	writeJSON(w, http.StatusOK, s.brain.GetOptionsChain(r.Context(), mux.Vars(r)["symbol"], expiration))
}

func (s *Server) handleCompany(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.brain.GetCompanyInfo(r.Context(), mux.Vars(r)["symbol"]))
}

func (s *Server) handleFundamentals(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	writeJSON(w, http.StatusOK, s.brain.GetFundamentals(r.Context(), mux.Vars(r)["symbol"], period))
}

func (s *Server) handleEarnings(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r, "limit", 0)
	if err != nil {
		badRequest(w, "limit must be an integer")
		return
	}
	writeJSON(w, http.StatusOK, s.brain.GetEarnings(r.Context(), mux.Vars(r)["symbol"], limit))
}

func (s *Server) handleDividends(w http.ResponseWriter, r *http.Request) {
	start, end, err := dateRange(r)
	if err != nil {
		badRequest(w, "dates must be YYYY-MM-DD")
		return
	}
	writeJSON(w, http.StatusOK, s.brain.GetDividends(r.Context(), mux.Vars(r)["symbol"], start, end))
}

func (s *Server) handleSplits(w http.ResponseWriter, r *http.Request) {
	start, end, err := dateRange(r)
	if err != nil {
		badRequest(w, "dates must be YYYY-MM-DD")
		return
	}
	writeJSON(w, http.StatusOK, s.brain.GetSplits(r.Context(), mux.Vars(r)["symbol"], start, end))
}

func (s *Server) handleIndicator(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	name := q.Get("name")
	if name == "" {
		badRequest(w, "missing name query param")
		return
	}
	period, err := intParam(r, "period", 0)
	if err != nil {
		badRequest(w, "period must be an integer")
		return
	}
	writeJSON(w, http.StatusOK, s.brain.GetTechnicalIndicator(r.Context(), provider.IndicatorParams{
		Symbol:    mux.Vars(r)["symbol"],
		Indicator: name,
		Interval:  q.Get("interval"),
		Period:    period,
	}))
}

func (s *Server) handleTranscript(w http.ResponseWriter, r *http.Request) {
	year, err := intParam(r, "year", 0)
	if err != nil {
		badRequest(w, "year must be an integer")
		return
	}
	quarter, err := intParam(r, "quarter", 0)
	if err != nil || quarter < 0 || quarter > 4 {
		badRequest(w, "quarter must be 1-4")
		return
	}
	writeJSON(w, http.StatusOK, s.brain.GetEarningsTranscript(r.Context(), mux.Vars(r)["symbol"], year, quarter))
}

func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r, "limit", defaultNewsLimit)
	if err != nil || limit < 0 {
		badRequest(w, "limit must be a positive integer")
		return
	}
	writeJSON(w, http.StatusOK, s.brain.GetNews(r.Context(), r.URL.Query().Get("symbol"), limit))
}

func (s *Server) handleEconomicEvents(w http.ResponseWriter, r *http.Request) {
	start, end, err := dateRange(r)
	if err != nil {
		badRequest(w, "dates must be YYYY-MM-DD")
		return
	}
	writeJSON(w, http.StatusOK, s.brain.GetEconomicEvents(r.Context(), start, end, r.URL.Query().Get("country")))
}

func (s *Server) handleEarningsCalendar(w http.ResponseWriter, r *http.Request) {
	start, end, err := dateRange(r)
	if err != nil {
		badRequest(w, "dates must be YYYY-MM-DD")
		return
	}
	writeJSON(w, http.StatusOK, s.brain.GetEarningsCalendar(r.Context(), start, end))
}

func (s *Server) handleMarketStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.brain.GetMarketStatus(r.Context(), r.URL.Query().Get("market")))
}

// handleProviders lists provider ids, optionally only those declaring the
// capability named by ?capability=.
func (s *Server) handleProviders(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("capability")
	if name == "" {
		writeJSON(w, http.StatusOK, map[string]any{"providers": s.brain.AvailableProviders()})
		return
	}

	c, ok := provider.ParseCapability(name)
	if !ok {
		badRequest(w, "unknown capability: "+name)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"providers": s.brain.ProvidersFor(c)})
}

func (s *Server) handleProvider(w http.ResponseWriter, r *http.Request) {
	info, ok := s.brain.ProviderDetail(mux.Vars(r)["id"])
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "unknown provider"})
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (s *Server) handleCapabilities(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.brain.Coverage())
}

func (s *Server) handleCacheStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.brain.CacheStats())
}

func (s *Server) handleProviderStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.brain.ProviderStatus())
}

func (s *Server) handleClearCache(w http.ResponseWriter, _ *http.Request) {
	s.brain.ClearCache()
	w.WriteHeader(http.StatusNoContent)
}
