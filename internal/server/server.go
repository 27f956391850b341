// Package server exposes tax calculations over HTTP.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iwvelando/taxcalc/internal/policy"
	"github.com/iwvelando/taxcalc/internal/records"
	"github.com/iwvelando/taxcalc/internal/reform"
	"github.com/iwvelando/taxcalc/internal/tables"
	"github.com/iwvelando/taxcalc/internal/taxerr"
	"github.com/iwvelando/taxcalc/internal/taxio"
	"github.com/iwvelando/taxcalc/pkg/constants"
	"github.com/iwvelando/taxcalc/pkg/validation"
)

type handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	version       string
	exact         bool
}

// NewHandler constructs the HTTP handler for the calculation API.
func NewHandler(logger *zap.Logger, cfg *Config, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg == nil {
		cfg = &Config{}
	}
	maxUploadSize := cfg.UploadSizeBytes()
	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}
	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, maxUploadSize: maxUploadSize, version: trimmedVersion, exact: cfg.Exact}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/calculate", h.handleCalculate)
	mux.HandleFunc("/api/params", h.handleParams)
	mux.HandleFunc("/api/version", h.handleVersion)
	return mux
}

type calculateResponse struct {
	RunID        string     `json:"runId"`
	Year         int        `json:"year"`
	Records      int        `json:"records"`
	Totals       []totalRow `json:"totals"`
	Distribution tableJSON  `json:"distribution"`
	Difference   tableJSON  `json:"difference"`
	CSV          string     `json:"csv"`
	Warnings     []string   `json:"warnings,omitempty"`
	Duration     string     `json:"duration"`
}

type totalRow struct {
	Variable string  `json:"variable"`
	Baseline float64 `json:"baseline"`
	Reform   float64 `json:"reform"`
	Change   float64 `json:"change"`
}

type tableJSON struct {
	Grouping string    `json:"grouping"`
	Columns  []string  `json:"columns"`
	Rows     []rowJSON `json:"rows"`
}

type rowJSON struct {
	Label  string    `json:"label"`
	Values []float64 `json:"values"`
}

var totalVars = []records.Var{records.Iitax, records.Payrolltax, records.Combined}

func toJSON(t tables.Table) tableJSON {
	out := tableJSON{Grouping: t.Grouping.String(), Columns: t.Columns, Rows: make([]rowJSON, len(t.Rows))}
	for i, r := range t.Rows {
		out.Rows[i] = rowJSON{Label: r.Label, Values: r.Values}
	}
	return out
}

// handleCalculate runs a baseline and reform calculation on an uploaded
// sample. The multipart form carries the CSV as "input" and the tax year as
// "year"; "reform" and "assump" hold file contents, "grouping" selects the
// table rows.
func (h *handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCalculate"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), op)
			return
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err), op)
		return
	}

	file, header, err := r.FormFile("input")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "missing input file", op)
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", op),
				zap.Error(closeErr),
			)
		}
	}()
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to read input: %v", err), op)
		return
	}

	year, err := strconv.Atoi(strings.TrimSpace(r.FormValue("year")))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "year must be an integer", op)
		return
	}
	if err := validation.ValidateTaxYear(year); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}
	grouping := tables.WeightedDeciles
	if name := r.FormValue("grouping"); name != "" {
		if grouping, err = tables.ParseGrouping(name); err != nil {
			h.respondError(w, http.StatusBadRequest, err.Error(), op)
			return
		}
	}

	ref, err := parseOptional(r.FormValue("reform"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("reform: %v", err), op)
		return
	}
	asm, err := parseOptional(r.FormValue("assump"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("assump: %v", err), op)
		return
	}
	combined, err := reform.Combine([]reform.File{ref}, []reform.File{asm})
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	runID := uuid.NewString()
	logger := h.logger.With(zap.String("run_id", runID))
	calcs, err := taxio.Build(logger, taxio.Scenario{
		Name:    header.Filename,
		Data:    buf.Bytes(),
		TaxYear: year,
		Reform:  combined,
		Exact:   h.exact,
	})
	if err != nil {
		h.respondError(w, statusFor(err), err.Error(), op)
		return
	}
	if err := calcs.Calculate(); err != nil {
		h.respondError(w, statusFor(err), err.Error(), op)
		return
	}

	base, refRecs := calcs.Baseline.Records(), calcs.Reform.Records()
	dist, err := tables.Distribution(refRecs, grouping)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error(), op)
		return
	}
	diff, err := tables.Difference(base, refRecs, grouping, records.Iitax)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error(), op)
		return
	}
	var csvBuf bytes.Buffer
	if err := taxio.WriteMinimal(&csvBuf, calcs.Reform); err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error(), op)
		return
	}

	resp := calculateResponse{
		RunID:        runID,
		Year:         year,
		Records:      base.Len(),
		Distribution: toJSON(dist),
		Difference:   toJSON(diff),
		CSV:          csvBuf.String(),
		Warnings:     calcs.Warnings,
		Duration:     time.Since(start).String(),
	}
	for _, v := range totalVars {
		b, rf := calcs.Baseline.WeightedTotal(v), calcs.Reform.WeightedTotal(v)
		resp.Totals = append(resp.Totals, totalRow{Variable: v.Name(), Baseline: b, Reform: rf, Change: rf - b})
	}
	logger.Info("calculation complete",
		zap.String("op", op),
		zap.Int("year", year),
		zap.Int("records", base.Len()),
		zap.Duration("duration", time.Since(start)),
	)
	h.writeJSON(w, http.StatusOK, resp)
}

func parseOptional(text string) (reform.File, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	return reform.Parse([]byte(text))
}

// statusFor maps user errors to 400 and everything else to 500.
func statusFor(err error) int {
	for _, kind := range []error{
		taxerr.ErrInvalidParameterFile, taxerr.ErrInvalidReform, taxerr.ErrInvalidRecords,
		taxerr.ErrOutOfRangeYear, taxerr.ErrNumericOverflow,
	} {
		if errors.Is(err, kind) {
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}

// handleParams writes the policy parameters for ?year= as YAML, optionally
// restricted to a comma separated ?names= list.
func (h *handler) handleParams(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleParams"
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "year must be an integer", op)
		return
	}
	if err := validation.ValidateTaxYear(year); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}
	var names []string
	if list := r.URL.Query().Get("names"); list != "" {
		names = strings.Split(list, ",")
	}

	pol, err := policy.New(nil)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error(), op)
		return
	}
	var buf bytes.Buffer
	if err := pol.WriteSpecification(&buf, year, names...); err != nil {
		h.respondError(w, statusFor(err), err.Error(), op)
		return
	}
	w.Header().Set("Content-Type", "application/yaml")
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.Warn("failed to write response", zap.String("op", op), zap.Error(err))
	}
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string, op string) {
	level := h.logger.Warn
	if status >= http.StatusInternalServerError {
		level = h.logger.Error
	}
	level("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)
	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to encode response",
			zap.String("op", "server.writeJSON"),
			zap.Error(err),
		)
	}
}
