// Package httpapi serves the filter calculator over HTTP with chi.
package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cwbudde/algo-rlc/component/eseries"
	"github.com/cwbudde/algo-rlc/dsp/filter/rlc"
	"github.com/cwbudde/algo-rlc/internal/bode"
	"github.com/cwbudde/algo-rlc/internal/config"
	"github.com/cwbudde/algo-rlc/internal/metrics"
	"github.com/cwbudde/algo-rlc/measure/cutoff"
)

const maxResponsePoints = 2000

// Server exposes solve, suggest, response, measure and plot endpoints.
type Server struct {
	cfg    config.Config
	logger *log.Logger
}

// NewServer creates an HTTP API server.
func NewServer(cfg config.Config, logger *log.Logger) *Server {
	return &Server{cfg: cfg, logger: logger}
}

// Handler returns the chi router with middleware and all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(metrics.Middleware())

	r.Get("/healthz", s.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Post("/solve", s.Solve)
		r.Get("/suggest", s.Suggest)
		r.Get("/response", s.Response)
		r.Get("/measure", s.Measure)
		r.Get("/plot", s.Plot)
	})
	return r
}

// Health handles GET /healthz.
func (s *Server) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Solve handles POST /v1/solve.
func (s *Server) Solve(w http.ResponseWriter, r *http.Request) {
	var req SolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if !req.Topology.Valid() {
		writeError(w, http.StatusBadRequest, codeBadRequest, "topology must be RL or RC")
		return
	}

	res, err := rlc.Solve(req.Topology, req.PartialSpec())
	metrics.ObserveOperation("solve", req.Topology.String(), err)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	resp := SolveResponse{
		Name:  res.Name,
		Value: res.Value,
		Unit:  req.Topology.UnitOf(res.Name),
	}
	if res.Name != "f" {
		nearest := eseries.Nearest(eseries.E12, res.Value)
		resp.Nearest = &nearest
	}
	writeJSON(w, http.StatusOK, resp)
}

// Suggest handles GET /v1/suggest?topology=&target=&count=&series=.
func (s *Server) Suggest(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	top, err := rlc.ParseTopology(q.Get("topology"))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "topology must be RL or RC")
		return
	}
	target, err := parseFloat(q.Get("target"))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "target: "+err.Error())
		return
	}

	opts := s.cfg.SuggestOptions(top)
	if v := q.Get("count"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 100 {
			writeError(w, http.StatusBadRequest, codeBadRequest, "count must be between 1 and 100")
			return
		}
		opts = append(opts, rlc.WithCount(n))
	}
	if v := q.Get("series"); v != "" {
		series, err := eseries.ParseSeries(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeBadRequest, "series must be E6, E12 or E24")
			return
		}
		opts = append(opts, rlc.WithSeries(series))
	}

	cands, err := rlc.Suggest(top, target, opts...)
	metrics.ObserveOperation("suggest", top.String(), err)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	resp := SuggestResponse{Topology: top, Target: target, Candidates: make([]CandidateDTO, len(cands))}
	for i, c := range cands {
		resp.Candidates[i] = CandidateDTO(c)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Response handles GET /v1/response?topology=&r=&x=&kind=&points=.
func (s *Server) Response(w http.ResponseWriter, r *http.Request) {
	d, kind, ok := s.designFromQuery(w, r)
	if !ok {
		return
	}
	points := 50
	if v := r.URL.Query().Get("points"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 2 || n > maxResponsePoints {
			writeError(w, http.StatusBadRequest, codeBadRequest,
				fmt.Sprintf("points must be between 2 and %d", maxResponsePoints))
			return
		}
		points = n
	}

	fc := d.Cutoff()
	lo, hi := fc/100, fc*100
	if !(lo > 0) || math.IsInf(hi, 0) {
		s.handleDomainError(w, rlc.ErrCalculation)
		return
	}
	freqs := rlc.LogSweep(lo, hi, points)
	resp := ResponseResponse{
		Cutoff:       fc,
		TimeConstant: d.TimeConstant(),
		Kind:         kind.String(),
		Points:       make([]ResponsePoint, len(freqs)),
	}
	for i, f := range freqs {
		resp.Points[i] = ResponsePoint{
			Frequency:   f,
			MagnitudeDB: d.MagnitudeDB(kind, f),
			Phase:       d.Phase(kind, f),
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// Measure handles GET /v1/measure?topology=&r=&x=&kind=.
func (s *Server) Measure(w http.ResponseWriter, r *http.Request) {
	d, kind, ok := s.designFromQuery(w, r)
	if !ok {
		return
	}
	res, err := cutoff.Measure(d, cutoff.Config{
		SampleRate: s.cfg.Measure.SampleRate,
		FFTSize:    s.cfg.Measure.FFTSize,
		Kind:       kind,
	})
	metrics.ObserveOperation("measure", d.Topology.String(), err)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MeasureResponse{
		Nominal:       res.Nominal,
		Measured:      res.Measured,
		RelativeError: res.RelativeError,
		SampleRate:    res.SampleRate,
		FFTSize:       res.FFTSize,
	})
}

// Plot handles GET /v1/plot?topology=&r=&x=&kind=&format=.
func (s *Server) Plot(w http.ResponseWriter, r *http.Request) {
	d, kind, ok := s.designFromQuery(w, r)
	if !ok {
		return
	}
	format := r.URL.Query().Get("format")
	contentType, known := plotContentTypes[format]
	if format == "" {
		format, contentType, known = "svg", plotContentTypes["svg"], true
	}
	if !known {
		writeError(w, http.StatusBadRequest, codeBadRequest, "format must be svg, png or pdf")
		return
	}

	var buf bytes.Buffer
	if err := bode.Render(&buf, d, format, bode.Options{Kinds: []rlc.Kind{kind}}); err != nil {
		s.logger.Error("plot render failed", "err", err)
		writeError(w, http.StatusInternalServerError, codeInternal, "plot render failed")
		return
	}
	w.Header().Set("Content-Type", contentType)
	_, _ = buf.WriteTo(w)
}

var plotContentTypes = map[string]string{
	"svg": "image/svg+xml",
	"png": "image/png",
	"pdf": "application/pdf",
}

func (s *Server) designFromQuery(w http.ResponseWriter, r *http.Request) (rlc.Design, rlc.Kind, bool) {
	q := r.URL.Query()
	top, err := rlc.ParseTopology(q.Get("topology"))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "topology must be RL or RC")
		return rlc.Design{}, 0, false
	}
	res, err := parsePositive(q.Get("r"))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "r: "+err.Error())
		return rlc.Design{}, 0, false
	}
	x, err := parsePositive(q.Get("x"))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "x: "+err.Error())
		return rlc.Design{}, 0, false
	}
	kind := rlc.Lowpass
	switch q.Get("kind") {
	case "", "lowpass":
	case "highpass":
		kind = rlc.Highpass
	default:
		writeError(w, http.StatusBadRequest, codeBadRequest, "kind must be lowpass or highpass")
		return rlc.Design{}, 0, false
	}
	d := rlc.Design{Topology: top, R: res, X: x}
	if err := d.Validate(); err != nil {
		s.handleDomainError(w, err)
		return rlc.Design{}, 0, false
	}
	return d, kind, true
}

// handleDomainError maps sentinel errors to HTTP responses.
func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	for _, h := range domainErrors {
		if errors.Is(err, h.err) {
			writeError(w, h.status, h.code, h.err.Error())
			return
		}
	}
	s.logger.Error("unhandled error", "err", err)
	writeError(w, http.StatusInternalServerError, codeInternal, "internal error")
}

var domainErrors = []struct {
	err    error
	status int
	code   string
}{
	{rlc.ErrInsufficientInputs, http.StatusUnprocessableEntity, "insufficient_inputs"},
	{rlc.ErrCalculation, http.StatusUnprocessableEntity, "calculation_error"},
	{rlc.ErrInvalidCombination, http.StatusUnprocessableEntity, "invalid_combination"},
	{rlc.ErrInconsistent, http.StatusUnprocessableEntity, "inconsistent_values"},
	{rlc.ErrInvalidTarget, http.StatusBadRequest, codeBadRequest},
	{rlc.ErrUnknownTopology, http.StatusBadRequest, codeBadRequest},
	{rlc.ErrAboveNyquist, http.StatusUnprocessableEntity, "above_nyquist"},
	{cutoff.ErrInvalidSampleRate, http.StatusUnprocessableEntity, "invalid_sample_rate"},
	{cutoff.ErrInvalidFFTSize, http.StatusUnprocessableEntity, "invalid_fft_size"},
	{cutoff.ErrNoCrossing, http.StatusUnprocessableEntity, "no_crossing"},
}

func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rvr := recover(); rvr != nil {
				s.logger.Error("panic recovered", "panic", rvr, "path", r.URL.Path)
				writeError(w, http.StatusInternalServerError, codeInternal, "internal error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// requestLogger emits one debug line per request and propagates X-Request-ID.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := chiMiddleware.GetReqID(r.Context())
		if requestID != "" {
			w.Header().Set("X-Request-ID", requestID)
		}

		ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.logger.Debug("http_request",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"latency", time.Since(start),
			"response_bytes", ww.BytesWritten(),
		)
	})
}

func parseFloat(v string) (float64, error) {
	if v == "" {
		return 0, errors.New("missing value")
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, errors.New("not a number")
	}
	return f, nil
}

func parsePositive(v string) (float64, error) {
	f, err := parseFloat(v)
	if err != nil {
		return 0, err
	}
	if !(f > 0) || math.IsInf(f, 0) {
		return 0, errors.New("must be a positive finite number")
	}
	return f, nil
}

// writeJSON encodes v before the status line goes out so an unencodable
// value becomes a 500 instead of an empty 200.
func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		status = http.StatusInternalServerError
		buf.Reset()
		_ = json.NewEncoder(&buf).Encode(ErrorResponse{Code: codeInternal, Message: "response encoding failed"})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}
