package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"ejector-tool/internal/id"
	"ejector-tool/internal/model"
	"ejector-tool/internal/netutil"
	"ejector-tool/internal/sizing"
)

// SizeRequest is the body of POST /api/size.
type SizeRequest struct {
	Case    string                `json:"case"`
	Motive  []sizing.StreamRecord `json:"motive"`
	Suction []sizing.StreamRecord `json:"suction"`
}

// SizeResponse is the body returned for a successful sizing.
type SizeResponse struct {
	ID        string        `json:"id"`
	Case      string        `json:"case,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
	Result    sizing.Result `json:"result"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Server exposes the sizing calculator over HTTP.
type Server struct {
	log     *slog.Logger
	limiter *IPRateLimiter
	router  *mux.Router
}

// New builds the router. limit and burst configure the per-client limiter.
func New(log *slog.Logger, limit rate.Limit, burst int) *Server {
	s := &Server{
		log:     log,
		limiter: NewIPRateLimiter(limit, burst),
		router:  mux.NewRouter(),
	}

	api := s.router.PathPrefix("/api").Subrouter()
	api.Use(s.logRequests)
	api.Use(s.limiter.LimitMiddleware)
	api.HandleFunc("/health", s.health).Methods(http.MethodGet)
	api.HandleFunc("/size", s.size).Methods(http.MethodPost)

	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", addr, "url", netutil.ServeURL(addr, netutil.OutboundIP()))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.log.Info("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) size(w http.ResponseWriter, r *http.Request) {
	var req SizeRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request payload: " + err.Error()})
		return
	}

	streams, err := normalize(req)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	res, err := sizing.Calculate(streams)
	if err != nil {
		s.log.Debug("sizing rejected", "error", err, "streams", len(streams))
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
		return
	}

	hostname, _ := os.Hostname()
	now := time.Now()
	run := model.SizingRun{
		ID:            id.NewAt(now),
		Timestamp:     now,
		Mode:          "API",
		CaseName:      req.Case,
		LocalHostname: hostname,
		Streams:       streams,
		Result:        res,
	}
	s.log.Info("sized",
		"id", run.ID,
		"case", run.CaseName,
		"motive", run.MotiveCount(),
		"suction", run.SuctionCount(),
		"throat_in", res.ThroatDiameter)

	writeJSON(w, http.StatusOK, SizeResponse{
		ID:        run.ID,
		Case:      run.CaseName,
		Timestamp: run.Timestamp,
		Result:    run.Result,
	})
}

// normalize tags each stream with the role of the list it came in and
// rejects unknown fluid names.
func normalize(req SizeRequest) ([]sizing.StreamRecord, error) {
	tag := func(role sizing.Role, in []sizing.StreamRecord) ([]sizing.StreamRecord, error) {
		out := make([]sizing.StreamRecord, len(in))
		for i, rec := range in {
			fluid, err := sizing.ParseFluidType(string(rec.Fluid))
			if err != nil {
				return nil, &sizing.ParseError{Stream: string(role), Field: "fluid", Value: string(rec.Fluid), Err: err}
			}
			rec.Fluid = fluid
			rec.Role = role
			out[i] = rec
		}
		return out, nil
	}
	motive, err := tag(sizing.Motive, req.Motive)
	if err != nil {
		return nil, err
	}
	suction, err := tag(sizing.Suction, req.Suction)
	if err != nil {
		return nil, err
	}
	return sizing.Concat(motive, suction), nil
}

// writeJSON marshals v before writing the status, so an unencodable value
// becomes a 500 instead of a 200 with an empty body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		body, _ = json.Marshal(errorResponse{Error: "encode response: " + err.Error()})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start))
	})
}

// IPRateLimiter keeps one token bucket per client address.
type IPRateLimiter struct {
	mu  sync.Mutex
	ips map[string]*rate.Limiter
	r   rate.Limit
	b   int
}

// NewIPRateLimiter creates a limiter allowing r requests/s with burst b per client.
func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	return &IPRateLimiter{
		ips: make(map[string]*rate.Limiter),
		r:   r,
		b:   b,
	}
}

func (i *IPRateLimiter) getLimiter(ip string) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()

	limiter, ok := i.ips[ip]
	if !ok {
		limiter = rate.NewLimiter(i.r, i.b)
		i.ips[ip] = limiter
	}
	return limiter
}

// LimitMiddleware rejects requests over the client's budget with 429.
func (i *IPRateLimiter) LimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		if !i.getLimiter(ip).Allow() {
			writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: "too many requests, try again later"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
