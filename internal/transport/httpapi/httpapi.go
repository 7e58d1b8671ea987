package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"depthbot/internal/infra/metrics"
	"depthbot/internal/usecase/aggregate"
)

type Fetcher interface {
	Fetch(ctx context.Context) aggregate.Result
	Names() []string
}

type Server struct {
	addr   string
	svc    Fetcher
	reg    *prometheus.Registry
	server *http.Server
}

func New(addr string, svc Fetcher, reg *prometheus.Registry) *Server {
	return &Server{addr: addr, svc: svc, reg: reg}
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	// API
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/liquidity", s.handleLiquidity)
	mux.HandleFunc("/api/venues", s.handleVenues)
	mux.Handle("/metrics", metrics.Handler(s.reg))

	return withCORS(mux)
}

func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:              s.addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Info().Str("addr", s.addr).Msg("HTTP server listening")
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleLiquidity обрабатывает GET /api/liquidity?price=1.23
// Возвращает глубину каждого рынка до целевой цены.
func (s *Server) handleLiquidity(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")

	// без параметра price глубина считается в референсной цене каждой кривой
	var target float64
	useMid := true
	if raw := strings.TrimSpace(r.URL.Query().Get("price")); raw != "" {
		t, err := strconv.ParseFloat(raw, 64)
		if err != nil || t < 0 {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(ErrorResponse{Error: "'price' must be a non-negative number"})
			return
		}
		target, useMid = t, false
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	res := s.svc.Fetch(ctx)
	if len(res) == 0 {
		w.WriteHeader(http.StatusBadGateway)
		_ = json.NewEncoder(w).Encode(ErrorResponse{Error: "ни одна площадка не вернула ликвидность"})
		return
	}

	resp := LiquidityResponse{
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Target:      target,
		Venues:      make(map[string]map[string]MarketDepth, len(res)),
	}
	for venue, curves := range res {
		out := make(map[string]MarketDepth, len(curves))
		for key, curve := range curves {
			t := target
			if useMid {
				t = curve.Price()
			}
			out[key] = MarketDepth{
				Price:  curve.Price(),
				Target: t,
				Depth:  curve.DepthAt(t),
			}
		}
		resp.Venues[venue] = out
	}
	_ = json.NewEncoder(w).Encode(resp)
}

func (s *Server) handleVenues(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	names := s.svc.Names()
	sort.Strings(names)
	_ = json.NewEncoder(w).Encode(VenuesResponse{Venues: names})
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
