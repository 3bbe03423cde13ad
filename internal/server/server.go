package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/KaramelBytes/hotelscope/internal/analysis"
	"github.com/KaramelBytes/hotelscope/internal/dataset"
	"github.com/gin-gonic/gin"
)

// Config controls the HTTP surface.
type Config struct {
	// Categorical and Numerical are used when a request omits cat/num.
	Categorical dataset.Categorical
	Numerical   dataset.Numerical
	// Debug enables gin's request logger.
	Debug bool
}

// Server exposes an Explorer over HTTP. Every request recomputes its
// views from the shared read-only dataset.
type Server struct {
	ex     *analysis.Explorer
	cfg    Config
	engine *gin.Engine
}

// New builds the gin engine and its routes.
func New(ex *analysis.Explorer, cfg Config) *Server {
	s := &Server{ex: ex, cfg: cfg}
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.Debug {
		r.Use(gin.Logger())
	}
	r.GET("/healthz", s.healthz)
	r.GET("/options", s.options)
	r.GET("/explore", s.explore)
	s.engine = r
	return s
}

// Handler returns the routed engine.
func (s *Server) Handler() http.Handler { return s.engine }

// Run serves on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.engine, ReadHeaderTimeout: 10 * time.Second}
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen %s: %w", addr, err)
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

func (s *Server) healthz(c *gin.Context) {
	ds := s.ex.Dataset()
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"bookings":  ds.Len(),
		"source":    ds.Source(),
		"loaded_at": ds.LoadedAt().UTC().Format(time.RFC3339),
	})
}

func (s *Server) options(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"filters":             s.ex.Dataset().Options(),
		"categorical":         dataset.Categoricals(),
		"numerical":           dataset.Numericals(),
		"default_categorical": s.cfg.Categorical,
		"default_numerical":   s.cfg.Numerical,
	})
}

func (s *Server) explore(c *gin.Context) {
	req, err := s.parseRequest(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := s.ex.Explore(req)
	if err != nil {
		status := http.StatusInternalServerError
		var ve *analysis.VariableError
		if errors.As(err, &ve) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

// parseRequest maps query parameters onto a request. An absent filter
// parameter selects every option; a present one selects exactly the
// non-empty values given, so "hotel=" is an empty selection.
func (s *Server) parseRequest(c *gin.Context) (analysis.Request, error) {
	all := analysis.AllOf(s.ex.Dataset().Options())
	req := analysis.Request{Filter: all, Categorical: s.cfg.Categorical, Numerical: s.cfg.Numerical}

	if vals, ok := c.GetQueryArray("hotel"); ok {
		req.Filter.Hotels = nonEmpty(vals)
	}
	if vals, ok := c.GetQueryArray("location"); ok {
		req.Filter.Locations = nonEmpty(vals)
	}
	if vals, ok := c.GetQueryArray("year"); ok {
		years := make([]int, 0, len(vals))
		for _, v := range nonEmpty(vals) {
			y, err := strconv.Atoi(v)
			if err != nil {
				return req, fmt.Errorf("invalid year %q", v)
			}
			years = append(years, y)
		}
		req.Filter.Years = years
	}

	cat, num := req.Categorical.String(), req.Numerical.String()
	if v, ok := c.GetQuery("cat"); ok {
		cat = v
	}
	if v, ok := c.GetQuery("num"); ok {
		num = v
	}
	cv, nv, err := analysis.ResolveVariables(cat, num)
	if err != nil {
		return req, err
	}
	req.Categorical, req.Numerical = cv, nv
	return req, nil
}

// nonEmpty trims values and drops blanks and repeats, keeping first-seen order.
func nonEmpty(vals []string) []string {
	seen := make(map[string]bool, len(vals))
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" && !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
