// Package server is the Serve Adapter: it exposes the Orchestrator over
// HTTP with Gin, instruments it with Prometheus, and optionally caches
// query results in Redis. Grounded on the pack's sidechain backend
// (cmd/server/main.go's router setup, internal/metrics, internal/cache).
package server

import (
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fprint/index"
	"fprint/orchestrate"
)

// Server wires an Orchestrator and a single shared Index behind HTTP
// handlers. The Index is single-writer: indexMu serializes /v1/index
// requests against each other and against /v1/query reads.
type Server struct {
	orch    *orchestrate.Orchestrator
	indexMu sync.RWMutex
	idx     index.Index
	path    string
	cache   *resultCache
	metrics *metrics
}

// New builds a Server backed by the index at indexPath (loaded if present,
// created empty otherwise) and an optional Redis cache at redisAddr.
func New(indexPath string, workers int, redisAddr string) (*Server, error) {
	idx, err := index.Load(indexPath)
	if err != nil {
		if err == index.ErrLoadNoIndex {
			idx = index.New()
		} else {
			return nil, err
		}
	}

	return &Server{
		orch:    orchestrate.New(workers),
		idx:     idx,
		path:    indexPath,
		cache:   newResultCache(redisAddr),
		metrics: newMetrics(),
	}, nil
}

// Router builds the Gin engine with the serve adapter's routes mounted.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestID(), s.instrument())

	r.POST("/v1/index", s.handleIndex)
	r.POST("/v1/query", s.handleQuery)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func (s *Server) instrument() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		s.metrics.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		s.metrics.requestsTotal.WithLabelValues(route, http.StatusText(c.Writer.Status())).Inc()
	}
}

// handleIndex accepts a multipart file upload, fingerprints it, and merges
// it into the shared index.
func (s *Server) handleIndex(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer file.Close()

	tmp, err := spoolToTempFile(file, header.Filename)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer os.Remove(tmp)

	s.indexMu.Lock()
	defer s.indexMu.Unlock()

	if err := s.orch.UpdateIndex(c.Request.Context(), s.idx, []string{tmp}, false, false); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	if err := index.Save(s.idx, s.path); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"keys": len(s.idx)})
}

// handleQuery accepts a multipart sample upload and returns the ranked
// track list, serving from the Redis cache when possible.
func (s *Server) handleQuery(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	cacheKey := sampleCacheKey(data)
	if ranked, ok := s.cache.get(c.Request.Context(), cacheKey); ok {
		s.metrics.cacheHitsTotal.Inc()
		c.JSON(http.StatusOK, gin.H{"ranked": ranked})
		return
	}
	s.metrics.cacheMissTotal.Inc()

	tmp, err := spoolBytesToTempFile(data, header.Filename)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer os.Remove(tmp)

	s.indexMu.RLock()
	ranked, err := s.orch.Query(s.idx, tmp)
	s.indexMu.RUnlock()
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	s.cache.set(c.Request.Context(), cacheKey, ranked)
	c.JSON(http.StatusOK, gin.H{"ranked": ranked})
}
