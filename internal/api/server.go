package api

import (
	"errors"
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/appengine-ltd/vegan-simulator/internal/config"
	"github.com/appengine-ltd/vegan-simulator/internal/sim"
	"github.com/appengine-ltd/vegan-simulator/internal/snapshot"
)

// Server exposes one shared simulation session over HTTP.
type Server struct {
	mu    sync.Mutex
	cfg   *config.Config
	store *snapshot.Store
	state *sim.State
}

func NewServer(cfg *config.Config, store *snapshot.Store) (*Server, error) {
	state, err := cfg.NewState()
	if err != nil {
		return nil, err
	}
	return &Server{cfg: cfg, store: store, state: state}, nil
}

// Router builds the gin engine with logging and panic recovery.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "vegan simulator", "year": s.currentYear()})
	})

	api := r.Group("/api")
	{
		api.GET("/state", s.getState)
		api.GET("/history", s.getHistory)
		api.GET("/trends", s.getTrends)
		api.GET("/indicators", s.getIndicators)
		api.GET("/diets", s.getDiets)
		api.GET("/presets", s.getPresets)

		api.PUT("/diet/:category", s.putDiet)
		api.POST("/diet/preset/:name", s.applyPreset)
		api.POST("/step", s.step)
		api.POST("/tick", s.tick)
		api.POST("/reset", s.reset)
		api.POST("/control/:action", s.control)
		api.PUT("/speed", s.putSpeed)

		api.GET("/snapshots", s.listSnapshots)
		api.POST("/snapshots/:name", s.saveSnapshot)
		api.POST("/snapshots/:name/load", s.loadSnapshot)
	}
	return r
}

func (s *Server) currentYear() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Year
}

func abortWithError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, sim.ErrUnknownDiet),
		errors.Is(err, sim.ErrUnknownIndicator),
		errors.Is(err, config.ErrPresetNotFound),
		errors.Is(err, snapshot.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, sim.ErrAdvancing),
		errors.Is(err, sim.ErrMaxYear):
		return http.StatusConflict
	case errors.Is(err, sim.ErrInvalidDiet),
		errors.Is(err, sim.ErrHistoryOrder),
		errors.Is(err, snapshot.ErrInvalidName),
		errors.Is(err, snapshot.ErrFormat),
		errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
