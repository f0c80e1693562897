package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/appengine-ltd/vegan-simulator/internal/sim"
)

var errBadRequest = errors.New("bad request")

const defaultHistoryLimit = 50

type stateView struct {
	Year           int                  `json:"year"`
	MaxYear        int                  `json:"maxYear"`
	Diet           sim.DietDistribution `json:"diet"`
	Indicators     sim.IndicatorVector  `json:"indicators"`
	Running        bool                 `json:"running"`
	Paused         bool                 `json:"paused"`
	Speed          float64              `json:"speed"`
	TickIntervalMs int64                `json:"tickIntervalMs"`
}

type trendView struct {
	Direction          sim.TrendDirection `json:"direction,omitempty"`
	Assessment         sim.Assessment     `json:"assessment,omitempty"`
	ChangeFromBaseline *float64           `json:"changeFromBaseline"`
	Error              string             `json:"error,omitempty"`
}

type indicatorView struct {
	sim.IndicatorMeta
	Baseline float64  `json:"baseline"`
	Min      float64  `json:"min"`
	Max      *float64 `json:"max"`
}

type dietView struct {
	sim.DietMeta
	CO2           float64 `json:"co2"`
	Land          float64 `json:"land"`
	Water         float64 `json:"water"`
	Health        float64 `json:"health"`
	Biodiversity  float64 `json:"biodiversity"`
	Efficiency    float64 `json:"efficiency"`
	AnimalsKilled float64 `json:"animalsKilled"`
}

// viewOf must be called with the lock held.
func (s *Server) viewOf() stateView {
	return stateView{
		Year:           s.state.Year,
		MaxYear:        s.state.MaxYear(),
		Diet:           s.state.Diet,
		Indicators:     s.state.Indicators,
		Running:        s.state.Running,
		Paused:         s.state.Paused,
		Speed:          s.state.Speed,
		TickIntervalMs: s.state.TickInterval().Milliseconds(),
	}
}

func (s *Server) getState(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, s.viewOf())
}

func (s *Server) getHistory(c *gin.Context) {
	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			abortWithError(c, fmt.Errorf("%w: limit must be a positive integer", errBadRequest))
			return
		}
		limit = n
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"history": s.state.History.Window(limit), "total": s.state.History.Len()})
}

func (s *Server) getTrends(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	trends, undefined := s.state.Trends()
	out := make(map[string]trendView, len(sim.Indicators()))
	for _, ind := range sim.Indicators() {
		var view trendView
		if err, ok := undefined[ind]; ok {
			view.Error = err.Error()
		} else {
			view.Direction = trends[ind]
			view.Assessment = sim.Assess(ind, trends[ind])
		}
		if change, err := sim.ChangeFromBaseline(s.state.Indicators.Value(ind), ind.Baseline()); err == nil {
			view.ChangeFromBaseline = &change
		}
		out[ind.String()] = view
	}
	c.JSON(http.StatusOK, gin.H{"year": s.state.Year, "trends": out})
}

func (s *Server) getIndicators(c *gin.Context) {
	out := make([]indicatorView, 0, len(sim.Indicators()))
	for _, ind := range sim.Indicators() {
		r := sim.IndicatorRange(ind)
		view := indicatorView{IndicatorMeta: sim.IndicatorInfo(ind), Baseline: ind.Baseline(), Min: r.Min}
		if r.Clamped {
			hi := r.Max
			view.Max = &hi
		}
		out = append(out, view)
	}
	c.JSON(http.StatusOK, gin.H{"indicators": out})
}

func (s *Server) getDiets(c *gin.Context) {
	out := make([]dietView, 0, len(sim.Categories()))
	for _, cat := range sim.Categories() {
		f := sim.FactorsFor(cat)
		out = append(out, dietView{
			DietMeta:      sim.DietInfo(cat),
			CO2:           f.CO2,
			Land:          f.Land,
			Water:         f.Water,
			Health:        f.Health,
			Biodiversity:  f.Biodiversity,
			Efficiency:    f.Efficiency,
			AnimalsKilled: f.AnimalsKilled,
		})
	}
	c.JSON(http.StatusOK, gin.H{"diets": out})
}

func (s *Server) getPresets(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"presets": s.cfg.Presets})
}

type dietRequest struct {
	Value *float64 `json:"value" binding:"required"`
}

func (s *Server) putDiet(c *gin.Context) {
	category, err := sim.ParseDietCategory(c.Param("category"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	var req dietRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.state.SetDiet(category, *req.Value); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.viewOf())
}

func (s *Server) applyPreset(c *gin.Context) {
	p, err := s.cfg.Preset(c.Param("name"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	d, err := p.Distribution()
	if err != nil {
		abortWithError(c, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.state.ApplyDiet(d); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.viewOf())
}

type stepRequest struct {
	Years int `json:"years"`
}

func (s *Server) step(c *gin.Context) {
	req := stepRequest{Years: 1}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			abortWithError(c, fmt.Errorf("%w: %v", errBadRequest, err))
			return
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if req.Years < 1 || req.Years > s.state.MaxYear()-sim.StartYear {
		abortWithError(c, fmt.Errorf("%w: years must be between 1 and %d", errBadRequest, s.state.MaxYear()-sim.StartYear))
		return
	}
	done, err := s.state.Run(req.Years)
	if err != nil && done == 0 {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"advanced": done, "state": s.viewOf()})
}

// tick lets an external scheduler drive the session one interval at a time.
func (s *Server) tick(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	advanced, err := s.state.Tick()
	if err != nil {
		s.state.Stop()
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"advanced": advanced, "state": s.viewOf()})
}

func (s *Server) reset(c *gin.Context) {
	state, err := s.cfg.NewState()
	if err != nil {
		abortWithError(c, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	c.JSON(http.StatusOK, s.viewOf())
}

func (s *Server) control(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch c.Param("action") {
	case "start":
		s.state.Start()
	case "pause":
		s.state.Pause()
	case "resume":
		s.state.Resume()
	case "stop":
		s.state.Stop()
	default:
		abortWithError(c, fmt.Errorf("%w: unknown action %q", errBadRequest, c.Param("action")))
		return
	}
	c.JSON(http.StatusOK, s.viewOf())
}

type speedRequest struct {
	Speed float64 `json:"speed" binding:"required,gt=0"`
}

func (s *Server) putSpeed(c *gin.Context) {
	var req speedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SetSpeed(req.Speed)
	c.JSON(http.StatusOK, s.viewOf())
}

func (s *Server) listSnapshots(c *gin.Context) {
	names, err := s.store.List()
	if err != nil {
		abortWithError(c, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"snapshots": names})
}

func (s *Server) saveSnapshot(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Save(c.Param("name"), s.state); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"name": c.Param("name"), "year": s.state.Year})
}

func (s *Server) loadSnapshot(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Load(c.Param("name"), s.state); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.viewOf())
}
