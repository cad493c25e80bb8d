package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/padraicbc/amidarace/catalog"
	"github.com/padraicbc/amidarace/config"
	"github.com/padraicbc/amidarace/course"
	"github.com/padraicbc/amidarace/models"
	"github.com/padraicbc/amidarace/race"
	"github.com/padraicbc/amidarace/random"
)

type entry struct {
	Horse     catalog.HorseProfile `json:"horse"`
	Lane      int                  `json:"lane"`
	Condition catalog.Condition    `json:"condition"`
	Modifier  float64              `json:"modifier"`
}

type paddockResponse struct {
	Seed        int64              `json:"seed"`
	SeedSource  random.Source      `json:"seedSource"`
	SpecialDay  catalog.SpecialDay `json:"specialDay"`
	Description string             `json:"description"`
	Entries     []entry            `json:"entries"`
}

type raceRequest struct {
	Mode           string   `json:"mode"`
	CourseLength   float64  `json:"courseLength"`
	BranchDensity  *float64 `json:"branchDensity"`
	GimmickDensity *float64 `json:"gimmickDensity"`
	LaneCount      int      `json:"laneCount"`
	LaneResults    []string `json:"laneResults"`
	SpecialDay     string   `json:"specialDay"`
	Conditions     []string `json:"conditions"`
	Horses         []int    `json:"horses"`
	Seed           int64    `json:"seed"`
	Preset         string   `json:"preset"`
}

type raceResponse struct {
	RaceID       string             `json:"raceID"`
	Preset       string             `json:"preset,omitempty"`
	Seed         int64              `json:"seed"`
	SeedSource   random.Source      `json:"seedSource"`
	Mode         catalog.RaceMode   `json:"mode"`
	SpecialDay   catalog.SpecialDay `json:"specialDay"`
	CourseLength float64            `json:"courseLength"`
	Metres       float64            `json:"metres"`
	Entries      []entry            `json:"entries"`
	Results      []race.Result      `json:"results"`
	Events       []race.Event       `json:"events"`
}

func entries(horses []catalog.HorseProfile, conds []catalog.Condition) []entry {
	out := make([]entry, len(horses))
	for i, h := range horses {
		c := catalog.ConditionNormal
		if i < len(conds) {
			c = conds[i]
		}
		out[i] = entry{Horse: h, Lane: i, Condition: c, Modifier: c.SpeedModifier()}
	}
	return out
}

func seedParam(c echo.Context) (int64, error) {
	s := c.QueryParam("seed")
	if s == "" {
		return 0, nil
	}
	seed, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "seed must be an integer")
	}
	return seed, nil
}

// Horses returns the roster races are drawn from.
func (h *Handler) Horses(c echo.Context) error {
	horses, source := h.roster(c.Request().Context())
	return c.JSON(http.StatusOK, map[string]any{
		"source": source,
		"horses": horses,
	})
}

// Paddock draws the special day and every horse's condition. The same seed
// passed to Race reproduces this draw.
func (h *Handler) Paddock(c echo.Context) error {
	requested, err := seedParam(c)
	if err != nil {
		return err
	}
	seed, source, err := random.Resolve(requested, nil)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	horses, _ := h.roster(c.Request().Context())
	p := race.DrawPaddock(random.New(seed), len(horses))

	return c.JSON(http.StatusOK, paddockResponse{
		Seed:        seed,
		SeedSource:  source,
		SpecialDay:  p.SpecialDay,
		Description: p.SpecialDay.Description(),
		Entries:     entries(horses, p.Conditions),
	})
}

// Catalog lists the static tables a client needs to explain a race.
func (h *Handler) Catalog(c echo.Context) error {
	type day struct {
		Day         catalog.SpecialDay `json:"day"`
		Description string             `json:"description"`
	}
	days := make([]day, 0, len(catalog.SpecialDays()))
	for _, d := range catalog.SpecialDays() {
		days = append(days, day{d, d.Description()})
	}
	var gimmicks []catalog.GimmickSpec
	for _, t := range catalog.GimmickTypes() {
		if g, ok := catalog.Gimmick(t); ok {
			gimmicks = append(gimmicks, g)
		}
	}
	return c.JSON(http.StatusOK, map[string]any{
		"abilities":   catalog.Abilities(),
		"conditions":  catalog.ConditionWeights(),
		"specialDays": days,
		"gimmicks":    gimmicks,
	})
}

// Race runs one race to completion and returns the standings with the full
// event log. Request fields win over a named preset, which wins over the
// server defaults. Nothing is stored.
func (h *Handler) Race(c echo.Context) error {
	var req raceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	defaults := h.race
	preset, err := h.preset(c, req.Preset)
	if err != nil {
		return err
	}
	if preset != nil {
		defaults = withPreset(defaults, preset)
		if req.SpecialDay == "" {
			req.SpecialDay = preset.SpecialDay
		}
		if len(req.LaneResults) == 0 {
			req.LaneResults = preset.LaneResults
		}
	}

	mode := defaults.Mode
	if req.Mode != "" {
		m, ok := catalog.ParseRaceMode(req.Mode)
		if !ok {
			return echo.NewHTTPError(http.StatusBadRequest, "unknown race mode "+strconv.Quote(req.Mode))
		}
		mode = m
	}

	if err := checkBounds(req.CourseLength, req.LaneCount); err != nil {
		return err
	}

	seed, source, err := random.Resolve(req.Seed, nil)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	rng := random.New(seed)

	ctx := c.Request().Context()
	horses, err := h.pick(ctx, req.Horses)
	if err != nil {
		return err
	}

	// paddock first, in the same order as the paddock endpoint
	p := race.DrawPaddock(rng, len(horses))
	if req.SpecialDay != "" {
		p.SpecialDay = catalog.ParseSpecialDay(req.SpecialDay)
	}
	for i, s := range req.Conditions {
		if i < len(p.Conditions) && s != "" {
			p.Conditions[i] = catalog.ParseCondition(s)
		}
	}

	length := req.CourseLength
	if length <= 0 {
		length = defaults.CourseLength
	}
	if length <= 0 {
		length = catalog.CourseLength(mode, rng)
	}
	lanes := req.LaneCount
	if lanes <= 0 {
		lanes = defaults.LaneCount
	}

	setup := race.Setup{
		CourseLength:   length,
		BranchDensity:  valueOr(req.BranchDensity, defaults.BranchDensity),
		GimmickDensity: valueOr(req.GimmickDensity, defaults.GimmickDensity),
		LaneCount:      lanes,
		LaneResults:    req.LaneResults,
		SpecialDay:     p.SpecialDay,
		Horses:         horses,
		Conditions:     p.Conditions,
	}

	raceID := uuid.New().String()
	rec := &race.Recorder{}
	m, err := race.Prepare(setup, rng, race.Tee(rec, race.LogSink(h.log, raceID)))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	results, err := race.Simulate(ctx, m, h.race.Tick, h.race.MaxRaceTime)
	if err != nil {
		h.log.Warn("race aborted", zap.String("race", raceID), zap.Int64("seed", seed), zap.Error(err))
		if errors.Is(err, race.ErrRaceTimeout) {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
		}
		return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
	}
	h.log.Info("race run",
		zap.String("race", raceID),
		zap.Int64("seed", seed),
		zap.String("winner", results[0].HorseName),
		zap.Duration("elapsed", m.Elapsed()))

	return c.JSON(http.StatusOK, raceResponse{
		RaceID:       raceID,
		Preset:       req.Preset,
		Seed:         seed,
		SeedSource:   source,
		Mode:         mode,
		SpecialDay:   p.SpecialDay,
		CourseLength: length,
		Metres:       length / catalog.UnitsPerMetre,
		Entries:      entries(horses, p.Conditions),
		Results:      results,
		Events:       rec.Events(),
	})
}

// pick returns the roster, or the horses with the given ids in that order.
func (h *Handler) pick(ctx context.Context, ids []int) ([]catalog.HorseProfile, error) {
	horses, _ := h.roster(ctx)
	if len(ids) == 0 {
		return horses, nil
	}
	byID := make(map[int]catalog.HorseProfile, len(horses))
	for _, hp := range horses {
		byID[hp.ID] = hp
	}
	out := make([]catalog.HorseProfile, 0, len(ids))
	seen := make(map[int]bool, len(ids))
	for _, id := range ids {
		hp, ok := byID[id]
		if !ok {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "unknown horse "+strconv.Itoa(id))
		}
		if seen[id] {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "horse "+strconv.Itoa(id)+" entered twice")
		}
		seen[id] = true
		out = append(out, hp)
	}
	return out, nil
}

// checkBounds rejects course sizes the generator would have to clamp.
func checkBounds(length float64, lanes int) error {
	if length > course.MaxTotalLength {
		return echo.NewHTTPError(http.StatusBadRequest,
			"courseLength cannot exceed "+strconv.FormatFloat(course.MaxTotalLength, 'f', -1, 64))
	}
	if lanes > course.MaxLanes {
		return echo.NewHTTPError(http.StatusBadRequest, "laneCount cannot exceed "+strconv.Itoa(course.MaxLanes))
	}
	return nil
}

// withPreset overlays the non-zero preset settings on rc.
func withPreset(rc config.RaceConfig, p *models.Preset) config.RaceConfig {
	if m, ok := catalog.ParseRaceMode(p.Mode); ok {
		rc.Mode = m
	}
	if p.CourseLength > 0 {
		rc.CourseLength = p.CourseLength
	}
	if p.LaneCount > 0 {
		rc.LaneCount = p.LaneCount
	}
	rc.BranchDensity = p.BranchDensity
	rc.GimmickDensity = p.GimmickDensity
	return rc
}

func valueOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}
