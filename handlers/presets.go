package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/amidarace/catalog"
	"github.com/padraicbc/amidarace/db"
	mw "github.com/padraicbc/amidarace/middleware"
	"github.com/padraicbc/amidarace/models"
)

type createPresetRequest struct {
	Name           string   `json:"name"`
	Mode           string   `json:"mode"`
	CourseLength   float64  `json:"courseLength"`
	BranchDensity  float64  `json:"branchDensity"`
	GimmickDensity float64  `json:"gimmickDensity"`
	LaneCount      int      `json:"laneCount"`
	SpecialDay     string   `json:"specialDay"`
	LaneResults    []string `json:"laneResults"`
}

// Presets returns all stored race presets by name.
func (h *Handler) Presets(c echo.Context) error {
	if h.db == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "no database configured")
	}
	presets := []models.Preset{}
	err := h.db.NewSelect().
		Model(&presets).
		OrderExpr("p.name ASC").
		Scan(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, presets)
}

// CreatePreset stores a named race setup that later races can refer to.
func (h *Handler) CreatePreset(c echo.Context) error {
	if h.db == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "no database configured")
	}
	var req createPresetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}
	mode, ok := catalog.ParseRaceMode(req.Mode)
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown race mode "+strconv.Quote(req.Mode))
	}
	if req.BranchDensity < 0 || req.BranchDensity > 1 || req.GimmickDensity < 0 || req.GimmickDensity > 1 {
		return echo.NewHTTPError(http.StatusBadRequest, "densities must be between 0 and 1")
	}
	if req.CourseLength < 0 || req.LaneCount < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "course length and lane count cannot be negative")
	}
	if err := checkBounds(req.CourseLength, req.LaneCount); err != nil {
		return err
	}
	var day string
	if s := strings.TrimSpace(req.SpecialDay); s != "" {
		day = string(catalog.ParseSpecialDay(s))
	}

	preset := &models.Preset{
		Name:           req.Name,
		Mode:           string(mode),
		CourseLength:   req.CourseLength,
		BranchDensity:  req.BranchDensity,
		GimmickDensity: req.GimmickDensity,
		LaneCount:      req.LaneCount,
		SpecialDay:     day,
		LaneResults:    req.LaneResults,
		CreatedBy:      mw.Username(c),
	}

	if _, err := h.db.NewInsert().Model(preset).Exec(c.Request().Context()); err != nil {
		if isDuplicate(err) {
			return echo.NewHTTPError(http.StatusConflict, "preset already exists")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, preset)
}

// preset loads a stored preset, or nil when name is empty.
func (h *Handler) preset(c echo.Context, name string) (*models.Preset, error) {
	if name == "" {
		return nil, nil
	}
	if h.db == nil {
		return nil, echo.NewHTTPError(http.StatusServiceUnavailable, "no database configured")
	}
	p, err := db.FindPreset(c.Request().Context(), h.db, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "unknown preset "+strconv.Quote(name))
	}
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return p, nil
}

// isDuplicate matches unique violations from postgres, sqlite and mysql.
func isDuplicate(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "unique constraint failed") ||
		strings.Contains(msg, "duplicate entry")
}
