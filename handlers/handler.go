package handlers

import (
	"context"

	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/padraicbc/amidarace/catalog"
	"github.com/padraicbc/amidarace/config"
	"github.com/padraicbc/amidarace/db"
)

// Handler holds shared dependencies used by all route handlers.
type Handler struct {
	db     *bun.DB
	JWTKey []byte
	log    *zap.Logger
	race   config.RaceConfig
}

// New creates a Handler. A nil database serves the built-in roster only.
func New(bdb *bun.DB, jwtKey []byte, log *zap.Logger, race config.RaceConfig) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{db: bdb, JWTKey: jwtKey, log: log, race: race}
}

// roster returns the stored roster, or the built-in one when the table is
// empty or unavailable.
func (h *Handler) roster(ctx context.Context) ([]catalog.HorseProfile, string) {
	if h.db != nil {
		horses, err := db.LoadRoster(ctx, h.db)
		if err != nil {
			h.log.Warn("roster from database failed, using built-in", zap.Error(err))
		} else if len(horses) > 0 {
			return horses, "database"
		}
	}
	return catalog.Roster(), "builtin"
}
