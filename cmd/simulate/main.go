// cmd/simulate/main.go
// Runs one race headlessly and prints the standings.
//
// Usage:
//
//	go run ./cmd/simulate -seed 42 -mode stayer -v
//	go run ./cmd/simulate -results "Grand prize,Dinner,Coffee" -day chaos
package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/padraicbc/amidarace/catalog"
	"github.com/padraicbc/amidarace/config"
	"github.com/padraicbc/amidarace/course"
	bundb "github.com/padraicbc/amidarace/db"
	applog "github.com/padraicbc/amidarace/logger"
	"github.com/padraicbc/amidarace/race"
	"github.com/padraicbc/amidarace/random"
)

func main() {
	cfg := config.Load()
	rc := cfg.Race

	seed := flag.Int64("seed", rc.Seed, "race seed, 0 for a fresh one")
	mode := flag.String("mode", string(rc.Mode), "sprint, mile or stayer")
	length := flag.Float64("length", rc.CourseLength, "course length in course units, 0 draws from -mode")
	branches := flag.Float64("branches", rc.BranchDensity, "branch density 0..1")
	gimmicks := flag.Float64("gimmicks", rc.GimmickDensity, "gimmick density 0..1")
	lanes := flag.Int("lanes", rc.LaneCount, "lane count, 0 for one per horse")
	day := flag.String("day", "", "special day, empty to draw one")
	results := flag.String("results", "", "comma separated lane results, best first")
	fromDB := flag.Bool("db", false, "race the roster stored in the database")
	verbose := flag.Bool("v", false, "print race commentary")
	flag.Parse()

	logger, err := applog.Build(applog.Console, *verbose || cfg.Debug)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	m, ok := catalog.ParseRaceMode(*mode)
	if !ok {
		logger.Fatal("unknown race mode", zap.String("mode", *mode))
	}

	s, source, err := random.Resolve(*seed, nil)
	if err != nil {
		logger.Fatal("seed", zap.Error(err))
	}
	rng := random.New(s)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	horses := catalog.Roster()
	if *fromDB {
		db := bundb.Setup(cfg)
		stored, err := bundb.LoadRoster(ctx, db)
		_ = db.Close()
		if err != nil {
			logger.Fatal("load roster", zap.Error(err))
		}
		if len(stored) > 0 {
			horses = stored
		}
	}

	paddock := race.DrawPaddock(rng, len(horses))
	if *day != "" {
		paddock.SpecialDay = catalog.ParseSpecialDay(*day)
	}
	if *length <= 0 {
		*length = catalog.CourseLength(m, rng)
	}
	if *length > course.MaxTotalLength || *lanes > course.MaxLanes {
		logger.Warn("course clamped",
			zap.Float64("maxLength", course.MaxTotalLength),
			zap.Int("maxLanes", course.MaxLanes))
		*length = math.Min(*length, course.MaxTotalLength)
		*lanes = min(*lanes, course.MaxLanes)
	}

	setup := race.Setup{
		CourseLength:   *length,
		BranchDensity:  *branches,
		GimmickDensity: *gimmicks,
		LaneCount:      *lanes,
		LaneResults:    splitResults(*results),
		SpecialDay:     paddock.SpecialDay,
		Horses:         horses,
		Conditions:     paddock.Conditions,
	}

	logger.Info("race setup",
		zap.Int64("seed", s),
		zap.String("seedSource", string(source)),
		zap.String("mode", string(m)),
		zap.Float64("metres", *length/catalog.UnitsPerMetre),
		zap.String("specialDay", string(paddock.SpecialDay)),
		zap.String("theme", paddock.SpecialDay.Description()))

	mgr, err := race.Prepare(setup, rng, race.LogSink(logger, fmt.Sprintf("seed-%d", s)))
	if err != nil {
		logger.Fatal("prepare race", zap.Error(err))
	}
	standings, err := race.Simulate(ctx, mgr, rc.Tick, rc.MaxRaceTime)
	if err != nil {
		logger.Fatal("race aborted", zap.Error(err), zap.Int("finished", len(standings)))
	}

	conds := make(map[int]catalog.Condition, len(horses))
	for i, h := range horses {
		conds[h.ID] = paddock.Conditions[i]
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tHORSE\tCONDITION\tTIME\tRESULT")
	for _, r := range standings {
		fmt.Fprintf(w, "%d\t%s\t%s\t%.2fs\t%s\n", r.Rank, r.HorseName, conds[r.HorseID], r.FinishTime.Seconds(), r.Result)
	}
	_ = w.Flush()
}

func splitResults(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
