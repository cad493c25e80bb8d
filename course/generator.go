package course

import (
	"fmt"
	"math"
	"sort"

	"github.com/padraicbc/amidarace/catalog"
)

// Layout constants, in course units.
const (
	StartX = 100.0

	SectionWidth    = 120.0 // branch section width
	sectionLead     = 100.0 // gap between start line and the first section
	sectionMargin   = 200.0 // course length not used for sections
	branchXSpan     = SectionWidth - 30
	MaxBranchesPer  = 5
	MaxLaneAttempts = 15
	GridWidth       = 150.0 // gimmick grid step
	gridLead        = 120.0
	gridJitter      = 80.0
	BranchBuffer    = 50.0 // no gimmick this close to a branch on the same lane
	MinGimmickGap   = 60.0 // no two gimmicks this close on the same lane

	MaxLanes       = 64
	MaxTotalLength = 30000.0 // 10km
)

// Params describes the course to build.
type Params struct {
	TotalLength    float64
	BranchDensity  float64
	GimmickDensity float64
	LaneCount      int
	LaneResults    []string
	SpecialDay     catalog.SpecialDay
}

func (p Params) normalized() Params {
	if p.TotalLength < 0 || math.IsNaN(p.TotalLength) {
		p.TotalLength = 0
	}
	if p.TotalLength > MaxTotalLength {
		p.TotalLength = MaxTotalLength
	}
	if p.LaneCount < 1 {
		p.LaneCount = 1
	}
	if p.LaneCount > MaxLanes {
		p.LaneCount = MaxLanes
	}
	p.BranchDensity = clamp01(p.BranchDensity)
	p.GimmickDensity = clamp01(p.GimmickDensity)
	if p.SpecialDay == "" {
		p.SpecialDay = catalog.DayNormal
	}
	return p
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Generate builds a course. All randomness comes from rng, so a seeded
// source reproduces the same course.
func Generate(p Params, rng catalog.Rand) *Data {
	p = p.normalized()
	startX := StartX
	goalX := startX + p.TotalLength

	lanes := make([]Lane, p.LaneCount)
	for i := range lanes {
		result := ""
		if i < len(p.LaneResults) {
			result = p.LaneResults[i]
		}
		if result == "" {
			result = placeholderResult(i)
		}
		lanes[i] = Lane{Index: i, Result: result, Color: catalog.LaneColor(i)}
	}

	branches := generateBranches(rng, startX, goalX, p.LaneCount, p.BranchDensity)
	gimmicks := generateGimmicks(rng, startX, goalX, p.LaneCount, p.GimmickDensity, branches, p.SpecialDay)

	return &Data{
		Lanes:       lanes,
		Branches:    branches,
		Gimmicks:    gimmicks,
		TotalLength: p.TotalLength,
		StartX:      startX,
		GoalX:       goalX,
	}
}

func generateBranches(rng catalog.Rand, startX, goalX float64, laneCount int, density float64) []Branch {
	branches := []Branch{}
	if laneCount < 2 || density <= 0 {
		return branches
	}

	sections := int(math.Floor((goalX - startX - sectionMargin) / SectionWidth))
	for s := 0; s < sections; s++ {
		sectionStart := startX + sectionLead + float64(s)*SectionWidth
		if rng.Float64() >= density {
			continue
		}

		count := rng.Intn(MaxBranchesPer) + 1
		used := map[int]bool{}
		for b := 0; b < count; b++ {
			from, ok := pickFreeLane(rng, laneCount, used)
			if !ok {
				continue
			}
			used[from] = true
			used[from+1] = true
			branches = append(branches, Branch{
				ID:       fmt.Sprintf("branch-%d-%d", s, b),
				X:        sectionStart + rng.Float64()*branchXSpan,
				FromLane: from,
				ToLane:   from + 1,
			})
		}
	}

	sort.SliceStable(branches, func(i, j int) bool { return branches[i].X < branches[j].X })
	return branches
}

// pickFreeLane finds a fromLane whose pair is untouched in this section,
// giving up after MaxLaneAttempts draws.
func pickFreeLane(rng catalog.Rand, laneCount int, used map[int]bool) (int, bool) {
	for attempt := 0; attempt < MaxLaneAttempts; attempt++ {
		from := rng.Intn(laneCount - 1)
		if !used[from] && !used[from+1] {
			return from, true
		}
	}
	return 0, false
}

func generateGimmicks(rng catalog.Rand, startX, goalX float64, laneCount int, density float64, branches []Branch, day catalog.SpecialDay) []Gimmick {
	gimmicks := []Gimmick{}
	if density <= 0 {
		return gimmicks
	}

	types := catalog.GimmickTypes()
	weights := catalog.SpawnWeights(day)

	cells := int(math.Floor((goalX - startX - sectionMargin) / GridWidth))
	for gx := 0; gx < cells; gx++ {
		for lane := 0; lane < laneCount; lane++ {
			if rng.Float64() >= density {
				continue
			}
			x := startX + gridLead + float64(gx)*GridWidth + (rng.Float64()-0.5)*gridJitter

			if nearBranch(branches, x, lane) || nearGimmick(gimmicks, x, lane) {
				continue
			}
			i := catalog.WeightedIndex(rng, weights)
			if i < 0 {
				continue
			}
			gimmicks = append(gimmicks, Gimmick{
				ID:     fmt.Sprintf("gimmick-%d-%d", gx, lane),
				Type:   types[i],
				X:      x,
				Lane:   lane,
				Active: true,
			})
		}
	}
	return gimmicks
}

func nearBranch(branches []Branch, x float64, lane int) bool {
	for _, b := range branches {
		if math.Abs(b.X-x) < BranchBuffer && b.Touches(lane) {
			return true
		}
	}
	return false
}

func nearGimmick(gimmicks []Gimmick, x float64, lane int) bool {
	for _, g := range gimmicks {
		if g.Lane == lane && math.Abs(g.X-x) < MinGimmickGap {
			return true
		}
	}
	return false
}
