package course

import (
	"math"
	"math/rand"
	"testing"

	"github.com/padraicbc/amidarace/catalog"
)

func defaultParams() Params {
	return Params{
		TotalLength:    13500,
		BranchDensity:  0.7,
		GimmickDensity: 0.4,
		LaneCount:      15,
		SpecialDay:     catalog.DayChaos,
	}
}

// TestGenerateBranchInvariants checks adjacency, bounds and ordering over many seeds.
func TestGenerateBranchInvariants(t *testing.T) {
	for seed := int64(0); seed < 25; seed++ {
		d := Generate(defaultParams(), rand.New(rand.NewSource(seed)))
		if len(d.Branches) == 0 {
			t.Fatalf("seed %d: expected branches on a long dense course", seed)
		}
		ids := map[string]bool{}
		for i, b := range d.Branches {
			if b.ToLane != b.FromLane+1 {
				t.Fatalf("seed %d: branch %s connects %d->%d", seed, b.ID, b.FromLane, b.ToLane)
			}
			if b.FromLane < 0 || b.ToLane >= d.LaneCount() {
				t.Fatalf("seed %d: branch %s out of lane bounds", seed, b.ID)
			}
			if b.X <= d.StartX || b.X >= d.GoalX {
				t.Fatalf("seed %d: branch %s at %v outside course", seed, b.ID, b.X)
			}
			if i > 0 && d.Branches[i-1].X > b.X {
				t.Fatalf("seed %d: branches not sorted at %d", seed, i)
			}
			if ids[b.ID] {
				t.Fatalf("seed %d: duplicate branch id %s", seed, b.ID)
			}
			ids[b.ID] = true
		}
	}
}

// TestGenerateBranchesNeverShareLaneInSection ensures a section never touches a lane twice.
func TestGenerateBranchesNeverShareLaneInSection(t *testing.T) {
	for seed := int64(0); seed < 25; seed++ {
		d := Generate(defaultParams(), rand.New(rand.NewSource(seed)))
		sections := map[int]map[int]bool{}
		for _, b := range d.Branches {
			s := int(math.Floor((b.X - d.StartX - sectionLead) / SectionWidth))
			if sections[s] == nil {
				sections[s] = map[int]bool{}
			}
			if sections[s][b.FromLane] || sections[s][b.ToLane] {
				t.Fatalf("seed %d: section %d reuses a lane at branch %s", seed, s, b.ID)
			}
			sections[s][b.FromLane] = true
			sections[s][b.ToLane] = true
		}
	}
}

// TestGenerateGimmickSpacing checks branch buffers, lane gaps and bounds.
func TestGenerateGimmickSpacing(t *testing.T) {
	for seed := int64(0); seed < 25; seed++ {
		d := Generate(defaultParams(), rand.New(rand.NewSource(seed)))
		if len(d.Gimmicks) == 0 {
			t.Fatalf("seed %d: expected gimmicks", seed)
		}
		for i, g := range d.Gimmicks {
			if !g.Active {
				t.Fatalf("seed %d: gimmick %s starts inactive", seed, g.ID)
			}
			if g.Lane < 0 || g.Lane >= d.LaneCount() {
				t.Fatalf("seed %d: gimmick %s lane %d", seed, g.ID, g.Lane)
			}
			if g.X <= d.StartX || g.X >= d.GoalX {
				t.Fatalf("seed %d: gimmick %s at %v outside course", seed, g.ID, g.X)
			}
			for _, b := range d.Branches {
				if b.Touches(g.Lane) && math.Abs(b.X-g.X) < BranchBuffer {
					t.Fatalf("seed %d: gimmick %s within %v of branch %s", seed, g.ID, BranchBuffer, b.ID)
				}
			}
			for _, o := range d.Gimmicks[i+1:] {
				if o.Lane == g.Lane && math.Abs(o.X-g.X) < MinGimmickGap {
					t.Fatalf("seed %d: gimmicks %s and %s too close", seed, g.ID, o.ID)
				}
			}
		}
	}
}

// TestGenerateZeroDensity ensures zero densities produce an empty course.
func TestGenerateZeroDensity(t *testing.T) {
	p := Params{TotalLength: 13500, LaneCount: 15}
	d := Generate(p, rand.New(rand.NewSource(1)))
	if len(d.Branches) != 0 {
		t.Fatalf("expected no branches, got %d", len(d.Branches))
	}
	if len(d.Gimmicks) != 0 {
		t.Fatalf("expected no gimmicks, got %d", len(d.Gimmicks))
	}
	if d.LaneCount() != 15 {
		t.Fatalf("expected 15 lanes, got %d", d.LaneCount())
	}
}

// TestGenerateTinyCourse ensures a course shorter than one section is tolerated.
func TestGenerateTinyCourse(t *testing.T) {
	for _, length := range []float64{0, 50, 199, -10} {
		p := defaultParams()
		p.TotalLength = length
		d := Generate(p, rand.New(rand.NewSource(5)))
		if len(d.Branches) != 0 || len(d.Gimmicks) != 0 {
			t.Fatalf("length %v: expected empty course, got %d branches %d gimmicks",
				length, len(d.Branches), len(d.Gimmicks))
		}
		if d.GoalX < d.StartX {
			t.Fatalf("length %v: goal %v before start %v", length, d.GoalX, d.StartX)
		}
	}
}

// TestGenerateSingleLane ensures one lane can never hold a branch.
func TestGenerateSingleLane(t *testing.T) {
	p := defaultParams()
	p.LaneCount = 1
	d := Generate(p, rand.New(rand.NewSource(2)))
	if len(d.Branches) != 0 {
		t.Fatalf("expected no branches on one lane, got %d", len(d.Branches))
	}
}

// TestGenerateLaneResults ensures missing labels get placeholders.
func TestGenerateLaneResults(t *testing.T) {
	p := Params{TotalLength: 1000, LaneCount: 4, LaneResults: []string{"Grand prize", "", "Snacks"}}
	d := Generate(p, rand.New(rand.NewSource(1)))
	want := []string{"Grand prize", "Lane 2", "Snacks", "Lane 4"}
	for i, w := range want {
		if d.Lanes[i].Result != w {
			t.Fatalf("lane %d result = %q, want %q", i, d.Lanes[i].Result, w)
		}
		if d.Lanes[i].Index != i {
			t.Fatalf("lane %d has index %d", i, d.Lanes[i].Index)
		}
	}
	if got := d.ResultFor(9); got != "Lane 9" {
		t.Fatalf("ResultFor(9) = %q", got)
	}
}

// TestGenerateDeterministic ensures the same seed yields the same course.
func TestGenerateDeterministic(t *testing.T) {
	a := Generate(defaultParams(), rand.New(rand.NewSource(99)))
	b := Generate(defaultParams(), rand.New(rand.NewSource(99)))
	if len(a.Branches) != len(b.Branches) || len(a.Gimmicks) != len(b.Gimmicks) {
		t.Fatal("same seed produced different course sizes")
	}
	for i := range a.Gimmicks {
		if a.Gimmicks[i] != b.Gimmicks[i] {
			t.Fatalf("gimmick %d differs: %+v vs %+v", i, a.Gimmicks[i], b.Gimmicks[i])
		}
	}
}

// TestDataAppendAndDeactivate covers the in-race mutation helpers.
func TestDataAppendAndDeactivate(t *testing.T) {
	d := Generate(Params{TotalLength: 1000, LaneCount: 3}, rand.New(rand.NewSource(1)))
	a := d.Append(catalog.GimmickPoop, 400, 7)
	b := d.Append(catalog.GimmickPoop, 500, 1)
	if a.ID == b.ID {
		t.Fatalf("dynamic ids collide: %s", a.ID)
	}
	if a.Lane != 2 {
		t.Fatalf("appended lane = %d, want clamped 2", a.Lane)
	}
	if got := d.GimmicksAhead(350, 100); len(got) != 1 || got[0].ID != a.ID {
		t.Fatalf("GimmicksAhead = %+v", got)
	}
	if !d.Deactivate(a.ID) {
		t.Fatal("Deactivate returned false for active gimmick")
	}
	if d.Deactivate(a.ID) {
		t.Fatal("Deactivate returned true twice")
	}
	if got := d.GimmicksAhead(350, 100); len(got) != 0 {
		t.Fatalf("inactive gimmick still ahead: %+v", got)
	}
}

// TestGenerateClampsOversizedInput caps lanes and length instead of allocating them.
func TestGenerateClampsOversizedInput(t *testing.T) {
	for _, p := range []Params{
		{TotalLength: 3000, LaneCount: 1 << 60, GimmickDensity: 1},
		{TotalLength: math.Inf(1), LaneCount: 2, BranchDensity: 1},
		{TotalLength: 1e12, LaneCount: MaxLanes + 1},
	} {
		d := Generate(p, rand.New(rand.NewSource(3)))
		if d.LaneCount() > MaxLanes || d.LaneCount() < 1 {
			t.Fatalf("%+v: lane count = %d", p, d.LaneCount())
		}
		if d.GoalX-d.StartX > MaxTotalLength {
			t.Fatalf("%+v: length = %v", p, d.GoalX-d.StartX)
		}
		for _, g := range d.Gimmicks {
			if g.Lane >= d.LaneCount() || g.X >= d.GoalX {
				t.Fatalf("%+v: gimmick out of bounds %+v", p, g)
			}
		}
	}
}
