// Package course models an amida race course and generates randomised ones.
package course

import (
	"fmt"

	"github.com/padraicbc/amidarace/catalog"
)

// Lane is one horizontal track. Result is the prize handed to the horse
// finishing at the rank matching the lane's index plus one.
type Lane struct {
	Index  int    `json:"index"`
	Result string `json:"result"`
	Color  string `json:"color"`
}

// Branch joins two adjacent lanes at X. ToLane is always FromLane+1.
type Branch struct {
	ID       string  `json:"id"`
	X        float64 `json:"x"`
	FromLane int     `json:"fromLane"`
	ToLane   int     `json:"toLane"`
}

// Other returns the lane on the opposite end of the branch from lane.
func (b Branch) Other(lane int) int {
	if lane == b.FromLane {
		return b.ToLane
	}
	return b.FromLane
}

// Touches reports whether the branch connects lane.
func (b Branch) Touches(lane int) bool {
	return lane == b.FromLane || lane == b.ToLane
}

// Gimmick is a tile placed on a lane.
type Gimmick struct {
	ID     string              `json:"id"`
	Type   catalog.GimmickType `json:"type"`
	X      float64             `json:"x"`
	Lane   int                 `json:"lane"`
	Active bool                `json:"active"`
}

// Data is everything a race needs to know about its course. Gimmicks may be
// deactivated or appended while the race runs; entries are never removed.
type Data struct {
	Lanes       []Lane    `json:"lanes"`
	Branches    []Branch  `json:"branches"`
	Gimmicks    []Gimmick `json:"gimmicks"`
	TotalLength float64   `json:"totalLength"`
	StartX      float64   `json:"startX"`
	GoalX       float64   `json:"goalX"`

	dynamic int
}

// LaneCount is the number of lanes on the course.
func (d *Data) LaneCount() int {
	return len(d.Lanes)
}

// ClampLane forces lane into [0, LaneCount).
func (d *Data) ClampLane(lane int) int {
	if lane < 0 {
		return 0
	}
	if n := d.LaneCount(); lane >= n {
		if n == 0 {
			return 0
		}
		return n - 1
	}
	return lane
}

// ResultFor returns the prize for a finishing rank (1-based). Ranks beyond
// the lane list get a placeholder rather than an empty string.
func (d *Data) ResultFor(rank int) string {
	if rank >= 1 && rank <= len(d.Lanes) {
		if r := d.Lanes[rank-1].Result; r != "" {
			return r
		}
	}
	return placeholderResult(rank - 1)
}

// GimmicksAhead returns active gimmicks strictly between x and x+distance.
func (d *Data) GimmicksAhead(x, distance float64) []Gimmick {
	var out []Gimmick
	for _, g := range d.Gimmicks {
		if g.Active && g.X > x && g.X < x+distance {
			out = append(out, g)
		}
	}
	return out
}

// Append places a new active gimmick during the race and returns it.
func (d *Data) Append(t catalog.GimmickType, x float64, lane int) Gimmick {
	d.dynamic++
	g := Gimmick{
		ID:     fmt.Sprintf("dynamic-%s-%d", t, d.dynamic),
		Type:   t,
		X:      x,
		Lane:   d.ClampLane(lane),
		Active: true,
	}
	d.Gimmicks = append(d.Gimmicks, g)
	return g
}

// Deactivate switches a gimmick off. It reports whether the gimmick was
// found and active.
func (d *Data) Deactivate(id string) bool {
	for i := range d.Gimmicks {
		if d.Gimmicks[i].ID == id && d.Gimmicks[i].Active {
			d.Gimmicks[i].Active = false
			return true
		}
	}
	return false
}

func placeholderResult(i int) string {
	return fmt.Sprintf("Lane %d", i+1)
}
