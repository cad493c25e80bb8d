package models

import "github.com/uptrace/bun"

// Preset is a named race setup. Zero values mean "use the server default";
// an empty SpecialDay is drawn per race.
type Preset struct {
	bun.BaseModel `bun:"table:presets,alias:p"`

	PresetID       int      `bun:"preset_id,pk,autoincrement" json:"presetID"`
	Name           string   `bun:"name,notnull,unique" json:"name"`
	Mode           string   `bun:"mode,notnull" json:"mode"`
	CourseLength   float64  `bun:"course_length,notnull" json:"courseLength"`
	BranchDensity  float64  `bun:"branch_density,notnull" json:"branchDensity"`
	GimmickDensity float64  `bun:"gimmick_density,notnull" json:"gimmickDensity"`
	LaneCount      int      `bun:"lane_count,notnull" json:"laneCount"`
	SpecialDay     string   `bun:"special_day" json:"specialDay,omitempty"`
	LaneResults    []string `bun:"lane_results" json:"laneResults"`
	CreatedBy      string   `bun:"created_by" json:"createdBy,omitempty"`
}
