package plan

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// SizeTarget is one entry of the parcel program: a named size group with an
// area range and the share of buildable area it should claim.
type SizeTarget struct {
	SizeGroup        string  `yaml:"size_group" json:"size_group"`
	MinArea          float64 `yaml:"min_area" json:"min_area"`
	MaxArea          float64 `yaml:"max_area" json:"max_area"`
	TargetPercent    float64 `yaml:"target_percent" json:"target_percent"`
	RequiresFrontage bool    `yaml:"requires_frontage,omitempty" json:"requires_frontage,omitempty"`
}

// AverageArea returns the midpoint of the group's area range.
func (t SizeTarget) AverageArea() float64 {
	return (t.MinArea + t.MaxArea) / 2
}

// Constraints is the per-project planning configuration. Target percents are
// proportions of buildable area and need not sum to 1.0; the remainder ends
// up as green area.
type Constraints struct {
	ProjectID        string       `yaml:"project_id" json:"project_id"`
	MinGreenRatio    float64      `yaml:"min_green_ratio" json:"min_green_ratio"`
	SetbackBoundaryM float64      `yaml:"setback_boundary_m" json:"setback_boundary_m"`
	BufferObstacleM  float64      `yaml:"buffer_obstacle_m" json:"buffer_obstacle_m"`
	MainRoadWidthM   float64      `yaml:"main_road_width_m" json:"main_road_width_m"`
	LocalRoadWidthM  float64      `yaml:"local_road_width_m" json:"local_road_width_m"`
	ParcelProgram    []SizeTarget `yaml:"parcel_program" json:"parcel_program"`
}

// Stated defaults for every optional constraint field. The parcel program
// has no default; it must be supplied.
const (
	DefaultMinGreenRatio    = 0.10
	DefaultSetbackBoundaryM = 5.0
	DefaultBufferObstacleM  = 3.0
	DefaultMainRoadWidthM   = 12.0
	DefaultLocalRoadWidthM  = 8.0
)

// Defaults returns a constraint record with every optional field at its
// stated default.
func Defaults() Constraints {
	return Constraints{
		MinGreenRatio:    DefaultMinGreenRatio,
		SetbackBoundaryM: DefaultSetbackBoundaryM,
		BufferObstacleM:  DefaultBufferObstacleM,
		MainRoadWidthM:   DefaultMainRoadWidthM,
		LocalRoadWidthM:  DefaultLocalRoadWidthM,
	}
}

// UnmarshalJSON decodes over a defaulted record so absent fields keep their
// stated defaults while explicit zeros are honored.
func (c *Constraints) UnmarshalJSON(data []byte) error {
	type raw Constraints
	r := raw(Defaults())
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	*c = Constraints(r)
	return nil
}

// UnmarshalYAML mirrors UnmarshalJSON for YAML sources.
func (c *Constraints) UnmarshalYAML(value *yaml.Node) error {
	type raw Constraints
	r := raw(Defaults())
	if err := value.Decode(&r); err != nil {
		return err
	}
	*c = Constraints(r)
	return nil
}

// Style selects the road network synthesis strategy.
type Style string

const (
	// StyleGrid lays axis-aligned main and local road strips.
	StyleGrid Style = "grid"
	// StyleRotated aligns the grid with the existing road and adds round
	// junctions.
	StyleRotated Style = "rotated"
	// StyleOrganic grows a perturbed curved network with roundabouts.
	StyleOrganic Style = "organic"
)

// RoadConfig tunes the synthesized network for one pipeline run.
type RoadConfig struct {
	Style             Style   `yaml:"style,omitempty" json:"style,omitempty"`
	MainRoadWidth     float64 `yaml:"main_road_width" json:"main_road_width"`
	LocalRoadWidth    float64 `yaml:"local_road_width" json:"local_road_width"`
	VerticalSpacing   float64 `yaml:"vertical_spacing" json:"vertical_spacing"`
	HorizontalSpacing float64 `yaml:"horizontal_spacing" json:"horizontal_spacing"`
	Seed              int64   `yaml:"seed,omitempty" json:"seed,omitempty"`
}

// Stock spacings used when a run does not bring its own road config.
const (
	DefaultVerticalSpacing   = 250.0
	DefaultHorizontalSpacing = 180.0
)

// RoadDefaults derives the stock road configuration from a constraint
// record: the record's widths with default spacings and the grid style.
func RoadDefaults(c Constraints) RoadConfig {
	return RoadConfig{
		Style:             StyleGrid,
		MainRoadWidth:     c.MainRoadWidthM,
		LocalRoadWidth:    c.LocalRoadWidthM,
		VerticalSpacing:   DefaultVerticalSpacing,
		HorizontalSpacing: DefaultHorizontalSpacing,
	}
}

// ApplyDefaults fills unset road config fields from the constraint record.
func (rc *RoadConfig) ApplyDefaults(c Constraints) {
	def := RoadDefaults(c)
	if rc.Style == "" {
		rc.Style = def.Style
	}
	if rc.MainRoadWidth <= 0 {
		rc.MainRoadWidth = def.MainRoadWidth
	}
	if rc.LocalRoadWidth <= 0 {
		rc.LocalRoadWidth = def.LocalRoadWidth
	}
	if rc.VerticalSpacing <= 0 {
		rc.VerticalSpacing = def.VerticalSpacing
	}
	if rc.HorizontalSpacing <= 0 {
		rc.HorizontalSpacing = def.HorizontalSpacing
	}
}
