package validation

import (
	"fmt"

	"github.com/Abhinav2146/Estate-Layout-Design/pkg/plan"
)

// ValidateConstraints performs schema-level checks on a constraint record
// before any geometry work.
func ValidateConstraints(c plan.Constraints) *Report {
	r := NewReport()

	validateRatios(c, r)
	validateBuffers(c, r)
	validateWidths(c, r)
	validateProgram(c, r)
	validateFeasibility(c, r)

	return r
}

func validateRatios(c plan.Constraints, r *Report) {
	if c.MinGreenRatio < 0 || c.MinGreenRatio >= 1 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     fmt.Sprintf("min_green_ratio %.2f is outside valid range", c.MinGreenRatio),
			Field:       "min_green_ratio",
			ActualValue: c.MinGreenRatio,
			Expected:    "0 <= ratio < 1",
		})
	}
}

func validateBuffers(c plan.Constraints, r *Report) {
	if c.SetbackBoundaryM < 0 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "setback_boundary_m must be non-negative",
			Field:       "setback_boundary_m",
			ActualValue: c.SetbackBoundaryM,
			Expected:    ">= 0",
		})
	}
	if c.BufferObstacleM < 0 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "buffer_obstacle_m must be non-negative",
			Field:       "buffer_obstacle_m",
			ActualValue: c.BufferObstacleM,
			Expected:    ">= 0",
		})
	}
}

func validateWidths(c plan.Constraints, r *Report) {
	if c.MainRoadWidthM <= 0 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "main_road_width_m must be greater than 0",
			Field:       "main_road_width_m",
			ActualValue: c.MainRoadWidthM,
			Expected:    "> 0",
		})
	}
	if c.LocalRoadWidthM <= 0 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "local_road_width_m must be greater than 0",
			Field:       "local_road_width_m",
			ActualValue: c.LocalRoadWidthM,
			Expected:    "> 0",
		})
	}
	if c.MainRoadWidthM > 0 && c.LocalRoadWidthM > c.MainRoadWidthM {
		r.AddWarning(Result{
			Level:        LevelSchema,
			Message:      fmt.Sprintf("local_road_width_m (%.1f) exceeds main_road_width_m (%.1f)", c.LocalRoadWidthM, c.MainRoadWidthM),
			Field:        "local_road_width_m",
			ActualValue:  c.LocalRoadWidthM,
			ConflictWith: "main_road_width_m",
		})
	}
}

func validateProgram(c plan.Constraints, r *Report) {
	if len(c.ParcelProgram) == 0 {
		r.AddError(Result{
			Level:    LevelSchema,
			Message:  "parcel_program must contain at least one size target",
			Field:    "parcel_program",
			Expected: "at least 1 entry",
		})
		return
	}

	seen := make(map[string]bool, len(c.ParcelProgram))
	for i, tgt := range c.ParcelProgram {
		field := fmt.Sprintf("parcel_program[%d]", i)

		if tgt.SizeGroup == "" {
			r.AddError(Result{
				Level:   LevelSchema,
				Message: fmt.Sprintf("%s: size_group must be set", field),
				Field:   field + ".size_group",
			})
		} else if seen[tgt.SizeGroup] {
			r.AddWarning(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("%s: duplicate size_group %q", field, tgt.SizeGroup),
				Field:       field + ".size_group",
				ActualValue: tgt.SizeGroup,
			})
		}
		seen[tgt.SizeGroup] = true

		if tgt.SizeGroup != "" {
			if _, ok := plan.SizeGroupByName(tgt.SizeGroup); !ok {
				r.AddInfo(Result{
					Level:       LevelSchema,
					Message:     fmt.Sprintf("%s: size_group %q is not a canonical group", field, tgt.SizeGroup),
					Field:       field + ".size_group",
					ActualValue: tgt.SizeGroup,
				})
			}
		}

		if tgt.MinArea <= 0 {
			r.AddError(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("%s (%s): min_area must be greater than 0", field, tgt.SizeGroup),
				Field:       field + ".min_area",
				ActualValue: tgt.MinArea,
				Expected:    "> 0",
			})
		}
		if tgt.MinArea >= tgt.MaxArea {
			r.AddError(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("%s (%s): min_area (%.0f) must be less than max_area (%.0f)", field, tgt.SizeGroup, tgt.MinArea, tgt.MaxArea),
				Field:       field,
				ActualValue: fmt.Sprintf("%.0f-%.0f", tgt.MinArea, tgt.MaxArea),
			})
		}
		if tgt.TargetPercent <= 0 || tgt.TargetPercent > 1 {
			r.AddError(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("%s (%s): target_percent %.2f is outside valid range", field, tgt.SizeGroup, tgt.TargetPercent),
				Field:       field + ".target_percent",
				ActualValue: tgt.TargetPercent,
				Expected:    "0 < percent <= 1",
			})
		}
	}
}

func validateFeasibility(c plan.Constraints, r *Report) {
	sum := 0.0
	for _, tgt := range c.ParcelProgram {
		sum += tgt.TargetPercent
	}
	if sum > 1.0+0.001 {
		r.AddError(Result{
			Level:       LevelFeasibility,
			Message:     fmt.Sprintf("parcel_program target percents sum to %.2f, over-allocating the buildable area", sum),
			Field:       "parcel_program",
			ActualValue: sum,
			Expected:    "<= 1.0",
			Suggestions: []string{"Reduce target percents so they sum to at most 1.0"},
		})
	} else if sum+c.MinGreenRatio > 1.0+0.001 {
		r.AddWarning(Result{
			Level:        LevelFeasibility,
			Message:      fmt.Sprintf("target percents (%.2f) leave less than min_green_ratio (%.2f) unallocated", sum, c.MinGreenRatio),
			Field:        "parcel_program",
			ActualValue:  sum,
			ConflictWith: "min_green_ratio",
			Suggestions:  []string{"Lower target percents or min_green_ratio"},
		})
	}
}

// ValidateRoadConfig performs schema-level checks on a road configuration.
func ValidateRoadConfig(rc plan.RoadConfig) *Report {
	r := NewReport()

	switch rc.Style {
	case plan.StyleGrid, plan.StyleRotated, plan.StyleOrganic:
	default:
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     fmt.Sprintf("unknown road style %q", rc.Style),
			Field:       "style",
			ActualValue: string(rc.Style),
			Expected:    "grid, rotated, or organic",
		})
	}

	if rc.MainRoadWidth <= 0 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "main_road_width must be greater than 0",
			Field:       "main_road_width",
			ActualValue: rc.MainRoadWidth,
			Expected:    "> 0",
		})
	}
	if rc.LocalRoadWidth <= 0 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "local_road_width must be greater than 0",
			Field:       "local_road_width",
			ActualValue: rc.LocalRoadWidth,
			Expected:    "> 0",
		})
	}

	if rc.VerticalSpacing <= rc.MainRoadWidth {
		r.AddError(Result{
			Level:        LevelSchema,
			Message:      fmt.Sprintf("vertical_spacing (%.0f) must exceed main_road_width (%.1f)", rc.VerticalSpacing, rc.MainRoadWidth),
			Field:        "vertical_spacing",
			ActualValue:  rc.VerticalSpacing,
			ConflictWith: "main_road_width",
		})
	}
	if rc.HorizontalSpacing <= rc.LocalRoadWidth {
		r.AddError(Result{
			Level:        LevelSchema,
			Message:      fmt.Sprintf("horizontal_spacing (%.0f) must exceed local_road_width (%.1f)", rc.HorizontalSpacing, rc.LocalRoadWidth),
			Field:        "horizontal_spacing",
			ActualValue:  rc.HorizontalSpacing,
			ConflictWith: "local_road_width",
		})
	}

	return r
}
