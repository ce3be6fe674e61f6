package metrics

import "github.com/Abhinav2146/Estate-Layout-Design/pkg/feature"

// NetBuildable is the per-size-group saleable area summary.
type NetBuildable struct {
	TotalSaleableSQM float64                   `json:"total_saleable_sqm"`
	BySizeGroup      map[string]SizeGroupStats `json:"by_size_group"`
}

// SizeGroupStats describes one size group's share of the saleable land.
type SizeGroupStats struct {
	PlotCount              int     `json:"plot_count"`
	TotalNetBuildableSQM   float64 `json:"total_net_buildable_sqm"`
	AvgPlotSizeSQM         float64 `json:"avg_plot_size_sqm"`
	ShareOfSaleablePercent float64 `json:"share_of_saleable_percent"`
}

// NetBuildableBySize sums parcel features per size group and derives each
// group's average plot size and share of the total saleable area.
func NetBuildableBySize(features []feature.Feature) NetBuildable {
	type tally struct {
		count int
		sqm   float64
	}
	groups := make(map[string]*tally)
	total := 0.0

	for _, f := range features {
		if f.Properties.Type != feature.TypeParcel {
			continue
		}
		group := f.Properties.SizeGroup
		if group == "" {
			group = "Unknown"
		}
		area := f.Properties.AreaSQM
		total += area

		t := groups[group]
		if t == nil {
			t = &tally{}
			groups[group] = t
		}
		t.count++
		t.sqm += area
	}

	byGroup := make(map[string]SizeGroupStats, len(groups))
	for group, t := range groups {
		stats := SizeGroupStats{
			PlotCount:            t.count,
			TotalNetBuildableSQM: round2(t.sqm),
		}
		if t.count > 0 {
			stats.AvgPlotSizeSQM = round2(t.sqm / float64(t.count))
		}
		if total > 0 {
			stats.ShareOfSaleablePercent = round1(t.sqm / total * 100)
		}
		byGroup[group] = stats
	}

	return NetBuildable{
		TotalSaleableSQM: round2(total),
		BySizeGroup:      byGroup,
	}
}
