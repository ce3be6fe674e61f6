// Package variation runs the subdivision pipeline once per stock layout
// variant and compares the results by their planning KPIs. A failing
// variant becomes an error record; the remaining variants still run.
package variation

import (
	"math"
	"sort"

	"github.com/Abhinav2146/Estate-Layout-Design/pkg/feature"
	"github.com/Abhinav2146/Estate-Layout-Design/pkg/metrics"
	"github.com/Abhinav2146/Estate-Layout-Design/pkg/plan"
	"github.com/Abhinav2146/Estate-Layout-Design/pkg/subdivision"
)

// KPI is the comparative indicator set derived from one variant's metrics.
// Road efficiency and green coverage are percentages of the gross site
// area.
type KPI struct {
	TotalPlots            int     `json:"total_plots"`
	AvgPlotSizeSQM        float64 `json:"avg_plot_size_sqm"`
	RoadEfficiencyPercent float64 `json:"road_efficiency_percent"`
	GreenCoveragePercent  float64 `json:"green_coverage_percent"`
	TotalSaleableSQM      float64 `json:"total_saleable_sqm"`
}

// Record is the outcome of one variant run. Status is "success" or
// "error"; error records carry only the variant identity, its road config
// and the failure message.
type Record struct {
	Name             string                `json:"name"`
	Description      string                `json:"description"`
	OptimizationType string                `json:"optimization_type"`
	ParcelMix        map[string]float64    `json:"parcel_mix,omitempty"`
	Config           plan.RoadConfig       `json:"config"`
	KPI              *KPI                  `json:"kpi,omitempty"`
	Metrics          *metrics.Metrics      `json:"metrics,omitempty"`
	Net              *metrics.NetBuildable `json:"net_buildable,omitempty"`
	Status           string                `json:"status"`
	Error            string                `json:"error,omitempty"`

	// Layout holds the full run output for exporters; it stays out of the
	// preview payload.
	Layout *subdivision.Layout `json:"-"`
}

// Options adjusts how variants run without changing what they optimize
// for. A non-empty Style overrides every variant's road style; Seed is
// shared by all variants so a whole comparison can be replayed.
type Options struct {
	Style plan.Style
	Seed  int64
}

// Generate runs every stock variant against the survey. The project's
// constraint record supplies the setbacks and buffers; each variant
// brings its own road configuration and parcel mix. A variant that fails
// is reported in place and does not stop the others.
func Generate(survey *feature.Survey, c plan.Constraints, opts Options) []Record {
	variants := plan.BuiltinVariants()
	records := make([]Record, 0, len(variants))
	for _, v := range variants {
		records = append(records, run(survey, c, v, opts))
	}
	return records
}

func run(survey *feature.Survey, c plan.Constraints, v plan.Variant, opts Options) Record {
	rec := Record{
		Name:             v.Name,
		Description:      v.Description,
		OptimizationType: v.OptimizationType,
		Config:           v.Roads,
	}
	if opts.Style != "" {
		rec.Config.Style = opts.Style
	}
	rec.Config.Seed = opts.Seed

	vc := c
	vc.ParcelProgram = v.Program

	layout, err := subdivision.Run(survey, vc, rec.Config)
	if err != nil {
		rec.Status = "error"
		rec.Error = err.Error()
		return rec
	}

	kpi := Derive(layout.Metrics)
	rec.ParcelMix = v.Mix()
	rec.KPI = &kpi
	rec.Metrics = &layout.Metrics
	rec.Net = &layout.Net
	rec.Layout = layout
	rec.Status = "success"
	return rec
}

// Derive computes the KPI set from an aggregated metrics report.
func Derive(m metrics.Metrics) KPI {
	saleable := m.LandUseBudget.Saleable.SQM
	roadSQM := m.LandUseBudget.Road.SQM
	greenSQM := m.LandUseBudget.Green.SQM
	gross := m.SiteAnalysis.TotalSiteSQM
	plots := m.ParcelInventory.TotalPlots

	kpi := KPI{
		TotalPlots:       plots,
		TotalSaleableSQM: math.Round(saleable),
	}
	if plots > 0 {
		kpi.AvgPlotSizeSQM = round2(saleable / float64(plots))
	}
	if gross > 0 {
		kpi.RoadEfficiencyPercent = round1((1 - roadSQM/gross) * 100)
		kpi.GreenCoveragePercent = round1(greenSQM / gross * 100)
	}
	return kpi
}

// Rank orders records for presentation: successful variants by saleable
// area descending, plot count breaking ties, error records last in their
// original order. The input slice is not modified.
func Rank(records []Record) []Record {
	out := make([]Record, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if (a.KPI == nil) != (b.KPI == nil) {
			return a.KPI != nil
		}
		if a.KPI == nil {
			return false
		}
		if a.KPI.TotalSaleableSQM != b.KPI.TotalSaleableSQM {
			return a.KPI.TotalSaleableSQM > b.KPI.TotalSaleableSQM
		}
		return a.KPI.TotalPlots > b.KPI.TotalPlots
	})
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
