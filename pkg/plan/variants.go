package plan

// SizeGroup area bounds in square meters. Groups order from smallest to
// largest; parcel programs reference them by name.
type SizeGroup struct {
	Name    string
	MinArea float64
	MaxArea float64
}

// SizeGroups lists the canonical size groups smallest first.
func SizeGroups() []SizeGroup {
	return []SizeGroup{
		{Name: "micro", MinArea: 40, MaxArea: 60},
		{Name: "small", MinArea: 60, MaxArea: 100},
		{Name: "medium", MinArea: 100, MaxArea: 150},
		{Name: "large", MinArea: 150, MaxArea: 250},
		{Name: "xlarge", MinArea: 250, MaxArea: 400},
	}
}

// SizeGroupByName looks up a canonical size group.
func SizeGroupByName(name string) (SizeGroup, bool) {
	for _, g := range SizeGroups() {
		if g.Name == name {
			return g, true
		}
	}
	return SizeGroup{}, false
}

// frontage groups must front a road; the larger premium groups do.
func requiresFrontage(group string) bool {
	return group == "large" || group == "xlarge"
}

// Target builds a program entry for a canonical size group. Unknown group
// names produce a zero-range entry the validator will reject.
func Target(group string, percent float64) SizeTarget {
	g, _ := SizeGroupByName(group)
	return SizeTarget{
		SizeGroup:        group,
		MinArea:          g.MinArea,
		MaxArea:          g.MaxArea,
		TargetPercent:    percent,
		RequiresFrontage: requiresFrontage(group),
	}
}

// Variant is one named layout configuration the orchestrator runs and
// compares against the others.
type Variant struct {
	Name             string       `yaml:"name" json:"name"`
	Description      string       `yaml:"description" json:"description"`
	OptimizationType string       `yaml:"optimization_type" json:"optimization_type"`
	Roads            RoadConfig   `yaml:"config" json:"config"`
	Program          []SizeTarget `yaml:"parcel_program" json:"parcel_program"`
}

// Mix returns the variant's target percents keyed by size group.
func (v Variant) Mix() map[string]float64 {
	mix := make(map[string]float64, len(v.Program))
	for _, t := range v.Program {
		mix[t.SizeGroup] = t.TargetPercent
	}
	return mix
}

// BuiltinVariants returns the three stock layout variants: maximum plot
// count, a balanced mix, and a premium large-parcel layout.
func BuiltinVariants() []Variant {
	return []Variant{
		{
			Name:             "High_Density",
			Description:      "Maximum plots • Tight spacing • 40-80 sq.m parcels • Best for high-volume sales",
			OptimizationType: "density",
			Roads: RoadConfig{
				Style:             StyleGrid,
				MainRoadWidth:     15.0,
				LocalRoadWidth:    8.5,
				VerticalSpacing:   160,
				HorizontalSpacing: 120,
			},
			Program: []SizeTarget{
				Target("micro", 0.50),
				Target("small", 0.35),
				Target("medium", 0.15),
			},
		},
		{
			Name:             "Balanced",
			Description:      "Optimal mix • Standard spacing • 80-150 sq.m parcels • Best for balanced returns",
			OptimizationType: "balanced",
			Roads: RoadConfig{
				Style:             StyleGrid,
				MainRoadWidth:     18.0,
				LocalRoadWidth:    10.0,
				VerticalSpacing:   220,
				HorizontalSpacing: 160,
			},
			Program: []SizeTarget{
				Target("small", 0.35),
				Target("medium", 0.45),
				Target("large", 0.20),
			},
		},
		{
			Name:             "Premium",
			Description:      "Prestige parcels • Wide roads • 120-250 sq.m parcels • Best for premium positioning",
			OptimizationType: "premium",
			Roads: RoadConfig{
				Style:             StyleGrid,
				MainRoadWidth:     20.0,
				LocalRoadWidth:    13.0,
				VerticalSpacing:   290,
				HorizontalSpacing: 220,
			},
			Program: []SizeTarget{
				Target("medium", 0.35),
				Target("large", 0.50),
				Target("xlarge", 0.15),
			},
		},
	}
}

// VariantByName finds a stock variant by name.
func VariantByName(name string) (Variant, bool) {
	for _, v := range BuiltinVariants() {
		if v.Name == name {
			return v, true
		}
	}
	return Variant{}, false
}
