package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/Abhinav2146/Estate-Layout-Design/internal/export"
	"github.com/Abhinav2146/Estate-Layout-Design/internal/render"
	"github.com/Abhinav2146/Estate-Layout-Design/pkg/feature"
	"github.com/Abhinav2146/Estate-Layout-Design/pkg/plan"
	"github.com/Abhinav2146/Estate-Layout-Design/pkg/subdivision"
	"github.com/Abhinav2146/Estate-Layout-Design/pkg/validation"
	"github.com/Abhinav2146/Estate-Layout-Design/pkg/variation"
)

type generateOptions struct {
	surveyPath      string
	constraintsPath string
	style           string
	seed            int64
	outPath         string
}

type variationsOptions struct {
	surveyPath      string
	constraintsPath string
	style           string
	seed            int64
	outPath         string
}

type renderOptions struct {
	inPath  string
	outPath string
	widthPx int
}

type exportKMLOptions struct {
	inPath  string
	outPath string
	zone    int
}

// loadInputs reads and validates the survey and constraints pair every
// pipeline command starts from.
func loadInputs(surveyPath, constraintsPath string) (*feature.Survey, *plan.Constraints, error) {
	survey, err := feature.LoadSurvey(surveyPath)
	if err != nil {
		return nil, nil, err
	}
	c, err := plan.Load(constraintsPath)
	if err != nil {
		return nil, nil, err
	}
	report := validation.ValidateConstraints(*c)
	if !report.Valid {
		printValidationReport(report)
		return nil, nil, fmt.Errorf("constraints have validation errors")
	}
	return survey, c, nil
}

func runGenerate(logger *log.Logger, opts generateOptions) error {
	survey, c, err := loadInputs(opts.surveyPath, opts.constraintsPath)
	if err != nil {
		return err
	}

	rc := plan.RoadDefaults(*c)
	if opts.style != "" {
		rc.Style = plan.Style(opts.style)
	}
	rc.Seed = opts.seed
	if report := validation.ValidateRoadConfig(rc); !report.Valid {
		printValidationReport(report)
		return fmt.Errorf("road configuration has validation errors")
	}

	logger.Debug("running pipeline", "style", rc.Style, "seed", opts.seed)
	layout, err := subdivision.Run(survey, *c, rc)
	if err != nil {
		return err
	}

	budget := layout.Metrics.LandUseBudget
	logger.Info("layout generated",
		"plots", layout.Metrics.ParcelInventory.TotalPlots,
		"saleable_sqm", budget.Saleable.SQM,
		"road_sqm", budget.Road.SQM,
		"green_sqm", budget.Green.SQM,
		"seed", layout.Seed)

	return writeJSONOutput(opts.outPath, layout.Collection(c.ProjectID))
}

func runVariations(logger *log.Logger, opts variationsOptions) error {
	survey, c, err := loadInputs(opts.surveyPath, opts.constraintsPath)
	if err != nil {
		return err
	}

	records := variation.Generate(survey, *c, variation.Options{
		Style: plan.Style(opts.style),
		Seed:  opts.seed,
	})
	ranked := variation.Rank(records)

	for _, rec := range ranked {
		if rec.Status == "error" {
			logger.Warn("variant failed", "name", rec.Name, "error", rec.Error)
		}
	}
	printVariationTable(ranked)

	if opts.outPath != "" {
		return writeJSONOutput(opts.outPath, map[string]any{"variations": ranked})
	}
	return nil
}

func runValidate(constraintsPath string) error {
	c, err := plan.Load(constraintsPath)
	if err != nil {
		return err
	}
	report := validation.ValidateConstraints(*c)
	printValidationReport(report)
	if !report.Valid {
		os.Exit(1)
	}
	return nil
}

func runRender(opts renderOptions) error {
	col, err := loadCollection(opts.inPath)
	if err != nil {
		return err
	}
	out, err := os.Create(opts.outPath)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer out.Close()
	return render.WritePNG(out, col.Features, opts.widthPx)
}

func runExportKML(opts exportKMLOptions) error {
	col, err := loadCollection(opts.inPath)
	if err != nil {
		return err
	}
	out, err := os.Create(opts.outPath)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer out.Close()

	name := "Estate layout"
	if id, ok := col.Properties["project_id"].(string); ok && id != "" {
		name = id + " layout"
	}
	return export.WriteKML(out, col, export.NewProjector(opts.zone), name)
}

func loadCollection(path string) (feature.Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return feature.Collection{}, fmt.Errorf("reading layout file: %w", err)
	}
	var col feature.Collection
	if err := json.Unmarshal(data, &col); err != nil {
		return feature.Collection{}, fmt.Errorf("parsing layout file: %w", err)
	}
	return col, nil
}

func writeJSONOutput(path string, payload any) error {
	out := os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
