package main

import (
	"fmt"

	"github.com/Abhinav2146/Estate-Layout-Design/pkg/validation"
	"github.com/Abhinav2146/Estate-Layout-Design/pkg/variation"
)

func printValidationReport(r *validation.Report) {
	if len(r.Errors) > 0 {
		fmt.Printf("ERRORS (%d):\n", len(r.Errors))
		for _, e := range r.Errors {
			fmt.Printf("  [%s] %s\n", e.Level, e.Message)
			if e.Field != "" {
				fmt.Printf("    -> %s = %v\n", e.Field, e.ActualValue)
			}
			if e.Expected != "" {
				fmt.Printf("    expected: %s\n", e.Expected)
			}
			if e.ConflictWith != "" {
				fmt.Printf("    conflicts with: %s\n", e.ConflictWith)
			}
			for _, s := range e.Suggestions {
				fmt.Printf("    * %s\n", s)
			}
		}
		fmt.Println()
	}

	if len(r.Warnings) > 0 {
		fmt.Printf("WARNINGS (%d):\n", len(r.Warnings))
		for _, w := range r.Warnings {
			fmt.Printf("  [%s] %s\n", w.Level, w.Message)
			if w.Field != "" {
				fmt.Printf("    -> %s = %v\n", w.Field, w.ActualValue)
			}
			if w.Expected != "" {
				fmt.Printf("    expected: %s\n", w.Expected)
			}
			for _, s := range w.Suggestions {
				fmt.Printf("    * %s\n", s)
			}
		}
		fmt.Println()
	}

	if len(r.Info) > 0 {
		fmt.Printf("INFO (%d):\n", len(r.Info))
		for _, i := range r.Info {
			fmt.Printf("  [%s] %s\n", i.Level, i.Message)
		}
		fmt.Println()
	}

	if r.Valid {
		fmt.Printf("Result: VALID (%s)\n", r.Summary)
	} else {
		fmt.Printf("Result: INVALID (%s)\n", r.Summary)
	}
}

func printVariationTable(records []variation.Record) {
	fmt.Println("Layout Variations (ranked by saleable area)")
	fmt.Println("===========================================")
	fmt.Println()
	fmt.Printf("%-14s %8s %12s %12s %10s %14s\n",
		"Variant", "Plots", "Avg sqm", "Road eff %", "Green %", "Saleable sqm")
	fmt.Printf("%-14s %8s %12s %12s %10s %14s\n",
		"--------------", "--------", "------------", "------------", "----------", "--------------")

	for _, rec := range records {
		if rec.KPI == nil {
			fmt.Printf("%-14s %s\n", rec.Name, "FAILED: "+rec.Error)
			continue
		}
		fmt.Printf("%-14s %8d %12.2f %12.1f %10.1f %14.0f\n",
			rec.Name,
			rec.KPI.TotalPlots,
			rec.KPI.AvgPlotSizeSQM,
			rec.KPI.RoadEfficiencyPercent,
			rec.KPI.GreenCoveragePercent,
			rec.KPI.TotalSaleableSQM)
	}
}
