package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Abhinav2146/Estate-Layout-Design/internal/server"
	"github.com/Abhinav2146/Estate-Layout-Design/internal/store"
)

const version = "0.1.0"

func main() {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:           "estatelayout",
		Short:         "Land subdivision engine: roads, parcels, and land-use metrics from a survey",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(generateCmd(&verbose))
	rootCmd.AddCommand(variationsCmd(&verbose))
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(renderCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(serveCmd(&verbose))
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		newLogger(false).Error(err.Error())
		os.Exit(1)
	}
}

func newLogger(verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

func generateCmd(verbose *bool) *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Run the subdivision pipeline on a survey and emit the layout GeoJSON",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runGenerate(newLogger(*verbose), opts)
		},
	}
	cmd.Flags().StringVarP(&opts.surveyPath, "survey", "s", "", "survey GeoJSON file")
	cmd.Flags().StringVarP(&opts.constraintsPath, "constraints", "c", "", "constraints YAML or JSON file")
	cmd.Flags().StringVar(&opts.style, "style", "", "road style: grid, rotated, or organic")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "random seed (0 draws one)")
	cmd.Flags().StringVarP(&opts.outPath, "out", "o", "", "output file (default stdout)")
	cmd.MarkFlagRequired("survey")
	cmd.MarkFlagRequired("constraints")
	return cmd
}

func variationsCmd(verbose *bool) *cobra.Command {
	var opts variationsOptions

	cmd := &cobra.Command{
		Use:   "variations",
		Short: "Run every stock layout variant and rank the results by KPI",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runVariations(newLogger(*verbose), opts)
		},
	}
	cmd.Flags().StringVarP(&opts.surveyPath, "survey", "s", "", "survey GeoJSON file")
	cmd.Flags().StringVarP(&opts.constraintsPath, "constraints", "c", "", "constraints YAML or JSON file")
	cmd.Flags().StringVar(&opts.style, "style", "", "road style override for every variant")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "random seed shared by all variants")
	cmd.Flags().StringVarP(&opts.outPath, "out", "o", "", "write full variant records as JSON")
	cmd.MarkFlagRequired("survey")
	cmd.MarkFlagRequired("constraints")
	return cmd
}

func validateCmd() *cobra.Command {
	var constraintsPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a constraints file without running the pipeline",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runValidate(constraintsPath)
		},
	}
	cmd.Flags().StringVarP(&constraintsPath, "constraints", "c", "", "constraints YAML or JSON file")
	cmd.MarkFlagRequired("constraints")
	return cmd
}

func renderCmd() *cobra.Command {
	var opts renderOptions

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a saved layout collection as a PNG",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runRender(opts)
		},
	}
	cmd.Flags().StringVarP(&opts.inPath, "in", "i", "", "layout GeoJSON file")
	cmd.Flags().StringVarP(&opts.outPath, "out", "o", "layout.png", "output PNG file")
	cmd.Flags().IntVar(&opts.widthPx, "width", 1024, "image width in pixels")
	cmd.MarkFlagRequired("in")
	return cmd
}

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a saved layout to an interchange format",
	}
	cmd.AddCommand(exportKMLCmd())
	return cmd
}

func exportKMLCmd() *cobra.Command {
	var opts exportKMLOptions

	cmd := &cobra.Command{
		Use:   "kml",
		Short: "Export a saved layout collection as KML",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runExportKML(opts)
		},
	}
	cmd.Flags().StringVarP(&opts.inPath, "in", "i", "", "layout GeoJSON file")
	cmd.Flags().StringVarP(&opts.outPath, "out", "o", "layout.kml", "output KML file")
	cmd.Flags().IntVar(&opts.zone, "zone", 47, "UTM zone of the survey coordinates")
	cmd.MarkFlagRequired("in")
	return cmd
}

func serveCmd(verbose *bool) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the estate layout HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := server.LoadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			st, err := store.Open(cfg.DataDir, cfg.ConfigDir)
			if err != nil {
				return err
			}
			return server.New(st, newLogger(*verbose), cfg.Port).Start()
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 8080, "HTTP server port")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the engine version",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Println("estatelayout " + version)
		},
	}
}
