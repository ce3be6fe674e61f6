// Package server exposes the subdivision engine over HTTP: survey upload
// creates a project workspace, constraints are stored per project, and
// layout generation, variation previews, and KML export run against the
// stored inputs.
package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
	"github.com/kelseyhightower/envconfig"

	"github.com/Abhinav2146/Estate-Layout-Design/internal/export"
	"github.com/Abhinav2146/Estate-Layout-Design/internal/store"
)

// Config is the server environment configuration.
type Config struct {
	Port      int    `envconfig:"PORT" default:"8080"`
	DataDir   string `envconfig:"DATA_DIR" default:"./data"`
	ConfigDir string `envconfig:"CONFIG_DIR" default:"./config"`
}

// LoadConfig reads the server configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("reading server environment: %w", err)
	}
	return cfg, nil
}

// Server routes API requests onto a project store.
type Server struct {
	store  *store.Store
	logger *log.Logger
	port   int
	proj   export.Projector
}

// New builds a server over the given project store.
func New(st *store.Store, logger *log.Logger, port int) *Server {
	return &Server{
		store:  st,
		logger: logger,
		port:   port,
		proj:   export.NewProjector(export.DefaultZone),
	}
}

// Router assembles the API routes.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/upload", s.handleUpload).Methods(http.MethodPost)
	r.HandleFunc("/set-constraints/{projectID}", s.handleSetConstraints).Methods(http.MethodPost)
	r.HandleFunc("/projects/{projectID}/generate", s.handleGenerate).Methods(http.MethodGet)
	r.HandleFunc("/projects/{projectID}/variations/preview", s.handleVariations).Methods(http.MethodGet)
	r.HandleFunc("/projects/{projectID}/export/kml", s.handleExportKML).Methods(http.MethodGet)
	r.PathPrefix("/data/").Handler(
		http.StripPrefix("/data/", http.FileServer(http.Dir(s.store.DataDir()))),
	).Methods(http.MethodGet)
	return r
}

// Start runs the HTTP server until it fails.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("estate layout server listening", "addr", addr, "data_dir", s.store.DataDir())

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}
