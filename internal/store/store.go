// Package store keeps the per-project files the API works against: the
// uploaded survey GeoJSON under the data directory and the constraint
// record under the config directory. It does no locking; callers that
// share a project must serialize access themselves.
package store

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/Abhinav2146/Estate-Layout-Design/pkg/feature"
	"github.com/Abhinav2146/Estate-Layout-Design/pkg/plan"
)

// ErrProjectNotFound reports a project ID with no stored survey.
var ErrProjectNotFound = errors.New("project not found")

// ErrConstraintsNotSet reports a project whose constraints were never
// saved.
var ErrConstraintsNotSet = errors.New("constraints not set for project")

// Store is a filesystem-backed project workspace.
type Store struct {
	dataDir   string
	configDir string
}

// Open prepares a store over the two workspace directories, creating them
// if needed.
func Open(dataDir, configDir string) (*Store, error) {
	for _, dir := range []string{dataDir, configDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating workspace directory: %w", err)
		}
	}
	return &Store{dataDir: dataDir, configDir: configDir}, nil
}

// DataDir returns the directory holding survey files.
func (s *Store) DataDir() string {
	return s.dataDir
}

// NewProjectID mints a fresh 8-character project identifier.
func NewProjectID() string {
	return uuid.NewString()[:8]
}

// SurveyPath returns where a project's normalized survey lives.
func (s *Store) SurveyPath(projectID string) string {
	return filepath.Join(s.dataDir, projectID+"_map.geojson")
}

func (s *Store) constraintsPath(projectID string) string {
	return filepath.Join(s.configDir, projectID+"_constraints.json")
}

// CreateProject stores the uploaded survey under a new project ID and
// returns the ID with the parsed survey. The raw bytes are kept verbatim
// so the map client can fetch exactly what was uploaded.
func (s *Store) CreateProject(r io.Reader) (string, *feature.Survey, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", nil, fmt.Errorf("reading survey upload: %w", err)
	}
	survey, err := feature.ParseSurvey(data)
	if err != nil {
		return "", nil, fmt.Errorf("parsing survey upload: %w", err)
	}

	projectID := NewProjectID()
	if err := os.WriteFile(s.SurveyPath(projectID), data, 0o644); err != nil {
		return "", nil, fmt.Errorf("writing survey file: %w", err)
	}
	return projectID, survey, nil
}

// LoadSurvey reads a project's stored survey.
func (s *Store) LoadSurvey(projectID string) (*feature.Survey, error) {
	survey, err := feature.LoadSurvey(s.SurveyPath(projectID))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, projectID)
	}
	return survey, err
}

// SaveConstraints stores a project's constraint record. The project must
// already have a survey.
func (s *Store) SaveConstraints(projectID string, c plan.Constraints) error {
	if _, err := os.Stat(s.SurveyPath(projectID)); errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrProjectNotFound, projectID)
	}
	c.ProjectID = projectID
	return plan.Save(c, s.constraintsPath(projectID))
}

// LoadConstraints reads a project's constraint record.
func (s *Store) LoadConstraints(projectID string) (*plan.Constraints, error) {
	data, err := os.ReadFile(s.constraintsPath(projectID))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrConstraintsNotSet, projectID)
	}
	if err != nil {
		return nil, fmt.Errorf("reading constraints file: %w", err)
	}
	c, err := plan.Parse(data, true)
	if err != nil {
		return nil, fmt.Errorf("parsing constraints file: %w", err)
	}
	return c, nil
}
