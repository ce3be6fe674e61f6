package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Abhinav2146/Estate-Layout-Design/internal/export"
	"github.com/Abhinav2146/Estate-Layout-Design/internal/store"
	"github.com/Abhinav2146/Estate-Layout-Design/pkg/feature"
	"github.com/Abhinav2146/Estate-Layout-Design/pkg/plan"
	"github.com/Abhinav2146/Estate-Layout-Design/pkg/roads"
	"github.com/Abhinav2146/Estate-Layout-Design/pkg/subdivision"
	"github.com/Abhinav2146/Estate-Layout-Design/pkg/validation"
	"github.com/Abhinav2146/Estate-Layout-Design/pkg/variation"
)

// maxUploadBytes caps survey uploads; surveyed drawings stay far under
// this.
const maxUploadBytes = 32 << 20

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "Ok",
		"message": "Server is running",
	})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, _, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart field 'file' is required"})
		return
	}
	defer file.Close()

	projectID, survey, err := s.store.CreateProject(file)
	if err != nil {
		s.logger.Error("survey upload failed", "error", err)
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		return
	}

	summary := survey.Summary()
	s.logger.Info("project created", "project_id", projectID,
		"area_sqm", summary.AreaSQM, "entry_points", summary.EntryPointCount)

	writeJSON(w, http.StatusOK, map[string]any{
		"project_id":             projectID,
		"success":                summary.GeometryValid,
		"total_site_area_sqm":    summary.AreaSQM,
		"total_site_area_rai":    summary.AreaRai,
		"entry_points_found":     summary.EntryPointCount,
		"obstacles_found":        summary.ObstacleCount,
		"existing_road_segments": summary.RoadSegmentCount,
		"map_data_url":           fmt.Sprintf("/data/%s_map.geojson", projectID),
	})
}

func (s *Server) handleSetConstraints(w http.ResponseWriter, r *http.Request) {
	projectID := mux.Vars(r)["projectID"]

	var c plan.Constraints
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid constraints body"})
		return
	}

	report := validation.ValidateConstraints(c)
	if !report.Valid {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":      "constraints failed validation",
			"validation": report,
		})
		return
	}

	if err := s.store.SaveConstraints(projectID, c); err != nil {
		s.writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"project_id": projectID,
		"message":    "Planning parameters saved successfully.",
		"validation": report,
	})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	projectID := mux.Vars(r)["projectID"]

	layout, err := s.runPipeline(projectID, r)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}

	preview := s.proj.Collection(layout.Collection(projectID))
	writeJSON(w, http.StatusOK, preview)
}

func (s *Server) handleVariations(w http.ResponseWriter, r *http.Request) {
	projectID := mux.Vars(r)["projectID"]

	survey, c, err := s.loadProject(projectID)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}

	opts := variation.Options{
		Style: plan.Style(r.URL.Query().Get("style")),
		Seed:  querySeed(r),
	}
	records := variation.Rank(variation.Generate(survey, *c, opts))

	writeJSON(w, http.StatusOK, map[string]any{
		"project_id": projectID,
		"variations": records,
	})
}

func (s *Server) handleExportKML(w http.ResponseWriter, r *http.Request) {
	projectID := mux.Vars(r)["projectID"]

	layout, err := s.runPipeline(projectID, r)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}

	filename := fmt.Sprintf("%s_layout.kml", projectID)
	w.Header().Set("Content-Type", "application/vnd.google-earth.kml+xml")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := export.WriteKML(w, layout.Collection(projectID), s.proj, projectID+" layout"); err != nil {
		s.logger.Error("kml export failed", "project_id", projectID, "error", err)
	}
}

func (s *Server) loadProject(projectID string) (*feature.Survey, *plan.Constraints, error) {
	survey, err := s.store.LoadSurvey(projectID)
	if err != nil {
		return nil, nil, err
	}
	c, err := s.store.LoadConstraints(projectID)
	if err != nil {
		return nil, nil, err
	}
	return survey, c, nil
}

func (s *Server) runPipeline(projectID string, r *http.Request) (*subdivision.Layout, error) {
	survey, c, err := s.loadProject(projectID)
	if err != nil {
		return nil, err
	}

	rc := plan.RoadDefaults(*c)
	if style := r.URL.Query().Get("style"); style != "" {
		rc.Style = plan.Style(style)
	}
	rc.Seed = querySeed(r)

	return subdivision.Run(survey, *c, rc)
}

func querySeed(r *http.Request) int64 {
	seed, _ := strconv.ParseInt(r.URL.Query().Get("seed"), 10, 64)
	return seed
}

// writeStoreError maps the store and pipeline sentinels onto status
// codes; anything unrecognized is an internal error.
func (s *Server) writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrProjectNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, store.ErrConstraintsNotSet):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, feature.ErrMissingBoundary), errors.Is(err, roads.ErrMissingEntryPoint):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	default:
		s.logger.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
