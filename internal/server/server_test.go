package server

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/Abhinav2146/Estate-Layout-Design/internal/store"
)

const surveyJSON = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "geometry": {"type": "Polygon", "coordinates": [[[0,0],[200,0],[200,150],[0,150],[0,0]]]},
      "properties": {"type": "boundary"}
    },
    {
      "type": "Feature",
      "geometry": {"type": "Point", "coordinates": [0, 75]},
      "properties": {"type": "entry_point"}
    }
  ]
}`

const constraintsJSON = `{
  "setback_boundary_m": 5.0,
  "parcel_program": [
    {"size_group": "medium", "min_area": 100, "max_area": 150, "target_percent": 0.5}
  ]
}`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	root := t.TempDir()
	st, err := store.Open(filepath.Join(root, "data"), filepath.Join(root, "config"))
	if err != nil {
		t.Fatalf("store.Open() error = %v", err)
	}
	logger := log.NewWithOptions(io.Discard, log.Options{})
	ts := httptest.NewServer(New(st, logger, 0).Router())
	t.Cleanup(ts.Close)
	return ts
}

func uploadSurvey(t *testing.T, ts *httptest.Server) string {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "site.geojson")
	if err != nil {
		t.Fatalf("CreateFormFile() error = %v", err)
	}
	if _, err := fw.Write([]byte(surveyJSON)); err != nil {
		t.Fatalf("writing upload body: %v", err)
	}
	mw.Close()

	resp, err := http.Post(ts.URL+"/upload", mw.FormDataContentType(), &body)
	if err != nil {
		t.Fatalf("POST /upload error = %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("POST /upload status = %d", resp.StatusCode)
	}

	var out struct {
		ProjectID        string  `json:"project_id"`
		Success          bool    `json:"success"`
		TotalSiteSQM     float64 `json:"total_site_area_sqm"`
		EntryPointsFound int     `json:"entry_points_found"`
		MapDataURL       string  `json:"map_data_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decoding upload response: %v", err)
	}
	if !out.Success || out.ProjectID == "" {
		t.Fatalf("upload response = %+v", out)
	}
	if out.TotalSiteSQM != 30000 {
		t.Errorf("total_site_area_sqm = %v, want 30000", out.TotalSiteSQM)
	}
	if out.EntryPointsFound != 1 {
		t.Errorf("entry_points_found = %d, want 1", out.EntryPointsFound)
	}
	if want := "/data/" + out.ProjectID + "_map.geojson"; out.MapDataURL != want {
		t.Errorf("map_data_url = %q, want %q", out.MapDataURL, want)
	}
	return out.ProjectID
}

func setConstraints(t *testing.T, ts *httptest.Server, projectID string) {
	t.Helper()
	resp, err := http.Post(ts.URL+"/set-constraints/"+projectID, "application/json",
		strings.NewReader(constraintsJSON))
	if err != nil {
		t.Fatalf("POST /set-constraints error = %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("POST /set-constraints status = %d: %s", resp.StatusCode, body)
	}
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("GET / error = %v", err)
	}
	defer resp.Body.Close()
	var out map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decoding health response: %v", err)
	}
	if out["status"] != "Ok" {
		t.Errorf("status = %q, want Ok", out["status"])
	}
}

func TestUploadAndStaticServing(t *testing.T) {
	ts := newTestServer(t)
	projectID := uploadSurvey(t, ts)

	resp, err := http.Get(ts.URL + "/data/" + projectID + "_map.geojson")
	if err != nil {
		t.Fatalf("GET /data error = %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /data status = %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != surveyJSON {
		t.Error("stored survey does not match the upload")
	}
}

func TestUploadRejectsGarbage(t *testing.T) {
	ts := newTestServer(t)
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, _ := mw.CreateFormFile("file", "site.geojson")
	fw.Write([]byte("not geojson"))
	mw.Close()

	resp, err := http.Post(ts.URL+"/upload", mw.FormDataContentType(), &body)
	if err != nil {
		t.Fatalf("POST /upload error = %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", resp.StatusCode)
	}
}

func TestSetConstraintsValidation(t *testing.T) {
	ts := newTestServer(t)
	projectID := uploadSurvey(t, ts)

	// Empty parcel program fails schema validation.
	resp, err := http.Post(ts.URL+"/set-constraints/"+projectID, "application/json",
		strings.NewReader(`{"parcel_program": []}`))
	if err != nil {
		t.Fatalf("POST /set-constraints error = %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", resp.StatusCode)
	}
}

func TestSetConstraintsUnknownProject(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Post(ts.URL+"/set-constraints/deadbeef", "application/json",
		strings.NewReader(constraintsJSON))
	if err != nil {
		t.Fatalf("POST /set-constraints error = %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestGenerate(t *testing.T) {
	ts := newTestServer(t)
	projectID := uploadSurvey(t, ts)
	setConstraints(t, ts, projectID)

	resp, err := http.Get(ts.URL + "/projects/" + projectID + "/generate?seed=7")
	if err != nil {
		t.Fatalf("GET /generate error = %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("GET /generate status = %d: %s", resp.StatusCode, body)
	}

	var out struct {
		Type     string `json:"type"`
		Features []struct {
			Geometry struct {
				Type string `json:"type"`
			} `json:"geometry"`
			Properties struct {
				Type string `json:"type"`
			} `json:"properties"`
		} `json:"features"`
		Properties struct {
			ProjectID string          `json:"project_id"`
			Metrics   json.RawMessage `json:"metrics"`
		} `json:"properties"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decoding generate response: %v", err)
	}
	if out.Type != "FeatureCollection" {
		t.Errorf("type = %q, want FeatureCollection", out.Type)
	}
	if out.Properties.ProjectID != projectID {
		t.Errorf("project_id = %q, want %q", out.Properties.ProjectID, projectID)
	}
	if len(out.Properties.Metrics) == 0 {
		t.Error("generate response has no metrics")
	}
	parcels := 0
	for _, f := range out.Features {
		if f.Properties.Type == "parcel" {
			parcels++
		}
	}
	if parcels == 0 {
		t.Error("generate response has no parcels")
	}
}

func TestGenerateWithoutConstraints(t *testing.T) {
	ts := newTestServer(t)
	projectID := uploadSurvey(t, ts)

	resp, err := http.Get(ts.URL + "/projects/" + projectID + "/generate")
	if err != nil {
		t.Fatalf("GET /generate error = %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("status = %d, want 409", resp.StatusCode)
	}
}

func TestVariationsPreview(t *testing.T) {
	ts := newTestServer(t)
	projectID := uploadSurvey(t, ts)
	setConstraints(t, ts, projectID)

	resp, err := http.Get(ts.URL + "/projects/" + projectID + "/variations/preview?seed=7")
	if err != nil {
		t.Fatalf("GET /variations/preview error = %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /variations/preview status = %d", resp.StatusCode)
	}

	var out struct {
		ProjectID  string `json:"project_id"`
		Variations []struct {
			Name   string `json:"name"`
			Status string `json:"status"`
		} `json:"variations"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decoding variations response: %v", err)
	}
	if len(out.Variations) != 3 {
		t.Fatalf("got %d variations, want 3", len(out.Variations))
	}
	for _, v := range out.Variations {
		if v.Status != "success" {
			t.Errorf("variation %s status = %q", v.Name, v.Status)
		}
	}
}

func TestExportKML(t *testing.T) {
	ts := newTestServer(t)
	projectID := uploadSurvey(t, ts)
	setConstraints(t, ts, projectID)

	resp, err := http.Get(ts.URL + "/projects/" + projectID + "/export/kml?seed=7")
	if err != nil {
		t.Fatalf("GET /export/kml error = %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /export/kml status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "kml") {
		t.Errorf("content type = %q", ct)
	}
	body, _ := io.ReadAll(resp.Body)
	if !bytes.Contains(body, []byte("<kml")) {
		t.Error("response is not KML")
	}
}
