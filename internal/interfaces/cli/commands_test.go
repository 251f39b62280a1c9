package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeProfiles creates a five-track profile file forming a chain in valence
// and returns its path.
func writeProfiles(t *testing.T) string {
	t.Helper()
	payload := map[string]map[string]any{}
	for i, id := range []string{"t0", "t1", "t2", "t3", "t4"} {
		payload[id] = map[string]any{
			"valence": float64(i) * 0.25,
			"tempo":   120,
		}
	}
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "sonic_dna.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// runCommand executes the root command with args and returns stdout.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestBuildCommand(t *testing.T) {
	profiles := writeProfiles(t)

	out, err := runCommand(t, "build", "--profiles", profiles)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	var result struct {
		Tracks int `json:"tracks"`
		Edges  int `json:"edges"`
	}
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if result.Tracks != 5 {
		t.Errorf("expected 5 tracks, got %d", result.Tracks)
	}
	if result.Edges != 4 {
		t.Errorf("expected 4 edges, got %d", result.Edges)
	}
}

func TestBuildCommandMissingProfiles(t *testing.T) {
	_, err := runCommand(t, "build", "--profiles", filepath.Join(t.TempDir(), "absent.json"))
	if err == nil {
		t.Error("expected error for a missing profile file")
	}
}

func TestPathCommand(t *testing.T) {
	profiles := writeProfiles(t)

	out, err := runCommand(t, "path", "t0", "t4", "--profiles", profiles)
	if err != nil {
		t.Fatalf("path failed: %v", err)
	}

	var resp struct {
		Kind   string   `json:"kind"`
		Tracks []string `json:"tracks"`
	}
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if resp.Kind != "graph" {
		t.Errorf("expected graph path, got %q", resp.Kind)
	}
	if len(resp.Tracks) != 5 || resp.Tracks[0] != "t0" || resp.Tracks[4] != "t4" {
		t.Errorf("unexpected path: %v", resp.Tracks)
	}
}

func TestPathCommandRequiresTwoArgs(t *testing.T) {
	profiles := writeProfiles(t)

	if _, err := runCommand(t, "path", "t0", "--profiles", profiles); err == nil {
		t.Error("expected error for a single argument")
	}
}

func TestNearestCommand(t *testing.T) {
	profiles := writeProfiles(t)

	out, err := runCommand(t, "nearest", "--valence", "0.5", "-k", "2", "--profiles", profiles)
	if err != nil {
		t.Fatalf("nearest failed: %v", err)
	}

	var resp struct {
		Neighbors []struct {
			TrackID string `json:"track_id"`
		} `json:"neighbors"`
	}
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if len(resp.Neighbors) != 2 {
		t.Fatalf("expected 2 neighbors, got %d", len(resp.Neighbors))
	}
	if resp.Neighbors[0].TrackID != "t2" {
		t.Errorf("expected t2 as nearest, got %q", resp.Neighbors[0].TrackID)
	}
}

func TestJourneyCommand(t *testing.T) {
	profiles := writeProfiles(t)

	out, err := runCommand(t, "journey", "t0", "t4",
		"--duration", "60",
		"--waypoint", "0.5,0,0,0",
		"--profiles", profiles)
	if err != nil {
		t.Fatalf("journey failed: %v", err)
	}

	var resp struct {
		JourneyID string `json:"journey_id"`
		Journey   struct {
			Points []struct {
				TrackID   string  `json:"track_id"`
				Timestamp float64 `json:"timestamp"`
			} `json:"points"`
		} `json:"journey"`
	}
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if resp.JourneyID == "" {
		t.Error("expected a journey ID")
	}
	points := resp.Journey.Points
	if len(points) != 3 {
		t.Fatalf("expected 3 points (waypoints replace the path), got %d", len(points))
	}
	if points[1].TrackID != "t2" {
		t.Errorf("expected waypoint to snap to t2, got %q", points[1].TrackID)
	}
	if points[2].Timestamp != 60 {
		t.Errorf("expected final timestamp 60, got %v", points[2].Timestamp)
	}
}

func TestJourneyCommandRejectsBadWaypoint(t *testing.T) {
	profiles := writeProfiles(t)

	_, err := runCommand(t, "journey", "t0", "t4",
		"--waypoint", "not-a-coordinate",
		"--profiles", profiles)
	if err == nil {
		t.Error("expected error for malformed waypoint")
	}
}

func TestStatsCommand(t *testing.T) {
	profiles := writeProfiles(t)

	out, err := runCommand(t, "stats", "--clusters", "--profiles", profiles)
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}

	var resp struct {
		Statistics struct {
			TotalTracks int `json:"total_tracks"`
		} `json:"statistics"`
		Clusters *struct {
			TotalTracks int `json:"total_tracks"`
		} `json:"clusters"`
	}
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if resp.Statistics.TotalTracks != 5 {
		t.Errorf("expected 5 tracks in statistics, got %d", resp.Statistics.TotalTracks)
	}
	if resp.Clusters == nil {
		t.Error("expected cluster report with --clusters")
	}
}

func TestExportCommand(t *testing.T) {
	profiles := writeProfiles(t)
	dest := filepath.Join(t.TempDir(), "bundle.json")

	out, err := runCommand(t, "export", "-o", dest, "--profiles", profiles)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if !strings.Contains(out, "5 tracks") {
		t.Errorf("unexpected export summary: %s", out)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("bundle not written: %v", err)
	}
	var bundle struct {
		Tracks      []json.RawMessage `json:"tracks"`
		Connections []json.RawMessage `json:"connections"`
	}
	if err := json.Unmarshal(data, &bundle); err != nil {
		t.Fatalf("bundle is not JSON: %v", err)
	}
	if len(bundle.Tracks) != 5 || len(bundle.Connections) != 4 {
		t.Errorf("unexpected bundle shape: %d tracks, %d connections",
			len(bundle.Tracks), len(bundle.Connections))
	}
}
