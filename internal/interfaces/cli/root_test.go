package cli

import (
	"testing"
)

func TestNewRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	if cmd == nil {
		t.Fatal("NewRootCommand should return a command")
	}
	if cmd.Use != "sonicatlas" {
		t.Errorf("expected Use='sonicatlas', got %q", cmd.Use)
	}

	subNames := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		subNames[sub.Name()] = true
	}
	for _, name := range []string{"build", "path", "nearest", "journey", "stats", "export"} {
		if !subNames[name] {
			t.Errorf("expected subcommand %q not found", name)
		}
	}
}

func TestRootCommandGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()
	for _, name := range []string{"config", "log-level", "profiles"} {
		if cmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("expected persistent flag %q not found", name)
		}
	}
}

func TestParseWaypoints(t *testing.T) {
	coords, err := parseWaypoints([]string{"0.1,0.2,0.3,0.4", " 0.5 , 0.6 , 0.7 , 0.8 "})
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(coords) != 2 {
		t.Fatalf("expected 2 waypoints, got %d", len(coords))
	}
	if coords[0].Valence != 0.1 || coords[0].Tension != 0.4 {
		t.Errorf("first waypoint parsed incorrectly: %+v", coords[0])
	}
	if coords[1].Energy != 0.6 {
		t.Errorf("second waypoint parsed incorrectly: %+v", coords[1])
	}
}

func TestParseWaypointsRejectsMalformed(t *testing.T) {
	if _, err := parseWaypoints([]string{"0.1,0.2,0.3"}); err == nil {
		t.Error("expected error for 3-component waypoint")
	}
	if _, err := parseWaypoints([]string{"a,b,c,d"}); err == nil {
		t.Error("expected error for non-numeric waypoint")
	}
}

func TestGetCLIContextUninitialized(t *testing.T) {
	cmd := NewBuildCmd()
	if _, err := GetCLIContext(cmd); err == nil {
		t.Error("expected error when CLI context is missing")
	}
}
