package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

// buildCLI returns the timegrid binary from TIMEGRID_BIN, or builds one.
func buildCLI(t *testing.T) string {
	t.Helper()
	if bin := os.Getenv("TIMEGRID_BIN"); bin != "" {
		if _, err := os.Stat(bin); err != nil {
			t.Fatalf("TIMEGRID_BIN %s: %v", bin, err)
		}
		return bin
	}
	if _, err := exec.LookPath("go"); err != nil {
		t.Skip("go toolchain not on PATH and TIMEGRID_BIN not set")
	}

	bin := filepath.Join(t.TempDir(), "timegrid")
	out, err := exec.Command("go", "build", "-o", bin, ".").CombinedOutput()
	if err != nil {
		t.Fatalf("Failed to build CLI: %v\nOutput: %s", err, out)
	}
	return bin
}

// isolatedEnv points HOME at tempDir and drops timegrid settings from the
// caller's environment.
func isolatedEnv(tempDir string) []string {
	var env []string
	for _, e := range os.Environ() {
		if strings.HasPrefix(e, "HOME=") || strings.HasPrefix(e, "XDG_CONFIG_HOME=") || strings.HasPrefix(e, "TIMEGRID_") {
			continue
		}
		env = append(env, e)
	}
	return append(env,
		fmt.Sprintf("HOME=%s", tempDir),
		fmt.Sprintf("XDG_CONFIG_HOME=%s", filepath.Join(tempDir, ".config")),
		"NO_COLOR=1",
	)
}

func runCmd(t *testing.T, path string, env []string, args ...string) string {
	t.Helper()
	cmd := exec.Command(path, args...)
	cmd.Env = env
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("Command %s %v failed: %v\nOutput: %s", path, args, err, out)
	}
	return string(out)
}

func runFailing(t *testing.T, path string, env []string, args ...string) string {
	t.Helper()
	cmd := exec.Command(path, args...)
	cmd.Env = env
	out, err := cmd.CombinedOutput()
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) || exitErr.ExitCode() != 1 {
		t.Fatalf("Command %s %v: error = %v, want exit status 1\nOutput: %s", path, args, err, out)
	}
	return string(out)
}

func TestEndToEndWorkflow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping end-to-end workflow in short mode")
	}
	cliPath := buildCLI(t)
	tempDir := t.TempDir()
	env := isolatedEnv(tempDir)

	t.Log("Showing built-in sample...")
	out := runCmd(t, cliPath, env)
	for _, want := range []string{"DAY / TIME", "Saturday", "Tea Break", "08:30 - 09:30"} {
		if !strings.Contains(out, want) {
			t.Errorf("show output missing %q", want)
		}
	}

	t.Log("Validating...")
	out = runCmd(t, cliPath, env, "validate")
	if !strings.Contains(out, "No conflicts detected.") {
		t.Errorf("validate output = %q", out)
	}

	t.Log("Rendering JSON...")
	jsonPath := filepath.Join(tempDir, "out", "week.json")
	runCmd(t, cliPath, env, "render", "--format", "json", "--out", jsonPath)
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatalf("render did not write %s: %v", jsonPath, err)
	}
	var doc struct {
		Days []string            `json:"days"`
		Grid [][]json.RawMessage `json:"grid"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("render wrote invalid JSON: %v", err)
	}
	if len(doc.Days) != 6 || len(doc.Grid) != 6 || len(doc.Grid[0]) != 9 {
		t.Errorf("rendered %d days and a %d-row grid, want 6x9", len(doc.Days), len(doc.Grid))
	}

	t.Log("Exporting to SQLite...")
	dbPath := filepath.Join(tempDir, "exports", "timegrid.db")
	out = runCmd(t, cliPath, env, "export", "write", "--dsn", dbPath)
	id := regexp.MustCompile(`[0-9a-f-]{36}`).FindString(out)
	if id == "" {
		t.Fatalf("export printed no ID: %q", out)
	}
	out = runCmd(t, cliPath, env, "export", "list", "--dsn", dbPath)
	if !strings.Contains(out, id) {
		t.Errorf("export list does not include %s:\n%s", id, out)
	}

	t.Log("Running doctor...")
	out = runCmd(t, cliPath, env, "doctor", "--dsn", dbPath)
	if !strings.Contains(out, "All diagnostics passed!") {
		t.Errorf("doctor output = %q", out)
	}
	if _, err := os.Stat(filepath.Join(tempDir, ".config", "timegrid", "logs")); err != nil {
		t.Errorf("log directory not created under HOME: %v", err)
	}
}

func TestInvalidTimetableExitsWithHint(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping end-to-end workflow in short mode")
	}
	cliPath := buildCLI(t)
	tempDir := t.TempDir()
	env := isolatedEnv(tempDir)

	path := filepath.Join(tempDir, "short.json")
	src := `{"slots": ["09:00-10:00", "10:00-11:00"], "days": [{"label": "Mon", "cells": [{"text": "A"}]}]}`
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}

	out := runFailing(t, cliPath, env, "show", path)
	for _, want := range []string{"Error:", "Mon", "Hint: run 'timegrid validate'"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	out = runFailing(t, cliPath, env, "validate", path)
	if !strings.Contains(out, "Conflicts detected:") {
		t.Errorf("validate output = %q", out)
	}
}
