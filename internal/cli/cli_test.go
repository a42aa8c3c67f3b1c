// Package cli_test provides tests for the CLI package.
package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jmylchreest/ansigen/internal/cli"
	"github.com/jmylchreest/ansigen/internal/colour"
	"github.com/jmylchreest/ansigen/internal/history"
	"github.com/jmylchreest/ansigen/internal/theme"
)

// execute runs the root command with args and returns stdout, stderr and the error.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	rootCmd := cli.NewRootCmd()
	rootCmd.SetOut(&outBuf)
	rootCmd.SetErr(&errBuf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

func quickArgs(extra ...string) []string {
	args := []string{
		"generate",
		"--population", "20",
		"--generations", "3",
		"--constraints", "minimal",
		"--seed", "1",
		"--workers", "2",
		"--colour", "never",
	}
	return append(args, extra...)
}

func TestGenerateWritesTheme(t *testing.T) {
	dir := t.TempDir()
	themePath := filepath.Join(dir, "themes", "quick")
	historyPath := filepath.Join(dir, "runs", "quick.json.gz")
	previewPath := filepath.Join(dir, "quick.png")

	stdout, _, err := execute(t, quickArgs(
		"--output", themePath,
		"--history", historyPath,
		"--preview-image", previewPath,
	)...)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	for _, want := range []string{"Palette", "Best fitness", "✓ Theme: " + themePath, "✓ History", "✓ Preview"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output missing %q", want)
		}
	}

	th, err := theme.ParseFile(themePath)
	if err != nil {
		t.Fatalf("theme not readable: %v", err)
	}
	if th.Name != "quick" {
		t.Errorf("theme name = %q, want quick", th.Name)
	}
	if th.Colours[colour.Black] != colour.RGBBlack || th.Colours[colour.BrightWhite] != colour.RGBWhite {
		t.Errorf("fixed slots = %v, %v", th.Colours[colour.Black], th.Colours[colour.BrightWhite])
	}

	rec, err := history.Load(historyPath)
	if err != nil {
		t.Fatalf("history not readable: %v", err)
	}
	if rec.Config.Seed != 1 || rec.Generations != 3 || rec.Model != "minimal" {
		t.Errorf("history = seed %d, generations %d, model %q", rec.Config.Seed, rec.Generations, rec.Model)
	}

	if _, err := os.Stat(previewPath); err != nil {
		t.Errorf("preview not written: %v", err)
	}
}

func TestGenerateDeterministicWithSeed(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	b := filepath.Join(dir, "b")

	if _, _, err := execute(t, quickArgs("-q", "--output", a, "--name", "same")...); err != nil {
		t.Fatal(err)
	}
	if _, _, err := execute(t, quickArgs("-q", "--output", b, "--name", "same", "--workers", "5")...); err != nil {
		t.Fatal(err)
	}

	first, _ := os.ReadFile(a)
	second, _ := os.ReadFile(b)
	if !bytes.Equal(first, second) {
		t.Error("same seed produced different themes")
	}
}

func TestGenerateDryRun(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "never")

	stdout, _, err := execute(t, quickArgs("-q", "--dry-run", "--output", path, "--name", "Dry Run")...)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if !strings.Contains(stdout, "Would write: "+path) {
		t.Errorf("output missing dry-run notice:\n%s", stdout)
	}
	if !strings.Contains(stdout, "# Dry Run\n#\npalette = 0=#000000\n") {
		t.Errorf("output missing theme text:\n%s", stdout)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("dry run wrote %s", path)
	}
}

func TestGenerateQuietSkipsReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quiet")
	stdout, stderr, err := execute(t, quickArgs("-q", "--output", path)...)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(stdout, "Best fitness") {
		t.Error("quiet run printed the report")
	}
	if stderr != "" {
		t.Errorf("quiet run logged: %s", stderr)
	}
}

func TestGenerateWriteFailureEchoesTheme(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("file"), 0o644); err != nil {
		t.Fatal(err)
	}

	stdout, _, err := execute(t, quickArgs("-q", "--output", filepath.Join(blocker, "theme"))...)
	if err == nil {
		t.Fatal("expected write error")
	}
	if !strings.Contains(err.Error(), "failed to write theme") {
		t.Errorf("error = %v", err)
	}
	if !strings.Contains(stdout, "palette = 15=#ffffff") {
		t.Errorf("theme text not echoed:\n%s", stdout)
	}
}

func TestGenerateValidation(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"population", []string{"--population", "5"}, "population size must be at least 10"},
		{"mutation", []string{"--mutation-rate", "1.5"}, "mutation rate"},
		{"elite", []string{"--elite-ratio", "1"}, "elite ratio"},
		{"constraints", []string{"--constraints", "nope"}, "nope"},
		{"colour", []string{"--colour", "sometimes"}, "sometimes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := quickArgs(append(tt.args, "-q", "--dry-run")...)
			_, _, err := execute(t, args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestAnalyzeTheme(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "analyzed")
	if _, _, err := execute(t, quickArgs("-q", "--output", path, "--name", "Analyzed")...); err != nil {
		t.Fatal(err)
	}

	stdout, _, err := execute(t, "analyze", path, "--colour", "never", "--constraints", "oklch-wcag")
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	for _, want := range []string{"Analyzed", "Hue Spacing", "Fitness under oklch-wcag:"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestAnalyzeHistory(t *testing.T) {
	dir := t.TempDir()
	hist := filepath.Join(dir, "run.json.xz")
	if _, _, err := execute(t, quickArgs("-q", "--output", filepath.Join(dir, "t"), "--history", hist)...); err != nil {
		t.Fatal(err)
	}

	stdout, _, err := execute(t, "analyze", hist, "--colour", "never")
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if !strings.Contains(stdout, "Fitness under oklch-apca:") {
		t.Errorf("unexpected output:\n%s", stdout)
	}
}

func TestAnalyzeErrors(t *testing.T) {
	dir := t.TempDir()
	short := filepath.Join(dir, "short")
	if err := os.WriteFile(short, []byte("palette = 0=#000000\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, _, err := execute(t, "analyze", short); err == nil || !strings.Contains(err.Error(), "expected 16") {
		t.Errorf("analyze short theme error = %v", err)
	}
	if _, _, err := execute(t, "analyze", filepath.Join(dir, "missing")); err == nil {
		t.Error("expected error for missing theme")
	}
	if _, _, err := execute(t, "analyze"); err == nil {
		t.Error("expected error without arguments")
	}
}

func TestConstraintsList(t *testing.T) {
	stdout, _, err := execute(t, "constraints", "list")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"oklch-apca (default)", "oklch-wcag", "rgb-wcag", "minimal"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("list missing %q:\n%s", want, stdout)
		}
	}
}

func TestConstraintsShow(t *testing.T) {
	stdout, _, err := execute(t, "constraints", "show", "oklch-apca")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Slots", "fixed #000000", "Contrast pairs", "pass_bonus: 100", "br.red"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("show missing %q", want)
		}
	}

	stdout, _, err = execute(t, "constraints", "show", "rgb-wcag")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout, "Green") {
		t.Error("rgb model should list channel ranges")
	}

	if _, _, err := execute(t, "constraints", "show", "unknown-model"); err == nil {
		t.Error("expected error for unknown model")
	}
}

func TestTemplateDump(t *testing.T) {
	base := t.TempDir()

	stdout, _, err := execute(t, "template", "dump", "-l", base)
	if err != nil {
		t.Fatalf("dump failed: %v", err)
	}
	want := filepath.Join(base, "ghostty", theme.GhosttyTemplate)
	if !strings.Contains(stdout, want) {
		t.Errorf("output = %q, want path %s", stdout, want)
	}
	if _, err := os.Stat(want); err != nil {
		t.Fatal(err)
	}

	if _, _, err := execute(t, "template", "dump", "-l", base); err == nil {
		t.Error("expected error dumping over an existing template")
	}
	if _, _, err := execute(t, "template", "dump", "-l", base, "--force"); err != nil {
		t.Errorf("forced dump failed: %v", err)
	}

	stdout, _, err = execute(t, "template", "path", "-l", base)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout, "custom template in use") {
		t.Errorf("path output = %q", stdout)
	}
}

func TestVersion(t *testing.T) {
	stdout, _, err := execute(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(stdout, "ansigen version ") {
		t.Errorf("version output = %q", stdout)
	}
}

func TestVerboseQuietExclusive(t *testing.T) {
	if _, _, err := execute(t, "version", "-v", "-q"); err == nil {
		t.Error("expected error for --verbose with --quiet")
	}
}
