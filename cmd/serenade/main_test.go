package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"serenade/internal/config"
	"serenade/internal/testsupport"
)

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()

	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func setupCLIConfig(t *testing.T) (*config.Config, string) {
	t.Helper()

	cfg := testsupport.NewConfig(t)
	configPath := filepath.Join(t.TempDir(), "config.toml")
	writeTestConfig(t, configPath, cfg)
	return cfg, configPath
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestConfigInitCommand(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	output, err := runCommand(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v\n%s", err, output)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("sample config not written: %v", err)
	}

	if _, err := runCommand(t, "config", "init", "--path", target); err == nil {
		t.Fatal("expected error without --overwrite")
	}
	if _, err := runCommand(t, "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
}

func TestConfigShowRedactsAPIKey(t *testing.T) {
	cfg, configPath := setupCLIConfig(t)
	cfg.TTS.APIKey = "super-secret"
	writeTestConfig(t, configPath, cfg)

	output, err := runCommand(t, "--config", configPath, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v\n%s", err, output)
	}
	if strings.Contains(output, "super-secret") {
		t.Fatal("api key leaked into output")
	}
	if !strings.Contains(output, "<redacted>") {
		t.Fatalf("expected redaction marker in output:\n%s", output)
	}
}

func TestImportAndCurateFlow(t *testing.T) {
	cfg, configPath := setupCLIConfig(t)

	exportPath := filepath.Join(t.TempDir(), "export.csv")
	lines := []string{
		`"id","sender","sentAt","text","emotion"`,
		`"7","david","2020-02-14","you are beautiful and amazing, thinking of you always my love","love"`,
		`"8","david","2020-02-15","grab milk on the way home",""`,
	}
	testsupport.WriteFile(t, exportPath, []byte(strings.Join(lines, "\n")+"\n"))

	output, err := runCommand(t, "--config", configPath, "import", exportPath)
	if err != nil {
		t.Fatalf("import: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Imported 2") {
		t.Fatalf("unexpected import output:\n%s", output)
	}

	output, err = runCommand(t, "--config", configPath, "curate", "--years", "2020")
	if err != nil {
		t.Fatalf("curate: %v\n%s", err, output)
	}
	if _, err := os.Stat(cfg.CandidatesPath("2020")); err != nil {
		t.Fatalf("candidates file not written: %v", err)
	}

	// A dry-run render then a manifest over the same year.
	if output, err = runCommand(t, "--config", configPath, "render", "--years", "2020"); err != nil {
		t.Fatalf("render: %v\n%s", err, output)
	}
	if output, err = runCommand(t, "--config", configPath, "manifest", "--years", "2020"); err != nil {
		t.Fatalf("manifest: %v\n%s", err, output)
	}
	if _, err := os.Stat(cfg.ManifestPath("2020")); err != nil {
		t.Fatalf("manifest file not written: %v", err)
	}
}

func TestRenderApplyRefusesLowDiskSpace(t *testing.T) {
	cfg, configPath := setupCLIConfig(t)
	cfg.Render.MinFreeGiB = 1 << 30
	writeTestConfig(t, configPath, cfg)

	_, err := runCommand(t, "--config", configPath, "render", "--years", "2020", "--apply")
	if err == nil || !strings.Contains(err.Error(), "refusing to apply") {
		t.Fatalf("expected disk-space refusal, got %v", err)
	}
}
