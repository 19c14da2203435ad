package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// runCommand executes a fresh root command with args and returns its combined
// output.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// writeTestConfig writes a config keeping every path inside the test's temp
// directory so commands never touch the real home directory.
func writeTestConfig(t *testing.T, extra string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	content := `
[paths]
data_dir = "` + dir + `"
generated_dir = "` + filepath.Join(dir, "generated") + `"
output_dir = "` + filepath.Join(dir, "output") + `"
log_dir = "` + filepath.Join(dir, "logs") + `"

[collection]
name = "Test Drop"
` + extra
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path, dir
}

func TestRootCommandSubcommands(t *testing.T) {
	cmd := newRootCommand()
	want := map[string]bool{"expand": false, "prepare": false, "config": false}
	for _, sub := range cmd.Commands() {
		if _, ok := want[sub.Name()]; ok {
			want[sub.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

func TestProgressLabelShort(t *testing.T) {
	got := progressLabel(3)
	if got != "Calculating CID for #000 #001 #002" {
		t.Fatalf("progressLabel(3) = %q", got)
	}
}

func TestProgressLabelTruncates(t *testing.T) {
	got := progressLabel(12)
	if !strings.Contains(got, "#009") {
		t.Fatalf("label should include the tenth index: %q", got)
	}
	if strings.Contains(got, "#010") {
		t.Fatalf("label should stop after ten indices: %q", got)
	}
	if !strings.HasSuffix(got, "(+ 2 others)") {
		t.Fatalf("label should count the remainder: %q", got)
	}
}

func TestPrepareRequiresInputFlag(t *testing.T) {
	cfg, _ := writeTestConfig(t, "")
	_, err := runCommand(t, "prepare", "--config", cfg)
	if err == nil || !strings.Contains(err.Error(), "at least one of the flags") {
		t.Fatalf("expected flag group error, got %v", err)
	}
}

func TestPrepareRejectsFileAndDir(t *testing.T) {
	cfg, dir := writeTestConfig(t, "")
	_, err := runCommand(t, "prepare", "--config", cfg, "--file", filepath.Join(dir, "a.png"), "--idir", dir)
	if err == nil || !strings.Contains(err.Error(), "file idir") {
		t.Fatalf("expected mutual exclusion error, got %v", err)
	}
}

func TestPrepareMetadataRequiresRoyalty(t *testing.T) {
	t.Setenv("ROYALTY_PERCENTAGE", "0")
	cfg, dir := writeTestConfig(t, "")
	_, err := runCommand(t, "prepare", "--config", cfg, "--idir", dir, "--metadata")
	if err == nil || !strings.Contains(err.Error(), "royalty_percentage") {
		t.Fatalf("expected royalty error, got %v", err)
	}
}

func TestExpandRequiresImagesCID(t *testing.T) {
	t.Setenv("IMAGES_CID", "")
	cfg, _ := writeTestConfig(t, "")
	_, err := runCommand(t, "expand", "--config", cfg)
	if err == nil || !strings.Contains(err.Error(), "images CID") {
		t.Fatalf("expected images CID error, got %v", err)
	}
}

func TestExpandGeneratesTokens(t *testing.T) {
	cfg, dir := writeTestConfig(t, `images_cid = "QmImgs"`)
	traitTable := `[
  {"ID": 1, "Background": "Blue", "Body": "Robot", "Outfit": "Suit", "Accessory": "Hat"},
  {"ID": 2, "Background": "Red", "Body": "Cat", "Outfit": "Coat", "Accessory": "None"}
]`
	if err := os.WriteFile(filepath.Join(dir, "all-traits.json"), []byte(traitTable), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runCommand(t, "expand", "--config", cfg)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Generated 2 metadata files") {
		t.Fatalf("output = %q", out)
	}

	data, err := os.ReadFile(filepath.Join(dir, "generated", "test_drop_1.json"))
	if err != nil {
		t.Fatal(err)
	}
	doc := string(data)
	if !strings.Contains(doc, `"Test Drop #1"`) {
		t.Fatalf("token document = %s", doc)
	}
	if !strings.Contains(doc, "ipfs://QmImgs/test_drop_1.png") {
		t.Fatalf("token document = %s", doc)
	}
}

func TestConfigInit(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	out, err := runCommand(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, target) {
		t.Fatalf("output = %q", out)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("sample config not written: %v", err)
	}

	if _, err := runCommand(t, "config", "init", "--path", target); err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("expected existing-file error, got %v", err)
	}
	if _, err := runCommand(t, "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("overwrite should succeed: %v", err)
	}
}

func TestConfigShow(t *testing.T) {
	cfg, _ := writeTestConfig(t, "")
	out, err := runCommand(t, "config", "show", "--config", cfg)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "# "+cfg) {
		t.Fatalf("output should name the resolved file: %q", out)
	}
	if !strings.Contains(out, "Test Drop") {
		t.Fatalf("output should include the resolved collection name: %q", out)
	}
}
