package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(ConfigPath(dir), []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if *cfg != Default() {
		t.Errorf("Load() = %+v, want defaults %+v", *cfg, Default())
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "projects_dir: content/projects\npdf_dir: ~/papers\n")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ProjectsDir != "content/projects" {
		t.Errorf("ProjectsDir = %q, want content/projects", cfg.ProjectsDir)
	}
	if cfg.Source != DefaultSource {
		t.Errorf("Source = %q, want default %q", cfg.Source, DefaultSource)
	}
	if cfg.PDFDir != "~/papers" {
		t.Errorf("PDFDir = %q, want ~/papers", cfg.PDFDir)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad yaml", "source: [unclosed\n", "parsing config"},
		{"empty source", "source: \"\"\n", "source must not be empty"},
		{"bad level", "log_level: loud\n", "invalid log_level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, tt.content)
			_, err := Load(dir)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.PDFDir = "assets/papers"
	cfg.LogLevel = "debug"

	if err := cfg.Save(dir); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if *got != cfg {
		t.Errorf("Load() = %+v, want %+v", *got, cfg)
	}
}

func TestFindRoot(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "source: lib.json\n")
	nested := filepath.Join(root, "src", "data")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	got, err := FindRoot(nested)
	if err != nil {
		t.Fatalf("FindRoot() error = %v", err)
	}
	want, _ := filepath.Abs(root)
	if got != want {
		t.Errorf("FindRoot() = %q, want %q", got, want)
	}
}

func TestFindRoot_NoConfig(t *testing.T) {
	dir := t.TempDir()
	got, err := FindRoot(dir)
	if err != nil {
		t.Fatalf("FindRoot() error = %v", err)
	}
	want, _ := filepath.Abs(dir)
	if got != want {
		t.Errorf("FindRoot() = %q, want start dir %q", got, want)
	}
}

func TestResolved(t *testing.T) {
	cfg := Default()
	cfg.Publications = "/srv/site/publications.json"

	got := cfg.Resolved("/site")
	if got.Source != filepath.Join("/site", DefaultSource) {
		t.Errorf("Source = %q", got.Source)
	}
	if got.Publications != "/srv/site/publications.json" {
		t.Errorf("Publications = %q, want absolute path unchanged", got.Publications)
	}
	if got.PDFDir != "" {
		t.Errorf("PDFDir = %q, want empty", got.PDFDir)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := ExpandPath("~/papers"); got != filepath.Join(home, "papers") {
		t.Errorf("ExpandPath(~/papers) = %q", got)
	}
	if got := ExpandPath("papers"); got != "papers" {
		t.Errorf("ExpandPath(papers) = %q, want unchanged", got)
	}
}
