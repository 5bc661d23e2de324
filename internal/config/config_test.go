package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Locale != "en" {
		t.Errorf("Locale = %q, want default en", cfg.Locale)
	}
	if cfg.Endpoint != "" || cfg.PageID != 0 {
		t.Errorf("unexpected non-zero config: %+v", cfg)
	}
}

func TestLoad_ReadsFile(t *testing.T) {
	dir := t.TempDir()
	data := `{"endpoint":"https://wiki.example/graphql","token":"tok","page_id":42,"locale":"de","check_conflicts":true}`
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(data), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Endpoint != "https://wiki.example/graphql" || cfg.Token != "tok" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.PageID != 42 || cfg.Locale != "de" || !cfg.CheckConflicts {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	data := `{"endpoint":"https://file.example/graphql","token":"file-token","page_id":1}`
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(data), 0600); err != nil {
		t.Fatal(err)
	}

	t.Setenv(EnvEndpoint, "https://env.example/graphql")
	t.Setenv(EnvToken, "env-token")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Endpoint != "https://env.example/graphql" {
		t.Errorf("Endpoint = %q, env should win", cfg.Endpoint)
	}
	if cfg.Token != "env-token" {
		t.Errorf("Token = %q, env should win", cfg.Token)
	}
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	in := &Config{Endpoint: "https://w/graphql", Token: "t", PageID: 9, Locale: "en"}
	if err := Save(dir, in); err != nil {
		t.Fatalf("Save: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Endpoint != in.Endpoint || cfg.Token != in.Token || cfg.PageID != in.PageID {
		t.Errorf("round trip lost fields: %+v", cfg)
	}

	info, err := os.Stat(filepath.Join(dir, "config.json"))
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("config file mode = %v, want 0600", info.Mode().Perm())
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Validate(); err == nil {
		t.Error("empty config should not validate")
	}
	cfg.Endpoint = "https://w/graphql"
	if err := cfg.Validate(); err == nil {
		t.Error("config without token should not validate")
	}
	cfg.Token = "t"
	if err := cfg.Validate(); err == nil {
		t.Error("config without page_id should not validate")
	}
	cfg.PageID = 3
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestMerge_Arrays(t *testing.T) {
	a := &Config{DisabledTools: []string{"board_export", " board_refresh "}}
	b := &Config{DisabledTools: []string{"board_export", "board_list"}}
	got := Merge(a, b)
	want := []string{"board_export", "board_refresh", "board_list"}
	if len(got.DisabledTools) != len(want) {
		t.Fatalf("DisabledTools = %v", got.DisabledTools)
	}
	for i := range want {
		if got.DisabledTools[i] != want[i] {
			t.Errorf("DisabledTools[%d] = %q, want %q", i, got.DisabledTools[i], want[i])
		}
	}
}
