package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRenderCommand(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repositories/octo/widgets/commits/abc123", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"message":"Tidy up","author":{"name":"Ada","date":"2024-01-01T00:00:00Z"},"parents":[]}]`))
	})
	mux.HandleFunc("/repositories/octo/widgets/commits/abc123/diff", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"render", "octo/widgets@abc123", "--base-url", srv.URL, "--format", "text", "--log-level", "error"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out.String(), "Tidy up") || !strings.Contains(out.String(), "No file changes detected.") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func TestRenderCommand_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "incomplete coordinates", args: []string{"render", "octo/@abc"}},
		{name: "bad format", args: []string{"render", "octo/widgets@abc", "--format", "pdf"}},
		{name: "bad run mode", args: []string{"render", "octo/widgets@abc", "--run-mode", "gitlab"}},
		{name: "bad log level", args: []string{"render", "octo/widgets@abc", "--log-level", "loud"}},
		{name: "missing args", args: []string{"render"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newRootCmd()
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetErr(&bytes.Buffer{})
			cmd.SetArgs(tt.args)
			if err := cmd.Execute(); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestLoadConfig_FlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "commitview.yaml")
	content := "source:\n  baseURL: http://config.example\nview:\n  disclosureKeying: path\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	opts := &options{}
	root := newRootCmd()
	render, _, err := root.Find([]string{"render"})
	if err != nil {
		t.Fatal(err)
	}
	opts.configPath = path
	opts.runMode = "service"
	if err := render.ParseFlags([]string{"--base-url", "http://flag.example"}); err != nil {
		t.Fatal(err)
	}
	opts.baseURL = "http://flag.example"

	cfg, err := loadConfig(render, opts)
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg.Source.BaseURL != "http://flag.example" {
		t.Errorf("BaseURL = %q, flag should win", cfg.Source.BaseURL)
	}
	if cfg.View.DisclosureKeying != "path" {
		t.Errorf("DisclosureKeying = %q, file value should be kept", cfg.View.DisclosureKeying)
	}
}
