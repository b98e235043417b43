package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/caasmo/webjarcors/webjars"
)

func writeConfig(t *testing.T, root string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "webjarcors.toml")
	data := "[webjars]\nroot = " + `"` + filepath.ToSlash(root) + `"` + "\nprefix = \"/lib\"\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRun_Resolve(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "momentjs", "2.0.0"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "momentjs", "2.0.0", "moment.js"), []byte("//"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfgPath := writeConfig(t, root)

	var out bytes.Buffer
	if err := run([]string{"--config", cfgPath, "resolve", "/lib/momentjs/2.0.0/moment.js"}, &out); err != nil {
		t.Fatalf("run(resolve) error = %v\n%s", err, out.String())
	}
	for _, want := range []string{"namespace: momentjs", "version:   2.0.0", "path:      moment.js", "chain:     cors -> webjars"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestRun_ResolveErrors(t *testing.T) {
	cfgPath := writeConfig(t, t.TempDir())

	testCases := []struct {
		name string
		path string
		want error
	}{
		{"invalid reference", "/lib/momentjs", webjars.ErrInvalidReference},
		{"outside prefix", "/webjars/momentjs/2.0.0/moment.js", webjars.ErrInvalidReference},
		{"missing file", "/lib/momentjs/2.0.0/moment.js", ErrAssetNotFound},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			err := run([]string{"--config", cfgPath, "resolve", tc.path}, &out)
			if !errors.Is(err, tc.want) {
				t.Errorf("run(resolve %s) error = %v, want %v", tc.path, err, tc.want)
			}
		})
	}
}

func TestRun_DumpConfig(t *testing.T) {
	cfgPath := writeConfig(t, "/srv/webjars")

	var out bytes.Buffer
	if err := run([]string{"dump-config", "-c", cfgPath}, &out); err != nil {
		t.Fatalf("run(dump-config) error = %v", err)
	}
	for _, want := range []string{"[webjars]", "/srv/webjars", "/lib", "[server]"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("dump missing %q:\n%s", want, out.String())
		}
	}
}

func TestRun_BadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[webjars]\nunknown = 1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	if err := run([]string{"dump-config", "--config", path}, &out); !errors.Is(err, ErrLoadConfig) {
		t.Errorf("run() error = %v, want ErrLoadConfig", err)
	}
}

func TestRun_UnknownCommand(t *testing.T) {
	var out bytes.Buffer
	if err := run([]string{"frobnicate"}, &out); err == nil {
		t.Error("run(frobnicate) expected error, got nil")
	}
}
