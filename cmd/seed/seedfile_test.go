//go:build !integration

package main

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestParseSeedFile_Example(t *testing.T) {
	_, file, _, _ := runtime.Caller(0)
	sf, err := loadSeedFile(filepath.Join(filepath.Dir(file), "..", "..", "deploy", "seed.example.yaml"))
	if err != nil {
		t.Fatalf("load example: %v", err)
	}
	if len(sf.Codes) == 0 || len(sf.Rates.Default) == 0 || len(sf.Rates.Provider) == 0 {
		t.Fatalf("example looks empty: %+v", sf)
	}
	if p := sf.problems(); len(p) != 0 {
		t.Fatalf("example should be clean, got %v", p)
	}
	pr := sf.Rates.Provider[0]
	if pr.Effective != 50 || pr.Expiry != 200 {
		t.Fatalf("inline window not decoded: %+v", pr)
	}
	if sf.Providers[0].LicenseNumber == "" {
		t.Fatal("provider license_number not decoded")
	}
}

func TestSeedFile_Problems(t *testing.T) {
	raw := []byte(`
codes:
  - code: "99213"
  - code: " 99213 "
  - code: ""
rates:
  default:
    - {network: n, code: "99213", rate: 1, effective: 10, expiry: 5}
  provider:
    - {network: n, provider: p, code: "00000", rate: 1, effective: 0, expiry: 5}
`)
	sf, err := parseSeedFile(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	got := strings.Join(sf.problems(), "\n")
	for _, want := range []string{
		`codes[1]: duplicate code "99213"`,
		"codes[2]: empty code",
		"warn: rates.default[0]: empty window [10, 5)",
		`rates.provider[0]: code "00000" is not declared`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}
	if !hasErrors(sf.problems()) {
		t.Fatal("expected errors")
	}
}

func TestSeedFile_WarningsOnly(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seed.yaml")
	body := "codes:\n  - code: A\nrates:\n  default:\n    - {network: n, code: A, rate: 0, effective: 3, expiry: 3}\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	sf, err := loadSeedFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if p := sf.problems(); len(p) != 1 || hasErrors(p) {
		t.Fatalf("expected a single warning, got %v", p)
	}
}
