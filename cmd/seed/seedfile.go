package main

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"provider-network-pricing/internal/domain/model"
	"provider-network-pricing/internal/usecase"
)

type seedWindow struct {
	Effective uint64 `yaml:"effective"`
	Expiry    uint64 `yaml:"expiry"`
}

func (w seedWindow) window() model.Window {
	return model.Window{Effective: model.LogicalTime(w.Effective), Expiry: model.LogicalTime(w.Expiry)}
}

type seedCode struct {
	Code        string `yaml:"code"`
	Description string `yaml:"description"`
	Category    string `yaml:"category"`
}

type seedMember struct {
	ID   string `yaml:"id"`
	Tier string `yaml:"tier"`
}

type seedNetwork struct {
	ID          string       `yaml:"id"`
	Name        string       `yaml:"name"`
	Description string       `yaml:"description"`
	Providers   []seedMember `yaml:"providers"`
}

type seedDefaultRate struct {
	Network    string `yaml:"network"`
	Code       string `yaml:"code"`
	Rate       uint64 `yaml:"rate"`
	seedWindow `yaml:",inline"`
}

type seedProviderRate struct {
	Network    string `yaml:"network"`
	Provider   string `yaml:"provider"`
	Code       string `yaml:"code"`
	Rate       uint64 `yaml:"rate"`
	seedWindow `yaml:",inline"`
}

// seedFile is the on-disk seed format. now is the logical time stamped on
// memberships and provider rates.
type seedFile struct {
	Now       uint64                          `yaml:"now"`
	Codes     []seedCode                      `yaml:"codes"`
	Networks  []seedNetwork                   `yaml:"networks"`
	Providers []usecase.RegisterProviderInput `yaml:"providers"`
	Rates     struct {
		Default  []seedDefaultRate  `yaml:"default"`
		Provider []seedProviderRate `yaml:"provider"`
	} `yaml:"rates"`
}

func loadSeedFile(path string) (*seedFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseSeedFile(raw)
}

func parseSeedFile(raw []byte) (*seedFile, error) {
	var sf seedFile
	if err := yaml.Unmarshal(raw, &sf); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	return &sf, nil
}

// problems lists issues that would make apply fail, followed by warnings
// prefixed with "warn:" for entries that apply but never resolve.
func (sf *seedFile) problems() []string {
	var out []string
	codes := map[string]bool{}
	for i, c := range sf.Codes {
		code := model.NormalizeCode(c.Code)
		if code == "" {
			out = append(out, fmt.Sprintf("codes[%d]: empty code", i))
			continue
		}
		if codes[code] {
			out = append(out, fmt.Sprintf("codes[%d]: duplicate code %q", i, code))
		}
		codes[code] = true
	}
	for i, r := range sf.Rates.Default {
		if !codes[model.NormalizeCode(r.Code)] {
			out = append(out, fmt.Sprintf("rates.default[%d]: code %q is not declared", i, r.Code))
		}
		if !r.window().Valid() {
			out = append(out, fmt.Sprintf("warn: rates.default[%d]: empty window [%d, %d)", i, r.Effective, r.Expiry))
		}
	}
	for i, r := range sf.Rates.Provider {
		if !codes[model.NormalizeCode(r.Code)] {
			out = append(out, fmt.Sprintf("rates.provider[%d]: code %q is not declared", i, r.Code))
		}
		if !r.window().Valid() {
			out = append(out, fmt.Sprintf("warn: rates.provider[%d]: empty window [%d, %d)", i, r.Effective, r.Expiry))
		}
	}
	return out
}

func hasErrors(problems []string) bool {
	for _, p := range problems {
		if !strings.HasPrefix(p, "warn:") {
			return true
		}
	}
	return false
}
