// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package sim provides a scripted engine for demos and end-to-end tests.
package sim

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ManuGH/playcore/internal/engine"
	"github.com/ManuGH/playcore/internal/tracks"
)

//go:embed scenarios/*.yaml
var builtin embed.FS

// Scenario scripts one engine session. Step offsets are measured from Prepare.
type Scenario struct {
	Name     string          `yaml:"name"`
	Duration time.Duration   `yaml:"duration"`
	Tracks   tracks.Snapshot `yaml:"tracks"`
	Steps    []Step          `yaml:"steps"`
}

// Step is one scripted engine callback.
type Step struct {
	After         time.Duration `yaml:"after"`
	Phase         string        `yaml:"phase,omitempty"`
	TracksChanged bool          `yaml:"tracks_changed,omitempty"`
	Error         *StepError    `yaml:"error,omitempty"`
}

// StepError describes an engine failure.
type StepError struct {
	Type             string `yaml:"type"`
	Message          string `yaml:"message"`
	BehindLiveWindow bool   `yaml:"behind_live_window"`
}

// Err converts the step into the error the engine reports.
func (e StepError) Err() error {
	t := engine.ErrorType(e.Type)
	if t == "" {
		t = engine.TypeUnexpected
	}
	out := &engine.Error{Type: t, Message: e.Message}
	if e.BehindLiveWindow {
		out.Cause = engine.ErrBehindLiveWindow
	}
	return out
}

var phases = map[string]engine.Phase{
	"idle":      engine.PhaseIdle,
	"buffering": engine.PhaseBuffering,
	"ready":     engine.PhaseReady,
	"ended":     engine.PhaseEnded,
}

// ParsePhase maps a phase name to engine.Phase.
func ParsePhase(name string) (engine.Phase, error) {
	p, ok := phases[strings.ToLower(name)]
	if !ok {
		return 0, fmt.Errorf("unknown phase %q", name)
	}
	return p, nil
}

// ParseScenario decodes and validates a YAML scenario. Unknown keys are rejected.
func ParseScenario(data []byte) (Scenario, error) {
	var sc Scenario
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&sc); err != nil && !errors.Is(err, io.EOF) {
		return Scenario{}, fmt.Errorf("parse scenario: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return Scenario{}, err
	}
	return sc, nil
}

// LoadScenario reads a scenario file from disk.
func LoadScenario(file string) (Scenario, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return Scenario{}, fmt.Errorf("read scenario: %w", err)
	}
	return ParseScenario(data)
}

// Builtin returns one of the scenarios shipped with the binary.
func Builtin(name string) (Scenario, error) {
	data, err := builtin.ReadFile(path.Join("scenarios", name+".yaml"))
	if err != nil {
		return Scenario{}, fmt.Errorf("unknown builtin scenario %q", name)
	}
	return ParseScenario(data)
}

// BuiltinNames lists the shipped scenarios.
func BuiltinNames() []string {
	entries, _ := builtin.ReadDir("scenarios")
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	slices.Sort(names)
	return names
}

// Validate checks step ordering and payloads.
func (sc Scenario) Validate() error {
	var errs []error
	for i, st := range sc.Steps {
		if st.After < 0 {
			errs = append(errs, fmt.Errorf("step %d: negative offset %s", i, st.After))
		}
		if i > 0 && st.After < sc.Steps[i-1].After {
			errs = append(errs, fmt.Errorf("step %d: offsets must not decrease", i))
		}
		n := 0
		if st.Phase != "" {
			n++
			if _, err := ParsePhase(st.Phase); err != nil {
				errs = append(errs, fmt.Errorf("step %d: %w", i, err))
			}
		}
		if st.TracksChanged {
			n++
		}
		if st.Error != nil {
			n++
		}
		if n != 1 {
			errs = append(errs, fmt.Errorf("step %d: exactly one of phase, tracks_changed or error is required", i))
		}
	}
	if sc.Duration < 0 {
		errs = append(errs, fmt.Errorf("negative duration %s", sc.Duration))
	}
	return errors.Join(errs...)
}
