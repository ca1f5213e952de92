package scenario

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/aretw0/navfocus/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// ErrInvalidScenario is returned for documents that cannot be replayed.
var ErrInvalidScenario = errors.New("invalid scenario")

// Scenario is a scripted navigation session.
type Scenario struct {
	Name        string                  `json:"name" mapstructure:"name"`
	Description string                  `json:"description,omitempty" mapstructure:"description"`
	Initial     *domain.NavigationState `json:"initial" mapstructure:"initial"`
	// Expect lists the focus events of the initial mount.
	Expect []string `json:"expect,omitempty" mapstructure:"expect"`
	Steps  []Step   `json:"steps" mapstructure:"steps"`
}

// Step dispatches one action together with the state the reducer produced for it.
type Step struct {
	Action domain.Action           `json:"action" mapstructure:"action"`
	State  *domain.NavigationState `json:"state" mapstructure:"state"`
	Expect []string                `json:"expect,omitempty" mapstructure:"expect"`
}

// Parse decodes a YAML scenario document and validates it.
func Parse(data []byte) (*Scenario, error) {
	var raw map[string]any
	if err := yaml.Unmarshal([]byte(stripFence(string(data))), &raw); err != nil {
		return nil, fmt.Errorf("%w: yaml: %w", ErrInvalidScenario, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidScenario)
	}

	var sc Scenario
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:  actionShorthand,
		ErrorUnused: true,
		Result:      &sc,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Load reads and parses a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	sc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

// Validate checks that the initial state and every step state are well formed.
func (s *Scenario) Validate() error {
	if err := s.Initial.Validate(); err != nil {
		return fmt.Errorf("%w: initial: %w", ErrInvalidScenario, err)
	}
	for i, step := range s.Steps {
		if step.Action.Type == "" {
			return fmt.Errorf("%w: step %d: missing action type", ErrInvalidScenario, i+1)
		}
		if err := step.State.Validate(); err != nil {
			return fmt.Errorf("%w: step %d: %w", ErrInvalidScenario, i+1, err)
		}
	}
	return nil
}

// actionShorthand lets a step say `action: Navigate` instead of `action: {type: Navigate}`.
func actionShorthand(from, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf(domain.Action{}) || from.Kind() != reflect.String {
		return data, nil
	}
	return map[string]any{"type": data}, nil
}

// stripFence removes a surrounding ```yaml fence, as found in Markdown bodies.
func stripFence(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return s
	}
	lines := strings.Split(trimmed, "\n")
	lines = lines[1:]
	for i := len(lines) - 1; i >= 0; i-- {
		if strings.HasPrefix(strings.TrimSpace(lines[i]), "```") {
			lines = lines[:i]
			break
		}
	}
	return strings.Join(lines, "\n")
}
