package validator

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/aretw0/navfocus/pkg/domain"
	"github.com/aretw0/navfocus/pkg/scenario"
)

var expectation = regexp.MustCompile(`^([^:]+):([A-Za-z]+)\(([^()]*)\)$`)

// ValidateSource loads every scenario of src and checks that its expectations
// name navigators and routes that exist in one of its states.
func ValidateSource(ctx context.Context, src scenario.Source) error {
	list, err := src.List(ctx)
	if err != nil {
		return err
	}

	var errors []string
	for _, meta := range list {
		sc, err := src.Get(ctx, meta.ID)
		if err != nil {
			errors = append(errors, fmt.Sprintf("%s: %v", meta.ID, err))
			continue
		}
		for _, problem := range Check(sc) {
			errors = append(errors, fmt.Sprintf("%s: %s", meta.ID, problem))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("found %d errors:\n- %s", len(errors), strings.Join(errors, "\n- "))
	}
	return nil
}

// Check returns the problems found in the expectations of a parsed scenario.
func Check(sc *scenario.Scenario) []string {
	routes := make(map[string]map[string]bool)
	collect(routes, "root", sc.Initial)
	for _, step := range sc.Steps {
		collect(routes, "root", step.State)
	}

	var problems []string
	lint := func(where string, expect []string) {
		for _, e := range expect {
			if p := checkExpectation(routes, e); p != "" {
				problems = append(problems, fmt.Sprintf("%s: %s", where, p))
			}
		}
	}
	lint("initial", sc.Expect)
	for i, step := range sc.Steps {
		lint(fmt.Sprintf("step %d", i+1), step.Expect)
	}
	return problems
}

func checkExpectation(routes map[string]map[string]bool, e string) string {
	m := expectation.FindStringSubmatch(e)
	if m == nil {
		return fmt.Sprintf("%q is not navigator:type(target)", e)
	}
	nav, typ, target := m[1], m[2], m[3]

	et, err := domain.ParseEventType(typ)
	if err != nil {
		return err.Error()
	}
	if et == domain.EventAction {
		return fmt.Sprintf("%q: action events are not matched by expectations", e)
	}
	keys, ok := routes[nav]
	if !ok {
		return fmt.Sprintf("%q: no navigator %q in any state", e, nav)
	}
	if !keys[target] {
		return fmt.Sprintf("%q: navigator %q never has route %q", e, nav, target)
	}
	return ""
}

// collect records the route keys each navigator holds in state.
func collect(routes map[string]map[string]bool, name string, state *domain.NavigationState) {
	if state == nil {
		return
	}
	if routes[name] == nil {
		routes[name] = make(map[string]bool)
	}
	for _, r := range state.Routes {
		routes[name][r.Key] = true
		if r.IsNavigator() {
			child := r.Key
			if name != "root" {
				child = name + "/" + r.Key
			}
			collect(routes, child, r.State)
		}
	}
}
