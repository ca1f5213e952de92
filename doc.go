/*
Package navfocus implements focus propagation for trees of nested navigators.

Screen-based navigation systems nest navigators (tabs holding stacks holding
screens). When the active route changes anywhere in the tree, navfocus decides
which leaf gains focus and which one loses it, and notifies listeners with the
lifecycle sequence willFocus → didFocus and willBlur → didBlur, plus an action
event for every state change.

# Architecture

  - pkg/registry: per-navigator listener directory keyed by event type and target.
  - pkg/focus: the per-navigator tracker deciding what to emit.
  - pkg/navigator: an in-memory tree of navigators wired to trackers.
  - pkg/observability: trace, metrics and observer fan-out.
  - pkg/scenario: YAML replay scripts and the Loam-backed scenario library.
  - pkg/adapters: HTTP inspector, MCP server, Redis stream, in-memory sources.

Computing the next state from an action (the reducer) is out of scope: callers
hand the container the state their reducer produced.

# Usage

	c, err := navigator.NewContainer(initial, navigator.WithObserver(trace))
	if err != nil {
		log.Fatal(err)
	}
	defer c.Close()

	feed := c.Root().Listen("home")
	feed.AddListener(domain.EventDidFocus, func(p domain.Payload) {
		log.Println("home focused via", p.Context)
	})

	if err := c.Start(); err != nil {
		log.Fatal(err)
	}
	err = c.Dispatch(domain.Action{Type: "Navigate"}, next)

The Workspace type in this package wraps a directory of scenarios for the CLI
and the MCP server.
*/
package navfocus
