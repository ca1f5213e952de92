// Package scenario replays scripted navigation sessions against a navigator
// tree and records the lifecycle events they produce.
//
// A scenario is a YAML document:
//
//	name: tabs
//	initial:
//	  index: 0
//	  routes:
//	    - key: home
//	      state:
//	        routes: [{key: feed}, {key: post}]
//	    - key: settings
//	expect: ["root:willFocus(home)", "home:willFocus(feed)"]
//	steps:
//	  - action: Navigate
//	    state: {...}
//	    expect: ["root:willFocus(settings)"]
//
// The reducer is out of scope, so every step carries the complete next state.
// Expectations list focus events as "navigator:type(target)"; when present
// they must match the emitted sequence exactly, action events excluded.
//
// Library reads scenarios from a directory of Markdown documents through Loam:
// the frontmatter carries the metadata and the body the YAML script.
package scenario
