package navfocus_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/navfocus"
	"github.com/aretw0/navfocus/pkg/adapters/memory"
	"github.com/aretw0/navfocus/pkg/scenario"
)

// ExampleWorkspace_Replay replays a scenario held in memory instead of a
// Loam directory.
func ExampleWorkspace_Replay() {
	src := memory.NewSource(map[string]string{
		"switch": `
initial:
  routes: [{key: a}, {key: b}]
steps:
  - action: Navigate
    state: {index: 1, routes: [{key: a}, {key: b}]}
`,
	})

	ws, err := navfocus.Open("", navfocus.WithSource(src))
	if err != nil {
		log.Fatal(err)
	}

	res, err := ws.Replay(context.Background(), "switch")
	if err != nil {
		log.Fatal(err)
	}
	for _, line := range scenario.Describe(res.Events) {
		fmt.Println(line)
	}
	fmt.Println("focus:", res.Focus)

	// Output:
	// root:willFocus(a)
	// root:didFocus(a)
	// root:willFocus(b)
	// root:didFocus(b)
	// root:willBlur(a)
	// root:didBlur(a)
	// focus: [b]
}
