package validator

import (
	"context"
	"strings"
	"testing"

	"github.com/aretw0/navfocus/pkg/adapters/memory"
	"github.com/aretw0/navfocus/pkg/scenario"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nested = `
initial:
  routes:
    - key: home
      state:
        routes: [{key: feed}]
expect:
  - root:willFocus(home)
  - home:willFocus(feed)
  - home:didFocus(feed)
  - root:didFocus(home)
`

func TestValidateSource(t *testing.T) {
	// 1. Valid scenarios
	src := memory.NewSource(map[string]string{"nested": nested})
	assert.NoError(t, ValidateSource(context.Background(), src))

	// 2. Broken expectations and an unparsable document
	src = memory.NewSource(map[string]string{
		"nested": nested + `steps:
  - action: Noop
    state: {routes: [{key: home}]}
    expect: ["home:didBlur(post)", "root:blink(home)", nope]
`,
		"broken": "initial: {routes: []}",
	})
	err := ValidateSource(context.Background(), src)
	require.Error(t, err)

	msg := err.Error()
	assert.Contains(t, msg, "found 4 errors")
	assert.Contains(t, msg, "broken: ")
	assert.Contains(t, msg, `nested: step 1: "home:didBlur(post)": navigator "home" never has route "post"`)
	assert.Contains(t, msg, "unknown event type")
	assert.True(t, strings.Contains(msg, `"nope" is not navigator:type(target)`), msg)
}

func TestCheck_NestedNavigatorNames(t *testing.T) {
	sc, err := scenario.Parse([]byte(`
initial:
  routes:
    - key: app
      state:
        routes:
          - key: tabs
            state:
              routes: [{key: inbox}]
expect:
  - app/tabs:willFocus(inbox)
  - tabs:willFocus(inbox)
  - root:action(app)
`))
	require.NoError(t, err)

	problems := Check(sc)
	require.Len(t, problems, 2)
	assert.Contains(t, problems[0], `no navigator "tabs"`)
	assert.Contains(t, problems[1], "action events are not matched")
}

func TestValidateSource_Examples(t *testing.T) {
	lib, err := scenario.OpenLibrary("../../examples/scenarios")
	require.NoError(t, err)
	assert.NoError(t, ValidateSource(context.Background(), lib))
}
