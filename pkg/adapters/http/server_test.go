package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aretw0/navfocus/pkg/domain"
	"github.com/aretw0/navfocus/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tabsJSON = `{"index":%d,"routes":[{"key":"home","state":{"key":"home","index":0,"routes":[{"key":"feed"}]}},{"key":"settings"}]}`

func tabs(index int) *domain.NavigationState {
	var s domain.NavigationState
	if err := json.Unmarshal([]byte(fmt.Sprintf(tabsJSON, index)), &s); err != nil {
		panic(err)
	}
	return &s
}

func newTestHandler(t *testing.T, opts ...Option) (*Inspector, http.Handler) {
	t.Helper()
	insp, err := NewInspector(tabs(0), opts...)
	require.NoError(t, err)
	t.Cleanup(insp.Close)

	h, err := insp.Handler()
	require.NoError(t, err)
	return insp, h
}

func do(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewReader([]byte(body)))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestInspector_StartsFocused(t *testing.T) {
	_, h := newTestHandler(t)

	w := do(h, "GET", "/focus", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"focus":["home","feed"]}`, w.Body.String())

	w = do(h, "GET", "/trace", "")
	require.Equal(t, http.StatusOK, w.Code)
	var events []domain.LifecycleEvent
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &events))
	require.NotEmpty(t, events)
	assert.Equal(t, "willFocus(home)", events[0].String())
}

func TestInspector_Dispatch(t *testing.T) {
	_, h := newTestHandler(t)

	body := `{"action":{"type":"Navigate"},"state":` + fmt.Sprintf(tabsJSON, 1) + `}`
	w := do(h, "POST", "/dispatch", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res DispatchResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, []string{"settings"}, res.Focus)

	var got []string
	for _, e := range res.Events {
		got = append(got, e.Navigator+":"+e.String())
	}
	assert.Equal(t, []string{
		"root:willFocus(settings)",
		"root:didFocus(settings)",
		"root:willBlur(home)",
		"home:willBlur(feed)",
		"home:didBlur(feed)",
		"root:didBlur(home)",
		"root:action(settings)",
	}, got)

	w = do(h, "GET", "/trace?limit=2", "")
	require.Equal(t, http.StatusOK, w.Code)
	var last []domain.LifecycleEvent
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &last))
	require.Len(t, last, 2)
	assert.Equal(t, "action(settings)", last[1].String())
	assert.Equal(t, res.Events[len(res.Events)-1].Sequence, last[1].Sequence)
}

func TestInspector_RejectsInvalidRequests(t *testing.T) {
	_, h := newTestHandler(t)

	tests := []struct {
		name, method, target, body string
	}{
		{"missing state", "POST", "/dispatch", `{"action":{"type":"Navigate"}}`},
		{"empty routes", "POST", "/dispatch", `{"action":{"type":"Navigate"},"state":{"routes":[]}}`},
		{"index out of range", "POST", "/dispatch", `{"action":{"type":"Navigate"},"state":{"index":4,"routes":[{"key":"a"}]}}`},
		{"negative limit", "GET", "/trace?limit=-1", ""},
		{"non numeric limit", "GET", "/trace?limit=ten", ""},
		{"reset without state", "POST", "/reset", `{}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(h, tt.method, tt.target, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			assert.Contains(t, w.Body.String(), `"error"`)
		})
	}

	w := do(h, "GET", "/focus", "")
	assert.JSONEq(t, `{"focus":["home","feed"]}`, w.Body.String(), "rejected requests leave the tree untouched")
}

func TestInspector_Reset(t *testing.T) {
	insp, h := newTestHandler(t)

	w := do(h, "POST", "/reset", `{"state":{"index":0,"routes":[{"key":"login"}]}}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res DispatchResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, []string{"login"}, res.Focus)
	assert.Len(t, insp.trace.Events(), len(res.Events), "reset clears the trace")

	w = do(h, "GET", "/state", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"login"`)
}

func TestInspector_MetricsAndDocs(t *testing.T) {
	_, h := newTestHandler(t)

	w := do(h, "GET", "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `navfocus_lifecycle_events_total{event="willFocus"} 2`)

	w = do(h, "GET", "/openapi.yaml", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/dispatch:")

	w = do(h, "GET", "/info", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "navfocus-inspector")

	w = do(h, "OPTIONS", "/dispatch", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestInspector_ExtraObserver(t *testing.T) {
	var seen []string
	insp, _ := newTestHandler(t, WithObserver(ports.ObserverFunc(func(e domain.LifecycleEvent) {
		seen = append(seen, e.String())
	})))

	_, err := insp.Dispatch(domain.Action{Type: "Navigate"}, tabs(1))
	require.NoError(t, err)
	assert.Contains(t, seen, "didFocus(settings)")
}

func TestSubscribeEvents(t *testing.T) {
	insp, h := newTestHandler(t)

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest("GET", "/events?navigator=home", nil).WithContext(ctx)
	w := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		defer close(done)
		h.ServeHTTP(w, req)
	}()

	require.Eventually(t, func() bool { return insp.Streams().Len() == 1 }, time.Second, 5*time.Millisecond)

	_, err := insp.Dispatch(domain.Action{Type: "Navigate"}, tabs(1))
	require.NoError(t, err)

	// Give the handler a chance to drain the buffered events.
	time.Sleep(50 * time.Millisecond)
	cancel()
	<-done

	body := w.Body.String()
	assert.Contains(t, body, "event: ping")
	assert.Contains(t, body, `"target":"feed"`)
	assert.NotContains(t, body, `"target":"settings"`, "filtered to the home navigator")
	assert.Equal(t, 0, insp.Streams().Len())
}
