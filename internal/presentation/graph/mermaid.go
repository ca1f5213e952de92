package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/navfocus/pkg/domain"
)

// FocusOverlay marks routes on the rendered tree.
type FocusOverlay struct {
	// FocusPath is the route-key path from the root to the focused leaf.
	FocusPath []string
}

// GenerateMermaid renders a navigation state tree as a Mermaid flowchart.
// Shapes:
// - Navigator routes (nested state): [[Subroutine]]
// - Screens: [Rectangle]
// Active routes are linked with a thick arrow, the others with a dotted one.
// With an overlay, the focused path is highlighted.
func GenerateMermaid(state *domain.NavigationState, overlay *FocusOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")
	sb.WriteString("    root((\"root\"))\n")
	writeRoutes(&sb, "root", nil, state)

	if overlay != nil && len(overlay.FocusPath) > 0 {
		sb.WriteString("\n    %% Focus\n")
		// Black text for contrast on both light and dark themes.
		sb.WriteString("    classDef focused fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		for i := range overlay.FocusPath {
			fmt.Fprintf(&sb, "    class %s focused;\n", nodeID(overlay.FocusPath[:i+1]))
		}
	}
	return sb.String()
}

func writeRoutes(sb *strings.Builder, parentID string, path []string, state *domain.NavigationState) {
	if state == nil {
		return
	}
	for i, r := range state.Routes {
		routePath := append(append([]string{}, path...), r.Key)
		id := nodeID(routePath)

		opener, closer := "[", "]"
		if r.IsNavigator() {
			opener, closer = "[[", "]]"
		}
		label := r.Key
		if r.Name != "" && r.Name != r.Key {
			label = r.Key + " <br/> " + r.Name
		}
		fmt.Fprintf(sb, "    %s%s\"%s\"%s\n", id, opener, strings.ReplaceAll(label, "\"", "'"), closer)

		arrow := "-.->"
		if i == state.Index {
			arrow = "==>"
		}
		fmt.Fprintf(sb, "    %s %s %s\n", parentID, arrow, id)

		writeRoutes(sb, id, routePath, r.State)
	}
}

func nodeID(path []string) string {
	return "r_" + sanitizeMermaidID(strings.Join(path, "/"))
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "__")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
