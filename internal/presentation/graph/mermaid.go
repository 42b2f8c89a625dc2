package graph

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/fretwise/pkg/domain"
)

// GraphOverlay contains selection state to highlight on the graph.
type GraphOverlay struct {
	Picked []string
}

// Options tune the rendered graph.
type Options struct {
	// PerPair limits how many transitions are drawn for each pair. Zero draws only the best one.
	PerPair int
}

// GenerateMermaid produces a Mermaid flowchart of a ranking.
// Each chord root becomes a subgraph of its variations and each drawn
// transition an edge labelled with its total score:
// - Best transition of a pair: solid arrow
// - Other transitions: dotted arrow
// Picked variations are styled when an overlay is provided.
func GenerateMermaid(set *domain.RankedTransitionSet, overlay *GraphOverlay, opts Options) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")
	if set == nil {
		return sb.String()
	}

	perPair := opts.PerPair
	if perPair <= 0 {
		perPair = 1
	}

	// Collect the variations that appear in drawn edges, grouped by root.
	groups := make(map[string][]string)
	seen := make(map[string]bool)
	add := func(name string) {
		if seen[name] {
			return
		}
		seen[name] = true
		root := domain.RootOf(name)
		groups[root] = append(groups[root], name)
	}

	var edges strings.Builder
	for _, key := range set.Keys() {
		ts, _ := set.Get(key)
		for i, t := range ts {
			if i >= perPair {
				break
			}
			add(t.From.Name)
			add(t.To.Name)

			arrow := "-->"
			if i > 0 {
				arrow = "-.->"
			}
			fmt.Fprintf(&edges, "    %s %s|%s| %s\n",
				sanitizeMermaidID(t.From.Name), arrow, formatScore(t.Total), sanitizeMermaidID(t.To.Name))
		}
	}

	for _, root := range set.Roots() {
		names := groups[root]
		if len(names) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "    subgraph %s[\"%s\"]\n", sanitizeMermaidID("root "+root), root)
		for _, name := range names {
			fmt.Fprintf(&sb, "        %s[\"%s\"]\n", sanitizeMermaidID(name), name)
		}
		sb.WriteString("    end\n")
	}
	sb.WriteString(edges.String())

	if overlay != nil && len(overlay.Picked) > 0 {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for contrast on both themes
		sb.WriteString("    classDef picked fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		styled := make(map[string]bool)
		for _, name := range overlay.Picked {
			safeID := sanitizeMermaidID(name)
			if styled[safeID] || safeID == "" {
				continue
			}
			styled[safeID] = true
			if !seen[name] {
				// The pick is not on a drawn edge; declare it so the class applies.
				fmt.Fprintf(&sb, "    %s[\"%s\"]\n", safeID, name)
			}
			fmt.Fprintf(&sb, "    class %s picked;\n", safeID)
		}
	}

	return sb.String()
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func sanitizeMermaidID(id string) string {
	r := strings.NewReplacer(
		" ", "_",
		".", "_",
		"-", "_",
		"/", "_",
		"\\", "_",
		"#", "sharp",
	)
	return r.Replace(id)
}
