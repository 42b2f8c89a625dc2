package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/fretwise/pkg/domain"
)

// Report formats a ranking and its picks as a markdown document.
// topN limits the transitions listed per pair; zero lists all of them.
func Report(picked []domain.ChordVariation, ranked *domain.RankedTransitionSet, topN int) string {
	var sb strings.Builder

	sb.WriteString("# Recommended shapes\n\n")
	if len(picked) == 0 {
		sb.WriteString("_No chords picked._\n")
	} else {
		sb.WriteString("| Chord | Variation | Frets | Fingers |\n")
		sb.WriteString("|---|---|---|---|\n")
		for _, v := range picked {
			fmt.Fprintf(&sb, "| %s | %s | `%s` | `%s` |\n",
				v.Root(), v.Name, joinFrets(v.Positions), joinFingers(v.Fingerings))
		}
	}

	if ranked == nil || ranked.Len() == 0 {
		return sb.String()
	}

	sb.WriteString("\n# Transitions\n")
	for _, p := range ranked.Pairs() {
		fmt.Fprintf(&sb, "\n## %s\n\n", p.Key)
		sb.WriteString("| # | Transition | Finger | Hand | Total |\n")
		sb.WriteString("|---|---|---|---|---|\n")
		for i, t := range p.Transitions {
			if topN > 0 && i >= topN {
				break
			}
			fmt.Fprintf(&sb, "| %d | %s | %s | %s | **%s** |\n",
				i+1, t.Name, num(t.FingerMovement), num(t.HandMovement), num(t.Total))
		}
	}
	return sb.String()
}

func joinFrets(fs []domain.Fret) string {
	parts := make([]string, len(fs))
	for i, f := range fs {
		parts[i] = f.String()
	}
	return strings.Join(parts, " ")
}

func joinFingers(fs []domain.Finger) string {
	parts := make([]string, len(fs))
	for i, f := range fs {
		parts[i] = f.String()
	}
	return strings.Join(parts, " ")
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
