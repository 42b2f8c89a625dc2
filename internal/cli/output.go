package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aretw0/fretwise"
	"github.com/aretw0/fretwise/internal/presentation/tui"
	"github.com/aretw0/fretwise/pkg/domain"
)

// Output formats accepted by the rank and pick commands.
const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

// ParseChords splits command arguments into chord roots.
// Each argument may itself be a comma separated list ("A,D G").
func ParseChords(args []string) []string {
	var out []string
	for _, arg := range args {
		for _, c := range strings.Split(arg, ",") {
			if c = strings.TrimSpace(c); c != "" {
				out = append(out, c)
			}
		}
	}
	return out
}

// WriteRanking prints every pair of a ranking, topN transitions each (zero for all).
func WriteRanking(w io.Writer, set *domain.RankedTransitionSet, format string, topN int) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, set)
	case FormatMarkdown:
		return render(w, tui.Report(nil, set, topN))
	case FormatText, "":
		for _, p := range set.Pairs() {
			fmt.Fprintf(w, "%s (%d transitions)\n", p.Key, len(p.Transitions))
			for i, t := range p.Transitions {
				if topN > 0 && i >= topN {
					break
				}
				fmt.Fprintf(w, "  %2d. %-12s finger %-5s hand %-5s total %s\n",
					i+1, t.Name, num(t.FingerMovement), num(t.HandMovement), num(t.Total))
			}
		}
		return nil
	}
	return fmt.Errorf("unknown format %q", format)
}

// WriteRecommendation prints the picked variations and, except in text form, the ranking.
func WriteRecommendation(w io.Writer, rec *fretwise.Recommendation, format string, topN int) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, rec)
	case FormatMarkdown:
		return render(w, tui.Report(rec.Picked, rec.Ranked, topN))
	case FormatText, "":
		for _, v := range rec.Picked {
			fmt.Fprintf(w, "%-4s %-8s frets %s  fingers %s\n",
				v.Root(), v.Name, frets(v.Positions), fingers(v.Fingerings))
		}
		return nil
	}
	return fmt.Errorf("unknown format %q", format)
}

func render(w io.Writer, markdown string) error {
	out, err := tui.NewRenderer(w)(markdown)
	if err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func frets(fs []domain.Fret) string {
	parts := make([]string, len(fs))
	for i, f := range fs {
		parts[i] = f.String()
	}
	return strings.Join(parts, " ")
}

func fingers(fs []domain.Finger) string {
	parts := make([]string, len(fs))
	for i, f := range fs {
		parts[i] = f.String()
	}
	return strings.Join(parts, " ")
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
