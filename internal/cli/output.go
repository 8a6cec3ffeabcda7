package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/alywork/lawdesk/internal/engine"
)

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to format JSON: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}

// printResult writes a search result in the human-readable layout.
func printResult(w io.Writer, res engine.Result) {
	if !res.Found() {
		fmt.Fprintln(w, res.Answer)
		return
	}

	for i, hit := range res.Hits {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, hit.Article.Text)
		fmt.Fprintf(w, "  %s\n", hit.Article.Reference())
		if hit.Article.Example != "" {
			fmt.Fprintf(w, "  مثال: %s\n", hit.Article.Example)
		}
	}
	fmt.Fprintf(w, "\n(%s, %d hit(s))\n", res.Strategy, len(res.Hits))
}

// printHits writes ranked articles one per line.
func printHits(w io.Writer, hits []engine.Hit) {
	if len(hits) == 0 {
		fmt.Fprintln(w, "No matching articles.")
		return
	}
	for _, hit := range hits {
		fmt.Fprintf(w, "%.3f  %s  %s\n", hit.Score, hit.Article.Reference(), truncate(hit.Article.Text, 60))
	}
}

// truncate shortens s to at most max runes, marking the cut with "...".
func truncate(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
