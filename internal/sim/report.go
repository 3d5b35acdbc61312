package sim

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var lang = language.English

// WriteTo prints the report as a two-column table followed by the wave
// histogram.
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	p := message.NewPrinter(lang)

	keys := []string{
		"Variant", "Boards", "Swaps", "Gems cleared", "Dead boards", "Unstable",
		"Mean waves", "Std dev", "P95 waves", "Max waves", "Elapsed", "Swaps/sec",
	}
	vals := map[string]string{
		"Variant":      r.Variant,
		"Boards":       p.Sprintf("%d", r.Runs),
		"Swaps":        p.Sprintf("%d", r.Swaps),
		"Gems cleared": p.Sprintf("%d", r.Cleared),
		"Dead boards":  p.Sprintf("%d", r.DeadBoards),
		"Unstable":     p.Sprintf("%d", r.Unstable),
		"Mean waves":   p.Sprintf("%.3f", r.MeanWaves),
		"Std dev":      p.Sprintf("%.3f", r.StdDevWaves),
		"P95 waves":    p.Sprintf("%.0f", r.P95Waves),
		"Max waves":    p.Sprintf("%d", r.MaxWaves),
		"Elapsed":      r.Elapsed.Round(time.Millisecond).String(),
		"Swaps/sec":    p.Sprintf("%d", rate(r.Swaps, r.Elapsed)),
	}

	var sb strings.Builder
	sb.WriteString(table("Cascade simulation", keys, vals))

	if len(r.Histogram) > 0 {
		waves := make([]int, 0, len(r.Histogram))
		for k := range r.Histogram {
			waves = append(waves, k)
		}
		sort.Ints(waves)

		hkeys := make([]string, 0, len(waves))
		hvals := make(map[string]string, len(waves))
		for _, k := range waves {
			key := fmt.Sprintf("%d wave(s)", k)
			hkeys = append(hkeys, key)
			share := 100 * float64(r.Histogram[k]) / float64(max(r.Swaps, 1))
			hvals[key] = p.Sprintf("%d (%.1f%%)", r.Histogram[k], share)
		}
		sb.WriteString(table("Waves per swap", hkeys, hvals))
	}

	n, err := io.WriteString(w, sb.String())
	return int64(n), err
}

func rate(n int, d time.Duration) int {
	sec := d.Seconds()
	if sec <= 0 {
		return 0
	}
	return int(float64(n) / sec)
}

// table draws a boxed key/value table, padding by display width.
func table(title string, keys []string, vals map[string]string) string {
	keyW, valW := 0, 0
	for _, k := range keys {
		keyW = max(keyW, runewidth.StringWidth(k))
		valW = max(valW, runewidth.StringWidth(vals[k]))
	}
	inner := keyW + valW + 5
	if tw := runewidth.StringWidth(title) + 2; tw > inner {
		valW += tw - inner
		inner = tw
	}

	top := "+" + strings.Repeat("-", inner) + "+\n"
	divider := "+" + strings.Repeat("-", keyW+2) + "+" + strings.Repeat("-", valW+2) + "+\n"

	var sb strings.Builder
	sb.WriteString(top)
	left := (inner - runewidth.StringWidth(title)) / 2
	sb.WriteString("|" + runewidth.FillLeft(title, left+runewidth.StringWidth(title)) +
		strings.Repeat(" ", inner-left-runewidth.StringWidth(title)) + "|\n")
	sb.WriteString(divider)
	for _, k := range keys {
		sb.WriteString("| " + runewidth.FillRight(k, keyW) + " | " + runewidth.FillRight(vals[k], valW) + " |\n")
	}
	sb.WriteString(divider)
	return sb.String()
}
