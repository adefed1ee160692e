// Package steps turns the numbered-list text returned by the route provider
// into classified route steps.
package steps

import (
	"iter"
	"regexp"
	"strconv"
	"strings"

	"along/internal/domain"
	"along/internal/domain/models"
)

var markerRe = regexp.MustCompile(`^(\d+)\.\s*`)

// keyword sets in precedence order; the first set with a hit wins.
var modeKeywords = []struct {
	mode     domain.TravelMode
	keywords []string
}{
	{domain.ModeBus, []string{"bus", "brt", "danfo"}},
	{domain.ModeWalk, []string{"walk"}},
	{domain.ModeTricycle, []string{"keke", "tricycle", "okada"}},
}

// All yields the steps found in raw, in source order. The sequence can be
// ranged over any number of times.
func All(raw string) iter.Seq[models.RouteStep] {
	return func(yield func(models.RouteStep) bool) {
		for line := range strings.SplitSeq(raw, "\n") {
			step, ok := parseLine(line)
			if !ok {
				continue
			}
			if !yield(step) {
				return
			}
		}
	}
}

// Parse collects All(raw). It returns an empty, non-nil slice when raw has no
// numbered lines.
func Parse(raw string) []models.RouteStep {
	out := []models.RouteStep{}
	for step := range All(raw) {
		out = append(out, step)
	}
	return out
}

func parseLine(line string) (models.RouteStep, bool) {
	line = strings.TrimSpace(line)
	m := markerRe.FindStringSubmatch(line)
	if m == nil {
		return models.RouteStep{}, false
	}
	index, err := strconv.Atoi(m[1])
	if err != nil {
		return models.RouteStep{}, false
	}

	text := line[len(m[0]):]
	// the provider sometimes wraps landmarks in **bold** despite being told not to
	text = strings.TrimSpace(strings.ReplaceAll(text, "*", ""))

	return models.RouteStep{
		Index: index,
		Text:  text,
		Mode:  Classify(text),
	}, true
}

// Classify picks the travel mode of a step by keyword, case-insensitively.
func Classify(text string) domain.TravelMode {
	lower := strings.ToLower(text)
	for _, set := range modeKeywords {
		for _, kw := range set.keywords {
			if strings.Contains(lower, kw) {
				return set.mode
			}
		}
	}
	return domain.ModeUnknown
}
