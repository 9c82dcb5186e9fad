package ui

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"ticket-tix/internal/catalog"
)

// FilterConfig bundles tuning parameters for the local quick-find.
type FilterConfig struct {
	MinCoverage float64 // minimal share of the query that must match
	MaxSpread   int     // maximal distance between first and last match index
	MaxResults  int     // upper limit of returned results
}

// searchBase returns the lowercased text quick-find matches against.
func searchBase(events []catalog.EventSummary) []string {
	base := make([]string, len(events))
	for i, ev := range events {
		base[i] = strings.ToLower(ev.Name + " " + ev.Location)
	}
	return base
}

// quickFind returns the indices of events matching q, in their original
// order. An empty query matches nothing; callers treat that as "no filter".
func quickFind(q string, events []catalog.EventSummary, cfg FilterConfig) []int {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return nil
	}
	base := searchBase(events)
	idx := make([]int, len(events))
	for i := range events {
		idx[i] = i
	}
	out := filterBySubstring(q, base, idx, cfg)
	if len(out) == 0 {
		out = filterByFuzzy(q, base, idx, cfg)
	}
	sort.Ints(out)
	return out
}

// filterBySubstring performs a simple substring check against the prepared base
// list and returns matching indices limited by cfg.MaxResults.
func filterBySubstring(q string, base []string, idx []int, cfg FilterConfig) []int {
	sub := make([]int, 0, min(cfg.MaxResults, len(idx)))
	for _, i := range idx {
		if strings.Contains(base[i], q) {
			sub = append(sub, i)
			if len(sub) >= cfg.MaxResults {
				break
			}
		}
	}
	return sub
}

// filterByFuzzy applies fuzzy matching on the subset defined by idx and
// filters results based on coverage and spread thresholds from cfg.
func filterByFuzzy(q string, base []string, idx []int, cfg FilterConfig) []int {
	subset := make([]string, len(idx))
	mapBack := make([]int, len(idx))
	for j, i := range idx {
		subset[j] = base[i]
		mapBack[j] = i
	}
	matches := fuzzy.Find(q, subset)

	pruned := make([]int, 0, len(matches))
	for _, mt := range matches {
		if matchCoverage(q, mt) < cfg.MinCoverage {
			continue
		}
		if matchSpread(mt) > cfg.MaxSpread {
			continue
		}
		pruned = append(pruned, mapBack[mt.Index])
		if len(pruned) >= cfg.MaxResults {
			break
		}
	}
	return pruned
}

// matchCoverage returns the ratio of matched characters to the query length.
func matchCoverage(q string, m fuzzy.Match) float64 {
	if len(q) == 0 {
		return 1
	}
	return float64(len(m.MatchedIndexes)) / float64(len(q))
}

// matchSpread returns the distance between the first and last matched index.
func matchSpread(m fuzzy.Match) int {
	if len(m.MatchedIndexes) == 0 {
		return 0
	}
	return m.MatchedIndexes[len(m.MatchedIndexes)-1] - m.MatchedIndexes[0]
}
