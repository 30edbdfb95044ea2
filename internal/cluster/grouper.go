package cluster

import (
	"context"
	"fmt"
	"sort"

	"github.com/scrypster/rostrum/pkg/types"
)

// DefaultThreshold is the similarity ratio two normalized texts must reach
// to be judged the same quotation.
const DefaultThreshold = 0.85

// exactKeyLen is how much of the normalized text participates in the exact
// per-speech dedup key applied before fuzzy grouping.
const exactKeyLen = 100

// Grouper clusters candidates by approximate similarity of their normalized
// texts using greedy single-seed clustering: the first unclustered candidate
// seeds a cluster, and every later unclustered candidate joins it when its
// similarity to the seed (the seed only, not every member) reaches the
// threshold. The pass is order-dependent and applies no transitive closure;
// replacing it with union-find would change which clusters form.
type Grouper struct {
	// Threshold is the minimum Ratio for cluster membership.
	Threshold float64

	// MinGroupSize drops clusters smaller than this from the result.
	// Defaults to 2: singleton mentions are not repeated quotations.
	MinGroupSize int
}

// NewGrouper creates a grouper with the given threshold, or the default
// when threshold is zero.
func NewGrouper(threshold float64) *Grouper {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Grouper{Threshold: threshold, MinGroupSize: 2}
}

// Group partitions candidates into clusters. Candidates are first collapsed
// on exact (speechID, normalized prefix) keys so overlapping pattern matches
// within one speech contribute a single member, then clustered greedily in
// input order. Clusters below MinGroupSize are dropped. The result is sorted
// by member count descending, ties broken by earliest first-seen year then
// normalized key, so re-runs over an unchanged corpus rank identically.
//
// The seed × remainder pass is O(n²); ctx is checked once per seed so a
// deadline or cancellation bounds the phase on pathological corpora.
func (g *Grouper) Group(ctx context.Context, candidates []types.QuoteCandidate) ([]types.QuoteGroup, error) {
	candidates = dedupeExact(candidates)

	minSize := g.MinGroupSize
	if minSize <= 0 {
		minSize = 2
	}

	used := make([]bool, len(candidates))
	var groups []types.QuoteGroup

	for i := range candidates {
		if used[i] {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("cluster: grouping aborted after %d clusters: %w", len(groups), err)
		}

		seed := candidates[i]
		members := []types.QuoteCandidate{seed}
		used[i] = true

		for j := i + 1; j < len(candidates); j++ {
			if used[j] {
				continue
			}
			if Ratio(seed.NormalizedText, candidates[j].NormalizedText) >= g.Threshold {
				members = append(members, candidates[j])
				used[j] = true
			}
		}

		if len(members) < minSize {
			continue
		}

		groups = append(groups, types.QuoteGroup{
			Representative:    bestSurfaceForm(members),
			NormalizedKey:     seed.NormalizedText,
			Members:           members,
			AttributedSpeaker: majoritySpeaker(members),
		})
	}

	sort.SliceStable(groups, func(a, b int) bool {
		if groups[a].Count() != groups[b].Count() {
			return groups[a].Count() > groups[b].Count()
		}
		if groups[a].FirstYear() != groups[b].FirstYear() {
			return groups[a].FirstYear() < groups[b].FirstYear()
		}
		return groups[a].NormalizedKey < groups[b].NormalizedKey
	})

	return groups, nil
}

// dedupeExact collapses candidates sharing an exact (speechID, normalized
// prefix) key, keeping the first occurrence. This stops one speech from
// contributing several near-identical candidates produced by overlapping
// pattern families.
func dedupeExact(candidates []types.QuoteCandidate) []types.QuoteCandidate {
	type key struct {
		speechID int64
		prefix   string
	}

	seen := make(map[key]bool, len(candidates))
	unique := candidates[:0:0]
	for _, c := range candidates {
		prefix := c.NormalizedText
		if len(prefix) > exactKeyLen {
			prefix = prefix[:exactKeyLen]
		}
		k := key{c.SpeechID, prefix}
		if seen[k] {
			continue
		}
		seen[k] = true
		unique = append(unique, c)
	}
	return unique
}

// bestSurfaceForm picks the most frequent exact raw text among members,
// ties broken by first occurrence.
func bestSurfaceForm(members []types.QuoteCandidate) string {
	counts := make(map[string]int, len(members))
	for _, m := range members {
		counts[m.RawText]++
	}

	best, bestCount := "", 0
	for _, m := range members {
		if c := counts[m.RawText]; c > bestCount {
			best, bestCount = m.RawText, c
		}
	}
	return best
}

// majoritySpeaker returns the most frequent non-empty attributed speaker,
// ties broken by first occurrence, or "" when no member has one.
func majoritySpeaker(members []types.QuoteCandidate) string {
	counts := make(map[string]int, len(members))
	for _, m := range members {
		if m.AttributedSpeaker != "" {
			counts[m.AttributedSpeaker]++
		}
	}

	best, bestCount := "", 0
	for _, m := range members {
		if m.AttributedSpeaker == "" {
			continue
		}
		if c := counts[m.AttributedSpeaker]; c > bestCount {
			best, bestCount = m.AttributedSpeaker, c
		}
	}
	return best
}
