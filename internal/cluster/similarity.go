// Package cluster groups normalized quote candidates by approximate string
// similarity. The similarity metric reproduces Python difflib's
// SequenceMatcher.ratio() — the metric the 0.85 grouping threshold was tuned
// against — so two texts land in the same cluster here exactly when they
// would have under the reference behavior.
package cluster

// Ratio returns a measure of the sequences' similarity in [0,1]:
// 2*M / (len(a)+len(b)), where M is the total size of the matched blocks
// found by recursive greedy longest-matching-block search over characters.
// 1.0 means identical, 0.0 means nothing in common.
func Ratio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 && len(rb) == 0 {
		return 1.0
	}

	matched := totalMatchedChars(ra, rb)
	return 2.0 * float64(matched) / float64(len(ra)+len(rb))
}

// totalMatchedChars sums the matching-block sizes: find the longest common
// block, then recurse on the pieces to its left and right.
func totalMatchedChars(a, b []rune) int {
	b2j := buildIndex(b)

	type span struct{ alo, ahi, blo, bhi int }
	queue := []span{{0, len(a), 0, len(b)}}

	total := 0
	for len(queue) > 0 {
		s := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		i, j, k := longestMatch(a, b, s.alo, s.ahi, s.blo, s.bhi, b2j)
		if k == 0 {
			continue
		}
		total += k
		if s.alo < i && s.blo < j {
			queue = append(queue, span{s.alo, i, s.blo, j})
		}
		if i+k < s.ahi && j+k < s.bhi {
			queue = append(queue, span{i + k, s.ahi, j + k, s.bhi})
		}
	}

	return total
}

// buildIndex maps each character of b to its ascending positions. For long
// sequences (>= 200 characters), characters occurring in more than 1% of
// positions are dropped from the index, matching the reference metric's
// handling of popular elements.
func buildIndex(b []rune) map[rune][]int {
	b2j := make(map[rune][]int)
	for j, c := range b {
		b2j[c] = append(b2j[c], j)
	}

	if n := len(b); n >= 200 {
		limit := n/100 + 1
		for c, idx := range b2j {
			if len(idx) > limit {
				delete(b2j, c)
			}
		}
	}

	return b2j
}

// longestMatch finds the longest block of a[alo:ahi] equal to a block of
// b[blo:bhi], preferring the earliest such block in a, then in b.
func longestMatch(a, b []rune, alo, ahi, blo, bhi int, b2j map[rune][]int) (besti, bestj, bestsize int) {
	besti, bestj = alo, blo

	// j2len[j] holds the length of the longest match ending at a[i-1], b[j].
	j2len := make(map[int]int)
	for i := alo; i < ahi; i++ {
		newj2len := make(map[int]int)
		for _, j := range b2j[a[i]] {
			if j < blo {
				continue
			}
			if j >= bhi {
				break
			}
			k := j2len[j-1] + 1
			newj2len[j] = k
			if k > bestsize {
				besti, bestj, bestsize = i-k+1, j-k+1, k
			}
		}
		j2len = newj2len
	}

	// Characters dropped from the index as popular can still participate in a
	// match: extend the block over equal characters on both ends, as the
	// reference metric does after its inner search. Without this step a long
	// English text, whose common letters are all popular, matches almost
	// nothing against an identical copy.
	for besti > alo && bestj > blo && a[besti-1] == b[bestj-1] {
		besti, bestj, bestsize = besti-1, bestj-1, bestsize+1
	}
	for besti+bestsize < ahi && bestj+bestsize < bhi && a[besti+bestsize] == b[bestj+bestsize] {
		bestsize++
	}

	return besti, bestj, bestsize
}
