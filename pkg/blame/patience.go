package blame

import "sort"

// lcsCellBudget caps the size of the LCS table used for regions without
// unique anchors. Bigger regions are handed to the Myers engine.
const lcsCellBudget = 2_000_000

type patienceDiffer struct{}

// Diff anchors on lines that occur exactly once on each side, keeps the
// longest run of anchors that appear in the same order on both sides and
// recurses into the gaps between them.
func (patienceDiffer) Diff(old, new []string) EditScript {
	return patience(nil, old, new)
}

type anchor struct{ a, b int }

func patience(s EditScript, a, b []string) EditScript {
	p := 0
	for p < len(a) && p < len(b) && a[p] == b[p] {
		p++
	}
	s = s.appendEdit(OpEqual, p)
	a, b = a[p:], b[p:]

	q := 0
	for q < len(a) && q < len(b) && a[len(a)-1-q] == b[len(b)-1-q] {
		q++
	}
	a, b = a[:len(a)-q], b[:len(b)-q]

	switch {
	case len(a) == 0 || len(b) == 0:
		s = s.appendEdit(OpDelete, len(a))
		s = s.appendEdit(OpInsert, len(b))
	default:
		anchors := longestIncreasing(uniqueAnchors(a, b))
		if len(anchors) == 0 {
			s = appendScript(s, lcsFallback(a, b))
			break
		}
		ai, bi := 0, 0
		for _, m := range anchors {
			s = patience(s, a[ai:m.a], b[bi:m.b])
			s = s.appendEdit(OpEqual, 1)
			ai, bi = m.a+1, m.b+1
		}
		s = patience(s, a[ai:], b[bi:])
	}
	return s.appendEdit(OpEqual, q)
}

// uniqueAnchors returns the lines occurring exactly once in a and once in
// b, ordered by their position in a.
func uniqueAnchors(a, b []string) []anchor {
	type count struct{ na, nb, ia, ib int }
	counts := make(map[string]*count, len(a))
	for i, l := range a {
		c, ok := counts[l]
		if !ok {
			c = &count{}
			counts[l] = c
		}
		c.na++
		c.ia = i
	}
	for j, l := range b {
		if c, ok := counts[l]; ok {
			c.nb++
			c.ib = j
		}
	}
	var out []anchor
	for _, l := range a {
		if c := counts[l]; c.na == 1 && c.nb == 1 {
			out = append(out, anchor{a: c.ia, b: c.ib})
		}
	}
	return out
}

// longestIncreasing picks the longest subsequence of ms (already increasing
// in a) that is also increasing in b, using patience sorting.
func longestIncreasing(ms []anchor) []anchor {
	if len(ms) == 0 {
		return nil
	}
	var tails []int
	prev := make([]int, len(ms))
	for i, m := range ms {
		k := sort.Search(len(tails), func(j int) bool { return ms[tails[j]].b >= m.b })
		prev[i] = -1
		if k > 0 {
			prev[i] = tails[k-1]
		}
		if k == len(tails) {
			tails = append(tails, i)
		} else {
			tails[k] = i
		}
	}
	out := make([]anchor, len(tails))
	i := tails[len(tails)-1]
	for k := len(tails) - 1; k >= 0; k-- {
		out[k] = ms[i]
		i = prev[i]
	}
	return out
}

// lcsFallback diffs a region that has no unique anchors.
func lcsFallback(a, b []string) EditScript {
	if len(a)*len(b) > lcsCellBudget {
		if s, ok := myers(a, b); ok {
			return s
		}
		return wholesale(len(a), len(b))
	}

	matchedOld := lcsMatching(a, b)
	var s EditScript
	i, j := 0, 0
	for i < len(a) || j < len(b) {
		switch {
		case i < len(a) && j < len(b) && matchedOld[i] == j:
			s = s.appendEdit(OpEqual, 1)
			i++
			j++
		case i < len(a) && matchedOld[i] < 0:
			s = s.appendEdit(OpDelete, 1)
			i++
		default:
			s = s.appendEdit(OpInsert, 1)
			j++
		}
	}
	return s
}

// lcsMatching computes the LCS of a and b and returns, for each line of a,
// the index of the line of b it is matched to, or -1 if it is deleted.
func lcsMatching(a, b []string) []int {
	m, n := len(a), len(b)
	matchedOld := make([]int, m)
	for i := range matchedOld {
		matchedOld[i] = -1
	}

	dp := make([][]int32, m+1)
	for i := range dp {
		dp[i] = make([]int32, n+1)
	}
	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			if a[i-1] == b[j-1] {
				dp[i][j] = dp[i-1][j-1] + 1
			} else if dp[i-1][j] >= dp[i][j-1] {
				dp[i][j] = dp[i-1][j]
			} else {
				dp[i][j] = dp[i][j-1]
			}
		}
	}

	i, j := m, n
	for i > 0 && j > 0 {
		if a[i-1] == b[j-1] {
			matchedOld[i-1] = j - 1
			i--
			j--
		} else if dp[i-1][j] >= dp[i][j-1] {
			i--
		} else {
			j--
		}
	}
	return matchedOld
}

// appendScript appends t to s, merging the edits at the seam.
func appendScript(s, t EditScript) EditScript {
	for _, e := range t {
		if e.Op == OpReplace {
			s = s.appendEdit(OpDelete, e.Old)
			s = s.appendEdit(OpInsert, e.New)
			continue
		}
		s = s.appendEdit(e.Op, max(e.Old, e.New))
	}
	return s
}
