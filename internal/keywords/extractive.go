// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package keywords

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
)

// tokenPattern matches words of two or more letters or digits.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

func (e *Extractor) extractEmbedding(ctx context.Context, text string) ([]string, error) {
	if e.Embedder == nil {
		return nil, errors.New("no embedding backend configured")
	}

	lo, hi := e.ngramRange()
	candidates := Candidates(text, lo, hi, e.Config.StopWords)
	if len(candidates) == 0 {
		return nil, nil
	}

	vecs, err := e.Embedder.Embed(ctx, append([]string{text}, candidates...))
	if err != nil {
		return nil, fmt.Errorf("embedding keyword candidates: %w", err)
	}
	if len(vecs) != len(candidates)+1 {
		return nil, fmt.Errorf("embedding keyword candidates: got %d vectors for %d inputs", len(vecs), len(candidates)+1)
	}

	doc, words := vecs[0], vecs[1:]
	docSim := make([]float64, len(words))
	for i, w := range words {
		docSim[i] = cosine(w, doc)
	}

	n := min(e.maxKeywords(), len(candidates))
	var picked []int
	if e.Config.Diversity > 0 {
		picked = mmr(docSim, words, n, e.Config.Diversity)
	} else {
		picked = topN(docSim, n)
	}

	sort.SliceStable(picked, func(a, b int) bool { return docSim[picked[a]] > docSim[picked[b]] })
	out := make([]string, len(picked))
	for i, idx := range picked {
		out[i] = candidates[idx]
	}
	return out, nil
}

func (e *Extractor) ngramRange() (int, int) {
	lo, hi := e.Config.NGramMin, e.Config.NGramMax
	if lo <= 0 {
		lo = DefaultNGramMin
	}
	if hi <= 0 {
		hi = DefaultNGramMax
	}
	hi = min(hi, maxNGram)
	if lo > hi {
		lo = hi
	}
	return lo, hi
}

// Candidates returns the distinct n-grams of the lowercased text with
// lengths in [lo, hi], in order of first occurrence. Stop words are removed
// before n-grams are formed.
func Candidates(text string, lo, hi int, stopWords []string) []string {
	stop := make(map[string]bool, len(stopWords))
	for _, w := range stopWords {
		stop[strings.ToLower(w)] = true
	}

	var tokens []string
	for _, tok := range tokenPattern.FindAllString(strings.ToLower(text), -1) {
		if !stop[tok] {
			tokens = append(tokens, tok)
		}
	}

	seen := make(map[string]bool)
	var out []string
	for i := range tokens {
		for n := lo; n <= hi && i+n <= len(tokens); n++ {
			g := strings.Join(tokens[i:i+n], " ")
			if !seen[g] {
				seen[g] = true
				out = append(out, g)
			}
		}
	}
	return out
}

// topN returns the indices of the n highest scores.
func topN(scores []float64, n int) []int {
	idx := make([]int, len(scores))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return scores[idx[a]] > scores[idx[b]] })
	return idx[:n]
}

// mmr selects n candidates by Maximal Marginal Relevance: each step picks
// the candidate maximizing (1-diversity)*docSim - diversity*maxSimToPicked.
func mmr(docSim []float64, words [][]float32, n int, diversity float64) []int {
	if n <= 0 {
		return nil
	}
	first := topN(docSim, 1)[0]
	picked := []int{first}
	remaining := make([]int, 0, len(docSim)-1)
	for i := range docSim {
		if i != first {
			remaining = append(remaining, i)
		}
	}

	for len(picked) < n && len(remaining) > 0 {
		best, bestScore := -1, math.Inf(-1)
		for j, c := range remaining {
			redundancy := math.Inf(-1)
			for _, p := range picked {
				redundancy = math.Max(redundancy, cosine(words[c], words[p]))
			}
			score := (1-diversity)*docSim[c] - diversity*redundancy
			if score > bestScore {
				best, bestScore = j, score
			}
		}
		picked = append(picked, remaining[best])
		remaining = append(remaining[:best], remaining[best+1:]...)
	}
	return picked
}

func cosine(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
