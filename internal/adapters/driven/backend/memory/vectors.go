package memory

import (
	"math"
	"regexp"
	"strings"
)

// vector is a sparse term-weight vector.
type vector map[string]float64

var nonAlphaNumeric = regexp.MustCompile(`[^a-z0-9]+`)

var stopWords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true, "be": true,
	"by": true, "for": true, "from": true, "his": true, "her": true, "in": true, "into": true,
	"is": true, "it": true, "its": true, "of": true, "on": true, "or": true, "the": true,
	"their": true, "to": true, "up": true, "was": true, "who": true, "with": true,
}

// tokenize lowercases text, strips non-alphanumerics from each word and drops stopwords.
func tokenize(text string) []string {
	words := strings.Fields(strings.ToLower(text))
	tokens := make([]string, 0, len(words))
	for _, word := range words {
		word = nonAlphaNumeric.ReplaceAllString(word, "")
		if word != "" && !stopWords[word] {
			tokens = append(tokens, word)
		}
	}
	return tokens
}

// vectorSpace holds the TF-IDF vector of every catalogue document.
type vectorSpace struct {
	n    int
	df   map[string]int
	docs []vector
}

func newVectorSpace(texts []string) *vectorSpace {
	vs := &vectorSpace{
		n:    len(texts),
		df:   make(map[string]int),
		docs: make([]vector, len(texts)),
	}
	tokenized := make([][]string, len(texts))
	for i, text := range texts {
		tokenized[i] = tokenize(text)
		seen := make(map[string]bool)
		for _, t := range tokenized[i] {
			if !seen[t] {
				seen[t] = true
				vs.df[t]++
			}
		}
	}
	for i, tokens := range tokenized {
		vs.docs[i] = vs.weigh(tokens)
	}
	return vs
}

// weigh computes tf*idf where tf is the term count over the number of
// distinct terms and idf is ln((N+1)/(df+1)).
func (vs *vectorSpace) weigh(tokens []string) vector {
	counts := make(map[string]int, len(tokens))
	for _, t := range tokens {
		counts[t]++
	}
	v := make(vector, len(counts))
	for t, c := range counts {
		tf := float64(c) / float64(len(counts))
		idf := math.Log(float64(vs.n+1) / float64(vs.df[t]+1))
		if w := tf * idf; w != 0 {
			v[t] = w
		}
	}
	return v
}

// query vectorizes free text against the catalogue statistics.
// Terms outside the catalogue vocabulary are dropped.
func (vs *vectorSpace) query(text string) vector {
	tokens := tokenize(text)
	known := tokens[:0]
	for _, t := range tokens {
		if vs.df[t] > 0 {
			known = append(known, t)
		}
	}
	return vs.weigh(known)
}

// Rocchio weights.
const (
	rocchioAlpha = 0.3
	rocchioBeta  = 0.3
	rocchioGamma = 0.3
)

// rocchio moves q towards the centroid of relevant and away from the
// centroid of non-relevant vectors.
func rocchio(q vector, relevant, nonRelevant []vector) vector {
	out := scale(q, rocchioAlpha)
	out = add(out, scale(centroid(relevant), rocchioBeta))
	out = add(out, scale(centroid(nonRelevant), -rocchioGamma))
	return out
}

func centroid(vs []vector) vector {
	out := make(vector)
	if len(vs) == 0 {
		return out
	}
	for _, v := range vs {
		for t, w := range v {
			out[t] += w
		}
	}
	return scale(out, 1/float64(len(vs)))
}

func scale(v vector, f float64) vector {
	out := make(vector, len(v))
	for t, w := range v {
		out[t] = w * f
	}
	return out
}

func add(a, b vector) vector {
	out := make(vector, len(a)+len(b))
	for t, w := range a {
		out[t] = w
	}
	for t, w := range b {
		out[t] += w
	}
	return out
}

func norm(v vector) float64 {
	var sum float64
	for _, w := range v {
		sum += w * w
	}
	return math.Sqrt(sum)
}

// cosine returns the cosine similarity of a and b, 0 when either is zero.
func cosine(a, b vector) float64 {
	na, nb := norm(a), norm(b)
	if na == 0 || nb == 0 {
		return 0
	}
	if len(b) < len(a) {
		a, b = b, a
	}
	var dot float64
	for t, w := range a {
		dot += w * b[t]
	}
	return dot / (na * nb)
}
