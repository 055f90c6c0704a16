package scorers

import (
	"hash/fnv"
	"math"
	"sync"
)

// CosineSimilarity computes the cosine of the angle between two vectors.
// It returns 0 for mismatched lengths or zero-magnitude vectors, so the
// caller never sees NaN.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// RoleCorpus accumulates document-frequency statistics over the role
// specifications a process has evaluated. Term weights sharpen as more
// roles are observed; with an empty corpus every term weighs 1.0 so the
// similarity degrades to plain term-frequency cosine rather than
// failing.
//
// The corpus is deliberately process-local state. Two processes with
// different evaluation histories may produce slightly different
// similarity values for the same pair; within one process the value for
// a given corpus state is deterministic.
type RoleCorpus struct {
	mu      sync.RWMutex
	docs    int
	docFreq map[string]int
	seen    map[uint64]struct{}
}

// NewRoleCorpus creates an empty corpus.
func NewRoleCorpus() *RoleCorpus {
	return &RoleCorpus{
		docFreq: make(map[string]int),
		seen:    make(map[uint64]struct{}),
	}
}

// Observe records one role-specification text in the corpus. Each
// distinct term counts once per document. A text already observed is
// ignored, so re-evaluating the same role leaves the corpus, and with
// it the fallback similarity, unchanged.
func (c *RoleCorpus) Observe(text string) {
	h := fnv.New64a()
	h.Write([]byte(text))
	key := h.Sum64()

	terms := make(map[string]struct{})
	for _, t := range Tokenize(text) {
		terms[t] = struct{}{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, dup := c.seen[key]; dup {
		return
	}
	c.seen[key] = struct{}{}
	c.docs++
	for t := range terms {
		c.docFreq[t]++
	}
}

// Docs returns the number of observed documents.
func (c *RoleCorpus) Docs() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.docs
}

// Weight returns the smoothed inverse document frequency of a term:
// ln((1+N)/(1+df))+1. An empty corpus yields 1.0 for every term.
func (c *RoleCorpus) Weight(term string) float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return math.Log(float64(1+c.docs)/float64(1+c.docFreq[term])) + 1
}

// BuildTFIDFVectors vectorizes two texts over their shared vocabulary,
// applying the corpus's IDF weights. A nil corpus uses weight 1.0 for
// every term. The returned vectors are index-aligned and ready for
// CosineSimilarity.
func BuildTFIDFVectors(corpus *RoleCorpus, textA, textB string) ([]float64, []float64) {
	tokensA := Tokenize(textA)
	tokensB := Tokenize(textB)

	vocab := make(map[string]int)
	for _, t := range tokensA {
		if _, ok := vocab[t]; !ok {
			vocab[t] = len(vocab)
		}
	}
	for _, t := range tokensB {
		if _, ok := vocab[t]; !ok {
			vocab[t] = len(vocab)
		}
	}

	vecA := make([]float64, len(vocab))
	vecB := make([]float64, len(vocab))
	for _, t := range tokensA {
		vecA[vocab[t]]++
	}
	for _, t := range tokensB {
		vecB[vocab[t]]++
	}

	for t, i := range vocab {
		w := 1.0
		if corpus != nil {
			w = corpus.Weight(t)
		}
		vecA[i] *= w
		vecB[i] *= w
	}
	return vecA, vecB
}

// TFIDFSimilarity is the end-to-end fallback similarity: tokenize both
// texts, vectorize over the shared vocabulary with corpus IDF weights,
// and return the cosine in [0,1].
func TFIDFSimilarity(corpus *RoleCorpus, textA, textB string) float64 {
	vecA, vecB := BuildTFIDFVectors(corpus, textA, textB)
	return CosineSimilarity(vecA, vecB)
}
