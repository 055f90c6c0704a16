package scorers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{name: "identical vectors", a: []float64{1, 2, 3}, b: []float64{1, 2, 3}, want: 1.0},
		{name: "orthogonal vectors", a: []float64{1, 0}, b: []float64{0, 1}, want: 0.0},
		{name: "zero vector", a: []float64{0, 0}, b: []float64{1, 1}, want: 0.0},
		{name: "mismatched lengths", a: []float64{1}, b: []float64{1, 2}, want: 0.0},
		{name: "empty vectors", a: []float64{}, b: []float64{}, want: 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CosineSimilarity(tt.a, tt.b), 1e-9)
		})
	}
}

func TestCosineSimilarityOppositeVectors(t *testing.T) {
	got := CosineSimilarity([]float64{1, 1}, []float64{-1, -1})
	assert.InDelta(t, -1.0, got, 1e-9)
}

func TestRoleCorpusWeights(t *testing.T) {
	corpus := NewRoleCorpus()

	// Empty corpus weighs every term equally.
	assert.InDelta(t, 1.0, corpus.Weight("kubernetes"), 1e-9)
	assert.Equal(t, 0, corpus.Docs())

	corpus.Observe("backend engineer kubernetes docker")
	corpus.Observe("frontend engineer react")
	corpus.Observe("data engineer python")

	assert.Equal(t, 3, corpus.Docs())

	// "engineer" appears in every document, "kubernetes" in one.
	common := corpus.Weight(stem("engineer"))
	rare := corpus.Weight(stem("kubernetes"))
	assert.Greater(t, rare, common)
}

func TestTFIDFSimilarity(t *testing.T) {
	tests := []struct {
		name       string
		textA      string
		textB      string
		assertFunc func(t *testing.T, sim float64)
	}{
		{
			name:  "identical texts score one",
			textA: "senior golang developer with kubernetes",
			textB: "senior golang developer with kubernetes",
			assertFunc: func(t *testing.T, sim float64) {
				assert.InDelta(t, 1.0, sim, 1e-9)
			},
		},
		{
			name:  "disjoint texts score zero",
			textA: "golang kubernetes docker",
			textB: "painting sculpture pottery",
			assertFunc: func(t *testing.T, sim float64) {
				assert.InDelta(t, 0.0, sim, 1e-9)
			},
		},
		{
			name:  "overlapping texts score between",
			textA: "golang developer kubernetes experience",
			textB: "golang developer frontend react",
			assertFunc: func(t *testing.T, sim float64) {
				assert.Greater(t, sim, 0.0)
				assert.Less(t, sim, 1.0)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.assertFunc(t, TFIDFSimilarity(nil, tt.textA, tt.textB))
		})
	}
}

func TestTFIDFSimilarityDeterministicForFixedCorpus(t *testing.T) {
	corpus := NewRoleCorpus()
	corpus.Observe("backend engineer golang")
	corpus.Observe("platform engineer terraform")

	roleText := "golang backend engineer with cloud experience"
	resumeText := "experienced golang engineer, cloud native systems"

	first := TFIDFSimilarity(corpus, roleText, resumeText)
	second := TFIDFSimilarity(corpus, roleText, resumeText)
	assert.Equal(t, first, second)
}
