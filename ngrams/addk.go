package ngrams

import (
	"fmt"

	"github.com/danieldk/wordbeam/model"
)

// ErrNegativeSmoothing is returned when an add-k model is constructed
// with a negative smoothing constant.
var ErrNegativeSmoothing = fmt.Errorf("smoothing constant is negative")

var _ WordModel = AddKModel{}

// AddKModel estimates word probabilities using maximum likelihood
// estimation with add-k smoothing:
//
//	P(w) = (count(w) + k) / (tokens + k * |V|)
//	P(w2|w1) = (count(w1, w2) + k) / (count(w1) + k * |V|)
//
// With k = 0 the model degenerates to plain maximum likelihood and the
// probability of unseen events is 0.
type AddKModel struct {
	model model.Model
	k     float64
}

// NewAddKModel constructs an add-k smoothed model from a data model. The
// smoothing constant must be non-negative.
func NewAddKModel(m model.Model, k float64) (AddKModel, error) {
	if k < 0 {
		return AddKModel{}, fmt.Errorf("%w: %g", ErrNegativeSmoothing, k)
	}

	return AddKModel{model: m, k: k}, nil
}

// WordProb estimates the unigram probability P(w).
func (m AddKModel) WordProb(w string) float64 {
	denom := float64(m.model.Tokens()) + m.k*float64(m.model.VocabSize())
	if denom == 0 {
		return 0
	}

	return (float64(m.model.UnigramFreq(w)) + m.k) / denom
}

// TransitionProb estimates the bigram probability P(w2|w1). The unigram
// probability is used when there is no predecessor, i.e. at the start of
// a sequence.
func (m AddKModel) TransitionProb(w1, w2 string) float64 {
	if w1 == "" {
		return m.WordProb(w2)
	}

	denom := float64(m.model.UnigramFreq(w1)) + m.k*float64(m.model.VocabSize())
	if denom == 0 {
		return 0
	}

	return (float64(m.model.BigramFreq(w1, w2)) + m.k) / denom
}
