package decoder

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/danieldk/wordbeam/model"
)

func mustDecoder(t *testing.T, width int, mode Mode, smoothing float64, corpus, chars, wordChars string) *Decoder {
	t.Helper()

	d, err := FromCorpus(width, mode, smoothing, corpus, chars, wordChars)
	if err != nil {
		t.Fatalf("cannot construct decoder: %v", err)
	}

	return d
}

func decodeSingle(t *testing.T, d *Decoder, mat [][][]float64) []int {
	t.Helper()

	labels, err := d.Decode(mat)
	if err != nil {
		t.Fatalf("cannot decode: %v", err)
	}
	if len(labels) != len(mat[0]) {
		t.Fatalf("got %d batch results, want %d", len(labels), len(mat[0]))
	}

	return labels[0]
}

// oneHot builds a single-batch distribution over numLabels labels.
func oneHot(numLabels int, probs map[int]float64) [][]float64 {
	row := make([]float64, numLabels)
	for label, p := range probs {
		row[label] = p
	}

	return [][]float64{row}
}

func TestMiniExample(t *testing.T) {
	// chars: a=0, b=1, space=2, blank=3.
	d := mustDecoder(t, 25, Words, 0, "a ba", "ab ", "ab")

	mat := [][][]float64{
		{{0.9, 0.1, 0.0, 0.0}},
		{{0.0, 0.0, 0.0, 1.0}},
		{{0.6, 0.4, 0.0, 0.0}},
	}

	got := decodeSingle(t, d, mat)
	if !reflect.DeepEqual(got, []int{1, 0}) {
		t.Errorf("decoded labels = %v, want [1 0] (%q)", got, "ba")
	}
}

func TestPrefixPreferred(t *testing.T) {
	// The partial word "a" extends to the dictionary word "ab" without
	// a separator.
	d := mustDecoder(t, 25, Words, 0, "a ab", "ab ", "ab")

	mat := [][][]float64{
		oneHot(4, map[int]float64{0: 1}),
		oneHot(4, map[int]float64{3: 1}),
		oneHot(4, map[int]float64{1: 1}),
	}

	got := decodeSingle(t, d, mat)
	if !reflect.DeepEqual(got, []int{0, 1}) {
		t.Errorf("decoded labels = %v, want [0 1] (%q)", got, "ab")
	}
}

func TestSeparatorRequired(t *testing.T) {
	// "ab" is not in the dictionary and the space label never has
	// probability mass, so every hypothesis reaches joint score zero
	// and the decoder returns the empty sequence.
	d := mustDecoder(t, 25, Words, 0, "a b", "ab ", "ab")

	mat := [][][]float64{
		oneHot(4, map[int]float64{0: 1}),
		oneHot(4, map[int]float64{1: 1}),
	}

	if got := decodeSingle(t, d, mat); len(got) != 0 {
		t.Errorf("decoded labels = %v, want empty", got)
	}
}

func TestSeparatorUsedWhenMassAllows(t *testing.T) {
	// With mass on the space label between the two characters, the
	// dictionary-valid "a b" is decodable.
	d := mustDecoder(t, 25, Words, 0, "a b", "ab ", "ab")

	mat := [][][]float64{
		oneHot(4, map[int]float64{0: 1}),
		oneHot(4, map[int]float64{2: 1}),
		oneHot(4, map[int]float64{1: 1}),
	}

	got := decodeSingle(t, d, mat)
	if !reflect.DeepEqual(got, []int{0, 2, 1}) {
		t.Errorf("decoded labels = %v, want [0 2 1] (%q)", got, "a b")
	}
}

// bigramMat emits "the " followed by a character triple in which the
// labels of "cat" and "dog" are equally probable at every timestep.
// Labels: t=0 h=1 e=2 c=3 a=4 d=5 o=6 g=7 space=8 blank=9.
func bigramMat() [][][]float64 {
	return [][][]float64{
		oneHot(10, map[int]float64{0: 1}),
		oneHot(10, map[int]float64{1: 1}),
		oneHot(10, map[int]float64{2: 1}),
		oneHot(10, map[int]float64{8: 1}),
		oneHot(10, map[int]float64{3: 0.5, 5: 0.5}),
		oneHot(10, map[int]float64{4: 0.5, 6: 0.5}),
		oneHot(10, map[int]float64{0: 0.5, 7: 0.5}),
	}
}

func TestBigramRescoring(t *testing.T) {
	theCat := []int{0, 1, 2, 8, 3, 4, 0}
	theDog := []int{0, 1, 2, 8, 5, 6, 7}

	cases := []struct {
		name string
		mode Mode
		want []int
	}{
		// The bigram (the, dog) is observed twice, (the, cat) once.
		{"ngrams prefer the frequent bigram", NGrams, theDog},
		// Without rescoring the acoustic scores tie; the tie breaks
		// by label order.
		{"words break the tie by label order", Words, theCat},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			d := mustDecoder(t, 25, c.mode, 0, "the dog the dog the cat", "thecadog ", "thecadog")

			got := decodeSingle(t, d, bigramMat())
			if !reflect.DeepEqual(got, c.want) {
				t.Errorf("decoded labels = %v, want %v", got, c.want)
			}
		})
	}
}

func TestAllBlank(t *testing.T) {
	d := mustDecoder(t, 25, Words, 0, "a ba", "ab ", "ab")

	mat := [][][]float64{
		oneHot(4, map[int]float64{3: 1}),
		oneHot(4, map[int]float64{3: 1}),
	}

	if got := decodeSingle(t, d, mat); len(got) != 0 {
		t.Errorf("decoded labels = %v, want empty", got)
	}
}

func TestSingleTimestep(t *testing.T) {
	d := mustDecoder(t, 25, Words, 0, "a ba", "ab ", "ab")

	mat := [][][]float64{
		oneHot(4, map[int]float64{0: 1}),
	}

	got := decodeSingle(t, d, mat)
	if !reflect.DeepEqual(got, []int{0}) {
		t.Errorf("decoded labels = %v, want [0] (%q)", got, "a")
	}
}

func TestSingleCharacterWordCorpus(t *testing.T) {
	d := mustDecoder(t, 25, Words, 0, "a", "ab ", "ab")

	mat := [][][]float64{
		oneHot(4, map[int]float64{0: 0.7, 1: 0.3}),
	}

	got := decodeSingle(t, d, mat)
	if !reflect.DeepEqual(got, []int{0}) {
		t.Errorf("decoded labels = %v, want [0] (%q)", got, "a")
	}
}

func TestPartialWordEmitted(t *testing.T) {
	// Only a prefix of the single dictionary word is supported by the
	// matrix; the completion policy emits the partial prefix as-is.
	d := mustDecoder(t, 25, Words, 0, "ab", "ab ", "ab")

	mat := [][][]float64{
		oneHot(4, map[int]float64{0: 1}),
	}

	got := decodeSingle(t, d, mat)
	if !reflect.DeepEqual(got, []int{0}) {
		t.Errorf("decoded labels = %v, want the partial prefix [0]", got)
	}
}

func TestCompletedBeamPreferred(t *testing.T) {
	// "a" completes a word while "ab" would open the partial "ab...";
	// with "abc" in the dictionary the partial hypothesis scores
	// higher, but the completion policy prefers the completed word.
	d := mustDecoder(t, 25, Words, 0, "a abc", "abc ", "abc")

	mat := [][][]float64{
		oneHot(5, map[int]float64{0: 1}),
		oneHot(5, map[int]float64{1: 0.9, 4: 0.1}),
	}

	got := decodeSingle(t, d, mat)
	if !reflect.DeepEqual(got, []int{0}) {
		t.Errorf("decoded labels = %v, want the completed word [0]", got)
	}
}

func TestForecastKeepsOpenPrefixAlive(t *testing.T) {
	// With beam width 1 the tie between the completed short word "a"
	// and the open prefix "b" of the frequent word "bc" breaks by
	// label order in Words and NGrams modes, which kills the only
	// hypothesis that can still match the last timestep. The forecast
	// modes score the open prefix with its completion mass and keep it.
	// Labels: a=0 b=1 c=2 space=3 blank=4.
	corpus := "a bc bc bc"
	mat := [][][]float64{
		oneHot(5, map[int]float64{0: 0.5, 1: 0.5}),
		oneHot(5, map[int]float64{2: 1}),
	}

	cases := []struct {
		name string
		mode Mode
		want []int
	}{
		{"words", Words, nil},
		{"ngrams", NGrams, nil},
		{"forecast", NGramsForecast, []int{1, 2}},
		{"forecast and sample", NGramsForecastAndSample, []int{1, 2}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			d := mustDecoder(t, 1, c.mode, 0, corpus, "abc ", "abc")

			got := decodeSingle(t, d, mat)
			if !reflect.DeepEqual(got, c.want) {
				t.Errorf("decoded labels = %v, want %v", got, c.want)
			}
		})
	}
}

func TestVocabularyContainment(t *testing.T) {
	corpus := "the dog the dog the cat"
	d := mustDecoder(t, 25, Words, 0, corpus, "thecadog ", "thecadog")

	cs, err := model.NewCharSet("thecadog ", "thecadog")
	if err != nil {
		t.Fatalf("cannot construct character set: %v", err)
	}

	vocab := make(map[string]bool)
	for _, w := range cs.Tokenize(corpus) {
		vocab[w] = true
	}

	got := decodeSingle(t, d, bigramMat())
	for _, w := range cs.Tokenize(cs.Text(got)) {
		if !vocab[w] {
			t.Errorf("decoded word %q is not in the vocabulary", w)
		}
	}
}

func TestBeamWidthBound(t *testing.T) {
	d := mustDecoder(t, 2, Words, 0, "a ab b ba", "ab ", "ab")

	mat := [][][]float64{
		oneHot(4, map[int]float64{0: 0.4, 1: 0.3, 2: 0.2, 3: 0.1}),
		oneHot(4, map[int]float64{0: 0.4, 1: 0.3, 2: 0.2, 3: 0.1}),
	}

	beams := []*beam{newBeam()}
	for step := range mat {
		next := newBeamList()
		for _, b := range beams {
			d.expand(b, mat[step][0], next)
		}
		beams = next.best(d.width, d.scorer.score)
	}

	if len(beams) > 2 {
		t.Errorf("got %d beams after pruning, want at most 2", len(beams))
	}

	for _, b := range beams {
		if b.pb < 0 || b.pb > 1 || b.pnb < 0 || b.pnb > 1 || b.pText < 0 || b.pText > 1 {
			t.Errorf("beam probabilities out of range: pb=%g pnb=%g pText=%g", b.pb, b.pnb, b.pText)
		}
	}
}

func TestBatchIndependence(t *testing.T) {
	d := mustDecoder(t, 25, Words, 0, "a ba", "ab ", "ab")

	batched := [][][]float64{
		{{0.9, 0.1, 0.0, 0.0}, {0.0, 1.0, 0.0, 0.0}},
		{{0.0, 0.0, 0.0, 1.0}, {0.0, 0.0, 0.0, 1.0}},
		{{0.6, 0.4, 0.0, 0.0}, {1.0, 0.0, 0.0, 0.0}},
	}

	batchedLabels, err := d.Decode(batched)
	if err != nil {
		t.Fatalf("cannot decode: %v", err)
	}

	for b := 0; b < 2; b++ {
		single := make([][][]float64, len(batched))
		for t := range batched {
			single[t] = [][]float64{batched[t][b]}
		}

		singleLabels, err := d.Decode(single)
		if err != nil {
			t.Fatalf("cannot decode: %v", err)
		}

		if !reflect.DeepEqual(batchedLabels[b], singleLabels[0]) {
			t.Errorf("batch element %d: batched %v != singleton %v", b, batchedLabels[b], singleLabels[0])
		}
	}
}

func TestDeterminism(t *testing.T) {
	d := mustDecoder(t, 3, NGrams, 0.1, "the dog the dog the cat", "thecadog ", "thecadog")

	first, err := d.Decode(bigramMat())
	if err != nil {
		t.Fatalf("cannot decode: %v", err)
	}

	for i := 0; i < 10; i++ {
		again, err := d.Decode(bigramMat())
		if err != nil {
			t.Fatalf("cannot decode: %v", err)
		}

		if !reflect.DeepEqual(first, again) {
			t.Fatalf("decoding is not deterministic: %v != %v", first, again)
		}
	}
}

func TestShapeErrors(t *testing.T) {
	d := mustDecoder(t, 25, Words, 0, "a ba", "ab ", "ab")

	cases := []struct {
		name string
		mat  [][][]float64
	}{
		{"zero timesteps", [][][]float64{}},
		{"zero batch elements", [][][]float64{{}}},
		{"wrong label count", [][][]float64{{{0.5, 0.5, 0.0}}}},
		{"ragged batch", [][][]float64{{{0, 0, 0, 1}}, {{0, 0, 0, 1}, {0, 0, 0, 1}}}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := d.Decode(c.mat); !errors.Is(err, ErrShape) {
				t.Errorf("expected ErrShape, got %v", err)
			}
		})
	}
}

func TestConstructionErrors(t *testing.T) {
	cases := []struct {
		name      string
		width     int
		mode      Mode
		smoothing float64
		corpus    string
		wordChars string
		want      error
	}{
		{"zero width", 0, Words, 0, "a", "ab", ErrInvalidBeamWidth},
		{"invalid mode", 25, Mode(42), 0, "a", "ab", ErrInvalidMode},
		{"empty vocabulary", 25, NGrams, 0, "   ", "ab", ErrEmptyVocabulary},
		{"word chars not a subset", 25, Words, 0, "a", "abx", model.ErrNotSubset},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := FromCorpus(c.width, c.mode, c.smoothing, c.corpus, "ab ", c.wordChars)
			if !errors.Is(err, c.want) {
				t.Errorf("expected %v, got %v", c.want, err)
			}
		})
	}

	if _, err := FromCorpus(25, Words, -0.5, "a", "ab ", "ab"); err == nil {
		t.Errorf("expected an error for negative smoothing")
	}
}

func TestParseMode(t *testing.T) {
	for _, name := range []string{"Words", "NGrams", "NGramsForecast", "NGramsForecastAndSample"} {
		mode, err := ParseMode(name)
		if err != nil {
			t.Errorf("ParseMode(%q) failed: %v", name, err)
		}
		if mode.String() != name {
			t.Errorf("ParseMode(%q).String() = %q", name, mode.String())
		}
	}

	if _, err := ParseMode("Trigrams"); !errors.Is(err, ErrInvalidMode) {
		t.Errorf("expected ErrInvalidMode for an unknown mode name")
	}
}

func TestCancellation(t *testing.T) {
	d := mustDecoder(t, 25, Words, 0, "a ba", "ab ", "ab")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mat := [][][]float64{
		oneHot(4, map[int]float64{0: 1}),
	}

	if _, err := d.DecodeContext(ctx, mat); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
