package decoder

import (
	"bufio"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

const benthamDir = "testdata/bentham"

// TestBenthamSample decodes a probability matrix of the Bentham
// handwriting data set. The data set is not part of the repository; the
// test is skipped when it is absent.
func TestBenthamSample(t *testing.T) {
	if _, err := os.Stat(benthamDir); os.IsNotExist(err) {
		t.Skipf("Bentham sample data not present in %s", benthamDir)
	}

	corpus := readBenthamFile(t, "corpus.txt")
	chars := strings.TrimSuffix(readBenthamFile(t, "chars.txt"), "\n")
	wordChars := strings.TrimSuffix(readBenthamFile(t, "wordChars.txt"), "\n")

	d := mustDecoder(t, 25, Words, 0, corpus, chars, wordChars)

	mat := readBenthamMatrix(t, "mat_2.csv")

	got := decodeSingle(t, d, mat)

	cs := d.charSet
	want := "submitt both mental and corporeal, is far beyond any idea"
	if text := cs.Text(got); text != want {
		t.Errorf("decoded %q, want %q", text, want)
	}
}

func readBenthamFile(t *testing.T, name string) string {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(benthamDir, name))
	if err != nil {
		t.Fatalf("cannot read %s: %v", name, err)
	}

	return string(data)
}

// readBenthamMatrix reads the semicolon-separated raw network outputs
// and applies a softmax per timestep.
func readBenthamMatrix(t *testing.T, name string) [][][]float64 {
	t.Helper()

	f, err := os.Open(filepath.Join(benthamDir, name))
	if err != nil {
		t.Fatalf("cannot open %s: %v", name, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)

	var mat [][][]float64

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Split(line, ";")
		if fields[len(fields)-1] == "" {
			fields = fields[:len(fields)-1]
		}

		row := make([]float64, len(fields))
		max := math.Inf(-1)
		for i, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				t.Fatalf("row %d of %s: %v", len(mat), name, err)
			}

			row[i] = v
			if v > max {
				max = v
			}
		}

		var sum float64
		for i, v := range row {
			row[i] = math.Exp(v - max)
			sum += row[i]
		}
		for i := range row {
			row[i] /= sum
		}

		mat = append(mat, [][]float64{row})
	}

	if err := scanner.Err(); err != nil {
		t.Fatalf("cannot read %s: %v", name, err)
	}

	return mat
}
