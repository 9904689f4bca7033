package common

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/danieldk/conllx"
)

// MustLoadChars reads a character table from a file. A single trailing
// newline is not part of the table.
func MustLoadChars(filename string) string {
	data, err := os.ReadFile(filename)
	ExitIfError("Cannot read character table", err)

	chars := string(data)
	chars = strings.TrimSuffix(chars, "\n")
	chars = strings.TrimSuffix(chars, "\r")

	return chars
}

// MustLoadCorpus reads a training corpus. Files with a .conll or
// .conllx extension are read as CoNLL-X and their token forms joined
// into a plain-text word stream; any other file is read verbatim.
func MustLoadCorpus(filename string) string {
	f, err := os.Open(filename)
	ExitIfError("Cannot open corpus", err)
	defer f.Close()

	switch filepath.Ext(filename) {
	case ".conll", ".conllx":
		corpus, err := ReadCorpusCoNLLX(f)
		ExitIfError("Cannot read corpus", err)
		return corpus
	default:
		data, err := io.ReadAll(f)
		ExitIfError("Cannot read corpus", err)
		return string(data)
	}
}

// ReadCorpusCoNLLX reads a CoNLL-X corpus, joining the token forms of
// every sentence with spaces.
func ReadCorpusCoNLLX(reader io.Reader) (string, error) {
	r := conllx.NewReader(bufio.NewReader(reader))

	var sb strings.Builder

	for {
		sentence, err := r.ReadSentence()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		for _, token := range sentence {
			form, ok := token.Form()
			if !ok {
				return "", fmt.Errorf("token does not contain a form: %s", token)
			}

			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(form)
		}

		sb.WriteByte('\n')
	}

	return sb.String(), nil
}

// ReadMatrix reads a probability matrix for a single batch element from
// semicolon-separated rows, one timestep per line. A trailing separator
// on a line is permitted. When applySoftmax is set, each row is
// normalized with a softmax; otherwise the rows are used as-is. The
// result has shape [T][1][C].
func ReadMatrix(reader io.Reader, applySoftmax bool) ([][][]float64, error) {
	scanner := bufio.NewScanner(reader)
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
		for i, field := range fields {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: %v", len(mat), err)
			}

			row[i] = v
		}

		if applySoftmax {
			softmax(row)
		}

		mat = append(mat, [][]float64{row})
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return mat, nil
}

// softmax normalizes a row in place, shifting by the maximum for
// numerical stability.
func softmax(row []float64) {
	max := math.Inf(-1)
	for _, v := range row {
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
}
