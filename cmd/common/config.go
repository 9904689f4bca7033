// Copyright 2026 The Wordbeam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package common

import (
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/danieldk/wordbeam/decoder"
)

// WordbeamConfig stores the configuration of wordbeam.
type WordbeamConfig struct {
	Model     string
	BeamWidth int `toml:"beam_width"`
	Mode      string
	Smoothing float64
}

// DecodingMode returns the decoding mode selected by the configuration.
func (c WordbeamConfig) DecodingMode() (decoder.Mode, error) {
	return decoder.ParseMode(c.Mode)
}

func defaultConfiguration() *WordbeamConfig {
	return &WordbeamConfig{
		Model:     "model.gob",
		BeamWidth: 25,
		Mode:      "Words",
		Smoothing: 0.0,
	}
}

// MustParseConfig parses the configuration file with the given name,
// exiting the program when it cannot be read or parsed. The model path
// is interpreted relative to the configuration file.
func MustParseConfig(filename string) *WordbeamConfig {
	f, err := os.Open(filename)
	ExitIfError("Cannot open configuration file", err)
	defer f.Close()

	config, err := ParseConfig(f)
	ExitIfError("Cannot parse configuration file", err)

	config.Model = relToConfig(filename, config.Model)

	return config
}

// ParseConfig attempts to parse the configuration from the given reader.
func ParseConfig(reader io.Reader) (*WordbeamConfig, error) {
	config := defaultConfiguration()
	if _, err := toml.DecodeReader(reader, config); err != nil {
		return config, err
	}

	return config, nil
}

// Return the path of a file, relative to the directory of
// the configuration file, unless the path is absolute.
func relToConfig(configPath, filePath string) string {
	if len(filePath) == 0 {
		return filePath
	}

	if filepath.IsAbs(filePath) {
		return filePath
	}

	return filepath.Join(filepath.Dir(configPath), filePath)
}
