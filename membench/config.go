// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package membench

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Version is printed in the report banner.
const Version = "0.3.0"

// Defaults for a run. They match the sizes the reference C benchmark used so
// numbers remain comparable.
const (
	DefaultSize         = 32 * 1024 * 1024
	DefaultBlockSize    = 2048
	DefaultCount        = 16
	DefaultMaxRepeats   = 10
	DefaultLatencySize  = 2 * DefaultSize
	DefaultLatencyCount = 10000000
	DefaultMinTrialTime = 500 * time.Millisecond
)

// ErrInvalidConfig is returned by Validate and LoadConfig for unusable settings.
var ErrInvalidConfig = errors.New("membench: invalid config")

// Config holds the parameters of one run.
type Config struct {
	// Size is the byte length of the source and destination buffers.
	Size int `yaml:"size" validate:"gte=64"`
	// BlockSize is the chunk length of the two-pass copy protocol and the
	// size of the staging buffer.
	BlockSize int `yaml:"block_size" validate:"gte=64"`
	// Count is the number of kernel invocations per timed loop iteration.
	Count int `yaml:"count" validate:"gte=1"`
	// MaxRepeats bounds the number of trials of every measurement.
	MaxRepeats int `yaml:"max_repeats" validate:"gte=1,lte=1000"`
	// MinTrialTime is the wall time floor of one bandwidth trial.
	MinTrialTime time.Duration `yaml:"min_trial_time" validate:"gt=0"`

	// LatencySize is the byte length of the latency scratch buffer.
	LatencySize int `yaml:"latency_size" validate:"gte=2,lte=1073741824"`
	// LatencyCount is the number of random reads per generator call.
	LatencyCount int `yaml:"latency_count" validate:"gte=1"`

	// CPU pins the benchmark thread to one logical CPU; -1 disables pinning.
	CPU int `yaml:"cpu" validate:"gte=-1"`
	// Indent prefixes every bandwidth row.
	Indent string `yaml:"indent"`
}

// DefaultConfig returns the standard run parameters.
func DefaultConfig() *Config {
	return &Config{
		Size:         DefaultSize,
		BlockSize:    DefaultBlockSize,
		Count:        DefaultCount,
		MaxRepeats:   DefaultMaxRepeats,
		MinTrialTime: DefaultMinTrialTime,
		LatencySize:  DefaultLatencySize,
		LatencyCount: DefaultLatencyCount,
		CPU:          -1,
		Indent:       " ",
	}
}

// LoadConfig reads a YAML file and overlays it on DefaultConfig. Keys missing
// from the file keep their default values. The result is validated.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrInvalidConfig, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks ranges and the alignment relations between sizes that the
// kernels rely on.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	switch {
	case c.BlockSize%64 != 0:
		return fmt.Errorf("%w: block_size %d is not a multiple of 64", ErrInvalidConfig, c.BlockSize)
	case c.Size%c.BlockSize != 0:
		return fmt.Errorf("%w: size %d is not a multiple of block_size %d", ErrInvalidConfig, c.Size, c.BlockSize)
	}
	return nil
}
