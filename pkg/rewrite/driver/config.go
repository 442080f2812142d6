// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package driver

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultMaxIterations bounds the fixed-point loop when no explicit budget is
// configured.  Simplification converges within a handful of sweeps on
// realistic rule tables, so hitting this bound signals a diverging table
// rather than a genuinely deep derivation.
const DefaultMaxIterations = 64

// Config configures a simplification driver.
type Config struct {
	// MaxIterations bounds the number of sweeps performed before giving up
	// on reaching a fixed point.
	MaxIterations uint `yaml:"max_iterations"`
	// Print configures what the command-line tools dump after driving a
	// system to its fixed point.
	Print PrintConfig `yaml:"print"`
}

// PrintConfig toggles the optional dumps offered by the command-line tools.
type PrintConfig struct {
	// Diffs requests a dump of the interned substitution diffs.
	Diffs bool `yaml:"diffs"`
	// Proofs requests a dump of the proof attached to each rule.
	Proofs bool `yaml:"proofs"`
	// Properties requests a dump of the final property map.
	Properties bool `yaml:"properties"`
}

// DefaultConfig returns the configuration used when no configuration file is
// given.
func DefaultConfig() Config {
	return Config{MaxIterations: DefaultMaxIterations}
}

// LoadConfig reads and parses a configuration file.
func LoadConfig(filename string) (Config, error) {
	bytes, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, err
	}
	//
	return ParseConfig(bytes)
}

// ParseConfig parses and validates a configuration.
func ParseConfig(bytes []byte) (Config, error) {
	config := DefaultConfig()
	//
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return config, err
	}
	//
	return config, config.validate()
}

func (c *Config) validate() error {
	if c.MaxIterations == 0 {
		return fmt.Errorf("max_iterations must be positive")
	}
	//
	return nil
}
