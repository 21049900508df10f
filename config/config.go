// Copyright (c) 2024 The IEA Wind Task 43 Project and its Contributors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies
// of the Software, and to permit persons to whom the Software is furnished to do
// so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// This package holds the YAML configuration for the metadata validation
// command-line tool. The core metadata package never reads it.
package config

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// global config variables
var Validator validatorConfig
var Log logConfig

type validatorConfig struct {
	// when true, input fields the schema does not declare are validation
	// errors instead of being ignored
	RejectUnknownFields bool `yaml:"reject_unknown_fields"`
}

type logConfig struct {
	// minimum level for log messages: debug, info, warn, or error
	Level string `yaml:"level"`
}

// This struct performs the unmarshalling from the YAML config file and then
// copies its fields to the globals above.
type configFile struct {
	Validator validatorConfig `yaml:"validator"`
	Log       logConfig       `yaml:"log"`
}

// This helper reads configuration data, returning an error indicating
// success or failure. All environment variables of the form ${ENV_VAR}
// are expanded.
func readConfig(bytes []byte) error {
	// Before we do anything else, expand any provided environment variables.
	bytes = []byte(os.ExpandEnv(string(bytes)))

	var conf configFile
	conf.Log.Level = "info"
	err := yaml.Unmarshal(bytes, &conf)
	if err != nil {
		return err
	}

	// copy the config data into place
	Validator = conf.Validator
	Log = conf.Log

	return err
}

// This helper validates the configuration, returning an error that indicates
// success or failure.
func validateConfig() error {
	switch Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("Invalid log level: '%s' (must be debug, info, warn, or error)", Log.Level)
	}
	return nil
}

// Initializes the validation tool's configuration using the given YAML
// byte data. Omitted sections take their default values.
func Init(yamlData []byte) error {
	err := readConfig(yamlData)
	if err != nil {
		return err
	}
	return validateConfig()
}

// Returns the configured log level as an slog level.
func LogLevel() slog.Level {
	switch Log.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
