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

// A command-line tool that validates wind energy software metadata documents.
// The schema itself lives in the metadata package; this wrapper only reads
// files, reports violations, and sets the exit code.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/IEA-Task-43/wind-energy-software-metadata/config"
	"github.com/IEA-Task-43/wind-energy-software-metadata/metadata"
)

// Prints usage info.
func usage() {
	fmt.Fprintf(os.Stderr, "%s: usage:\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "%s [-config <config_file>] <document_file> ...\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Document files are read as JSON, or as YAML for .yaml/.yml extensions.\n")
	os.Exit(1)
}

func main() {
	configPath := flag.String("config", "", "path to a YAML configuration file")
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() == 0 {
		usage()
	}

	// Read the configuration file if one was given; otherwise run with
	// the defaults.
	var configData []byte
	if *configPath != "" {
		var err error
		configData, err = os.ReadFile(*configPath)
		if err != nil {
			log.Panicf("Couldn't read %s: %s\n", *configPath, err.Error())
		}
	}
	if err := config.Init(configData); err != nil {
		log.Panicf("Couldn't initialize the configuration: %s\n", err.Error())
	}

	h := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: config.LogLevel()})
	slog.SetDefault(slog.New(h))

	validator := metadata.Validator{
		RejectUnknownFields: config.Validator.RejectUnknownFields,
	}

	// Validate each document, reporting every violation found, and keep
	// going so a bad file doesn't hide the verdicts of the others.
	invalid := 0
	for _, path := range flag.Args() {
		data, err := os.ReadFile(path)
		if err != nil {
			slog.Error("Couldn't read document", "file", path, "error", err.Error())
			invalid++
			continue
		}

		var doc metadata.Document
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			doc, err = validator.ValidateYAML(data)
		default:
			doc, err = validator.ValidateJSON(data)
		}
		if err != nil {
			var violations metadata.ValidationErrors
			if errors.As(err, &violations) {
				for _, violation := range violations {
					slog.Error("Invalid metadata", "file", path,
						"field", violation.Path(), "kind", violation.Kind(),
						"reason", violation.Error())
				}
			} else {
				slog.Error("Couldn't parse document", "file", path, "error", err.Error())
			}
			invalid++
			continue
		}

		slog.Info("Valid metadata document", "file", path, "id", doc.Id, "name", doc.Name)
	}

	if invalid > 0 {
		fmt.Fprintf(os.Stderr, "%d of %d document(s) failed validation.\n", invalid, flag.NArg())
		os.Exit(1)
	}
}
