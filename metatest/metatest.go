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

// This package contains testing utilities for the wind energy software
// metadata schema.
package metatest

// Returns a fresh raw field mapping for a fictitious (but well-formed) wake
// modeling package. The mapping passes validation as-is; tests mutate their
// own copy to construct invalid variants.
func ValidDocument() map[string]any {
	return map[string]any{
		"id":                     "iea43-swept-0042",
		"name":                   "Swept",
		"description":            "A steady-state engineering wake model for wind farm flow analysis.",
		"latest_release_version": "2.1.0",
		"latest_release_date":    "2024-06-30",
		"license":                "Apache-2.0",
		"source_access_right":    "open",
		"authors": []any{
			map[string]any{
				"name":        "Maja Sorensen",
				"orcid":       "0000-0002-1825-0097",
				"affiliation": "Technical University of Denmark",
			},
			map[string]any{
				"name":        "Ravi Chandran",
				"orcid":       "0000-0001-5109-3700",
				"affiliation": "National Renewable Energy Laboratory",
			},
		},
		"programming_languages": []any{"Python", "C++"},
		"supported_platforms":   []any{"linux", "macos", "windows"},
		"resource_subtype":      "model",
		"repository_url":        "https://github.com/iea-task-43/swept",
		"documentation_url":     "https://swept.readthedocs.io",
		"distributions": []any{
			map[string]any{
				"distribution_platform": "PyPI",
				"url":                   "https://pypi.org/project/swept",
			},
		},
		"function":               "Computes steady wake deficits and annual energy production for wind farm layouts.",
		"time_domain":            "steady",
		"representation_level":   "wind_farm",
		"turbine_representation": "actuator",
		"input_description":      "Farm layout, turbine power and thrust curves, and a long-term wind resource.",
		"output_description":     "Per-turbine wake-affected power and farm-level annual energy production.",
	}
}

// Returns a deep copy of the given raw mapping, so a test can mutate its
// copy without disturbing the fixture.
func CopyDocument(doc map[string]any) map[string]any {
	copied := make(map[string]any, len(doc))
	for key, value := range doc {
		copied[key] = copyValue(value)
	}
	return copied
}

func copyValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		return CopyDocument(v)
	case []any:
		elements := make([]any, len(v))
		for i, element := range v {
			elements[i] = copyValue(element)
		}
		return elements
	default:
		return v
	}
}
