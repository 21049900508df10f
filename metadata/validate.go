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

package metadata

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

// Checks raw metadata documents against the schema. The zero value is ready
// to use and silently ignores fields the schema does not declare, matching
// the behavior callers see when deserializing into a tagged struct; set
// RejectUnknownFields to report such fields instead.
type Validator struct {
	RejectUnknownFields bool
}

// Validates the given raw field mapping with the default policy (unknown
// fields ignored).
func Validate(raw map[string]any) (Document, error) {
	return Validator{}.Validate(raw)
}

// the document's field names in schema declaration order
var documentFields = []string{
	"id",
	"name",
	"description",
	"latest_release_version",
	"latest_release_date",
	"license",
	"source_access_right",
	"authors",
	"programming_languages",
	"supported_platforms",
	"resource_type",
	"resource_subtype",
	"repository_url",
	"documentation_url",
	"distributions",
	"function",
	"time_domain",
	"representation_level",
	"turbine_representation",
	"location",
	"input_description",
	"output_description",
}

// Checks the given raw field mapping against the schema. On success it
// returns the fully typed document. On failure it returns a ValidationErrors
// list holding every violation found anywhere in the input (validation never
// stops at the first error), and the returned document is the zero value.
// The check is pure: it reads only its argument and performs no I/O.
func (v Validator) Validate(raw map[string]any) (Document, error) {
	var doc Document
	var errs ValidationErrors

	doc.Id = requireText(raw, "id", true, &errs)
	doc.Name = requireText(raw, "name", true, &errs)
	doc.Description = requireText(raw, "description", true, &errs)
	doc.LatestReleaseVersion = requireText(raw, "latest_release_version", false, &errs)
	doc.LatestReleaseDate = requireDate(raw, "latest_release_date", &errs)
	doc.License = requireText(raw, "license", false, &errs)
	doc.SourceAccessRight = SourceAccessRight(requireEnum(raw, "source_access_right", sourceAccessRightValues, &errs))
	doc.Authors = requireAuthors(raw, &errs)
	doc.ProgrammingLanguages = requireTextSequence(raw, "programming_languages", &errs)
	doc.SupportedPlatforms = requireTextSequence(raw, "supported_platforms", &errs)
	checkResourceType(raw, &errs)
	doc.ResourceSubtype = ResourceSubtype(requireEnum(raw, "resource_subtype", resourceSubtypeValues, &errs))
	doc.RepositoryUrl = requireText(raw, "repository_url", false, &errs)
	doc.DocumentationUrl = requireText(raw, "documentation_url", false, &errs)
	doc.Distributions = requireDistributions(raw, &errs)
	doc.Function = requireText(raw, "function", false, &errs)
	doc.TimeDomain = TimeDomain(requireEnum(raw, "time_domain", timeDomainValues, &errs))
	doc.RepresentationLevel = RepresentationLevel(requireEnum(raw, "representation_level", representationLevelValues, &errs))
	if value, present := optionalEnum(raw, "turbine_representation", turbineRepresentationValues, &errs); present {
		turbineRep := TurbineRepresentation(value)
		doc.TurbineRepresentation = &turbineRep
	}
	if value, present := optionalEnum(raw, "location", locationValues, &errs); present {
		location := Location(value)
		doc.Location = &location
	}
	doc.InputDescription = requireText(raw, "input_description", false, &errs)
	doc.OutputDescription = requireText(raw, "output_description", false, &errs)

	if v.RejectUnknownFields {
		for _, field := range unknownFields(raw) {
			errs = append(errs, UnknownFieldError{Field: field})
		}
	}

	if len(errs) > 0 {
		return Document{}, errs
	}
	return doc, nil
}

// Deserializes a JSON document and validates it. Malformed JSON is reported
// as the decoder's error; schema violations are reported as ValidationErrors.
func (v Validator) ValidateJSON(data []byte) (Document, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Document{}, err
	}
	return v.Validate(raw)
}

// Deserializes a YAML document and validates it.
func (v Validator) ValidateYAML(data []byte) (Document, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Document{}, err
	}
	return v.Validate(raw)
}

// This helper fetches a required text field, recording an error if it is
// absent or not a string. Fields marked nonEmpty must also hold at least
// one character.
func requireText(raw map[string]any, field string, nonEmpty bool, errs *ValidationErrors) string {
	value, found := raw[field]
	if !found {
		*errs = append(*errs, MissingFieldError{Field: field})
		return ""
	}
	text, ok := value.(string)
	if !ok {
		*errs = append(*errs, TypeMismatchError{Field: field, Expected: "text", Value: value})
		return ""
	}
	if nonEmpty && text == "" {
		*errs = append(*errs, TypeMismatchError{Field: field, Expected: "non-empty text", Value: value})
		return ""
	}
	return text
}

// This helper fetches a required calendar date field. YAML decoders hand
// unquoted dates over as time.Time values, so both text and time.Time
// representations are accepted.
func requireDate(raw map[string]any, field string, errs *ValidationErrors) Date {
	value, found := raw[field]
	if !found {
		*errs = append(*errs, MissingFieldError{Field: field})
		return Date{}
	}
	switch v := value.(type) {
	case string:
		date, err := ParseDate(v)
		if err != nil {
			*errs = append(*errs, TypeMismatchError{Field: field, Expected: "a date (YYYY-MM-DD)", Value: value})
			return Date{}
		}
		return date
	case time.Time:
		return NewDate(v.Year(), v.Month(), v.Day())
	default:
		*errs = append(*errs, TypeMismatchError{Field: field, Expected: "a date (YYYY-MM-DD)", Value: value})
		return Date{}
	}
}

// This helper fetches a required enum field, recording an error if it is
// absent, not a string, or not one of the allowed values. Matching is
// case-sensitive and exact.
func requireEnum(raw map[string]any, field string, allowed []string, errs *ValidationErrors) string {
	value, found := raw[field]
	if !found {
		*errs = append(*errs, MissingFieldError{Field: field})
		return ""
	}
	text, ok := value.(string)
	if !ok {
		*errs = append(*errs, TypeMismatchError{Field: field, Expected: "text", Value: value})
		return ""
	}
	if !contains(allowed, text) {
		*errs = append(*errs, InvalidEnumValueError{Field: field, Value: text, Allowed: allowed})
		return ""
	}
	return text
}

// This helper fetches an optional enum field. Absence and an explicit null
// are both legitimate and distinct from every enum value; present returns
// false for them and no error is recorded.
func optionalEnum(raw map[string]any, field string, allowed []string, errs *ValidationErrors) (string, bool) {
	value, found := raw[field]
	if !found || value == nil {
		return "", false
	}
	text, ok := value.(string)
	if !ok {
		*errs = append(*errs, TypeMismatchError{Field: field, Expected: "text", Value: value})
		return "", false
	}
	if !contains(allowed, text) {
		*errs = append(*errs, InvalidEnumValueError{Field: field, Value: text, Allowed: allowed})
		return "", false
	}
	return text, true
}

// This helper fetches a required sequence-of-text field. Elements that are
// not strings are reported individually with their position in the path.
func requireTextSequence(raw map[string]any, field string, errs *ValidationErrors) []string {
	value, found := raw[field]
	if !found {
		*errs = append(*errs, MissingFieldError{Field: field})
		return nil
	}
	elements, ok := value.([]any)
	if !ok {
		*errs = append(*errs, TypeMismatchError{Field: field, Expected: "a sequence of text", Value: value})
		return nil
	}
	texts := make([]string, 0, len(elements))
	valid := true
	for i, element := range elements {
		text, ok := element.(string)
		if !ok {
			path := fmt.Sprintf("%s[%d]", field, i)
			*errs = append(*errs, TypeMismatchError{Field: path, Expected: "text", Value: element})
			valid = false
			continue
		}
		texts = append(texts, text)
	}
	if !valid {
		return nil
	}
	return texts
}

// This helper fetches and validates the authors sequence. Each element is
// checked independently against the author schema; one bad author does not
// suppress the errors of its siblings.
func requireAuthors(raw map[string]any, errs *ValidationErrors) []Author {
	const field = "authors"
	value, found := raw[field]
	if !found {
		*errs = append(*errs, MissingFieldError{Field: field})
		return nil
	}
	elements, ok := value.([]any)
	if !ok {
		*errs = append(*errs, TypeMismatchError{Field: field, Expected: "a sequence of author records", Value: value})
		return nil
	}
	before := len(*errs)
	authors := make([]Author, 0, len(elements))
	for i, element := range elements {
		record, ok := element.(map[string]any)
		if !ok {
			path := fmt.Sprintf("%s[%d]", field, i)
			*errs = append(*errs, TypeMismatchError{Field: path, Expected: "an author record", Value: element})
			continue
		}
		authors = append(authors, Author{
			Name:        requireNestedText(record, field, i, "name", true, errs),
			Orcid:       requireNestedText(record, field, i, "orcid", false, errs),
			Affiliation: requireNestedText(record, field, i, "affiliation", false, errs),
		})
	}
	if len(*errs) > before {
		return nil
	}
	return authors
}

// This helper fetches and validates the distributions sequence, element by
// element, like requireAuthors.
func requireDistributions(raw map[string]any, errs *ValidationErrors) []Distribution {
	const field = "distributions"
	value, found := raw[field]
	if !found {
		*errs = append(*errs, MissingFieldError{Field: field})
		return nil
	}
	elements, ok := value.([]any)
	if !ok {
		*errs = append(*errs, TypeMismatchError{Field: field, Expected: "a sequence of distribution records", Value: value})
		return nil
	}
	before := len(*errs)
	distributions := make([]Distribution, 0, len(elements))
	for i, element := range elements {
		record, ok := element.(map[string]any)
		if !ok {
			path := fmt.Sprintf("%s[%d]", field, i)
			*errs = append(*errs, TypeMismatchError{Field: path, Expected: "a distribution record", Value: element})
			continue
		}
		distributions = append(distributions, Distribution{
			DistributionPlatform: requireNestedText(record, field, i, "distribution_platform", false, errs),
			Url:                  requireNestedText(record, field, i, "url", false, errs),
		})
	}
	if len(*errs) > before {
		return nil
	}
	return distributions
}

// This helper checks a text field of a nested record, reporting errors with
// a bracketed path like "authors[2].orcid".
func requireNestedText(record map[string]any, parent string, index int, key string, nonEmpty bool, errs *ValidationErrors) string {
	path := fmt.Sprintf("%s[%d].%s", parent, index, key)
	value, found := record[key]
	if !found {
		*errs = append(*errs, MissingFieldError{Field: path})
		return ""
	}
	text, ok := value.(string)
	if !ok {
		*errs = append(*errs, TypeMismatchError{Field: path, Expected: "text", Value: value})
		return ""
	}
	if nonEmpty && text == "" {
		*errs = append(*errs, TypeMismatchError{Field: path, Expected: "non-empty text", Value: value})
		return ""
	}
	return text
}

// This helper enforces the fixed resource type. The field need not be
// supplied; if it is, any value other than the literal "software" conflicts
// with the constant.
func checkResourceType(raw map[string]any, errs *ValidationErrors) {
	value, found := raw["resource_type"]
	if !found {
		return
	}
	if text, ok := value.(string); !ok || text != resourceTypeValue {
		*errs = append(*errs, ConflictingConstantError{Field: "resource_type", Value: value})
	}
}

// This helper lists the input's fields that the schema does not declare,
// sorted so repeated validations of the same input report them in the
// same order.
func unknownFields(raw map[string]any) []string {
	declared := make(map[string]struct{}, len(documentFields))
	for _, field := range documentFields {
		declared[field] = struct{}{}
	}
	var unknown []string
	for field := range raw {
		if _, ok := declared[field]; !ok {
			unknown = append(unknown, field)
		}
	}
	sort.Strings(unknown)
	return unknown
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
