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
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/IEA-Task-43/wind-energy-software-metadata/metatest"
)

// This helper extracts the validation errors from a Validate result and
// indexes their kinds by field path.
func errorKindsByPath(t *testing.T, err error) map[string]string {
	var errs ValidationErrors
	require.True(t, errors.As(err, &errs), "The error isn't a ValidationErrors list.")
	kinds := make(map[string]string, len(errs))
	for _, fieldErr := range errs {
		kinds[fieldErr.Path()] = fieldErr.Kind()
	}
	return kinds
}

// tests whether a well-formed document passes validation with its fields
// coerced to their semantic types
func TestValidateAcceptsValidDocument(t *testing.T) {
	doc, err := Validate(metatest.ValidDocument())
	require.Nil(t, err, "A valid document produced validation errors.")

	assert.Equal(t, "iea43-swept-0042", doc.Id, "The id wasn't carried over.")
	assert.Equal(t, "Swept", doc.Name, "The name wasn't carried over.")
	assert.Equal(t, NewDate(2024, time.June, 30), doc.LatestReleaseDate,
		"The release date wasn't parsed.")
	assert.Equal(t, SourceAccessRightOpen, doc.SourceAccessRight,
		"The source access right wasn't resolved.")
	assert.Equal(t, ResourceSubtypeModel, doc.ResourceSubtype,
		"The resource subtype wasn't resolved.")
	assert.Equal(t, TimeDomainSteady, doc.TimeDomain, "The time domain wasn't resolved.")
	assert.Equal(t, RepresentationLevelWindFarm, doc.RepresentationLevel,
		"The representation level wasn't resolved.")
	assert.Equal(t, []string{"Python", "C++"}, doc.ProgrammingLanguages,
		"The programming languages weren't carried over in order.")
	require.Len(t, doc.Authors, 2, "The authors weren't carried over.")
	assert.Equal(t, "Ravi Chandran", doc.Authors[1].Name, "Author order wasn't preserved.")
	require.Len(t, doc.Distributions, 1, "The distributions weren't carried over.")
	assert.Equal(t, "PyPI", doc.Distributions[0].DistributionPlatform,
		"The distribution platform wasn't carried over.")
	require.NotNil(t, doc.TurbineRepresentation, "The turbine representation wasn't resolved.")
	assert.Equal(t, TurbineRepresentationActuator, *doc.TurbineRepresentation,
		"The turbine representation holds the wrong value.")
	assert.Nil(t, doc.Location, "An absent location didn't come out as nil.")
	assert.Equal(t, "software", doc.ResourceType(), "The resource type isn't the fixed literal.")
}

// tests whether every missing required field is reported, not just the
// first one encountered
func TestValidateReportsAllMissingFields(t *testing.T) {
	raw := metatest.ValidDocument()
	delete(raw, "name")
	delete(raw, "license")

	doc, err := Validate(raw)
	require.NotNil(t, err, "A document with missing fields passed validation.")
	assert.Equal(t, Document{}, doc, "A rejected document isn't the zero value.")

	kinds := errorKindsByPath(t, err)
	assert.Len(t, kinds, 2, "The wrong number of errors was reported.")
	assert.Equal(t, KindMissingField, kinds["name"], "The missing name wasn't reported.")
	assert.Equal(t, KindMissingField, kinds["license"], "The missing license wasn't reported.")
}

// tests whether a time domain outside {steady, dynamic} is rejected even
// when every other field is valid
func TestValidateRejectsBadTimeDomain(t *testing.T) {
	raw := metatest.ValidDocument()
	raw["time_domain"] = "sideways"

	_, err := Validate(raw)
	kinds := errorKindsByPath(t, err)
	assert.Len(t, kinds, 1, "The wrong number of errors was reported.")
	assert.Equal(t, KindInvalidEnumValue, kinds["time_domain"],
		"The bad time domain wasn't reported as an enum violation.")
}

// tests whether an out-of-vocabulary resource subtype is rejected
func TestValidateRejectsBadResourceSubtype(t *testing.T) {
	raw := metatest.ValidDocument()
	raw["resource_subtype"] = "forecast"

	_, err := Validate(raw)
	kinds := errorKindsByPath(t, err)
	assert.Equal(t, KindInvalidEnumValue, kinds["resource_subtype"],
		"The bad resource subtype wasn't reported as an enum violation.")
}

// tests whether enum matching is case-sensitive and exact
func TestValidateEnumsAreCaseSensitive(t *testing.T) {
	raw := metatest.ValidDocument()
	raw["source_access_right"] = "Open"

	_, err := Validate(raw)
	kinds := errorKindsByPath(t, err)
	assert.Equal(t, KindInvalidEnumValue, kinds["source_access_right"],
		"A wrongly-cased enum value wasn't rejected.")
}

// tests whether a supplied resource_type must equal the fixed literal
func TestValidateRejectsConflictingResourceType(t *testing.T) {
	raw := metatest.ValidDocument()
	raw["resource_type"] = "dataset"
	_, err := Validate(raw)
	kinds := errorKindsByPath(t, err)
	assert.Equal(t, KindConflictingConstant, kinds["resource_type"],
		"A conflicting resource type wasn't reported.")

	raw["resource_type"] = 42
	_, err = Validate(raw)
	kinds = errorKindsByPath(t, err)
	assert.Equal(t, KindConflictingConstant, kinds["resource_type"],
		"A non-text resource type wasn't reported as a conflict.")

	raw["resource_type"] = "software"
	_, err = Validate(raw)
	assert.Nil(t, err, "An explicit 'software' resource type was rejected.")
}

// tests whether each author is validated independently, with positions in
// the reported paths, and whether one bad author hides its siblings' errors
func TestValidateReportsNestedAuthorErrors(t *testing.T) {
	raw := metatest.ValidDocument()
	raw["authors"] = []any{
		map[string]any{
			"name":        "Maja Sorensen",
			"orcid":       "0000-0002-1825-0097",
			"affiliation": "Technical University of Denmark",
		},
		map[string]any{
			"name":        "",
			"affiliation": "National Renewable Energy Laboratory",
		},
		17,
	}

	_, err := Validate(raw)
	kinds := errorKindsByPath(t, err)
	assert.Len(t, kinds, 3, "The wrong number of errors was reported.")
	assert.Equal(t, KindTypeMismatch, kinds["authors[1].name"],
		"An empty author name wasn't reported at its position.")
	assert.Equal(t, KindMissingField, kinds["authors[1].orcid"],
		"A missing ORCID wasn't reported at its position.")
	assert.Equal(t, KindTypeMismatch, kinds["authors[2]"],
		"A non-record author element wasn't reported at its position.")
}

// tests whether each distribution is validated independently, with
// positions in the reported paths, and whether one bad distribution hides
// its siblings' errors
func TestValidateReportsNestedDistributionErrors(t *testing.T) {
	raw := metatest.ValidDocument()
	raw["distributions"] = []any{
		map[string]any{
			"distribution_platform": "PyPI",
			"url":                   "https://pypi.org/project/swept",
		},
		map[string]any{
			"url": 7,
		},
		"conda",
	}

	_, err := Validate(raw)
	kinds := errorKindsByPath(t, err)
	assert.Len(t, kinds, 3, "The wrong number of errors was reported.")
	assert.Equal(t, KindMissingField, kinds["distributions[1].distribution_platform"],
		"A missing distribution platform wasn't reported at its position.")
	assert.Equal(t, KindTypeMismatch, kinds["distributions[1].url"],
		"A non-text distribution URL wasn't reported at its position.")
	assert.Equal(t, KindTypeMismatch, kinds["distributions[2]"],
		"A non-record distribution element wasn't reported at its position.")
}

// tests whether empty author and distribution sequences are legitimate
func TestValidateAllowsEmptySequences(t *testing.T) {
	raw := metatest.ValidDocument()
	raw["authors"] = []any{}
	raw["distributions"] = []any{}

	doc, err := Validate(raw)
	require.Nil(t, err, "Empty authors/distributions were rejected.")
	assert.Len(t, doc.Authors, 0, "An empty author list didn't come out empty.")
	assert.Len(t, doc.Distributions, 0, "An empty distribution list didn't come out empty.")
}

// tests whether sequence-of-text fields check their elements, with
// positions in the reported paths
func TestValidateChecksSequenceElements(t *testing.T) {
	raw := metatest.ValidDocument()
	raw["programming_languages"] = []any{"Python", 3}
	raw["supported_platforms"] = "linux"

	_, err := Validate(raw)
	kinds := errorKindsByPath(t, err)
	assert.Equal(t, KindTypeMismatch, kinds["programming_languages[1]"],
		"A non-text sequence element wasn't reported at its position.")
	assert.Equal(t, KindTypeMismatch, kinds["supported_platforms"],
		"A non-sequence value wasn't reported.")
}

// tests whether the two optional fields may be absent or null, and whether
// each state is distinct from every enum value
func TestValidateOptionalFieldsMayBeAbsentOrNull(t *testing.T) {
	raw := metatest.ValidDocument()
	delete(raw, "turbine_representation")
	raw["location"] = nil

	doc, err := Validate(raw)
	require.Nil(t, err, "A document with absent optional fields was rejected.")
	assert.Nil(t, doc.TurbineRepresentation, "An absent turbine representation isn't nil.")
	assert.Nil(t, doc.Location, "A null location isn't nil.")

	raw["location"] = "offshore"
	doc, err = Validate(raw)
	require.Nil(t, err, "A document with a present optional field was rejected.")
	require.NotNil(t, doc.Location, "A present location came out nil.")
	assert.Equal(t, LocationOffshore, *doc.Location, "The location holds the wrong value.")
}

// tests whether a present optional enum still has its vocabulary enforced
func TestValidateRejectsBadOptionalEnum(t *testing.T) {
	raw := metatest.ValidDocument()
	raw["location"] = "seabed"

	_, err := Validate(raw)
	kinds := errorKindsByPath(t, err)
	assert.Equal(t, KindInvalidEnumValue, kinds["location"],
		"A bad optional enum value wasn't reported.")
}

// tests whether malformed release dates are rejected as type mismatches
func TestValidateRejectsBadDates(t *testing.T) {
	raw := metatest.ValidDocument()
	raw["latest_release_date"] = "June 30, 2024"
	_, err := Validate(raw)
	kinds := errorKindsByPath(t, err)
	assert.Equal(t, KindTypeMismatch, kinds["latest_release_date"],
		"A prose date wasn't reported as a type mismatch.")

	raw["latest_release_date"] = 20240630
	_, err = Validate(raw)
	kinds = errorKindsByPath(t, err)
	assert.Equal(t, KindTypeMismatch, kinds["latest_release_date"],
		"A numeric date wasn't reported as a type mismatch.")
}

// tests whether empty text is rejected where the schema demands non-empty text
func TestValidateRejectsEmptyRequiredText(t *testing.T) {
	raw := metatest.ValidDocument()
	raw["description"] = ""

	_, err := Validate(raw)
	kinds := errorKindsByPath(t, err)
	assert.Equal(t, KindTypeMismatch, kinds["description"],
		"An empty description wasn't rejected.")
}

// tests the unknown-field policy: ignored by default, rejected in strict mode
func TestValidateUnknownFieldPolicy(t *testing.T) {
	raw := metatest.ValidDocument()
	raw["colour"] = "taupe"
	raw["flavour"] = "salt"

	_, err := Validate(raw)
	assert.Nil(t, err, "The default policy didn't ignore unknown fields.")

	strict := Validator{RejectUnknownFields: true}
	_, err = strict.Validate(raw)
	kinds := errorKindsByPath(t, err)
	assert.Len(t, kinds, 2, "The wrong number of errors was reported.")
	assert.Equal(t, KindUnknownField, kinds["colour"], "An unknown field wasn't reported.")
	assert.Equal(t, KindUnknownField, kinds["flavour"], "An unknown field wasn't reported.")
}

// tests whether validation reads its input without modifying it
func TestValidateDoesNotMutateItsInput(t *testing.T) {
	raw := metatest.ValidDocument()
	snapshot := metatest.CopyDocument(raw)

	_, err := Validate(raw)
	assert.Nil(t, err, "The fixture document failed validation.")
	assert.Equal(t, snapshot, raw, "Validation modified its input mapping.")

	bad := metatest.ValidDocument()
	delete(bad, "license")
	badSnapshot := metatest.CopyDocument(bad)
	_, err = Validate(bad)
	assert.NotNil(t, err, "A document with a missing field passed validation.")
	assert.Equal(t, badSnapshot, bad, "A failed validation modified its input mapping.")
}

// tests whether validation is a pure function of its input
func TestValidateIsIdempotent(t *testing.T) {
	raw := metatest.ValidDocument()
	first, err1 := Validate(raw)
	second, err2 := Validate(raw)
	assert.Nil(t, err1, "The first validation failed.")
	assert.Nil(t, err2, "The second validation failed.")
	assert.Equal(t, first, second, "Two validations of the same input disagree.")

	bad := metatest.ValidDocument()
	delete(bad, "id")
	bad["time_domain"] = "sideways"
	_, badErr1 := Validate(bad)
	_, badErr2 := Validate(bad)
	assert.Equal(t, badErr1, badErr2, "Two validations of the same bad input disagree.")
}

// tests whether a valid document survives a serialize/re-validate round trip
func TestValidateRoundTrip(t *testing.T) {
	original, err := Validate(metatest.ValidDocument())
	require.Nil(t, err, "The fixture document failed validation.")

	data, err := json.Marshal(original)
	require.Nil(t, err, "Marshalling the document produced an error.")

	revalidated, err := Validator{}.ValidateJSON(data)
	require.Nil(t, err, "The canonical form failed re-validation.")
	assert.Equal(t, original, revalidated, "The document didn't survive the round trip.")
}

// tests whether ValidateJSON reports malformed syntax as a decode error
// rather than a validation error list
func TestValidateJSONRejectsMalformedInput(t *testing.T) {
	_, err := Validator{}.ValidateJSON([]byte(`{"id": `))
	require.NotNil(t, err, "Malformed JSON didn't produce an error.")
	var errs ValidationErrors
	assert.False(t, errors.As(err, &errs),
		"A decode failure was misreported as a validation error list.")
}

// tests whether ValidateYAML reports malformed syntax as a decode error
// rather than a validation error list
func TestValidateYAMLRejectsMalformedInput(t *testing.T) {
	_, err := Validator{}.ValidateYAML([]byte("id: [what"))
	require.NotNil(t, err, "Malformed YAML didn't produce an error.")
	var errs ValidationErrors
	assert.False(t, errors.As(err, &errs),
		"A decode failure was misreported as a validation error list.")
}

// tests whether ValidateYAML agrees with Validate on equivalent input,
// including YAML's habit of decoding unquoted dates as timestamps
func TestValidateYAMLAgreesWithValidate(t *testing.T) {
	raw := metatest.ValidDocument()
	data, err := yaml.Marshal(raw)
	require.Nil(t, err, "Marshalling the fixture to YAML produced an error.")

	fromYAML, err := Validator{}.ValidateYAML(data)
	require.Nil(t, err, "The YAML form failed validation.")

	fromMap, err := Validate(raw)
	require.Nil(t, err, "The fixture document failed validation.")
	assert.Equal(t, fromMap, fromYAML, "YAML and mapping validation disagree.")
}
