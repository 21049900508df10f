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

// This package defines the metadata schema for wind energy software packages
// and a validator that checks raw (deserialized JSON/YAML) documents against
// that schema.
package metadata

import (
	"encoding/json"
	"fmt"
	"time"
)

// Details of an author, also known as a creator.
type Author struct {
	// the author's full name (must not be empty)
	Name string `json:"name"`
	// the author's ORCID identifier (treated as opaque text)
	Orcid string `json:"orcid"`
	// the organization with which the author is affiliated
	Affiliation string `json:"affiliation"`
}

// Details of a software distribution.
type Distribution struct {
	// the name of the platform through which the software is distributed
	// (e.g. a package index or a container registry)
	DistributionPlatform string `json:"distribution_platform"`
	// the location of the distribution on that platform (treated as opaque text)
	Url string `json:"url"`
}

// how the source code of the software may be accessed
type SourceAccessRight string

const (
	SourceAccessRightOpen   SourceAccessRight = "open"
	SourceAccessRightClosed SourceAccessRight = "closed"
)

// the analytical role of the software
type ResourceSubtype string

const (
	ResourceSubtypeModel        ResourceSubtype = "model"
	ResourceSubtypeAnalysis     ResourceSubtype = "analysis"
	ResourceSubtypeOptimisation ResourceSubtype = "optimisation"
)

// the time domain in which the software operates
type TimeDomain string

const (
	TimeDomainSteady  TimeDomain = "steady"
	TimeDomainDynamic TimeDomain = "dynamic"
)

// whether the software models a whole wind farm or a single turbine
type RepresentationLevel string

const (
	RepresentationLevelWindFarm RepresentationLevel = "wind_farm"
	RepresentationLevelTurbine  RepresentationLevel = "turbine"
)

// the physical/numerical fidelity with which turbines are modeled
type TurbineRepresentation string

const (
	TurbineRepresentationActuator         TurbineRepresentation = "actuator"
	TurbineRepresentationBem              TurbineRepresentation = "bem"
	TurbineRepresentationVortexMethod     TurbineRepresentation = "vortex_method"
	TurbineRepresentationGeometryResolved TurbineRepresentation = "geometry_resolved"
)

// the siting of the wind energy application the software targets
type Location string

const (
	LocationOnshore  Location = "onshore"
	LocationOffshore Location = "offshore"
)

// allowed enum values in declaration order, used for validation and for
// error messages
var (
	sourceAccessRightValues     = []string{"open", "closed"}
	resourceSubtypeValues       = []string{"model", "analysis", "optimisation"}
	timeDomainValues            = []string{"steady", "dynamic"}
	representationLevelValues   = []string{"wind_farm", "turbine"}
	turbineRepresentationValues = []string{"actuator", "bem", "vortex_method", "geometry_resolved"}
	locationValues              = []string{"onshore", "offshore"}
)

// the fixed resource type carried by every metadata document
const resourceTypeValue = "software"

// A calendar date (year, month, day) with no time-of-day component,
// serialized as YYYY-MM-DD.
type Date struct {
	t time.Time
}

const dateLayout = "2006-01-02"

// Returns the date for the given year, month, and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Parses a date from its YYYY-MM-DD text form.
func ParseDate(text string) (Date, error) {
	t, err := time.Parse(dateLayout, text)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date '%s' (expected YYYY-MM-DD)", text)
	}
	return Date{t: t}, nil
}

func (d Date) String() string {
	return d.t.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return err
	}
	parsed, err := ParseDate(text)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// A metadata document describing a piece of wind energy software. Documents
// are constructed by the validator and never modified afterward.
type Document struct {
	// a persistent identifier for the software (must not be empty; uniqueness
	// is not enforced here)
	Id string `json:"id"`
	// the name of the software (must not be empty)
	Name string `json:"name"`
	// a description of the software (must not be empty)
	Description string `json:"description"`
	// the version string of the latest release
	LatestReleaseVersion string `json:"latest_release_version"`
	// the date of the latest release
	LatestReleaseDate Date `json:"latest_release_date"`
	// the usage license, ideally an SPDX identifier (not checked against the
	// SPDX list)
	License string `json:"license"`
	// whether the source code is openly available
	SourceAccessRight SourceAccessRight `json:"source_access_right"`
	// the people who created the software, in citation order (may be empty)
	Authors []Author `json:"authors"`
	// the languages the software is written in
	ProgrammingLanguages []string `json:"programming_languages"`
	// the platforms the software runs on
	SupportedPlatforms []string `json:"supported_platforms"`
	// the analytical role of the software
	ResourceSubtype ResourceSubtype `json:"resource_subtype"`
	// the location of the source repository (treated as opaque text)
	RepositoryUrl string `json:"repository_url"`
	// the location of the documentation (treated as opaque text)
	DocumentationUrl string `json:"documentation_url"`
	// the ways the software is distributed (may be empty)
	Distributions []Distribution `json:"distributions"`
	// the purpose for the software to exist
	Function string `json:"function"`
	// the time domain in which the software operates
	TimeDomain TimeDomain `json:"time_domain"`
	// whether a wind farm or a single turbine is modeled
	RepresentationLevel RepresentationLevel `json:"representation_level"`
	// how turbines are represented numerically (nil if not applicable)
	TurbineRepresentation *TurbineRepresentation `json:"turbine_representation,omitempty"`
	// the siting the software targets (nil if not applicable)
	Location *Location `json:"location,omitempty"`
	// a description of the software's inputs
	InputDescription string `json:"input_description"`
	// a description of the software's outputs
	OutputDescription string `json:"output_description"`
}

// Every metadata document describes software, so the resource type is a
// fixed literal rather than a field that could be assigned to.
func (Document) ResourceType() string {
	return resourceTypeValue
}

// Serializes the document to its canonical interchange form, which always
// carries the fixed resource type.
func (d Document) MarshalJSON() ([]byte, error) {
	type fields Document
	return json.Marshal(struct {
		fields
		ResourceType string `json:"resource_type"`
	}{fields(d), resourceTypeValue})
}
