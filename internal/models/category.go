package models

import (
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Category identifies one of the fixed portfolio sections a student can
// submit entries to.
type Category string

const (
	CategoryAcademicAchievements          Category = "academicAchievements"
	CategoryCourseReflections             Category = "courseReflections"
	CategoryBeTheChange                   Category = "beTheChange"
	CategoryResearchPublications          Category = "researchPublications"
	CategoryInterdisciplinaryCollaboration Category = "interdisciplinaryCollaboration"
	CategoryConferenceParticipation       Category = "conferenceParticipation"
	CategoryCompetitionsAwards            Category = "competitionsAwards"
	CategoryWorkshopsTraining             Category = "workshopsTraining"
	CategoryClinicalExperiences           Category = "clinicalExperiences"
	CategoryVoluntaryParticipation        Category = "voluntaryParticipation"
	CategoryEthicsThroughArt              Category = "ethicsThroughArt"
	CategoryThoughtsToActions             Category = "thoughtsToActions"
)

// requiredFields drives per-category payload validation. Adding a category is
// a registry entry, not a new code path.
var requiredFields = map[Category][]string{
	CategoryAcademicAchievements:           {"title", "date"},
	CategoryCourseReflections:              {"courseName", "reflection"},
	CategoryBeTheChange:                    {"title", "description"},
	CategoryResearchPublications:           {"title", "journal"},
	CategoryInterdisciplinaryCollaboration: {"title", "collaborators"},
	CategoryConferenceParticipation:        {"conferenceName", "date"},
	CategoryCompetitionsAwards:             {"title", "award"},
	CategoryWorkshopsTraining:              {"title", "organizer"},
	CategoryClinicalExperiences:            {"title", "setting"},
	CategoryVoluntaryParticipation:         {"title", "organization"},
	CategoryEthicsThroughArt:               {"title", "medium"},
	CategoryThoughtsToActions:              {"title", "action"},
}

var (
	schemaOnce      sync.Once
	categorySchemas map[Category]*jsonschema.Schema
	schemaErr       error
)

// Categories returns the fixed set of portfolio sections in display order.
func Categories() []Category {
	return []Category{
		CategoryAcademicAchievements,
		CategoryCourseReflections,
		CategoryBeTheChange,
		CategoryResearchPublications,
		CategoryInterdisciplinaryCollaboration,
		CategoryConferenceParticipation,
		CategoryCompetitionsAwards,
		CategoryWorkshopsTraining,
		CategoryClinicalExperiences,
		CategoryVoluntaryParticipation,
		CategoryEthicsThroughArt,
		CategoryThoughtsToActions,
	}
}

// ParseCategory normalizes a route or payload value into a known Category.
func ParseCategory(value string) (Category, error) {
	candidate := Category(strings.TrimSpace(value))
	if _, ok := requiredFields[candidate]; !ok {
		return "", fmt.Errorf("unknown portfolio category %q", value)
	}
	return candidate, nil
}

// String implements fmt.Stringer.
func (c Category) String() string {
	return string(c)
}

// FieldsSchema returns the compiled JSON schema guarding the category's
// fields payload.
func FieldsSchema(c Category) (*jsonschema.Schema, error) {
	schemaOnce.Do(compileSchemas)
	if schemaErr != nil {
		return nil, schemaErr
	}

	schema, ok := categorySchemas[c]
	if !ok {
		return nil, fmt.Errorf("unknown portfolio category %q", c)
	}
	return schema, nil
}

func compileSchemas() {
	compiled := make(map[Category]*jsonschema.Schema, len(requiredFields))
	compiler := jsonschema.NewCompiler()

	for category, required := range requiredFields {
		url := fmt.Sprintf("scribe://portfolio/%s.schema.json", category)
		if err := compiler.AddResource(url, strings.NewReader(schemaDocument(required))); err != nil {
			schemaErr = fmt.Errorf("failed to register schema for %s: %w", category, err)
			return
		}

		schema, err := compiler.Compile(url)
		if err != nil {
			schemaErr = fmt.Errorf("failed to compile schema for %s: %w", category, err)
			return
		}
		compiled[category] = schema
	}

	categorySchemas = compiled
}

func schemaDocument(required []string) string {
	var properties strings.Builder
	for i, field := range required {
		if i > 0 {
			properties.WriteString(",")
		}
		properties.WriteString(fmt.Sprintf("%q: {\"type\": \"string\", \"minLength\": 1}", field))
	}

	quoted := make([]string, 0, len(required))
	for _, field := range required {
		quoted = append(quoted, fmt.Sprintf("%q", field))
	}

	return fmt.Sprintf(`{
		"type": "object",
		"required": [%s],
		"properties": {%s},
		"additionalProperties": true
	}`, strings.Join(quoted, ","), properties.String())
}
