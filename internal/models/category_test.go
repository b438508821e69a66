package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	category, err := ParseCategory("courseReflections")
	require.NoError(t, err)
	require.Equal(t, CategoryCourseReflections, category)

	category, err = ParseCategory("  beTheChange ")
	require.NoError(t, err)
	require.Equal(t, CategoryBeTheChange, category)

	_, err = ParseCategory("notACategory")
	require.Error(t, err)

	_, err = ParseCategory("")
	require.Error(t, err)
}

func TestCategoriesCoverEveryRegistryEntry(t *testing.T) {
	categories := Categories()
	require.Len(t, categories, 12)

	seen := make(map[Category]bool, len(categories))
	for _, category := range categories {
		require.False(t, seen[category])
		seen[category] = true

		schema, err := FieldsSchema(category)
		require.NoError(t, err)
		require.NotNil(t, schema)
	}
}

func TestFieldsSchemaEnforcesRequiredFields(t *testing.T) {
	schema, err := FieldsSchema(CategoryCourseReflections)
	require.NoError(t, err)

	require.NoError(t, schema.Validate(map[string]interface{}{
		"courseName": "Bioethics I",
		"reflection": "Informed consent notes.",
		"extra":      "allowed",
	}))

	require.Error(t, schema.Validate(map[string]interface{}{
		"courseName": "Bioethics I",
	}))

	// Required fields must be non-blank strings.
	require.Error(t, schema.Validate(map[string]interface{}{
		"courseName": "Bioethics I",
		"reflection": "",
	}))
	require.Error(t, schema.Validate(map[string]interface{}{
		"courseName": "Bioethics I",
		"reflection": 42,
	}))
}

func TestSubmissionStatusHelpers(t *testing.T) {
	item := SubmissionItem{Status: SubmissionStatusPending}
	require.False(t, item.IsApproved())
	require.False(t, item.IsReviewed())

	item.Status = SubmissionStatusApproved
	require.True(t, item.IsApproved())
	require.True(t, item.IsReviewed())

	item.Status = SubmissionStatusRejected
	require.False(t, item.IsApproved())
	require.True(t, item.IsReviewed())
}
