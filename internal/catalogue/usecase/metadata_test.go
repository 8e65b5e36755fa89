package usecase

import (
	"testing"

	"curiovault/internal/catalogue/domain/model"
	appErrors "curiovault/internal/shared/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func schemaFixture() []*model.FieldDefinition {
	return []*model.FieldDefinition{
		{Name: "Era", Type: model.FieldTypeText, IsRequired: true},
		{Name: "Year", Type: model.FieldTypeNumber},
		{Name: "Acquired", Type: model.FieldTypeDate},
		{Name: "LastSeen", Type: model.FieldTypeTimestamp},
		{Name: "ForTrade", Type: model.FieldTypeCheckbox},
		{Name: "Grade", Type: model.FieldTypeSelect, Options: &model.FieldOptions{Options: []string{"Mint", "Worn"}}},
	}
}

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	var ve *appErrors.ValidationErrors
	require.ErrorAs(t, err, &ve)
	out := make(map[string]string)
	for _, fe := range ve.Errors {
		out[fe.Field] = fe.Message
	}
	return out
}

func TestValidateMetadata_AcceptsValidValues(t *testing.T) {
	metadata := map[string]interface{}{
		"Era":      "Meiji",
		"Year":     float64(1890),
		"Acquired": "2024-03-15",
		"LastSeen": "2024-03-15T10:30:00Z",
		"ForTrade": true,
		"Grade":    "Mint",
	}
	assert.NoError(t, ValidateMetadata(schemaFixture(), metadata, true))
}

func TestValidateMetadata_UnknownKey(t *testing.T) {
	err := ValidateMetadata(schemaFixture(), map[string]interface{}{"Era": "Meiji", "Bogus": 1}, false)
	fields := fieldsOf(t, err)
	assert.Equal(t, "unknown field", fields["Bogus"])
}

func TestValidateMetadata_TypeMismatches(t *testing.T) {
	metadata := map[string]interface{}{
		"Era":      42,
		"Year":     "not a number",
		"Acquired": "15/03/2024",
		"LastSeen": "yesterday",
		"ForTrade": "yes",
		"Grade":    "Broken",
	}
	err := ValidateMetadata(schemaFixture(), metadata, false)
	fields := fieldsOf(t, err)
	assert.Len(t, fields, 6)
	assert.Equal(t, "must be a string", fields["Era"])
	assert.Equal(t, "must be a number", fields["Year"])
	assert.Equal(t, "must be a valid YYYY-MM-DD date", fields["Acquired"])
	assert.Equal(t, "must be a valid RFC 3339 timestamp", fields["LastSeen"])
	assert.Equal(t, "must be true or false", fields["ForTrade"])
	assert.Contains(t, fields["Grade"], "must be one of")
}

func TestValidateMetadata_RequiredOnlyWhenRequireAll(t *testing.T) {
	// Drafts may omit required fields.
	assert.NoError(t, ValidateMetadata(schemaFixture(), map[string]interface{}{}, false))

	err := ValidateMetadata(schemaFixture(), map[string]interface{}{}, true)
	fields := fieldsOf(t, err)
	assert.Equal(t, "required field is missing", fields["Era"])
	assert.NotContains(t, fields, "Year")
}

func TestValidateMetadata_RequiredBlankString(t *testing.T) {
	err := ValidateMetadata(schemaFixture(), map[string]interface{}{"Era": "   "}, true)
	fields := fieldsOf(t, err)
	assert.Equal(t, "required field is blank", fields["Era"])

	// Blank is fine while the item is still a draft.
	assert.NoError(t, ValidateMetadata(schemaFixture(), map[string]interface{}{"Era": "   "}, false))
}

func TestValidateMetadata_NilValueTreatedAsAbsent(t *testing.T) {
	assert.NoError(t, ValidateMetadata(schemaFixture(), map[string]interface{}{"Year": nil}, false))

	err := ValidateMetadata(schemaFixture(), map[string]interface{}{"Era": nil}, true)
	fields := fieldsOf(t, err)
	assert.Equal(t, "required field is missing", fields["Era"])
}

func TestValidateMetadata_NumericForms(t *testing.T) {
	schema := []*model.FieldDefinition{{Name: "Year", Type: model.FieldTypeNumber}}
	for _, v := range []interface{}{float64(1890), 1890, int64(1890), float32(18.9)} {
		assert.NoError(t, ValidateMetadata(schema, map[string]interface{}{"Year": v}, false))
	}
	err := ValidateMetadata(schema, map[string]interface{}{"Year": true}, false)
	assert.Error(t, err)
}

func TestMergeMetadata(t *testing.T) {
	base := map[string]interface{}{"Era": "Meiji", "Year": 1890}
	patch := map[string]interface{}{"Year": 1900, "Grade": "Mint", "Era": nil}

	merged := MergeMetadata(base, patch)

	assert.Equal(t, map[string]interface{}{"Year": 1900, "Grade": "Mint"}, merged)
	// Inputs stay untouched.
	assert.Equal(t, "Meiji", base["Era"])
	assert.Nil(t, patch["Era"])
}
