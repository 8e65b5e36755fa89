package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchemaTemplate_Validate(t *testing.T) {
	assert.NoError(t, (&SchemaTemplate{Name: "Coins"}).Validate())
	assert.ErrorIs(t, (&SchemaTemplate{Name: " "}).Validate(), ErrTemplateNameEmpty)
}

func TestSchemaTemplateField_Validate(t *testing.T) {
	assert.NoError(t, (&SchemaTemplateField{Name: "Year", Type: FieldTypeNumber}).Validate())
	assert.ErrorIs(t, (&SchemaTemplateField{Name: "", Type: FieldTypeNumber}).Validate(), ErrFieldNameEmpty)
	assert.ErrorIs(t, (&SchemaTemplateField{Name: "Year", Type: FieldType("bad")}).Validate(), ErrFieldTypeInvalid)
	assert.ErrorIs(t, (&SchemaTemplateField{Name: "Grade", Type: FieldTypeSelect}).Validate(), ErrOptionsRequired)
}

func TestCopyName(t *testing.T) {
	taken := map[string]bool{}
	assert.Equal(t, "Coins (Copy)", CopyName("Coins", taken))

	taken["Coins (Copy)"] = true
	assert.Equal(t, "Coins (Copy 2)", CopyName("Coins", taken))

	taken["Coins (Copy 2)"] = true
	taken["Coins (Copy 3)"] = true
	assert.Equal(t, "Coins (Copy 4)", CopyName("Coins", taken))
}
