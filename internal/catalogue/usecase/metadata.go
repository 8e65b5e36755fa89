package usecase

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"curiovault/internal/catalogue/domain/model"
	appErrors "curiovault/internal/shared/errors"
)

const dateLayout = "2006-01-02"

// ValidateMetadata checks item metadata against the collection schema. When
// requireAll is false required fields may be absent, which lets drafts stay
// partially filled until they are published. Unknown keys always fail.
func ValidateMetadata(fields []*model.FieldDefinition, metadata map[string]interface{}, requireAll bool) error {
	byName := make(map[string]*model.FieldDefinition, len(fields))
	for _, f := range fields {
		byName[f.Name] = f
	}

	ve := appErrors.NewValidationErrors()

	for key := range metadata {
		if _, ok := byName[key]; !ok {
			ve.Add(key, "unknown field", metadata[key])
		}
	}

	for _, field := range fields {
		value, present := metadata[field.Name]
		if !present || value == nil {
			if requireAll && field.IsRequired {
				ve.Add(field.Name, "required field is missing", nil)
			}
			continue
		}
		if msg := validateValue(field, value, requireAll); msg != "" {
			ve.Add(field.Name, msg, value)
		}
	}

	if ve.HasErrors() {
		return ve
	}
	return nil
}

func validateValue(field *model.FieldDefinition, value interface{}, requireAll bool) string {
	switch field.Type {
	case model.FieldTypeText:
		s, ok := value.(string)
		if !ok {
			return "must be a string"
		}
		if requireAll && field.IsRequired && strings.TrimSpace(s) == "" {
			return "required field is blank"
		}
	case model.FieldTypeNumber:
		if !isNumeric(value) {
			return "must be a number"
		}
	case model.FieldTypeCheckbox:
		if _, ok := value.(bool); !ok {
			return "must be true or false"
		}
	case model.FieldTypeDate:
		s, ok := value.(string)
		if !ok {
			return "must be a YYYY-MM-DD date string"
		}
		if _, err := time.Parse(dateLayout, s); err != nil {
			return "must be a valid YYYY-MM-DD date"
		}
	case model.FieldTypeTimestamp:
		s, ok := value.(string)
		if !ok {
			return "must be an RFC 3339 timestamp string"
		}
		if _, err := time.Parse(time.RFC3339, s); err != nil {
			return "must be a valid RFC 3339 timestamp"
		}
	case model.FieldTypeSelect:
		s, ok := value.(string)
		if !ok {
			return "must be a string"
		}
		if !field.Options.HasOption(s) {
			return fmt.Sprintf("must be one of: %s", strings.Join(field.Options.Options, ", "))
		}
	}
	return ""
}

func isNumeric(value interface{}) bool {
	switch v := value.(type) {
	case float64, float32, int, int32, int64:
		return true
	case json.Number:
		_, err := v.Float64()
		return err == nil
	}
	return false
}

// MergeMetadata overlays patch onto base without mutating either. A nil value
// in patch clears the key.
func MergeMetadata(base, patch map[string]interface{}) map[string]interface{} {
	merged := make(map[string]interface{}, len(base)+len(patch))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range patch {
		if v == nil {
			delete(merged, k)
			continue
		}
		merged[k] = v
	}
	return merged
}
