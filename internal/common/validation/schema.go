// Package validation checks job variables and request bodies against JSON schemas.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

var (
	schemaMu    sync.RWMutex
	schemaCache = map[string]*gojsonschema.Schema{}
)

func compile(schemaJSON string) (*gojsonschema.Schema, error) {
	schemaMu.RLock()
	s, ok := schemaCache[schemaJSON]
	schemaMu.RUnlock()
	if ok {
		return s, nil
	}

	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}

	schemaMu.Lock()
	schemaCache[schemaJSON] = s
	schemaMu.Unlock()
	return s, nil
}

// ValidateJSON validates a raw JSON document against schemaJSON.
func ValidateJSON(schemaJSON string, document []byte) (*ValidationResult, error) {
	return validate(schemaJSON, gojsonschema.NewBytesLoader(document))
}

// ValidateInput validates an already-decoded value (map, struct) against schemaJSON.
func ValidateInput(schemaJSON string, input interface{}) (*ValidationResult, error) {
	return validate(schemaJSON, gojsonschema.NewGoLoader(input))
}

func validate(schemaJSON string, doc gojsonschema.JSONLoader) (*ValidationResult, error) {
	schema, err := compile(schemaJSON)
	if err != nil {
		return nil, err
	}

	res, err := schema.Validate(doc)
	if err != nil {
		return nil, fmt.Errorf("validate document: %w", err)
	}

	out := &ValidationResult{Valid: res.Valid()}
	for _, e := range res.Errors() {
		out.Errors = append(out.Errors, ValidationError{
			Field:   fieldOf(e),
			Message: e.Description(),
			Code:    strings.ToUpper(e.Type()),
		})
	}
	return out, nil
}

// fieldOf reports the offending property for "required" errors, which
// gojsonschema attaches to the parent object.
func fieldOf(e gojsonschema.ResultError) string {
	field := e.Field()
	prop, ok := e.Details()["property"].(string)
	if e.Type() != "required" || !ok {
		return field
	}
	if field == "(root)" || field == "" {
		return prop
	}
	return field + "." + prop
}

// GetErrorMessages returns a simple list of error messages
func (vr *ValidationResult) GetErrorMessages() []string {
	messages := make([]string, len(vr.Errors))
	for i, err := range vr.Errors {
		messages[i] = fmt.Sprintf("%s: %s", err.Field, err.Message)
	}
	return messages
}

// Error joins all messages, for use as an error detail string.
func (vr *ValidationResult) Error() string {
	return strings.Join(vr.GetErrorMessages(), "; ")
}

// HasErrors checks if validation has errors for specific field
func (vr *ValidationResult) HasErrors(field string) bool {
	for _, err := range vr.Errors {
		if err.Field == field || strings.HasPrefix(err.Field, field+".") {
			return true
		}
	}
	return false
}

var phonePattern = regexp.MustCompile(`^\+?[\d\s\-\(\)\.]{10,}$`)

// ValidatePhone validates basic phone number format
func ValidatePhone(phone string) bool {
	return phonePattern.MatchString(phone)
}
