package store

import (
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/xeipuuv/gojsonschema"

	"registrar/internal/domain"
)

// recordsSchema describes the shape of the records file. Required keys are
// left to domain.Deserialize so a missing one surfaces as ErrMissingField.
const recordsSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": {
    "type": "object",
    "properties": {
      "student_id": {"type": "string"},
      "name":       {"type": "string"},
      "age":        {"type": "integer"},
      "grade":      {"type": "string"},
      "subjects":   {"type": ["array", "null"], "items": {"type": "string"}},
      "created_at": {"type": "string"}
    }
  }
}`

var (
	schemaOnce     sync.Once
	compiledSchema *gojsonschema.Schema
	schemaErr      error
)

func loadRecordsSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiledSchema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(recordsSchema))
	})
	return compiledSchema, schemaErr
}

// validateRecords checks data against recordsSchema.
func validateRecords(data []byte) error {
	schema, err := loadRecordsSchema()
	if err != nil {
		return errors.Wrap(err, "invalid records schema")
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return errors.Wrap(domain.ErrMalformedStorage, err.Error())
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		msgs = append(msgs, desc.String())
	}
	return errors.Wrap(domain.ErrMalformedStorage, strings.Join(msgs, "; "))
}
