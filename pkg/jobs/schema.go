package jobs

import (
	"sync"

	"github.com/invopop/jsonschema"
)

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
)

// Schema returns the JSON schema of JobOpening as served by GET /job-openings/schema.
func Schema() *jsonschema.Schema {
	schemaOnce.Do(func() {
		r := &jsonschema.Reflector{
			DoNotReference:            true,
			AllowAdditionalProperties: true,
		}
		schema = r.Reflect(&JobOpening{})
		schema.Title = "JobOpening"
	})
	return schema
}
