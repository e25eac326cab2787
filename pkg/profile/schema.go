package profile

import (
	"github.com/invopop/jsonschema"
)

// Schema describes the JSON document emitted for a Profile.
func Schema() *jsonschema.Schema {
	reflector := &jsonschema.Reflector{
		DoNotReference: true,
	}

	schema := reflector.Reflect(&Profile{})
	schema.Title = "Profile lookup result"

	return schema
}
