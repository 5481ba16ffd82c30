package store

import (
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const tasksSchemaJSON = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "description", "status", "createdAt", "updatedAt"],
    "properties": {
      "id": {"type": "string", "minLength": 1},
      "description": {"type": "string"},
      "status": {"type": "string"},
      "createdAt": {"type": "string", "pattern": "^\\d{4}-\\d{2}-\\d{2} \\d{2}:\\d{2}:\\d{2}$"},
      "updatedAt": {"type": "string", "pattern": "^\\d{4}-\\d{2}-\\d{2} \\d{2}:\\d{2}:\\d{2}$"}
    }
  }
}`

// tasksSchema checks the shape of tasks.json before records are decoded.
// Field semantics (status names, non-empty descriptions) are left to
// model.Reconstruct.
var tasksSchema = jsonschema.MustCompileString("tasks.schema.json", tasksSchemaJSON)
