package project

import "github.com/kaptinlin/builder/schema"

// descriptorSchemaDocument is the top-level project.yaml schema: an info
// block, a dependencies map (long form or short spec form), and a vars
// map of string substitutions. Mirrors the shape the original's project
// module builds programmatically via its schema DSL.
const descriptorSchemaDocument = `{
  "type": "object",
  "properties": {
    "info": {
      "type": "object",
      "properties": {
        "name": {"type": "string", "pattern": "^[A-Za-z0-9_-]+$"},
        "title": {"type": "string", "minLength": 1},
        "version": {"type": "string", "format": "semver"},
        "languages": {
          "oneOf": [
            {"type": "string", "minLength": 1},
            {"type": "array", "items": {"type": "string", "minLength": 1}}
          ]
        }
      },
      "additionalProperties": false
    },
    "dependencies": {
      "type": "object",
      "additionalProperties": {
        "oneOf": [
          {"type": "string", "minLength": 1},
          {
            "type": "object",
            "properties": {
              "location": {"type": "string", "enum": ["remote", "local", "project"]},
              "group": {"type": "string", "minLength": 1},
              "name": {"type": "string", "minLength": 1},
              "classifier": {"type": "string", "minLength": 1},
              "version": {"type": "string", "format": "semver"},
              "ignore-transients": {"type": "boolean"},
              "scope": {
                "oneOf": [
                  {"type": "string", "minLength": 1},
                  {"type": "array", "items": {"type": "string", "minLength": 1}}
                ]
              }
            },
            "required": ["location", "version", "scope"],
            "additionalProperties": false
          }
        ]
      }
    },
    "vars": {
      "type": "object",
      "additionalProperties": {"type": "string", "minLength": 1}
    }
  },
  "required": ["info"]
}`

var descriptorSchema *schema.Schema

func init() {
	s, err := schema.NewCompiler().Compile([]byte(descriptorSchemaDocument))
	if err != nil {
		panic("project: descriptor schema failed to compile: " + err.Error())
	}
	descriptorSchema = s
}
