package extract

import "github.com/kaptinlin/jsonschema"

func must[T any](t T, err error) T {
	if err != nil {
		panic(err)
	}
	return t
}

var (
	compiler   = jsonschema.NewCompiler()
	tripSchema = must(compiler.Compile([]byte(tripSchemaDocument)))
)

// Only types are checked. Missing fields are reported as warnings by Parse
// instead of failing validation.
const tripSchemaDocument = `{
	"$id": "trip.json",
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"title": "Trip",
	"type": "object",
	"properties": {
		"destination": {"type": ["string", "null"]},
		"dates": {
			"type": ["object", "null"],
			"properties": {
				"start": {"type": ["string", "null"]},
				"end": {"type": ["string", "null"]}
			}
		},
		"itinerary": {
			"type": ["array", "null"],
			"items": {
				"type": "object",
				"properties": {
					"day": {"type": ["integer", "null"]},
					"date": {"type": ["string", "null"]},
					"activities": {
						"type": ["array", "null"],
						"items": {
							"type": "object",
							"properties": {
								"time": {"type": ["string", "null"]},
								"place": {"type": ["string", "null"]},
								"address": {"type": ["string", "null"]},
								"description": {"type": ["string", "null"]},
								"expected_time": {"type": ["string", "null"]},
								"highlights": {
									"type": ["array", "null"],
									"items": {"type": "string"}
								},
								"category": {"type": ["string", "null"]}
							}
						}
					}
				}
			}
		}
	}
}`
