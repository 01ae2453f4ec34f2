// Package schemas embeds the JSON Schemas for mlreport input files.
package schemas

import _ "embed"

// PredictionsSchemaJSON is the JSON Schema for predictions JSON files.
//
//go:embed predictions.schema.json
var PredictionsSchemaJSON string
