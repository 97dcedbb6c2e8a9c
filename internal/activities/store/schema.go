package store

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"mergington/internal/activities/models"
)

//go:embed activities.schema.json
var registrySchemaJSON string

var registrySchema = jsonschema.MustCompileString("activities.schema.json", registrySchemaJSON)

// decodeRegistry validates raw against the registry schema and decodes it.
func decodeRegistry(raw []byte) (models.Registry, error) {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse registry: %w", err)
	}
	if err := registrySchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("validate registry: %w", err)
	}

	var reg models.Registry
	if err := json.Unmarshal(raw, &reg); err != nil {
		return nil, fmt.Errorf("decode registry: %w", err)
	}
	if reg == nil {
		reg = models.Registry{}
	}
	for name, activity := range reg {
		if activity.Participants == nil {
			activity.Participants = []string{}
			reg[name] = activity
		}
	}
	return reg, nil
}
