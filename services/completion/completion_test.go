package completion

import (
	"testing"
)

type sampleParams struct {
	IDs       []int  `json:"ids" jsonschema:"required,description=Selected candidate ids"`
	Reasoning string `json:"reasoning" jsonschema:"required,description=Why these were selected"`
}

func TestNewToolSpecReflectsSchema(t *testing.T) {
	spec := NewToolSpec[sampleParams]("select_candidates", "Pick candidates by id")

	if spec.Name != "select_candidates" {
		t.Errorf("Name = %q", spec.Name)
	}
	if spec.schema == nil {
		t.Fatal("expected a reflected schema")
	}
	if spec.schema.Type != "object" {
		t.Errorf("schema type = %q", spec.schema.Type)
	}

	if _, ok := spec.schema.Properties.Get("ids"); !ok {
		t.Error("schema missing the ids property")
	}
	if _, ok := spec.schema.Properties.Get("reasoning"); !ok {
		t.Error("schema missing the reasoning property")
	}
	if len(spec.schema.Required) != 2 {
		t.Errorf("required = %v", spec.schema.Required)
	}
}

func TestToolSpecParameters(t *testing.T) {
	spec := NewToolSpec[sampleParams]("select_candidates", "Pick candidates by id")

	params, err := spec.parameters()
	if err != nil {
		t.Fatalf("parameters() failed: %v", err)
	}

	if params["type"] != "object" {
		t.Errorf("type = %v", params["type"])
	}

	properties, ok := params["properties"].(map[string]any)
	if !ok {
		t.Fatalf("properties has unexpected shape: %T", params["properties"])
	}
	if _, ok := properties["ids"]; !ok {
		t.Error("parameters missing the ids property")
	}
	if _, ok := properties["reasoning"]; !ok {
		t.Error("parameters missing the reasoning property")
	}

	if additional, ok := params["additionalProperties"].(bool); !ok || additional {
		t.Errorf("additionalProperties = %v, expected false", params["additionalProperties"])
	}
}
