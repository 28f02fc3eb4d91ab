package api

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// analysisSchema constrains the check response. Scores are percentages that
// may still be null; anything outside [0,100] means a broken payload.
const analysisSchema = `{
  "type": "object",
  "required": ["id", "assignment_id"],
  "properties": {
    "id": {"type": "integer"},
    "assignment_id": {"type": "integer"},
    "similarity_score": {"type": ["number", "null"], "minimum": 0, "maximum": 100},
    "ai_probability": {"type": ["number", "null"], "minimum": 0, "maximum": 100},
    "learning_score": {"type": ["number", "null"], "minimum": 0, "maximum": 100},
    "risk_level": {"enum": ["Low", "Medium", "High", null]},
    "feedback": {"type": ["string", "null"]},
    "improvement_tips": {"type": ["string", "null"]},
    "missing_citations": {"type": ["string", "null"]}
  }
}`

var compiledAnalysisSchema = jsonschema.MustCompileString("analysis.json", analysisSchema)

// ValidateAnalysis checks a raw analysis payload against the expected shape.
func ValidateAnalysis(raw []byte) error {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("failed to decode analysis for validation: %w", err)
	}
	if err := compiledAnalysisSchema.Validate(doc); err != nil {
		return fmt.Errorf("analysis does not match schema: %w", err)
	}
	return nil
}
