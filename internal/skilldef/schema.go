package skilldef

// sourceSchema is the JSON schema every skill source document must satisfy.
var sourceSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"skills": map[string]any{
			"type":  "array",
			"items": skillSchema,
		},
	},
	"required":             []any{"skills"},
	"additionalProperties": false,
}

var (
	bedPositionEnum  = []any{"Standing", "Back", "Stomach", "Seated", "HandsAndKnees"}
	bodyPositionEnum = []any{"Straight", "Tuck", "Pike"}
)

var skillSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"name": map[string]any{
			"type":      "string",
			"minLength": 1,
		},
		"startingPosition": map[string]any{
			"type": "string",
			"enum": bedPositionEnum,
		},
		"endingPosition": map[string]any{
			"type": "string",
			"enum": bedPositionEnum,
		},
		"flips": map[string]any{
			"type":    "number",
			"minimum": 0,
		},
		"twists": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":    "number",
				"minimum": 0,
			},
		},
		"position": map[string]any{
			"type": "string",
			"enum": bodyPositionEnum,
		},
		"possiblePositions": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "string",
				"enum": bodyPositionEnum,
			},
			"minItems":    1,
			"uniqueItems": true,
		},
		"isBackSkill": map[string]any{
			"type": "boolean",
		},
	},
	"required":             []any{"name", "startingPosition", "endingPosition", "flips", "twists", "position", "isBackSkill"},
	"additionalProperties": false,
}
