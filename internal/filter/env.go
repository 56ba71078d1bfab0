package filter

import "github.com/google/cel-go/cel"

// NewBuildingEnv declares the variables a filter expression may reference.
// Attribute values are exposed through the attrs map, so expressions like
// `attrs["forge_points"] > 10.0 && era == "IronAge"` check against the same
// daily-average values the scoring pipeline uses.
func NewBuildingEnv() (*cel.Env, error) {
	env, err := cel.NewEnv(
		// --- Identity ---
		cel.Variable("id", cel.StringType),
		cel.Variable("name", cel.StringType),
		cel.Variable("era", cel.StringType),
		cel.Variable("event", cel.StringType),

		// --- Placement ---
		cel.Variable("size", cel.DoubleType),
		cel.Variable("footprint", cel.DoubleType),
		cel.Variable("road", cel.BoolType),
		cel.Variable("limited", cel.StringType),

		// --- Normalized attributes ---
		cel.Variable("attrs", cel.MapType(cel.StringType, cel.DoubleType)),
	)
	if err != nil {
		return nil, err
	}
	return env, nil
}
