package handlers

import (
	"fmt"

	"asapcut/config"

	"github.com/Knetic/govaluate"
)

// allocationFor computes the yearly allocation for an association from its
// member count. The rule is a configurable expression (default
// "Members * 500 * 12", the fixed monthly rate over twelve months).
func allocationFor(members int) (int64, error) {
	expression, err := govaluate.NewEvaluableExpression(config.AllocationFormula())
	if err != nil {
		return 0, fmt.Errorf("invalid allocation formula: %w", err)
	}

	result, err := expression.Evaluate(map[string]interface{}{
		"Members": float64(members),
	})
	if err != nil {
		return 0, fmt.Errorf("evaluate allocation formula: %w", err)
	}

	value, ok := result.(float64)
	if !ok {
		return 0, fmt.Errorf("allocation formula did not produce a number")
	}
	return int64(value), nil
}
