package sys

import "golang.org/x/exp/constraints"

func ConditionalOperator[T any](condition bool, res1, res2 T) T {
	if condition {
		return res1
	}
	return res2
}

// BoolToInt encodes a flag the way NGX stores booleans: 1 or 0.
func BoolToInt[T constraints.Integer](b bool) T {
	if b {
		return 1
	}
	return 0
}

// IntToBool decodes an NGX boolean. Only 1 is true.
func IntToBool[T constraints.Integer](v T) bool {
	return v == 1
}
