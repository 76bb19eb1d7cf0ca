package expr

import (
	"math"

	"github.com/mathcrusader/vargen/pkg/mverrors"
)

func negate(v int64) (int64, error) {
	if v == math.MinInt64 {
		return 0, overflow("unary -", v, 0)
	}
	return -v, nil
}

func addChecked(a, b int64) (int64, error) {
	r := a + b
	if (b > 0 && r < a) || (b < 0 && r > a) {
		return 0, overflow("+", a, b)
	}
	return r, nil
}

func subChecked(a, b int64) (int64, error) {
	r := a - b
	if (b < 0 && r < a) || (b > 0 && r > a) {
		return 0, overflow("-", a, b)
	}
	return r, nil
}

func mulChecked(a, b int64) (int64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	r := a * b
	if r/b != a {
		return 0, overflow("*", a, b)
	}
	return r, nil
}

func divChecked(a, b int64) (int64, error) {
	if b == 0 {
		return 0, &mverrors.EvaluationError{Message: "division by zero"}
	}
	if a == math.MinInt64 && b == -1 {
		return 0, overflow("/", a, b)
	}
	return a / b, nil
}

func modChecked(a, b int64) (int64, error) {
	if b == 0 {
		return 0, &mverrors.EvaluationError{Message: "modulo by zero"}
	}
	if a == math.MinInt64 && b == -1 {
		return 0, nil
	}
	return a % b, nil
}

func powChecked(base, exp int64) (int64, error) {
	if exp < 0 {
		return 0, &mverrors.EvaluationError{Message: "negative exponent is not supported"}
	}
	var result int64 = 1
	for i := int64(0); i < exp; i++ {
		next, err := mulChecked(result, base)
		if err != nil {
			return 0, err
		}
		result = next
	}
	return result, nil
}

func overflow(op string, a, b int64) error {
	return &mverrors.EvaluationError{Message: "overflow evaluating " + op + " on operands"}
}

func callFunction(name string, args []int64) (int64, error) {
	switch name {
	case "abs":
		if len(args) != 1 {
			return 0, &mverrors.EvaluationError{Message: "abs takes exactly one argument"}
		}
		v := args[0]
		if v == math.MinInt64 {
			return 0, overflow("abs", v, 0)
		}
		if v < 0 {
			return -v, nil
		}
		return v, nil
	case "min":
		if len(args) == 0 {
			return 0, &mverrors.EvaluationError{Message: "min requires at least one argument"}
		}
		m := args[0]
		for _, v := range args[1:] {
			if v < m {
				m = v
			}
		}
		return m, nil
	case "max":
		if len(args) == 0 {
			return 0, &mverrors.EvaluationError{Message: "max requires at least one argument"}
		}
		m := args[0]
		for _, v := range args[1:] {
			if v > m {
				m = v
			}
		}
		return m, nil
	default:
		return 0, &mverrors.EvaluationError{Message: "unknown function " + name}
	}
}
