package variable

import (
	"fmt"

	"github.com/mathcrusader/vargen/pkg/constraint"
	"github.com/mathcrusader/vargen/pkg/mverrors"
	"github.com/mathcrusader/vargen/pkg/rng"
	"github.com/mathcrusader/vargen/pkg/testctx"
	"github.com/mathcrusader/vargen/pkg/value"
)

// runGenerate implements the shared base-variable generation loop: mark
// the start of generation, retry attempt() until it succeeds or the
// handler recommends aborting, and roll back any sub-variables
// attempt() generated along the way on every failed try.
//
// attempt should return a *mverrors.GenerationError for a retryable
// failure (an unsatisfiable candidate); any other error is treated as
// fatal and ends generation immediately.
func runGenerate(ctx testctx.ResolverContext, name string, attempt func() (value.Value, error)) (value.Value, error) {
	if err := ctx.Handler().Start(name); err != nil {
		return value.Value{}, err
	}
	for {
		v, err := attempt()
		if err == nil {
			if err := ctx.Handler().Complete(); err != nil {
				return value.Value{}, err
			}
			return v, nil
		}

		genErr, ok := err.(*mverrors.GenerationError)
		if !ok || genErr.Policy == mverrors.RetryPolicyAbort {
			_ = ctx.Handler().Abandon()
			return value.Value{}, err
		}

		rec, herr := ctx.Handler().ReportFailure(genErr.Message)
		if herr != nil {
			return value.Value{}, herr
		}
		for _, n := range rec.VariableNamesToDelete {
			ctx.Store().Unset(n)
		}
		if rec.Policy == mverrors.RetryPolicyAbort {
			_ = ctx.Handler().Abandon()
			return value.Value{}, &mverrors.GenerationError{Name: name, Message: genErr.Message, Policy: mverrors.RetryPolicyAbort}
		}
	}
}

// retry wraps message as a retryable GenerationError for name.
func retry(name, message string) error {
	return &mverrors.GenerationError{Name: name, Message: message, Policy: mverrors.RetryPolicyRetry}
}

// ioValidationError turns a validation failure encountered while
// reading into a positional IOError carrying the cursor's location.
func ioValidationError(ctx testctx.ReaderContext, err error) error {
	line, col := ctx.Cursor().Position()
	return &mverrors.IOError{Line: line, Col: col, Message: err.Error()}
}

func sizeBound(h constraint.SizeHint) int64 {
	switch h {
	case constraint.SizeSmall:
		return constraint.SmallBound
	case constraint.SizeMedium:
		return constraint.MediumBound
	case constraint.SizeLarge:
		return constraint.LargeBound
	default:
		return 0
	}
}

// drawFromIntBundle resolves b's range, Exactly, and OneOf constraints
// under ctx, then draws one value satisfying all of them (size-bias
// narrowing the draw when b's range is otherwise unconstrained and no
// Exactly/OneOf pins it). name identifies the caller for retry
// diagnostics; it need not be a variable with its own handler frame
// (e.g. a Length or NumNodes slot of a larger variable).
func drawFromIntBundle(ctx testctx.ResolverContext, name string, b *constraint.IntBundle) (int64, error) {
	lo, hi, err := b.ResolvedRange(ctx.Lookup)
	if err != nil {
		return 0, err
	}
	return drawFromIntBundleInRange(ctx, name, b, lo, hi)
}

// drawFromIntBundleInRange is drawFromIntBundle, but intersected with
// an externally-derived [lo, hi] (e.g. a Graph's NumEdges range
// tightened by its node count and simple-graph constraints) instead of
// b's own resolved range alone.
func drawFromIntBundleInRange(ctx testctx.ResolverContext, name string, b *constraint.IntBundle, lo, hi int64) (int64, error) {
	if lo > hi {
		return 0, retry(name, fmt.Sprintf("has an empty range [%d, %d]", lo, hi))
	}

	if b.HasExactly() || b.HasOneOf() {
		var candidates []int64
		if n, ok, err := b.ResolvedExactly(ctx.Lookup); err != nil {
			return 0, err
		} else if ok {
			if n >= lo && n <= hi {
				candidates = []int64{n}
			}
		} else {
			options, _, err := b.ResolvedOneOf(ctx.Lookup)
			if err != nil {
				return 0, err
			}
			for _, o := range options {
				if o >= lo && o <= hi {
					candidates = append(candidates, o)
				}
			}
		}
		if len(candidates) == 0 {
			return 0, retry(name, "has no value satisfying both its range and its Exactly/OneOf constraints")
		}
		idx, err := ctx.RNG().IntRange(0, int64(len(candidates)-1))
		if err != nil {
			return 0, err
		}
		return candidates[idx], nil
	}

	bound := sizeBound(b.Size())
	if bound == 0 {
		return ctx.RNG().IntRange(lo, hi)
	}
	return pickWithSizeBias(ctx.RNG(), lo, hi, bound)
}

// pickWithSizeBias draws uniformly from [lo, hi], except when hint
// requests a bias: it narrows the draw to the hinted subrange nearest
// lo when that subrange is strictly smaller than the full range.
func pickWithSizeBias(rnd *rng.Engine, lo, hi int64, bound int64) (int64, error) {
	if hi-lo > bound {
		biasedHi := lo + bound
		if biasedHi < hi {
			return rnd.IntRange(lo, biasedHi)
		}
	}
	return rnd.IntRange(lo, hi)
}
