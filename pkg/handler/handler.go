package handler

import (
	"fmt"

	"github.com/mathcrusader/vargen/pkg/mverrors"
)

// Default retry budgets, matched to the native library's stable
// constants so existing variable bundles behave the same under a
// straight port.
const (
	DefaultMaxActiveRetriesPerVariable = 1000
	DefaultMaxTotalRetriesPerVariable  = 100_000
	DefaultMaxTotalGenerateCalls       = 10_000_000
)

// Recommendation tells a caller whether to retry generation, and names
// the variables that were generated (and must now be rolled back)
// since the failing variable's Start.
type Recommendation struct {
	Policy               mverrors.RetryPolicy
	VariableNamesToDelete []string
}

type generationInfo struct {
	name              string
	totalRetryCount   int64
	activeRetryCount  int64
	mostRecentFailure *string
	countAtStart      int
	countAtStartSet   bool
}

// Handler maintains the stack of variables actively being generated.
// Generation must be stack-ordered: a variable's dependencies (or
// sub-variables) start and complete/abandon strictly within its own
// Start/Complete bracket.
type Handler struct {
	maxActiveRetries      int64
	maxTotalRetries       int64
	maxTotalGenerateCalls int64
	totalGenerateCalls    int64

	infos     []*generationInfo
	indexOf   map[string]int
	generated []int // indexes into infos, in completion order
	active    []int // stack of indexes into infos
}

// New returns a Handler with the library's default retry budgets.
func New() *Handler {
	return NewWithBudgets(DefaultMaxActiveRetriesPerVariable, DefaultMaxTotalRetriesPerVariable, DefaultMaxTotalGenerateCalls)
}

// NewWithBudgets returns a Handler with explicit retry budgets.
func NewWithBudgets(maxActiveRetries, maxTotalRetries, maxTotalGenerateCalls int64) *Handler {
	return &Handler{
		maxActiveRetries:      maxActiveRetries,
		maxTotalRetries:       maxTotalRetries,
		maxTotalGenerateCalls: maxTotalGenerateCalls,
		indexOf:               make(map[string]int),
	}
}

func (h *Handler) indexFor(name string) int {
	if idx, ok := h.indexOf[name]; ok {
		return idx
	}
	idx := len(h.infos)
	h.infos = append(h.infos, &generationInfo{name: name})
	h.indexOf[name] = idx
	return idx
}

// Start begins generation of name, pushing it onto the active stack.
// It returns a GenerationError with the Abort policy if name is already
// being generated without having completed or abandoned, which indicates
// a cyclic dependency.
func (h *Handler) Start(name string) error {
	idx := h.indexFor(name)
	info := h.infos[idx]
	if info.countAtStartSet {
		return &mverrors.GenerationError{Name: name, Message: fmt.Sprintf("Cycle found in generation of %q", name), Policy: mverrors.RetryPolicyAbort}
	}
	info.activeRetryCount = 0
	info.countAtStart = len(h.generated)
	info.countAtStartSet = true
	h.active = append(h.active, idx)
	return nil
}

// Complete successfully finishes generation of the active variable,
// popping it from the stack and recording it as generated.
func (h *Handler) Complete() error {
	idx, err := h.popActive("complete")
	if err != nil {
		return err
	}
	h.generated = append(h.generated, idx)
	h.infos[idx].activeRetryCount = 0
	h.infos[idx].countAtStartSet = false
	h.totalGenerateCalls++
	return nil
}

// Abandon gives up on generating the active variable without recording
// it as generated, popping it from the stack.
func (h *Handler) Abandon() error {
	idx, err := h.popActive("abandon")
	if err != nil {
		return err
	}
	h.infos[idx].activeRetryCount = 0
	h.infos[idx].countAtStartSet = false
	return nil
}

func (h *Handler) popActive(verb string) (int, error) {
	if len(h.active) == 0 {
		return 0, &mverrors.ConfigurationError{Site: "handler." + verb, Message: "attempting to " + verb + " generation when none have been started"}
	}
	idx := h.active[len(h.active)-1]
	h.active = h.active[:len(h.active)-1]
	return idx, nil
}

// ReportFailure records a failed generation attempt of the active
// variable. It returns the names of every variable generated since the
// active variable's Start (which the caller must roll back from the
// value store) and whether the caller should retry or abort.
func (h *Handler) ReportFailure(reason string) (Recommendation, error) {
	if len(h.active) == 0 {
		return Recommendation{}, &mverrors.ConfigurationError{Site: "handler.ReportFailure", Message: "attempting to report a failure when none have been started"}
	}
	idx := h.active[len(h.active)-1]
	info := h.infos[idx]
	info.activeRetryCount++
	info.totalRetryCount++
	info.mostRecentFailure = &reason
	h.totalGenerateCalls++

	start := info.countAtStart
	toDelete := make([]string, 0, len(h.generated)-start)
	for i := start; i < len(h.generated); i++ {
		toDelete = append(toDelete, h.infos[h.generated[i]].name)
	}
	h.generated = h.generated[:start]

	policy := mverrors.RetryPolicyRetry
	if info.activeRetryCount > h.maxActiveRetries ||
		info.totalRetryCount > h.maxTotalRetries ||
		h.totalGenerateCalls > h.maxTotalGenerateCalls {
		policy = mverrors.RetryPolicyAbort
	}
	return Recommendation{Policy: policy, VariableNamesToDelete: toDelete}, nil
}

// GetFailureReason returns the most recent failure reason recorded for
// name, and whether one exists.
func (h *Handler) GetFailureReason(name string) (string, bool, error) {
	idx, ok := h.indexOf[name]
	if !ok {
		return "", false, &mverrors.VariableNotFound{Name: name}
	}
	info := h.infos[idx]
	if info.mostRecentFailure == nil {
		return "", false, nil
	}
	return *info.mostRecentFailure, true, nil
}
