package engine

import (
	"fmt"

	"github.com/adcflow/adcflow/pkg/conftree"
)

// Phase is one of the five ordered buckets a configuration field is
// scheduled into. Phases execute strictly in declaration order; no task in
// a phase begins before every task in the previous phase has resolved.
type Phase int

const (
	// PhaseNaming writes the node's "name" field and extends the working
	// path for every later task in the same invocation.
	PhaseNaming Phase = iota

	// PhaseDisable applies administrative disablement early: disabling a
	// node before its other attributes are set is safe.
	PhaseDisable

	// PhaseGeneral applies every ordinary scalar attribute.
	PhaseGeneral

	// PhaseSubtree applies nested child nodes by recursive scheduling.
	PhaseSubtree

	// PhaseEnable applies administrative enablement last: enabling a node
	// after all of its attributes are in place is safe.
	PhaseEnable

	numPhases
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseNaming:
		return "naming"
	case PhaseDisable:
		return "disable"
	case PhaseGeneral:
		return "general"
	case PhaseSubtree:
		return "subtree"
	case PhaseEnable:
		return "enable"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// fieldName is the one field with naming semantics. Once written, every
// sibling field addresses parent/name rather than parent.
const fieldName = "name"

// subtreeFields is the declared set of subtree-bearing field names. Only
// these fields may carry a nested object value.
var subtreeFields = map[string]struct{}{
	"serviceHttp":   {},
	"serviceTcp":    {},
	"healthMonitor": {},
	"sslProfile":    {},
}

// adminStatusFields is the declared set of administrative-status fields.
// The rule is deliberately narrow: only the two literal values below split
// a status field out of the General phase, and only for these fields.
var adminStatusFields = map[string]struct{}{
	"adminStatus": {},
}

const (
	adminEnabled  = "1"
	adminDisabled = "0"
)

// classify assigns a field to its phase. A nested object on a field outside
// the declared subtree set, or a scalar on a field inside it, is malformed
// input and yields a validation error before any I/O.
func classify(field string, v conftree.Value) (Phase, error) {
	if _, ok := subtreeFields[field]; ok {
		if !v.IsObject() {
			return 0, NewValidationError(
				fmt.Sprintf("field %q requires a nested object, got scalar %q", field, v.Scalar()),
			).WithField(field)
		}
		return PhaseSubtree, nil
	}
	if v.IsObject() {
		return 0, NewValidationError(
			fmt.Sprintf("field %q does not accept a nested object", field),
		).WithField(field)
	}
	if field == fieldName {
		return PhaseNaming, nil
	}
	if _, ok := adminStatusFields[field]; ok {
		switch v.Scalar() {
		case adminEnabled:
			return PhaseEnable, nil
		case adminDisabled:
			return PhaseDisable, nil
		}
		// Any other literal is treated as an ordinary attribute.
	}
	return PhaseGeneral, nil
}
