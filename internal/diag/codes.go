// Package diag provides structured diagnostics for the type checker and
// semantic resolver: a stable error-code registry plus the report shape
// every phase returns through.
package diag

// Error codes, one per error kind in spec.md §7. Grouped TC### like the
// teacher's TC/ELB/LNK taxonomy, since every one of these originates in the
// checker or resolver phase.
const (
	UnresolvedReference = "TC001"
	TypeMismatch        = "TC002"
	ArityMismatch       = "TC003"
	IllegalGenericUse   = "TC004"
	IllegalNullableTarget = "TC005"
	DuplicateSymbol     = "TC006"
	IllegalPattern      = "TC007"
	ControlFlowMisuse   = "TC008"
	ExhaustivenessFailure = "TC009"
	MissingBuiltin      = "TC010"
	Unsupported         = "TC011"
)

// ErrorInfo describes one error code for documentation and tooling.
type ErrorInfo struct {
	Code        string
	Phase       string
	Category    string
	Description string
}

// Registry maps every code to its descriptive info, mirroring the teacher's
// ErrorRegistry so the CLI's `explain <code>` command and docs generation
// have one source of truth.
var Registry = map[string]ErrorInfo{
	UnresolvedReference:   {UnresolvedReference, "resolve", "reference", "Reference could not be resolved to a declaration"},
	TypeMismatch:          {TypeMismatch, "check", "type", "Matcher rejected expected vs. got type"},
	ArityMismatch:         {ArityMismatch, "check", "arity", "Generic or constructor argument count disagrees"},
	IllegalGenericUse:     {IllegalGenericUse, "resolve", "generics", "Type arguments supplied where generics are illegal"},
	IllegalNullableTarget: {IllegalNullableTarget, "check", "nullability", "Null assigned where the hint is non-nullable"},
	DuplicateSymbol:       {DuplicateSymbol, "resolve", "scope", "Field/attribute/method/constructor name collision"},
	IllegalPattern:        {IllegalPattern, "pattern", "shape", "Pattern kind rejects the scrutinee kind"},
	ControlFlowMisuse:     {ControlFlowMisuse, "check", "control-flow", "return/break/continue outside the required scope"},
	ExhaustivenessFailure: {ExhaustivenessFailure, "pattern", "exhaustiveness", "Match-expression missing a trailing wildcard, or has no arms"},
	MissingBuiltin:        {MissingBuiltin, "resolve", "builtin", "A required standard-library type could not be loaded"},
	Unsupported:           {Unsupported, "check", "unsupported", "Construct has no behavioral contract yet (e.g. char literals)"},
}

// IsFatal reports whether an error code halts checking outright rather than
// being accumulated alongside other diagnostics, per spec.md §7.
func IsFatal(code string) bool {
	return code == MissingBuiltin || code == UnresolvedReference
}
