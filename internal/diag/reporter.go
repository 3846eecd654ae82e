package diag

// Reporter is the single sink every phase reports diagnostics through. It
// accumulates reports so a run can surface multiple diagnostics, and tracks
// whether a fatal error was seen so the caller can halt checking, per
// spec.md §7 ("errors are reported ... not thrown upward; checking
// continues where possible ... truly fatal errors halt the checker").
type Reporter struct {
	reports []*Report
	fatal   bool
}

// NewReporter returns an empty Reporter.
func NewReporter() *Reporter {
	return &Reporter{}
}

// Report records a diagnostic and continues.
func (r *Reporter) Report(rep *Report) {
	r.reports = append(r.reports, rep)
}

// Fatal records a diagnostic and marks the run as halted. Use for
// MissingBuiltin and for UnresolvedReference on a top-level declared type;
// all other UnresolvedReference occurrences should go through Report so
// checking can continue and surface further diagnostics.
func (r *Reporter) Fatal(rep *Report) {
	r.reports = append(r.reports, rep)
	r.fatal = true
}

// Halted reports whether a Fatal diagnostic has been recorded.
func (r *Reporter) Halted() bool {
	return r.fatal
}

// Reports returns every diagnostic recorded so far, in order.
func (r *Reporter) Reports() []*Report {
	return r.reports
}

// HasErrors reports whether any error-severity diagnostic was recorded;
// advisory Warning reports (spec.md's non-fatal exhaustiveness advisory for
// match statements) don't count.
func (r *Reporter) HasErrors() bool {
	for _, rep := range r.reports {
		if rep.Severity != SeverityWarning {
			return true
		}
	}
	return false
}

// Warnings returns only the advisory reports recorded so far.
func (r *Reporter) Warnings() []*Report {
	var out []*Report
	for _, rep := range r.reports {
		if rep.Severity == SeverityWarning {
			out = append(out, rep)
		}
	}
	return out
}
