package diag

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Location pins a diagnostic to a place in source, mirroring spec.md's
// SymbolLocation: file path, line, column, absolute offset.
type Location struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
	Offset int    `json:"offset"`
}

func (l Location) String() string {
	if l.File == "" {
		return fmt.Sprintf("%d:%d", l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// Report is the canonical structured diagnostic, grounded on the teacher's
// errors.Report (schema/code/phase/message/span/data shape).
type Report struct {
	Schema   string         `json:"schema"`
	Code     string         `json:"code"`
	Phase    string         `json:"phase"`
	Severity string         `json:"severity"`
	Message  string         `json:"message"`
	Location *Location      `json:"location,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
}

// Severity values. A Warning is advisory and never counted by
// Reporter.HasErrors — the match-statement exhaustiveness advisory
// (spec.md's "Supplemented features") is the only current user.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// ReportError wraps a Report as an error so it survives errors.As() unwrapping
// through ordinary Go error-handling code paths.
type ReportError struct {
	Rep *Report
}

func (e *ReportError) Error() string {
	if e.Rep == nil {
		return "unknown diagnostic"
	}
	if e.Rep.Location != nil {
		return fmt.Sprintf("%s: %s: %s", e.Rep.Location, e.Rep.Code, e.Rep.Message)
	}
	return fmt.Sprintf("%s: %s", e.Rep.Code, e.Rep.Message)
}

// AsReport extracts a Report from an error chain.
func AsReport(err error) (*Report, bool) {
	var re *ReportError
	if errors.As(err, &re) {
		return re.Rep, true
	}
	return nil, false
}

// New builds a Report for the given code/phase/location/message.
func New(code, phase string, loc *Location, format string, args ...any) *Report {
	return &Report{
		Schema:   "tcheck.diag/v1",
		Code:     code,
		Phase:    phase,
		Severity: SeverityError,
		Message:  fmt.Sprintf(format, args...),
		Location: loc,
		Data:     map[string]any{},
	}
}

// Warn marks an already-built report as advisory rather than blocking.
func (r *Report) Warn() *Report {
	r.Severity = SeverityWarning
	return r
}

// WithData attaches a structured data field and returns the same report for
// chaining at the call site.
func (r *Report) WithData(key string, value any) *Report {
	r.Data[key] = value
	return r
}

// Err wraps the report as an error.
func (r *Report) Err() error {
	return &ReportError{Rep: r}
}

// ToJSON renders the report deterministically.
func (r *Report) ToJSON(compact bool) (string, error) {
	var data []byte
	var err error
	if compact {
		data, err = json.Marshal(r)
	} else {
		data, err = json.MarshalIndent(r, "", "  ")
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}
