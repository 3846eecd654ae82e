package diag

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReportDefaultsToErrorSeverity(t *testing.T) {
	rep := New(TypeMismatch, "check", nil, "mismatch: %s", "i64")
	assert.Equal(t, SeverityError, rep.Severity)
	assert.Equal(t, "mismatch: i64", rep.Message)
}

func TestWarnDowngradesSeverity(t *testing.T) {
	rep := New(ExhaustivenessFailure, "check", nil, "no catch-all").Warn()
	assert.Equal(t, SeverityWarning, rep.Severity)
}

func TestReporterHasErrorsIgnoresWarnings(t *testing.T) {
	r := NewReporter()
	r.Report(New(ExhaustivenessFailure, "check", nil, "advisory").Warn())
	assert.False(t, r.HasErrors())
	assert.Len(t, r.Warnings(), 1)

	r.Report(New(TypeMismatch, "check", nil, "real error"))
	assert.True(t, r.HasErrors())
	assert.Len(t, r.Warnings(), 1)
}

func TestReporterFatalSetsHalted(t *testing.T) {
	r := NewReporter()
	assert.False(t, r.Halted())
	r.Fatal(New(MissingBuiltin, "resolve", nil, "std.string.String missing"))
	assert.True(t, r.Halted())
	assert.True(t, r.HasErrors())
}

func TestReportToJSONRoundTrips(t *testing.T) {
	rep := New(UnresolvedReference, "resolve", &Location{File: "a.tc", Line: 3, Column: 5}, "undefined name %q", "x")
	js, err := rep.ToJSON(true)
	require.NoError(t, err)

	var decoded Report
	require.NoError(t, json.Unmarshal([]byte(js), &decoded))
	assert.Equal(t, rep.Code, decoded.Code)
	assert.Equal(t, rep.Location.File, decoded.Location.File)
}

func TestAsReportExtractsFromErrChain(t *testing.T) {
	rep := New(DuplicateSymbol, "resolve", nil, "duplicate x")
	err := rep.Err()
	got, ok := AsReport(err)
	require.True(t, ok)
	assert.Equal(t, rep, got)
}

func TestIsFatalOnlyForRegisteredCodes(t *testing.T) {
	assert.True(t, IsFatal(MissingBuiltin))
	assert.True(t, IsFatal(UnresolvedReference))
	assert.False(t, IsFatal(TypeMismatch))
}
