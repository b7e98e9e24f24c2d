package types

import (
	"encoding/json"
	"fmt"

	"github.com/arthur-debert/srcbundle/pkg/errors"
)

// Diagnostic reasons for files that were noted but not packaged
const (
	ReasonFiltered = "filtered"
	ReasonIgnored  = "ignored"
	ReasonExcluded = "excluded"
	ReasonSymlink  = "symlink"
	ReasonEmpty    = "empty"
)

// Diagnostic records one item a run skipped or failed on. Runs collect
// diagnostics and keep going; only structural errors abort.
type Diagnostic struct {
	// Path is the bundle-relative path, always "/"-separated
	Path string `json:"path"`
	// Code is empty for informational notes such as filtered files
	Code   errors.ErrorCode `json:"code,omitempty"`
	Reason string           `json:"reason"`
	Err    error            `json:"-"`
}

// IsError reports whether the diagnostic carries an error code
func (d Diagnostic) IsError() bool {
	return d.Code != ""
}

func (d Diagnostic) String() string {
	if d.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", d.Path, d.Reason, d.Err)
	}
	return fmt.Sprintf("%s: %s", d.Path, d.Reason)
}

// NewErrorDiagnostic builds a diagnostic from a failed item
func NewErrorDiagnostic(path string, code errors.ErrorCode, reason string, err error) Diagnostic {
	return Diagnostic{Path: path, Code: code, Reason: reason, Err: err}
}

// MarshalJSON adds the cause message, which error values cannot carry
func (d Diagnostic) MarshalJSON() ([]byte, error) {
	type plain Diagnostic
	out := struct {
		plain
		Error string `json:"error,omitempty"`
	}{plain: plain(d)}
	if d.Err != nil {
		out.Error = d.Err.Error()
	}
	return json.Marshal(out)
}
