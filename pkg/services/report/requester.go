// Package report builds the payload for the external narrative-report
// collaborator and carries the HTTP client that talks to it. The wording
// of the generated text is entirely the collaborator's concern; this
// package only guarantees the statistical summary and row sample it is
// fed.
package report

import (
	"context"
	"errors"
)

// ErrReportFailed wraps any transport, timeout or non-2xx failure from
// the text-generation collaborator. There is no automatic retry; the
// caller re-triggers if it wants another attempt.
var ErrReportFailed = errors.New("report generation failed")

// Requester is the boundary to the external text-generation collaborator.
type Requester interface {
	Generate(ctx context.Context, payload Payload) (string, error)
}
