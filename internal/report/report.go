// Package report turns a filtered transaction set and its aggregate summary
// into exportable documents. Renderers are pure byte-stream producers: they
// never touch the filesystem or the network, callers persist or stream the
// result. A failed render returns ErrRender-wrapped errors and no partial
// output.
package report

import (
	"errors"
	"fmt"
	"strings"

	"fintrack/internal/core"
)

// ErrRender marks document-generation failures. Exports are not retried
// automatically; the caller may retry the whole request.
var ErrRender = errors.New("render failed")

// columns shared by every tabular export, matching the CSV header order.
var columns = []string{"Date", "Type", "Category", "Description", "Amount"}

const dateLayout = "2006-01-02"

// titleCase capitalizes a transaction type for human-readable documents
// ("expense" -> "Expense"). CSV keeps the raw lowercase form.
func titleCase(t core.TxType) string {
	s := string(t)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func renderErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrRender, op, err)
}
