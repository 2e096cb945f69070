package extract

import (
	"fmt"

	"courseplan/internal/columns"
)

// Tag is the outcome of trying one candidate encoding.
type Tag int

const (
	// DecodeFailure means the bytes or the CSV syntax were invalid under the
	// candidate, or the label has no decoder.
	DecodeFailure Tag = iota + 1
	// ColumnsNotFound means the text decoded but the header lacks a code or
	// name column.
	ColumnsNotFound
	Success
)

func (t Tag) String() string {
	switch t {
	case DecodeFailure:
		return "decode_failure"
	case ColumnsNotFound:
		return "columns_not_found"
	case Success:
		return "success"
	default:
		return fmt.Sprintf("tag(%d)", int(t))
	}
}

// MarshalText renders the tag name in JSON output.
func (t Tag) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Attempt records one candidate encoding and why it was accepted or rejected.
type Attempt struct {
	Encoding string          `json:"encoding"`
	Tag      Tag             `json:"result"`
	Columns  columns.Indices `json:"columns"`
	Header   []string        `json:"header,omitempty"`
	Detail   string          `json:"detail,omitempty"`
}

// Rejected reports whether the extractor moved past this candidate.
func (a Attempt) Rejected() bool {
	return a.Tag != Success
}
