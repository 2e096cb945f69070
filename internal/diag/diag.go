package diag

import (
	"fmt"
	"log/slog"

	"courseplan/internal/logging"
)

// Kind classifies a warning.
type Kind string

const (
	KindConflict            Kind = "conflict"
	KindSkippedRow          Kind = "skipped_row"
	KindUnmappedAssociation Kind = "unmapped_association"
	KindDecodeFailure       Kind = "decode_failure"
	KindMissingFile         Kind = "missing_file"
)

// Kinds lists every warning kind in report order.
func Kinds() []Kind {
	return []Kind{KindConflict, KindSkippedRow, KindUnmappedAssociation, KindDecodeFailure, KindMissingFile}
}

// Warning is one diagnostic record. Fields that do not apply to a kind stay zero.
type Warning struct {
	Kind     Kind   `json:"kind"`
	File     string `json:"file,omitempty"`
	Line     int    `json:"line,omitempty"`
	Encoding string `json:"encoding,omitempty"`
	Code     string `json:"code,omitempty"`
	Major    string `json:"major,omitempty"`
	Existing string `json:"existing,omitempty"`
	Incoming string `json:"incoming,omitempty"`
	Message  string `json:"message"`
}

func (w Warning) String() string {
	switch {
	case w.File != "" && w.Line > 0:
		return fmt.Sprintf("%s: %s:%d: %s", w.Kind, w.File, w.Line, w.Message)
	case w.File != "":
		return fmt.Sprintf("%s: %s: %s", w.Kind, w.File, w.Message)
	default:
		return fmt.Sprintf("%s: %s", w.Kind, w.Message)
	}
}

// Log collects warnings in the order they were raised. The zero value is
// usable and does not log.
type Log struct {
	logger   *slog.Logger
	warnings []Warning
}

// NewLog returns a Log that mirrors records to logger.
func NewLog(logger *slog.Logger) *Log {
	return &Log{logger: logging.NewComponentLogger(logger, "diag")}
}

// Add records w and emits it as a WARN line.
func (l *Log) Add(w Warning) {
	l.warnings = append(l.warnings, w)
	if l.logger == nil {
		return
	}
	attrs := []logging.Attr{logging.String(logging.FieldEventType, string(w.Kind))}
	if w.File != "" {
		attrs = append(attrs, logging.String(logging.FieldFile, w.File))
	}
	if w.Line > 0 {
		attrs = append(attrs, logging.Int(logging.FieldLine, w.Line))
	}
	if w.Encoding != "" {
		attrs = append(attrs, logging.String(logging.FieldEncoding, w.Encoding))
	}
	if w.Code != "" {
		attrs = append(attrs, logging.String("course_no", w.Code))
	}
	if w.Major != "" {
		attrs = append(attrs, logging.String("major", w.Major))
	}
	if w.Existing != "" || w.Incoming != "" {
		attrs = append(attrs, logging.String("existing", w.Existing), logging.String("incoming", w.Incoming))
	}
	attrs = append(attrs, hintFor(w.Kind)...)
	logging.WarnWithContext(l.logger, w.Message, string(w.Kind), attrs...)
}

func hintFor(kind Kind) []logging.Attr {
	switch kind {
	case KindConflict:
		return []logging.Attr{
			logging.String(logging.FieldErrorHint, "reconcile the course name across source files"),
			logging.String(logging.FieldImpact, "first-seen course name kept"),
		}
	case KindSkippedRow:
		return []logging.Attr{
			logging.String(logging.FieldErrorHint, "check the row for missing cells"),
			logging.String(logging.FieldImpact, "row ignored"),
		}
	case KindUnmappedAssociation:
		return []logging.Attr{
			logging.String(logging.FieldErrorHint, "major set and associations disagree"),
			logging.String(logging.FieldImpact, "association not emitted"),
		}
	case KindDecodeFailure:
		return []logging.Attr{
			logging.String(logging.FieldErrorHint, "add the file's encoding to encoding.fallbacks"),
			logging.String(logging.FieldImpact, "candidate encoding rejected"),
		}
	case KindMissingFile:
		return []logging.Attr{
			logging.String(logging.FieldErrorHint, "check the path"),
			logging.String(logging.FieldImpact, "file skipped"),
		}
	default:
		return nil
	}
}

// Conflict records a course code seen with a second, different name.
func (l *Log) Conflict(file, code, existing, incoming string) {
	l.Add(Warning{
		Kind:     KindConflict,
		File:     file,
		Code:     code,
		Existing: existing,
		Incoming: incoming,
		Message:  fmt.Sprintf("course %s has conflicting names %q and %q; keeping %q", code, existing, incoming, existing),
	})
}

// SkippedRow records a row too short to hold every mapped column.
func (l *Log) SkippedRow(file string, line, width, need int) {
	l.Add(Warning{
		Kind:    KindSkippedRow,
		File:    file,
		Line:    line,
		Message: fmt.Sprintf("row has %d cells, need at least %d", width, need),
	})
}

// UnmappedAssociation records a pair whose major has no identifier.
func (l *Log) UnmappedAssociation(major, code string) {
	l.Add(Warning{
		Kind:    KindUnmappedAssociation,
		Code:    code,
		Major:   major,
		Message: fmt.Sprintf("major %q has no id; dropping association with %s", major, code),
	})
}

// MissingCourse records an association whose course code has no course
// row to reference.
func (l *Log) MissingCourse(major, code string) {
	l.Add(Warning{
		Kind:    KindUnmappedAssociation,
		Code:    code,
		Major:   major,
		Message: fmt.Sprintf("course %s has no course row; skipping association with major %q", code, major),
	})
}

// DecodeFailure records a rejected candidate encoding, or with an empty
// label, a file no candidate could read.
func (l *Log) DecodeFailure(file, label, message string) {
	l.Add(Warning{
		Kind:     KindDecodeFailure,
		File:     file,
		Encoding: label,
		Message:  message,
	})
}

// MissingFile records an input or seed path that does not exist.
func (l *Log) MissingFile(file string) {
	l.Add(Warning{
		Kind:    KindMissingFile,
		File:    file,
		Message: "file not found; skipping",
	})
}

// Warnings returns a copy of every recorded warning.
func (l *Log) Warnings() []Warning {
	if l == nil {
		return nil
	}
	return append([]Warning(nil), l.warnings...)
}

// Len reports the number of recorded warnings.
func (l *Log) Len() int {
	if l == nil {
		return 0
	}
	return len(l.warnings)
}

// Count reports how many warnings of kind were recorded.
func (l *Log) Count(kind Kind) int {
	n := 0
	for _, w := range l.Warnings() {
		if w.Kind == kind {
			n++
		}
	}
	return n
}

// ByKind returns the warnings of kind in record order.
func (l *Log) ByKind(kind Kind) []Warning {
	var out []Warning
	for _, w := range l.Warnings() {
		if w.Kind == kind {
			out = append(out, w)
		}
	}
	return out
}

// Counts returns the number of warnings per kind, including zero counts.
func (l *Log) Counts() map[Kind]int {
	counts := make(map[Kind]int, len(Kinds()))
	for _, kind := range Kinds() {
		counts[kind] = 0
	}
	for _, w := range l.Warnings() {
		counts[w.Kind]++
	}
	return counts
}
