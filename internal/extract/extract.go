package extract

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"courseplan/internal/charset"
	"courseplan/internal/columns"
	"courseplan/internal/diag"
	"courseplan/internal/logging"
	"courseplan/internal/textutil"
)

// DefaultMaxFileBytes caps how much of one input file is read.
const DefaultMaxFileBytes int64 = 64 << 20

// ErrFileTooLarge is returned when an input exceeds Options.MaxFileBytes.
var ErrFileTooLarge = errors.New("file exceeds size limit")

// DetectFunc guesses the encoding of a byte sample, falling back to the
// given label.
type DetectFunc func(sample []byte, fallback string) charset.Guess

// Options tunes extraction. Zero fields take the package defaults.
type Options struct {
	DefaultLabel string
	Fallbacks    []string
	SampleBytes  int
	MaxFileBytes int64
	Keywords     columns.Keywords
	Detect       DetectFunc
}

// DefaultOptions returns the stock candidate list and column keywords.
func DefaultOptions() Options {
	return Options{
		DefaultLabel: charset.DefaultLabel,
		Fallbacks:    append([]string(nil), charset.DefaultFallbacks...),
		SampleBytes:  charset.DefaultSampleBytes,
		MaxFileBytes: DefaultMaxFileBytes,
		Keywords:     columns.DefaultKeywords(),
	}
}

// Course is a (code, name) pair.
type Course struct {
	Code string `json:"course_no"`
	Name string `json:"course_name"`
}

// Association says a major offers a course.
type Association struct {
	Major string `json:"major_name"`
	Code  string `json:"course_no"`
}

// Result is everything one file contributed.
type Result struct {
	Path     string          `json:"path"`
	Guess    charset.Guess   `json:"guess"`
	Encoding string          `json:"encoding,omitempty"`
	Columns  columns.Indices `json:"columns"`
	Attempts []Attempt       `json:"attempts"`
	// Courses holds each code once, in first-seen order.
	Courses []Course `json:"courses"`
	// Pairs keeps duplicates from repeated rows.
	Pairs []Association `json:"pairs"`
	// Majors lists distinct majors in first-seen order.
	Majors  []string `json:"majors"`
	Rows    int      `json:"rows"`
	Skipped int      `json:"skipped"`
}

// OK reports whether some candidate encoding succeeded.
func (r Result) OK() bool {
	return r.Encoding != ""
}

// Extractor runs the candidate loop for each file handed to it.
type Extractor struct {
	opts   Options
	mapper *columns.Mapper
	logger *slog.Logger
}

// New builds an Extractor. A nil logger discards output.
func New(opts Options, logger *slog.Logger) *Extractor {
	defaults := DefaultOptions()
	if strings.TrimSpace(opts.DefaultLabel) == "" {
		opts.DefaultLabel = defaults.DefaultLabel
	}
	if opts.Fallbacks == nil {
		opts.Fallbacks = defaults.Fallbacks
	}
	if opts.SampleBytes <= 0 {
		opts.SampleBytes = defaults.SampleBytes
	}
	if opts.MaxFileBytes <= 0 {
		opts.MaxFileBytes = defaults.MaxFileBytes
	}
	if len(opts.Keywords.Code) == 0 && len(opts.Keywords.Name) == 0 && len(opts.Keywords.Major) == 0 {
		opts.Keywords = defaults.Keywords
	}
	if opts.Detect == nil {
		opts.Detect = charset.DetectWithDefault
	}
	return &Extractor{
		opts:   opts,
		mapper: columns.NewMapper(opts.Keywords),
		logger: logging.NewComponentLogger(logger, "extract"),
	}
}

// ExtractFile reads path and extracts it. The error is non-nil only when the
// file cannot be read at all; decoding problems land in log and in the
// returned attempts.
func (e *Extractor) ExtractFile(path string, log *diag.Log) (Result, error) {
	data, err := e.readFile(path)
	if err != nil {
		return Result{Path: path}, err
	}
	return e.Extract(path, data, log), nil
}

func (e *Extractor) readFile(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, e.opts.MaxFileBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	if int64(len(data)) > e.opts.MaxFileBytes {
		return nil, fmt.Errorf("%s: %w (%d bytes)", path, ErrFileTooLarge, e.opts.MaxFileBytes)
	}
	return data, nil
}

// Extract runs the candidate loop over data already in memory. name labels
// warnings and log lines.
func (e *Extractor) Extract(name string, data []byte, log *diag.Log) Result {
	result := Result{Path: name, Columns: columns.Unresolved()}
	result.Guess = e.opts.Detect(charset.Sample(data, e.opts.SampleBytes), e.opts.DefaultLabel)
	e.logger.Debug("encoding guess",
		logging.String(logging.FieldFile, name),
		logging.String(logging.FieldEncoding, result.Guess.Label),
		logging.Int("confidence", result.Guess.Confidence),
		logging.Bool("detected", result.Guess.Detected),
		logging.Int64("bytes", int64(len(data))),
	)

	for _, label := range charset.Candidates(result.Guess, e.opts.Fallbacks) {
		attempt, records := e.try(label, data)
		result.Attempts = append(result.Attempts, attempt)
		if attempt.Rejected() {
			e.logger.Debug("candidate rejected",
				logging.String(logging.FieldFile, name),
				logging.String(logging.FieldEncoding, label),
				logging.String("result", attempt.Tag.String()),
				logging.String("detail", attempt.Detail),
			)
			if attempt.Tag == DecodeFailure {
				log.DecodeFailure(name, label, attempt.Detail)
			}
			continue
		}
		result.Encoding = label
		result.Columns = attempt.Columns
		e.collect(&result, records, log)
		e.logger.Info("file extracted",
			logging.String(logging.FieldFile, name),
			logging.String(logging.FieldEncoding, label),
			logging.Int("rows", result.Rows),
			logging.Int("courses", len(result.Courses)),
			logging.Int("pairs", len(result.Pairs)),
			logging.Int("skipped", result.Skipped),
		)
		return result
	}

	log.DecodeFailure(name, "", fmt.Sprintf("no usable encoding among %d candidates", len(result.Attempts)))
	return result
}

// Inspect runs every candidate without stopping at the first success and
// without extracting rows.
func (e *Extractor) Inspect(path string) (Result, error) {
	data, err := e.readFile(path)
	if err != nil {
		return Result{Path: path, Columns: columns.Unresolved()}, err
	}
	result := Result{Path: path, Columns: columns.Unresolved()}
	result.Guess = e.opts.Detect(charset.Sample(data, e.opts.SampleBytes), e.opts.DefaultLabel)
	for _, label := range charset.Candidates(result.Guess, e.opts.Fallbacks) {
		attempt, _ := e.try(label, data)
		result.Attempts = append(result.Attempts, attempt)
		if attempt.Tag == Success && result.Encoding == "" {
			result.Encoding = label
			result.Columns = attempt.Columns
		}
	}
	return result, nil
}

type record struct {
	line  int
	cells []string
}

// try decodes data under label and maps the header. Records are returned
// only on Success.
func (e *Extractor) try(label string, data []byte) (Attempt, []record) {
	attempt := Attempt{Encoding: label, Columns: columns.Unresolved()}

	text, err := charset.Decode(label, data)
	if err != nil {
		attempt.Tag = DecodeFailure
		attempt.Detail = err.Error()
		return attempt, nil
	}
	records, err := readRecords(text)
	if err != nil {
		attempt.Tag = DecodeFailure
		attempt.Detail = err.Error()
		return attempt, nil
	}
	if len(records) == 0 || blankRow(records[0].cells) {
		attempt.Tag = ColumnsNotFound
		attempt.Detail = "empty header"
		return attempt, nil
	}

	header := records[0].cells
	attempt.Header = header
	attempt.Columns = e.mapper.Map(header)
	if !attempt.Columns.Usable() {
		attempt.Tag = ColumnsNotFound
		attempt.Detail = missingColumns(attempt.Columns)
		return attempt, nil
	}
	attempt.Tag = Success
	return attempt, records[1:]
}

func readRecords(text string) ([]record, error) {
	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var records []record
	for {
		cells, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return nil, fmt.Errorf("parse csv: %w", err)
		}
		line, _ := reader.FieldPos(0)
		records = append(records, record{line: line, cells: cells})
	}
}

func blankRow(cells []string) bool {
	for _, cell := range cells {
		if textutil.TrimCell(cell) != "" {
			return false
		}
	}
	return true
}

func missingColumns(ix columns.Indices) string {
	var missing []string
	if ix.Code == columns.NotFound {
		missing = append(missing, columns.CategoryCode.String())
	}
	if ix.Name == columns.NotFound {
		missing = append(missing, columns.CategoryName.String())
	}
	return "no " + strings.Join(missing, " or ") + " column in header"
}

// collect applies the row rules to records decoded under the winning
// candidate.
func (e *Extractor) collect(result *Result, records []record, log *diag.Log) {
	ix := result.Columns
	need := ix.MaxRequired()
	names := make(map[string]string)
	seenMajors := make(map[string]struct{})

	for _, rec := range records {
		result.Rows++
		if len(rec.cells) <= need {
			result.Skipped++
			log.SkippedRow(result.Path, rec.line, len(rec.cells), need+1)
			continue
		}

		code := textutil.TrimCell(rec.cells[ix.Code])
		name := textutil.TrimCell(rec.cells[ix.Name])
		if code != "" && name != "" {
			if existing, ok := names[code]; ok {
				if existing != name {
					log.Conflict(result.Path, code, existing, name)
				}
			} else {
				names[code] = name
				result.Courses = append(result.Courses, Course{Code: code, Name: name})
			}
		}

		if !ix.HasMajor() || code == "" {
			continue
		}
		cell := textutil.TrimCell(rec.cells[ix.Major])
		if cell == "" {
			continue
		}
		for _, major := range SplitMajors(cell) {
			result.Pairs = append(result.Pairs, Association{Major: major, Code: code})
			if _, ok := seenMajors[major]; !ok {
				seenMajors[major] = struct{}{}
				result.Majors = append(result.Majors, major)
			}
		}
	}
}
