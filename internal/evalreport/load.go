// internal/evalreport/load.go
package evalreport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/mwiater/evalboard/internal/logging"
)

// DefaultReportPath is where the upstream runner writes its latest report,
// relative to the working directory.
const DefaultReportPath = "../reports/latest_evaluation_run.json"

var (
	// ErrSourceUnavailable reports that the source could not be read at all.
	ErrSourceUnavailable = errors.New("report source unavailable")
	// ErrMalformedSource reports that the source was read but is not a valid report.
	ErrMalformedSource = errors.New("report source malformed")
)

// Source yields the raw bytes of a report.
type Source interface {
	Name() string
	ReadReport(ctx context.Context) ([]byte, error)
}

// FileSource reads a report from disk on every call.
type FileSource struct {
	Path string
}

// NewFileSource returns a FileSource for path, falling back to DefaultReportPath.
func NewFileSource(path string) FileSource {
	if path == "" {
		path = DefaultReportPath
	}
	return FileSource{Path: path}
}

// Name returns the file path.
func (s FileSource) Name() string { return s.Path }

// ReadReport reads the whole file.
func (s FileSource) ReadReport(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(s.Path)
}

// BytesSource serves a fixed document, mostly for tests and piped input.
type BytesSource struct {
	Label string
	Data  []byte
}

// Name returns the label, or "bytes".
func (s BytesSource) Name() string {
	if s.Label == "" {
		return "bytes"
	}
	return s.Label
}

// ReadReport returns a copy of Data.
func (s BytesSource) ReadReport(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.Data == nil {
		return nil, os.ErrNotExist
	}
	return append([]byte(nil), s.Data...), nil
}

// Outcome is the result of a Load: either a report or the reason there is none.
type Outcome struct {
	source string
	report *Report
	reason error
}

// Loaded wraps a successfully parsed report.
func Loaded(source string, r Report) Outcome {
	return Outcome{source: source, report: &r}
}

// Unavailable records why no report could be produced.
func Unavailable(source string, reason error) Outcome {
	if reason == nil {
		reason = ErrSourceUnavailable
	}
	return Outcome{source: source, reason: reason}
}

// Source names where the outcome came from.
func (o Outcome) Source() string { return o.source }

// Available reports whether a report was loaded.
func (o Outcome) Available() bool { return o.report != nil }

// Report returns the loaded report and true, or nil and false.
func (o Outcome) Report() (*Report, bool) { return o.report, o.report != nil }

// Reason returns why the report is unavailable, or nil when it loaded.
func (o Outcome) Reason() error { return o.reason }

// Cases returns the loaded results, or an empty slice when unavailable.
func (o Outcome) Cases() []TestCase {
	if o.report == nil || o.report.Results == nil {
		return []TestCase{}
	}
	return o.report.Results
}

// Status names the outcome for logs and metrics: "Loaded" or the failure kind.
func (o Outcome) Status() string {
	if o.Available() {
		return "Loaded"
	}
	return failureKind(o.reason)
}

// Metadata returns the report metadata, or the zero value when unavailable.
func (o Outcome) Metadata() Metadata {
	if o.report == nil {
		return Metadata{}
	}
	return o.report.Metadata
}

// Load reads and validates one report snapshot from src. It never fails: read
// and parse problems are logged and returned as an Unavailable outcome.
func Load(ctx context.Context, src Source) Outcome {
	name := src.Name()
	report, err := load(ctx, src)
	if err != nil {
		logging.LogLoadFailure(name, failureKind(err), err)
		return Unavailable(name, err)
	}
	if dup := duplicateIDs(report.Results); len(dup) > 0 {
		logging.LogEvent("[REPORT] %s contains duplicate test ids: %v", name, dup)
	}
	logging.LogEvent("[REPORT] loaded %d test cases from %s", len(report.Results), name)
	return Loaded(name, report)
}

func load(ctx context.Context, src Source) (Report, error) {
	raw, err := src.ReadReport(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, src.Name(), err)
	}
	if err := validateShape(raw); err != nil {
		return Report{}, err
	}

	var report Report
	if err := json.Unmarshal(raw, &report); err != nil {
		return Report{}, fmt.Errorf("%w: %v", ErrMalformedSource, err)
	}
	if report.Results == nil {
		report.Results = []TestCase{}
	}
	return report, nil
}

func failureKind(err error) string {
	switch {
	case errors.Is(err, ErrMalformedSource):
		return "MalformedSource"
	case errors.Is(err, ErrSourceUnavailable):
		return "SourceUnavailable"
	default:
		return "Unknown"
	}
}

func duplicateIDs(cases []TestCase) []string {
	seen := make(map[string]int, len(cases))
	var dup []string
	for _, c := range cases {
		seen[c.TestID]++
		if seen[c.TestID] == 2 {
			dup = append(dup, c.TestID)
		}
	}
	return dup
}
