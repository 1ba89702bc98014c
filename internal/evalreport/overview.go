package evalreport

// Options controls the derived displays of an Overview.
type Options struct {
	PreviewLimit  int
	PreviewWidth  int
	TokensPerCase int
	Views         []Rule
}

// DefaultOptions returns the stock display settings.
func DefaultOptions() Options {
	return Options{
		PreviewLimit:  DefaultPreviewLimit,
		PreviewWidth:  DefaultPreviewWidth,
		TokensPerCase: DefaultTokensPerCase,
		Views:         DefaultViews(),
	}
}

// Overview is everything a dashboard renders for one report snapshot.
type Overview struct {
	Available       bool                `json:"available" yaml:"available"`
	Source          string              `json:"source" yaml:"source"`
	Reason          string              `json:"reason,omitempty" yaml:"reason,omitempty"`
	Metadata        Metadata            `json:"metadata" yaml:"metadata"`
	OverallPassRate string              `json:"overallPassRate" yaml:"overallPassRate"`
	TotalCases      int                 `json:"totalCases" yaml:"totalCases"`
	TokensProcessed int                 `json:"tokensProcessed" yaml:"tokensProcessed"`
	FailureCount    int                 `json:"failureCount" yaml:"failureCount"`
	Categories      []CategoryAggregate `json:"categories" yaml:"categories"`
	Preview         []TestCase          `json:"preview" yaml:"preview"`
	Failures        []TestCase          `json:"failures" yaml:"failures"`
	Views           []ViewSummary       `json:"views" yaml:"views"`
}

// ViewSummary is one analysis view with its untruncated failure log.
type ViewSummary struct {
	Name       string              `json:"name" yaml:"name"`
	Title      string              `json:"title" yaml:"title"`
	Total      int                 `json:"total" yaml:"total"`
	PassRate   int                 `json:"passRate" yaml:"passRate"`
	Categories []CategoryAggregate `json:"categories" yaml:"categories"`
	Failures   []TestCase          `json:"failures" yaml:"failures"`
}

// Summarize applies a view to cases.
func Summarize(view Rule, cases []TestCase) ViewSummary {
	matched := view.Filter(cases)
	return ViewSummary{
		Name:       view.Name,
		Title:      view.DisplayTitle(),
		Total:      len(matched),
		PassRate:   PassRate(matched),
		Categories: AggregateScores(matched),
		Failures:   FilterFailed(matched),
	}
}

// BuildOverview derives every dashboard figure from an outcome. An unavailable
// outcome yields the same figures as an empty report.
func BuildOverview(o Outcome, opts Options) Overview {
	if opts.Views == nil {
		opts.Views = DefaultViews()
	}
	cases := o.Cases()
	failures := FilterFailed(cases)
	ov := Overview{
		Available:       o.Available(),
		Source:          o.Source(),
		Metadata:        o.Metadata(),
		OverallPassRate: PassRateLabel(o.Metadata()),
		TotalCases:      len(cases),
		TokensProcessed: TokensProcessed(len(cases), opts.TokensPerCase),
		FailureCount:    len(failures),
		Categories:      AggregateScores(cases),
		Preview:         PreviewFailures(cases, opts.PreviewLimit, opts.PreviewWidth),
		Failures:        failures,
		Views:           make([]ViewSummary, 0, len(opts.Views)),
	}
	if err := o.Reason(); err != nil {
		ov.Reason = err.Error()
	}
	for _, v := range opts.Views {
		ov.Views = append(ov.Views, Summarize(v, cases))
	}
	return ov
}

// View returns the summary named name.
func (ov Overview) View(name string) (ViewSummary, bool) {
	for _, v := range ov.Views {
		if v.Name == name {
			return v, true
		}
	}
	return ViewSummary{}, false
}
