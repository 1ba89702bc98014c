// internal/render/html.go
package render

import (
	"bytes"
	"encoding/json"
	"html/template"

	"github.com/mwiater/evalboard/internal/evalreport"
)

// DashboardData is the view model of the HTML dashboard.
type DashboardData struct {
	Title        string
	Overview     evalreport.Overview
	TokensLabel  string
	OverviewJSON template.JS
	AllClear     string
	NoFailures   string
	NoCategories string
	NoData       string
}

// HTML renders a standalone dashboard page for the overview. The overview is
// also embedded as JSON so the page can offer it for download.
func HTML(ov evalreport.Overview) (string, error) {
	payload, err := json.Marshal(ov)
	if err != nil {
		return "", err
	}

	viewModel := DashboardData{
		Title:        "evalboard: Evaluation Report",
		Overview:     ov,
		TokensLabel:  formatCount(ov.TokensProcessed),
		OverviewJSON: template.JS(payload),
		AllClear:     AllClearMessage,
		NoFailures:   NoFailuresMessage,
		NoCategories: NoCategoriesMessage,
		NoData:       NoDataMessage,
	}

	var buf bytes.Buffer
	if err := dashboardTemplate.Execute(&buf, viewModel); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var dashboardTemplate = template.Must(template.New("evalboard-dashboard").Funcs(template.FuncMap{
	"code": evalreport.DisplayCode,
}).Parse(dashboardTemplateHTML))

const dashboardTemplateHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{ .Title }}</title>
  <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/bootstrap@5.3.3/dist/css/bootstrap.min.css">
  <style>
    :root {
      --primary: #334155;
      --secondary: #64748B;
      --accent: #8B5CF6;
      --light: #F1F5F9;
      --background: #FFFFFF;
      --text: #0F172A;
      --success: #10B981;
      --danger: #DC2626;
      --border: #E2E8F0;
    }
    body {
      background-color: var(--light);
      color: var(--text);
    }
    .navbar-dark {
      background-color: var(--primary) !important;
    }
    .card {
      border: 1px solid var(--border);
      background-color: var(--background);
    }
    .metric-value {
      font-size: 2rem;
      font-weight: 700;
    }
    .metric-tag {
      font-size: 0.8rem;
      color: var(--secondary);
    }
    .bar-track {
      background-color: var(--light);
      border-radius: 6px;
      height: 12px;
      overflow: hidden;
    }
    .bar-fill {
      background-color: var(--accent);
      height: 100%;
    }
    .case-code {
      font-family: monospace;
      color: var(--secondary);
    }
    .case-actual {
      color: var(--danger);
    }
    .case-expected {
      color: var(--success);
    }
    pre.case-text {
      white-space: pre-wrap;
      margin-bottom: 0.5rem;
    }
  </style>
</head>
<body>
  <nav class="navbar navbar-dark">
    <div class="container-fluid">
      <span class="navbar-brand mb-0 h1">{{ .Title }}</span>
      <span class="text-light small">Source: {{ .Overview.Source }}</span>
    </div>
  </nav>
  <main class="container-fluid my-4">
    {{ if not .Overview.Available }}
    <div class="alert alert-warning" id="noData">{{ .NoData }} {{ .Overview.Reason }}</div>
    {{ end }}

    <section>
      <h4>Overview Dashboard</h4>
      <div class="row g-3">
        <div class="col-md-4">
          <div class="card shadow-sm"><div class="card-body">
            <div class="metric-tag">Overall Pass Rate - Live</div>
            <div class="metric-value" id="overallPassRate">{{ .Overview.OverallPassRate }}</div>
          </div></div>
        </div>
        <div class="col-md-4">
          <div class="card shadow-sm"><div class="card-body">
            <div class="metric-tag">Total Tokens Processed - Estimated</div>
            <div class="metric-value" id="tokensProcessed">{{ .TokensLabel }}</div>
          </div></div>
        </div>
        <div class="col-md-4">
          <div class="card shadow-sm"><div class="card-body">
            <div class="metric-tag">Critical Failure Count - Needs Review</div>
            <div class="metric-value" id="failureCount">{{ .Overview.FailureCount }}</div>
          </div></div>
        </div>
      </div>
    </section>

    <section class="mt-4">
      <div class="card shadow-sm"><div class="card-body">
        <h5>Vulnerability Radar</h5>
        {{ if .Overview.Categories }}
        <table class="table table-sm" id="categoryTable">
          <thead><tr><th>Category</th><th>Total Tests</th><th>Passed</th><th>Pass Rate</th><th></th></tr></thead>
          <tbody>
          {{ range .Overview.Categories }}
            <tr>
              <td>{{ .Subject }}</td>
              <td>{{ .Total }}</td>
              <td>{{ .Passed }}</td>
              <td>{{ .Score }}%</td>
              <td class="w-50"><div class="bar-track"><div class="bar-fill" style="width: {{ .Score }}%"></div></div></td>
            </tr>
          {{ end }}
          </tbody>
        </table>
        {{ else }}
        <p class="text-muted">{{ .NoCategories }}</p>
        {{ end }}
      </div></div>
    </section>

    <section class="mt-4">
      <div class="card shadow-sm"><div class="card-body">
        <h5>Latest Edge Case Failures</h5>
        {{ if .Overview.Preview }}
          {{ range .Overview.Preview }}
          <div class="border-bottom py-2">
            <span class="badge bg-danger">{{ .Category }}</span> <span class="case-code">{{ code .TestID }}</span>
            <div>{{ .Prompt }}</div>
            <div class="case-actual small">Actual (Failed): {{ .ActualAnswer }}</div>
            <div class="case-expected small">Expected Rule: {{ .ExpectedAnswer }}</div>
          </div>
          {{ end }}
        {{ else }}
        <p class="text-muted">{{ .AllClear }}</p>
        {{ end }}
      </div></div>
    </section>

    {{ $noFailures := .NoFailures }}
    {{ range .Overview.Views }}
    <section class="mt-4" id="view-{{ .Name }}">
      <div class="card shadow-sm"><div class="card-body">
        <h5>{{ .Title }} <span class="badge bg-secondary">{{ len .Failures }} Issues</span></h5>
        <p class="text-muted small">{{ .Total }} cases, {{ .PassRate }}% passed</p>
        {{ if .Failures }}
          {{ range .Failures }}
          <div class="border-bottom py-2">
            <span class="badge bg-danger">{{ .Category }}</span> <span class="case-code">{{ .TestID }}</span>
            <div>{{ .Prompt }}</div>
            <div class="case-actual small">Actual Output:</div>
            <pre class="case-text">{{ .ActualAnswer }}</pre>
            <div class="case-expected small">Expected Constraint:</div>
            <pre class="case-text">{{ .ExpectedAnswer }}</pre>
          </div>
          {{ end }}
        {{ else }}
        <p class="text-muted">{{ $noFailures }}</p>
        {{ end }}
      </div></div>
    </section>
    {{ end }}

    <section class="mt-4">
      <button class="btn btn-sm btn-outline-secondary" id="downloadJSON" type="button">Download JSON</button>
    </section>
  </main>
  <script>
    const OVERVIEW = {{ .OverviewJSON }};
    document.getElementById('downloadJSON').addEventListener('click', () => {
      const blob = new Blob([JSON.stringify(OVERVIEW, null, 2)], { type: 'application/json' });
      const link = document.createElement('a');
      link.href = URL.createObjectURL(blob);
      link.download = 'evalboard-overview.json';
      link.click();
      URL.revokeObjectURL(link.href);
    });
  </script>
</body>
</html>
`
