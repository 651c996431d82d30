// Package report provides HTML report generation.
package report

import (
	"fmt"
	"html/template"
	"io"
	"time"
)

// HTMLGenerator generates HTML reports.
type HTMLGenerator struct {
	template *template.Template
}

// NewHTMLGenerator creates a new HTML generator.
func NewHTMLGenerator() *HTMLGenerator {
	tmpl := template.Must(template.New("report").Funcs(funcMap).Parse(htmlTemplate))
	return &HTMLGenerator{template: tmpl}
}

// Generate generates an HTML report.
func (g *HTMLGenerator) Generate(report *Report, w io.Writer) error {
	return g.template.Execute(w, report)
}

// Extension returns the file extension.
func (g *HTMLGenerator) Extension() string {
	return "html"
}

var funcMap = template.FuncMap{
	"confidenceClass": func(c Confidence) string {
		switch c {
		case ConfidenceHigh:
			return "high"
		case ConfidenceMedium:
			return "medium"
		default:
			return "low"
		}
	},
	"formatTime": func(t time.Time) string {
		return t.Format("2006-01-02 15:04:05")
	},
	"formatDuration": func(d time.Duration) string {
		return d.String()
	},
	"pct": func(f float64) string {
		return fmt.Sprintf("%.1f%%", f*100)
	},
}

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}} - lshkit report</title>
    <style>
        :root {
            --bg-dark: #0D0D0D;
            --bg-panel: #1A1A2E;
            --bg-header: #16213E;
            --text-primary: #E0E0E0;
            --text-dim: #666666;
            --cyan: #00FFFF;
            --magenta: #FF00FF;
            --green: #00FF00;
            --yellow: #FFFF00;
            --red: #FF0055;
        }

        * {
            margin: 0;
            padding: 0;
            box-sizing: border-box;
        }

        body {
            font-family: 'Segoe UI', 'Roboto', 'Helvetica Neue', sans-serif;
            background: var(--bg-dark);
            color: var(--text-primary);
            line-height: 1.6;
            min-height: 100vh;
        }

        .container {
            max-width: 1200px;
            margin: 0 auto;
            padding: 20px;
        }

        header {
            background: var(--bg-header);
            padding: 30px;
            border-radius: 10px;
            margin-bottom: 30px;
            border: 1px solid var(--cyan);
        }

        h1 {
            color: var(--cyan);
            font-size: 2.5em;
            margin-bottom: 10px;
            text-shadow: 0 0 10px var(--cyan);
        }

        .meta {
            color: var(--text-dim);
            font-size: 0.9em;
        }

        .meta span {
            margin-right: 20px;
        }

        .section {
            background: var(--bg-panel);
            border-radius: 10px;
            padding: 20px;
            margin-bottom: 20px;
            border: 1px solid var(--magenta);
        }

        h2 {
            color: var(--magenta);
            margin-bottom: 20px;
            font-size: 1.5em;
        }

        .stats-grid {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(200px, 1fr));
            gap: 20px;
        }

        .stat-card {
            background: var(--bg-header);
            padding: 20px;
            border-radius: 8px;
            text-align: center;
            border: 1px solid var(--cyan);
        }

        .stat-value {
            font-size: 2em;
            font-weight: bold;
            color: var(--cyan);
        }

        .stat-label {
            color: var(--text-dim);
            font-size: 0.9em;
            margin-top: 5px;
        }

        .confidence-badges {
            display: flex;
            gap: 10px;
            flex-wrap: wrap;
            margin-bottom: 20px;
        }

        .badge {
            padding: 5px 15px;
            border-radius: 20px;
            font-weight: bold;
            font-size: 0.9em;
        }

        .badge.high { background: var(--green); color: black; }
        .badge.medium { background: var(--yellow); color: black; }
        .badge.low { background: var(--red); color: white; }

        .pair-list {
            list-style: none;
        }

        .pair-item {
            background: var(--bg-header);
            padding: 15px;
            margin-bottom: 15px;
            border-radius: 8px;
            border-left: 4px solid var(--cyan);
        }

        .pair-item.high { border-left-color: var(--green); }
        .pair-item.medium { border-left-color: var(--yellow); }
        .pair-item.low { border-left-color: var(--red); }

        .pair-header {
            display: flex;
            justify-content: space-between;
            align-items: center;
            margin-bottom: 10px;
        }

        .pair-title {
            font-weight: bold;
            color: var(--text-primary);
            font-family: 'Fira Code', 'Consolas', monospace;
        }

        .pair-meta {
            color: var(--text-dim);
            font-size: 0.8em;
        }

        .no-pairs {
            text-align: center;
            padding: 40px;
            color: var(--text-dim);
            font-size: 1.2em;
        }

        footer {
            text-align: center;
            color: var(--text-dim);
            padding: 20px;
            font-size: 0.9em;
        }
    </style>
</head>
<body>
    <div class="container">
        <header>
            <h1>{{.Title}}</h1>
            <div class="meta">
                <span>bands={{.Bands}} rows={{.Rows}}</span>
                <span>threshold={{printf "%.2f" .Threshold}}</span>
                <span>generated {{formatTime .GeneratedAt}}</span>
                <span>v{{.Version}}</span>
            </div>
        </header>

        <section class="section">
            <h2>Run statistics</h2>
            <div class="stats-grid">
                <div class="stat-card">
                    <div class="stat-value">{{.Statistics.DocumentsIndexed}}</div>
                    <div class="stat-label">Documents indexed</div>
                </div>
                <div class="stat-card">
                    <div class="stat-value">{{.Statistics.QueriesRun}}</div>
                    <div class="stat-label">Queries run</div>
                </div>
                <div class="stat-card">
                    <div class="stat-value">{{.Statistics.PairsFound}}</div>
                    <div class="stat-label">Pairs found</div>
                </div>
                <div class="stat-card">
                    <div class="stat-value">{{printf "%.1f" .Statistics.DocsPerSec}}</div>
                    <div class="stat-label">Docs/sec</div>
                </div>
                <div class="stat-card">
                    <div class="stat-value">{{formatDuration .Statistics.Duration}}</div>
                    <div class="stat-label">Duration</div>
                </div>
                {{if .Statistics.Precision}}
                <div class="stat-card">
                    <div class="stat-value">{{pct .Statistics.Precision}} / {{pct .Statistics.Recall}}</div>
                    <div class="stat-label">Precision / Recall</div>
                </div>
                {{end}}
            </div>
        </section>

        <section class="section">
            <h2>Neighbor pairs ({{len .Pairs}})</h2>

            {{if .Pairs}}
            <div class="confidence-badges">
                {{range $c, $count := .ConfidenceCounts}}
                {{if gt $count 0}}
                <span class="badge {{confidenceClass $c}}">{{$c}}: {{$count}}</span>
                {{end}}
                {{end}}
            </div>

            <ul class="pair-list">
                {{range .Pairs}}
                <li class="pair-item {{confidenceClass .Confidence}}">
                    <div class="pair-header">
                        <span class="pair-title">{{.Query}} &harr; {{.Neighbor}}</span>
                        <span class="badge {{confidenceClass .Confidence}}">{{printf "%.3f" .Similarity}}</span>
                    </div>
                    <div class="pair-meta">{{formatTime .Timestamp}}</div>
                </li>
                {{end}}
            </ul>
            {{else}}
            <div class="no-pairs">No neighbor pairs found at this threshold.</div>
            {{end}}
        </section>

        <footer>lshkit similarity search report</footer>
    </div>
</body>
</html>`

// SetTemplate sets a custom template.
func (g *HTMLGenerator) SetTemplate(tmpl *template.Template) {
	g.template = tmpl
}

// GetDefaultTemplate returns the default HTML template string.
func GetDefaultTemplate() string {
	return htmlTemplate
}

// CustomHTMLGenerator creates a generator with a custom template.
func CustomHTMLGenerator(templateStr string) (*HTMLGenerator, error) {
	tmpl, err := template.New("report").Funcs(funcMap).Parse(templateStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}

	return &HTMLGenerator{template: tmpl}, nil
}
