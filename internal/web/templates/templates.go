// Package templates renders the dashboard HTML. Components are built with
// templ's ComponentFunc API so fragments can be rendered standalone for
// partial page updates or composed into the full dashboard page.
package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/jortega/arcboard/internal/core"
)

// Dashboard is the full page: upload panels for every registered source,
// the filter bar, summary cards and the results table.
func Dashboard(sources []core.SourceInfo, filterColumns []string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &printer{w: w}
		p.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		p.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		p.raw(`<title>Arc Agent Compliance</title>`)
		p.raw(`<link rel="stylesheet" href="/static/app.css">`)
		p.raw(`</head><body>`)
		p.raw(`<header><h1>Arc Agent Compliance</h1></header>`)
		p.raw(`<main>`)

		p.raw(`<section class="uploads">`)
		for _, src := range sources {
			if err := UploadPanel(src).Render(ctx, w); err != nil {
				return err
			}
		}
		p.raw(`</section>`)

		p.raw(`<section class="filters" id="filters" data-columns="`)
		for i, col := range filterColumns {
			if i > 0 {
				p.raw(",")
			}
			p.text(col)
		}
		p.raw(`"></section>`)

		p.raw(`<section id="summary" class="summary"></section>`)
		p.raw(`<section id="results" class="results"></section>`)

		p.raw(`<section class="export">`)
		p.raw(`<a href="/api/export?format=csv" download>Export CSV</a> `)
		p.raw(`<a href="/api/export?format=zip" download>Export ZIP</a> `)
		p.raw(`<a href="/api/export?format=xlsx" download>Export Excel</a>`)
		p.raw(`</section>`)

		p.raw(`</main>`)
		p.raw(`<script src="/static/app.js"></script>`)
		p.raw(`</body></html>`)
		return p.err
	})
}

// UploadPanel renders the upload form for one data source.
func UploadPanel(src core.SourceInfo) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &printer{w: w}
		p.raw(`<form class="upload-panel" data-source="`)
		p.text(src.Key)
		p.raw(`" action="/api/upload/`)
		p.text(src.Key)
		p.raw(`" method="post" enctype="multipart/form-data">`)
		p.raw(`<h2>`)
		p.text(src.Label)
		p.raw(`</h2>`)
		p.raw(`<input type="file" name="file" accept=".`)
		p.text(string(src.Kind))
		p.raw(`">`)
		p.raw(`<button type="submit">Upload</button>`)
		p.raw(`<span class="upload-status" id="status-`)
		p.text(src.Key)
		p.raw(`"></span>`)
		p.raw(`</form>`)
		return p.err
	})
}

// SummaryCards renders the headline metrics and the per-status breakdown.
func SummaryCards(s core.Summary) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &printer{w: w}
		p.raw(`<div class="cards">`)
		card(p, "Total servers", fmt.Sprintf("%d", s.Total))
		card(p, "With agent", fmt.Sprintf("%d", s.WithAgent))
		card(p, "Without agent", fmt.Sprintf("%d", s.WithoutAgent))
		card(p, "Compliance", fmt.Sprintf("%.2f%%", s.CompliancePercent))
		p.raw(`</div>`)

		p.raw(`<table class="status-breakdown"><thead><tr><th>Agent status</th><th>Count</th></tr></thead><tbody>`)
		for _, sc := range s.ByStatus {
			p.raw(`<tr><td>`)
			p.text(sc.Status)
			p.raw(`</td><td>`)
			p.text(fmt.Sprintf("%d", sc.Count))
			p.raw(`</td></tr>`)
		}
		p.raw(`</tbody></table>`)
		return p.err
	})
}

// ResultsTable renders the filtered report rows restricted to cols.
// A zero-row report renders the empty-state message, not an error.
func ResultsTable(report core.Report, cols []string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if len(report.Rows) == 0 {
			return EmptyState("No servers match the current filters.").Render(ctx, w)
		}

		p := &printer{w: w}
		p.raw(`<table class="report"><thead><tr>`)
		for _, col := range cols {
			p.raw(`<th>`)
			p.text(col)
			p.raw(`</th>`)
		}
		p.raw(`</tr></thead><tbody>`)
		for _, rec := range report.Rows {
			p.raw(`<tr class="cat-`)
			p.text(slug(rec.Category.String()))
			p.raw(`">`)
			for _, col := range cols {
				p.raw(`<td>`)
				p.text(rec.Value(col))
				p.raw(`</td>`)
			}
			p.raw(`</tr>`)
		}
		p.raw(`</tbody></table>`)
		return p.err
	})
}

// EmptyState renders the non-error message for an empty result set.
func EmptyState(msg string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &printer{w: w}
		p.raw(`<div class="empty-state">`)
		p.text(msg)
		p.raw(`</div>`)
		return p.err
	})
}

// ErrorAlert renders a dismissible error box with the support code.
func ErrorAlert(message, action, code string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &printer{w: w}
		p.raw(`<div class="alert alert-error" role="alert"><strong>`)
		p.text(message)
		p.raw(`</strong>`)
		if action != "" {
			p.raw(` <span class="alert-action">`)
			p.text(action)
			p.raw(`</span>`)
		}
		p.raw(` <span class="alert-code">(`)
		p.text(code)
		p.raw(`)</span></div>`)
		return p.err
	})
}

func card(p *printer, label, value string) {
	p.raw(`<div class="card"><span class="card-value">`)
	p.text(value)
	p.raw(`</span><span class="card-label">`)
	p.text(label)
	p.raw(`</span></div>`)
}

func slug(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			out = append(out, r)
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		case r == ' ', r == '/':
			out = append(out, '-')
		}
	}
	return string(out)
}

// printer accumulates the first write error so components read linearly.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) raw(s string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, s)
}

func (p *printer) text(s string) {
	p.raw(templ.EscapeString(s))
}
