package core

// filter.go applies user-selected predicate filters to a classified report.
//
// Semantics: logical AND across filter dimensions, logical OR within a
// dimension's accepted-value set. An empty value set for a dimension means
// "no restriction", never "exclude all". Exclude dimensions remove matching
// rows (used for the location and hostname exclusion dropdowns). Filtering
// never reorders or mutates the input.

import (
	"sort"
	"strings"
)

// FilterSet holds the active selections per column. Both maps are optional.
type FilterSet struct {
	Include map[string][]string // column -> accepted values (OR within)
	Exclude map[string][]string // column -> rejected values
}

// Empty reports whether no restriction is active.
func (f FilterSet) Empty() bool {
	for _, vals := range f.Include {
		if len(vals) > 0 {
			return false
		}
	}
	for _, vals := range f.Exclude {
		if len(vals) > 0 {
			return false
		}
	}
	return true
}

// Matches reports whether a joined record passes every active dimension.
func (f FilterSet) Matches(rec JoinedRecord) bool {
	for col, accepted := range f.Include {
		if len(accepted) == 0 {
			continue
		}
		if !containsFold(accepted, rec.Value(col)) {
			return false
		}
	}
	for col, rejected := range f.Exclude {
		if len(rejected) == 0 {
			continue
		}
		if containsFold(rejected, rec.Value(col)) {
			return false
		}
	}
	return true
}

// Apply returns the subset of report rows matching the filter set, in the
// original order. The input report is unaffected; an empty filter set
// returns a copy with all rows.
func Apply(report Report, filters FilterSet) Report {
	out := Report{Columns: report.Columns}
	if filters.Empty() {
		out.Rows = append(out.Rows, report.Rows...)
		return out
	}
	for _, rec := range report.Rows {
		if filters.Matches(rec) {
			out.Rows = append(out.Rows, rec)
		}
	}
	return out
}

// Options returns the sorted distinct non-empty values of a column across
// the report, for populating filter dropdowns.
func Options(report Report, col string) []string {
	seen := make(map[string]struct{})
	var opts []string
	for _, rec := range report.Rows {
		v := rec.Value(col)
		if strings.TrimSpace(v) == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		opts = append(opts, v)
	}
	sort.Strings(opts)
	return opts
}

func containsFold(vals []string, v string) bool {
	for _, candidate := range vals {
		if strings.EqualFold(candidate, v) {
			return true
		}
	}
	return false
}
