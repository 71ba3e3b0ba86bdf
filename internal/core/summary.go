package core

// NoAgentStatusLabel is the raw-status bucket for rows without a matched
// agent, mirroring the "No Instalado / No aplica" bucket of the original
// report.
const NoAgentStatusLabel = "Not Installed / N/A"

// StatusCount is one row of the per-status breakdown table.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// Summary holds the headline metrics shown above the results table.
type Summary struct {
	Total             int            `json:"total"`
	WithAgent         int            `json:"with_agent"`
	WithoutAgent      int            `json:"without_agent"`
	CompliancePercent float64        `json:"compliance_percent"`
	ByCategory        map[string]int `json:"by_category"`
	ByStatus          []StatusCount  `json:"by_status"`
}

// Summarize computes the headline metrics for a (possibly filtered) report.
// "With agent" counts every row whose category implies an installed agent
// (Compliant, Offline, Expired); the compliance percentage is with-agent
// over total, 0 for an empty report.
func Summarize(report Report) Summary {
	s := Summary{
		Total:      len(report.Rows),
		ByCategory: make(map[string]int, len(categoryLabels)),
	}
	for _, c := range Categories() {
		s.ByCategory[c.String()] = 0
	}

	statusCounts := make(map[string]int)
	var statusOrder []string
	for _, rec := range report.Rows {
		s.ByCategory[rec.Category.String()]++
		if rec.Category.HasAgent() {
			s.WithAgent++
		}

		label := NoAgentStatusLabel
		if rec.Status != nil && rec.Status.Status != "" {
			label = rec.Status.Status
		}
		if _, seen := statusCounts[label]; !seen {
			statusOrder = append(statusOrder, label)
		}
		statusCounts[label]++
	}

	s.WithoutAgent = s.Total - s.WithAgent
	if s.Total > 0 {
		s.CompliancePercent = float64(s.WithAgent) / float64(s.Total) * 100
	}

	s.ByStatus = make([]StatusCount, 0, len(statusOrder))
	for _, label := range statusOrder {
		s.ByStatus = append(s.ByStatus, StatusCount{Status: label, Count: statusCounts[label]})
	}
	return s
}
