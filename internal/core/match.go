package core

// match.go implements the hostname join between the inventory and the
// agent-status export.
//
// The join is a left outer join with the inventory as the driving side:
// every inventory row produces exactly one joined row. Matching is done
// against an index built from the status table, keyed by normalized
// hostname. Neither input is mutated.

import "strings"

// Agent status values recognized by the classifier. Comparison is
// case-insensitive; anything else with a status row counts as connected.
const (
	StatusConnected = "Connected"
	StatusOffline   = "Offline"
	StatusExpired   = "Expired"
)

// NormalizeHostname trims surrounding whitespace and lowercases a hostname
// so that "Host01 " and "HOST01" compare equal.
func NormalizeHostname(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// BuildStatusIndex maps normalized hostnames to their status rows.
// When the export contains duplicate hostnames the later row overwrites the
// earlier one: last-write-wins, deterministic for a given file order.
// Rows with no usable hostname (both HOST NAME and NAME empty) are skipped.
func BuildStatusIndex(status []AgentStatusRecord) map[string]AgentStatusRecord {
	idx := make(map[string]AgentStatusRecord, len(status))
	for _, rec := range status {
		key := rec.Key()
		if key == "" {
			continue
		}
		idx[key] = rec
	}
	return idx
}

// Join left-joins the inventory against the status index and classifies
// every row. Inventory rows with an empty hostname are kept and simply
// never match, so they classify as Not Installed unless ineligible.
func Join(inventory []InventoryRecord, index map[string]AgentStatusRecord) []JoinedRecord {
	joined := make([]JoinedRecord, 0, len(inventory))
	for _, inv := range inventory {
		rec := JoinedRecord{Inventory: inv}
		if inv.Hostname != "" {
			if match, ok := index[inv.Hostname]; ok {
				m := match
				rec.Status = &m
			}
		}
		rec.Category = Classify(rec)
		joined = append(joined, rec)
	}
	return joined
}

// Classify assigns the compliance category for a joined record. The checks
// run in fixed precedence: eligibility gates everything, then agent
// presence, then agent freshness.
func Classify(rec JoinedRecord) Category {
	if !rec.Inventory.Eligible {
		return Ineligible
	}
	if rec.Status == nil {
		return NotInstalled
	}
	switch {
	case strings.EqualFold(rec.Status.Status, StatusExpired):
		return Expired
	case strings.EqualFold(rec.Status.Status, StatusOffline):
		return Offline
	}
	return Compliant
}

// BuildReport joins and classifies the two loaded tables into a Report.
// The display columns are the inventory columns followed by the synthetic
// agent-status and category columns.
func BuildReport(inv InventoryTable, status StatusTable) Report {
	index := BuildStatusIndex(status.Records)
	cols := make([]string, 0, len(inv.Columns)+2)
	cols = append(cols, inv.Columns...)
	cols = append(cols, ColAgentStatus, ColCategory)
	return Report{
		Columns: cols,
		Rows:    Join(inv.Records, index),
	}
}
