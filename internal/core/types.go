// Package core provides the business logic for the Arc agent compliance
// report: loading the two tabular sources, matching them on hostname,
// classifying every inventory record, filtering and exporting the result.
// This package has no UI dependencies and can be used by any frontend.
package core

// FieldSpec describes one expected source column. Validation is an
// existence check only: required columns must appear in the header, cell
// contents are taken as-is.
type FieldSpec struct {
	Name     string // Column header name (matched case-insensitively)
	Required bool   // Column must exist in the header
}

// SourceKind identifies the file format of a data source.
type SourceKind string

const (
	KindCSV  SourceKind = "csv"
	KindXLSX SourceKind = "xlsx"
)

// SourceInfo contains display information about a data source.
type SourceInfo struct {
	Key     string     // Unique identifier: "inventory", "status"
	Label   string     // Display name: "Asset Inventory (CMDB)"
	Kind    SourceKind // File format expected for uploads
	Columns []string   // Header column names
}

// SourceDefinition contains everything needed to validate a source upload.
type SourceDefinition struct {
	Info       SourceInfo
	FieldSpecs []FieldSpec
}

// HeaderIndex maps column names (lowercase) to their position in a row.
type HeaderIndex map[string]int

// InventoryRecord is one row of the asset inventory. Hostname is the join
// key, already normalized (trimmed, lowercased). Fields holds the original
// cell values keyed by column name; Eligible is computed once at load time
// from the configured eligibility rules.
type InventoryRecord struct {
	Hostname string
	Eligible bool
	Fields   map[string]string
}

// AgentStatusRecord is one row of the monitoring-agent export. HostName and
// Name come from the HOST NAME and NAME columns; the join key is HOST NAME,
// falling back to NAME when HOST NAME is empty.
type AgentStatusRecord struct {
	HostName string
	Name     string
	Status   string
	Fields   map[string]string
}

// Key returns the normalized join key for the record.
func (r AgentStatusRecord) Key() string {
	if k := NormalizeHostname(r.HostName); k != "" {
		return k
	}
	return NormalizeHostname(r.Name)
}

// InventoryTable is a loaded inventory source. Columns preserves the file's
// header order for display and export.
type InventoryTable struct {
	Columns []string
	Records []InventoryRecord
}

// StatusTable is a loaded agent-status source.
type StatusTable struct {
	Columns []string
	Records []AgentStatusRecord
}

// JoinedRecord is one inventory row enriched with its matched status row
// (nil when unmatched) and the derived compliance category. It is computed
// once at join time and never mutated.
type JoinedRecord struct {
	Inventory InventoryRecord
	Status    *AgentStatusRecord
	Category  Category
}

// Synthetic column names available on joined records in addition to the
// inventory columns.
const (
	ColCategory    = "Category"
	ColAgentStatus = "ARC AGENT STATUS"
	ColHostname    = "Hostname"
)

// Value resolves a column name against the joined record. Category and
// agent-status are synthetic; everything else reads the inventory row first
// and falls back to the status row.
func (r JoinedRecord) Value(col string) string {
	switch col {
	case ColCategory:
		return r.Category.String()
	case ColAgentStatus:
		if r.Status == nil {
			return ""
		}
		return r.Status.Status
	}
	if v, ok := r.Inventory.Fields[col]; ok {
		return v
	}
	if r.Status != nil {
		if v, ok := r.Status.Fields[col]; ok {
			return v
		}
	}
	return ""
}

// Report is the classified join result. Columns is the display column set;
// Rows preserve inventory order.
type Report struct {
	Columns []string
	Rows    []JoinedRecord
}
