package core

import "strings"

// Category is the compliance classification assigned to every joined record.
// A record gets exactly one category, computed at join time.
type Category int

const (
	// Compliant: the agent is installed and reporting as connected.
	Compliant Category = iota
	// NotInstalled: no status row matched the inventory hostname.
	NotInstalled
	// Offline: the agent exists but its last reported state is offline.
	Offline
	// Expired: the agent exists but its certificate/heartbeat has expired.
	Expired
	// Ineligible: the inventory row is out of scope for compliance tracking.
	Ineligible
)

var categoryLabels = [...]string{
	Compliant:    "Compliant",
	NotInstalled: "Not Installed",
	Offline:      "Offline",
	Expired:      "Expired",
	Ineligible:   "Ineligible",
}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryLabels) {
		return "Unknown"
	}
	return categoryLabels[c]
}

// Categories returns all categories in display order.
func Categories() []Category {
	return []Category{Compliant, NotInstalled, Offline, Expired, Ineligible}
}

// ParseCategory resolves a label back to its Category. Matching is
// case-insensitive. Returns false for unknown labels.
func ParseCategory(s string) (Category, bool) {
	for i, label := range categoryLabels {
		if strings.EqualFold(s, label) {
			return Category(i), true
		}
	}
	return 0, false
}

// HasAgent reports whether the category implies an installed agent,
// regardless of its health.
func (c Category) HasAgent() bool {
	switch c {
	case Compliant, Offline, Expired:
		return true
	}
	return false
}
