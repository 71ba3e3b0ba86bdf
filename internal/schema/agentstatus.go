package schema

import "github.com/jortega/arcboard/internal/core"

// AgentStatusFieldSpecs defines the expected columns of the Azure Arc
// agent export. All three are required; HOST NAME and NAME together form
// the join key (HOST NAME first, NAME as fallback).
var AgentStatusFieldSpecs = []core.FieldSpec{
	{Name: "HOST NAME", Required: true},
	{Name: "NAME", Required: true},
	{Name: "ARC AGENT STATUS", Required: true},
}

func init() {
	core.Register(core.SourceDefinition{
		Info: core.SourceInfo{
			Key:   core.SourceStatus,
			Label: "Agent Status Export (AzureArc.csv)",
			Kind:  core.KindCSV,
		},
		FieldSpecs: AgentStatusFieldSpecs,
	})
}
