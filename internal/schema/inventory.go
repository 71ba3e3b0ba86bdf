// Package schema defines the expected columns of the two data sources and
// registers them with the core source registry. Import it for side effects
// from main.
package schema

import "github.com/jortega/arcboard/internal/core"

// InventoryFieldSpecs defines the expected columns of the CMDB inventory
// sheet. Only Hostname is required; the rest are well-known descriptive
// columns carried for display and filtering when present.
var InventoryFieldSpecs = []core.FieldSpec{
	{Name: "Hostname", Required: true},
	{Name: "Familia SO"},
	{Name: "Capacidad Primaria"},
	{Name: "Sistema operativo"},
	{Name: "Estado operativo"},
	{Name: "Entorno"},
	{Name: "Ubicación"},
	{Name: "IP de Administración"},
}

func init() {
	core.Register(core.SourceDefinition{
		Info: core.SourceInfo{
			Key:   core.SourceInventory,
			Label: "Asset Inventory (CMDB.xlsx)",
			Kind:  core.KindXLSX,
		},
		FieldSpecs: InventoryFieldSpecs,
	})
}
