// Package migrations embeds the SQL schema. The core set holds verifier-side
// state; the hr set holds the authoritative employee directory and may live in
// a separate database.
package migrations

import "embed"

//go:embed core/*.sql hr/*.sql
var FS embed.FS

const (
	Core = "core"
	HR   = "hr"
)
