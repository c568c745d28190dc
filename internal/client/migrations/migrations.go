// Package migrations embeds the wallet database schema.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
