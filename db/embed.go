// Package db holds the Postgres schema migrations
package db

import (
	"embed"
	"io/fs"
)

//go:embed pg/*.sql
var migrations embed.FS

// Migrations returns the embedded Postgres migrations rooted at the migration folder
func Migrations() fs.FS {
	sub, err := fs.Sub(migrations, "pg")
	if err != nil {
		panic(err)
	}
	return sub
}
