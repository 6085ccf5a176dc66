// Package schemas holds the JSON Schemas for the documents the CLI and API
// read and write.
package schemas

import "embed"

// Files contains every *.schema.json in this directory.
//
//go:embed *.schema.json
var Files embed.FS
