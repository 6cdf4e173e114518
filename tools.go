//go:build tools

package tools

// Tracks versions of CLI tools used during development so `go mod tidy`
// keeps them pinned. Not compiled into any binary.
import (
	_ "github.com/pressly/goose/v3/cmd/goose"
)
