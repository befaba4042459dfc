package db

import (
	"fmt"

	_ "embed"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaTemplate string

// Schema renders the collection DDL for a given collection name. The
// name must already be validated as an identifier, see
// platformstore.New.
func Schema(collection string) string {
	return fmt.Sprintf(schemaTemplate, collection)
}
