// Package graph exposes the GraphQL operations over the auth boundary and
// the record query layer. Requests are parsed and validated against the
// embedded schema, then dispatched through an explicit operation table that
// declares each operation's role requirement.
package graph

import (
	_ "embed"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
)

//go:embed schema.graphql
var schemaSDL string

// Schema is the parsed SDL every incoming request is validated against.
var Schema = gqlparser.MustLoadSchema(&ast.Source{
	Name:  "schema.graphql",
	Input: schemaSDL,
})
