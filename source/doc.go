// Package source reads and writes record collections as JSON or YAML
// documents.
//
// A document must be an array of objects. The shape is checked with a JSON
// Schema before records are built; strict mode also requires every field
// value to be a scalar.
package source
