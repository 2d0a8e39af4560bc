// Package util holds small generic helpers shared by the plan builder and
// the CLI.
package util
