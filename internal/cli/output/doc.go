// Package output renders query results and status reports for reefdb-cli.
// Results arrive as decoded JSON values (maps, slices, scalars) and can be
// printed as an aligned table, indented JSON, or YAML.
package output
