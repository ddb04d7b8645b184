package repositories

import (
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// recordString reads a string value from a record, returning "" for missing
// or null fields
func recordString(record *neo4j.Record, key string) string {
	value, ok := record.Get(key)
	if !ok || value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	return ""
}

// recordBool reads a boolean value from a record, treating missing or null
// fields as false
func recordBool(record *neo4j.Record, key string) bool {
	value, ok := record.Get(key)
	if !ok || value == nil {
		return false
	}
	if b, ok := value.(bool); ok {
		return b
	}
	return false
}

// recordTime reads a datetime value from a record
func recordTime(record *neo4j.Record, key string) time.Time {
	value, ok := record.Get(key)
	if !ok || value == nil {
		return time.Time{}
	}
	if t, ok := value.(time.Time); ok {
		return t
	}
	return time.Time{}
}

// nodeString reads a string property from a node, returning "" when absent
func nodeString(node neo4j.Node, key string) string {
	value, ok := node.Props[key]
	if !ok || value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	return ""
}
