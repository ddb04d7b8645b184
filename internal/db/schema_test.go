package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSchema(t *testing.T) {
	assert.NoError(t, ValidateSchema())
}

func TestIdentifierPattern(t *testing.T) {
	valid := []string{"UserNode", "CHILD_OF", "_internal", "A1"}
	for _, s := range valid {
		assert.True(t, identifierPattern.MatchString(s), s)
	}

	invalid := []string{"", "1abc", "User Node", "User-Node", "User`Node", "User) DETACH DELETE"}
	for _, s := range invalid {
		assert.False(t, identifierPattern.MatchString(s), s)
	}
}
