package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/briantully/acquia-cli/internal/domain"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, domain.Production, domain.KindOf("prod"))
	assert.Equal(t, domain.NonProduction, domain.KindOf("dev"))
	assert.Equal(t, domain.NonProduction, domain.KindOf("stage"))
	// exact match only
	assert.Equal(t, domain.NonProduction, domain.KindOf("prod2"))
	assert.Equal(t, domain.NonProduction, domain.KindOf("Prod"))
}

func TestTaskSucceeded(t *testing.T) {
	assert.True(t, domain.Task{State: "done", Completed: true}.Succeeded())
	assert.False(t, domain.Task{State: "error", Completed: true}.Succeeded())
	assert.False(t, domain.Task{State: "failed", Completed: true}.Succeeded())
}
