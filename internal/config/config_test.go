package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvBool(t *testing.T) {
	t.Setenv("FLAG", "")
	assert.True(t, envBool("FLAG", true))
	assert.False(t, envBool("FLAG", false))

	for _, v := range []string{"1", "true", "TRUE", "yes", "on"} {
		t.Setenv("FLAG", v)
		assert.True(t, envBool("FLAG", false), v)
	}
	for _, v := range []string{"0", "false", "False", "no", "off"} {
		t.Setenv("FLAG", v)
		assert.False(t, envBool("FLAG", true), v)
	}

	// garbage falls back to the default
	t.Setenv("FLAG", "maybe")
	assert.True(t, envBool("FLAG", true))
}
