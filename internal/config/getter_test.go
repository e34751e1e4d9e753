package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvStr(t *testing.T) {
	t.Setenv("CURIES_TEST_STR", "bioregistry")
	assert.Equal(t, "bioregistry", GetEnvStr("CURIES_TEST_STR", "default"))
	assert.Equal(t, "default", GetEnvStr("CURIES_TEST_STR_UNSET", "default"))
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("CURIES_TEST_DURATION", "5s")
	assert.Equal(t, 5*time.Second, GetEnvDuration("CURIES_TEST_DURATION", time.Second))

	t.Setenv("CURIES_TEST_DURATION", "garbage")
	assert.Equal(t, time.Second, GetEnvDuration("CURIES_TEST_DURATION", time.Second))
}

func TestGetEnvFloat(t *testing.T) {
	t.Setenv("CURIES_TEST_FLOAT", "2.5")
	assert.InDelta(t, 2.5, GetEnvFloat("CURIES_TEST_FLOAT", 1.0), 0.0001)

	t.Setenv("CURIES_TEST_FLOAT", "garbage")
	assert.InDelta(t, 1.0, GetEnvFloat("CURIES_TEST_FLOAT", 1.0), 0.0001)
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("CURIES_TEST_BOOL", "yes")
	assert.True(t, GetEnvBool("CURIES_TEST_BOOL", false))

	t.Setenv("CURIES_TEST_BOOL", "no")
	assert.False(t, GetEnvBool("CURIES_TEST_BOOL", true))

	assert.True(t, GetEnvBool("CURIES_TEST_BOOL_UNSET", true))
}
