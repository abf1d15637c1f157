package server

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestMapEnvToGinMode(t *testing.T) {
	tests := map[string]string{
		"production":  gin.ReleaseMode,
		"prod":        gin.ReleaseMode,
		"release":     gin.ReleaseMode,
		"test":        gin.TestMode,
		"development": gin.DebugMode,
		"":            gin.DebugMode,
	}
	for env, want := range tests {
		assert.Equal(t, want, mapEnvToGinMode(env), env)
	}
}
