package consul

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlogService(t *testing.T) {
	cfg := BlogService("blog-host", 8080)

	assert.Equal(t, "blog-service-blog-host", cfg.ID)
	assert.Equal(t, "blog-service", cfg.Name)
	require.NotNil(t, cfg.Check)
	assert.Equal(t, "http://blog-host:8080/health", cfg.Check.HTTP)
}

func TestRegistration(t *testing.T) {
	reg := BlogService("localhost", 9000).registration()

	assert.Equal(t, "blog-service-localhost", reg.ID)
	assert.Equal(t, 9000, reg.Port)
	require.NotNil(t, reg.Check)
	assert.Equal(t, "10s", reg.Check.Interval)
	assert.Equal(t, "3s", reg.Check.Timeout)
}

func TestRegistration_NoCheck(t *testing.T) {
	reg := (&ServiceConfig{ID: "x", Name: "x"}).registration()
	assert.Nil(t, reg.Check)
}
