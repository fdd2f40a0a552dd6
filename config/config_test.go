package config

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]func(c *Config){
		"pool too small":   func(c *Config) { c.Storage.BufferPoolSize = 1 },
		"negative root":    func(c *Config) { c.Storage.IndexRootPageID = -1 },
		"no data dir":      func(c *Config) { c.Storage.DataDir = "" },
		"no table":         func(c *Config) { c.Storage.Table = "" },
		"no schema":        func(c *Config) { c.Storage.Schema = "" },
		"unknown level":    func(c *Config) { c.Logger.LogLevel = "verbose" },
		"negative backups": func(c *Config) { c.Logger.MaxBackups = -1 },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := Default()
			mutate(&c)

			err := c.Validate()
			require.Error(t, err)
			var verrs validator.ValidationErrors
			assert.True(t, errors.As(err, &verrs))
		})
	}
}
