package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/cfgpack/errs"
)

type testConfig struct {
	Depth    int
	Name     string
	Wide     bool
	LastCall string
}

func (c *testConfig) setDepth(v int) error {
	if v <= 0 {
		return errors.New("depth must be positive")
	}
	c.Depth = v
	c.LastCall = "setDepth"

	return nil
}

type validatedConfig struct {
	Min, Max int
}

func (c *validatedConfig) Validate() error {
	if c.Min > c.Max {
		return errors.New("min exceeds max")
	}

	return nil
}

func TestApply(t *testing.T) {
	t.Run("applies options in order", func(t *testing.T) {
		cfg := &testConfig{}
		err := Apply(cfg,
			New(func(c *testConfig) error { return c.setDepth(8) }),
			NoError(func(c *testConfig) { c.Name = "records"; c.LastCall = "name" }),
			NoError(func(c *testConfig) { c.Wide = true; c.LastCall = "wide" }),
		)

		require.NoError(t, err)
		require.Equal(t, 8, cfg.Depth)
		require.Equal(t, "records", cfg.Name)
		require.True(t, cfg.Wide)
		require.Equal(t, "wide", cfg.LastCall)
	})

	t.Run("stops at first error and wraps it", func(t *testing.T) {
		cfg := &testConfig{}
		err := Apply(cfg,
			New(func(c *testConfig) error { return c.setDepth(4) }),
			New(func(c *testConfig) error { return c.setDepth(-1) }),
			NoError(func(c *testConfig) { c.Name = "not applied" }),
		)

		require.ErrorIs(t, err, errs.ErrInvalidOption)
		require.Contains(t, err.Error(), "depth must be positive")
		require.Contains(t, err.Error(), "option 1")
		require.Equal(t, 4, cfg.Depth)
		require.Empty(t, cfg.Name)
	})

	t.Run("skips nil options", func(t *testing.T) {
		cfg := &testConfig{}
		err := Apply(cfg, nil, NoError(func(c *testConfig) { c.Name = "x" }))
		require.NoError(t, err)
		require.Equal(t, "x", cfg.Name)
	})

	t.Run("empty options leave target unchanged", func(t *testing.T) {
		cfg := &testConfig{}
		require.NoError(t, Apply(cfg))
		require.Equal(t, testConfig{}, *cfg)
	})
}

func TestApply_Validator(t *testing.T) {
	t.Run("valid configuration", func(t *testing.T) {
		cfg := &validatedConfig{}
		err := Apply(cfg, NoError(func(c *validatedConfig) { c.Max = 10 }))
		require.NoError(t, err)
	})

	t.Run("cross-option failure", func(t *testing.T) {
		cfg := &validatedConfig{}
		err := Apply(cfg, NoError(func(c *validatedConfig) { c.Min = 5 }))
		require.ErrorIs(t, err, errs.ErrInvalidOption)
		require.Contains(t, err.Error(), "min exceeds max")
	})
}
