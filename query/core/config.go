package core

import (
	"context"
	"errors"
	"fmt"
)

// configKey is a typed context key for config injection.
// Each config type gets its own unique key.
type configKey[C any] struct{}

// WithConfig attaches a configuration value to the context.
// The config is keyed by its type, so only one instance of each config type
// can be stored. Later calls with the same type will override earlier ones.
//
// Example:
//
//	ctx := core.WithConfig(ctx, &core.TraversalConfig{MaxBuffered: 1 << 20})
func WithConfig[C any](ctx context.Context, cfg C) context.Context {
	return context.WithValue(ctx, configKey[C]{}, cfg)
}

// GetConfig retrieves a configuration of type C from the context.
// Returns the config and true if found, or zero value and false if not present.
func GetConfig[C any](ctx context.Context) (C, bool) {
	if ctx == nil {
		return *new(C), false
	}
	if cfg, ok := ctx.Value(configKey[C]{}).(C); ok {
		return cfg, true
	}
	return *new(C), false
}

// ErrBufferLimit is returned when an operator that must buffer its whole
// source (ordering, grouping, reversing) exceeds TraversalConfig.MaxBuffered.
var ErrBufferLimit = errors.New("buffer limit exceeded")

// TraversalConfig tunes how cursors behave. Attach it with WithConfig;
// operators read it when Iterate is called.
type TraversalConfig struct {
	// CheckContext makes leaf sources check ctx.Err() before every step.
	CheckContext bool

	// MaxBuffered caps the number of elements a materializing operator may
	// hold. Zero means unlimited.
	MaxBuffered int
}

// DefaultTraversalConfig returns the configuration used when none is attached.
func DefaultTraversalConfig() TraversalConfig {
	return TraversalConfig{CheckContext: true}
}

// Validate reports whether the configuration is usable.
func (c *TraversalConfig) Validate() error {
	if c.MaxBuffered < 0 {
		return fmt.Errorf("max buffered must be >= 0, got %d", c.MaxBuffered)
	}
	return nil
}

// traversalConfig resolves the effective configuration for ctx.
func traversalConfig(ctx context.Context) TraversalConfig {
	if cfg, ok := GetConfig[*TraversalConfig](ctx); ok && cfg != nil {
		return *cfg
	}
	return DefaultTraversalConfig()
}
