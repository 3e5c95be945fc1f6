package webui

import (
	"github.com/handwave/handwave/core/executor"
	"github.com/handwave/handwave/core/generator"
	"github.com/handwave/handwave/core/registry"
	"github.com/handwave/handwave/core/scheduler"
	"github.com/handwave/handwave/services/keymap"
)

// Config is assembled once at startup and never mutated afterwards; every
// handler reads its collaborators from here instead of package-level state.
type Config struct {
	Registry   *registry.Registry
	Generator  *generator.Generator
	Executor   *executor.Executor
	Dispatcher *keymap.Dispatcher
	Scheduler  *scheduler.Scheduler
}

type Option func(*Config)

func WithRegistry(reg *registry.Registry) Option {
	return func(c *Config) {
		c.Registry = reg
	}
}

func WithGenerator(gen *generator.Generator) Option {
	return func(c *Config) {
		c.Generator = gen
	}
}

func WithExecutor(exec *executor.Executor) Option {
	return func(c *Config) {
		c.Executor = exec
	}
}

func WithDispatcher(d *keymap.Dispatcher) Option {
	return func(c *Config) {
		c.Dispatcher = d
	}
}

func WithScheduler(s *scheduler.Scheduler) Option {
	return func(c *Config) {
		c.Scheduler = s
	}
}

func (c *Config) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(c)
	}
}

func NewConfig(opts ...Option) *Config {
	c := &Config{}
	c.Apply(opts...)
	return c
}
