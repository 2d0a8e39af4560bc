package config

import (
	"fmt"

	"github.com/kbukum/lego/logger"
	"github.com/kbukum/lego/observability"
	"github.com/kbukum/lego/validation"
)

// ServiceConfig is the top-level configuration of the lego binary.
type ServiceConfig struct {
	Name          string               `yaml:"name" mapstructure:"name"`
	Environment   string               `yaml:"environment" mapstructure:"environment"`
	Version       string               `yaml:"version" mapstructure:"version"`
	Debug         bool                 `yaml:"debug" mapstructure:"debug"`
	Logging       logger.Config        `yaml:"logging" mapstructure:"logging"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
	Query         QueryConfig          `yaml:"query" mapstructure:"query"`
}

// ApplyDefaults applies default values to every section.
func (c *ServiceConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "lego"
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Debug && c.Logging.Level == "" {
		c.Logging.Level = "debug"
	}
	c.Logging.ApplyDefaults()
	c.Observability.ApplyDefaults()
	c.Query.ApplyDefaults()
}

// Validate validates every section.
func (c *ServiceConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("config.name is required")
	}
	validEnvs := []string{"development", "staging", "production"}
	found := false
	for _, v := range validEnvs {
		if c.Environment == v {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("config.environment must be one of [development, staging, production] (got: %s)", c.Environment)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	if err := c.Observability.Validate(); err != nil {
		return fmt.Errorf("config.observability: %w", err)
	}
	if err := c.Query.Validate(); err != nil {
		return fmt.Errorf("config.query: %w", err)
	}
	return nil
}

// QueryConfig tunes how plans are turned into transformations.
type QueryConfig struct {
	// MaxLimit caps every limit step. Zero means unbounded.
	MaxLimit int `yaml:"max_limit" mapstructure:"max_limit" validate:"gte=0"`
	// DefaultOrder is used by sortBy steps that leave order empty.
	DefaultOrder string `yaml:"default_order" mapstructure:"default_order" validate:"sortorder"`
	// StrictSchema rejects data documents whose records hold nested
	// objects or arrays.
	StrictSchema bool `yaml:"strict_schema" mapstructure:"strict_schema"`
	// PlanDirs are searched when a plan is referenced by name.
	PlanDirs []string `yaml:"plan_dirs" mapstructure:"plan_dirs"`
}

// ApplyDefaults fills unset fields.
func (c *QueryConfig) ApplyDefaults() {
	if c.DefaultOrder == "" {
		c.DefaultOrder = "asc"
	}
	if len(c.PlanDirs) == 0 {
		c.PlanDirs = []string{".", "plans"}
	}
}

// Validate validates query configuration.
func (c *QueryConfig) Validate() error {
	return validation.Validate(c)
}
