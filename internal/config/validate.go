package config

import (
	"fmt"
	"math"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Resolver.validate(); err != nil {
		return fmt.Errorf("resolver: %w", err)
	}
	if err := c.Scoring.validate(); err != nil {
		return fmt.Errorf("scoring: %w", err)
	}
	if err := c.Monitor.validate(); err != nil {
		return fmt.Errorf("monitor: %w", err)
	}
	if c.GLEIF.PageSize <= 0 {
		return fmt.Errorf("gleif: page_size must be > 0 (got %d)", c.GLEIF.PageSize)
	}
	return nil
}

func (r *ResolverConfig) validate() error {
	if r.Concurrency <= 0 {
		return fmt.Errorf("concurrency must be > 0 (got %d)", r.Concurrency)
	}
	if r.SuccessThreshold < 0 || r.SuccessThreshold > 100 {
		return fmt.Errorf("success_threshold must be in [0,100] (got %d)", r.SuccessThreshold)
	}
	if r.CacheThreshold < 0 || r.CacheThreshold > 100 {
		return fmt.Errorf("cache_threshold must be in [0,100] (got %d)", r.CacheThreshold)
	}
	if r.CacheThreshold < r.SuccessThreshold {
		return fmt.Errorf("cache_threshold (%d) must be >= success_threshold (%d)", r.CacheThreshold, r.SuccessThreshold)
	}
	if r.TaskTimeout <= 0 {
		return fmt.Errorf("task_timeout must be > 0 (got %v)", r.TaskTimeout)
	}
	return nil
}

func (s *ScoringConfig) validate() error {
	for name, w := range map[string]float64{
		"name_weight":         s.NameWeight,
		"jurisdiction_weight": s.JurisdictionWeight,
		"entity_type_weight":  s.EntityTypeWeight,
		"status_weight":       s.StatusWeight,
	} {
		if w < 0 || w > 1 {
			return fmt.Errorf("%s must be in [0,1] (got %v)", name, w)
		}
	}

	sum := s.NameWeight + s.JurisdictionWeight + s.EntityTypeWeight + s.StatusWeight
	if math.Abs(sum-1.0) > 0.001 {
		return fmt.Errorf("weights must sum to 1.0 (got %v)", sum)
	}
	return nil
}

func (m *MonitorConfig) validate() error {
	if m.StuckInterval <= 0 {
		return fmt.Errorf("stuck_interval must be > 0 (got %v)", m.StuckInterval)
	}
	if m.HealthInterval <= 0 {
		return fmt.Errorf("health_interval must be > 0 (got %v)", m.HealthInterval)
	}
	if m.StallThreshold <= 0 {
		return fmt.Errorf("stall_threshold must be > 0 (got %v)", m.StallThreshold)
	}
	return nil
}
