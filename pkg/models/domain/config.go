package domain

import "fmt"

// AnalysisConfig carries the externally supplied tuning knobs for metric
// computation.
type AnalysisConfig struct {
	// TopN is the length of the product ranking. Valid range: 3-20.
	TopN int
	// Sigma is the anomaly sensitivity in standard deviations.
	// Valid range: 1.5-4.0.
	Sigma float64
}

// DefaultAnalysisConfig returns the defaults used when the caller supplies
// nothing.
func DefaultAnalysisConfig() AnalysisConfig {
	return AnalysisConfig{
		TopN:  5,
		Sigma: 2.0,
	}
}

// Validate checks the documented ranges once at the boundary.
func (c AnalysisConfig) Validate() error {
	if c.TopN < 3 || c.TopN > 20 {
		return fmt.Errorf("top_n must be between 3 and 20, got %d", c.TopN)
	}
	if c.Sigma < 1.5 || c.Sigma > 4.0 {
		return fmt.Errorf("sigma must be between 1.5 and 4.0, got %g", c.Sigma)
	}
	return nil
}
