package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/cpunion/claim-debate/pkg/cost"
	"github.com/cpunion/claim-debate/pkg/llm"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "pricing.input_per_million")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidProviders returns the supported backend names
func ValidProviders() []string {
	return []string{llm.ProviderGemini, llm.ProviderOpenAI}
}

// Validate checks the Config for invalid values and returns all validation errors found.
// A missing API key is not a validation error; it surfaces when the backend is created.
func (c *Config) Validate() []ValidationError {
	var errs []ValidationError

	if !slices.Contains(ValidProviders(), c.Provider) {
		errs = append(errs, ValidationError{
			Field:   "provider",
			Value:   c.Provider,
			Message: fmt.Sprintf("must be one of %v", ValidProviders()),
		})
	}
	if strings.TrimSpace(c.Model) == "" {
		errs = append(errs, ValidationError{Field: "model", Value: c.Model, Message: "must not be empty"})
	}
	if c.Pricing == (cost.Pricing{}) {
		errs = append(errs, ValidationError{
			Field:   "pricing",
			Value:   c.Model,
			Message: "no built-in pricing for this model; set pricing.input_per_million and pricing.output_per_million",
		})
	}
	if c.Pricing.InputPerMillion < 0 {
		errs = append(errs, ValidationError{Field: "pricing.input_per_million", Value: c.Pricing.InputPerMillion, Message: "must be non-negative"})
	}
	if c.Pricing.OutputPerMillion < 0 {
		errs = append(errs, ValidationError{Field: "pricing.output_per_million", Value: c.Pricing.OutputPerMillion, Message: "must be non-negative"})
	}
	if c.Timeout < 0 {
		errs = append(errs, ValidationError{Field: "timeout", Value: c.Timeout, Message: "must be non-negative"})
	}

	return errs
}
