package config

import (
	"fmt"
	"strconv"

	"github.com/dax233/brainhole/internal/domain"
)

// Validate checks per-entry requiredness and value ranges. Conflicts
// across lexicons (duplicate tables, duplicate placeholders, unknown
// handler names) are caught later, at registry build.
func (c *Config) Validate() error {
	if len(c.Lexicons) == 0 {
		return domain.NewConfigError("lexicons", "at least one lexicon must be configured")
	}

	for i, l := range c.Lexicons {
		path := func(field string) string {
			return fmt.Sprintf("lexicons[%d].%s", i, field)
		}
		if l.Name == "" {
			return domain.NewConfigError(path("name"), "required")
		}
		if l.Handler == "" {
			return domain.NewConfigError(path("handler"), "required")
		}
		if l.TableName == "" {
			return domain.NewConfigError(path("table_name"), "required")
		}
		if l.Placeholder == "" {
			return domain.NewConfigError(path("placeholder"), "required")
		}
		if l.FailureMessage == "" {
			return domain.NewConfigError(path("failure_message"), "required")
		}
		if len(l.Keywords) == 0 {
			return domain.NewConfigError(path("keywords"), "at least one keyword required")
		}
		for j, kw := range l.Keywords {
			if kw == "" {
				return domain.NewConfigError(fmt.Sprintf("lexicons[%d].keywords[%d]", i, j), "must not be empty")
			}
		}
		if *l.RetryAttempts < 0 {
			return domain.NewConfigError(path("retry_attempts"), "must be non-negative, got %d", *l.RetryAttempts)
		}
	}

	if c.WordGenerator.Enabled {
		if err := validateWordGenerator(&c.WordGenerator); err != nil {
			return err
		}
	}
	return nil
}

func validateWordGenerator(wg *WordGeneratorSetting) error {
	if len(wg.APIKeys) == 0 {
		return domain.NewConfigError("word_generator.api_keys", "required when word generation is enabled")
	}
	if wg.MaxCombinationsPerRequest < 1 {
		return domain.NewConfigError("word_generator.max_combinations_per_request", "must be at least 1")
	}
	for length, weight := range wg.GenerationProbabilities {
		n, err := strconv.Atoi(length)
		if err != nil || n < 2 {
			return domain.NewConfigError("word_generator.generation_probabilities", "length %q must be an integer >= 2", length)
		}
		if weight <= 0 {
			return domain.NewConfigError("word_generator.generation_probabilities", "weight for length %s must be positive", length)
		}
	}
	return nil
}
