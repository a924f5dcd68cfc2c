package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"bigtwo/internal/domain"
)

// RulesConfig is the on-disk shape of the house-rule parameters. Every
// field is optional; missing fields keep the engine defaults.
type RulesConfig struct {
	OpeningRank *int32 `json:"opening_rank"`
	OpeningSuit *int32 `json:"opening_suit"`

	// FiveCardChaining toggles the house variant where any five-card combo
	// beats any lower-category five-card combo.
	FiveCardChaining *bool `json:"five_card_chaining"`

	// CardPoints is indexed by rank (3 first, 2 last); must hold exactly 13
	// entries when present.
	CardPoints []int32 `json:"card_points"`

	ScoreThreshold      *int32 `json:"score_threshold"`
	AutoPassSeconds     *int   `json:"auto_pass_seconds"`
	TurnDurationSeconds *int   `json:"turn_duration_seconds"`

	// Bot pacing for server-filled seats.
	BotMinDelaySeconds      int `json:"bot_min_delay_seconds"`
	BotMaxDelaySeconds      int `json:"bot_max_delay_seconds"`
	BotAutoFillDelaySeconds int `json:"bot_auto_fill_delay_seconds"`
}

var (
	cfg      *RulesConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadRulesConfig loads the rules configuration from the given path.
func LoadRulesConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read rules config: %w", err)
			return
		}

		var c RulesConfig
		if err := json.Unmarshal(data, &c); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal rules config: %w", err)
			return
		}
		if len(c.CardPoints) != 0 && len(c.CardPoints) != domain.NumRanks {
			loadErr = fmt.Errorf("card_points has %d entries, want %d", len(c.CardPoints), domain.NumRanks)
			return
		}
		cfg = &c
	})
	return loadErr
}

// GetRulesConfig returns the loaded configuration, or nil when no file was
// loaded.
func GetRulesConfig() *RulesConfig {
	return cfg
}

// Ruleset materializes a domain ruleset from the loaded configuration,
// falling back to the engine defaults for anything unset.
func Ruleset() domain.Ruleset {
	return cfg.Ruleset()
}

// Ruleset applies the config on top of domain.DefaultRuleset. Safe on a
// nil receiver.
func (c *RulesConfig) Ruleset() domain.Ruleset {
	rules := domain.DefaultRuleset()
	if c == nil {
		return rules
	}
	if c.OpeningRank != nil {
		rules.OpeningCard.Rank = *c.OpeningRank
	}
	if c.OpeningSuit != nil {
		rules.OpeningCard.Suit = *c.OpeningSuit
	}
	if c.FiveCardChaining != nil {
		rules.FiveCardChaining = *c.FiveCardChaining
	}
	if len(c.CardPoints) == domain.NumRanks {
		copy(rules.CardPoints[:], c.CardPoints)
	}
	if c.ScoreThreshold != nil {
		rules.ScoreThreshold = *c.ScoreThreshold
	}
	if c.AutoPassSeconds != nil {
		rules.AutoPassDuration = time.Duration(*c.AutoPassSeconds) * time.Second
	}
	if c.TurnDurationSeconds != nil {
		rules.TurnDuration = time.Duration(*c.TurnDurationSeconds) * time.Second
	}
	return rules
}
