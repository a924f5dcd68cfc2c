package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"bigtwo/internal/domain"
)

func TestRulesetDefaultsOnNil(t *testing.T) {
	var c *RulesConfig
	rules := c.Ruleset()
	want := domain.DefaultRuleset()
	if rules.OpeningCard != want.OpeningCard || rules.ScoreThreshold != want.ScoreThreshold {
		t.Fatalf("nil config must yield defaults, got %+v", rules)
	}
}

func TestRulesetOverrides(t *testing.T) {
	rank := domain.RankFour
	suit := domain.SuitSpades
	chaining := false
	threshold := int32(50)
	autoPass := 5
	turn := 0

	c := &RulesConfig{
		OpeningRank:         &rank,
		OpeningSuit:         &suit,
		FiveCardChaining:    &chaining,
		ScoreThreshold:      &threshold,
		AutoPassSeconds:     &autoPass,
		TurnDurationSeconds: &turn,
	}
	rules := c.Ruleset()

	if rules.OpeningCard != (domain.Card{Rank: domain.RankFour, Suit: domain.SuitSpades}) {
		t.Errorf("opening card = %v", rules.OpeningCard)
	}
	if rules.FiveCardChaining {
		t.Errorf("chaining override ignored")
	}
	if rules.ScoreThreshold != 50 {
		t.Errorf("threshold = %d", rules.ScoreThreshold)
	}
	if rules.AutoPassDuration != 5*time.Second {
		t.Errorf("auto-pass duration = %v", rules.AutoPassDuration)
	}
	if rules.TurnDuration != 0 {
		t.Errorf("turn clock must be disabled when set to zero, got %v", rules.TurnDuration)
	}
}

func TestRulesetPartialCardPointsIgnored(t *testing.T) {
	c := &RulesConfig{CardPoints: []int32{9, 9, 9}}
	rules := c.Ruleset()
	if rules.CardPoints != domain.DefaultRuleset().CardPoints {
		t.Fatalf("short card_points table must not be applied")
	}
}

func TestLoadRulesConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules_config.json")
	body := []byte(`{"score_threshold": 80, "auto_pass_seconds": 7, "bot_auto_fill_delay_seconds": 3}`)
	if err := os.WriteFile(path, body, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if err := LoadRulesConfig(path); err != nil {
		t.Fatalf("LoadRulesConfig: %v", err)
	}
	c := GetRulesConfig()
	if c == nil {
		t.Fatalf("config not retained after load")
	}
	if c.ScoreThreshold == nil || *c.ScoreThreshold != 80 {
		t.Errorf("score_threshold not parsed")
	}
	if c.BotAutoFillDelaySeconds != 3 {
		t.Errorf("bot_auto_fill_delay_seconds = %d", c.BotAutoFillDelaySeconds)
	}
	rules := Ruleset()
	if rules.AutoPassDuration != 7*time.Second {
		t.Errorf("auto_pass_seconds not applied, got %v", rules.AutoPassDuration)
	}

	// The loader is once-only; a second call returns the first outcome.
	if err := LoadRulesConfig(filepath.Join(t.TempDir(), "missing.json")); err != nil {
		t.Errorf("second load must be a no-op, got %v", err)
	}
}
