package scenario

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ballclash/ballclash-sim/internal/physics"
)

// Settings is the on-disk scenario document. Values carries partial tuning
// overrides keyed by the tuning field names; anything absent keeps its
// default.
type Settings struct {
	Width           float64            `json:"width,omitempty"`
	Height          float64            `json:"height,omitempty"`
	SideMargin      float64            `json:"side_margin,omitempty"`
	LeftSpeed       float64            `json:"left_speed,omitempty"`
	RightSpeed      float64            `json:"right_speed,omitempty"`
	Values          map[string]float64 `json:"values,omitempty"`
	BallSpecs       []BodySpec         `json:"ball_specs,omitempty"`
	InvincibleTeams []string           `json:"invincible_teams,omitempty"`
}

// LoadSettings reads and decodes a settings document.
func LoadSettings(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("scenario: read settings: %w", err)
	}
	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("scenario: decode settings %s: %w", path, err)
	}
	return s, nil
}

// Tuning overlays the document's value overrides on the default tuning and
// validates the result.
func (s Settings) Tuning() (physics.Tuning, error) {
	tn := physics.DefaultTuning()
	if len(s.Values) == 0 {
		return tn, nil
	}
	raw, err := json.Marshal(s.Values)
	if err != nil {
		return physics.Tuning{}, fmt.Errorf("scenario: encode tuning overrides: %w", err)
	}
	if err := json.Unmarshal(raw, &tn); err != nil {
		return physics.Tuning{}, fmt.Errorf("scenario: apply tuning overrides: %w", err)
	}
	if err := tn.Validate(); err != nil {
		return physics.Tuning{}, err
	}
	return tn, nil
}

// World assembles the arena described by the document. Missing dimensions
// fall back to the stock arena size.
func (s Settings) World() (*physics.World, error) {
	tn, err := s.Tuning()
	if err != nil {
		return nil, err
	}

	width := s.Width
	if width <= 0 {
		width = 1400
	}
	height := s.Height
	if height <= 0 {
		height = 520
	}
	margin := s.SideMargin
	if margin < 0 {
		margin = 0
	}

	if len(s.BallSpecs) == 0 {
		cfg := DefaultDuelConfig()
		cfg.Width = width
		cfg.Height = height
		if margin > 0 {
			cfg.SideMargin = margin
		}
		cfg.Tuning = tn
		return DuelWorld(cfg)
	}

	return BuildWorld(BuildConfig{
		Width:           width,
		Height:          height,
		SideMargin:      margin,
		Tuning:          tn,
		Specs:           s.BallSpecs,
		InvincibleTeams: s.InvincibleTeams,
		LeftSpeed:       s.LeftSpeed,
		RightSpeed:      s.RightSpeed,
	})
}
