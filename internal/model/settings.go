package model

import (
	"encoding/json"
	"fmt"
	"math"
)

// SettingsKey is the local storage key holding the display settings.
const SettingsKey = "teleprompter-settings"

const (
	DefaultFontSize   = 13
	DefaultLineHeight = 1.5

	MinFontSize   = 10
	MaxFontSize   = 32
	MinLineHeight = 1.0
	MaxLineHeight = 3.0

	FontSizeStep   = 1
	LineHeightStep = 0.1
)

type Settings struct {
	FontSize   int     `json:"fontSize"`
	LineHeight float64 `json:"lineHeight"`
}

func DefaultSettings() Settings {
	return Settings{FontSize: DefaultFontSize, LineHeight: DefaultLineHeight}
}

// Clamp keeps both values inside the slider ranges. Line height is kept to
// one decimal place.
func (s Settings) Clamp() Settings {
	if s.FontSize < MinFontSize {
		s.FontSize = MinFontSize
	}
	if s.FontSize > MaxFontSize {
		s.FontSize = MaxFontSize
	}
	if math.IsNaN(s.LineHeight) || s.LineHeight < MinLineHeight {
		s.LineHeight = MinLineHeight
	}
	if s.LineHeight > MaxLineHeight {
		s.LineHeight = MaxLineHeight
	}
	s.LineHeight = math.Round(s.LineHeight*10) / 10
	return s
}

func (s Settings) WithFontSize(delta int) Settings {
	s.FontSize += delta
	return s.Clamp()
}

func (s Settings) WithLineHeight(delta float64) Settings {
	s.LineHeight += delta
	return s.Clamp()
}

func (s Settings) FontSizeLabel() string {
	return fmt.Sprintf("%dpx", s.FontSize)
}

func (s Settings) LineHeightLabel() string {
	return fmt.Sprintf("%.1f", s.LineHeight)
}

// DecodeSettings merges saved JSON over the defaults, so missing fields keep
// their default value.
func DecodeSettings(data string) (Settings, error) {
	out := DefaultSettings()
	if data == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(data), &out); err != nil {
		return DefaultSettings(), fmt.Errorf("decode settings: %w", err)
	}
	return out.Clamp(), nil
}

func EncodeSettings(s Settings) (string, error) {
	payload, err := json.Marshal(s.Clamp())
	if err != nil {
		return "", err
	}
	return string(payload), nil
}
