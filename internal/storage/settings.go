package storage

import (
	"context"
	"errors"

	"github.com/sandeepkv93/teleprompt/internal/model"
)

// LoadSettings reads the display settings. The defaults come back with a nil
// error when nothing has been saved yet, and with the error otherwise.
func LoadSettings(ctx context.Context, ls LocalStorage) (model.Settings, error) {
	if ls == nil {
		return model.DefaultSettings(), nil
	}
	value, err := ls.GetItem(ctx, model.SettingsKey)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return model.DefaultSettings(), nil
		}
		return model.DefaultSettings(), err
	}
	return model.DecodeSettings(value)
}

func SaveSettings(ctx context.Context, ls LocalStorage, s model.Settings) error {
	if ls == nil {
		return nil
	}
	value, err := model.EncodeSettings(s)
	if err != nil {
		return err
	}
	return ls.SetItem(ctx, model.SettingsKey, value)
}
