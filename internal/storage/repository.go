package storage

import (
	"context"
	"errors"

	"github.com/sandeepkv93/teleprompt/internal/model"
)

var ErrNotFound = errors.New("storage: not found")

// ScriptsGateway persists the slide mapping. A nil error from SaveScripts
// means the whole mapping was written.
type ScriptsGateway interface {
	LoadScripts(ctx context.Context) (model.Raw, error)
	SaveScripts(ctx context.Context, raw model.Raw) error
}

// LocalStorage is a string key/value store. GetItem returns ErrNotFound for
// unknown keys.
type LocalStorage interface {
	GetItem(ctx context.Context, key string) (string, error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
}
