package storage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/sandeepkv93/teleprompt/internal/model"
)

// FileGateway keeps the slide mapping in a single JSON document.
type FileGateway struct {
	path   string
	logger *slog.Logger
	now    func() time.Time
}

func NewFileGateway(path string, logger *slog.Logger) *FileGateway {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &FileGateway{path: path, logger: logger, now: time.Now}
}

func (g *FileGateway) Path() string {
	return g.path
}

// LoadScripts reads and migrates the document. A missing file is an empty
// mapping. A file that cannot be decoded is moved aside before the error is
// returned so a later save cannot overwrite it.
func (g *FileGateway) LoadScripts(ctx context.Context) (model.Raw, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(g.path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.Raw{}, nil
		}
		return nil, fmt.Errorf("read scripts: %w", err)
	}
	raw, format, err := model.Decode(data)
	if err != nil {
		g.quarantine()
		return nil, err
	}
	if format == model.FormatLegacy {
		g.logger.Info("converted legacy scripts format", "path", g.path, "slides", len(raw))
	}
	return raw, nil
}

func (g *FileGateway) SaveScripts(ctx context.Context, raw model.Raw) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	payload, err := model.Encode(raw)
	if err != nil {
		return fmt.Errorf("encode scripts: %w", err)
	}
	dir := filepath.Dir(g.path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create scripts dir: %w", err)
		}
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(g.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp scripts: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(append(payload, '\n')); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write scripts: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close scripts: %w", err)
	}
	if err := os.Rename(tmpName, g.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace scripts: %w", err)
	}
	return nil
}

func (g *FileGateway) quarantine() {
	target := g.path + ".corrupt-" + strconv.FormatInt(g.now().Unix(), 10)
	if err := os.Rename(g.path, target); err != nil {
		g.logger.Error("move unreadable scripts aside", "path", g.path, "err", err)
		return
	}
	g.logger.Warn("moved unreadable scripts aside", "path", g.path, "backup", target)
}
