package jsonfile

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-json"
	"github.com/vytor/chessreview/internal/errors"
	"github.com/vytor/chessreview/internal/logger"
	"github.com/vytor/chessreview/internal/models"
	"github.com/vytor/chessreview/internal/repository"
)

// Store keeps every reviewed game in one JSON array on disk. Each Save
// rewrites the whole file.
type Store struct {
	path string
	mu   sync.Mutex
}

// New returns a store backed by the file at path. The file and its parent
// directory are created on first access.
func New(path string) *Store {
	return &Store{path: path}
}

var _ repository.GameStore = (*Store)(nil)

func (s *Store) List(ctx context.Context) ([]models.ReviewedGame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read(ctx)
}

func (s *Store) Get(ctx context.Context, lichessID string) (*models.ReviewedGame, error) {
	games, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range games {
		if games[i].LichessID == lichessID {
			return &games[i], nil
		}
	}
	return nil, nil
}

func (s *Store) Has(ctx context.Context, sourceID string) (bool, error) {
	games, err := s.List(ctx)
	if err != nil {
		return false, err
	}
	for _, g := range games {
		if g.ChessComUUID == sourceID {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) Save(ctx context.Context, game models.ReviewedGame) error {
	log := logger.FromContext(ctx).WithPrefix("jsonfile")

	s.mu.Lock()
	defer s.mu.Unlock()

	games, err := s.read(ctx)
	if err != nil {
		return err
	}
	games = append(games, game)
	repository.SortNewestFirst(games)

	if err := s.write(games); err != nil {
		log.Error("failed to write %s: %v", s.path, err)
		return errors.NewStorageError("write", err)
	}
	log.Debug("saved game %s, %d games stored", game.ChessComUUID, len(games))
	return nil
}

// read must be called with mu held.
func (s *Store) read(ctx context.Context) ([]models.ReviewedGame, error) {
	if err := s.ensureFile(); err != nil {
		logger.FromContext(ctx).WithPrefix("jsonfile").Error("failed to initialise %s: %v", s.path, err)
		return nil, errors.NewStorageError("init", err)
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, errors.NewStorageError("read", err)
	}

	games := []models.ReviewedGame{}
	if len(bytes.TrimSpace(raw)) == 0 {
		return games, nil
	}
	if err := json.Unmarshal(raw, &games); err != nil {
		return nil, errors.NewStorageError("decode", fmt.Errorf("%s: %w", s.path, err))
	}
	return games, nil
}

func (s *Store) ensureFile() error {
	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(s.path, []byte("[]"), 0o644)
}

// write replaces the file through a temp file and rename so readers never
// observe a partially written array.
func (s *Store) write(games []models.ReviewedGame) error {
	data, err := json.MarshalIndent(games, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, s.path)
}
