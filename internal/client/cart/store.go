package cart

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/storefront-client/internal/client/store"
	"github.com/dmitrijs2005/storefront-client/internal/dbx"
	"github.com/dmitrijs2005/storefront-client/internal/logging"
)

const (
	// anonymousKey stores the cart when no credential is present.
	anonymousKey = "cart"
	keyPrefix    = "cart_"

	// KeyCartCleared flags that the one-time legacy cleanup already ran.
	KeyCartCleared = "cart_cleared"
)

// SubjectSource yields the subject identifier of the current credential,
// or "" when anonymous.
type SubjectSource interface {
	Subject(ctx context.Context) (string, error)
}

// Store is the per-subject cart cache. The key is derived from the
// current credential's subject, so distinct signed-in users on the same
// device never share a cart; switching subjects changes the resolved key,
// not the stored contents.
type Store struct {
	db       *sql.DB
	subjects SubjectSource
	log      logging.Logger
}

func NewStore(db *sql.DB, subjects SubjectSource, log logging.Logger) *Store {
	return &Store{db: db, subjects: subjects, log: log}
}

func (s *Store) repo() store.Store {
	return store.NewSQLiteStore(s.db)
}

// Key resolves the storage key for the current subject. There is no
// fallback onto another subject's key.
func (s *Store) Key(ctx context.Context) (string, error) {
	id, err := s.subjects.Subject(ctx)
	if err != nil {
		return "", err
	}
	if id == "" {
		return anonymousKey, nil
	}
	return keyPrefix + id, nil
}

// Read returns the cart lines for the current subject. A missing key is
// an empty cart.
func (s *Store) Read(ctx context.Context) ([]Line, error) {
	key, err := s.Key(ctx)
	if err != nil {
		return nil, err
	}

	raw, err := s.repo().Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return []Line{}, nil
	}

	var lines []Line
	if err := json.Unmarshal(raw, &lines); err != nil {
		return nil, fmt.Errorf("corrupted cart data: %w", err)
	}
	return lines, nil
}

// Write replaces the cart lines for the current subject.
func (s *Store) Write(ctx context.Context, lines []Line) error {
	key, err := s.Key(ctx)
	if err != nil {
		return err
	}

	data, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	return s.repo().Set(ctx, key, data)
}

// Add merges qty into the line for productID, appending a new line when
// the product is not yet in the cart.
func (s *Store) Add(ctx context.Context, productID int64, qty int64) error {
	lines, err := s.Read(ctx)
	if err != nil {
		return err
	}

	merged := false
	for i := range lines {
		if lines[i].ProductID == productID {
			lines[i].Quantity += qty
			merged = true
			break
		}
	}
	if !merged {
		lines = append(lines, Line{ProductID: productID, Quantity: qty})
	}

	return s.Write(ctx, lines)
}

// Clear removes the current subject's cart. Called after a successful
// order creation.
func (s *Store) Clear(ctx context.Context) error {
	key, err := s.Key(ctx)
	if err != nil {
		return err
	}
	return s.repo().Delete(ctx, key)
}

// PurgeLegacy wipes cart data written before per-subject namespacing.
// It runs at most once per device, guarded by the KeyCartCleared flag.
func (s *Store) PurgeLegacy(ctx context.Context) error {
	repo := s.repo()

	flag, err := repo.Get(ctx, KeyCartCleared)
	if err != nil {
		return err
	}
	if flag != nil {
		return nil
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		txRepo := store.NewSQLiteStore(tx)

		all, err := txRepo.List(ctx)
		if err != nil {
			return err
		}
		for key := range all {
			if key == KeyCartCleared || !strings.Contains(key, "cart") {
				continue
			}
			if err := txRepo.Delete(ctx, key); err != nil {
				return err
			}
			if s.log != nil {
				s.log.Debug(ctx, "removed legacy cart key", "key", key)
			}
		}

		return txRepo.Set(ctx, KeyCartCleared, []byte("true"))
	})
}
