package store

import (
	"errors"
	"path/filepath"

	"finanger/internal/core"
)

// ErrDuplicateTransaction rejects an insert whose record structurally equals
// one already on disk.
var ErrDuplicateTransaction = errors.New("duplicate transaction")

// TransactionStore keeps one JSON array file per user id under its base
// directory. Transactions have no assigned ids; all matching is structural.
type TransactionStore struct {
	dir string
}

// NewTransactionStore returns a store rooted at dir.
func NewTransactionStore(dir string) *TransactionStore {
	return &TransactionStore{dir: dir}
}

func (s *TransactionStore) path(userID string) string {
	return filepath.Join(s.dir, userID+".json")
}

// Load returns the user's full transaction set. A missing file is an empty
// set; an unreadable file is ErrUnreadable.
func (s *TransactionStore) Load(userID string) ([]core.Transaction, error) {
	return readArray[core.Transaction](s.path(userID))
}

// Add appends tx unless a structurally equal record already exists.
func (s *TransactionStore) Add(userID string, tx core.Transaction) error {
	txs, err := s.Load(userID)
	if err != nil {
		return err
	}
	for _, existing := range txs {
		if existing.Equal(tx) {
			return ErrDuplicateTransaction
		}
	}
	return writeArray(s.path(userID), append(txs, tx))
}

// Replace rewrites the user's whole set in one shot. CSV import uses this to
// append all surviving rows with a single write.
func (s *TransactionStore) Replace(userID string, txs []core.Transaction) error {
	return writeArray(s.path(userID), txs)
}

// Update removes the first record structurally equal to old and appends
// updated, rewriting the file once. When several records could match (an
// edit momentarily making two records equal), the first in iteration order
// is the one replaced.
func (s *TransactionStore) Update(userID string, old, updated core.Transaction) error {
	txs, err := s.Load(userID)
	if err != nil {
		return err
	}
	for i, existing := range txs {
		if existing.Equal(old) {
			txs = append(txs[:i], txs[i+1:]...)
			txs = append(txs, updated)
			return writeArray(s.path(userID), txs)
		}
	}
	return ErrNotFound
}

// Delete removes the first record structurally equal to tx.
func (s *TransactionStore) Delete(userID string, tx core.Transaction) error {
	txs, err := s.Load(userID)
	if err != nil {
		return err
	}
	for i, existing := range txs {
		if existing.Equal(tx) {
			txs = append(txs[:i], txs[i+1:]...)
			return writeArray(s.path(userID), txs)
		}
	}
	return ErrNotFound
}
