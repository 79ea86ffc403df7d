package file

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/api-sage/somaluganda-remit/src/internal/commons"
	"github.com/api-sage/somaluganda-remit/src/internal/domain"
	"github.com/api-sage/somaluganda-remit/src/internal/logger"
)

const documentVersion = 1

type document struct {
	Version    int                        `json:"version"`
	TxnHistory []domain.TransactionRecord `json:"txn_history"`
	Theme      domain.Theme               `json:"theme"`
}

// LedgerStore persists the ledger and the theme preference to one JSON
// document, rewritten in full on every mutation.
type LedgerStore struct {
	mu      sync.RWMutex
	path    string
	records []domain.TransactionRecord
	theme   domain.Theme
	now     func() time.Time
}

func NewLedgerStore(path string) (*LedgerStore, error) {
	s := &LedgerStore{
		path:  path,
		theme: domain.ThemeLight,
		now:   time.Now,
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *LedgerStore) load() error {
	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		logger.Info("ledger store starting empty", logger.Fields{"path": s.path})
		return nil
	}
	if err != nil {
		return fmt.Errorf("read ledger file %q: %w", s.path, err)
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil
	}

	var doc document
	if trimmed[0] == '[' {
		err = json.Unmarshal(trimmed, &doc.TxnHistory)
	} else {
		err = json.Unmarshal(trimmed, &doc)
	}
	if err != nil {
		return s.quarantine(err)
	}

	s.records = doc.TxnHistory
	if theme, parseErr := domain.ParseTheme(string(doc.Theme)); parseErr == nil {
		s.theme = theme
	}

	logger.Info("ledger store loaded", logger.Fields{
		"path":    s.path,
		"records": len(s.records),
		"legacy":  trimmed[0] == '[',
	})
	return nil
}

// quarantine moves an unreadable ledger aside and starts from empty.
func (s *LedgerStore) quarantine(cause error) error {
	corruptPath := fmt.Sprintf("%s.corrupt-%d", s.path, s.now().Unix())
	if err := os.Rename(s.path, corruptPath); err != nil {
		return fmt.Errorf("move corrupt ledger %q aside: %w", s.path, err)
	}

	logger.Error("ledger store corrupt, starting empty", cause, logger.Fields{
		"path":        s.path,
		"corruptCopy": corruptPath,
	})
	s.records = nil
	return nil
}

func (s *LedgerStore) Prepend(_ context.Context, record domain.TransactionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.records {
		if existing.TransactionID == record.TransactionID {
			return fmt.Errorf("prepend transaction %q: %w", record.TransactionID, commons.ErrDuplicateRecord)
		}
	}

	next := make([]domain.TransactionRecord, 0, len(s.records)+1)
	next = append(next, record)
	next = append(next, s.records...)

	if err := s.persistLocked(next, s.theme); err != nil {
		return err
	}
	s.records = next

	logger.Info("ledger store prepend success", logger.Fields{
		"transactionId": record.TransactionID,
		"status":        record.Status,
	})
	return nil
}

func (s *LedgerStore) List(_ context.Context) ([]domain.TransactionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.TransactionRecord, len(s.records))
	copy(out, s.records)
	return out, nil
}

func (s *LedgerStore) Get(_ context.Context, transactionID string) (domain.TransactionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, record := range s.records {
		if record.TransactionID == transactionID {
			return record, nil
		}
	}
	return domain.TransactionRecord{}, commons.ErrRecordNotFound
}

func (s *LedgerStore) UpdateStatus(_ context.Context, transactionID string, status domain.TransactionStatus) (domain.TransactionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, record := range s.records {
		if record.TransactionID == transactionID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.TransactionRecord{}, commons.ErrRecordNotFound
	}

	next := make([]domain.TransactionRecord, len(s.records))
	copy(next, s.records)
	next[idx].Status = status

	if err := s.persistLocked(next, s.theme); err != nil {
		return domain.TransactionRecord{}, err
	}
	s.records = next

	return next[idx], nil
}

func (s *LedgerStore) GetTheme(_ context.Context) (domain.Theme, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme, nil
}

func (s *LedgerStore) SetTheme(_ context.Context, theme domain.Theme) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persistLocked(s.records, theme); err != nil {
		return err
	}
	s.theme = theme
	return nil
}

// persistLocked writes through a temp file so a crash never leaves a
// half-written ledger behind.
func (s *LedgerStore) persistLocked(records []domain.TransactionRecord, theme domain.Theme) error {
	if records == nil {
		records = []domain.TransactionRecord{}
	}
	payload, err := json.MarshalIndent(document{
		Version:    documentVersion,
		TxnHistory: records,
		Theme:      theme,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create ledger directory %q: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+strings.TrimPrefix(filepath.Base(s.path), ".")+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp ledger file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(payload); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write temp ledger file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp ledger file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace ledger file %q: %w", s.path, err)
	}

	return nil
}
