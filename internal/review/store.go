// Package review implements the field reconciliation workflow: an edit
// buffer over a document's extracted fields, dirty-state tracking, and
// merge-on-save into the canonical field set.
package review

import (
	"context"
	"fmt"
	"sync"

	"github.com/reglabs/coaflow/internal/common"
	"github.com/reglabs/coaflow/internal/model"
)

// Store buffers reviewer edits over one document's extracted fields.
// It is Clean while the buffer is empty and Dirty once at least one
// field has a pending value. Only one save may be in flight at a time.
type Store struct {
	buffer map[string]string
	index  map[string]int
	fields []model.ExtractedField
	mu     sync.Mutex
	saving bool
}

// NewStore creates a store over a canonical field set. The fields are
// copied; the caller's slice is never mutated.
func NewStore(fields []model.ExtractedField) *Store {
	copied := make([]model.ExtractedField, len(fields))
	copy(copied, fields)

	index := make(map[string]int, len(copied))
	for i, f := range copied {
		index[f.FieldName] = i
	}

	return &Store{
		fields: copied,
		index:  index,
		buffer: make(map[string]string),
	}
}

// SetField stages a pending value for a field. A name absent from the
// canonical set is invalid input: the buffer never holds a key the
// field set does not.
func (s *Store) SetField(name, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.index[name]; !ok {
		return common.Validation(fmt.Sprintf("unknown field %q", name), nil)
	}

	s.buffer[name] = value
	return nil
}

// Dirty reports whether any edits are pending.
func (s *Store) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.buffer) > 0
}

// Fields returns a snapshot of the canonical field set.
func (s *Store) Fields() []model.ExtractedField {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make([]model.ExtractedField, len(s.fields))
	copy(snapshot, s.fields)
	return snapshot
}

// Save merges pending edits into the canonical field set. The merge
// preserves field identity and overwrites only the value; the
// last-staged value for a name wins over the original. Saving with an
// empty buffer is a no-op. When persist is non-nil it is called with
// the changed fields before the in-memory merge commits; a persist
// failure leaves both the canonical set and the buffer untouched.
// A save started while another is pending returns ErrSaveInFlight.
// Only the values this save actually captured leave the buffer, so an
// edit staged while persist was running stays pending for the next
// save.
func (s *Store) Save(ctx context.Context, persist func(context.Context, []model.ExtractedField) error) error {
	s.mu.Lock()
	if s.saving {
		s.mu.Unlock()
		return common.ErrSaveInFlight
	}
	if len(s.buffer) == 0 {
		s.mu.Unlock()
		return nil
	}

	changed := make([]model.ExtractedField, 0, len(s.buffer))
	for _, f := range s.fields {
		if value, ok := s.buffer[f.FieldName]; ok {
			merged := f
			merged.FieldValue = value
			changed = append(changed, merged)
		}
	}

	s.saving = true
	s.mu.Unlock()

	if persist != nil {
		if err := persist(ctx, changed); err != nil {
			s.mu.Lock()
			s.saving = false
			s.mu.Unlock()
			return err
		}
	}

	s.mu.Lock()
	for _, merged := range changed {
		s.fields[s.index[merged.FieldName]] = merged
		if s.buffer[merged.FieldName] == merged.FieldValue {
			delete(s.buffer, merged.FieldName)
		}
	}
	s.saving = false
	s.mu.Unlock()

	return nil
}

// Discard drops all pending edits without merging.
func (s *Store) Discard() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buffer = make(map[string]string)
}
