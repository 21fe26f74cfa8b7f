package review

import (
	"github.com/google/uuid"

	"github.com/reglabs/coaflow/internal/model"
)

// Session carries all reviewer selection state: compound, template,
// the processed document, and the reconciliation store over its fields.
// Updates return a new session value; each selection change bumps the
// request token so responses fetched for a superseded selection are
// discarded instead of merged.
type Session struct {
	store    *Store
	Compound *model.Compound
	Template *model.Template
	Document *model.COADocument
	ID       string
	token    uint64
}

// NewSession creates an empty session.
func NewSession() Session {
	return Session{ID: uuid.NewString()}
}

// Token returns the current request token. Capture it before starting a
// remote call and pass it back to the Apply helpers.
func (s Session) Token() uint64 {
	return s.token
}

// WithCompound selects a compound, invalidating every downstream
// selection and any in-flight result.
func (s Session) WithCompound(c model.Compound) Session {
	next := s
	next.Compound = &c
	next.Template = nil
	next.Document = nil
	next.store = nil
	next.token++
	return next
}

// WithTemplate selects a template for the current compound.
func (s Session) WithTemplate(t model.Template) Session {
	next := s
	next.Template = &t
	next.Document = nil
	next.store = nil
	next.token++
	return next
}

// ApplyDocument attaches a processed document and its extracted fields.
// The update is applied only when token still matches the session:
// stale results for a superseded selection are dropped and the session
// returned unchanged.
func (s Session) ApplyDocument(token uint64, doc model.COADocument, fields []model.ExtractedField) (Session, bool) {
	if token != s.token {
		return s, false
	}
	next := s
	next.Document = &doc
	next.store = NewStore(fields)
	return next, true
}

// Store returns the reconciliation store for the current document, or
// nil when no document has been processed.
func (s Session) Store() *Store {
	return s.store
}
