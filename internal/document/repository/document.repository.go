package repository

import (
	"errors"
	"fmt"
	"naskah/internal/document/model"
	"naskah/pkg/logger"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidArgument = errors.New("invalid argument")

// DocumentRepository keeps documents in memory keyed by ID. It is safe for
// concurrent use; stored values are copied in and out so callers never hold
// a reference into the map.
type DocumentRepository struct {
	mu   sync.RWMutex
	docs map[string]model.Document

	newID func() string
	now   func() time.Time
}

func NewDocumentRepository() *DocumentRepository {
	return &DocumentRepository{
		docs:  make(map[string]model.Document),
		newID: func() string { return uuid.NewString() },
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Save inserts or replaces the document under its ID, assigning an ID and a
// creation time when they are missing, and returns the stored value.
func (r *DocumentRepository) Save(doc *model.Document) (model.Document, error) {
	if doc == nil {
		logger.Sugar.Errorf("Rejected save: nil document")
		return model.Document{}, fmt.Errorf("save document: %w: document is nil", ErrInvalidArgument)
	}

	stored := *doc
	if stored.ID == "" {
		stored.ID = r.newID()
	}
	if stored.Created.IsZero() {
		stored.Created = r.now()
	}

	r.mu.Lock()
	r.docs[stored.ID] = stored
	r.mu.Unlock()

	logger.Sugar.Debugf("Saved document %s", stored.ID)
	return stored, nil
}

func (r *DocumentRepository) FindByID(id string) (model.Document, bool) {
	if id == "" {
		return model.Document{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.docs[id]
	return doc, ok
}

// Search scans every stored document and returns those matching all set
// dimensions of criteria. A nil criteria matches everything. Order is
// unspecified.
func (r *DocumentRepository) Search(criteria *model.SearchCriteria) []model.Document {
	if criteria == nil {
		criteria = &model.SearchCriteria{}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]model.Document, 0, len(r.docs))
	for _, doc := range r.docs {
		if matches(doc, criteria) {
			result = append(result, doc)
		}
	}
	return result
}

func (r *DocumentRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.docs)
}

func matches(doc model.Document, c *model.SearchCriteria) bool {
	if len(c.TitlePrefixes) > 0 && !anyMatch(c.TitlePrefixes, func(p string) bool {
		return strings.HasPrefix(doc.Title, p)
	}) {
		return false
	}
	if len(c.ContainsContents) > 0 && !anyMatch(c.ContainsContents, func(s string) bool {
		return strings.Contains(doc.Content, s)
	}) {
		return false
	}
	if len(c.AuthorIDs) > 0 && !anyMatch(c.AuthorIDs, func(id string) bool {
		return doc.Author.ID == id
	}) {
		return false
	}
	if c.CreatedFrom != nil && doc.Created.Before(*c.CreatedFrom) {
		return false
	}
	if c.CreatedTo != nil && doc.Created.After(*c.CreatedTo) {
		return false
	}
	return true
}

func anyMatch(values []string, pred func(string) bool) bool {
	for _, v := range values {
		if pred(v) {
			return true
		}
	}
	return false
}
