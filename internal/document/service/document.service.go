package service

import (
	"cmp"
	"errors"
	"fmt"
	"naskah/internal/document/model"
	"naskah/internal/document/repository"
	"naskah/pkg/logger"
	"slices"
)

var (
	ErrInvalidArgument  = repository.ErrInvalidArgument
	ErrDocumentNotFound = errors.New("document not found")
)

// Publisher receives every successfully stored document.
type Publisher interface {
	Publish(doc model.Document) error
}

type DocumentService struct {
	Repo *repository.DocumentRepository
	Hub  Publisher
}

// NewDocumentService builds a service; hub may be nil when no change feed
// is wanted.
func NewDocumentService(repo *repository.DocumentRepository, hub Publisher) *DocumentService {
	return &DocumentService{Repo: repo, Hub: hub}
}

func (s *DocumentService) SaveDocument(doc *model.Document) (model.Document, error) {
	saved, err := s.Repo.Save(doc)
	if err != nil {
		return model.Document{}, err
	}

	// Publishing happens outside the repository lock, so concurrent saves to
	// one ID may reach the feed in a different order than the store applied
	// them. The store stays last-write-wins; feed order is best-effort.
	if s.Hub != nil {
		if err := s.Hub.Publish(saved); err != nil {
			// The document is stored either way.
			logger.Sugar.Errorf("Failed to publish document %s: %v", saved.ID, err)
		}
	}
	return saved, nil
}

func (s *DocumentService) GetDocument(id string) (model.Document, error) {
	if id == "" {
		return model.Document{}, fmt.Errorf("get document: %w: empty id", ErrInvalidArgument)
	}
	doc, ok := s.Repo.FindByID(id)
	if !ok {
		return model.Document{}, fmt.Errorf("%w: %s", ErrDocumentNotFound, id)
	}
	return doc, nil
}

// FindByID lets the service stand in wherever a socket.DocumentFinder is needed.
func (s *DocumentService) FindByID(id string) (model.Document, bool) {
	return s.Repo.FindByID(id)
}

// SearchDocuments returns matches ordered oldest first, ties broken by ID.
func (s *DocumentService) SearchDocuments(criteria *model.SearchCriteria) []model.Document {
	docs := s.Repo.Search(criteria)
	slices.SortFunc(docs, func(a, b model.Document) int {
		if c := a.Created.Compare(b.Created); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return docs
}

func (s *DocumentService) Count() int {
	return s.Repo.Count()
}
