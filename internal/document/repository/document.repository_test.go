package repository

import (
	"fmt"
	"naskah/internal/document/model"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthor(name string) model.Author {
	return model.Author{ID: uuid.NewString(), Name: name}
}

func titles(docs []model.Document) []string {
	out := make([]string, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.Title)
	}
	return out
}

func TestSaveNewDocument(t *testing.T) {
	repo := NewDocumentRepository()

	saved, err := repo.Save(&model.Document{
		Title:   "Title",
		Content: "Content",
		Author:  newAuthor("Author Name"),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.False(t, saved.Created.IsZero())

	found, ok := repo.FindByID(saved.ID)
	require.True(t, ok)
	assert.Equal(t, saved, found)
}

func TestSaveKeepsSuppliedFields(t *testing.T) {
	repo := NewDocumentRepository()
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	doc := model.NewDocument("doc-1", "T", "body", newAuthor("A"), created)
	saved, err := repo.Save(&doc)
	require.NoError(t, err)
	assert.Equal(t, "doc-1", saved.ID)
	assert.True(t, created.Equal(saved.Created))
}

func TestSaveFillsCreatedForSuppliedID(t *testing.T) {
	repo := NewDocumentRepository()
	fixed := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	repo.now = func() time.Time { return fixed }

	saved, err := repo.Save(&model.Document{ID: "doc-1"})
	require.NoError(t, err)
	assert.Equal(t, fixed, saved.Created)
}

func TestSaveNilDocument(t *testing.T) {
	repo := NewDocumentRepository()

	_, err := repo.Save(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, 0, repo.Count())
}

func TestSaveUpsert(t *testing.T) {
	repo := NewDocumentRepository()

	first, err := repo.Save(&model.Document{Title: "Draft", Content: "v1"})
	require.NoError(t, err)

	second, err := repo.Save(&model.Document{ID: first.ID, Title: "Draft", Content: "v2", Created: first.Created})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	found, ok := repo.FindByID(first.ID)
	require.True(t, ok)
	assert.Equal(t, "v2", found.Content)
	assert.Equal(t, 1, repo.Count())
}

func TestSaveDoesNotRetainCallerDocument(t *testing.T) {
	repo := NewDocumentRepository()

	doc := &model.Document{Title: "Original"}
	saved, err := repo.Save(doc)
	require.NoError(t, err)

	doc.Title = "Changed"
	doc.ID = "someone-else"

	found, ok := repo.FindByID(saved.ID)
	require.True(t, ok)
	assert.Equal(t, "Original", found.Title)
	assert.Empty(t, doc.Created, "caller's struct must not be filled in")
}

func TestFindByIDAbsent(t *testing.T) {
	repo := NewDocumentRepository()

	_, ok := repo.FindByID("never-used")
	assert.False(t, ok)

	_, ok = repo.FindByID("")
	assert.False(t, ok)
}

func TestSearch(t *testing.T) {
	repo := NewDocumentRepository()
	a1 := newAuthor("Author Andrii")
	a2 := newAuthor("Author Yana")
	base := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	docs := []model.Document{
		{Title: "Document One", Content: "alpha beta", Author: a1, Created: base},
		{Title: "Another Document", Content: "gamma", Author: a2, Created: base.Add(24 * time.Hour)},
		{Title: "Doc Two", Content: "beta delta", Author: a2, Created: base.Add(48 * time.Hour)},
	}
	for i := range docs {
		_, err := repo.Save(&docs[i])
		require.NoError(t, err)
	}

	from := base.Add(24 * time.Hour)
	to := base.Add(48 * time.Hour)
	before := base.Add(-time.Hour)

	tests := []struct {
		name     string
		criteria *model.SearchCriteria
		want     []string
	}{
		{
			name:     "nil criteria matches all",
			criteria: nil,
			want:     []string{"Document One", "Another Document", "Doc Two"},
		},
		{
			name:     "unset fields match all",
			criteria: &model.SearchCriteria{},
			want:     []string{"Document One", "Another Document", "Doc Two"},
		},
		{
			name:     "empty lists are unset",
			criteria: &model.SearchCriteria{TitlePrefixes: []string{}, ContainsContents: []string{}, AuthorIDs: []string{}},
			want:     []string{"Document One", "Another Document", "Doc Two"},
		},
		{
			name:     "title prefix",
			criteria: &model.SearchCriteria{TitlePrefixes: []string{"Document"}},
			want:     []string{"Document One"},
		},
		{
			name:     "title prefix Doc",
			criteria: &model.SearchCriteria{TitlePrefixes: []string{"Doc"}},
			want:     []string{"Document One", "Doc Two"},
		},
		{
			name:     "any of several prefixes",
			criteria: &model.SearchCriteria{TitlePrefixes: []string{"Another", "Doc T"}},
			want:     []string{"Another Document", "Doc Two"},
		},
		{
			name:     "content substring",
			criteria: &model.SearchCriteria{ContainsContents: []string{"beta"}},
			want:     []string{"Document One", "Doc Two"},
		},
		{
			name:     "author id",
			criteria: &model.SearchCriteria{AuthorIDs: []string{a1.ID}},
			want:     []string{"Document One"},
		},
		{
			name:     "inclusive time range",
			criteria: &model.SearchCriteria{CreatedFrom: &from, CreatedTo: &to},
			want:     []string{"Another Document", "Doc Two"},
		},
		{
			name:     "lower bound only",
			criteria: &model.SearchCriteria{CreatedFrom: &to},
			want:     []string{"Doc Two"},
		},
		{
			name:     "upper bound only",
			criteria: &model.SearchCriteria{CreatedTo: &before},
			want:     []string{},
		},
		{
			name:     "title and author combined",
			criteria: &model.SearchCriteria{TitlePrefixes: []string{"Doc"}, AuthorIDs: []string{a2.ID}},
			want:     []string{"Doc Two"},
		},
		{
			name:     "no match",
			criteria: &model.SearchCriteria{ContainsContents: []string{"omega"}},
			want:     []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := repo.Search(tt.criteria)
			assert.ElementsMatch(t, tt.want, titles(got))
		})
	}
}

func TestSearchExampleScenario(t *testing.T) {
	repo := NewDocumentRepository()
	a1 := newAuthor("A1")
	a2 := newAuthor("A2")

	_, err := repo.Save(&model.Document{Title: "Document One", Content: "Content 1", Author: a1})
	require.NoError(t, err)
	_, err = repo.Save(&model.Document{Title: "Another Document", Content: "Content 2", Author: a2})
	require.NoError(t, err)

	results := repo.Search(&model.SearchCriteria{TitlePrefixes: []string{"Document"}})
	require.Len(t, results, 1)
	assert.Equal(t, "Document One", results[0].Title)

	results = repo.Search(&model.SearchCriteria{AuthorIDs: []string{a1.ID}})
	require.Len(t, results, 1)
	assert.Equal(t, "Document One", results[0].Title)
}

func TestConcurrentSaves(t *testing.T) {
	repo := NewDocumentRepository()
	const workers = 16
	const perWorker = 50

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				_, err := repo.Save(&model.Document{Title: fmt.Sprintf("w%d-%d", w, i)})
				assert.NoError(t, err)
				_, err = repo.Save(&model.Document{ID: "shared", Title: fmt.Sprintf("w%d", w)})
				assert.NoError(t, err)
				repo.Search(&model.SearchCriteria{TitlePrefixes: []string{"w"}})
				repo.FindByID("shared")
			}
		}(w)
	}
	wg.Wait()

	assert.Equal(t, workers*perWorker+1, repo.Count())
	shared, ok := repo.FindByID("shared")
	require.True(t, ok)
	assert.Regexp(t, `^w\d+$`, shared.Title)
}
