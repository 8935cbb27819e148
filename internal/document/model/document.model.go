package model

import "time"

type Author struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Document is the stored entity. ID and Created are filled in by the
// repository on save when left empty.
type Document struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	Content string    `json:"content"`
	Author  Author    `json:"author"`
	Created time.Time `json:"created"`
}

func NewDocument(id, title, content string, author Author, created time.Time) Document {
	return Document{
		ID:      id,
		Title:   title,
		Content: content,
		Author:  author,
		Created: created,
	}
}

// SearchCriteria is an AND of the set dimensions, OR within each list.
// A nil or empty list and a nil time bound mean "no constraint".
type SearchCriteria struct {
	TitlePrefixes    []string   `json:"title_prefixes,omitempty"`
	ContainsContents []string   `json:"contains_contents,omitempty"`
	AuthorIDs        []string   `json:"author_ids,omitempty"`
	CreatedFrom      *time.Time `json:"created_from,omitempty"` // inclusive
	CreatedTo        *time.Time `json:"created_to,omitempty"`   // inclusive
}

type HealthResponse struct {
	Status    string `json:"status"`
	Documents int    `json:"documents"`
}
