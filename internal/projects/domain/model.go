package domain

import (
	"fmt"
	"strings"
)

// TimestampLayout is the ISO-8601 form used for CreatedAt.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Project is one community-submitted directory entry. Optional booleans are
// pointers so that an absent field survives a store round trip.
type Project struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Author        string   `json:"author"`
	AuthorFID     int64    `json:"authorFid"`
	AuthorAddress string   `json:"authorAddress,omitempty"`
	Link          string   `json:"link"`
	Categories    []string `json:"categories,omitempty"`
	CreatedAt     string   `json:"createdAt"`
	Featured      *bool    `json:"featured,omitempty"`
	Displayed     *bool    `json:"displayed,omitempty"`
	Image         string   `json:"image,omitempty"`
	Prompt        string   `json:"prompt,omitempty"`
}

// IsDisplayed treats an absent flag as shown.
func (p Project) IsDisplayed() bool {
	return p.Displayed == nil || *p.Displayed
}

// IsFeatured treats an absent flag as not featured.
func (p Project) IsFeatured() bool {
	return p.Featured != nil && *p.Featured
}

// Validate checks the required fields.
func (p Project) Validate() error {
	var missing []string
	if strings.TrimSpace(p.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(p.Description) == "" {
		missing = append(missing, "description")
	}
	if strings.TrimSpace(p.Link) == "" {
		missing = append(missing, "link")
	}
	if strings.TrimSpace(p.Author) == "" {
		missing = append(missing, "author")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidProject, strings.Join(missing, ", "))
	}
	return nil
}

// Patch is a shallow partial update. Nil fields keep the stored value; the
// id is not patchable.
type Patch struct {
	Title         *string  `json:"title,omitempty"`
	Description   *string  `json:"description,omitempty"`
	Author        *string  `json:"author,omitempty"`
	AuthorFID     *int64   `json:"authorFid,omitempty"`
	AuthorAddress *string  `json:"authorAddress,omitempty"`
	Link          *string  `json:"link,omitempty"`
	Categories    []string `json:"categories,omitempty"`
	CreatedAt     *string  `json:"createdAt,omitempty"`
	Featured      *bool    `json:"featured,omitempty"`
	Displayed     *bool    `json:"displayed,omitempty"`
	Image         *string  `json:"image,omitempty"`
	Prompt        *string  `json:"prompt,omitempty"`
}

// Apply returns a copy of p with the patch merged in.
func (pt Patch) Apply(p Project) Project {
	if pt.Title != nil {
		p.Title = *pt.Title
	}
	if pt.Description != nil {
		p.Description = *pt.Description
	}
	if pt.Author != nil {
		p.Author = *pt.Author
	}
	if pt.AuthorFID != nil {
		p.AuthorFID = *pt.AuthorFID
	}
	if pt.AuthorAddress != nil {
		p.AuthorAddress = *pt.AuthorAddress
	}
	if pt.Link != nil {
		p.Link = *pt.Link
	}
	if pt.Categories != nil {
		p.Categories = append([]string(nil), pt.Categories...)
	}
	if pt.CreatedAt != nil {
		p.CreatedAt = *pt.CreatedAt
	}
	if pt.Featured != nil {
		p.Featured = Bool(*pt.Featured)
	}
	if pt.Displayed != nil {
		p.Displayed = Bool(*pt.Displayed)
	}
	if pt.Image != nil {
		p.Image = *pt.Image
	}
	if pt.Prompt != nil {
		p.Prompt = *pt.Prompt
	}
	return p
}

// Visible drops projects whose displayed flag is explicitly false.
func Visible(projects []Project) []Project {
	out := make([]Project, 0, len(projects))
	for _, p := range projects {
		if p.IsDisplayed() {
			out = append(out, p)
		}
	}
	return out
}

// Bool returns a pointer to v.
func Bool(v bool) *bool {
	return &v
}
