package pages

import (
	"slices"
	"time"

	"github.com/goliatone/go-cms-l10n/internal/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Page is a node of the host's site tree. Root pages carry the enabled
// language list and the DNS binding for their subtree.
type Page struct {
	bun.BaseModel `bun:"table:pages,alias:p"`

	ID          uuid.UUID       `bun:",pk,type:uuid"                  json:"id"`
	ParentID    *uuid.UUID      `bun:"parent_id,type:uuid"            json:"parent_id,omitempty"`
	Type        domain.PageType `bun:"type,notnull"                   json:"type"`
	Language    string          `bun:"language"                       json:"language"`
	Languages   []string        `bun:"languages,type:jsonb"           json:"languages,omitempty"`
	DNS         string          `bun:"dns"                            json:"dns,omitempty"`
	Title       string          `bun:"title,notnull"                  json:"title"`
	PageTitle   string          `bun:"page_title"                     json:"page_title,omitempty"`
	Description string          `bun:"description"                    json:"description,omitempty"`
	CSSClass    string          `bun:"css_class"                      json:"css_class,omitempty"`
	Start       *time.Time      `bun:"start_at,nullzero"              json:"start,omitempty"`
	Stop        *time.Time      `bun:"stop_at,nullzero"               json:"stop,omitempty"`
	DateFormat  string          `bun:"date_format"                    json:"date_format,omitempty"`
	TimeFormat  string          `bun:"time_format"                    json:"time_format,omitempty"`
	DatimFormat string          `bun:"datim_format"                   json:"datim_format,omitempty"`
	Published   bool            `bun:"published,notnull,default:false" json:"published"`
	Alias       string          `bun:"alias"                          json:"alias"`
	Sorting     int             `bun:"sorting,notnull,default:0"      json:"sorting"`
	CreatedAt   time.Time       `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time       `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// IsRoot reports whether the page starts a subtree.
func (p *Page) IsRoot() bool {
	return p != nil && p.Type.IsRoot()
}

// PageLocalization is the per-language copy of a page created when the page
// is first saved. It is not kept in sync with the page afterwards.
type PageLocalization struct {
	bun.BaseModel `bun:"table:page_localizations,alias:pl"`

	ID          uuid.UUID       `bun:",pk,type:uuid"                                   json:"id"`
	PageID      uuid.UUID       `bun:"page_id,notnull,type:uuid,unique:page_language"  json:"page_id"`
	Language    string          `bun:"language,notnull,unique:page_language"           json:"language"`
	Type        domain.PageType `bun:"type,notnull"                                    json:"type"`
	Title       string          `bun:"title,notnull"                                   json:"title"`
	PageTitle   string          `bun:"page_title"                                      json:"page_title,omitempty"`
	Description string          `bun:"description"                                     json:"description,omitempty"`
	CSSClass    string          `bun:"css_class"                                       json:"css_class,omitempty"`
	Start       *time.Time      `bun:"start_at,nullzero"                               json:"start,omitempty"`
	Stop        *time.Time      `bun:"stop_at,nullzero"                                json:"stop,omitempty"`
	DateFormat  string          `bun:"date_format"                                     json:"date_format,omitempty"`
	TimeFormat  string          `bun:"time_format"                                     json:"time_format,omitempty"`
	DatimFormat string          `bun:"datim_format"                                    json:"datim_format,omitempty"`
	Published   bool            `bun:"l10n_published,notnull,default:false"            json:"published"`
	Alias       string          `bun:"alias,notnull"                                   json:"alias"`
	Sorting     int             `bun:"sorting,notnull,default:0"                       json:"sorting"`
	UpdatedAt   time.Time       `bun:"updated_at,nullzero,default:current_timestamp"   json:"updated_at"`
}

// IsRoot reports whether the localization belongs to a root page.
func (l *PageLocalization) IsRoot() bool {
	return l != nil && l.Type.IsRoot()
}

func clonePage(src *Page) *Page {
	if src == nil {
		return nil
	}
	out := *src
	out.ParentID = cloneUUIDPointer(src.ParentID)
	out.Languages = slices.Clone(src.Languages)
	out.Start = cloneTimePointer(src.Start)
	out.Stop = cloneTimePointer(src.Stop)
	return &out
}

func cloneLocalization(src *PageLocalization) *PageLocalization {
	if src == nil {
		return nil
	}
	out := *src
	out.Start = cloneTimePointer(src.Start)
	out.Stop = cloneTimePointer(src.Stop)
	return &out
}

func cloneUUIDPointer(value *uuid.UUID) *uuid.UUID {
	if value == nil {
		return nil
	}
	copied := *value
	return &copied
}

func cloneTimePointer(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	copied := *value
	return &copied
}
