package index

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Post is the indexed record for one article. The corpus may contain several
// revision files for the same slug; the indexed post always mirrors the
// canonical revision.
type Post struct {
	bun.BaseModel `bun:"table:posts,alias:p"`

	ID          uuid.UUID      `bun:",pk,type:uuid"                 json:"id"`
	Slug        string         `bun:"slug,notnull,unique"           json:"slug"`
	Title       string         `bun:"title,notnull"                 json:"title"`
	Layout      string         `bun:"layout"                        json:"layout,omitempty"`
	Date        time.Time      `bun:"date,notnull"                  json:"date"`
	Published   bool           `bun:"published,notnull,default:true" json:"published"`
	Excerpt     string         `bun:"excerpt"                       json:"excerpt,omitempty"`
	FilePath    string         `bun:"file_path,notnull"             json:"file_path"`
	Checksum    string         `bun:"checksum,notnull"              json:"checksum"`
	FrontMatter map[string]any `bun:"front_matter,type:jsonb"       json:"front_matter,omitempty"`
	CreatedAt   time.Time      `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time      `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`

	Revisions []*Revision `bun:"rel:has-many,join:id=post_id" json:"revisions,omitempty"`
}

// Revision is one source file carrying a draft or published take on a post.
type Revision struct {
	bun.BaseModel `bun:"table:post_revisions,alias:pr"`

	ID           uuid.UUID `bun:",pk,type:uuid"                  json:"id"`
	PostID       uuid.UUID `bun:"post_id,notnull,type:uuid"      json:"post_id"`
	FilePath     string    `bun:"file_path,notnull,unique"       json:"file_path"`
	Title        string    `bun:"title"                          json:"title,omitempty"`
	Date         time.Time `bun:"date,notnull"                   json:"date"`
	Canonical    bool      `bun:"canonical,notnull,default:false" json:"canonical"`
	Checksum     string    `bun:"checksum,notnull"               json:"checksum"`
	LastModified time.Time `bun:"last_modified,nullzero"         json:"last_modified,omitempty"`
	CreatedAt    time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt    time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}
