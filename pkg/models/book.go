package models

import (
	"time"

	"github.com/uptrace/bun"
)

const (
	MediaTypeReadToMe  = "Read to Me"
	MediaTypeVideoBook = "Video Book"
	MediaTypeAudiobook = "Audiobook"
	MediaTypeBook      = "Book"
	MediaTypeVideo     = "Video"
)

const (
	BookStatusActive   = "Active"
	BookStatusInactive = "Inactive"
)

// Book is the canonical record for one catalog item. Every field resolved by
// the merge engine is stored as a plain string; Notes carries the serialized
// provenance blob (asset catalog, page sequence, per-field sources) as JSON.
type Book struct {
	bun.BaseModel `bun:"table:books,alias:b"`

	ID        int       `bun:",pk,nullzero" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Folderpath   string  `bun:",nullzero" json:"folderpath"`
	Section      string  `json:"section"`
	Category     string  `json:"category"`
	Title        string  `bun:",nullzero" json:"title"`
	TitleSource  string  `bun:",nullzero" json:"title_source"`
	Author       string  `bun:",nullzero" json:"author"`
	AuthorSource string  `bun:",nullzero" json:"author_source"`
	Genre        string  `json:"genre"`
	FictionType  string  `json:"fiction_type"`
	MediaType    string  `json:"media_type"`
	ReadingLevel string  `json:"reading_level"`
	Description  string  `json:"description"`
	URL          string  `json:"url"`
	AgeRange     string  `json:"age_range"`
	ReadTime     string  `json:"read_time"`
	ARLevel      string  `bun:"ar_level" json:"ar_level"`
	Lexile       string  `json:"lexile"`
	GRL          string  `bun:"grl" json:"grl"`
	Pages        string  `json:"pages"`
	AudioLength  string  `json:"audio_length"`
	VideoLength  string  `json:"video_length"`
	CoverImage   *string `json:"cover_image"`
	SourceFile   string  `json:"source_file"`
	Status       string  `json:"status"`

	// Notes is the free-text side channel holding the provenance blob.
	Notes string `json:"-"`
}
