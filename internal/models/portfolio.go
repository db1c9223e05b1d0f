package models

// MediaKind enumerates the supported detail media types.
type MediaKind string

const (
	MediaImage   MediaKind = "image"
	MediaPDF     MediaKind = "pdf"
	MediaYouTube MediaKind = "youtube"
	MediaVimeo   MediaKind = "vimeo"
)

// Valid reports whether the kind is one of the supported media types.
func (k MediaKind) Valid() bool {
	switch k {
	case MediaImage, MediaPDF, MediaYouTube, MediaVimeo:
		return true
	}
	return false
}

// MediaDescriptor is a single detail media entry on a portfolio item.
// Invariant: non-image kinds appear at most once per item; image kind may
// appear any number of times.
type MediaDescriptor struct {
	Kind MediaKind `json:"kind"`
	URL  string    `json:"url"`
}

// MediaDescriptors serializes as JSON in MySQL.
type MediaDescriptors []MediaDescriptor

// PortfolioItem is a single catalog entry.
type PortfolioItem struct {
	Base
	Title       string    `json:"title"       gorm:"not null"`
	Description string    `json:"description" gorm:"type:text"`
	CategoryID  uint      `json:"category_id" gorm:"index;not null"`
	Category    *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`

	// CategoryName is a denormalized copy of the category's name, re-synced
	// on category change or rename rather than live-joined.
	CategoryName string `json:"category_name"`

	CoverImageURL string           `json:"cover_image_url" gorm:"not null"`
	Details       MediaDescriptors `json:"details"         gorm:"type:json;serializer:json"`

	// IsDeleted gates public visibility: false = active, true = archived.
	IsDeleted bool `json:"is_deleted" gorm:"default:false;index"`
}

func (PortfolioItem) TableName() string { return "portfolio_items" }

// ImageDetailURLs returns the URLs of all image-kind detail entries.
func (p PortfolioItem) ImageDetailURLs() []string {
	urls := make([]string, 0, len(p.Details))
	for _, d := range p.Details {
		if d.Kind == MediaImage {
			urls = append(urls, d.URL)
		}
	}
	return urls
}
