package domain

// ImageSource names the provider class used to fill an image slot.
type ImageSource string

const (
	SourceStock     ImageSource = "stock"
	SourceGenerated ImageSource = "generated"
	SourceNone      ImageSource = "none"
)

// ContentStyle selects the voice of generated long-form content.
type ContentStyle string

const (
	StyleJournalistic ContentStyle = "journalistic"
	StyleKeepAsIs     ContentStyle = "keep_as_is"
	StyleSEO          ContentStyle = "seo_optimized"
	StyleAcademic     ContentStyle = "academic"
	StyleCasual       ContentStyle = "casual"
	StyleTechnical    ContentStyle = "technical"
)

// Preferences are per-submitter pipeline settings. They are read-only input:
// resolution falls through submitter row -> global default row -> Defaults().
type Preferences struct {
	ChatID       int64        `json:"chatId"`
	ContentStyle ContentStyle `json:"contentStyle"`
	ImagesCount  int          `json:"imagesCount"`
	ImagesSource ImageSource  `json:"imagesSource"`
	AutoPublish  bool         `json:"autoPublish"`
}

// GlobalPreferencesID is the chat id of the shared default preferences row.
const GlobalPreferencesID int64 = 0

// Defaults returns the hard-coded tail of the preference resolution chain.
func Defaults() Preferences {
	return Preferences{
		ContentStyle: StyleJournalistic,
		ImagesCount:  2,
		ImagesSource: SourceStock,
		AutoPublish:  true,
	}
}

// Normalize clamps out-of-range values back to defaults so a malformed row
// can never stall the pipeline.
func (p Preferences) Normalize() Preferences {
	d := Defaults()
	if p.ImagesCount < 0 || p.ImagesCount > 3 {
		p.ImagesCount = d.ImagesCount
	}
	switch p.ImagesSource {
	case SourceStock, SourceGenerated, SourceNone:
	default:
		p.ImagesSource = d.ImagesSource
	}
	switch p.ContentStyle {
	case StyleJournalistic, StyleKeepAsIs, StyleSEO, StyleAcademic, StyleCasual, StyleTechnical:
	default:
		p.ContentStyle = d.ContentStyle
	}
	return p
}
