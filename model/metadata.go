package model

// SongMetadata is the enrichment record keyed by song title in the
// metadata table. All fields besides Title are optional.
type SongMetadata struct {
	Title    string `json:"title"`
	Artist   string `json:"artist,omitempty"`
	Year     uint   `json:"year,omitempty"`
	Language string `json:"language,omitempty"`
}
