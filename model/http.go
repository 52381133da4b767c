package model

type MergeRequest struct {
	Charts []string `json:"charts"`
	Title  string   `json:"title,omitempty"`
	Enrich bool     `json:"enrich,omitempty"`
}

type MergeResponse struct {
	Title    string        `json:"title"`
	Players  int           `json:"players"`
	Chart    string        `json:"chart"`
	Metadata *SongMetadata `json:"metadata,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
