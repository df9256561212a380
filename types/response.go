package types

type DataResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type UploadResponse struct {
	DocumentID   string         `json:"document_id"`
	OriginalName string         `json:"original_name"`
	Format       DocumentFormat `json:"format"`
	ChunkCount   int            `json:"chunk_count"`
}

type ChatResponse struct {
	Answer string `json:"answer"`
	// Truncated reports that the document context was cut to fit the
	// prompt budget. Non-fatal.
	Truncated bool     `json:"truncated,omitempty"`
	Sources   []string `json:"sources,omitempty"`
}

type SummaryResponse struct {
	FileName  string `json:"file_name"`
	Summary   string `json:"summary"`
	Cached    bool   `json:"cached"`
	Truncated bool   `json:"truncated,omitempty"`
}

type GeneratePaperResponse struct {
	Title string `json:"title"`
	Paper string `json:"paper"`
}

type DocumentInfoResponse struct {
	DocumentID string         `json:"document_id"`
	FileName   string         `json:"file_name"`
	Format     DocumentFormat `json:"format"`
	ChunkCount int            `json:"chunk_count"`
	HasSummary bool           `json:"has_summary"`
}
