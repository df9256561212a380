package types

type ChatRequest struct {
	DocumentID   string `json:"document_id"`
	Question     string `json:"question"`
	UseWebSearch bool   `json:"use_web_search"`
}

type GeneratePaperRequest struct {
	Title     string    `json:"title"`
	PaperType PaperType `json:"paper_type"`
	Details   string    `json:"details"`
}

type DownloadRequest struct {
	// Content selects what to render: "summary" pulls the cached session
	// summary, "paper" renders the posted Body.
	Content  string `json:"content"`
	Body     string `json:"body,omitempty"`
	FileName string `json:"file_name,omitempty"`
}

const (
	DownloadContentSummary = "summary"
	DownloadContentPaper   = "paper"
)
