package types

const (
	TypeWebsocketPing       = "ping"
	TypeWebsocketPong       = "pong"
	TypeWebsocketChat       = "chat"
	TypeWebsocketProcessing = "processing"
	TypeWebsocketError      = "error"
)

type WebsocketRequest struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type WebsocketChatPayload struct {
	DocumentID   string `json:"document_id"`
	Question     string `json:"question"`
	UseWebSearch bool   `json:"use_web_search"`
}

type WebsocketResponse struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// StreamHandler receives incremental model output.
type StreamHandler func(delta string)
