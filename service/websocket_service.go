package service

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/tranvuminh/papermind-be/types"
)

// WebSocketService streams chat answers over a websocket connection,
// one request message in, a sequence of delta messages out.
type WebSocketService struct {
	chat     *ChatService
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

func NewWebSocketService(chat *ChatService, logger *zap.Logger) *WebSocketService {
	return &WebSocketService{
		chat:   chat,
		logger: logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins (adjust for production)
			},
		},
	}
}

func (s *WebSocketService) HandleChat(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	conn.SetReadLimit(512 * 1024)
	conn.SetReadDeadline(time.Now().Add(120 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(120 * time.Second))
		return nil
	})

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("websocket read error", zap.Error(err))
			}
			return
		}

		var req types.WebsocketRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			s.writeError(conn, "invalid message")
			continue
		}

		switch req.Type {
		case types.TypeWebsocketPing:
			conn.WriteJSON(types.WebsocketResponse{Type: types.TypeWebsocketPong})

		case types.TypeWebsocketChat:
			payloadBytes, err := json.Marshal(req.Payload)
			if err != nil {
				s.writeError(conn, "invalid payload")
				continue
			}
			var payload types.WebsocketChatPayload
			if err := json.Unmarshal(payloadBytes, &payload); err != nil {
				s.writeError(conn, "invalid payload")
				continue
			}

			conn.WriteJSON(types.WebsocketResponse{
				Type:    types.TypeWebsocketProcessing,
				Payload: "answering",
			})
			err = s.chat.AskStream(r.Context(), types.ChatRequest{
				DocumentID:   payload.DocumentID,
				Question:     payload.Question,
				UseWebSearch: payload.UseWebSearch,
			}, func(delta string) {
				conn.WriteJSON(types.WebsocketResponse{
					Type:    types.TypeWebsocketChat,
					Payload: delta,
				})
			})
			if err != nil {
				s.writeError(conn, err.Error())
			}

		default:
			s.writeError(conn, "unknown message type")
		}
	}
}

func (s *WebSocketService) writeError(conn *websocket.Conn, message string) {
	conn.WriteJSON(types.WebsocketResponse{
		Type:    types.TypeWebsocketError,
		Payload: message,
	})
}
