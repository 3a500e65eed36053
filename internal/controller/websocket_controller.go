package controller

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/benbeisheim/chess-backend/internal/middleware"
	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/benbeisheim/chess-backend/internal/service"
	"github.com/benbeisheim/chess-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"
)

type WebSocketController struct {
	gameService *service.GameService
	log         zerolog.Logger
}

func NewWebSocketController(gameService *service.GameService, log zerolog.Logger) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
		log:         log,
	}
}

// lockedConn serializes writes from the read loop and from game broadcasts.
type lockedConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (lc *lockedConn) WriteJSON(v interface{}) error {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	return lc.conn.WriteJSON(v)
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")
	clientID, _ := c.Locals(middleware.ClientIDKey).(string)
	log := wsc.log.With().Str("game", gameID).Str("client", clientID).Logger()
	conn := &lockedConn{conn: c}

	if err := wsc.gameService.RegisterConnection(gameID, clientID, conn); err != nil {
		log.Warn().Err(err).Msg("failed to register connection")
		wsc.sendError(conn, err.Error())
		c.Close()
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, clientID)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Debug().Err(err).Msg("read loop finished")
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Debug().Err(err).Msg("parse error")
			wsc.sendError(conn, "malformed message")
			continue
		}

		if err := wsc.handleMessage(gameID, msg); err != nil {
			log.Debug().Err(err).Str("type", string(msg.Type)).Msg("handle error")
			wsc.sendError(conn, err.Error())
		}
	}
}

// handleMessage applies one client message. The resulting state reaches the
// client through the game's broadcast, so only failures are answered here.
func (wsc *WebSocketController) handleMessage(gameID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move ws.MovePayload
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return err
		}
		state, err := wsc.gameService.HandleMove(gameID,
			model.Sq(move.StartRank, move.StartFile),
			model.Sq(move.EndRank, move.EndFile),
			move.PromotionPiece)
		if err != nil {
			return err
		}
		if !state.Success {
			return fmt.Errorf("%s", state.Message)
		}
		return nil

	case ws.MessageTypeUndo:
		_, err := wsc.gameService.Undo(gameID)
		return err

	case ws.MessageTypeReset:
		_, err := wsc.gameService.Reset(gameID)
		return err

	case ws.MessageTypeAIMove:
		var req ws.AIMovePayload
		if len(msg.Payload) > 0 {
			if err := json.Unmarshal(msg.Payload, &req); err != nil {
				return err
			}
		}
		strength, err := wsc.gameService.ResolveStrength(req.Difficulty)
		if err != nil {
			return err
		}
		_, err = wsc.gameService.PlayAiMove(gameID, strength)
		return err

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

// Helper method to send error messages
func (wsc *WebSocketController) sendError(conn model.Subscriber, errorMsg string) {
	payload, err := json.Marshal(ws.ErrorPayload{Error: errorMsg})
	if err != nil {
		return
	}
	if err := conn.WriteJSON(ws.Message{
		Type:    ws.MessageTypeError,
		Payload: json.RawMessage(payload),
	}); err != nil {
		wsc.log.Debug().Err(err).Msg("failed to send error")
	}
}
