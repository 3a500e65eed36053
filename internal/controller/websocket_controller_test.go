package controller

import (
	"encoding/json"
	"testing"

	"github.com/benbeisheim/chess-backend/internal/ai"
	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/benbeisheim/chess-backend/internal/service"
	"github.com/benbeisheim/chess-backend/internal/ws"
	"github.com/rs/zerolog"
)

func wsMessage(t *testing.T, typ ws.MessageType, payload interface{}) ws.Message {
	t.Helper()
	msg := ws.Message{Type: typ}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatal(err)
		}
		msg.Payload = data
	}
	return msg
}

func TestHandleMessage(t *testing.T) {
	gs := service.NewGameService(service.NewGameManager(zerolog.Nop()), ai.NewSearcher())
	wsc := NewWebSocketController(gs, zerolog.Nop())
	id, err := gs.CreateGame()
	if err != nil {
		t.Fatal(err)
	}

	e4 := ws.MovePayload{StartRank: 1, StartFile: 4, EndRank: 3, EndFile: 4}
	if err := wsc.handleMessage(id, wsMessage(t, ws.MessageTypeMove, e4)); err != nil {
		t.Fatalf("move: %v", err)
	}
	if err := wsc.handleMessage(id, wsMessage(t, ws.MessageTypeMove, e4)); err == nil {
		t.Error("replaying a move from an empty square succeeded")
	}

	if err := wsc.handleMessage(id, wsMessage(t, ws.MessageTypeAIMove, ws.AIMovePayload{Difficulty: "easy"})); err != nil {
		t.Fatalf("aiMove: %v", err)
	}
	state, _ := gs.GetGameState(id)
	if state.ToMove != model.White || len(state.MoveHistory) != 2 {
		t.Errorf("after ai move: toMove %s, %d moves", state.ToMove, len(state.MoveHistory))
	}

	if err := wsc.handleMessage(id, wsMessage(t, ws.MessageTypeUndo, nil)); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if err := wsc.handleMessage(id, wsMessage(t, ws.MessageTypeReset, nil)); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if state, _ := gs.GetGameState(id); len(state.MoveHistory) != 0 {
		t.Errorf("reset left %d moves", len(state.MoveHistory))
	}

	if err := wsc.handleMessage(id, wsMessage(t, "castle", nil)); err == nil {
		t.Error("unknown message type accepted")
	}
	if err := wsc.handleMessage("missing", wsMessage(t, ws.MessageTypeUndo, nil)); err == nil {
		t.Error("undo on unknown game accepted")
	}
}

type bufferConn struct {
	messages []ws.Message
}

func (b *bufferConn) WriteJSON(v interface{}) error {
	b.messages = append(b.messages, v.(ws.Message))
	return nil
}

func TestSendError(t *testing.T) {
	wsc := NewWebSocketController(nil, zerolog.Nop())
	conn := &bufferConn{}
	wsc.sendError(conn, "boom")

	if len(conn.messages) != 1 || conn.messages[0].Type != ws.MessageTypeError {
		t.Fatalf("messages = %+v", conn.messages)
	}
	var payload ws.ErrorPayload
	if err := json.Unmarshal(conn.messages[0].Payload, &payload); err != nil || payload.Error != "boom" {
		t.Errorf("payload = %s, %v", conn.messages[0].Payload, err)
	}
}
