package webui

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/gofiber/websocket/v2"
	"github.com/mudler/xlog"
)

// wsMessage is the wire protocol of the gesture channel. Mouse messages
// carry absolute coordinates; command messages carry a built-in command
// name or a custom action id.
type wsMessage struct {
	Type       string  `json:"type,omitempty"` // "mouse" or "" (command)
	Command    string  `json:"command,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
	Action     string  `json:"action,omitempty"`
	X          int     `json:"x,omitempty"`
	Y          int     `json:"y,omitempty"`
}

type wsResult struct {
	Status  string `json:"status"`
	Action  string `json:"action,omitempty"`
	Message string `json:"message,omitempty"`
}

// GestureChannel handles one client connection. Every command is dispatched
// on its own goroutine so a blocking execution (a deliberate delay in a
// snippet, say) never stalls the read loop or other commands; a per-
// connection mutex serializes the writes back. Move acks are skipped to
// keep cursor streaming cheap.
func (a *App) GestureChannel() func(*websocket.Conn) {
	return func(c *websocket.Conn) {
		xlog.Info("Gesture client connected", "remote", c.RemoteAddr().String())

		var (
			writeMu sync.Mutex
			wg      sync.WaitGroup
		)

		send := func(result wsResult) {
			writeMu.Lock()
			defer writeMu.Unlock()
			if err := c.WriteJSON(result); err != nil {
				xlog.Debug("Failed to write gesture result", "error", err)
			}
		}

		for {
			_, raw, err := c.ReadMessage()
			if err != nil {
				xlog.Debug("Gesture channel closed", "error", err)
				break
			}

			msg := wsMessage{}
			if err := json.Unmarshal(raw, &msg); err != nil {
				send(wsResult{Status: "error", Message: "Invalid JSON"})
				continue
			}

			wg.Add(1)
			go func(msg wsMessage) {
				defer wg.Done()
				a.handleGestureMessage(msg, send)
			}(msg)
		}

		wg.Wait()
		xlog.Info("Gesture client disconnected", "remote", c.RemoteAddr().String())
	}
}

func (a *App) handleGestureMessage(msg wsMessage, send func(wsResult)) {
	if msg.Type == "mouse" {
		result, err := a.config.Dispatcher.ExecuteMouse(msg.Action, msg.X, msg.Y)
		if msg.Action == "move" {
			return
		}
		if err != nil {
			send(wsResult{Status: "error", Message: err.Error()})
			return
		}
		send(wsResult{Status: result.Status, Action: result.Prompt})
		return
	}

	xlog.Debug("Gesture command received", "command", msg.Command, "confidence", msg.Confidence)

	result, err := a.config.Dispatcher.ExecuteCommand(context.Background(), msg.Command)
	if err != nil {
		send(wsResult{Status: "error", Message: err.Error()})
		return
	}
	send(wsResult{Status: result.Status, Action: result.Prompt})
}
