package modal

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/dehaleesankr/folio/internal/conversation"
	"github.com/dehaleesankr/folio/internal/render"
)

const writeWait = 10 * time.Second

// clientFrame is the incoming WebSocket message format.
type clientFrame struct {
	Type string `json:"type"` // "open", "close" or "submit"
	Mode string `json:"mode,omitempty"`
	Text string `json:"text,omitempty"`
}

// serverFrame is the outgoing WebSocket message format.
type serverFrame struct {
	Type       string               `json:"type"`
	Chrome     *conversation.Chrome `json:"chrome,omitempty"`
	Visibility string               `json:"visibility,omitempty"`
	Busy       *bool                `json:"busy,omitempty"`
	Entry      *entryFrame          `json:"entry,omitempty"`
	Message    string               `json:"message,omitempty"`
}

type entryFrame struct {
	Role conversation.Role `json:"role"`
	Text string            `json:"text"`
	HTML string            `json:"html,omitempty"`
}

// socketPresenter turns controller effects into JSON frames.
type socketPresenter struct {
	mu       sync.Mutex
	conn     *websocket.Conn
	renderer *render.Renderer
	logger   *zap.Logger
}

func (p *socketPresenter) send(f serverFrame) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := p.conn.WriteJSON(f); err != nil {
		p.logger.Debug("websocket write", zap.String("frame", f.Type), zap.Error(err))
	}
}

func (p *socketPresenter) Reset(c conversation.Chrome) {
	p.send(serverFrame{Type: "chrome", Chrome: &c})
}

func (p *socketPresenter) SetVisibility(v conversation.Visibility) {
	p.send(serverFrame{Type: "visibility", Visibility: v.String()})
}

func (p *socketPresenter) SetBusy(busy bool) {
	p.send(serverFrame{Type: "busy", Busy: &busy})
}

func (p *socketPresenter) AppendEntry(e conversation.Entry) {
	f := &entryFrame{Role: e.Role, Text: e.Text}
	if e.Role == conversation.RoleModel {
		html, err := p.renderer.HTML(e.Text)
		if err != nil {
			p.logger.Warn("rendering reply", zap.Error(err))
		}
		f.HTML = html
	}
	p.send(serverFrame{Type: "entry", Entry: f})
}

func (p *socketPresenter) ResetInput() {
	p.send(serverFrame{Type: "input_reset"})
}

func (p *socketPresenter) SetContactMessage(text string) {
	p.send(serverFrame{Type: "contact", Message: text})
}

func (p *socketPresenter) sendError(message string) {
	p.send(serverFrame{Type: "error", Message: message})
}

func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade", zap.Error(err))
		return
	}
	defer conn.Close()

	sessionID := uuid.New().String()
	logger := h.logger.With(zap.String("session_id", sessionID))
	presenter := &socketPresenter{conn: conn, renderer: h.opts.Renderer, logger: logger}
	controller := conversation.New(h.provider, presenter, h.controllerOptions(sessionID, h.opts.Scheduler)...)
	defer controller.Shutdown()

	// Submissions run beside the read loop so the visitor can still close or
	// reopen the modal while a reply is pending.
	var inflight sync.WaitGroup
	defer inflight.Wait()
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	logger.Debug("websocket connected")
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("websocket read", zap.Error(err))
			}
			return
		}

		var f clientFrame
		if err := json.Unmarshal(msg, &f); err != nil {
			presenter.sendError("invalid message format")
			continue
		}

		switch f.Type {
		case "open":
			kind, err := conversation.ParseMode(f.Mode)
			if err != nil {
				presenter.sendError(err.Error())
				continue
			}
			if err := controller.Open(kind); err != nil {
				presenter.sendError(err.Error())
			}
		case "close":
			controller.Close()
		case "submit":
			inflight.Add(1)
			go func(text string) {
				defer inflight.Done()
				if _, err := controller.Submit(ctx, text); err != nil {
					presenter.sendError(err.Error())
				}
			}(f.Text)
		default:
			presenter.sendError("unknown message type: " + f.Type)
		}
	}
}
