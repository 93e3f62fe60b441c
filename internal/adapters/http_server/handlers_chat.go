package httpserver

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"concierge/internal/chat"
)

// ChatHandlers exposes the assistant over HTTP and a websocket.
type ChatHandlers struct {
	A        *chat.Assistant
	upgrader websocket.Upgrader
}

func NewChatHandlers(a *chat.Assistant) *ChatHandlers {
	return &ChatHandlers{
		A: a,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type chatRequest struct {
	SessionID string `json:"session_id"`
	Text      string `json:"text"`
}

func (s *Server) MountChat(h *ChatHandlers) {
	s.mux.Route("/chat", func(r chi.Router) {
		r.Post("/messages", h.postMessage)
		r.Get("/ws", h.stream)
		r.Get("/tools", h.listTools)
		r.Get("/sessions/{id}", h.history)
		r.Delete("/sessions/{id}", h.clear)
	})
}

func sessionOrNew(id string) string {
	if id = strings.TrimSpace(id); id != "" {
		return id
	}
	return uuid.NewString()
}

func (h *ChatHandlers) postMessage(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeProblem(w, http.StatusUnprocessableEntity, "Unprocessable Entity", "text is required")
		return
	}
	writeJSON(w, http.StatusOK, h.A.Turn(r.Context(), sessionOrNew(req.SessionID), req.Text))
}

func (h *ChatHandlers) listTools(w http.ResponseWriter, r *http.Request) {
	defs, err := h.A.Tools(r.Context(), r.URL.Query().Get("session_id"))
	if err != nil {
		log.Error().Err(err).Msg("list tools failed")
		writeProblem(w, http.StatusBadGateway, "Bad Gateway", "tool server unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tools": defs})
}

func (h *ChatHandlers) history(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.A.History(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		log.Error().Err(err).Msg("read history failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"messages": msgs})
}

func (h *ChatHandlers) clear(w http.ResponseWriter, r *http.Request) {
	if err := h.A.Clear(r.Context(), chi.URLParam(r, "id")); err != nil {
		log.Error().Err(err).Msg("clear history failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// stream runs one session per connection: each text frame {"text": ...} gets one
// reply frame. The session id comes from ?session_id= or is generated.
func (h *ChatHandlers) stream(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	session := sessionOrNew(r.URL.Query().Get("session_id"))
	log.Info().Str("session", session).Msg("chat websocket opened")
	ctx := r.Context()
	for {
		var req chatRequest
		if err := conn.ReadJSON(&req); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug().Err(err).Str("session", session).Msg("chat websocket read ended")
			}
			return
		}
		if strings.TrimSpace(req.Text) == "" {
			continue
		}
		if err := conn.WriteJSON(h.A.Turn(ctx, session, req.Text)); err != nil {
			log.Debug().Err(err).Str("session", session).Msg("chat websocket write failed")
			return
		}
	}
}
