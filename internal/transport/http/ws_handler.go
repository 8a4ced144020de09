package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"ux-career-assessment/internal/app"
	"ux-career-assessment/internal/domain"
	"ux-career-assessment/internal/logger"
)

type WSHandler struct {
	service  *app.AssessmentService
	loader   *app.ContentLoader
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

func NewWSHandler(service *app.AssessmentService, loader *app.ContentLoader, log *zap.Logger) *WSHandler {
	return &WSHandler{
		service: service,
		loader:  loader,
		logger:  logger.OrNop(log),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload,omitempty"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS streams the supplementary sections of a stored result as they
// settle, then a final "done" message. Closing the socket cancels any
// fetches still in flight.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	resultID := r.URL.Query().Get("resultId")
	if resultID == "" {
		http.Error(w, "missing resultId", http.StatusBadRequest)
		return
	}
	stored, err := h.service.Restore(r.Context(), resultID)
	if errors.Is(err, domain.ErrResultNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "failed to load result", http.StatusInternalServerError)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("ws upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Every message of one load fits, so the sink never blocks on a dead
	// writer.
	send := make(chan outboundMessage[any], len(domain.Sections)+1)
	writerDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				h.logger.Debug("ws write error", zap.Error(err))
				cancel()
				return
			}
		}
	}()

	// The client never sends anything meaningful; a read error means it
	// went away.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				cancel()
				return
			}
		}
	}()

	err = h.loader.Load(ctx, stored.Results, func(sc domain.SectionContent) {
		send <- outboundMessage[any]{Type: "section", Payload: sc}
	})
	if err == nil {
		send <- outboundMessage[any]{Type: "done"}
	} else {
		h.logger.Debug("section stream cancelled", zap.String("resultId", resultID), zap.Error(err))
	}
	close(send)
	<-writerDone

	if ctx.Err() == nil {
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	}
}
