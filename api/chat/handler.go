// Package chat serves the operator chat page and the command endpoints.
package chat

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/kilianp07/skylark/core/coordinator"
	"github.com/kilianp07/skylark/core/intent"
)

//go:embed static/index.html
var indexHTML []byte

// maxBody bounds the size of a command request.
const maxBody = 64 << 10

// Handler answers one utterance.
type Handler interface {
	Handle(ctx context.Context, utterance string) intent.Reply
}

// Request is the body of POST /chat and POST /api/commands.
type Request struct {
	Message string `json:"message"`
}

// Response is the body returned by POST /chat.
type Response struct {
	Response string `json:"response"`
}

// Register mounts the chat routes on r.
func Register(r *mux.Router, h Handler) {
	r.HandleFunc("/", page).Methods(http.MethodGet)
	r.Handle("/chat", NewChatHandler(h)).Methods(http.MethodPost)
	r.Handle("/api/commands", NewCommandHandler(h)).Methods(http.MethodPost)
}

func page(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(indexHTML)
}

func decode(w http.ResponseWriter, r *http.Request) (Request, bool) {
	var req Request
	err := json.NewDecoder(io.LimitReader(r.Body, maxBody)).Decode(&req)
	if err != nil {
		msg := "invalid JSON body"
		if errors.Is(err, io.EOF) {
			msg = "empty body"
		}
		http.Error(w, msg, http.StatusBadRequest)
		return req, false
	}
	return req, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// NewChatHandler returns the plain text chat endpoint. Every reply, error
// or not, is a 200 carrying the user-facing message.
func NewChatHandler(h Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req, ok := decode(w, r)
		if !ok {
			return
		}
		reply := h.Handle(r.Context(), req.Message)
		writeJSON(w, http.StatusOK, Response{Response: reply.Message})
	})
}

// NewCommandHandler returns the structured endpoint. Data store failures
// answer 502 so callers can retry.
func NewCommandHandler(h Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req, ok := decode(w, r)
		if !ok {
			return
		}
		reply := h.Handle(r.Context(), req.Message)
		status := http.StatusOK
		if reply.Error == coordinator.DataStoreUnavailable {
			status = http.StatusBadGateway
		}
		writeJSON(w, status, reply)
	})
}
