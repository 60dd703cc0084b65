package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"chatrelay/internal/eventbus"
	"chatrelay/internal/llm"
)

type chatRequest struct {
	Message string `json:"message"`
	Model   string `json:"model"`
}

type chatResponse struct {
	Response string `json:"response"`
	Model    string `json:"model"`
}

type historyMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
	Model   string `json:"model,omitempty"`
}

type historyResponse struct {
	Messages []historyMessage `json:"messages"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// handleChat is the submit-turn operation: validate, append the user turn,
// invoke the selected backend with the session's memory bound, append the
// assistant turn, respond.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity := identityFrom(ctx)

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// Validation rejects before any state mutation.
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "Message is required")
		return
	}
	if req.Model == "" {
		writeError(w, http.StatusBadRequest, "Model selection is required")
		return
	}
	if !llm.Supported(req.Model) {
		writeError(w, http.StatusBadRequest, "Unsupported model: "+req.Model)
		return
	}

	mgr := s.registry.Resolve(identity.UserID)
	if err := mgr.AddUserMessage(ctx, req.Message, req.Model); err != nil {
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	s.bus.Publish(eventbus.TopicLLMRequest, req.Model)
	text, err := s.invoker.InvokeWithMemory(ctx, req.Model, identity.UserID, req.Message)
	if err != nil {
		log.Printf("[server] %s backend invocation failed: %v", requestIDFrom(ctx), err)
		s.bus.Publish(eventbus.TopicError, err)

		var unsupported *llm.UnsupportedModelError
		if errors.As(err, &unsupported) {
			writeError(w, http.StatusBadRequest, unsupported.Error())
			return
		}
		writeError(w, http.StatusBadGateway, "Model invocation failed")
		return
	}
	s.bus.Publish(eventbus.TopicLLMResponse, req.Model)

	if err := mgr.AddAIMessage(ctx, text, req.Model); err != nil {
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{Response: text, Model: req.Model})
}

// handleHistory is the fetch-history operation. It re-reads the durable
// store; a read failure degrades to an empty list.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity := identityFrom(ctx)

	mgr := s.registry.Resolve(identity.UserID)
	messages := mgr.GetMessages(ctx)

	out := make([]historyMessage, 0, len(messages))
	for _, m := range messages {
		out = append(out, historyMessage{Role: m.Role, Content: m.Content, Model: m.Model})
	}

	writeJSON(w, http.StatusOK, historyResponse{Messages: out})
}

// handleClearHistory empties both the in-process buffer and the durable
// history. Idempotent.
func (s *Server) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity := identityFrom(ctx)

	mgr := s.registry.Resolve(identity.UserID)
	if err := mgr.ClearMemory(ctx); err != nil {
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type debugResponse struct {
	UserID      string           `json:"user_id"`
	Messages    []historyMessage `json:"messages"`
	MemoryState []historyMessage `json:"memory_state"`
}

// handleDebug cross-checks the durable history against the in-process
// buffer for the caller's session.
func (s *Server) handleDebug(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity := identityFrom(ctx)

	mgr := s.registry.Resolve(identity.UserID)

	durable := make([]historyMessage, 0)
	for _, m := range mgr.GetMessages(ctx) {
		durable = append(durable, historyMessage{Role: m.Role, Content: m.Content, Model: m.Model})
	}

	vars, err := mgr.GetMemoryVariables(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	inMemory := make([]historyMessage, 0, len(vars))
	for _, m := range vars {
		inMemory = append(inMemory, historyMessage{Role: m.Role, Content: m.Content})
	}

	writeJSON(w, http.StatusOK, debugResponse{
		UserID:      identity.UserID,
		Messages:    durable,
		MemoryState: inMemory,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[server] failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
