package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Natnat0905/GeoChat/internal/geometry"
	"github.com/Natnat0905/GeoChat/internal/ocr"
	"github.com/Natnat0905/GeoChat/internal/render"
	"github.com/Natnat0905/GeoChat/internal/store"
	"github.com/Natnat0905/GeoChat/internal/tutor"
)

type chatRequest struct {
	UserMessage string `json:"user_message"`
}

type textResponse struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

type visualResponse struct {
	Type        string         `json:"type"`
	Explanation string         `json:"explanation"`
	Image       string         `json:"image"` // base64 PNG, no data: prefix
	Parameters  map[string]any `json:"parameters"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, textResponse{Type: "error", Content: msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "active",
		"service": "GeoChat Math Tutor API",
	})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST only")
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	if strings.TrimSpace(req.UserMessage) == "" {
		writeError(w, http.StatusBadRequest, "user_message is required")
		return
	}

	s.answer(w, r, req.UserMessage)
}

func (s *Server) handleProcessImage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST only")
		return
	}
	if s.ocr == nil {
		writeError(w, http.StatusServiceUnavailable, "OCR is not configured")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusBadRequest,
				fmt.Sprintf("File too large (max %dMB)", s.config.MaxUploadBytes>>20))
			return
		}
		writeError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		writeError(w, http.StatusBadRequest, "Invalid file type")
		return
	}

	text, err := s.ocr.ExtractText(r.Context(), file, contentType)
	if err != nil {
		s.log.Error("image processing failed",
			zap.String("request_id", RequestID(r.Context())),
			zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Error processing image")
		return
	}

	problem := ocr.ParseMathProblem(text)
	if problem == "" {
		writeError(w, http.StatusBadRequest, "No math problem detected")
		return
	}

	s.answer(w, r, problem)
}

// answer runs the tutoring flow shared by /chat and /process-image.
func (s *Server) answer(w http.ResponseWriter, r *http.Request, userMessage string) {
	start := time.Now()

	reply, err := s.tutor.Answer(r.Context(), userMessage)
	if err != nil {
		s.answerError(w, r, userMessage, start, err)
		return
	}

	switch reply.Type {
	case tutor.ReplyVisual:
		s.recordChat(r, userMessage, "visual", string(reply.Shape), start)
		writeJSON(w, http.StatusOK, visualResponse{
			Type:        "visual",
			Explanation: reply.Explanation,
			Image:       render.Base64PNG(reply.PNG),
			Parameters:  reply.Parameters,
		})
	default:
		s.recordChat(r, userMessage, "text", "", start)
		writeJSON(w, http.StatusOK, textResponse{Type: "text", Content: reply.Content})
	}
}

// answerError maps tutor failures to the wire contract. Shape and
// parameter problems are the client's to fix; everything else fails closed
// with no image.
func (s *Server) answerError(w http.ResponseWriter, r *http.Request, userMessage string, start time.Time, err error) {
	s.recordChat(r, userMessage, "error", "", start)

	var (
		unsupported *tutor.UnsupportedShapeError
		missing     *geometry.MissingParameterError
		invalid     *geometry.InvalidGeometryError
	)
	switch {
	case errors.As(err, &unsupported), errors.As(err, &missing), errors.As(err, &invalid):
		s.log.Warn("chat rejected",
			zap.String("request_id", RequestID(r.Context())),
			zap.Error(err))
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.log.Error("chat failed",
			zap.String("request_id", RequestID(r.Context())),
			zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Please try rephrasing your question")
	}
}

// recordChat appends one chat event. Storage problems only log; the reply
// has already been decided.
func (s *Server) recordChat(r *http.Request, userMessage, replyType, shape string, start time.Time) {
	if s.events == nil {
		return
	}
	data := store.ChatEventData{
		RequestID:   RequestID(r.Context()),
		Channel:     "http",
		UserMessage: userMessage,
		ReplyType:   replyType,
		Shape:       shape,
		LatencyMs:   time.Since(start).Milliseconds(),
	}
	if err := s.events.AppendChat(r.Context(), data); err != nil {
		s.log.Warn("chat event append failed", zap.Error(err))
	}
}
