// Package chat implements the conversational tutoring screen.
package chat

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/Natnat0905/GeoChat/internal/geometry"
	"github.com/Natnat0905/GeoChat/internal/router"
	"github.com/Natnat0905/GeoChat/internal/screens/history"
	"github.com/Natnat0905/GeoChat/internal/store"
	"github.com/Natnat0905/GeoChat/internal/tutor"
	"github.com/Natnat0905/GeoChat/internal/ui/components"
	"github.com/Natnat0905/GeoChat/internal/ui/layout"
	"github.com/Natnat0905/GeoChat/internal/ui/theme"
)

// ChatScreen implements router.Screen for the tutoring conversation.
type ChatScreen struct {
	svc         *tutor.Service
	events      store.EventRepo // may be nil
	diagramsDir string

	turns   []turn
	input   components.TextInput
	spin    spinner.Model
	waiting bool
}

var _ router.Screen = (*ChatScreen)(nil)
var _ router.KeyHintProvider = (*ChatScreen)(nil)

// New creates the chat screen. events may be nil to skip recording.
func New(svc *tutor.Service, events store.EventRepo, diagramsDir string) *ChatScreen {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Hint

	return &ChatScreen{
		svc:         svc,
		events:      events,
		diagramsDir: diagramsDir,
		input:       components.NewTextInput("Ask a geometry question...", 500),
		spin:        sp,
	}
}

func (s *ChatScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *ChatScreen) Title() string {
	return "Geometry Tutor"
}

func (s *ChatScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
	}
	if s.events != nil {
		hints = append(hints, layout.KeyHint{Key: "Tab", Description: "History"})
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

func (s *ChatScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case replyMsg:
		return s.handleReply(msg)

	case spinner.TickMsg:
		if s.waiting {
			var cmd tea.Cmd
			s.spin, cmd = s.spin.Update(msg)
			return s, cmd
		}
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			return s.submit()
		case "tab":
			if s.events != nil {
				return s, func() tea.Msg {
					return router.PushScreenMsg{Screen: history.New(s.events)}
				}
			}
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *ChatScreen) submit() (router.Screen, tea.Cmd) {
	question := strings.TrimSpace(s.input.Value())
	if question == "" || s.waiting {
		return s, nil
	}

	s.turns = append(s.turns, turn{role: roleUser, text: question})
	s.input.Reset()
	s.waiting = true

	return s, tea.Batch(s.spin.Tick, s.ask(question))
}

// ask runs one exchange off the UI goroutine.
func (s *ChatScreen) ask(question string) tea.Cmd {
	svc, events, dir := s.svc, s.events, s.diagramsDir
	return func() tea.Msg {
		ctx := context.Background()
		start := time.Now()

		reply, err := svc.Answer(ctx, question)

		msg := replyMsg{reply: reply, err: err}
		if err == nil && reply.Type == tutor.ReplyVisual {
			if path, saveErr := saveDiagram(dir, reply.Shape, reply.PNG); saveErr == nil {
				msg.imagePath = path
			}
		}

		if events != nil {
			_ = events.AppendChat(ctx, store.ChatEventData{
				RequestID:   uuid.NewString(),
				Channel:     "tui",
				UserMessage: question,
				ReplyType:   replyTypeOf(reply, err),
				Shape:       shapeOf(reply),
				LatencyMs:   time.Since(start).Milliseconds(),
			})
		}
		return msg
	}
}

func (s *ChatScreen) handleReply(msg replyMsg) (router.Screen, tea.Cmd) {
	s.waiting = false

	if msg.err != nil {
		s.turns = append(s.turns, turn{role: roleTutor, text: friendlyError(msg.err), isErr: true})
		return s, nil
	}

	switch msg.reply.Type {
	case tutor.ReplyVisual:
		s.turns = append(s.turns, turn{
			role:      roleTutor,
			text:      msg.reply.Explanation,
			imagePath: msg.imagePath,
		})
	default:
		s.turns = append(s.turns, turn{role: roleTutor, text: msg.reply.Content})
	}
	return s, nil
}

// friendlyError keeps shape and parameter problems verbatim. Anything else
// hides behind the generic retry prompt, same as the HTTP API.
func friendlyError(err error) string {
	var (
		unsupported *tutor.UnsupportedShapeError
		missing     *geometry.MissingParameterError
		invalid     *geometry.InvalidGeometryError
	)
	if errors.As(err, &unsupported) || errors.As(err, &missing) || errors.As(err, &invalid) {
		return err.Error()
	}
	return "Please try rephrasing your question"
}

func replyTypeOf(reply *tutor.Reply, err error) string {
	if err != nil {
		return "error"
	}
	return string(reply.Type)
}

func shapeOf(reply *tutor.Reply) string {
	if reply == nil || reply.Type != tutor.ReplyVisual {
		return ""
	}
	return string(reply.Shape)
}

// saveDiagram writes the PNG under dir with a timestamped name.
func saveDiagram(dir string, shape geometry.Shape, png []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	name := fmt.Sprintf("%s-%s.png", shape, time.Now().Format("20060102-150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, png, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
