package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/Natnat0905/GeoChat/internal/geometry"
	"github.com/Natnat0905/GeoChat/internal/llm"
	"github.com/Natnat0905/GeoChat/internal/render"
	"github.com/Natnat0905/GeoChat/internal/router"
	"github.com/Natnat0905/GeoChat/internal/screens/history"
	"github.com/Natnat0905/GeoChat/internal/store"
	"github.com/Natnat0905/GeoChat/internal/tutor"
)

// mockEventRepo implements store.EventRepo for testing.
type mockEventRepo struct {
	chatEvents []store.ChatEventData
}

func (m *mockEventRepo) AppendLLMRequest(_ context.Context, _ store.LLMRequestEventData) error {
	return nil
}
func (m *mockEventRepo) QueryLLMEvents(_ context.Context, _ store.QueryOpts) ([]store.LLMRequestEvent, error) {
	return nil, nil
}
func (m *mockEventRepo) GetLLMEvent(_ context.Context, _ int) (*store.LLMRequestEvent, error) {
	return nil, nil
}
func (m *mockEventRepo) LLMUsageByPurpose(_ context.Context) ([]store.PurposeUsage, error) {
	return nil, nil
}
func (m *mockEventRepo) LLMUsageByModel(_ context.Context) ([]store.ModelUsage, error) {
	return nil, nil
}
func (m *mockEventRepo) AppendChat(_ context.Context, data store.ChatEventData) error {
	m.chatEvents = append(m.chatEvents, data)
	return nil
}
func (m *mockEventRepo) QueryChatEvents(_ context.Context, _ store.QueryOpts) ([]store.ChatEvent, error) {
	return nil, nil
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testChatScreen(t *testing.T, responses ...llm.MockResponse) (*ChatScreen, *mockEventRepo) {
	t.Helper()
	mock := llm.NewMockProvider(responses...)
	svc := tutor.New(mock, geometry.New(nil), render.New(nil), tutor.DefaultConfig(), nil)
	events := &mockEventRepo{}
	return New(svc, events, t.TempDir()), events
}

func circleAnswerJSON() json.RawMessage {
	return json.RawMessage(`{
		"shape": "circle",
		"parameters": {"radius": 5},
		"explanation": "The area is about 78.54 cm²."
	}`)
}

func TestChatScreen_Title(t *testing.T) {
	s, _ := testChatScreen(t)
	if s.Title() != "Geometry Tutor" {
		t.Errorf("Title = %q", s.Title())
	}
}

func TestChatScreen_EmptySubmitIgnored(t *testing.T) {
	s, _ := testChatScreen(t)

	var scr router.Screen = s
	scr, cmd := scr.Update(specialKey(tea.KeyEnter))
	cs := scr.(*ChatScreen)

	if cmd != nil {
		t.Error("expected no command for empty submit")
	}
	if len(cs.turns) != 0 || cs.waiting {
		t.Error("empty submit must not start an exchange")
	}
}

func TestChatScreen_SubmitStartsExchange(t *testing.T) {
	s, _ := testChatScreen(t, llm.MockResponse{Content: circleAnswerJSON()})
	s.input.Model.SetValue("Draw a circle with radius 5")

	var scr router.Screen = s
	scr, cmd := scr.Update(specialKey(tea.KeyEnter))
	cs := scr.(*ChatScreen)

	if cmd == nil {
		t.Fatal("expected a command after submit")
	}
	if !cs.waiting {
		t.Error("expected waiting state after submit")
	}
	if len(cs.turns) != 1 || cs.turns[0].role != roleUser {
		t.Fatalf("turns = %+v, want one user turn", cs.turns)
	}
	if cs.input.Value() != "" {
		t.Error("input not cleared after submit")
	}
}

func TestChatScreen_VisualReplySavesDiagram(t *testing.T) {
	s, events := testChatScreen(t, llm.MockResponse{Content: circleAnswerJSON()})

	msg := s.ask("Draw a circle with radius 5")()
	reply, ok := msg.(replyMsg)
	if !ok {
		t.Fatalf("ask returned %T", msg)
	}
	if reply.err != nil {
		t.Fatalf("unexpected error: %v", reply.err)
	}
	if reply.imagePath == "" {
		t.Fatal("expected a saved diagram path")
	}
	if _, err := os.Stat(reply.imagePath); err != nil {
		t.Errorf("diagram file missing: %v", err)
	}
	if !strings.Contains(reply.imagePath, "circle") {
		t.Errorf("diagram name %q does not carry the shape", reply.imagePath)
	}

	var scr router.Screen = s
	scr, _ = scr.Update(msg)
	cs := scr.(*ChatScreen)
	if cs.waiting {
		t.Error("waiting must clear once the reply lands")
	}
	last := cs.turns[len(cs.turns)-1]
	if last.role != roleTutor || last.imagePath == "" {
		t.Errorf("last turn = %+v, want tutor turn with diagram", last)
	}

	if len(events.chatEvents) != 1 {
		t.Fatalf("chat events = %d, want 1", len(events.chatEvents))
	}
	ev := events.chatEvents[0]
	if ev.Channel != "tui" || ev.ReplyType != "visual" || ev.Shape != "circle" {
		t.Errorf("recorded event = %+v", ev)
	}
	if ev.RequestID == "" {
		t.Error("event missing request ID")
	}
}

func TestChatScreen_ProviderFailure(t *testing.T) {
	s, events := testChatScreen(t, llm.MockResponse{Err: errors.New("upstream down")})

	msg := s.ask("Draw a circle with radius 5")()

	var scr router.Screen = s
	scr, _ = scr.Update(msg)
	cs := scr.(*ChatScreen)

	last := cs.turns[len(cs.turns)-1]
	if !last.isErr {
		t.Fatal("expected an error turn")
	}
	if last.text != "Please try rephrasing your question" {
		t.Errorf("error text = %q", last.text)
	}
	if len(events.chatEvents) != 1 || events.chatEvents[0].ReplyType != "error" {
		t.Errorf("recorded events = %+v", events.chatEvents)
	}
}

func TestFriendlyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			"unsupported shape",
			&tutor.UnsupportedShapeError{Name: "hexagon"},
			`unsupported shape "hexagon"`,
		},
		{
			"missing parameters wrapped",
			fmt.Errorf("normalize circle: %w", &geometry.MissingParameterError{Shape: geometry.ShapeCircle, Missing: []string{"radius"}}),
			"circle: missing required parameters: radius",
		},
		{
			"anything else",
			errors.New("connection reset"),
			"Please try rephrasing your question",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := friendlyError(tt.err); got != tt.want {
				t.Errorf("friendlyError = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestChatScreen_TabOpensHistory(t *testing.T) {
	s, _ := testChatScreen(t)

	var scr router.Screen = s
	_, cmd := scr.Update(specialKey(tea.KeyTab))
	if cmd == nil {
		t.Fatal("expected a command for tab")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("tab produced %T, want PushScreenMsg", cmd())
	}
	if _, ok := push.Screen.(*history.HistoryScreen); !ok {
		t.Errorf("pushed screen is %T, want HistoryScreen", push.Screen)
	}
}

func TestChatScreen_ViewSmoke(t *testing.T) {
	s, _ := testChatScreen(t)
	if view := s.View(80, 24); view == "" {
		t.Error("expected non-empty view")
	}

	s.turns = append(s.turns,
		turn{role: roleUser, text: "Draw a circle with radius 5"},
		turn{role: roleTutor, text: "Here you go.", imagePath: "/tmp/circle.png"},
	)
	view := s.View(80, 24)
	if !strings.Contains(view, "circle.png") {
		t.Error("view does not reference the saved diagram")
	}
}

func TestChatScreen_KeyHints(t *testing.T) {
	s, _ := testChatScreen(t)
	hints := s.KeyHints()
	if len(hints) != 3 {
		t.Errorf("hints = %d, want 3 with history enabled", len(hints))
	}

	bare := New(s.svc, nil, t.TempDir())
	if len(bare.KeyHints()) != 2 {
		t.Error("expected history hint to disappear without an event repo")
	}
}
