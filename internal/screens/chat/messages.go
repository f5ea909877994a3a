package chat

import "github.com/Natnat0905/GeoChat/internal/tutor"

const (
	roleUser  = "You"
	roleTutor = "GeoChat"
)

// turn is one transcript entry.
type turn struct {
	role      string
	text      string
	imagePath string // set when a diagram was rendered and saved
	isErr     bool
}

// replyMsg is sent when the tutor answer (and any saved diagram) is ready.
type replyMsg struct {
	reply     *tutor.Reply
	imagePath string
	err       error
}
