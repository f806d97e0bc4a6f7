package models

// Frame types on the interview channel.
const (
	FrameQuestion = "question"
	FrameFeedback = "feedback"
	FrameError    = "error"
	FrameControl  = "control"
)

// CommandEndInterview tells the client the interview has concluded.
const CommandEndInterview = "end_interview"

// WebSocket close codes used by the channel gateway (RFC 6455).
const (
	CloseNormal          = 1000
	ClosePolicyViolation = 1008
	CloseInternalError   = 1011
)

// Frame is the outbound wire contract between the state machine and the
// channel: question/feedback/error carry Content, control carries Command
// and Message, and Detail is optional diagnostics on error frames.
type Frame struct {
	Type    string `json:"type"`
	Content string `json:"content,omitempty"`
	Command string `json:"command,omitempty"`
	Message string `json:"message,omitempty"`
	Detail  string `json:"detail,omitempty"`
}

func QuestionFrame(text string) Frame {
	return Frame{Type: FrameQuestion, Content: text}
}

func FeedbackFrame(text string) Frame {
	return Frame{Type: FrameFeedback, Content: text}
}

func ErrorFrame(content, detail string) Frame {
	return Frame{Type: FrameError, Content: content, Detail: detail}
}

func ControlFrame(command, message string) Frame {
	return Frame{Type: FrameControl, Command: command, Message: message}
}
