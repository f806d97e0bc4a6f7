package interview

import (
	"context"

	"go.uber.org/zap"

	"github.com/BoualamHamza/InterviewSim/internal/llm"
	"github.com/BoualamHamza/InterviewSim/internal/models"
)

// State of one interview session.
type State int

const (
	// StateAwaitingFirstQuestion: log empty, no question asked yet.
	StateAwaitingFirstQuestion State = iota
	// StateAwaitingReply: last turn is an interviewer question.
	StateAwaitingReply
	// StateConcluded: feedback delivered (or the session failed fatally).
	StateConcluded
)

// TextGenerator is the capability the machine drives: given the session's
// role, job description and history, produce a question or closing feedback.
type TextGenerator interface {
	Generate(ctx context.Context, role models.InterviewerRole, jobDescription string, history []models.Turn, intent llm.Intent) (*models.GenerationResponse, error)
}

// Result carries everything one transition produced: frames in the exact
// order they must reach the candidate, and whether (and how) to close the
// channel afterwards.
type Result struct {
	Frames    []models.Frame
	Close     bool
	CloseCode int
	// ErrorCode is set when the transition hit a generation failure, for
	// metrics and logging.
	ErrorCode string
}

// Machine drives one interview session: it owns the conversation log, decides
// whether to ask another question, request closing feedback or terminate, and
// never lets the log break strict interviewer/candidate alternation.
type Machine struct {
	session   *models.Session
	generator TextGenerator
	limit     int
	logger    *zap.Logger
	concluded bool
}

// NewMachine wires a machine to an existing session. limit bounds the number
// of interviewer questions.
func NewMachine(session *models.Session, generator TextGenerator, limit int, logger *zap.Logger) *Machine {
	return &Machine{
		session:   session,
		generator: generator,
		limit:     limit,
		logger:    logger.With(zap.String("session_id", session.ID)),
	}
}

// State derives the machine's state from the log, so a machine rebuilt over a
// stored session resumes exactly where the previous one stopped.
func (m *Machine) State() State {
	switch {
	case m.concluded:
		return StateConcluded
	case len(m.session.Log) == 0:
		return StateAwaitingFirstQuestion
	default:
		return StateAwaitingReply
	}
}

// TurnCount is the number of questions asked so far, recomputed from the log.
func (m *Machine) TurnCount() int {
	return m.session.TurnCount()
}

// Open runs the channel-open transition. With an empty log it asks for the
// opening question; a failure here is fatal because no question exists and
// the session cannot proceed. With a non-empty log (a reconnect) it replays
// the pending question, or resumes after the candidate's last reply, without
// appending anything it already has.
func (m *Machine) Open(ctx context.Context) Result {
	if last, ok := m.session.LastTurn(); ok {
		if last.Speaker == models.SpeakerInterviewer {
			return Result{Frames: []models.Frame{models.QuestionFrame(last.Text)}}
		}
		return m.advance(ctx)
	}

	resp, err := m.generator.Generate(ctx, m.session.Role, m.session.JobDescription, nil, llm.IntentQuestion)
	if err != nil {
		m.logger.Error("opening question generation failed", zap.Error(err))
		m.concluded = true
		return Result{
			Frames:    []models.Frame{m.errorFrame(err)},
			Close:     true,
			CloseCode: models.CloseInternalError,
			ErrorCode: llm.ErrorCode(err),
		}
	}

	m.session.Log = append(m.session.Log, models.Turn{Speaker: models.SpeakerInterviewer, Text: resp.Content})
	m.logger.Info("opening question asked", zap.Int("turn_count", m.TurnCount()))
	return Result{Frames: []models.Frame{models.QuestionFrame(resp.Content)}}
}

// Reply runs the inbound-candidate-message transition: append the reply, then
// either request the next question or, once the question limit is reached,
// the closing feedback.
func (m *Machine) Reply(ctx context.Context, text string) Result {
	if m.concluded {
		m.logger.Warn("reply received after conclusion, ignoring")
		return Result{}
	}
	if m.State() == StateAwaitingFirstQuestion {
		// No question exists yet, nothing to reply to.
		m.logger.Warn("reply received before first question, ignoring")
		return Result{}
	}

	m.session.Log = append(m.session.Log, models.Turn{Speaker: models.SpeakerCandidate, Text: text})
	res := m.advance(ctx)
	if res.ErrorCode != "" && !res.Close {
		// Recoverable failure: drop the candidate turn again so the log and
		// turn count are exactly as they were and a resend rebuilds them.
		m.session.Log = m.session.Log[:len(m.session.Log)-1]
	}
	return res
}

// advance decides what follows the candidate's latest reply.
func (m *Machine) advance(ctx context.Context) Result {
	turnCount := m.TurnCount()
	m.logger.Info("candidate replied", zap.Int("turn_count", turnCount), zap.Int("limit", m.limit))

	if turnCount >= m.limit {
		return m.conclude(ctx)
	}

	resp, err := m.generator.Generate(ctx, m.session.Role, m.session.JobDescription, m.session.Log, llm.IntentQuestion)
	if err != nil {
		// Recoverable: report it, append nothing, stay in the same state
		// and let the candidate resend.
		m.logger.Warn("question generation failed, awaiting resend", zap.Error(err))
		return Result{
			Frames:    []models.Frame{m.errorFrame(err)},
			ErrorCode: llm.ErrorCode(err),
		}
	}

	m.session.Log = append(m.session.Log, models.Turn{Speaker: models.SpeakerInterviewer, Text: resp.Content})
	return Result{Frames: []models.Frame{models.QuestionFrame(resp.Content)}}
}

// conclude requests the closing feedback and terminates the interview. A
// failed feedback generation is not retried; the interview still ends, over
// the error path.
func (m *Machine) conclude(ctx context.Context) Result {
	m.concluded = true

	resp, err := m.generator.Generate(ctx, m.session.Role, m.session.JobDescription, m.session.Log, llm.IntentFeedback)
	if err != nil {
		m.logger.Error("feedback generation failed", zap.Error(err))
		return Result{
			Frames:    []models.Frame{m.errorFrame(err)},
			Close:     true,
			CloseCode: models.CloseInternalError,
			ErrorCode: llm.ErrorCode(err),
		}
	}

	m.logger.Info("interview concluded, feedback delivered")
	return Result{
		Frames: []models.Frame{
			models.FeedbackFrame(resp.Content),
			models.ControlFrame(models.CommandEndInterview, "The interview has concluded. Feedback provided."),
		},
		Close:     true,
		CloseCode: models.CloseNormal,
	}
}

// errorFrame maps a generation failure to its candidate-facing message.
// Authentication details never reach the candidate.
func (m *Machine) errorFrame(err error) models.Frame {
	if llm.IsAuthError(err) {
		return models.ErrorFrame("AI service configuration error (authentication).", "")
	}
	return models.ErrorFrame("Error generating AI response.", err.Error())
}
