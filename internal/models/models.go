package models

import "time"

// InterviewerRole is the persona the AI interviewer adopts for a session.
type InterviewerRole string

const (
	RoleHR               InterviewerRole = "HR"
	RoleTechnicalManager InterviewerRole = "TECHNICAL_MANAGER"
)

// Valid reports whether the role is part of the supported enumeration.
func (r InterviewerRole) Valid() bool {
	return r == RoleHR || r == RoleTechnicalManager
}

// Speaker identifies who produced a turn in the conversation log.
type Speaker string

const (
	SpeakerInterviewer Speaker = "interviewer"
	SpeakerCandidate   Speaker = "candidate"
)

// Turn is one entry in a session's conversation log.
type Turn struct {
	Speaker Speaker `json:"speaker"`
	Text    string  `json:"text"`
}

// Session holds one candidate's interview: the job description and role are
// immutable after creation, the log is append-only and mutated only by the
// interview state machine while a channel is open.
type Session struct {
	ID             string          `json:"id"`
	JobDescription string          `json:"jobDescription"`
	Role           InterviewerRole `json:"role"`
	Log            []Turn          `json:"log"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// TurnCount is the number of interviewer turns in the log. It is always
// recomputed from the log rather than tracked as a separate counter, so a
// replayed transition can never make it drift.
func (s *Session) TurnCount() int {
	count := 0
	for _, turn := range s.Log {
		if turn.Speaker == SpeakerInterviewer {
			count++
		}
	}
	return count
}

// LastTurn returns the final log entry, or false when the log is empty.
func (s *Session) LastTurn() (Turn, bool) {
	if len(s.Log) == 0 {
		return Turn{}, false
	}
	return s.Log[len(s.Log)-1], true
}
