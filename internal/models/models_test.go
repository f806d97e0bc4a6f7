package models

import "testing"

func TestTurnCountDerivedFromLog(t *testing.T) {
	sess := &Session{}
	if sess.TurnCount() != 0 {
		t.Fatalf("empty log should have turn count 0")
	}

	sess.Log = []Turn{
		{Speaker: SpeakerInterviewer, Text: "Q1"},
		{Speaker: SpeakerCandidate, Text: "A1"},
		{Speaker: SpeakerInterviewer, Text: "Q2"},
		{Speaker: SpeakerCandidate, Text: "A2"},
	}
	if got := sess.TurnCount(); got != 2 {
		t.Fatalf("expected turn count 2, got %d", got)
	}
}

func TestLastTurn(t *testing.T) {
	sess := &Session{}
	if _, ok := sess.LastTurn(); ok {
		t.Fatal("empty log should have no last turn")
	}

	sess.Log = []Turn{
		{Speaker: SpeakerInterviewer, Text: "Q1"},
		{Speaker: SpeakerCandidate, Text: "A1"},
	}
	last, ok := sess.LastTurn()
	if !ok || last.Speaker != SpeakerCandidate {
		t.Fatalf("unexpected last turn: %+v", last)
	}
}

func TestInterviewerRoleValid(t *testing.T) {
	if !RoleHR.Valid() || !RoleTechnicalManager.Valid() {
		t.Fatal("known roles must be valid")
	}
	if InterviewerRole("CEO").Valid() {
		t.Fatal("unknown role must be invalid")
	}
	if InterviewerRole("").Valid() {
		t.Fatal("empty role must be invalid")
	}
}
