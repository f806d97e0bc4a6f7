package gateway

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BoualamHamza/InterviewSim/internal/interview"
	"github.com/BoualamHamza/InterviewSim/internal/llm"
	"github.com/BoualamHamza/InterviewSim/internal/models"
	"github.com/BoualamHamza/InterviewSim/internal/session"
)

type fakeGenerator struct {
	generateFn func(ctx context.Context, role models.InterviewerRole, jobDescription string, history []models.Turn, intent llm.Intent) (*models.GenerationResponse, error)
}

func (f *fakeGenerator) Generate(ctx context.Context, role models.InterviewerRole, jobDescription string, history []models.Turn, intent llm.Intent) (*models.GenerationResponse, error) {
	return f.generateFn(ctx, role, jobDescription, history, intent)
}

func interviewGenerator() *fakeGenerator {
	question := 0
	return &fakeGenerator{
		generateFn: func(_ context.Context, _ models.InterviewerRole, _ string, _ []models.Turn, intent llm.Intent) (*models.GenerationResponse, error) {
			if intent == llm.IntentFeedback {
				return &models.GenerationResponse{Content: "Strengths: clear answers. Areas for Improvement: more depth."}, nil
			}
			question++
			return &models.GenerationResponse{Content: "question " + string(rune('0'+question))}, nil
		},
	}
}

func newTestServer(t *testing.T, store session.Store, generator interview.TextGenerator) *httptest.Server {
	t.Helper()
	router := chi.NewRouter()
	gw := New(store, generator, 3, 5*time.Second, zap.NewNop())
	router.Get("/ws/interview/{id}", gw.InterviewWS)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func newMemoryStore(t *testing.T) *session.MemoryStore {
	t.Helper()
	store := session.NewMemoryStore(time.Hour)
	t.Cleanup(store.Close)
	return store
}

func dial(t *testing.T, srv *httptest.Server, sessionID string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/interview/" + sessionID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) models.Frame {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)
	var frame models.Frame
	require.NoError(t, json.Unmarshal(payload, &frame))
	return frame
}

// readClose drains until the peer closes and returns the close code.
func readClose(t *testing.T, conn *websocket.Conn) int {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if ce, ok := err.(*websocket.CloseError); ok {
				return ce.Code
			}
			t.Fatalf("connection ended without close frame: %v", err)
		}
	}
}

func TestChannelOpensWithFirstQuestion(t *testing.T) {
	store := newMemoryStore(t)
	sess, err := store.Create(context.Background(), "sess-a", "Backend engineer, 3 yrs experience", models.RoleHR)
	require.NoError(t, err)

	srv := newTestServer(t, store, interviewGenerator())
	conn := dial(t, srv, "sess-a")

	frame := readFrame(t, conn)
	assert.Equal(t, models.FrameQuestion, frame.Type)
	assert.NotEmpty(t, frame.Content)

	require.Eventually(t, func() bool {
		return sess.TurnCount() == 1
	}, time.Second, 10*time.Millisecond)
}

func TestFullInterviewEndsWithFeedbackControlAndNormalClose(t *testing.T) {
	store := newMemoryStore(t)
	_, err := store.Create(context.Background(), "sess-b", "Backend engineer", models.RoleTechnicalManager)
	require.NoError(t, err)

	srv := newTestServer(t, store, interviewGenerator())
	conn := dial(t, srv, "sess-b")

	// 3 question/answer cycles
	for i := 0; i < 3; i++ {
		frame := readFrame(t, conn)
		require.Equal(t, models.FrameQuestion, frame.Type)
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("my answer")))
	}

	feedback := readFrame(t, conn)
	assert.Equal(t, models.FrameFeedback, feedback.Type)
	assert.NotEmpty(t, feedback.Content)

	control := readFrame(t, conn)
	assert.Equal(t, models.FrameControl, control.Type)
	assert.Equal(t, models.CommandEndInterview, control.Command)

	assert.Equal(t, websocket.CloseNormalClosure, readClose(t, conn))

	// concluded sessions are evicted from the store
	require.Eventually(t, func() bool {
		_, err := store.Get(context.Background(), "sess-b")
		return err == session.ErrNotFound
	}, time.Second, 10*time.Millisecond)
}

func TestUnknownSessionRejectedWithPolicyViolation(t *testing.T) {
	store := newMemoryStore(t)
	srv := newTestServer(t, store, interviewGenerator())
	conn := dial(t, srv, "no-such-session")

	frame := readFrame(t, conn)
	assert.Equal(t, models.FrameError, frame.Type)
	assert.Equal(t, "Interview session not found.", frame.Content)

	assert.Equal(t, websocket.ClosePolicyViolation, readClose(t, conn))
}

func TestUnconfiguredBackendRejectedWithInternalError(t *testing.T) {
	store := newMemoryStore(t)
	_, err := store.Create(context.Background(), "sess-x", "any job", models.RoleHR)
	require.NoError(t, err)

	srv := newTestServer(t, store, nil)
	conn := dial(t, srv, "sess-x")

	frame := readFrame(t, conn)
	assert.Equal(t, models.FrameError, frame.Type)
	assert.Equal(t, "AI service is not configured.", frame.Content)

	assert.Equal(t, websocket.CloseInternalServerErr, readClose(t, conn))
}

func TestAuthFailureOnFirstQuestionClosesWithEmptyLog(t *testing.T) {
	store := newMemoryStore(t)
	sess, err := store.Create(context.Background(), "sess-d", "any job", models.RoleHR)
	require.NoError(t, err)

	generator := &fakeGenerator{
		generateFn: func(_ context.Context, _ models.InterviewerRole, _ string, _ []models.Turn, _ llm.Intent) (*models.GenerationResponse, error) {
			return nil, &llm.ProviderError{Provider: "fake", Code: llm.ErrCodeAPIKey, Message: "bad key"}
		},
	}

	srv := newTestServer(t, store, generator)
	conn := dial(t, srv, "sess-d")

	frame := readFrame(t, conn)
	assert.Equal(t, models.FrameError, frame.Type)
	assert.Empty(t, frame.Detail, "auth detail must not reach the candidate")

	assert.Equal(t, websocket.CloseInternalServerErr, readClose(t, conn))
	assert.Empty(t, sess.Log)
}

func TestRecoverableFailureKeepsChannelOpen(t *testing.T) {
	store := newMemoryStore(t)
	_, err := store.Create(context.Background(), "sess-r", "any job", models.RoleHR)
	require.NoError(t, err)

	calls := 0
	generator := &fakeGenerator{
		generateFn: func(_ context.Context, _ models.InterviewerRole, _ string, _ []models.Turn, _ llm.Intent) (*models.GenerationResponse, error) {
			calls++
			if calls == 2 {
				return nil, &llm.ProviderError{Provider: "fake", Code: llm.ErrCodeServiceDown, Message: "boom"}
			}
			return &models.GenerationResponse{Content: "a question"}, nil
		},
	}

	srv := newTestServer(t, store, generator)
	conn := dial(t, srv, "sess-r")

	require.Equal(t, models.FrameQuestion, readFrame(t, conn).Type)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("answer")))
	require.Equal(t, models.FrameError, readFrame(t, conn).Type)

	// channel still open: resend succeeds
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("answer")))
	require.Equal(t, models.FrameQuestion, readFrame(t, conn).Type)
}

func TestEmptyFramesAreIgnored(t *testing.T) {
	store := newMemoryStore(t)
	sess, err := store.Create(context.Background(), "sess-e", "any job", models.RoleHR)
	require.NoError(t, err)

	srv := newTestServer(t, store, interviewGenerator())
	conn := dial(t, srv, "sess-e")
	require.Equal(t, models.FrameQuestion, readFrame(t, conn).Type)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("   ")))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("real answer")))
	require.Equal(t, models.FrameQuestion, readFrame(t, conn).Type)

	require.Eventually(t, func() bool {
		return len(sess.Log) == 3
	}, time.Second, 10*time.Millisecond)
}
