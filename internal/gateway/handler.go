package gateway

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/BoualamHamza/InterviewSim/internal/interview"
	"github.com/BoualamHamza/InterviewSim/internal/metrics"
	"github.com/BoualamHamza/InterviewSim/internal/models"
	"github.com/BoualamHamza/InterviewSim/internal/session"
)

// Gateway owns the interview websocket endpoint: one channel per session id,
// one goroutine per channel, inbound candidate text in, state machine frames
// out in emission order.
type Gateway struct {
	store             session.Store
	generator         interview.TextGenerator // nil when the backend is unconfigured
	maxTurns          int
	generationTimeout time.Duration
	logger            *zap.Logger
	upgrader          websocket.Upgrader
}

func New(store session.Store, generator interview.TextGenerator, maxTurns int, generationTimeout time.Duration, logger *zap.Logger) *Gateway {
	return &Gateway{
		store:             store,
		generator:         generator,
		maxTurns:          maxTurns,
		generationTimeout: generationTimeout,
		logger:            logger,
		upgrader:          websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
	}
}

// InterviewWS handles GET /ws/interview/{id}.
func (g *Gateway) InterviewWS(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	log := g.logger.With(zap.String("session_id", sessionID))

	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()
	client := NewClient(conn)

	// Startup-time rejections: unknown session and unconfigured backend get
	// distinct close codes, and no state machine is created.
	sess, err := g.store.Get(r.Context(), sessionID)
	if err != nil {
		log.Warn("rejecting channel, session not found")
		_ = client.Send(models.ErrorFrame("Interview session not found.", ""))
		client.CloseWithCode(models.ClosePolicyViolation, "unknown session")
		return
	}
	if g.generator == nil {
		log.Warn("rejecting channel, AI backend not configured")
		_ = client.Send(models.ErrorFrame("AI service is not configured.", ""))
		client.CloseWithCode(models.CloseInternalError, "backend unavailable")
		return
	}

	metrics.ActiveInterviews.Inc()
	defer metrics.ActiveInterviews.Dec()
	log.Info("interview channel open")

	machine := interview.NewMachine(sess, g.generator, g.maxTurns, g.logger)

	if done := g.apply(client, sess, g.open(machine)); done {
		return
	}

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			// Disconnect is a normal lifecycle event: stop driving the
			// machine, leave the stored session untouched.
			log.Info("interview channel disconnected", zap.Error(err))
			return
		}

		text := strings.TrimSpace(string(payload))
		if text == "" {
			continue
		}

		if done := g.apply(client, sess, g.reply(machine, text)); done {
			return
		}
	}
}

// apply persists the session, emits the transition's frames in order and
// performs the close it requested. Returns true when the channel is done.
func (g *Gateway) apply(client *Client, sess *models.Session, res interview.Result) bool {
	log := g.logger.With(zap.String("session_id", sess.ID))

	if res.ErrorCode != "" {
		metrics.GenerationFailures.WithLabelValues(res.ErrorCode).Inc()
	}

	saveCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := g.store.Save(saveCtx, sess); err != nil {
		log.Error("failed to persist session", zap.Error(err))
	}

	for _, frame := range res.Frames {
		if err := client.Send(frame); err != nil {
			log.Info("send failed, channel gone", zap.Error(err))
			return true
		}
	}

	if !res.Close {
		return false
	}

	if res.CloseCode == models.CloseNormal {
		metrics.InterviewsConcluded.Inc()
		// Concluded sessions are evicted eagerly instead of waiting for the
		// store TTL.
		if err := g.store.Delete(saveCtx, sess.ID); err != nil {
			log.Error("failed to delete concluded session", zap.Error(err))
		}
		client.CloseWithCode(models.CloseNormal, "interview concluded")
		return true
	}

	client.CloseWithCode(res.CloseCode, "interview terminated")
	return true
}

// Each generation call gets its own deadline. An expired call surfaces as a
// recoverable generation failure instead of hanging the read loop. The
// request context is not used: the hijacked connection's lifetime is handled
// by the read loop itself.

func (g *Gateway) open(machine *interview.Machine) interview.Result {
	ctx, cancel := context.WithTimeout(context.Background(), g.generationTimeout)
	defer cancel()
	return machine.Open(ctx)
}

func (g *Gateway) reply(machine *interview.Machine, text string) interview.Result {
	ctx, cancel := context.WithTimeout(context.Background(), g.generationTimeout)
	defer cancel()
	return machine.Reply(ctx, text)
}
