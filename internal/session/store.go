package session

import (
	"context"
	"errors"

	"github.com/BoualamHamza/InterviewSim/internal/models"
)

// ErrNotFound is returned when no session exists for an id.
var ErrNotFound = errors.New("session not found")

// Store is the keyed registry of active interview sessions. Create overwrites
// any existing session at the same id; all per-key operations are atomic.
// No implementation guarantees survival across process restarts.
type Store interface {
	Create(ctx context.Context, id, jobDescription string, role models.InterviewerRole) (*models.Session, error)
	Get(ctx context.Context, id string) (*models.Session, error)
	Save(ctx context.Context, session *models.Session) error
	Delete(ctx context.Context, id string) error
}
