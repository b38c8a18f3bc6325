package repository

import (
	"context"
	"time"

	authfront "github.com/hsapp/go-authfront"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// SessionRecord is the Bun model for a persisted session snapshot. Each
// namespace holds at most one record; the ID is derived from the namespace so
// saves are idempotent.
type SessionRecord struct {
	bun.BaseModel `bun:"table:auth_sessions,alias:ases"`

	ID        uuid.UUID `bun:"id,pk,type:uuid"`
	Namespace string    `bun:"namespace,notnull,unique"`
	Payload   []byte    `bun:"payload"`
	CreatedAt time.Time `bun:"created_at,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,default:current_timestamp"`
}

// Sessions stores session snapshots in a relational database. It implements
// authfront.Storage and is safe to share between a store and a transport.
type Sessions struct {
	db        *bun.DB
	records   repository.Repository[*SessionRecord]
	namespace string
	id        uuid.UUID
}

var _ authfront.Storage = (*Sessions)(nil)

// NewSessions creates a database backed storage scoped to the given
// namespace. An empty namespace falls back to the default storage key.
func NewSessions(db *bun.DB, namespace string) (*Sessions, error) {
	if namespace == "" {
		namespace = authfront.DefaultStorageKey
	}

	id, err := hashid.NewUUID(namespace)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "unable to derive session record id").
			WithMetadata(map[string]any{
				"namespace": namespace,
			})
	}

	records := repository.NewRepository[*SessionRecord](db, repository.ModelHandlers[*SessionRecord]{
		NewRecord: func() *SessionRecord { return &SessionRecord{} },
		GetID: func(r *SessionRecord) uuid.UUID {
			if r == nil {
				return uuid.Nil
			}
			return r.ID
		},
		SetID: func(r *SessionRecord, id uuid.UUID) {
			if r != nil {
				r.ID = id
			}
		},
		GetIdentifier: func() string { return "namespace" },
	})

	return &Sessions{
		db:        db,
		records:   records,
		namespace: namespace,
		id:        id,
	}, nil
}

// CreateTables provisions the backing table. Call it once during startup.
func (s *Sessions) CreateTables(ctx context.Context) error {
	_, err := s.db.NewCreateTable().
		Model((*SessionRecord)(nil)).
		IfNotExists().
		Exec(ctx)
	return err
}

// Load implements authfront.Storage.
func (s *Sessions) Load(ctx context.Context) ([]byte, error) {
	record, err := s.records.GetByID(ctx, s.id.String())
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, authfront.ErrNoStoredSession
		}
		return nil, err
	}

	if len(record.Payload) == 0 {
		return nil, authfront.ErrNoStoredSession
	}

	out := make([]byte, len(record.Payload))
	copy(out, record.Payload)

	return out, nil
}

// Save implements authfront.Storage.
func (s *Sessions) Save(ctx context.Context, data []byte) error {
	payload := make([]byte, len(data))
	copy(payload, data)

	record := &SessionRecord{
		ID:        s.id,
		Namespace: s.namespace,
		Payload:   payload,
		UpdatedAt: time.Now(),
	}

	_, err := s.records.Upsert(ctx, record, repository.UpdateByID(s.id.String()))
	return err
}

// Clear implements authfront.Storage. Clearing an absent record is a no-op.
func (s *Sessions) Clear(ctx context.Context) error {
	_, err := s.db.NewDelete().
		Model((*SessionRecord)(nil)).
		Where("id = ?", s.id.String()).
		Exec(ctx)
	return err
}
