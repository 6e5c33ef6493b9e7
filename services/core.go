package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"hotel-pms/events"
	"hotel-pms/models"
	"hotel-pms/repository"
)

// Scope names the tenant a call acts on and the user making it. Every
// operation requires a TenantID; UserID only feeds the audit log.
type Scope struct {
	TenantID string
	UserID   string
}

func (s Scope) validate() error {
	if strings.TrimSpace(s.TenantID) == "" {
		return invalidInput("tenant id is required")
	}
	return nil
}

func (s Scope) actor() *string {
	if s.UserID == "" {
		return nil
	}
	id := s.UserID
	return &id
}

// core is shared by every service: the store, the event sink, a logger and a clock.
type core struct {
	store  repository.Store
	events events.Publisher
	log    *zap.Logger
	now    func() time.Time
}

func newCore(store repository.Store, pub events.Publisher, log *zap.Logger) core {
	if pub == nil {
		pub = events.Nop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return core{
		store:  store,
		events: pub,
		log:    log,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// run executes fn as one unit of work and normalizes whatever comes back.
func (c *core) run(ctx context.Context, op string, scope Scope, fn func(tx repository.Tx) error) error {
	if err := scope.validate(); err != nil {
		return err
	}
	return c.finish(op, scope.TenantID, c.store.WithTx(ctx, fn))
}

// runUnscoped is for the few operations that precede a tenant (setup, login).
func (c *core) runUnscoped(ctx context.Context, op string, fn func(tx repository.Tx) error) error {
	return c.finish(op, "", c.store.WithTx(ctx, fn))
}

func (c *core) finish(op, tenantID string, err error) error {
	if err == nil {
		return nil
	}
	out := fromRepo(err, "record")
	if KindOf(out) == KindInternal {
		c.log.Error("unit of work failed",
			zap.String("op", op),
			zap.String("tenant_id", tenantID),
			zap.Error(err),
		)
	}
	return out
}

// publish is called after commit. A failed publish is logged, never returned.
func (c *core) publish(ctx context.Context, evs ...events.Event) {
	for _, ev := range evs {
		if err := c.events.Publish(ctx, ev); err != nil {
			c.log.Warn("event publish failed", zap.String("type", string(ev.Type)), zap.Error(err))
		}
	}
}

func (c *core) audit(tx repository.Tx, scope Scope, action, entity, entityID string, changes map[string]interface{}) error {
	var raw datatypes.JSON
	if len(changes) > 0 {
		b, err := json.Marshal(changes)
		if err != nil {
			return err
		}
		raw = datatypes.JSON(b)
	}
	return tx.AppendAudit(&models.AuditLog{
		OrganizationID: scope.TenantID,
		UserID:         scope.actor(),
		Action:         action,
		Entity:         entity,
		EntityID:       entityID,
		Changes:        raw,
		CreatedAt:      c.now(),
	})
}

func optionalString(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func strPtr(s string) *string { return &s }
