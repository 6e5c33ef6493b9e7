package memstore

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"hotel-pms/models"
	"hotel-pms/repository"
)

type tx struct {
	st  *state
	now func() time.Time
}

var _ repository.Tx = (*tx)(nil)

func stamp(created, updated *time.Time, now time.Time) {
	if created != nil && created.IsZero() {
		*created = now
	}
	if updated != nil {
		*updated = now
	}
}

// ---------------- rooms ----------------

// numberTaken mirrors the unique index on live room numbers.
func (t *tx) numberTaken(room *models.Room) bool {
	return len(t.st.rooms.filter(func(r models.Room) bool {
		return r.OrganizationID == room.OrganizationID && !r.DeletedAt.Valid &&
			r.RoomNumber == room.RoomNumber && r.ID != room.ID
	})) > 0
}

func (t *tx) CreateRoom(room *models.Room) error {
	if t.numberTaken(room) {
		return repository.ErrDuplicate
	}
	room.EnsureID()
	stamp(&room.CreatedAt, &room.UpdatedAt, t.now())
	t.st.rooms.insert(room.ID, *room)
	return nil
}

func (t *tx) liveRoom(tenantID, id string) (models.Room, bool) {
	r, ok := t.st.rooms.get(id)
	if !ok || r.OrganizationID != tenantID || r.DeletedAt.Valid {
		return models.Room{}, false
	}
	return r, true
}

func (t *tx) GetRoom(tenantID, id string, _ bool) (*models.Room, error) {
	r, ok := t.liveRoom(tenantID, id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &r, nil
}

func (t *tx) FindRoomByNumber(tenantID, number string) (*models.Room, error) {
	rooms := t.st.rooms.filter(func(r models.Room) bool {
		return r.OrganizationID == tenantID && !r.DeletedAt.Valid && r.RoomNumber == number
	})
	if len(rooms) == 0 {
		return nil, repository.ErrNotFound
	}
	return &rooms[0], nil
}

func (t *tx) ListRooms(tenantID string, f repository.RoomFilter) ([]models.Room, error) {
	rooms := t.st.rooms.filter(func(r models.Room) bool {
		return r.OrganizationID == tenantID && !r.DeletedAt.Valid && (f.Status == "" || r.Status == f.Status)
	})
	sort.SliceStable(rooms, func(i, j int) bool { return rooms[i].RoomNumber < rooms[j].RoomNumber })
	return rooms, nil
}

func (t *tx) SaveRoom(room *models.Room) error {
	if _, ok := t.liveRoom(room.OrganizationID, room.ID); !ok {
		return repository.ErrNotFound
	}
	if t.numberTaken(room) {
		return repository.ErrDuplicate
	}
	stamp(nil, &room.UpdatedAt, t.now())
	t.st.rooms.insert(room.ID, *room)
	return nil
}

func (t *tx) DeleteRoom(tenantID, id string) error {
	r, ok := t.liveRoom(tenantID, id)
	if !ok {
		return repository.ErrNotFound
	}
	r.DeletedAt = gorm.DeletedAt{Time: t.now(), Valid: true}
	t.st.rooms.insert(id, r)
	return nil
}

// ---------------- reservations ----------------

func (t *tx) CreateReservation(r *models.Reservation) error {
	r.EnsureID()
	stamp(&r.CreatedAt, &r.UpdatedAt, t.now())
	t.st.reservations.insert(r.ID, *r)
	return nil
}

func (t *tx) GetReservation(tenantID, id string, _ bool) (*models.Reservation, error) {
	r, ok := t.st.reservations.get(id)
	if !ok || r.OrganizationID != tenantID {
		return nil, repository.ErrNotFound
	}
	return &r, nil
}

func (t *tx) ListReservations(tenantID string, f repository.ReservationFilter) ([]models.Reservation, error) {
	out := t.st.reservations.filter(func(r models.Reservation) bool {
		return r.OrganizationID == tenantID &&
			(f.Status == "" || r.Status == f.Status) &&
			(f.RoomID == "" || r.RoomID == f.RoomID)
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].CheckInDate.After(out[j].CheckInDate) })
	return out, nil
}

func (t *tx) SaveReservation(r *models.Reservation) error {
	cur, ok := t.st.reservations.get(r.ID)
	if !ok || cur.OrganizationID != r.OrganizationID {
		return repository.ErrNotFound
	}
	cur.Status = r.Status
	cur.AmountPaid = r.AmountPaid
	cur.OutstandingBalance = r.OutstandingBalance
	cur.SpecialRequests = r.SpecialRequests
	cur.Notes = r.Notes
	stamp(nil, &cur.UpdatedAt, t.now())
	r.UpdatedAt = cur.UpdatedAt
	t.st.reservations.insert(cur.ID, cur)
	return nil
}

// ---------------- guests ----------------

func (t *tx) CreateGuest(g *models.Guest) error {
	g.EnsureID()
	stamp(&g.CreatedAt, &g.UpdatedAt, t.now())
	t.st.guests.insert(g.ID, *g)
	return nil
}

func (t *tx) GetGuest(tenantID, id string, _ bool) (*models.Guest, error) {
	g, ok := t.st.guests.get(id)
	if !ok || g.OrganizationID != tenantID {
		return nil, repository.ErrNotFound
	}
	return &g, nil
}

func (t *tx) ListGuests(tenantID string, f repository.GuestFilter) ([]models.Guest, error) {
	out := t.st.guests.filter(func(g models.Guest) bool {
		return g.OrganizationID == tenantID &&
			(!f.InHouseOnly || g.InHouse()) &&
			(f.RoomID == "" || g.RoomID == f.RoomID)
	})
	return out, nil
}

func (t *tx) SaveGuest(g *models.Guest) error {
	cur, ok := t.st.guests.get(g.ID)
	if !ok || cur.OrganizationID != g.OrganizationID {
		return repository.ErrNotFound
	}
	cur.IsCheckedIn = g.IsCheckedIn
	cur.IsCheckedOut = g.IsCheckedOut
	cur.CheckedInAt = g.CheckedInAt
	cur.CheckedOutAt = g.CheckedOutAt
	cur.NumGuests = g.NumGuests
	stamp(nil, &cur.UpdatedAt, t.now())
	t.st.guests.insert(cur.ID, cur)
	return nil
}

// ---------------- ledger ----------------

func (t *tx) AppendTransaction(txn *models.Transaction) error {
	txn.EnsureID()
	for _, existing := range t.st.transactions.rows {
		if existing.ReferenceID == txn.ReferenceID {
			return fmt.Errorf("%w: reference %s", repository.ErrDuplicate, txn.ReferenceID)
		}
	}
	stamp(&txn.CreatedAt, nil, t.now())
	t.st.transactions.insert(txn.ID, *txn)
	return nil
}

func (t *tx) ListTransactions(tenantID string, f repository.TransactionFilter) ([]models.Transaction, error) {
	return t.st.transactions.filter(func(x models.Transaction) bool {
		return x.OrganizationID == tenantID &&
			(f.GuestID == "" || (x.GuestID != nil && *x.GuestID == f.GuestID)) &&
			(f.ReservationID == "" || (x.ReservationID != nil && *x.ReservationID == f.ReservationID))
	}), nil
}

func (t *tx) CreateTabItem(item *models.GuestTabItem) error {
	item.EnsureID()
	stamp(&item.CreatedAt, nil, t.now())
	t.st.tabItems.insert(item.ID, *item)
	return nil
}

func (t *tx) ListTabItems(tenantID, guestID string, unpaidOnly, _ bool) ([]models.GuestTabItem, error) {
	return t.st.tabItems.filter(func(it models.GuestTabItem) bool {
		return it.OrganizationID == tenantID && it.GuestID == guestID && (!unpaidOnly || !it.IsPaid)
	}), nil
}

func (t *tx) MarkTabItemsPaid(tenantID string, ids []string, paidAt time.Time) error {
	for _, id := range ids {
		it, ok := t.st.tabItems.get(id)
		if !ok || it.OrganizationID != tenantID {
			return repository.ErrNotFound
		}
		if it.IsPaid {
			return fmt.Errorf("%w: tab item %s already paid", repository.ErrLockConflict, id)
		}
		at := paidAt
		it.IsPaid = true
		it.PaidAt = &at
		t.st.tabItems.insert(id, it)
	}
	return nil
}

// ---------------- catalog ----------------

func (t *tx) CreateService(s *models.Service) error {
	s.EnsureID()
	stamp(&s.CreatedAt, &s.UpdatedAt, t.now())
	t.st.services.insert(s.ID, *s)
	return nil
}

func (t *tx) GetService(tenantID, id string) (*models.Service, error) {
	s, ok := t.st.services.get(id)
	if !ok || s.OrganizationID != tenantID {
		return nil, repository.ErrNotFound
	}
	return &s, nil
}

func (t *tx) ListServices(tenantID string, activeOnly bool) ([]models.Service, error) {
	out := t.st.services.filter(func(s models.Service) bool {
		return s.OrganizationID == tenantID && (!activeOnly || s.IsActive)
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (t *tx) SaveService(s *models.Service) error {
	if _, err := t.GetService(s.OrganizationID, s.ID); err != nil {
		return err
	}
	stamp(nil, &s.UpdatedAt, t.now())
	t.st.services.insert(s.ID, *s)
	return nil
}

// ---------------- orders ----------------

func (t *tx) CreateOrder(o *models.Order) error {
	o.EnsureID()
	stamp(&o.CreatedAt, &o.UpdatedAt, t.now())
	t.st.orders.insert(o.ID, *o)
	return nil
}

func (t *tx) GetOrder(tenantID, id string, _ bool) (*models.Order, error) {
	o, ok := t.st.orders.get(id)
	if !ok || o.OrganizationID != tenantID {
		return nil, repository.ErrNotFound
	}
	return &o, nil
}

func (t *tx) ListOrders(tenantID string, f repository.OrderFilter) ([]models.Order, error) {
	return t.st.orders.filter(func(o models.Order) bool {
		return o.OrganizationID == tenantID &&
			(f.Status == "" || o.Status == f.Status) &&
			(f.GuestID == "" || (o.GuestID != nil && *o.GuestID == f.GuestID))
	}), nil
}

func (t *tx) SaveOrder(o *models.Order) error {
	cur, err := t.GetOrder(o.OrganizationID, o.ID, false)
	if err != nil {
		return err
	}
	cur.Status = o.Status
	cur.Notes = o.Notes
	stamp(nil, &cur.UpdatedAt, t.now())
	t.st.orders.insert(cur.ID, *cur)
	return nil
}

// ---------------- accounts ----------------

func (t *tx) CountOrganizations() (int64, error) {
	return int64(len(t.st.orgs.rows)), nil
}

func (t *tx) CreateOrganization(org *models.Organization) error {
	org.EnsureID()
	stamp(&org.CreatedAt, &org.UpdatedAt, t.now())
	t.st.orgs.insert(org.ID, *org)
	return nil
}

func (t *tx) GetOrganization(id string) (*models.Organization, error) {
	org, ok := t.st.orgs.get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &org, nil
}

func (t *tx) CreateUser(u *models.User) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if _, err := t.FindUserByEmail(u.Email); err == nil {
		return fmt.Errorf("%w: email %s", repository.ErrDuplicate, u.Email)
	}
	u.EnsureID()
	stamp(&u.CreatedAt, &u.UpdatedAt, t.now())
	t.st.users.insert(u.ID, *u)
	return nil
}

func (t *tx) FindUserByEmail(email string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	users := t.st.users.filter(func(u models.User) bool { return u.Email == email && !u.DeletedAt.Valid })
	if len(users) == 0 {
		return nil, repository.ErrNotFound
	}
	return &users[0], nil
}

// ---------------- audit ----------------

func (t *tx) AppendAudit(entry *models.AuditLog) error {
	entry.EnsureID()
	stamp(&entry.CreatedAt, nil, t.now())
	t.st.audit.insert(entry.ID, *entry)
	return nil
}

func (t *tx) ListAudit(tenantID string, limit int) ([]models.AuditLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	all := t.st.audit.filter(func(a models.AuditLog) bool { return a.OrganizationID == tenantID })
	out := make([]models.AuditLog, 0, limit)
	for i := len(all) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, all[i])
	}
	return out, nil
}
