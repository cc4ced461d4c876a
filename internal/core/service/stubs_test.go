package service

import (
	"context"
	"sync"
	"time"

	"github.com/pokerface/networking-api/internal/core/domain"
	"github.com/pokerface/networking-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories. They uphold the same atomicity contracts as
// the Mongo implementations (single mutex per stub) so the concurrency
// tests exercise real races at the service layer.
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	mu    sync.Mutex
	byID  map[string]*domain.User
	nextN int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.Email == u.Email {
			return nil, domain.ErrUserExists
		}
	}
	if u.ID == "" {
		r.nextN++
		u.ID = "user-" + string(rune('a'+r.nextN))
	}
	clone := *u
	r.byID[u.ID] = &clone
	return u, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok || u.DeletedAt != nil {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Email == email && u.DeletedAt == nil {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) seed(id, displayName string) *domain.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := &domain.User{
		ID:          id,
		DisplayName: displayName,
		Email:       id + "@example.com",
		Role:        domain.RoleMember,
		CreatedAt:   time.Now().UTC(),
	}
	r.byID[id] = u
	return u
}

type stubCardRepo struct {
	mu   sync.Mutex
	byID map[string]*domain.Card
}

func newStubCardRepo() *stubCardRepo {
	return &stubCardRepo{byID: make(map[string]*domain.Card)}
}

func (r *stubCardRepo) Create(_ context.Context, c *domain.Card) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *c
	r.byID[c.ID] = &clone
	return nil
}

func (r *stubCardRepo) FindByID(_ context.Context, id string) (*domain.Card, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrCardNotFound
	}
	clone := *c
	clone.RevealedTo = append([]string(nil), c.RevealedTo...)
	return &clone, nil
}

func (r *stubCardRepo) ListByOwner(_ context.Context, ownerID string) ([]*domain.Card, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var cards []*domain.Card
	for _, c := range r.byID {
		if c.OwnerID == ownerID {
			clone := *c
			clone.RevealedTo = append([]string(nil), c.RevealedTo...)
			cards = append(cards, &clone)
		}
	}
	return cards, nil
}

func (r *stubCardRepo) AddRevealedTo(_ context.Context, cardID, viewerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[cardID]
	if !ok {
		return domain.ErrCardNotFound
	}
	for _, id := range c.RevealedTo {
		if id == viewerID {
			return nil
		}
	}
	c.RevealedTo = append(c.RevealedTo, viewerID)
	return nil
}

func (r *stubCardRepo) ClearRevealedTo(_ context.Context, cardID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[cardID]
	if !ok {
		return domain.ErrCardNotFound
	}
	c.RevealedTo = []string{}
	return nil
}

func (r *stubCardRepo) HasRevealedProject(_ context.Context, ownerID, viewerID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.byID {
		if c.OwnerID != ownerID || c.Kind != domain.KindProject {
			continue
		}
		for _, id := range c.RevealedTo {
			if id == viewerID {
				return true, nil
			}
		}
	}
	return false, nil
}

func (r *stubCardRepo) seed(id, ownerID string, kind domain.CardKind, name string) *domain.Card {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := &domain.Card{
		ID:         id,
		OwnerID:    ownerID,
		Kind:       kind,
		Name:       name,
		RevealedTo: []string{},
		CreatedAt:  time.Now().UTC(),
	}
	r.byID[id] = c
	return c
}

type stubRequestRepo struct {
	mu   sync.Mutex
	byID map[string]*domain.RevealRequest
}

func newStubRequestRepo() *stubRequestRepo {
	return &stubRequestRepo{byID: make(map[string]*domain.RevealRequest)}
}

// Create enforces the one-pending-per-pair invariant under the lock, like
// the partial unique index does in Mongo.
func (r *stubRequestRepo) Create(_ context.Context, req *domain.RevealRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.CardID == req.CardID &&
			existing.RequesterID == req.RequesterID &&
			existing.Status == domain.RequestPending {
			return domain.ErrDuplicateRequest
		}
	}
	clone := *req
	r.byID[req.ID] = &clone
	return nil
}

func (r *stubRequestRepo) FindByID(_ context.Context, id string) (*domain.RevealRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrRequestNotFound
	}
	clone := *req
	return &clone, nil
}

func (r *stubRequestRepo) FindPending(_ context.Context, cardID, requesterID string) (*domain.RevealRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, req := range r.byID {
		if req.CardID == cardID && req.RequesterID == requesterID && req.Status == domain.RequestPending {
			clone := *req
			return &clone, nil
		}
	}
	return nil, domain.ErrRequestNotFound
}

func (r *stubRequestRepo) ListPendingByRequester(_ context.Context, requesterID string) ([]*domain.RevealRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var reqs []*domain.RevealRequest
	for _, req := range r.byID {
		if req.RequesterID == requesterID && req.Status == domain.RequestPending {
			clone := *req
			reqs = append(reqs, &clone)
		}
	}
	return reqs, nil
}

func (r *stubRequestRepo) Resolve(_ context.Context, id string, status domain.RequestStatus, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.byID[id]
	if !ok {
		return domain.ErrRequestNotFound
	}
	if req.Status != domain.RequestPending {
		return domain.ErrRequestNotPending
	}
	req.Status = status
	req.ResolvedAt = &at
	return nil
}

func (r *stubRequestRepo) ExpireAllForCard(_ context.Context, cardID string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, req := range r.byID {
		if req.CardID == cardID && req.Status == domain.RequestPending {
			req.Status = domain.RequestExpired
			req.ResolvedAt = &at
		}
	}
	return nil
}

func (r *stubRequestRepo) pendingCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, req := range r.byID {
		if req.Status == domain.RequestPending {
			n++
		}
	}
	return n
}

type stubMatchRepo struct {
	mu        sync.Mutex
	announced map[string]bool
}

func newStubMatchRepo() *stubMatchRepo {
	return &stubMatchRepo{announced: make(map[string]bool)}
}

func (r *stubMatchRepo) MarkAnnounced(_ context.Context, userA, userB string, _ time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, b := domain.PairKey(userA, userB)
	key := a + "|" + b
	if r.announced[key] {
		return false, nil
	}
	r.announced[key] = true
	return true, nil
}

type stubTableRepo struct {
	mu   sync.Mutex
	byID map[string]*domain.Table
}

func newStubTableRepo() *stubTableRepo {
	return &stubTableRepo{byID: make(map[string]*domain.Table)}
}

func (r *stubTableRepo) Create(_ context.Context, t *domain.Table) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *t
	clone.Members = append([]string(nil), t.Members...)
	r.byID[t.ID] = &clone
	return nil
}

func (r *stubTableRepo) FindByID(_ context.Context, id string) (*domain.Table, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrTableNotFound
	}
	clone := *t
	clone.Members = append([]string(nil), t.Members...)
	return &clone, nil
}

// AddMember performs the capacity check and the append under one lock,
// mirroring the conditional update in the Mongo repository. At most one of
// several concurrent callers for the same user observes inserted == true.
func (r *stubTableRepo) AddMember(_ context.Context, tableID, userID string) (*domain.Table, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.byID[tableID]
	if !ok {
		return nil, false, domain.ErrTableNotFound
	}
	if t.IsClosed() {
		return nil, false, domain.ErrTableClosed
	}
	if t.HasMember(userID) {
		clone := *t
		clone.Members = append([]string(nil), t.Members...)
		return &clone, false, nil
	}
	if t.IsFull() {
		return nil, false, domain.ErrTableFull
	}
	t.Members = append(t.Members, userID)
	clone := *t
	clone.Members = append([]string(nil), t.Members...)
	return &clone, true, nil
}

func (r *stubTableRepo) RemoveMember(_ context.Context, tableID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.byID[tableID]
	if !ok {
		return domain.ErrTableNotFound
	}
	for i, id := range t.Members {
		if id == userID {
			t.Members = append(t.Members[:i], t.Members[i+1:]...)
			break
		}
	}
	return nil
}

func (r *stubTableRepo) Close(_ context.Context, tableID string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.byID[tableID]
	if !ok {
		return domain.ErrTableNotFound
	}
	if t.ClosedAt == nil {
		t.ClosedAt = &at
	}
	return nil
}

func (r *stubTableRepo) seed(id string, capacity int, organizerID string) *domain.Table {
	r.mu.Lock()
	defer r.mu.Unlock()
	t := &domain.Table{
		ID:          id,
		Name:        "Table " + id,
		Capacity:    capacity,
		DurationMin: 45,
		OrganizerID: organizerID,
		Members:     []string{},
		CreatedAt:   time.Now().UTC(),
	}
	r.byID[id] = t
	return t
}

type stubSessions struct {
	mu     sync.Mutex
	open   map[string]bool
	opened map[string]time.Duration
}

func newStubSessions() *stubSessions {
	return &stubSessions{open: make(map[string]bool), opened: make(map[string]time.Duration)}
}

func (s *stubSessions) Open(_ context.Context, tableID string, duration time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open[tableID] = true
	s.opened[tableID] = duration
	return nil
}

func (s *stubSessions) IsOpen(_ context.Context, tableID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open[tableID], nil
}

func (s *stubSessions) Close(_ context.Context, tableID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open[tableID] = false
	return nil
}

func (s *stubSessions) expire(tableID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open[tableID] = false
}

type stubNotificationRepo struct {
	mu    sync.Mutex
	items []*domain.Notification
	seq   int
}

func newStubNotificationRepo() *stubNotificationRepo {
	return &stubNotificationRepo{}
}

func (r *stubNotificationRepo) Insert(_ context.Context, n *domain.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	if n.ID == "" {
		n.ID = "n-" + padSeq(r.seq)
	}
	clone := *n
	r.items = append(r.items, &clone)
	return nil
}

func (r *stubNotificationRepo) ListByRecipient(_ context.Context, recipientID string) ([]*domain.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Notification
	for _, n := range r.items {
		if n.RecipientID == recipientID {
			clone := *n
			out = append(out, &clone)
		}
	}
	// created_at descending, ties broken by descending id
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			a, b := out[i], out[j]
			if b.CreatedAt.After(a.CreatedAt) || (b.CreatedAt.Equal(a.CreatedAt) && b.ID > a.ID) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

func (r *stubNotificationRepo) CountUnread(_ context.Context, recipientID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, item := range r.items {
		if item.RecipientID == recipientID && !item.Read {
			n++
		}
	}
	return n, nil
}

func (r *stubNotificationRepo) MarkRead(_ context.Context, id, recipientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.items {
		if n.ID == id && n.RecipientID == recipientID {
			n.Read = true
			return nil
		}
	}
	return domain.ErrNotificationNotFound
}

func (r *stubNotificationRepo) MarkAllRead(_ context.Context, recipientID string, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var updated int64
	for _, n := range r.items {
		if n.RecipientID == recipientID && !n.Read && !n.CreatedAt.After(cutoff) {
			n.Read = true
			updated++
		}
	}
	return updated, nil
}

func (r *stubNotificationRepo) Delete(_ context.Context, id, recipientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, n := range r.items {
		if n.ID == id && n.RecipientID == recipientID {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotificationNotFound
}

func padSeq(n int) string {
	// fixed-width so lexicographic id order matches insertion order
	digits := "0123456789"
	out := ""
	for i := 0; i < 6; i++ {
		out = string(digits[n%10]) + out
		n /= 10
	}
	return out
}

// recordingNotifier captures emitted notifications synchronously.
type recordingNotifier struct {
	mu    sync.Mutex
	items []ports.NotificationInput
}

func (n *recordingNotifier) Notify(in ports.NotificationInput) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.items = append(n.items, in)
}

func (n *recordingNotifier) byKind(kind domain.NotificationKind) []ports.NotificationInput {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []ports.NotificationInput
	for _, item := range n.items {
		if item.Kind == kind {
			out = append(out, item)
		}
	}
	return out
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.items)
}
