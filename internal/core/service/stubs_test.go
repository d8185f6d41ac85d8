package service

import (
	"context"
	"sort"
	"sync"

	"github.com/Sirpyerre/hotel-booking/internal/core/domain"
	"github.com/Sirpyerre/hotel-booking/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users     map[string]*domain.User
	withBooks map[string]bool
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User), withBooks: make(map[string]bool)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubUserRepo) UpdateProfile(_ context.Context, id string, p domain.ProfilePatch) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	if p.Avatar != nil {
		u.Avatar = *p.Avatar
	}
	if p.PasswordHash != nil {
		u.PasswordHash = *p.PasswordHash
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) SetActive(_ context.Context, id string, active bool) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.IsActive = active
	return cloneUser(u), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	if r.withBooks[id] {
		return domain.ErrUserHasBookings
	}
	delete(r.users, id)
	return nil
}

// ---------------------------------------------------------------------------
// Rooms
// ---------------------------------------------------------------------------

type stubRoomRepo struct {
	rooms map[string]*domain.Room
	inUse map[string]bool
}

func newStubRoomRepo() *stubRoomRepo {
	return &stubRoomRepo{rooms: make(map[string]*domain.Room), inUse: make(map[string]bool)}
}

func (r *stubRoomRepo) Create(_ context.Context, room *domain.Room) (*domain.Room, error) {
	clone := *room
	r.rooms[room.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubRoomRepo) FindByID(_ context.Context, id string) (*domain.Room, error) {
	room, ok := r.rooms[id]
	if !ok {
		return nil, domain.ErrRoomNotFound
	}
	out := *room
	return &out, nil
}

func (r *stubRoomRepo) List(_ context.Context, _ ports.RoomFilter) ([]*domain.Room, error) {
	out := make([]*domain.Room, 0, len(r.rooms))
	for _, room := range r.rooms {
		clone := *room
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubRoomRepo) Update(_ context.Context, id string, patch domain.RoomPatch) (*domain.Room, error) {
	room, ok := r.rooms[id]
	if !ok {
		return nil, domain.ErrRoomNotFound
	}
	patch.Apply(room)
	out := *room
	return &out, nil
}

func (r *stubRoomRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.rooms[id]; !ok {
		return domain.ErrRoomNotFound
	}
	if r.inUse[id] {
		return domain.ErrRoomInUse
	}
	delete(r.rooms, id)
	return nil
}

// ---------------------------------------------------------------------------
// Bookings: an in-memory repository that honours the transactional contract
// (build/mutate errors leave the stored state untouched).
// ---------------------------------------------------------------------------

type stubBookingRepo struct {
	mu       sync.Mutex
	rooms    map[string]*domain.Room
	bookings map[string]*domain.Booking
	creates  int
}

func newStubBookingRepo() *stubBookingRepo {
	return &stubBookingRepo{rooms: make(map[string]*domain.Room), bookings: make(map[string]*domain.Booking)}
}

func (r *stubBookingRepo) detail(b *domain.Booking) *domain.BookingDetail {
	d := &domain.BookingDetail{Booking: *b}
	if room, ok := r.rooms[b.RoomID]; ok {
		d.Room = domain.BookingRoom{Name: room.Name, Type: room.Type, Price: room.Price}
	}
	return d
}

func (r *stubBookingRepo) Create(_ context.Context, roomID string, build ports.BuildBookingFunc) (*domain.BookingDetail, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[roomID]
	if !ok {
		return nil, domain.ErrRoomNotFound
	}
	roomCopy := *room
	b, err := build(&roomCopy)
	if err != nil {
		return nil, err
	}
	for _, existing := range r.bookings {
		if existing.RoomID == roomID && existing.Status.Blocking() &&
			existing.CheckInDate.Before(b.CheckOutDate) && existing.CheckOutDate.After(b.CheckInDate) {
			return nil, domain.ErrBookingOverlap
		}
	}
	clone := *b
	r.bookings[b.ID] = &clone
	r.creates++
	return r.detail(&clone), nil
}

func (r *stubBookingRepo) FindByID(_ context.Context, id string) (*domain.BookingDetail, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	return r.detail(b), nil
}

func (r *stubBookingRepo) ListByUser(_ context.Context, userID string) ([]*domain.BookingDetail, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*domain.BookingDetail
	for _, b := range r.bookings {
		if b.UserID == userID {
			out = append(out, r.detail(b))
		}
	}
	return out, nil
}

func (r *stubBookingRepo) ListAll(_ context.Context) ([]*domain.BookingDetail, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*domain.BookingDetail, 0, len(r.bookings))
	for _, b := range r.bookings {
		out = append(out, r.detail(b))
	}
	return out, nil
}

func (r *stubBookingRepo) Mutate(_ context.Context, id string, fn ports.MutateBookingFunc) (*domain.BookingDetail, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	working := *b
	if err := fn(&working); err != nil {
		return nil, err
	}
	*b = working
	return r.detail(b), nil
}

// ---------------------------------------------------------------------------
// Audit trail and idempotency
// ---------------------------------------------------------------------------

type stubPublisher struct {
	events []domain.BookingEvent
}

func (p *stubPublisher) Publish(ev domain.BookingEvent) {
	p.events = append(p.events, ev)
}

type stubEventRepo struct {
	insertErr error
	inserted  []domain.BookingEvent
}

func (r *stubEventRepo) InsertEvent(_ context.Context, ev *domain.BookingEvent) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.inserted = append(r.inserted, *ev)
	return nil
}

func (r *stubEventRepo) ListByBooking(_ context.Context, bookingID string) ([]domain.BookingEvent, error) {
	var out []domain.BookingEvent
	for _, ev := range r.inserted {
		if ev.BookingID == bookingID {
			out = append(out, ev)
		}
	}
	return out, nil
}

type stubIdempotency struct {
	keys       map[string]string
	reserveErr error
	released   []string
}

func newStubIdempotency() *stubIdempotency {
	return &stubIdempotency{keys: make(map[string]string)}
}

func (s *stubIdempotency) Reserve(_ context.Context, scope, key string) (string, bool, error) {
	if s.reserveErr != nil {
		return "", false, s.reserveErr
	}
	k := scope + ":" + key
	if v, ok := s.keys[k]; ok {
		return v, false, nil
	}
	s.keys[k] = ""
	return "", true, nil
}

func (s *stubIdempotency) Complete(_ context.Context, scope, key, bookingID string) error {
	s.keys[scope+":"+key] = bookingID
	return nil
}

func (s *stubIdempotency) Release(_ context.Context, scope, key string) error {
	delete(s.keys, scope+":"+key)
	s.released = append(s.released, key)
	return nil
}
