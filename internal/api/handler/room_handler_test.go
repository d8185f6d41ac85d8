package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/Sirpyerre/hotel-booking/internal/core/domain"
	"github.com/Sirpyerre/hotel-booking/internal/core/ports"
)

func TestRoomHandler_List_Filters(t *testing.T) {
	stub := &stubRoomService{
		listFn: func(ctx context.Context, f ports.RoomFilter) ([]*domain.Room, error) {
			if f.Type != "suite" || f.MinGuests != 3 || f.Available == nil || !*f.Available {
				t.Fatalf("unexpected filter: %+v", f)
			}
			return []*domain.Room{{ID: "r-1", Name: "Suite", Amenities: []string{"WiFi"}}}, nil
		},
	}
	h := NewRoomHandler(stub)

	c, rec := newRequest(http.MethodGet, "/api/rooms?type=suite&available=true&guests=3", "", nil)
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var rooms []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &rooms); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(rooms) != 1 || rooms[0]["id"] != "r-1" {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestRoomHandler_List_BadQuery(t *testing.T) {
	h := NewRoomHandler(&stubRoomService{})

	c, _ := newRequest(http.MethodGet, "/api/rooms?available=maybe", "", nil)
	assertValidation(t, h.List(c))

	c, _ = newRequest(http.MethodGet, "/api/rooms?guests=lots", "", nil)
	assertValidation(t, h.List(c))
}

func TestRoomHandler_List_AvailableFilter(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  *bool
	}{
		{name: "absent", query: "", want: nil},
		{name: "false", query: "?available=false", want: boolPtr(false)},
		{name: "true", query: "?available=1", want: boolPtr(true)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubRoomService{
				listFn: func(ctx context.Context, f ports.RoomFilter) ([]*domain.Room, error) {
					switch {
					case tt.want == nil && f.Available != nil:
						t.Fatalf("expected no availability filter, got %v", *f.Available)
					case tt.want != nil && (f.Available == nil || *f.Available != *tt.want):
						t.Fatalf("expected available=%v, got %+v", *tt.want, f.Available)
					}
					return []*domain.Room{}, nil
				},
			}
			c, _ := newRequest(http.MethodGet, "/api/rooms"+tt.query, "", nil)
			if err := NewRoomHandler(stub).List(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
		})
	}
}

func TestRoomHandler_Create_PriceAboveColumnLimit(t *testing.T) {
	stub := &stubRoomService{
		createFn: func(ctx context.Context, actor domain.Principal, room *domain.Room) (*domain.Room, error) {
			mustNotCall(t)
			return nil, nil
		},
	}
	c, _ := newRequest(http.MethodPost, "/api/rooms",
		`{"name":"Deluxe","type":"double","price":100000000,"capacity":2}`, &admin)
	assertValidation(t, NewRoomHandler(stub).Create(c))
}

func boolPtr(b bool) *bool { return &b }

func TestRoomHandler_Create_DefaultsAvailable(t *testing.T) {
	stub := &stubRoomService{
		createFn: func(ctx context.Context, actor domain.Principal, room *domain.Room) (*domain.Room, error) {
			if actor != admin {
				t.Fatalf("unexpected actor %+v", actor)
			}
			if !room.Available || room.Name != "Deluxe" || room.Price != 150 {
				t.Fatalf("unexpected room: %+v", room)
			}
			room.ID = "r-1"
			return room, nil
		},
	}
	h := NewRoomHandler(stub)

	c, rec := newRequest(http.MethodPost, "/api/rooms",
		`{"name":"Deluxe","type":"double","price":150,"capacity":2}`, &admin)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestRoomHandler_Create_Validation(t *testing.T) {
	stub := &stubRoomService{
		createFn: func(ctx context.Context, actor domain.Principal, room *domain.Room) (*domain.Room, error) {
			mustNotCall(t)
			return nil, nil
		},
	}
	h := NewRoomHandler(stub)

	c, _ := newRequest(http.MethodPost, "/api/rooms", `{"name":"Deluxe","type":"double","price":0,"capacity":2}`, &admin)
	assertValidation(t, h.Create(c))
}

func TestRoomHandler_Update_PassesOnlySuppliedFields(t *testing.T) {
	stub := &stubRoomService{
		updateFn: func(ctx context.Context, actor domain.Principal, id string, p domain.RoomPatch) (*domain.Room, error) {
			if id != "r-1" {
				t.Fatalf("unexpected id %s", id)
			}
			if p.Price == nil || *p.Price != 99 || p.Name != nil || p.Amenities != nil {
				t.Fatalf("unexpected patch: %+v", p)
			}
			return &domain.Room{ID: id, Price: *p.Price}, nil
		},
	}
	h := NewRoomHandler(stub)

	c, rec := newRequest(http.MethodPut, "/api/rooms/r-1", `{"price":99}`, &admin)
	c.SetParamNames("id")
	c.SetParamValues("r-1")
	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRoomHandler_Delete_InUse(t *testing.T) {
	stub := &stubRoomService{
		deleteFn: func(ctx context.Context, actor domain.Principal, id string) error {
			return domain.ErrRoomInUse
		},
	}
	h := NewRoomHandler(stub)

	c, _ := newRequest(http.MethodDelete, "/api/rooms/r-1", "", &admin)
	c.SetParamNames("id")
	c.SetParamValues("r-1")
	if err := h.Delete(c); err != domain.ErrRoomInUse {
		t.Fatalf("expected ErrRoomInUse, got %v", err)
	}
}

func TestRoomHandler_Mutations_RequireAuth(t *testing.T) {
	h := NewRoomHandler(&stubRoomService{})

	c, _ := newRequest(http.MethodPost, "/api/rooms", `{}`, nil)
	assertHTTPError(t, h.Create(c), http.StatusUnauthorized)

	c, _ = newRequest(http.MethodDelete, "/api/rooms/r-1", "", nil)
	assertHTTPError(t, h.Delete(c), http.StatusUnauthorized)
}
