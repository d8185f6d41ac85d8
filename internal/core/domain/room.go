package domain

import (
	"encoding/json"
	"strings"
	"time"
)

// Catalog defaults applied when a room is created without the field.
const (
	DefaultRoomDescription = "Comfortable and spacious room"
	DefaultRoomSize        = 25
	DefaultRoomRating      = 4.5
)

var (
	DefaultAmenities = []string{"WiFi", "TV", "AC"}
	DefaultImages    = []string{"https://via.placeholder.com/400x300"}
)

// Room is a bookable catalog entry.
type Room struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Capacity    int       `json:"capacity"`
	Size        int       `json:"size"`
	Amenities   []string  `json:"amenities"`
	Images      []string  `json:"images"`
	Available   bool      `json:"available"`
	Rating      float64   `json:"rating"`
	Featured    bool      `json:"featured"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// RoomPatch is a partial room update. Nil fields are left untouched.
type RoomPatch struct {
	Name        *string
	Type        *string
	Description *string
	Price       *float64
	Capacity    *int
	Size        *int
	Amenities   *[]string
	Images      *[]string
	Available   *bool
	Rating      *float64
	Featured    *bool
}

// Empty reports whether the patch carries no field at all.
func (p RoomPatch) Empty() bool {
	return p.Name == nil && p.Type == nil && p.Description == nil && p.Price == nil &&
		p.Capacity == nil && p.Size == nil && p.Amenities == nil && p.Images == nil &&
		p.Available == nil && p.Rating == nil && p.Featured == nil
}

// Validate checks the invariants of the fields the patch sets.
func (p RoomPatch) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return NewValidationError("name cannot be empty")
	}
	if p.Type != nil && strings.TrimSpace(*p.Type) == "" {
		return NewValidationError("type cannot be empty")
	}
	if p.Price != nil && *p.Price <= 0 {
		return NewValidationError("price must be greater than 0")
	}
	if p.Capacity != nil && *p.Capacity <= 0 {
		return NewValidationError("capacity must be greater than 0")
	}
	if p.Size != nil && *p.Size < 0 {
		return NewValidationError("size cannot be negative")
	}
	return nil
}

// Apply copies the set fields of p onto r.
func (p RoomPatch) Apply(r *Room) {
	if p.Name != nil {
		r.Name = *p.Name
	}
	if p.Type != nil {
		r.Type = *p.Type
	}
	if p.Description != nil {
		r.Description = *p.Description
	}
	if p.Price != nil {
		r.Price = *p.Price
	}
	if p.Capacity != nil {
		r.Capacity = *p.Capacity
	}
	if p.Size != nil {
		r.Size = *p.Size
	}
	if p.Amenities != nil {
		r.Amenities = *p.Amenities
	}
	if p.Images != nil {
		r.Images = *p.Images
	}
	if p.Available != nil {
		r.Available = *p.Available
	}
	if p.Rating != nil {
		r.Rating = *p.Rating
	}
	if p.Featured != nil {
		r.Featured = *p.Featured
	}
}

// ApplyDefaults fills the optional catalog fields a new room was created without.
func (r *Room) ApplyDefaults() {
	if r.Description == "" {
		r.Description = DefaultRoomDescription
	}
	if r.Size == 0 {
		r.Size = DefaultRoomSize
	}
	if r.Rating == 0 {
		r.Rating = DefaultRoomRating
	}
	if len(r.Amenities) == 0 {
		r.Amenities = cloneList(DefaultAmenities)
	}
	if len(r.Images) == 0 {
		r.Images = cloneList(DefaultImages)
	}
}

// DecodeStringList reads a stored list column. It never fails: absent or
// unreadable values yield a copy of def. Values that were JSON-encoded twice
// are repaired by stripping the outer quotes and escapes before retrying.
func DecodeStringList(raw string, def []string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return cloneList(def)
	}

	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err == nil {
		if out == nil {
			return cloneList(def)
		}
		return out
	}

	repaired := strings.Trim(raw, `"`)
	repaired = strings.ReplaceAll(repaired, `\`, "")
	if err := json.Unmarshal([]byte(repaired), &out); err == nil && out != nil {
		return out
	}
	return cloneList(def)
}

// EncodeStringList is the inverse of DecodeStringList. A nil list encodes as "[]".
func EncodeStringList(list []string) string {
	if list == nil {
		list = []string{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func cloneList(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
