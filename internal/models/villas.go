package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// StringList is how amenities and images reach the rest of the code, no matter
// whether the row was written as a JSON string (SQLite) or a native array (Postgres).
type StringList []string

// Scan allows StringList to be read from either backing store
func (s *StringList) Scan(src interface{}) error {
	var dataStr string

	switch v := src.(type) {
	case []byte:
		dataStr = string(v)
	case string:
		dataStr = v
	case nil:
		*s = StringList{}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into StringList", src)
	}

	dataStr = strings.TrimSpace(dataStr)
	if dataStr == "" || dataStr == "null" {
		*s = StringList{}
		return nil
	}

	// JSON array, the format we write
	if strings.HasPrefix(dataStr, "[") {
		var out []string
		if err := json.Unmarshal([]byte(dataStr), &out); err != nil {
			return fmt.Errorf("failed to parse string list from: %q: %v", dataStr, err)
		}
		*s = out
		return nil
	}

	// Postgres array literal
	if strings.HasPrefix(dataStr, "{") && strings.HasSuffix(dataStr, "}") {
		*s = parsePgArray(dataStr[1 : len(dataStr)-1])
		return nil
	}

	// A bare value written by an older client
	*s = StringList{dataStr}
	return nil
}

// parsePgArray splits the body of a one-dimensional Postgres text[] literal
func parsePgArray(body string) StringList {
	out := StringList{}
	if body == "" {
		return out
	}

	var cur strings.Builder
	inQuotes, escaped, quoted := false, false, false
	flush := func() {
		item := cur.String()
		if !quoted {
			item = strings.TrimSpace(item)
		}
		out = append(out, item)
		cur.Reset()
		quoted = false
	}

	for _, r := range body {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == '"':
			inQuotes = !inQuotes
			quoted = true
		case r == ',' && !inQuotes:
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return out
}

// Value allows StringList to be written as a JSON array
func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(s))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// GormDBDataType keeps a single text column on every dialect so both stores decode the same way.
func (StringList) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	return "text"
}

func (s StringList) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(s))
}

type Villa struct {
	ID      uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"id"`
	OwnerID uuid.UUID `gorm:"type:varchar(36);not null;index" json:"ownerId"`
	Owner   *User     `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`

	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`
	Location    string `gorm:"not null;index" json:"location"`
	LocationKey string `gorm:"not null;default:'';index" json:"-"`
	Address     string `json:"address"`

	MaxGuests int `gorm:"not null" json:"maxGuests"`
	Bedrooms  int `gorm:"not null" json:"bedrooms"`
	Bathrooms int `gorm:"not null" json:"bathrooms"`

	Amenities StringList `json:"amenities"`
	Images    StringList `json:"images"`

	// PRICING
	PricePerNight      float64  `gorm:"type:decimal(10,2);not null" json:"pricePerNight"`
	WeekdayPrice       *float64 `gorm:"type:decimal(10,2)" json:"weekdayPrice"`
	FridayPrice        *float64 `gorm:"type:decimal(10,2)" json:"fridayPrice"`
	SaturdayPrice      *float64 `gorm:"type:decimal(10,2)" json:"saturdayPrice"`
	SundayPrice        *float64 `gorm:"type:decimal(10,2)" json:"sundayPrice"`
	AdminWeekdayPrice  *float64 `gorm:"type:decimal(10,2)" json:"adminWeekdayPrice"`
	AdminSaturdayPrice *float64 `gorm:"type:decimal(10,2)" json:"adminSaturdayPrice"`
	AdminSundayPrice   *float64 `gorm:"type:decimal(10,2)" json:"adminSundayPrice"`

	// CONTACT & LOGISTICS
	OwnerPhone      string `json:"ownerPhone,omitempty"`
	OwnerEmail      string `json:"ownerEmail,omitempty"`
	CheckInTime     string `json:"checkInTime,omitempty"`
	CheckOutTime    string `json:"checkOutTime,omitempty"`
	GoogleDriveLink string `json:"googleDriveLink,omitempty"`

	// STATUS
	IsApproved bool `gorm:"not null;index" json:"isApproved"`
	IsActive   bool `gorm:"not null;index" json:"isActive"`

	Bookings         []Booking         `gorm:"foreignKey:VillaID;constraint:OnDelete:CASCADE" json:"bookings,omitempty"`
	UnavailableDates []UnavailableDate `gorm:"foreignKey:VillaID;constraint:OnDelete:CASCADE" json:"unavailableDates,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (v *Villa) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	v.LocationKey = FoldLocation(v.Location)
	return nil
}

// FoldLocation applies full Unicode case folding. Location search compares folded query
// text against the folded column, so both sides fold identically on every database.
func FoldLocation(s string) string {
	return cases.Fold().String(s)
}

type UnavailableDate struct {
	ID        uuid.UUID      `gorm:"type:varchar(36);primaryKey" json:"id"`
	VillaID   uuid.UUID      `gorm:"type:varchar(36);not null;index" json:"villaId"`
	Date      datatypes.Date `gorm:"not null;index" json:"date"`
	Reason    string         `json:"reason,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

func (u *UnavailableDate) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Day returns the calendar day of the block at UTC midnight.
func (u UnavailableDate) Day() time.Time {
	return DateOnly(time.Time(u.Date))
}

// DateOnly truncates t to its calendar day at UTC midnight.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
