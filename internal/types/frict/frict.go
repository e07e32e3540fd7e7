package frict

import "time"

// Side identifies which half of a shared timeline item a writer owns.
// The mate-entry owner is the creator side; the linked counterpart account
// is the other. Each side only ever writes its own column set, which is what
// makes two-sided editing conflict-free without any merge machinery.
type Side int

const (
	CounterpartSide Side = 0
	CreatorSide     Side = 1
)

// ParseSide maps a wire-level creator flag to a Side.
func ParseSide(flag int) (Side, bool) {
	switch flag {
	case 0:
		return CounterpartSide, true
	case 1:
		return CreatorSide, true
	default:
		return 0, false
	}
}

// CreatorColumns is the value set owned by the mate-entry owner.
type CreatorColumns struct {
	Rating           *int       `json:"frict_rating" db:"frict_rating"`
	Notes            *string    `json:"notes" db:"notes"`
	Deleted          bool       `json:"deleted" db:"deleted"`
	CreationDatetime *time.Time `json:"creation_datetime" db:"creation_datetime"`
	DeleteDatetime   *time.Time `json:"delete_datetime" db:"delete_datetime"`
	LastUpdate       *time.Time `json:"last_update" db:"last_update"`
}

// CounterpartColumns is the value set owned by the linked counterpart.
type CounterpartColumns struct {
	Rating     *int       `json:"mate_rating" db:"mate_rating"`
	Notes      *string    `json:"mate_notes" db:"mate_notes"`
	Deleted    bool       `json:"mate_deleted" db:"mate_deleted"`
	LastUpdate *time.Time `json:"mate_last_update" db:"mate_last_update"`
}

// Frict is a dated shared-timeline item. Author records which side inserted
// the row; FromDate, Base, Lat and Lon are side-independent and may be
// rewritten by either side.
type Frict struct {
	FrictID     int64              `json:"frict_id" db:"frict_id"`
	MateID      int64              `json:"mate_id" db:"mate_id"`
	Author      Side               `json:"creator" db:"creator"`
	FromDate    string             `json:"frict_from_date" db:"frict_from_date"`
	Base        int                `json:"frict_base" db:"frict_base"`
	Lat         float64            `json:"lat" db:"lat"`
	Lon         float64            `json:"lon" db:"lon"`
	Creator     CreatorColumns     `json:"creator_side"`
	Counterpart CounterpartColumns `json:"counterpart_side"`
}

// Edit is one side's mutation of a frict. The store applies it to the
// owning side's column set only; the other side's columns are untouchable
// through this type.
type Edit struct {
	Side     Side
	FromDate string
	Base     int
	Rating   int
	Notes    string
	Lat      float64
	Lon      float64
}

type AddFrictRequest struct {
	MateID   int64   `json:"mate_id"`
	Base     int     `json:"frict_base"`
	FromDate string  `json:"frict_from_date"`
	Rating   int     `json:"frict_rating"`
	Notes    string  `json:"notes"`
	Creator  int     `json:"creator"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
}

type UpdateFrictRequest struct {
	MateID   int64   `json:"mate_id"`
	Base     int     `json:"frict_base"`
	FromDate string  `json:"frict_from_date"`
	Rating   int     `json:"frict_rating"`
	Notes    string  `json:"notes"`
	Creator  int     `json:"creator"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
}
