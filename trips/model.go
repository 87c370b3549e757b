package trips

import (
	"seaops/capacity"
	"seaops/pricing"
)

// TripEntry is one passenger group booked on a trip through one channel.
// Revenue, Commission and Profit are derived; handlers recompute them
// through RecomputeDerived after any headcount or attendant change.
type TripEntry struct {
	EntryID    string `json:"entryid" bson:"entryid"`
	Adult      int    `json:"adult" bson:"adult"`
	Child      int    `json:"child" bson:"child"`
	Infant     int    `json:"infant" bson:"infant"`
	Attendant  string `json:"attendant" bson:"attendant"` // sales channel name, empty = unassigned
	Revenue    int64  `json:"revenue" bson:"revenue"`
	Commission int64  `json:"commission" bson:"commission"`
	Profit     int64  `json:"profit" bson:"profit"`
	JapaneseOK bool   `json:"japaneseOk" bson:"japaneseOk"`
}

// Trip is one scheduled sailing of one vessel on one day. Vessel, Date
// and Time form the addressing key the console uses.
type Trip struct {
	TripID       string        `json:"tripid" bson:"tripid"`
	Vessel       string        `json:"vessel" bson:"vessel"`
	Date         string        `json:"date" bson:"date"` // yyyy-MM-dd
	Time         string        `json:"time" bson:"time"` // HH:MM departure
	CapacityMode capacity.Mode `json:"capacityMode" bson:"capacityMode"`
	Entries      []TripEntry   `json:"entries" bson:"entries"`
	CreatedAt    int64         `json:"createdAt" bson:"createdAt"`
	UpdatedAt    int64         `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// RecomputeDerived returns the entry with revenue, commission and profit
// recalculated from the channel's effective prices on the trip date.
// Pure; callers invoke it explicitly after mutating headcounts or the
// attendant. A manual commission override is applied by editing the
// returned entry afterwards.
func RecomputeDerived(e TripEntry, ch pricing.SalesChannel, date string) TripEntry {
	price := pricing.ResolvePrice(ch, date)
	comm := pricing.CommissionFor(ch)

	e.Revenue = int64(e.Adult)*price.Adult + int64(e.Child)*price.Child + int64(e.Infant)*price.Infant
	e.Commission = int64(e.Adult)*comm.Adult + int64(e.Child)*comm.Child + int64(e.Infant)*comm.Infant
	e.Profit = e.Revenue - e.Commission
	return e
}

// ClearDerived zeroes the derived fields; used when the attendant is
// unassigned.
func ClearDerived(e TripEntry) TripEntry {
	e.Revenue, e.Commission, e.Profit = 0, 0, 0
	return e
}

// CalculatedCapacity sums the seat-equivalents of every entry.
func (t Trip) CalculatedCapacity() float64 {
	var used float64
	for _, e := range t.Entries {
		used += capacity.EntryCapacity(e.Adult, e.Child, e.Infant, t.CapacityMode, t.Vessel)
	}
	return used
}
