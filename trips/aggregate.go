package trips

import (
	"math"

	"seaops/capacity"
)

// TripSummary rolls one trip's entries into totals plus capacity figures.
type TripSummary struct {
	Vessel             string  `json:"vessel"`
	Date               string  `json:"date"`
	Time               string  `json:"time"`
	Adults             int     `json:"adults"`
	Children           int     `json:"children"`
	Infants            int     `json:"infants"`
	Groups             int     `json:"groups"`
	Revenue            int64   `json:"revenue"`
	Commission         int64   `json:"commission"`
	Profit             int64   `json:"profit"`
	CalculatedCapacity float64 `json:"calculatedCapacity"`
	UtilizationRate    int     `json:"utilizationRate"`
	RemainingCapacity  float64 `json:"remainingCapacity"`
	OverCapacity       bool    `json:"overCapacity"`
}

// VesselSummary rolls all of one vessel's trips for a day.
type VesselSummary struct {
	Vessel          string  `json:"vessel"`
	TripCount       int     `json:"tripCount"`
	Adults          int     `json:"adults"`
	Children        int     `json:"children"`
	Infants         int     `json:"infants"`
	Groups          int     `json:"groups"`
	Revenue         int64   `json:"revenue"`
	Commission      int64   `json:"commission"`
	Profit          int64   `json:"profit"`
	UsedCapacity    float64 `json:"usedCapacity"`
	UtilizationRate int     `json:"utilizationRate"`
}

// FleetSummary rolls every vessel for a day.
type FleetSummary struct {
	Vessels         map[string]VesselSummary `json:"vessels"`
	TripCount       int                      `json:"tripCount"`
	Adults          int                      `json:"adults"`
	Children        int                      `json:"children"`
	Infants         int                      `json:"infants"`
	Groups          int                      `json:"groups"`
	Revenue         int64                    `json:"revenue"`
	Commission      int64                    `json:"commission"`
	Profit          int64                    `json:"profit"`
	UsedCapacity    float64                  `json:"usedCapacity"`
	UtilizationRate int                      `json:"utilizationRate"` // weighted by each vessel's possible capacity
}

// Summarize reduces one trip. Pure and order-independent; every field is
// a sum or a derived ratio of entry fields.
func Summarize(t Trip) TripSummary {
	s := TripSummary{Vessel: t.Vessel, Date: t.Date, Time: t.Time}
	for _, e := range t.Entries {
		s.Adults += e.Adult
		s.Children += e.Child
		s.Infants += e.Infant
		s.Revenue += e.Revenue
		s.Commission += e.Commission
		s.Profit += e.Profit
	}
	s.Groups = len(t.Entries)

	seats := capacity.SeatsOf(t.Vessel)
	s.CalculatedCapacity = t.CalculatedCapacity()
	s.UtilizationRate = capacity.UtilizationRate(s.CalculatedCapacity, seats)
	s.RemainingCapacity = capacity.Remaining(s.CalculatedCapacity, seats)
	s.OverCapacity = capacity.IsOverCapacity(s.CalculatedCapacity, seats)
	return s
}

// SummarizeVessel reduces all trips of one vessel for one day. The
// overall utilization divides used capacity by seats times trip count.
func SummarizeVessel(dayTrips []Trip, vessel string) VesselSummary {
	s := VesselSummary{Vessel: vessel}
	for _, t := range dayTrips {
		ts := Summarize(t)
		s.TripCount++
		s.Adults += ts.Adults
		s.Children += ts.Children
		s.Infants += ts.Infants
		s.Groups += ts.Groups
		s.Revenue += ts.Revenue
		s.Commission += ts.Commission
		s.Profit += ts.Profit
		s.UsedCapacity += ts.CalculatedCapacity
	}

	if possible := capacity.SeatsOf(vessel) * s.TripCount; possible > 0 {
		s.UtilizationRate = int(math.Round(s.UsedCapacity / float64(possible) * 100))
	}
	return s
}

// SummarizeFleet reduces every vessel's trips for one day. The fleet
// utilization is weighted by each vessel's maximum possible capacity:
// sum(used) / sum(seats * tripCount).
func SummarizeFleet(vesselTrips map[string][]Trip) FleetSummary {
	fs := FleetSummary{Vessels: make(map[string]VesselSummary)}

	var possible int
	for vessel, dayTrips := range vesselTrips {
		vs := SummarizeVessel(dayTrips, vessel)
		fs.Vessels[vessel] = vs

		fs.TripCount += vs.TripCount
		fs.Adults += vs.Adults
		fs.Children += vs.Children
		fs.Infants += vs.Infants
		fs.Groups += vs.Groups
		fs.Revenue += vs.Revenue
		fs.Commission += vs.Commission
		fs.Profit += vs.Profit
		fs.UsedCapacity += vs.UsedCapacity
		possible += capacity.SeatsOf(vessel) * vs.TripCount
	}

	if possible > 0 {
		fs.UtilizationRate = int(math.Round(fs.UsedCapacity / float64(possible) * 100))
	}
	return fs
}
