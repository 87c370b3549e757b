package reports

import (
	"fmt"
	"log"
	"net/http"
	"sort"
	"time"

	"seaops/db"
	"seaops/mq"
	"seaops/reservations"
	"seaops/timeclock"
	"seaops/trips"
	"seaops/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DailyReport is the business-closing snapshot for one operating day.
type DailyReport struct {
	Date              string             `json:"date" bson:"date"`
	Fleet             trips.FleetSummary `json:"fleet" bson:"fleet"`
	ReservationsTotal int                `json:"reservationsTotal" bson:"reservationsTotal"`
	ReservationsByStatus map[string]int  `json:"reservationsByStatus" bson:"reservationsByStatus"`
	StaffOnDuty       int                `json:"staffOnDuty" bson:"staffOnDuty"`
	WorkedMinutes     int                `json:"workedMinutes" bson:"workedMinutes"`
	GeneratedBy       string             `json:"generatedBy" bson:"generatedBy"`
	GeneratedAt       time.Time          `json:"generatedAt" bson:"generatedAt"`
}

// BuildDailyReport assembles the closing report for a date from the trip
// log, the reservation book and the day's punches.
func BuildDailyReport(r *http.Request, date string) (DailyReport, error) {
	report := DailyReport{
		Date:                 date,
		ReservationsByStatus: map[string]int{},
		GeneratedAt:          time.Now(),
	}

	fleet, err := trips.FleetSummaryForDate(r, date)
	if err != nil {
		return report, fmt.Errorf("fleet summary: %w", err)
	}
	report.Fleet = fleet

	ctx := r.Context()
	cursor, err := db.ReservationsCollection.Find(ctx, bson.M{"date": date})
	if err != nil {
		return report, fmt.Errorf("reservations: %w", err)
	}
	var dayReservations []reservations.Reservation
	if err := cursor.All(ctx, &dayReservations); err != nil {
		return report, fmt.Errorf("reservations: %w", err)
	}
	report.ReservationsTotal = len(dayReservations)
	for _, res := range dayReservations {
		report.ReservationsByStatus[res.Status]++
	}

	cursor, err = db.PunchesCollection.Find(ctx, bson.M{"date": date})
	if err != nil {
		return report, fmt.Errorf("punches: %w", err)
	}
	var punches []timeclock.Punch
	if err := cursor.All(ctx, &punches); err != nil {
		return report, fmt.Errorf("punches: %w", err)
	}
	onDuty := map[string]bool{}
	for _, p := range punches {
		onDuty[p.StaffID] = true
		report.WorkedMinutes += timeclock.Minutes(p)
	}
	report.StaffOnDuty = len(onDuty)

	return report, nil
}

// GenerateDailyReport builds and persists the closing report for the
// date in the path. Re-generating replaces the stored report.
func GenerateDailyReport(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	date := ps.ByName("date")
	if !utils.ValidDate(date) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid date, expected yyyy-MM-dd")
		return
	}

	report, err := BuildDailyReport(r, date)
	if err != nil {
		log.Printf("reports: build %s: %v", date, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to build report")
		return
	}
	report.GeneratedBy = utils.GetUserIDFromRequest(r)

	_, err = db.ReportsCollection.ReplaceOne(r.Context(),
		bson.M{"date": date}, report, options.Replace().SetUpsert(true))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save report")
		return
	}

	mq.Emit(r.Context(), mq.Event{Kind: "report.generated", Date: date, ActorID: report.GeneratedBy})
	utils.RespondWithJSON(w, http.StatusOK, report)
}

func GetDailyReport(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var report DailyReport
	err := db.ReportsCollection.FindOne(r.Context(), bson.M{"date": ps.ByName("date")}).Decode(&report)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "No report for that date")
		return
	} else if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch report")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, report)
}

// DownloadReportPDF renders the stored report as a one-page PDF.
func DownloadReportPDF(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	date := ps.ByName("date")
	var report DailyReport
	err := db.ReportsCollection.FindOne(r.Context(), bson.M{"date": date}).Decode(&report)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "No report for that date")
		return
	} else if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch report")
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, fmt.Sprintf("Daily Closing Report %s", report.Date))
	pdf.Ln(14)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Trips: %d   Passengers: %d adults / %d children / %d infants",
		report.Fleet.TripCount, report.Fleet.Adults, report.Fleet.Children, report.Fleet.Infants))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Revenue: %d   Commission: %d   Profit: %d",
		report.Fleet.Revenue, report.Fleet.Commission, report.Fleet.Profit))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Fleet utilization: %d%%", report.Fleet.UtilizationRate))
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, "Per vessel")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 11)
	names := make([]string, 0, len(report.Fleet.Vessels))
	for name := range report.Fleet.Vessels {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		vs := report.Fleet.Vessels[name]
		pdf.Cell(0, 6, fmt.Sprintf("%s: %d trips, %d pax, profit %d, %d%% utilized",
			name, vs.TripCount, vs.Adults+vs.Children+vs.Infants, vs.Profit, vs.UtilizationRate))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.Cell(0, 7, fmt.Sprintf("Reservations: %d (confirmed %d, pending %d, cancelled %d)",
		report.ReservationsTotal,
		report.ReservationsByStatus["confirmed"],
		report.ReservationsByStatus["pending"],
		report.ReservationsByStatus["cancelled"]))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Staff on duty: %d   Worked hours: %.1f",
		report.StaffOnDuty, float64(report.WorkedMinutes)/60))

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=closing-%s.pdf", date))
	if err := pdf.Output(w); err != nil {
		log.Printf("reports: pdf output: %v", err)
	}
}
