package timeclock

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"seaops/db"
	"seaops/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ClockIn handles POST /api/timeclock/in
func ClockIn(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		StaffID string `json:"staffid"`
		Date    string `json:"date"`
		In      string `json:"in"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if input.StaffID == "" || !utils.ValidDate(input.Date) || !ValidClock(input.In) {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing or invalid fields")
		return
	}

	// refuse a second open punch for the same person
	var open Punch
	err := db.PunchesCollection.FindOne(r.Context(), bson.M{
		"staffid": input.StaffID,
		"date":    input.Date,
		"out":     bson.M{"$in": []interface{}{"", nil}},
	}).Decode(&open)
	if err == nil {
		utils.RespondWithError(w, http.StatusConflict, "Already clocked in")
		return
	}
	if err != mongo.ErrNoDocuments {
		log.Printf("DB error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}

	p := Punch{
		PunchID:   utils.GenerateRandomDigitString(14),
		StaffID:   input.StaffID,
		Date:      input.Date,
		In:        input.In,
		CreatedAt: time.Now().Unix(),
	}
	if _, err := db.PunchesCollection.InsertOne(r.Context(), p); err != nil {
		log.Printf("DB error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save punch")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, p)
}

// ClockOut handles POST /api/timeclock/out
func ClockOut(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		StaffID string `json:"staffid"`
		Date    string `json:"date"`
		Out     string `json:"out"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if input.StaffID == "" || !utils.ValidDate(input.Date) || !ValidClock(input.Out) {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing or invalid fields")
		return
	}

	var p Punch
	err := db.PunchesCollection.FindOneAndUpdate(r.Context(), bson.M{
		"staffid": input.StaffID,
		"date":    input.Date,
		"out":     bson.M{"$in": []interface{}{"", nil}},
	}, bson.M{"$set": bson.M{"out": input.Out}}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "No open punch")
		return
	}
	if err != nil {
		log.Printf("DB error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}

	p.Out = input.Out
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"punch": p, "minutes": Minutes(p)})
}

// GetPunchesByDate handles GET /api/timeclock/date/:date
func GetPunchesByDate(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	cursor, err := db.PunchesCollection.Find(ctx, bson.M{"date": ps.ByName("date")})
	if err != nil {
		log.Printf("DB error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer cursor.Close(ctx)

	var punches []Punch
	if err := cursor.All(ctx, &punches); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to parse results")
		return
	}
	if len(punches) == 0 {
		punches = []Punch{}
	}
	utils.RespondWithJSON(w, http.StatusOK, punches)
}

// MonthlyTimesheet handles GET /api/timeclock/month/:month
func MonthlyTimesheet(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	month := ps.ByName("month")
	if _, err := utils.DaysInMonth(month); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid month")
		return
	}

	punches, err := PunchesForMonth(r, month)
	if err != nil {
		log.Printf("DB error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, MonthlyTotals(punches))
}

// PunchesForMonth loads every punch whose date falls in "yyyy-MM";
// shared with the daily closing report.
func PunchesForMonth(r *http.Request, month string) ([]Punch, error) {
	ctx := r.Context()
	cursor, err := db.PunchesCollection.Find(ctx, bson.M{
		"date": bson.M{"$gte": month + "-01", "$lte": month + "-31"},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var punches []Punch
	if err := cursor.All(ctx, &punches); err != nil {
		return nil, err
	}
	return punches, nil
}
