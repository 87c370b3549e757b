package reservations

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"seaops/capacity"
	"seaops/db"
	"seaops/mq"
	"seaops/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Reservation is a channel-attributed party booking ahead of boarding.
// Status: pending, confirmed, cancelled.
type Reservation struct {
	ReservationID string `json:"reservationid" bson:"reservationid"`
	Vessel        string `json:"vessel" bson:"vessel"`
	Date          string `json:"date" bson:"date"` // yyyy-MM-dd
	Time          string `json:"time" bson:"time"` // HH:MM
	Channel       string `json:"channel,omitempty" bson:"channel,omitempty"`
	Name          string `json:"name" bson:"name"`
	Phone         string `json:"phone,omitempty" bson:"phone,omitempty"`
	Adult         int    `json:"adult" bson:"adult"`
	Child         int    `json:"child" bson:"child"`
	Infant        int    `json:"infant" bson:"infant"`
	Status        string `json:"status" bson:"status"`
	Notes         string `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt     int64  `json:"createdAt" bson:"createdAt"`
	UpdatedAt     int64  `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// CreateReservation handles POST /api/reservations
func CreateReservation(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var res Reservation
	if err := json.NewDecoder(r.Body).Decode(&res); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	res.Name = strings.TrimSpace(res.Name)
	if res.Name == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing required field: name")
		return
	}
	if capacity.SeatsOf(res.Vessel) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Unknown vessel")
		return
	}
	if !utils.ValidDate(res.Date) || res.Time == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing or invalid date/time")
		return
	}
	if res.Adult < 0 || res.Child < 0 || res.Infant < 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Headcounts must be non-negative")
		return
	}

	res.ReservationID = utils.GenerateRandomDigitString(16)
	res.Status = "pending"
	res.CreatedAt = time.Now().Unix()

	if _, err := db.ReservationsCollection.InsertOne(r.Context(), res); err != nil {
		log.Printf("DB error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save reservation")
		return
	}

	mq.Emit(r.Context(), mq.Event{Kind: "reservation.created", EntityID: res.ReservationID, Date: res.Date, ActorID: utils.GetUserIDFromRequest(r)})
	utils.RespondWithJSON(w, http.StatusCreated, res)
}

// GetReservationsByDate handles GET /api/reservations/date/:date
func GetReservationsByDate(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	filter := bson.M{"date": ps.ByName("date")}
	if vessel := r.URL.Query().Get("vessel"); vessel != "" {
		filter["vessel"] = vessel
	}

	cursor, err := db.ReservationsCollection.Find(ctx, filter, options.Find().SetSort(bson.M{"time": 1}))
	if err != nil {
		log.Printf("DB error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer cursor.Close(ctx)

	var results []Reservation
	if err := cursor.All(ctx, &results); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to parse results")
		return
	}
	if len(results) == 0 {
		results = []Reservation{}
	}
	utils.RespondWithJSON(w, http.StatusOK, results)
}

// UpdateReservation handles PUT /api/reservations/id/:id
func UpdateReservation(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var res Reservation
	if err := json.NewDecoder(r.Body).Decode(&res); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	switch res.Status {
	case "pending", "confirmed", "cancelled":
	default:
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid status")
		return
	}

	res.ReservationID = ps.ByName("id")
	res.UpdatedAt = time.Now().Unix()

	result, err := db.ReservationsCollection.ReplaceOne(r.Context(), bson.M{"reservationid": res.ReservationID}, res)
	if err != nil {
		log.Printf("DB error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update reservation")
		return
	}
	if result.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Reservation not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, res)
}

// DeleteReservation handles DELETE /api/reservations/id/:id
func DeleteReservation(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	result, err := db.ReservationsCollection.DeleteOne(r.Context(), bson.M{"reservationid": ps.ByName("id")})
	if err != nil {
		log.Printf("DB error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	if result.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Reservation not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func findReservation(r *http.Request, id string) (Reservation, error) {
	var res Reservation
	err := db.ReservationsCollection.FindOne(r.Context(), bson.M{"reservationid": id}).Decode(&res)
	return res, err
}
