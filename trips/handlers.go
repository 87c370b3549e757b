package trips

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"seaops/capacity"
	"seaops/db"
	"seaops/mq"
	"seaops/pricing"
	"seaops/rdx"
	"seaops/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func summaryCacheKey(date string) string {
	return "summary:" + date
}

// CreateTrip handles POST /api/trips
func CreateTrip(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var t Trip
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	t.Vessel = strings.TrimSpace(t.Vessel)
	if capacity.SeatsOf(t.Vessel) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Unknown vessel")
		return
	}
	if !utils.ValidDate(t.Date) || t.Time == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing or invalid date/time")
		return
	}
	if t.CapacityMode != capacity.ModeB {
		t.CapacityMode = capacity.ModeA
	}

	t.TripID = utils.GenerateRandomDigitString(16)
	t.Entries = []TripEntry{}
	t.CreatedAt = time.Now().Unix()

	if _, err := db.TripsCollection.InsertOne(r.Context(), t); err != nil {
		log.Printf("DB error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save trip")
		return
	}

	rdx.RdxDel(summaryCacheKey(t.Date))
	mq.Emit(r.Context(), mq.Event{Kind: "trip.created", EntityID: t.TripID, Date: t.Date, ActorID: utils.GetUserIDFromRequest(r)})
	utils.RespondWithJSON(w, http.StatusCreated, t)
}

// GetTripsByDate handles GET /api/trips/date/:date and returns the day's
// trips grouped per vessel, the shape the boarding log renders.
func GetTripsByDate(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	date := ps.ByName("date")

	cursor, err := db.TripsCollection.Find(ctx, bson.M{"date": date})
	if err != nil {
		log.Printf("DB error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer cursor.Close(ctx)

	var dayTrips []Trip
	if err := cursor.All(ctx, &dayTrips); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to parse results")
		return
	}

	grouped := make(map[string][]Trip)
	for _, vessel := range capacity.VesselNames() {
		grouped[vessel] = []Trip{}
	}
	for _, t := range dayTrips {
		grouped[t.Vessel] = append(grouped[t.Vessel], t)
	}

	utils.RespondWithJSON(w, http.StatusOK, grouped)
}

// UpsertEntry handles PUT /api/trips/:id/entries. The entry's derived
// fields are recomputed here from the attendant's channel, never taken
// from the request.
func UpsertEntry(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	tripID := ps.ByName("id")

	var e TripEntry
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if e.Adult < 0 || e.Child < 0 || e.Infant < 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Headcounts must be non-negative")
		return
	}

	var t Trip
	if err := db.TripsCollection.FindOne(r.Context(), bson.M{"tripid": tripID}).Decode(&t); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Trip not found")
		} else {
			log.Printf("DB error: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		}
		return
	}

	e.Attendant = strings.TrimSpace(e.Attendant)
	if e.Attendant == "" {
		e = ClearDerived(e)
	} else if ch, ok := pricing.ChannelByName(r, e.Attendant); ok {
		e = RecomputeDerived(e, ch, t.Date)
	} else {
		utils.RespondWithError(w, http.StatusBadRequest, "Unknown sales channel: "+e.Attendant)
		return
	}

	if e.EntryID == "" {
		e.EntryID = utils.GenerateRandomDigitString(12)
		t.Entries = append(t.Entries, e)
	} else {
		found := false
		for i := range t.Entries {
			if t.Entries[i].EntryID == e.EntryID {
				t.Entries[i] = e
				found = true
				break
			}
		}
		if !found {
			utils.RespondWithError(w, http.StatusNotFound, "Entry not found")
			return
		}
	}
	t.UpdatedAt = time.Now().Unix()

	if _, err := db.TripsCollection.ReplaceOne(r.Context(), bson.M{"tripid": tripID}, t); err != nil {
		log.Printf("DB error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update trip")
		return
	}

	rdx.RdxDel(summaryCacheKey(t.Date))
	mq.Emit(r.Context(), mq.Event{Kind: "trip.updated", EntityID: tripID, Date: t.Date, ActorID: utils.GetUserIDFromRequest(r)})
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"trip": t, "entry": e, "summary": Summarize(t)})
}

// OverrideCommission handles PUT /api/trips/:id/entries/:entryid/commission.
// Commission is the one derived field an operator may correct by hand;
// profit follows it.
func OverrideCommission(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var input struct {
		Commission int64 `json:"commission"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	var t Trip
	if err := db.TripsCollection.FindOne(r.Context(), bson.M{"tripid": ps.ByName("id")}).Decode(&t); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Trip not found")
		return
	}

	entryID := ps.ByName("entryid")
	found := false
	for i := range t.Entries {
		if t.Entries[i].EntryID == entryID {
			t.Entries[i].Commission = input.Commission
			t.Entries[i].Profit = t.Entries[i].Revenue - input.Commission
			found = true
			break
		}
	}
	if !found {
		utils.RespondWithError(w, http.StatusNotFound, "Entry not found")
		return
	}
	t.UpdatedAt = time.Now().Unix()

	if _, err := db.TripsCollection.ReplaceOne(r.Context(), bson.M{"tripid": t.TripID}, t); err != nil {
		log.Printf("DB error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update trip")
		return
	}

	rdx.RdxDel(summaryCacheKey(t.Date))
	utils.RespondWithJSON(w, http.StatusOK, t)
}

// DeleteEntry handles DELETE /api/trips/:id/entries/:entryid
func DeleteEntry(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var t Trip
	if err := db.TripsCollection.FindOne(r.Context(), bson.M{"tripid": ps.ByName("id")}).Decode(&t); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Trip not found")
		return
	}

	entryID := ps.ByName("entryid")
	kept := t.Entries[:0]
	for _, e := range t.Entries {
		if e.EntryID != entryID {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(t.Entries) {
		utils.RespondWithError(w, http.StatusNotFound, "Entry not found")
		return
	}
	t.Entries = kept
	t.UpdatedAt = time.Now().Unix()

	if _, err := db.TripsCollection.ReplaceOne(r.Context(), bson.M{"tripid": t.TripID}, t); err != nil {
		log.Printf("DB error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update trip")
		return
	}

	rdx.RdxDel(summaryCacheKey(t.Date))
	utils.RespondWithJSON(w, http.StatusOK, t)
}

// DeleteTrip handles DELETE /api/trips/:id
func DeleteTrip(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var t Trip
	if err := db.TripsCollection.FindOneAndDelete(r.Context(), bson.M{"tripid": ps.ByName("id")}).Decode(&t); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Trip not found")
		return
	}

	rdx.RdxDel(summaryCacheKey(t.Date))
	mq.Emit(r.Context(), mq.Event{Kind: "trip.deleted", EntityID: t.TripID, Date: t.Date, ActorID: utils.GetUserIDFromRequest(r)})
	w.WriteHeader(http.StatusNoContent)
}

// DaySummary handles GET /api/summary/:date. The fleet roll-up is pure
// computation over the day's trips, so it is cached in Redis until the
// next trip write for that date.
func DaySummary(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	date := ps.ByName("date")
	if date == "today" {
		date = utils.Today()
	}

	if cached, err := rdx.RdxGet(summaryCacheKey(date)); err == nil && cached != "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(cached))
		return
	}

	fs, err := FleetSummaryForDate(r, date)
	if err != nil {
		log.Printf("DB error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}

	if data, err := json.Marshal(fs); err == nil {
		rdx.RdxSetTTL(summaryCacheKey(date), string(data), time.Hour)
	}
	utils.RespondWithJSON(w, http.StatusOK, fs)
}

// FleetSummaryForDate loads a date's trips and reduces them; shared with
// the daily closing report.
func FleetSummaryForDate(r *http.Request, date string) (FleetSummary, error) {
	ctx := r.Context()
	cursor, err := db.TripsCollection.Find(ctx, bson.M{"date": date})
	if err != nil {
		return FleetSummary{}, err
	}
	defer cursor.Close(ctx)

	var dayTrips []Trip
	if err := cursor.All(ctx, &dayTrips); err != nil {
		return FleetSummary{}, err
	}

	grouped := make(map[string][]Trip)
	for _, t := range dayTrips {
		grouped[t.Vessel] = append(grouped[t.Vessel], t)
	}
	return SummarizeFleet(grouped), nil
}
