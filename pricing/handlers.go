package pricing

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"seaops/db"
	"seaops/rdx"
	"seaops/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// CreateChannel handles POST /api/channels
func CreateChannel(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var ch SalesChannel
	if err := json.NewDecoder(r.Body).Decode(&ch); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	ch.Name = strings.TrimSpace(ch.Name)
	if ch.Name == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing required field: name")
		return
	}

	ch.ChannelID = utils.GenerateRandomDigitString(16)
	ch.CreatedAt = time.Now().Unix()
	if ch.Periods == nil {
		ch.Periods = []PricingPeriod{}
	}
	for i := range ch.Periods {
		if ch.Periods[i].PeriodID == "" {
			ch.Periods[i].PeriodID = utils.GenerateRandomDigitString(12)
		}
	}

	if _, err := db.ChannelsCollection.InsertOne(r.Context(), ch); err != nil {
		log.Printf("DB error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save channel")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, ch)
}

// GetChannels handles GET /api/channels
func GetChannels(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	cursor, err := db.ChannelsCollection.Find(ctx, bson.M{})
	if err != nil {
		log.Printf("DB error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer cursor.Close(ctx)

	var channels []SalesChannel
	if err := cursor.All(ctx, &channels); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to parse results")
		return
	}
	if len(channels) == 0 {
		channels = []SalesChannel{}
	}
	utils.RespondWithJSON(w, http.StatusOK, channels)
}

// GetChannel handles GET /api/channels/:id, including the period-overlap
// warning the console shows in settings.
func GetChannel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var ch SalesChannel
	err := db.ChannelsCollection.FindOne(r.Context(), bson.M{"channelid": ps.ByName("id")}).Decode(&ch)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Channel not found")
		} else {
			log.Printf("DB error: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"channel":  ch,
		"overlaps": OverlappingPeriods(ch),
	})
}

// UpdateChannel handles PUT /api/channels/:id
func UpdateChannel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var ch SalesChannel
	if err := json.NewDecoder(r.Body).Decode(&ch); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	ch.ChannelID = ps.ByName("id")
	ch.UpdatedAt = time.Now().Unix()
	for i := range ch.Periods {
		if ch.Periods[i].PeriodID == "" {
			ch.Periods[i].PeriodID = utils.GenerateRandomDigitString(12)
		}
	}

	res, err := db.ChannelsCollection.ReplaceOne(r.Context(), bson.M{"channelid": ch.ChannelID}, ch)
	if err != nil {
		log.Printf("DB error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update channel")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Channel not found")
		return
	}

	// derived revenue in cached day summaries is stale now
	rdx.DelMatching("summary:*")
	utils.RespondWithJSON(w, http.StatusOK, ch)
}

// DeleteChannel handles DELETE /api/channels/:id
func DeleteChannel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	res, err := db.ChannelsCollection.DeleteOne(r.Context(), bson.M{"channelid": ps.ByName("id")})
	if err != nil {
		log.Printf("DB error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Channel not found")
		return
	}

	rdx.DelMatching("summary:*")
	w.WriteHeader(http.StatusNoContent)
}

// ChannelByName loads a channel by its display name; used when trip
// entries are attributed by attendant name.
func ChannelByName(r *http.Request, name string) (SalesChannel, bool) {
	var ch SalesChannel
	err := db.ChannelsCollection.FindOne(r.Context(), bson.M{"name": name}).Decode(&ch)
	return ch, err == nil
}
