package settings

import (
	"context"
	"encoding/json"
	"net/http"

	"seaops/db"
	"seaops/globals"
	"seaops/mq"
	"seaops/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserSettings are per-operator console preferences.
type UserSettings struct {
	UserID              string `json:"userID,omitempty" bson:"userID"`
	Theme               string `json:"theme" bson:"theme"`
	Language            string `json:"language" bson:"language"`
	TimeZone            string `json:"time_zone" bson:"time_zone"`
	DefaultCapacityMode string `json:"default_capacity_mode" bson:"default_capacity_mode"`
	Notifications       bool   `json:"notifications" bson:"notifications"`
	DailyReminder       string `json:"daily_reminder" bson:"daily_reminder"`
}

func getDefaultSettings(userID string) UserSettings {
	return UserSettings{
		UserID:              userID,
		Theme:               "light",
		Language:            "english",
		TimeZone:            "UTC",
		DefaultCapacityMode: "A",
		Notifications:       true,
		DailyReminder:       "08:30",
	}
}

// GetUserSettings returns the caller's settings, creating the defaults
// on first read.
func GetUserSettings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, _ := r.Context().Value(globals.UserIDKey).(string)

	var userSettings UserSettings
	err := db.SettingsCollection.FindOne(context.TODO(), bson.M{"userID": userID}).Decode(&userSettings)
	if err == mongo.ErrNoDocuments {
		userSettings = getDefaultSettings(userID)
		_, _ = db.SettingsCollection.InsertOne(context.TODO(), userSettings)
	} else if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch settings")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, userSettings)
}

// UpdateUserSetting updates a single setting named in the path.
func UpdateUserSetting(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID, _ := r.Context().Value(globals.UserIDKey).(string)
	settingType := ps.ByName("type")

	validSettings := map[string]bool{
		"theme":                 true,
		"language":              true,
		"time_zone":             true,
		"default_capacity_mode": true,
		"notifications":         true,
		"daily_reminder":        true,
	}
	if !validSettings[settingType] {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid setting type")
		return
	}

	var update struct {
		Value any `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	if settingType == "default_capacity_mode" {
		if v, ok := update.Value.(string); !ok || (v != "A" && v != "B") {
			utils.RespondWithError(w, http.StatusBadRequest, "Capacity mode must be A or B")
			return
		}
	}

	_, err := db.SettingsCollection.UpdateOne(context.TODO(),
		bson.M{"userID": userID},
		bson.M{"$set": bson.M{settingType: update.Value}},
		options.Update().SetUpsert(true))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update setting")
		return
	}

	mq.Emit(r.Context(), mq.Event{Kind: "settings.updated", ActorID: userID})
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"type":  settingType,
		"value": update.Value,
	})
}
