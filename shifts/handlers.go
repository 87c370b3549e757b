package shifts

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"seaops/db"
	"seaops/mq"
	"seaops/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ---------- Staff ----------

// CreateStaff handles POST /api/staff
func CreateStaff(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var s StaffMember
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	s.Name = strings.TrimSpace(s.Name)
	if s.Name == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing required field: name")
		return
	}
	switch s.Role {
	case RoleCaptain, RoleBeach, RoleReception:
	default:
		utils.RespondWithError(w, http.StatusBadRequest, "Unknown role")
		return
	}

	s.StaffID = utils.GenerateRandomDigitString(12)
	s.CreatedAt = time.Now().Unix()

	if _, err := db.StaffCollection.InsertOne(r.Context(), s); err != nil {
		log.Printf("DB error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save staff member")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, s)
}

// GetStaff handles GET /api/staff
func GetStaff(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	staff, err := loadStaff(r)
	if err != nil {
		log.Printf("DB error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, staff)
}

// DeleteStaff handles DELETE /api/staff/:id
func DeleteStaff(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	res, err := db.StaffCollection.DeleteOne(r.Context(), bson.M{"staffid": ps.ByName("id")})
	if err != nil {
		log.Printf("DB error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Staff member not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func loadStaff(r *http.Request) ([]StaffMember, error) {
	ctx := r.Context()
	cursor, err := db.StaffCollection.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"createdAt": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var staff []StaffMember
	if err := cursor.All(ctx, &staff); err != nil {
		return nil, err
	}
	if len(staff) == 0 {
		staff = []StaffMember{}
	}
	return staff, nil
}

// ---------- Cruise days ----------

type cruiseDoc struct {
	Month string `json:"month" bson:"month"`
	Days  []int  `json:"days" bson:"days"`
}

// SetCruiseDays handles PUT /api/shifts/cruise/:month
func SetCruiseDays(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	month := ps.ByName("month")
	if _, err := utils.DaysInMonth(month); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid month")
		return
	}

	var input struct {
		Days []int `json:"days"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	doc := cruiseDoc{Month: month, Days: input.Days}
	_, err := db.CruiseDaysCollection.ReplaceOne(r.Context(), bson.M{"month": month}, doc,
		options.Replace().SetUpsert(true))
	if err != nil {
		log.Printf("DB error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save cruise days")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, doc)
}

// GetCruiseDays handles GET /api/shifts/cruise/:month
func GetCruiseDays(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	days, err := loadCruiseDays(r, ps.ByName("month"))
	if err != nil {
		log.Printf("DB error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"month": ps.ByName("month"), "days": days})
}

func loadCruiseDays(r *http.Request, month string) ([]int, error) {
	var doc cruiseDoc
	err := db.CruiseDaysCollection.FindOne(r.Context(), bson.M{"month": month}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return []int{}, nil
	}
	if err != nil {
		return nil, err
	}
	if doc.Days == nil {
		doc.Days = []int{}
	}
	return doc.Days, nil
}

// ---------- Required counts ----------

type staffingDoc struct {
	SettingID string     `bson:"settingid"`
	Counts    RoleCounts `bson:"counts"`
}

// SetRequiredCounts handles PUT /api/shifts/required
func SetRequiredCounts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var counts RoleCounts
	if err := json.NewDecoder(r.Body).Decode(&counts); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	for role := range counts {
		switch role {
		case RoleCaptain, RoleBeach, RoleReception:
		default:
			utils.RespondWithError(w, http.StatusBadRequest, "Unknown role: "+string(role))
			return
		}
	}

	doc := staffingDoc{SettingID: "staffing", Counts: counts}
	_, err := db.SettingsCollection.ReplaceOne(r.Context(), bson.M{"settingid": "staffing"}, doc,
		options.Replace().SetUpsert(true))
	if err != nil {
		log.Printf("DB error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save staffing counts")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, counts)
}

// GetRequiredCounts handles GET /api/shifts/required
func GetRequiredCounts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, loadRequiredCounts(r))
}

func loadRequiredCounts(r *http.Request) RoleCounts {
	var doc staffingDoc
	err := db.SettingsCollection.FindOne(r.Context(), bson.M{"settingid": "staffing"}).Decode(&doc)
	if err != nil || doc.Counts == nil {
		return DefaultRoleCounts
	}
	return doc.Counts
}

// ---------- Schedule generation ----------

// GenerateMonth handles POST /api/shifts/generate/:month. Loads staff,
// cruise days and required counts, runs the allocator, and replaces the
// stored plan for that month.
func GenerateMonth(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	month := ps.ByName("month")

	staff, err := loadStaff(r)
	if err != nil {
		log.Printf("DB error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	days, err := loadCruiseDays(r, month)
	if err != nil {
		log.Printf("DB error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	cruise := make(map[int]bool, len(days))
	for _, d := range days {
		cruise[d] = true
	}
	required := loadRequiredCounts(r)

	plan, err := GenerateSchedule(month, staff, cruise, required)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid month")
		return
	}

	_, err = db.SchedulesCollection.ReplaceOne(r.Context(), bson.M{"month": month}, plan,
		options.Replace().SetUpsert(true))
	if err != nil {
		log.Printf("DB error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save schedule")
		return
	}

	mq.Emit(r.Context(), mq.Event{Kind: "schedule.generated", EntityID: month, ActorID: utils.GetUserIDFromRequest(r)})

	totalDays, _ := utils.DaysInMonth(month)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"plan":      plan,
		"shortfall": ShortfallReport(plan, staff, required, totalDays),
	})
}

// GetMonth handles GET /api/shifts/schedule/:month
func GetMonth(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var plan MonthPlan
	err := db.SchedulesCollection.FindOne(r.Context(), bson.M{"month": ps.ByName("month")}).Decode(&plan)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "No schedule for month")
		} else {
			log.Printf("DB error: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, plan)
}

// OverrideMark handles PATCH /api/shifts/schedule/:month/:staffid/:day for manual
// corrections after generation.
func OverrideMark(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	day, err := strconv.Atoi(ps.ByName("day"))
	if err != nil || day < 1 || day > 31 {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid day")
		return
	}

	var input struct {
		Mark Mark `json:"mark"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if input.Mark != MarkWorking && input.Mark != MarkRest {
		utils.RespondWithError(w, http.StatusBadRequest, "Mark must be working or rest")
		return
	}

	month := ps.ByName("month")
	staffID := ps.ByName("staffid")

	var plan MonthPlan
	if err := db.SchedulesCollection.FindOne(r.Context(), bson.M{"month": month}).Decode(&plan); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "No schedule for month")
		return
	}
	marks, ok := plan.Schedule[staffID]
	if !ok {
		utils.RespondWithError(w, http.StatusNotFound, "Staff member not in schedule")
		return
	}

	prev := marks[day]
	marks[day] = input.Mark
	if prev != input.Mark {
		if input.Mark == MarkWorking {
			plan.WorkDaysCount[staffID]++
		} else if plan.WorkDaysCount[staffID] > 0 {
			plan.WorkDaysCount[staffID]--
		}
	}

	if _, err := db.SchedulesCollection.ReplaceOne(r.Context(), bson.M{"month": month}, plan); err != nil {
		log.Printf("DB error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save schedule")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, plan)
}

// GetShortfall handles GET /api/shifts/schedule/:month/shortfall
func GetShortfall(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	month := ps.ByName("month")
	days, err := utils.DaysInMonth(month)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid month")
		return
	}

	var plan MonthPlan
	if err := db.SchedulesCollection.FindOne(r.Context(), bson.M{"month": month}).Decode(&plan); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "No schedule for month")
		return
	}
	staff, err := loadStaff(r)
	if err != nil {
		log.Printf("DB error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, ShortfallReport(plan, staff, loadRequiredCounts(r), days))
}
