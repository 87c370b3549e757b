package kb

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"seaops/db"
	"seaops/filemgr"
	"seaops/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Page is an operational document: manuals, checklists, safety notices.
type Page struct {
	PageID      string    `json:"pageid" bson:"pageid"`
	Title       string    `json:"title" bson:"title"`
	Body        string    `json:"body" bson:"body"`
	Tags        []string  `json:"tags,omitempty" bson:"tags,omitempty"`
	Attachments []string  `json:"attachments,omitempty" bson:"attachments,omitempty"`
	AuthorID    string    `json:"authorId" bson:"authorId"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}

func CreatePage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var page Page
	if err := json.NewDecoder(r.Body).Decode(&page); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if page.Title == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Title is required")
		return
	}

	page.PageID = utils.GenerateRandomDigitString(16)
	page.AuthorID = utils.GetUserIDFromRequest(r)
	page.CreatedAt = time.Now()
	page.UpdatedAt = page.CreatedAt
	page.Attachments = nil

	if _, err := db.PagesCollection.InsertOne(context.TODO(), page); err != nil {
		log.Printf("kb: insert page: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create page")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, page)
}

func GetPages(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	filter := bson.M{}
	if tag := r.URL.Query().Get("tag"); tag != "" {
		filter["tags"] = tag
	}
	if q := r.URL.Query().Get("q"); q != "" {
		filter["$or"] = []bson.M{
			{"title": bson.M{"$regex": q, "$options": "i"}},
			{"body": bson.M{"$regex": q, "$options": "i"}},
		}
	}

	cursor, err := db.PagesCollection.Find(context.TODO(), filter,
		options.Find().SetSort(bson.M{"updatedAt": -1}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch pages")
		return
	}
	defer cursor.Close(context.TODO())

	pages := []Page{}
	if err := cursor.All(context.TODO(), &pages); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode pages")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, pages)
}

func GetPage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var page Page
	err := db.PagesCollection.FindOne(context.TODO(), bson.M{"pageid": ps.ByName("pageid")}).Decode(&page)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Page not found")
		return
	} else if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch page")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, page)
}

func UpdatePage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var input struct {
		Title string   `json:"title"`
		Body  string   `json:"body"`
		Tags  []string `json:"tags"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	update := bson.M{"updatedAt": time.Now()}
	if input.Title != "" {
		update["title"] = input.Title
	}
	if input.Body != "" {
		update["body"] = input.Body
	}
	if input.Tags != nil {
		update["tags"] = input.Tags
	}

	res, err := db.PagesCollection.UpdateOne(context.TODO(),
		bson.M{"pageid": ps.ByName("pageid")}, bson.M{"$set": update})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update page")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Page not found")
		return
	}
	utils.SendResponse(w, http.StatusOK, nil, "Page updated", nil)
}

func DeletePage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	res, err := db.PagesCollection.DeleteOne(context.TODO(), bson.M{"pageid": ps.ByName("pageid")})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete page")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Page not found")
		return
	}
	utils.SendResponse(w, http.StatusOK, nil, "Page deleted", nil)
}

// UploadAttachments accepts multipart uploads under "files" and appends the
// stored names to the page.
func UploadAttachments(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	pageID := ps.ByName("pageid")

	var page Page
	err := db.PagesCollection.FindOne(context.TODO(), bson.M{"pageid": pageID}).Decode(&page)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Page not found")
		return
	} else if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch page")
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	saved, err := filemgr.SaveFormFiles(r.MultipartForm, "files", filemgr.EntityPage, filemgr.KindFile, true)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	now := time.Now()
	for _, name := range saved {
		_, err := db.FilesCollection.InsertOne(context.TODO(), bson.M{
			"fileid":     utils.GenerateRandomDigitString(16),
			"pageid":     pageID,
			"filename":   name,
			"uploadedBy": utils.GetUserIDFromRequest(r),
			"uploadedAt": now,
		})
		if err != nil {
			log.Printf("kb: insert file record: %v", err)
		}
	}

	_, err = db.PagesCollection.UpdateOne(context.TODO(),
		bson.M{"pageid": pageID},
		bson.M{
			"$push": bson.M{"attachments": bson.M{"$each": saved}},
			"$set":  bson.M{"updatedAt": now},
		})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to attach files")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"attachments": saved})
}
