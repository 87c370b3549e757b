package chats

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"seaops/db"
	"seaops/globals"
	"seaops/models"
	"seaops/rdx"
	"seaops/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func bufferKey(chatID string) string {
	return "chat:" + chatID + ":messages"
}

// bufferMessage queues a message in Redis; the rdx flush worker moves
// buffered messages into MongoDB in bulk.
func bufferMessage(msg models.Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Println("message marshal:", err)
		return
	}
	if err := rdx.Conn.RPush(globals.Ctx, bufferKey(msg.ChatID), data).Err(); err != nil {
		log.Println("message buffer:", err)
	}
}

// CreateChat handles POST /api/chats
func CreateChat(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	var input struct {
		Name  string   `json:"name"`
		Users []string `json:"users"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	users := input.Users
	found := false
	for _, u := range users {
		if u == userID {
			found = true
			break
		}
	}
	if !found {
		users = append(users, userID)
	}
	if len(users) < 2 {
		utils.RespondWithError(w, http.StatusBadRequest, "A chat needs at least two participants")
		return
	}

	chat := models.Chat{
		ChatID:    utils.GenerateRandomDigitString(16),
		Name:      strings.TrimSpace(input.Name),
		Users:     users,
		CreatedAt: time.Now().Unix(),
	}
	if _, err := db.ChatsCollection.InsertOne(r.Context(), chat); err != nil {
		log.Printf("DB error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create chat")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, chat)
}

// GetChats handles GET /api/chats, listing the caller's conversations.
func GetChats(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	userID := utils.GetUserIDFromRequest(r)

	cursor, err := db.ChatsCollection.Find(ctx, bson.M{"users": userID},
		options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		log.Printf("DB error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer cursor.Close(ctx)

	var results []models.Chat
	if err := cursor.All(ctx, &results); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to parse results")
		return
	}
	if len(results) == 0 {
		results = []models.Chat{}
	}
	utils.RespondWithJSON(w, http.StatusOK, results)
}

// GetMessages handles GET /api/chats/:chatid/messages. Persisted history
// is merged with any messages still waiting in the Redis buffer.
func GetMessages(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	chatID := ps.ByName("chatid")
	userID := utils.GetUserIDFromRequest(r)

	var chat models.Chat
	err := db.ChatsCollection.FindOne(ctx, bson.M{
		"chatid": chatID,
		"users":  bson.M{"$in": []string{userID}},
	}).Decode(&chat)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Chat not found")
		return
	}

	cursor, err := db.MessagesCollection.Find(ctx, bson.M{"chatid": chatID},
		options.Find().SetSort(bson.M{"createdAt": 1}))
	if err != nil {
		log.Printf("DB error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer cursor.Close(ctx)

	var messages []models.Message
	if err := cursor.All(ctx, &messages); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode messages")
		return
	}

	if buffered, err := rdx.Conn.LRange(globals.Ctx, bufferKey(chatID), 0, -1).Result(); err == nil {
		for _, raw := range buffered {
			var m models.Message
			if err := json.Unmarshal([]byte(raw), &m); err == nil {
				messages = append(messages, m)
			}
		}
	}
	if len(messages) == 0 {
		messages = []models.Message{}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"chatid": chatID, "messages": messages})
}

// SendMessage handles POST /api/chats/:chatid/messages for clients that
// are not holding a websocket open.
func SendMessage(hub *Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		chatID := ps.ByName("chatid")
		userID := utils.GetUserIDFromRequest(r)

		var chat models.Chat
		err := db.ChatsCollection.FindOne(r.Context(), bson.M{
			"chatid": chatID,
			"users":  bson.M{"$in": []string{userID}},
		}).Decode(&chat)
		if err != nil {
			utils.RespondWithError(w, http.StatusNotFound, "Chat not found")
			return
		}

		var input struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil || strings.TrimSpace(input.Text) == "" {
			utils.RespondWithError(w, http.StatusBadRequest, "Message text required")
			return
		}

		msg := models.Message{
			MessageID: utils.GenerateRandomDigitString(16),
			ChatID:    chatID,
			SenderID:  userID,
			Text:      input.Text,
			CreatedAt: time.Now().Unix(),
		}
		bufferMessage(msg)

		out := outboundPayload{
			Action:    "chat",
			ID:        msg.MessageID,
			Room:      chatID,
			SenderID:  userID,
			Content:   msg.Text,
			Timestamp: msg.CreatedAt,
		}
		if data, _ := json.Marshal(out); data != nil {
			hub.Broadcast(chatID, data)
		}

		utils.RespondWithJSON(w, http.StatusCreated, msg)
	}
}
