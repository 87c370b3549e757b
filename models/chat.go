package models

// Chat is a conversation between two or more operators.
type Chat struct {
	ChatID    string   `json:"chatid" bson:"chatid"`
	Name      string   `json:"name,omitempty" bson:"name,omitempty"`
	Users     []string `json:"users" bson:"users"`
	CreatedAt int64    `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64    `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// Message is one chat message; file fields are set for attachments.
type Message struct {
	MessageID string `json:"messageid" bson:"messageid"`
	ChatID    string `json:"chatid" bson:"chatid"`
	SenderID  string `json:"senderId" bson:"senderId"`
	Text      string `json:"text,omitempty" bson:"text,omitempty"`
	FileURL   string `json:"fileUrl,omitempty" bson:"fileUrl,omitempty"`
	FileType  string `json:"fileType,omitempty" bson:"fileType,omitempty"`
	CreatedAt int64  `json:"createdAt" bson:"createdAt"`
}
