package db

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection         *mongo.Collection
	ChannelsCollection     *mongo.Collection
	TripsCollection        *mongo.Collection
	ReservationsCollection *mongo.Collection
	StaffCollection        *mongo.Collection
	SchedulesCollection    *mongo.Collection
	CruiseDaysCollection   *mongo.Collection
	PunchesCollection      *mongo.Collection
	ChatsCollection        *mongo.Collection
	MessagesCollection     *mongo.Collection
	PagesCollection        *mongo.Collection
	FilesCollection        *mongo.Collection
	ReportsCollection      *mongo.Collection
	SettingsCollection     *mongo.Collection
	Client                 *mongo.Client
)

// Initialize MongoDB connection
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	Client, err = mongo.Connect(context.TODO(), clientOptions)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	database := Client.Database("seaopsdb")
	UserCollection = database.Collection("users")
	ChannelsCollection = database.Collection("channels")
	TripsCollection = database.Collection("trips")
	ReservationsCollection = database.Collection("reservations")
	StaffCollection = database.Collection("staff")
	SchedulesCollection = database.Collection("schedules")
	CruiseDaysCollection = database.Collection("cruisedays")
	PunchesCollection = database.Collection("punches")
	ChatsCollection = database.Collection("chats")
	MessagesCollection = database.Collection("messages")
	PagesCollection = database.Collection("pages")
	FilesCollection = database.Collection("files")
	ReportsCollection = database.Collection("reports")
	SettingsCollection = database.Collection("settings")
}
