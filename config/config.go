package config

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/societyhub/society-portal-go/store"
	"github.com/societyhub/society-portal-go/utils"
)

// Config carries everything handlers need: the database, the store adapter,
// the media uploader, the mailer, and the auth settings. Handlers are
// closures over it.
type Config struct {
	MongoClient *mongo.Client
	DBName      string
	JWTSecret   string
	AdminCode   string

	Store    *store.Store
	Uploader utils.Uploader
	Mailer   *utils.Mailer // nil when email is not configured
	Logger   *zap.Logger
}

// Load reads the environment, connects to MongoDB, and wires the external
// collaborators. It fails fast on anything the service cannot run without.
func Load(logger *zap.Logger) (*Config, error) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		return nil, fmt.Errorf("MONGO_URI is required")
	}
	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "society_portal"
	}
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	adminCode := os.Getenv("ADMIN_CODE")
	if adminCode == "" {
		return nil, fmt.Errorf("ADMIN_CODE is required")
	}

	client, err := connectMongo(uri, dbName)
	if err != nil {
		return nil, err
	}

	uploader, err := utils.NewCloudinaryUploader(
		os.Getenv("CLOUDINARY_CLOUD_NAME"),
		os.Getenv("CLOUDINARY_API_KEY"),
		os.Getenv("CLOUDINARY_API_SECRET"),
		"uploads",
	)
	if err != nil {
		return nil, err
	}

	var mailer *utils.Mailer
	if os.Getenv("ZEPTO_API_URL") != "" {
		mailer, err = utils.NewMailer(
			os.Getenv("ZEPTO_API_URL"),
			os.Getenv("ZEPTO_API_KEY"),
			os.Getenv("EMAIL_FROM"),
			logger,
		)
		if err != nil {
			return nil, err
		}
	} else {
		logger.Warn("email not configured, member notifications disabled")
	}

	return &Config{
		MongoClient: client,
		DBName:      dbName,
		JWTSecret:   jwtSecret,
		AdminCode:   adminCode,
		Store:       store.New(client.Database(dbName)),
		Uploader:    uploader,
		Mailer:      mailer,
		Logger:      logger,
	}, nil
}

func connectMongo(uri, dbName string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	// one account per email across both identity collections
	emailIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	for _, col := range []string{"admins", "members"} {
		if _, err := client.Database(dbName).Collection(col).Indexes().CreateOne(ctx, emailIndex); err != nil {
			return nil, fmt.Errorf("create email index on %s: %w", col, err)
		}
	}
	return client, nil
}
