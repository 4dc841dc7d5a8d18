package store

import (
	"context"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"rental_frontend/domain"
)

const (
	DATABASE   = "rental_frontend"
	COLLECTION = "sessions"
	sessionID  = "session"
)

// SessionMongoDBStore holds the pair in a single document so both keys are
// replaced in one write.
type SessionMongoDBStore struct {
	sessions *mongo.Collection
	tracer   trace.Tracer
	logger   *logrus.Logger
}

type sessionDocument struct {
	ID    string `bson:"_id"`
	Token string `bson:"token"`
	User  string `bson:"user"`
}

func NewSessionMongoDBStore(client *mongo.Client, tracer trace.Tracer, logger *logrus.Logger) domain.SessionStorage {
	sessions := client.Database(DATABASE).Collection(COLLECTION)
	return &SessionMongoDBStore{
		sessions: sessions,
		tracer:   tracer,
		logger:   logger,
	}
}

func (store *SessionMongoDBStore) Load(ctx context.Context) (domain.PersistedSession, error) {
	ctx, span := store.tracer.Start(ctx, "SessionMongoDBStore.Load")
	defer span.End()

	var document sessionDocument
	err := store.sessions.FindOne(ctx, bson.M{"_id": sessionID}).Decode(&document)
	if err == mongo.ErrNoDocuments {
		return domain.PersistedSession{}, nil
	}
	if err != nil {
		span.SetStatus(codes.Error, "Error loading session")
		store.logger.Errorf("Error decoding session: %v", err)
		return domain.PersistedSession{}, err
	}

	return domain.PersistedSession{Token: document.Token, User: document.User}, nil
}

func (store *SessionMongoDBStore) Save(ctx context.Context, session domain.PersistedSession) error {
	ctx, span := store.tracer.Start(ctx, "SessionMongoDBStore.Save")
	defer span.End()

	document := sessionDocument{ID: sessionID, Token: session.Token, User: session.User}
	_, err := store.sessions.ReplaceOne(ctx, bson.M{"_id": sessionID}, document, options.Replace().SetUpsert(true))
	if err != nil {
		span.SetStatus(codes.Error, "Error saving session")
		store.logger.Errorf("Error saving session: %v", err)
		return err
	}
	return nil
}

func (store *SessionMongoDBStore) Clear(ctx context.Context) error {
	ctx, span := store.tracer.Start(ctx, "SessionMongoDBStore.Clear")
	defer span.End()

	_, err := store.sessions.DeleteOne(ctx, bson.M{"_id": sessionID})
	if err != nil {
		span.SetStatus(codes.Error, "Error clearing session")
		store.logger.Errorf("Error clearing session: %v", err)
		return err
	}
	return nil
}
