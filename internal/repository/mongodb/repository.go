package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vaychinnakhet-arch/canetrack/internal/domain/models"
)

// ErrTicketNotFound is returned when an id does not match any stored ticket.
var ErrTicketNotFound = errors.New("ticket not found")

const quotaDocID = "quota"

// MongoDBRepository is the authoritative local store for tickets and quota
// settings. The spreadsheet mirror is best-effort; this store always wins.
type MongoDBRepository struct {
	client   *mongo.Client
	dbName   string
	tickets  string
	settings string
}

// NewMongoDBRepository connects and verifies the database.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client:   client,
		dbName:   dbName,
		tickets:  "tickets",
		settings: "settings",
	}, nil
}

func (r *MongoDBRepository) ticketColl() *mongo.Collection {
	return r.client.Database(r.dbName).Collection(r.tickets)
}

func (r *MongoDBRepository) settingsColl() *mongo.Collection {
	return r.client.Database(r.dbName).Collection(r.settings)
}

// ListTickets returns all tickets in timestamp order.
func (r *MongoDBRepository) ListTickets(ctx context.Context) ([]models.CaneTicket, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})
	cur, err := r.ticketColl().Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find tickets: %w", err)
	}
	defer cur.Close(ctx)

	tickets := []models.CaneTicket{}
	if err := cur.All(ctx, &tickets); err != nil {
		return nil, fmt.Errorf("decode tickets: %w", err)
	}
	return tickets, nil
}

// GetTicket loads one ticket by id.
func (r *MongoDBRepository) GetTicket(ctx context.Context, id string) (models.CaneTicket, error) {
	var t models.CaneTicket
	err := r.ticketColl().FindOne(ctx, bson.M{"_id": id}).Decode(&t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.CaneTicket{}, ErrTicketNotFound
	}
	if err != nil {
		return models.CaneTicket{}, fmt.Errorf("find ticket %s: %w", id, err)
	}
	return t, nil
}

// InsertTicket stores a new ticket.
func (r *MongoDBRepository) InsertTicket(ctx context.Context, t models.CaneTicket) error {
	if _, err := r.ticketColl().InsertOne(ctx, t); err != nil {
		return fmt.Errorf("insert ticket: %w", err)
	}
	return nil
}

// UpdateTicket replaces a stored ticket in full.
func (r *MongoDBRepository) UpdateTicket(ctx context.Context, t models.CaneTicket) error {
	res, err := r.ticketColl().ReplaceOne(ctx, bson.M{"_id": t.ID}, t)
	if err != nil {
		return fmt.Errorf("replace ticket %s: %w", t.ID, err)
	}
	if res.MatchedCount == 0 {
		return ErrTicketNotFound
	}
	return nil
}

// DeleteTicket removes a ticket by id.
func (r *MongoDBRepository) DeleteTicket(ctx context.Context, id string) error {
	res, err := r.ticketColl().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete ticket %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrTicketNotFound
	}
	return nil
}

// ReplaceAllTickets swaps the whole local set for the rows pulled from the
// mirror (merge-replace semantics).
func (r *MongoDBRepository) ReplaceAllTickets(ctx context.Context, tickets []models.CaneTicket) error {
	coll := r.ticketColl()
	if _, err := coll.DeleteMany(ctx, bson.D{}); err != nil {
		return fmt.Errorf("clear tickets: %w", err)
	}
	if len(tickets) == 0 {
		return nil
	}

	docs := make([]interface{}, len(tickets))
	for i := range tickets {
		docs[i] = tickets[i]
	}
	if _, err := coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert tickets: %w", err)
	}
	return nil
}

// GetQuotaSettings loads the singleton settings document, falling back to
// first-run defaults when none exists yet.
func (r *MongoDBRepository) GetQuotaSettings(ctx context.Context) (models.QuotaSettings, error) {
	var doc struct {
		ID       string               `bson:"_id"`
		Settings models.QuotaSettings `bson:"settings"`
	}

	err := r.settingsColl().FindOne(ctx, bson.M{"_id": quotaDocID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.DefaultQuotaSettings(), nil
	}
	if err != nil {
		return models.QuotaSettings{}, fmt.Errorf("find quota settings: %w", err)
	}
	return doc.Settings, nil
}

// SaveQuotaSettings upserts the singleton settings document.
func (r *MongoDBRepository) SaveQuotaSettings(ctx context.Context, s models.QuotaSettings) error {
	doc := bson.M{"_id": quotaDocID, "settings": s}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.settingsColl().ReplaceOne(ctx, bson.M{"_id": quotaDocID}, doc, opts); err != nil {
		return fmt.Errorf("save quota settings: %w", err)
	}
	return nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
