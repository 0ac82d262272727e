package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nikshi-16/amazon/internal/domain"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type productDoc struct {
	ID           string    `bson:"_id"`
	Name         string    `bson:"name"`
	Slug         string    `bson:"slug"`
	Category     string    `bson:"category"`
	Brand        string    `bson:"brand,omitempty"`
	Description  string    `bson:"description,omitempty"`
	Images       []string  `bson:"images,omitempty"`
	Colors       []string  `bson:"colors,omitempty"`
	Sizes        []string  `bson:"sizes,omitempty"`
	Tags         []string  `bson:"tags,omitempty"`
	Price        string    `bson:"price"`
	ListPrice    string    `bson:"list_price"`
	CountInStock int       `bson:"count_in_stock"`
	CreatedAt    time.Time `bson:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at"`
}

type mongoProductRepository struct {
	collection *mongo.Collection
}

func NewMongoProductRepository(db *mongo.Database) ProductRepository {
	return &mongoProductRepository{collection: db.Collection("products")}
}

func (m *mongoProductRepository) List(ctx context.Context, tag string, limit int64) ([]domain.Product, error) {
	filter := bson.M{}
	if tag != "" {
		filter["tags"] = tag
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}

	cur, err := m.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer cur.Close(ctx)

	var products []domain.Product
	for cur.Next(ctx) {
		var doc productDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode product: %w", err)
		}
		p, err := fromProductDoc(&doc)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("product cursor failed: %w", err)
	}
	return products, nil
}

func (m *mongoProductRepository) FindBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	var doc productDoc
	err := m.collection.FindOne(ctx, bson.M{"slug": slug}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return fromProductDoc(&doc)
}

func (m *mongoProductRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "tags", Value: 1}}},
	}
	_, err := m.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func fromProductDoc(doc *productDoc) (*domain.Product, error) {
	price, err := decimal.NewFromString(doc.Price)
	if err != nil {
		return nil, fmt.Errorf("invalid price on product %s: %w", doc.ID, err)
	}
	listPrice := decimal.Zero
	if doc.ListPrice != "" {
		listPrice, err = decimal.NewFromString(doc.ListPrice)
		if err != nil {
			return nil, fmt.Errorf("invalid list price on product %s: %w", doc.ID, err)
		}
	}
	return &domain.Product{
		ID:           doc.ID,
		Name:         doc.Name,
		Slug:         doc.Slug,
		Category:     doc.Category,
		Brand:        doc.Brand,
		Description:  doc.Description,
		Images:       doc.Images,
		Colors:       doc.Colors,
		Sizes:        doc.Sizes,
		Tags:         doc.Tags,
		Price:        price,
		ListPrice:    listPrice,
		CountInStock: doc.CountInStock,
		CreatedAt:    doc.CreatedAt,
		UpdatedAt:    doc.UpdatedAt,
	}, nil
}
