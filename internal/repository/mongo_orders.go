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

// orderDoc is the persistence shape of an order. Money is stored as decimal
// strings so no float rounding leaks into the database.
type orderDoc struct {
	ID                   string            `bson:"_id"`
	UserID               string            `bson:"user_id"`
	Items                []orderItemDoc    `bson:"items"`
	ShippingAddress      addressDoc        `bson:"shipping_address"`
	PaymentMethod        string            `bson:"payment_method"`
	ItemsPrice           string            `bson:"items_price"`
	ShippingPrice        string            `bson:"shipping_price"`
	TaxPrice             string            `bson:"tax_price"`
	TotalPrice           string            `bson:"total_price"`
	ExpectedDeliveryDate time.Time         `bson:"expected_delivery_date"`
	IsPaid               bool              `bson:"is_paid"`
	PaidAt               *time.Time        `bson:"paid_at,omitempty"`
	PaymentResult        *paymentResultDoc `bson:"payment_result,omitempty"`
	CreatedAt            time.Time         `bson:"created_at"`
	UpdatedAt            time.Time         `bson:"updated_at"`
}

type orderItemDoc struct {
	ClientID     string `bson:"client_id"`
	ProductID    string `bson:"product_id"`
	Name         string `bson:"name"`
	Slug         string `bson:"slug"`
	Image        string `bson:"image,omitempty"`
	Color        string `bson:"color,omitempty"`
	Size         string `bson:"size,omitempty"`
	Price        string `bson:"price"`
	Quantity     int    `bson:"quantity"`
	CountInStock int    `bson:"count_in_stock"`
}

type addressDoc struct {
	FullName   string `bson:"full_name"`
	Street     string `bson:"street"`
	City       string `bson:"city"`
	Province   string `bson:"province,omitempty"`
	PostalCode string `bson:"postal_code"`
	Country    string `bson:"country"`
	Phone      string `bson:"phone"`
}

type paymentResultDoc struct {
	ID           string `bson:"id"`
	Status       string `bson:"status"`
	EmailAddress string `bson:"email_address"`
	PricePaid    string `bson:"price_paid"`
}

type userDoc struct {
	ID    string `bson:"_id"`
	Email string `bson:"email"`
}

type mongoOrderRepository struct {
	orders *mongo.Collection
	users  *mongo.Collection
}

func NewMongoOrderRepository(db *mongo.Database) OrderRepository {
	return &mongoOrderRepository{
		orders: db.Collection("orders"),
		users:  db.Collection("users"),
	}
}

func (m *mongoOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	now := time.Now()
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}
	order.UpdatedAt = now

	_, err := m.orders.InsertOne(ctx, toOrderDoc(order))
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

func (m *mongoOrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	var doc orderDoc
	err := m.orders.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return fromOrderDoc(&doc)
}

func (m *mongoOrderRepository) FindByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := m.orders.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer cur.Close(ctx)

	var orders []domain.Order
	for cur.Next(ctx) {
		var doc orderDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode order: %w", err)
		}
		order, err := fromOrderDoc(&doc)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("order cursor failed: %w", err)
	}
	return orders, nil
}

func (m *mongoOrderRepository) SetPaymentResult(ctx context.Context, id string, result *domain.PaymentResult) error {
	update := bson.M{
		"$set": bson.M{
			"payment_result": toPaymentResultDoc(result),
			"updated_at":     time.Now(),
		},
	}
	res, err := m.orders.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to set payment result: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (m *mongoOrderRepository) SetPaid(ctx context.Context, id string, paidAt time.Time, result *domain.PaymentResult) error {
	update := bson.M{
		"$set": bson.M{
			"is_paid":        true,
			"paid_at":        paidAt,
			"payment_result": toPaymentResultDoc(result),
			"updated_at":     time.Now(),
		},
	}
	res, err := m.orders.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to mark order paid: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (m *mongoOrderRepository) UserEmail(ctx context.Context, userID string) (string, error) {
	var doc userDoc
	err := m.users.FindOne(ctx, bson.M{"_id": userID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("failed to get user: %w", err)
	}
	return doc.Email, nil
}

func (m *mongoOrderRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "is_paid", Value: 1}}},
	}
	_, err := m.orders.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func toOrderDoc(o *domain.Order) *orderDoc {
	items := make([]orderItemDoc, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, orderItemDoc{
			ClientID:     it.ClientID,
			ProductID:    it.ProductID,
			Name:         it.Name,
			Slug:         it.Slug,
			Image:        it.Image,
			Color:        it.Color,
			Size:         it.Size,
			Price:        it.Price.String(),
			Quantity:     it.Quantity,
			CountInStock: it.CountInStock,
		})
	}
	return &orderDoc{
		ID:     o.ID,
		UserID: o.UserID,
		Items:  items,
		ShippingAddress: addressDoc{
			FullName:   o.ShippingAddress.FullName,
			Street:     o.ShippingAddress.Street,
			City:       o.ShippingAddress.City,
			Province:   o.ShippingAddress.Province,
			PostalCode: o.ShippingAddress.PostalCode,
			Country:    o.ShippingAddress.Country,
			Phone:      o.ShippingAddress.Phone,
		},
		PaymentMethod:        o.PaymentMethod,
		ItemsPrice:           o.ItemsPrice.String(),
		ShippingPrice:        o.ShippingPrice.String(),
		TaxPrice:             o.TaxPrice.String(),
		TotalPrice:           o.TotalPrice.String(),
		ExpectedDeliveryDate: o.ExpectedDeliveryDate,
		IsPaid:               o.IsPaid,
		PaidAt:               o.PaidAt,
		PaymentResult:        toPaymentResultDoc(o.PaymentResult),
		CreatedAt:            o.CreatedAt,
		UpdatedAt:            o.UpdatedAt,
	}
}

func fromOrderDoc(doc *orderDoc) (*domain.Order, error) {
	itemsPrice, err := decimal.NewFromString(doc.ItemsPrice)
	if err != nil {
		return nil, fmt.Errorf("invalid items price on order %s: %w", doc.ID, err)
	}
	shippingPrice, err := decimal.NewFromString(doc.ShippingPrice)
	if err != nil {
		return nil, fmt.Errorf("invalid shipping price on order %s: %w", doc.ID, err)
	}
	taxPrice, err := decimal.NewFromString(doc.TaxPrice)
	if err != nil {
		return nil, fmt.Errorf("invalid tax price on order %s: %w", doc.ID, err)
	}
	totalPrice, err := decimal.NewFromString(doc.TotalPrice)
	if err != nil {
		return nil, fmt.Errorf("invalid total price on order %s: %w", doc.ID, err)
	}

	items := make([]domain.OrderItem, 0, len(doc.Items))
	for _, it := range doc.Items {
		price, err := decimal.NewFromString(it.Price)
		if err != nil {
			return nil, fmt.Errorf("invalid item price on order %s: %w", doc.ID, err)
		}
		items = append(items, domain.OrderItem{
			ClientID:     it.ClientID,
			ProductID:    it.ProductID,
			Name:         it.Name,
			Slug:         it.Slug,
			Image:        it.Image,
			Color:        it.Color,
			Size:         it.Size,
			Price:        price,
			Quantity:     it.Quantity,
			CountInStock: it.CountInStock,
		})
	}

	order := &domain.Order{
		ID:     doc.ID,
		UserID: doc.UserID,
		Items:  items,
		ShippingAddress: domain.ShippingAddress{
			FullName:   doc.ShippingAddress.FullName,
			Street:     doc.ShippingAddress.Street,
			City:       doc.ShippingAddress.City,
			Province:   doc.ShippingAddress.Province,
			PostalCode: doc.ShippingAddress.PostalCode,
			Country:    doc.ShippingAddress.Country,
			Phone:      doc.ShippingAddress.Phone,
		},
		PaymentMethod:        doc.PaymentMethod,
		ItemsPrice:           itemsPrice,
		ShippingPrice:        shippingPrice,
		TaxPrice:             taxPrice,
		TotalPrice:           totalPrice,
		ExpectedDeliveryDate: doc.ExpectedDeliveryDate,
		IsPaid:               doc.IsPaid,
		PaidAt:               doc.PaidAt,
		CreatedAt:            doc.CreatedAt,
		UpdatedAt:            doc.UpdatedAt,
	}
	if doc.PaymentResult != nil {
		order.PaymentResult = &domain.PaymentResult{
			ID:           doc.PaymentResult.ID,
			Status:       doc.PaymentResult.Status,
			EmailAddress: doc.PaymentResult.EmailAddress,
			PricePaid:    doc.PaymentResult.PricePaid,
		}
	}
	return order, nil
}

func toPaymentResultDoc(pr *domain.PaymentResult) *paymentResultDoc {
	if pr == nil {
		return nil
	}
	return &paymentResultDoc{
		ID:           pr.ID,
		Status:       pr.Status,
		EmailAddress: pr.EmailAddress,
		PricePaid:    pr.PricePaid,
	}
}
