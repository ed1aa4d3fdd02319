package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Code        string             `bson:"code" json:"code"`
	Barcode     string             `bson:"barcode" json:"barcode"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Price       decimal.Decimal    `bson:"price" json:"price"`
	Image       string             `bson:"image" json:"image"`
	Stock       int                `bson:"stock" json:"stock"`
	StockAlert  int                `bson:"stock_alert" json:"stock_alert"`
	Views       int                `bson:"views" json:"views"`
	Category    primitive.ObjectID `bson:"category" json:"category"`
	Brand       primitive.ObjectID `bson:"brand" json:"brand"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// ProductView is a product with its category and brand references expanded.
type ProductView struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Code        string             `bson:"code" json:"code"`
	Barcode     string             `bson:"barcode" json:"barcode"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Price       decimal.Decimal    `bson:"price" json:"price"`
	Image       string             `bson:"image" json:"image"`
	Stock       int                `bson:"stock" json:"stock"`
	StockAlert  int                `bson:"stock_alert" json:"stock_alert"`
	Views       int                `bson:"views" json:"views"`
	Category    *Category          `bson:"category,omitempty" json:"category"`
	Brand       *Brand             `bson:"brand,omitempty" json:"brand"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

func (p ProductView) IsLowStock() bool {
	return p.Stock < p.StockAlert
}

func (p Product) Snapshot() ProductSnapshot {
	return ProductSnapshot{
		ProductID: p.ID.Hex(),
		Title:     p.Title,
		Price:     p.Price,
		Image:     p.Image,
	}
}

type CategoryCount struct {
	ID    primitive.ObjectID `bson:"_id" json:"id"`
	Slug  string             `bson:"slug" json:"slug"`
	Name  string             `bson:"name" json:"name"`
	Count int                `bson:"count" json:"count"`
}
