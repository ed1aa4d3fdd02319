package repository

import (
	"context"

	"github.com/Sodstar/mountain-pos/internal/domain"
	"github.com/Sodstar/mountain-pos/internal/dto"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProductRepository interface {
	AddProduct(ctx context.Context, data domain.Product) (id primitive.ObjectID, err error)
	GetProducts(ctx context.Context, query domain.ProductQuery) (data []domain.ProductView, err error)
	GetProductByID(ctx context.Context, id string) (product domain.Product, err error)
	GetProductViewByID(ctx context.Context, id string) (product domain.ProductView, err error)
	UpdateProduct(ctx context.Context, data domain.Product) (err error)
	DeleteProduct(ctx context.Context, id string) (err error)
	IncrementViews(ctx context.Context, id string) (err error)
	GetCategoryCounts(ctx context.Context) (data []domain.CategoryCount, err error)
	ProductExists(ctx context.Context, field string, value string, excludeID primitive.ObjectID) (exists bool, err error)
}

type CategoryRepository interface {
	AddCategory(ctx context.Context, data domain.Category) (id primitive.ObjectID, err error)
	GetCategories(ctx context.Context) (data []domain.Category, err error)
	GetCategoryByID(ctx context.Context, id string) (category domain.Category, err error)
	GetCategoryBySlug(ctx context.Context, slug string) (category domain.Category, err error)
	UpdateCategory(ctx context.Context, data domain.Category) (err error)
	DeleteCategory(ctx context.Context, id string) (err error)
	CategoryExists(ctx context.Context, field string, value string, excludeID primitive.ObjectID) (exists bool, err error)
}

type BrandRepository interface {
	AddBrand(ctx context.Context, data domain.Brand) (id primitive.ObjectID, err error)
	GetBrands(ctx context.Context) (data []domain.Brand, err error)
	GetBrandByID(ctx context.Context, id string) (brand domain.Brand, err error)
	GetBrandBySlug(ctx context.Context, slug string) (brand domain.Brand, err error)
	UpdateBrand(ctx context.Context, data domain.Brand) (err error)
	DeleteBrand(ctx context.Context, id string) (err error)
	BrandExists(ctx context.Context, field string, value string, excludeID primitive.ObjectID) (exists bool, err error)
}

type DriverRepository interface {
	AddDriver(ctx context.Context, data domain.Driver) (id primitive.ObjectID, err error)
	GetDrivers(ctx context.Context) (data []domain.Driver, err error)
	GetDriverByID(ctx context.Context, id string) (driver domain.Driver, err error)
	UpdateDriver(ctx context.Context, data domain.Driver) (err error)
	DeleteDriver(ctx context.Context, id string) (err error)
	DriverExists(ctx context.Context, field string, value string, excludeID primitive.ObjectID) (exists bool, err error)
}

type UserRepository interface {
	AddUser(ctx context.Context, data domain.User) (id primitive.ObjectID, err error)
	GetUsers(ctx context.Context) (data []domain.User, err error)
	GetUserByID(ctx context.Context, id string) (user domain.User, err error)
	UpdateUser(ctx context.Context, data domain.User) (err error)
	UpdateUserRole(ctx context.Context, id string, role domain.Role) (err error)
	UpdateUserPassword(ctx context.Context, id string, hashedPassword string) (err error)
	DeleteUser(ctx context.Context, id string) (err error)
	UserExists(ctx context.Context, field string, value string, excludeID primitive.ObjectID) (exists bool, err error)
}

type CartRepository interface {
	GetCart(ctx context.Context, sessionID string) (cart *domain.Cart, err error)
	SaveCart(ctx context.Context, sessionID string, cart *domain.Cart) (err error)
	DeleteCart(ctx context.Context, sessionID string) (err error)
}

type SearchRepository interface {
	IndexProduct(ctx context.Context, data dto.ProductDocument) (err error)
	DeleteProduct(ctx context.Context, id string) (err error)
	SearchProducts(ctx context.Context, query string, limit int) (data []dto.ProductDocument, err error)
}
