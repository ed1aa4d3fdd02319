package service

import (
	"context"
	"io"

	"github.com/Sodstar/mountain-pos/internal/domain"
	"github.com/Sodstar/mountain-pos/internal/dto"
)

type ProductService interface {
	GetFilteredProducts(ctx context.Context, filter domain.ProductFilter) (data []domain.ProductView, err error)
	GetCachedProducts(ctx context.Context, limit int) (data []domain.ProductView, err error)
	GetLowStockProducts(ctx context.Context) (data []domain.ProductView, err error)
	GetProductByID(ctx context.Context, id string) (data domain.ProductView, err error)
	GetCategoryCounts(ctx context.Context) (data []domain.CategoryCount, err error)
	AddProduct(ctx context.Context, data dto.ProductRequest) (id string, err error)
	UpdateProduct(ctx context.Context, id string, data dto.ProductRequest) (err error)
	DeleteProduct(ctx context.Context, id string) (err error)
	IncrementViews(ctx context.Context, id string) (err error)
	ExportProducts(ctx context.Context, w io.Writer) (err error)
}

type CategoryService interface {
	GetCategories(ctx context.Context) (data []domain.Category, err error)
	GetCategoryByID(ctx context.Context, id string) (data domain.Category, err error)
	AddCategory(ctx context.Context, data dto.CategoryRequest) (id string, err error)
	UpdateCategory(ctx context.Context, id string, data dto.CategoryRequest) (err error)
	DeleteCategory(ctx context.Context, id string) (err error)
}

type BrandService interface {
	GetBrands(ctx context.Context) (data []domain.Brand, err error)
	GetBrandByID(ctx context.Context, id string) (data domain.Brand, err error)
	AddBrand(ctx context.Context, data dto.BrandRequest) (id string, err error)
	UpdateBrand(ctx context.Context, id string, data dto.BrandRequest) (err error)
	DeleteBrand(ctx context.Context, id string) (err error)
}

type DriverService interface {
	GetDrivers(ctx context.Context) (data []domain.Driver, err error)
	GetDriverByID(ctx context.Context, id string) (data domain.Driver, err error)
	AddDriver(ctx context.Context, data dto.DriverRequest) (id string, err error)
	UpdateDriver(ctx context.Context, id string, data dto.DriverRequest) (err error)
	DeleteDriver(ctx context.Context, id string) (err error)
}

type UserService interface {
	GetUsers(ctx context.Context) (data []dto.UserResponse, err error)
	GetUserByID(ctx context.Context, id string) (data dto.UserResponse, err error)
	AddUser(ctx context.Context, data dto.UserRequest) (id string, err error)
	UpdateUser(ctx context.Context, id string, data dto.UserUpdateRequest) (err error)
	UpdateUserRole(ctx context.Context, id string, data dto.UserRoleRequest) (err error)
	UpdateUserPassword(ctx context.Context, id string, data dto.UserPasswordRequest) (err error)
	DeleteUser(ctx context.Context, id string) (err error)
}

type CartService interface {
	GetCart(ctx context.Context, sessionID string) (cart *domain.Cart, err error)
	AddItem(ctx context.Context, sessionID string, productID string) (cart *domain.Cart, err error)
	RemoveItem(ctx context.Context, sessionID string, productID string) (cart *domain.Cart, err error)
	ZeroItem(ctx context.Context, sessionID string, productID string) (cart *domain.Cart, err error)
	ClearCart(ctx context.Context, sessionID string) (err error)
}

type SearchService interface {
	SearchProducts(ctx context.Context, query string, limit int) (data []dto.ProductDocument, err error)
	HandleEvent(ctx context.Context, msg dto.KafkaMessage) (err error)
	ConsumeEvent(ctx context.Context)
}

type AlertService interface {
	NotifyLowStock(ctx context.Context) (err error)
}
