package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/Sodstar/mountain-pos/internal/cache"
	"github.com/Sodstar/mountain-pos/internal/domain"
	"github.com/Sodstar/mountain-pos/internal/dto"
	"github.com/Sodstar/mountain-pos/pkg/errs"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var errStoreDown = errors.New("connection refused")

// MockCache serves reads from a MemoryCache and fails Invalidate while
// InvalidateErr is set.
type MockCache struct {
	*cache.MemoryCache
	InvalidateErr error
}

func (m *MockCache) Invalidate(ctx context.Context, tags ...string) error {
	if m.InvalidateErr != nil {
		return m.InvalidateErr
	}
	return m.MemoryCache.Invalidate(ctx, tags...)
}

// MockProductRepository keeps products in memory and applies ProductQuery the
// way the aggregation pipeline does, without expanding references.
type MockProductRepository struct {
	mu        sync.Mutex
	Products  []domain.Product
	GetErr    error
	ExistsErr error
	LastQuery domain.ProductQuery
	GetCalls  atomic.Int32
}

func (m *MockProductRepository) AddProduct(_ context.Context, data domain.Product) (primitive.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data.ID = primitive.NewObjectID()
	m.Products = append(m.Products, data)
	return data.ID, nil
}

func (m *MockProductRepository) GetProducts(_ context.Context, query domain.ProductQuery) ([]domain.ProductView, error) {
	m.GetCalls.Add(1)
	if m.GetErr != nil {
		return nil, m.GetErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastQuery = query

	result := make([]domain.ProductView, 0)
	for _, p := range m.Products {
		if query.CategoryID != nil && p.Category != *query.CategoryID {
			continue
		}
		if query.BrandID != nil && p.Brand != *query.BrandID {
			continue
		}
		if query.MinPrice != nil && p.Price.LessThan(*query.MinPrice) {
			continue
		}
		if query.MaxPrice != nil && p.Price.GreaterThan(*query.MaxPrice) {
			continue
		}
		if query.LowStock && p.Stock >= p.StockAlert {
			continue
		}
		result = append(result, toView(p))
	}

	switch query.OrderBy {
	case domain.OrderPriceAsc:
		sort.SliceStable(result, func(i, j int) bool { return result[i].Price.LessThan(result[j].Price) })
	case domain.OrderPriceDesc:
		sort.SliceStable(result, func(i, j int) bool { return result[i].Price.GreaterThan(result[j].Price) })
	case domain.OrderTitleAsc:
		sort.SliceStable(result, func(i, j int) bool { return result[i].Title < result[j].Title })
	}

	if query.Limit > 0 && len(result) > query.Limit {
		result = result[:query.Limit]
	}

	return result, nil
}

func (m *MockProductRepository) find(id string) (int, error) {
	for i, p := range m.Products {
		if p.ID.Hex() == id {
			return i, nil
		}
	}
	return -1, errs.ErrNotFound
}

func (m *MockProductRepository) GetProductByID(_ context.Context, id string) (domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i, err := m.find(id)
	if err != nil {
		return domain.Product{}, err
	}
	return m.Products[i], nil
}

func (m *MockProductRepository) GetProductViewByID(ctx context.Context, id string) (domain.ProductView, error) {
	p, err := m.GetProductByID(ctx, id)
	if err != nil {
		return domain.ProductView{}, err
	}
	return toView(p), nil
}

func (m *MockProductRepository) UpdateProduct(_ context.Context, data domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i, err := m.find(data.ID.Hex())
	if err != nil {
		return err
	}
	m.Products[i] = data
	return nil
}

func (m *MockProductRepository) DeleteProduct(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i, err := m.find(id)
	if err != nil {
		return err
	}
	m.Products = append(m.Products[:i], m.Products[i+1:]...)
	return nil
}

func (m *MockProductRepository) IncrementViews(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i, err := m.find(id)
	if err != nil {
		return err
	}
	m.Products[i].Views++
	return nil
}

func (m *MockProductRepository) GetCategoryCounts(_ context.Context) ([]domain.CategoryCount, error) {
	m.GetCalls.Add(1)
	if m.GetErr != nil {
		return nil, m.GetErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	counts := map[primitive.ObjectID]int{}
	for _, p := range m.Products {
		counts[p.Category]++
	}

	result := make([]domain.CategoryCount, 0, len(counts))
	for id, count := range counts {
		result = append(result, domain.CategoryCount{ID: id, Count: count})
	}
	return result, nil
}

func (m *MockProductRepository) ProductExists(_ context.Context, field string, value string, excludeID primitive.ObjectID) (bool, error) {
	if m.ExistsErr != nil {
		return false, m.ExistsErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range m.Products {
		if p.ID == excludeID {
			continue
		}
		switch {
		case field == "code" && p.Code == value,
			field == "barcode" && p.Barcode == value,
			field == "title" && p.Title == value:
			return true, nil
		}
	}
	return false, nil
}

func toView(p domain.Product) domain.ProductView {
	return domain.ProductView{
		ID:          p.ID,
		Code:        p.Code,
		Barcode:     p.Barcode,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Image:       p.Image,
		Stock:       p.Stock,
		StockAlert:  p.StockAlert,
		Views:       p.Views,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// MockCategoryRepository implements repository.CategoryRepository in memory.
type MockCategoryRepository struct {
	mu         sync.Mutex
	Categories []domain.Category
	SlugErr    error
	SlugCalls  atomic.Int32
	ListCalls  atomic.Int32
}

func (m *MockCategoryRepository) AddCategory(_ context.Context, data domain.Category) (primitive.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data.ID = primitive.NewObjectID()
	m.Categories = append(m.Categories, data)
	return data.ID, nil
}

func (m *MockCategoryRepository) GetCategories(_ context.Context) ([]domain.Category, error) {
	m.ListCalls.Add(1)

	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]domain.Category{}, m.Categories...), nil
}

func (m *MockCategoryRepository) GetCategoryByID(_ context.Context, id string) (domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, c := range m.Categories {
		if c.ID.Hex() == id {
			return c, nil
		}
	}
	return domain.Category{}, errs.ErrNotFound
}

func (m *MockCategoryRepository) GetCategoryBySlug(_ context.Context, slug string) (domain.Category, error) {
	m.SlugCalls.Add(1)
	if m.SlugErr != nil {
		return domain.Category{}, m.SlugErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, c := range m.Categories {
		if c.Slug == slug {
			return c, nil
		}
	}
	return domain.Category{}, errs.ErrNotFound
}

func (m *MockCategoryRepository) UpdateCategory(_ context.Context, data domain.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, c := range m.Categories {
		if c.ID == data.ID {
			m.Categories[i] = data
			return nil
		}
	}
	return errs.ErrNotFound
}

func (m *MockCategoryRepository) DeleteCategory(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, c := range m.Categories {
		if c.ID.Hex() == id {
			m.Categories = append(m.Categories[:i], m.Categories[i+1:]...)
			return nil
		}
	}
	return errs.ErrNotFound
}

func (m *MockCategoryRepository) CategoryExists(_ context.Context, field string, value string, excludeID primitive.ObjectID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, c := range m.Categories {
		if c.ID == excludeID {
			continue
		}
		if (field == "name" && c.Name == value) || (field == "slug" && c.Slug == value) {
			return true, nil
		}
	}
	return false, nil
}

// MockBrandRepository implements repository.BrandRepository in memory.
type MockBrandRepository struct {
	mu        sync.Mutex
	Brands    []domain.Brand
	SlugErr   error
	SlugCalls atomic.Int32
}

func (m *MockBrandRepository) AddBrand(_ context.Context, data domain.Brand) (primitive.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data.ID = primitive.NewObjectID()
	m.Brands = append(m.Brands, data)
	return data.ID, nil
}

func (m *MockBrandRepository) GetBrands(_ context.Context) ([]domain.Brand, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]domain.Brand{}, m.Brands...), nil
}

func (m *MockBrandRepository) GetBrandByID(_ context.Context, id string) (domain.Brand, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, b := range m.Brands {
		if b.ID.Hex() == id {
			return b, nil
		}
	}
	return domain.Brand{}, errs.ErrNotFound
}

func (m *MockBrandRepository) GetBrandBySlug(_ context.Context, slug string) (domain.Brand, error) {
	m.SlugCalls.Add(1)
	if m.SlugErr != nil {
		return domain.Brand{}, m.SlugErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, b := range m.Brands {
		if b.Slug == slug {
			return b, nil
		}
	}
	return domain.Brand{}, errs.ErrNotFound
}

func (m *MockBrandRepository) UpdateBrand(_ context.Context, data domain.Brand) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, b := range m.Brands {
		if b.ID == data.ID {
			m.Brands[i] = data
			return nil
		}
	}
	return errs.ErrNotFound
}

func (m *MockBrandRepository) DeleteBrand(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, b := range m.Brands {
		if b.ID.Hex() == id {
			m.Brands = append(m.Brands[:i], m.Brands[i+1:]...)
			return nil
		}
	}
	return errs.ErrNotFound
}

func (m *MockBrandRepository) BrandExists(_ context.Context, field string, value string, excludeID primitive.ObjectID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, b := range m.Brands {
		if b.ID == excludeID {
			continue
		}
		if (field == "name" && b.Name == value) || (field == "slug" && b.Slug == value) {
			return true, nil
		}
	}
	return false, nil
}

// MockDriverRepository implements repository.DriverRepository in memory.
type MockDriverRepository struct {
	Drivers     []domain.Driver
	ExistsCalls []primitive.ObjectID
}

func (m *MockDriverRepository) AddDriver(_ context.Context, data domain.Driver) (primitive.ObjectID, error) {
	data.ID = primitive.NewObjectID()
	m.Drivers = append(m.Drivers, data)
	return data.ID, nil
}

func (m *MockDriverRepository) GetDrivers(_ context.Context) ([]domain.Driver, error) {
	return append([]domain.Driver{}, m.Drivers...), nil
}

func (m *MockDriverRepository) GetDriverByID(_ context.Context, id string) (domain.Driver, error) {
	for _, d := range m.Drivers {
		if d.ID.Hex() == id {
			return d, nil
		}
	}
	return domain.Driver{}, errs.ErrNotFound
}

func (m *MockDriverRepository) UpdateDriver(_ context.Context, data domain.Driver) error {
	for i, d := range m.Drivers {
		if d.ID == data.ID {
			m.Drivers[i] = data
			return nil
		}
	}
	return errs.ErrNotFound
}

func (m *MockDriverRepository) DeleteDriver(_ context.Context, id string) error {
	for i, d := range m.Drivers {
		if d.ID.Hex() == id {
			m.Drivers = append(m.Drivers[:i], m.Drivers[i+1:]...)
			return nil
		}
	}
	return errs.ErrNotFound
}

func (m *MockDriverRepository) DriverExists(_ context.Context, field string, value string, excludeID primitive.ObjectID) (bool, error) {
	m.ExistsCalls = append(m.ExistsCalls, excludeID)
	for _, d := range m.Drivers {
		if d.ID == excludeID {
			continue
		}
		if (field == "pin" && d.PIN == value) || (field == "vehicle" && d.Vehicle == value) {
			return true, nil
		}
	}
	return false, nil
}

// MockUserRepository implements repository.UserRepository in memory.
type MockUserRepository struct {
	Users []domain.User
}

func (m *MockUserRepository) AddUser(_ context.Context, data domain.User) (primitive.ObjectID, error) {
	data.ID = primitive.NewObjectID()
	m.Users = append(m.Users, data)
	return data.ID, nil
}

func (m *MockUserRepository) GetUsers(_ context.Context) ([]domain.User, error) {
	return append([]domain.User{}, m.Users...), nil
}

func (m *MockUserRepository) index(id string) int {
	for i, u := range m.Users {
		if u.ID.Hex() == id {
			return i
		}
	}
	return -1
}

func (m *MockUserRepository) GetUserByID(_ context.Context, id string) (domain.User, error) {
	if i := m.index(id); i >= 0 {
		return m.Users[i], nil
	}
	return domain.User{}, errs.ErrNotFound
}

func (m *MockUserRepository) UpdateUser(_ context.Context, data domain.User) error {
	if i := m.index(data.ID.Hex()); i >= 0 {
		m.Users[i] = data
		return nil
	}
	return errs.ErrNotFound
}

func (m *MockUserRepository) UpdateUserRole(_ context.Context, id string, role domain.Role) error {
	if i := m.index(id); i >= 0 {
		m.Users[i].Role = role
		return nil
	}
	return errs.ErrNotFound
}

func (m *MockUserRepository) UpdateUserPassword(_ context.Context, id string, hashedPassword string) error {
	if i := m.index(id); i >= 0 {
		m.Users[i].HashedPassword = hashedPassword
		return nil
	}
	return errs.ErrNotFound
}

func (m *MockUserRepository) DeleteUser(_ context.Context, id string) error {
	if i := m.index(id); i >= 0 {
		m.Users = append(m.Users[:i], m.Users[i+1:]...)
		return nil
	}
	return errs.ErrNotFound
}

func (m *MockUserRepository) UserExists(_ context.Context, field string, value string, excludeID primitive.ObjectID) (bool, error) {
	for _, u := range m.Users {
		if u.ID != excludeID && field == "email" && u.Email == value {
			return true, nil
		}
	}
	return false, nil
}

// MockCartRepository implements repository.CartRepository in memory.
type MockCartRepository struct {
	Carts   map[string]domain.Cart
	SaveErr error
}

func (m *MockCartRepository) GetCart(_ context.Context, sessionID string) (*domain.Cart, error) {
	cart := m.Carts[sessionID]
	cart.Lines = append([]domain.CartLine(nil), cart.Lines...)
	return &cart, nil
}

func (m *MockCartRepository) SaveCart(_ context.Context, sessionID string, cart *domain.Cart) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	if m.Carts == nil {
		m.Carts = map[string]domain.Cart{}
	}
	m.Carts[sessionID] = *cart
	return nil
}

func (m *MockCartRepository) DeleteCart(_ context.Context, sessionID string) error {
	delete(m.Carts, sessionID)
	return nil
}

// MockSearchRepository implements repository.SearchRepository.
type MockSearchRepository struct {
	Indexed   []dto.ProductDocument
	Deleted   []string
	Results   []dto.ProductDocument
	SearchErr error
	LastLimit int
}

func (m *MockSearchRepository) IndexProduct(_ context.Context, data dto.ProductDocument) error {
	m.Indexed = append(m.Indexed, data)
	return nil
}

func (m *MockSearchRepository) DeleteProduct(_ context.Context, id string) error {
	m.Deleted = append(m.Deleted, id)
	return nil
}

func (m *MockSearchRepository) SearchProducts(_ context.Context, _ string, limit int) ([]dto.ProductDocument, error) {
	m.LastLimit = limit
	return m.Results, m.SearchErr
}

// MockEventPublisher records published events.
type MockEventPublisher struct {
	Messages []dto.KafkaMessage
	Keys     []string
	Err      error
}

func (m *MockEventPublisher) Publish(_ context.Context, key string, msg dto.KafkaMessage) error {
	m.Keys = append(m.Keys, key)
	m.Messages = append(m.Messages, msg)
	return m.Err
}

// MockNotifier records sent alerts.
type MockNotifier struct {
	Subjects []string
	Bodies   []string
}

func (m *MockNotifier) Notify(_ context.Context, subject string, body string) error {
	m.Subjects = append(m.Subjects, subject)
	m.Bodies = append(m.Bodies, body)
	return nil
}
