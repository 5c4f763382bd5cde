package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Kariqs/farmkart-api/assets"
	"github.com/Kariqs/farmkart-api/models"
	"github.com/shopspring/decimal"
)

// memStore is an in-memory stand-in for the gorm store.
type memStore struct {
	mu       sync.Mutex
	nextID   uint
	clock    time.Time
	users    map[uint]models.User
	products map[uint]models.Product
	images   map[uint]models.Image
	orders   map[uint]models.Order
	cart     map[[2]uint]models.CartItem

	createOrdersErr error
	saveProductErr  error
}

func newMemStore() *memStore {
	return &memStore{
		clock:    time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
		users:    map[uint]models.User{},
		products: map[uint]models.Product{},
		images:   map[uint]models.Image{},
		orders:   map[uint]models.Order{},
		cart:     map[[2]uint]models.CartItem{},
	}
}

func (m *memStore) id() uint {
	m.nextID++
	return m.nextID
}

func (m *memStore) tick() time.Time {
	m.clock = m.clock.Add(time.Minute)
	return m.clock
}

func notFound(what string, id uint) error {
	return fmt.Errorf("%w: %s %d", models.ErrNotFound, what, id)
}

func (m *memStore) CreateUser(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email {
			return fmt.Errorf("%w: email already in use", models.ErrValidation)
		}
	}
	user.ID = m.id()
	user.CreatedAt = m.tick()
	m.users[user.ID] = *user
	return nil
}

func (m *memStore) FindUser(_ context.Context, id uint) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, notFound("user", id)
	}
	return &u, nil
}

func (m *memStore) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, fmt.Errorf("%w: user by email", models.ErrNotFound)
}

func (m *memStore) CreateProduct(_ context.Context, product *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	product.ID = m.id()
	product.CreatedAt = m.tick()
	m.products[product.ID] = *product
	return nil
}

func (m *memStore) FindProduct(_ context.Context, id uint) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, notFound("product", id)
	}
	return &p, nil
}

func (m *memStore) withImage(p models.Product) models.Product {
	if p.ImageID != nil {
		if img, ok := m.images[*p.ImageID]; ok {
			p.Image = &img
		}
	}
	return p
}

func (m *memStore) ProductDetail(_ context.Context, id uint) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, notFound("product", id)
	}
	p = m.withImage(p)
	if seller, ok := m.users[p.SellerID]; ok {
		p.Seller = &seller
	}
	return &p, nil
}

func (m *memStore) SaveProduct(_ context.Context, product *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveProductErr != nil {
		return m.saveProductErr
	}
	if _, ok := m.products[product.ID]; !ok {
		return notFound("product", product.ID)
	}
	stored := *product
	stored.Seller, stored.Image = nil, nil
	m.products[product.ID] = stored
	return nil
}

func (m *memStore) DeleteProduct(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[id]; !ok {
		return notFound("product", id)
	}
	delete(m.products, id)
	return nil
}

func (m *memStore) ListProducts(_ context.Context, filter models.ProductFilter) ([]models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Product{}
	for _, p := range m.products {
		if filter.SellerID != 0 && p.SellerID != filter.SellerID {
			continue
		}
		if filter.Type != "" && p.Type != filter.Type {
			continue
		}
		if filter.Name != "" && !containsFold(p.Name, filter.Name) {
			continue
		}
		out = append(out, m.withImage(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (m *memStore) CreateImage(_ context.Context, image *models.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	image.ID = m.id()
	image.CreatedAt = m.tick()
	m.images[image.ID] = *image
	return nil
}

func (m *memStore) FindImage(_ context.Context, id uint) (*models.Image, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	img, ok := m.images[id]
	if !ok {
		return nil, notFound("image", id)
	}
	return &img, nil
}

func (m *memStore) FindImageByHash(_ context.Context, userID uint, hash string) (*models.Image, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var found *models.Image
	for _, img := range m.images {
		if img.UserID == userID && img.Hash == hash && (found == nil || img.ID < found.ID) {
			img := img
			found = &img
		}
	}
	if found == nil {
		return nil, fmt.Errorf("%w: image by hash", models.ErrNotFound)
	}
	return found, nil
}

func (m *memStore) SetImageLocation(_ context.Context, id uint, url, publicID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	img, ok := m.images[id]
	if !ok {
		return false, nil
	}
	img.URL, img.PublicID = &url, &publicID
	m.images[id] = img
	return true, nil
}

func (m *memStore) DeleteImage(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.images, id)
	return nil
}

func (m *memStore) CountImageReferences(_ context.Context, imageID uint) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, p := range m.products {
		if p.ImageID != nil && *p.ImageID == imageID {
			n++
		}
	}
	return n, nil
}

func (m *memStore) CreateOrders(_ context.Context, orders []models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createOrdersErr != nil {
		return m.createOrdersErr
	}
	for i := range orders {
		orders[i].ID = m.id()
		orders[i].CreatedAt = m.tick()
		m.orders[orders[i].ID] = orders[i]
	}
	return nil
}

func (m *memStore) FindOrder(_ context.Context, id uint) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, notFound("order", id)
	}
	return &o, nil
}

func (m *memStore) UpdateOrderStatus(_ context.Context, id uint, from, to models.OrderStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok || o.Status != from {
		return fmt.Errorf("%w: order %d is no longer %s", models.ErrInvalidTransition, id, from)
	}
	o.Status = to
	m.orders[id] = o
	return nil
}

func (m *memStore) OrderLines(_ context.Context, filter models.OrderLineFilter) ([]models.OrderLine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	lines := []models.OrderLine{}
	for _, o := range m.orders {
		if filter.BuyerID != 0 && o.BuyerID != filter.BuyerID {
			continue
		}
		if filter.SellerID != 0 && o.SellerID != filter.SellerID {
			continue
		}
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		p, ok := m.products[o.ProductID]
		if !ok {
			continue
		}
		buyer, ok := m.users[o.BuyerID]
		if !ok {
			continue
		}
		seller, ok := m.users[o.SellerID]
		if !ok {
			continue
		}
		p = m.withImage(p)
		lines = append(lines, models.OrderLine{
			OrderID:              o.ID,
			BuyerID:              o.BuyerID,
			BuyerName:            buyer.Name,
			SellerID:             o.SellerID,
			SellerName:           seller.Name,
			ProductID:            p.ID,
			ProductName:          p.Name,
			ProductType:          p.Type,
			ProductSpecification: p.Specification,
			Price:                p.Price,
			ImageURL:             p.ImageURL(),
			Quantity:             o.Quantity,
			Status:               o.Status,
			CreatedAt:            o.CreatedAt,
		})
	}
	sort.Slice(lines, func(i, j int) bool {
		if !lines[i].CreatedAt.Equal(lines[j].CreatedAt) {
			return lines[i].CreatedAt.After(lines[j].CreatedAt)
		}
		return lines[i].OrderID > lines[j].OrderID
	})
	return lines, nil
}

func (m *memStore) AddCartItem(_ context.Context, buyerID, productID uint, quantity int) (*models.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := [2]uint{buyerID, productID}
	item, ok := m.cart[key]
	if ok {
		item.Quantity += quantity
	} else {
		item = models.CartItem{ID: m.id(), BuyerID: buyerID, ProductID: productID, Quantity: quantity}
	}
	m.cart[key] = item
	return &item, nil
}

func (m *memStore) CartItems(_ context.Context, buyerID uint) ([]models.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := []models.CartItem{}
	for key, item := range m.cart {
		if key[0] == buyerID {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (m *memStore) RemoveCartItem(_ context.Context, buyerID, productID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := [2]uint{buyerID, productID}
	if _, ok := m.cart[key]; !ok {
		return notFound("cart product", productID)
	}
	delete(m.cart, key)
	return nil
}

func (m *memStore) ClearCart(_ context.Context, buyerID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key := range m.cart {
		if key[0] == buyerID {
			delete(m.cart, key)
		}
	}
	return nil
}

func (m *memStore) orderCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.orders)
}

func (m *memStore) imageCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.images)
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// fakeAssets records uploads and deletes. When gate is set, uploads wait
// for it to be closed.
type fakeAssets struct {
	mu        sync.Mutex
	uploads   []assets.Object
	deleted   []string
	uploadErr error
	gate      chan struct{}
}

func (f *fakeAssets) Upload(ctx context.Context, obj assets.Object) (*assets.Asset, error) {
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	f.uploads = append(f.uploads, obj)
	key := obj.Folder + "/" + obj.PublicID
	return &assets.Asset{URL: "https://cdn.test/" + key, PublicID: key}, nil
}

func (f *fakeAssets) Delete(_ context.Context, publicID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, publicID)
	return nil
}

func (f *fakeAssets) deletedIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.deleted...)
}

func (f *fakeAssets) uploadCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.uploads)
}

// fixtures

func seedUser(t *testing.T, m *memStore, name string, role models.Role) *models.User {
	t.Helper()
	u := &models.User{Name: name, Email: strings.ToLower(name) + "@example.com", Role: role, Password: "x"}
	if err := m.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func seedProduct(t *testing.T, m *memStore, sellerID uint, name string, price int64) *models.Product {
	t.Helper()
	p := &models.Product{
		SellerID: sellerID,
		Name:     name,
		Price:    decimal.NewFromInt(price),
		Type:     models.TypeVegetable,
		Status:   models.InStock,
	}
	if err := m.CreateProduct(context.Background(), p); err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return p
}

func seedOrder(t *testing.T, m *memStore, buyerID uint, product *models.Product, qty int, status models.OrderStatus) models.Order {
	t.Helper()
	orders := []models.Order{{
		BuyerID:   buyerID,
		SellerID:  product.SellerID,
		ProductID: product.ID,
		Quantity:  qty,
		Status:    status,
	}}
	if err := m.CreateOrders(context.Background(), orders); err != nil {
		t.Fatalf("seed order: %v", err)
	}
	return orders[0]
}

func waitDone(t *testing.T, att *Attachment) UploadResult {
	t.Helper()
	select {
	case res := <-att.Done:
		return res
	case <-time.After(5 * time.Second):
		t.Fatal("upload did not finish")
		return UploadResult{}
	}
}
