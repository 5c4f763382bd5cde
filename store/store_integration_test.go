package store_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/Kariqs/farmkart-api/initializers"
	"github.com/Kariqs/farmkart-api/models"
	"github.com/Kariqs/farmkart-api/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupStore(t *testing.T) *store.Store {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}
	ctx := context.Background()

	postgres, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:14-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "testuser",
				"POSTGRES_PASSWORD": "testpass",
				"POSTGRES_DB":       "farmkart",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err, "start postgres container")
	t.Cleanup(func() {
		if err := postgres.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	})

	host, err := postgres.Host(ctx)
	require.NoError(t, err)
	port, err := postgres.MappedPort(ctx, "5432")
	require.NoError(t, err)

	db, err := initializers.ConnectToDB(initializers.DatabaseConfig{
		Driver:          "postgres",
		URL:             fmt.Sprintf("postgres://testuser:testpass@%s:%s/farmkart?sslmode=disable", host, port.Port()),
		MaxOpenConns:    5,
		MaxIdleConns:    2,
		ConnMaxLifetime: time.Minute,
		ConnectAttempts: 3,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := initializers.CloseDB(db); err != nil {
			t.Logf("Failed to close database: %v", err)
		}
	})
	require.NoError(t, initializers.SyncDatabase(db))

	st := store.New(db)
	require.NoError(t, st.Ping(ctx))
	return st
}

func createUser(t *testing.T, st *store.Store, name string, role models.Role) *models.User {
	t.Helper()
	user := &models.User{Name: name, Email: name + "@example.com", Password: "hash", Role: role}
	require.NoError(t, st.CreateUser(context.Background(), user))
	return user
}

func createProduct(t *testing.T, st *store.Store, sellerID uint, name, price string) *models.Product {
	t.Helper()
	product := &models.Product{
		SellerID:      sellerID,
		Name:          name,
		Price:         decimal.RequireFromString(price),
		Description:   name + " from the farm",
		Type:          models.TypeVegetable,
		Specification: []models.Specification{{Name: "Origin", Value: "Limuru"}},
		Status:        models.InStock,
	}
	require.NoError(t, st.CreateProduct(context.Background(), product))
	return product
}

func TestStoreIntegration(t *testing.T) {
	st := setupStore(t)
	ctx := context.Background()

	seller := createUser(t, st, "sana", models.RoleSeller)
	buyer := createUser(t, st, "bo", models.RoleBuyer)

	t.Run("users", func(t *testing.T) {
		err := st.CreateUser(ctx, &models.User{Name: "dup", Email: "sana@example.com", Password: "x", Role: models.RoleBuyer})
		assert.ErrorIs(t, err, models.ErrValidation)

		found, err := st.FindUserByEmail(ctx, " SANA@example.com")
		require.NoError(t, err)
		assert.Equal(t, seller.ID, found.ID)

		_, err = st.FindUser(ctx, 9999)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	kale := createProduct(t, st, seller.ID, "Curly Kale", "120.50")
	createProduct(t, st, seller.ID, "100% Organic Leek", "80")

	t.Run("images", func(t *testing.T) {
		image := &models.Image{UserID: seller.ID, Hash: "abc"}
		require.NoError(t, st.CreateImage(ctx, image))

		byHash, err := st.FindImageByHash(ctx, seller.ID, "abc")
		require.NoError(t, err)
		assert.Equal(t, image.ID, byHash.ID)
		assert.False(t, byHash.Uploaded())
		_, err = st.FindImageByHash(ctx, buyer.ID, "abc")
		assert.ErrorIs(t, err, models.ErrNotFound)

		found, err := st.SetImageLocation(ctx, image.ID, "https://cdn.test/kale.png", "farmkart/kale")
		require.NoError(t, err)
		assert.True(t, found)
		found, err = st.SetImageLocation(ctx, 9999, "x", "y")
		require.NoError(t, err)
		assert.False(t, found)

		kale.ImageID = &image.ID
		require.NoError(t, st.SaveProduct(ctx, kale))
		refs, err := st.CountImageReferences(ctx, image.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), refs)

		detail, err := st.ProductDetail(ctx, kale.ID)
		require.NoError(t, err)
		require.NotNil(t, detail.Seller)
		assert.Equal(t, "sana", detail.Seller.Name)
		require.NotNil(t, detail.ImageURL())
		assert.Equal(t, "https://cdn.test/kale.png", *detail.ImageURL())
		assert.True(t, detail.Price.Equal(decimal.RequireFromString("120.5")))
		assert.Equal(t, "Limuru", detail.Specification[0].Value)
	})

	t.Run("search", func(t *testing.T) {
		found, err := st.ListProducts(ctx, models.ProductFilter{Name: "KALE"})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, kale.ID, found[0].ID)

		found, err = st.ListProducts(ctx, models.ProductFilter{Name: "100%"})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "100% Organic Leek", found[0].Name)

		found, err = st.ListProducts(ctx, models.ProductFilter{Name: "%"})
		require.NoError(t, err)
		assert.Len(t, found, 1, "wildcards in the query match literally")
	})

	t.Run("orders", func(t *testing.T) {
		orders := []models.Order{
			{BuyerID: buyer.ID, SellerID: seller.ID, ProductID: kale.ID, Quantity: 2, Status: models.OrderPending},
			{BuyerID: buyer.ID, SellerID: seller.ID, ProductID: kale.ID, Quantity: 1, Status: models.OrderPending},
		}
		require.NoError(t, st.CreateOrders(ctx, orders))
		require.NotZero(t, orders[1].ID)

		require.NoError(t, st.UpdateOrderStatus(ctx, orders[0].ID, models.OrderPending, models.OrderShipped))
		err := st.UpdateOrderStatus(ctx, orders[0].ID, models.OrderPending, models.OrderShipped)
		assert.ErrorIs(t, err, models.ErrInvalidTransition, "second writer loses")

		order, err := st.FindOrder(ctx, orders[0].ID)
		require.NoError(t, err)
		assert.Equal(t, models.OrderShipped, order.Status)

		lines, err := st.OrderLines(ctx, models.OrderLineFilter{SellerID: seller.ID})
		require.NoError(t, err)
		require.Len(t, lines, 2)
		assert.Equal(t, orders[1].ID, lines[0].OrderID, "newest first")
		assert.Equal(t, "bo", lines[0].BuyerName)
		assert.Equal(t, "sana", lines[0].SellerName)
		assert.Equal(t, models.TypeVegetable, lines[0].ProductType)
		require.NotNil(t, lines[0].ImageURL)
		assert.True(t, lines[1].Amount().Equal(decimal.RequireFromString("241")))

		shipped, err := st.OrderLines(ctx, models.OrderLineFilter{BuyerID: buyer.ID, Status: models.OrderShipped})
		require.NoError(t, err)
		assert.Len(t, shipped, 1)
	})

	t.Run("cart", func(t *testing.T) {
		_, err := st.AddCartItem(ctx, buyer.ID, kale.ID, 2)
		require.NoError(t, err)
		item, err := st.AddCartItem(ctx, buyer.ID, kale.ID, 3)
		require.NoError(t, err)
		assert.Equal(t, 5, item.Quantity)

		items, err := st.CartItems(ctx, buyer.ID)
		require.NoError(t, err)
		require.Len(t, items, 1)
		require.NotNil(t, items[0].Product)
		assert.Equal(t, "Curly Kale", items[0].Product.Name)

		require.NoError(t, st.ClearCart(ctx, buyer.ID))
		assert.ErrorIs(t, st.RemoveCartItem(ctx, buyer.ID, kale.ID), models.ErrNotFound)
	})

	t.Run("deleted products drop out of reports", func(t *testing.T) {
		leek := createProduct(t, st, seller.ID, "Leek", "10")
		require.NoError(t, st.CreateOrders(ctx, []models.Order{
			{BuyerID: buyer.ID, SellerID: seller.ID, ProductID: leek.ID, Quantity: 1, Status: models.OrderPending},
		}))
		require.NoError(t, st.DeleteProduct(ctx, leek.ID))
		assert.ErrorIs(t, st.DeleteProduct(ctx, leek.ID), models.ErrNotFound)

		lines, err := st.OrderLines(ctx, models.OrderLineFilter{BuyerID: buyer.ID})
		require.NoError(t, err)
		for _, line := range lines {
			assert.NotEqual(t, leek.ID, line.ProductID)
		}
	})
}
