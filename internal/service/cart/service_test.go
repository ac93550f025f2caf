package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/vladislavdragonenkov/shopease/internal/domain"
	"github.com/vladislavdragonenkov/shopease/internal/storage/memory"
)

func newTestService(t *testing.T) (Service, domain.CartRepository) {
	t.Helper()

	catalog := memory.NewCatalogRepository()
	catalog.PutProduct(domain.Product{ID: "p1", Name: "Sneakers", PriceMinor: 1000})
	catalog.PutProduct(domain.Product{ID: "p2", Name: "T-Shirt", PriceMinor: 500})
	catalog.PutVariant(domain.Variant{ID: "v1", ProductID: "p1", Name: "42", Stock: 10})

	carts := memory.NewCartRepository(catalog)
	return NewService(carts, catalog, nil), carts
}

func customer(id string) domain.AuthContext {
	return domain.AuthContext{UserID: id, Role: domain.RoleCustomer}
}

func TestAddItemMergesDuplicateLines(t *testing.T) {
	svc, _ := newTestService(t)
	auth := customer("user-1")

	require.NoError(t, svc.AddItem(auth, "p1", "v1", 2))
	require.NoError(t, svc.AddItem(auth, "p1", "v1", 3))

	view, err := svc.GetCart(auth, "user-1")
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, int32(5), view.Lines[0].Quantity)
}

func TestAddItemRejectsInvalidQuantity(t *testing.T) {
	svc, _ := newTestService(t)
	auth := customer("user-1")

	assert.ErrorIs(t, svc.AddItem(auth, "p1", "", 0), domain.ErrInvalidQuantity)
	assert.ErrorIs(t, svc.AddItem(auth, "p1", "", -3), domain.ErrInvalidQuantity)

	view, err := svc.GetCart(auth, "user-1")
	require.NoError(t, err)
	assert.Empty(t, view.Lines)
}

func TestAddItemUnknownProductOrVariant(t *testing.T) {
	svc, _ := newTestService(t)
	auth := customer("user-1")

	assert.ErrorIs(t, svc.AddItem(auth, "missing", "", 1), domain.ErrProductNotFound)
	assert.ErrorIs(t, svc.AddItem(auth, "p1", "missing", 1), domain.ErrVariantNotFound)
	// Вариант другого товара не принимается.
	assert.ErrorIs(t, svc.AddItem(auth, "p2", "v1", 1), domain.ErrVariantNotFound)
}

func TestAddItemConcurrentMerges(t *testing.T) {
	svc, _ := newTestService(t)
	auth := customer("user-1")

	var eg errgroup.Group
	for i := 0; i < 10; i++ {
		eg.Go(func() error {
			return svc.AddItem(auth, "p1", "", 1)
		})
	}
	require.NoError(t, eg.Wait())

	view, err := svc.GetCart(auth, "user-1")
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, int32(10), view.Lines[0].Quantity)
}

func TestGetCartTotal(t *testing.T) {
	svc, _ := newTestService(t)
	auth := customer("user-1")

	view, err := svc.GetCart(auth, "user-1")
	require.NoError(t, err)
	assert.Zero(t, view.TotalMinor)

	require.NoError(t, svc.AddItem(auth, "p1", "", 2))
	require.NoError(t, svc.AddItem(auth, "p2", "", 1))

	view, err = svc.GetCart(auth, "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2500), view.TotalMinor)
}

func TestGetCartOwnership(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetCart(domain.AuthContext{}, "user-1")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	_, err = svc.GetCart(customer("user-2"), "user-1")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.GetCart(domain.AuthContext{UserID: "admin-1", Role: domain.RoleAdmin}, "user-1")
	assert.NoError(t, err)
}

func TestSetQuantityAndRemove(t *testing.T) {
	svc, _ := newTestService(t)
	auth := customer("user-1")
	require.NoError(t, svc.AddItem(auth, "p1", "", 1))

	view, err := svc.GetCart(auth, "user-1")
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	lineID := view.Lines[0].ID

	require.NoError(t, svc.SetQuantity(auth, lineID, 4))
	assert.ErrorIs(t, svc.SetQuantity(auth, lineID, 0), domain.ErrInvalidQuantity)
	assert.ErrorIs(t, svc.SetQuantity(auth, "missing", 4), domain.ErrLineNotFound)

	// Чужая позиция выглядит как отсутствующая.
	assert.ErrorIs(t, svc.SetQuantity(customer("user-2"), lineID, 4), domain.ErrLineNotFound)

	require.NoError(t, svc.RemoveItem(auth, lineID))
	require.NoError(t, svc.RemoveItem(auth, lineID))

	view, err = svc.GetCart(auth, "user-1")
	require.NoError(t, err)
	assert.Empty(t, view.Lines)
}

func TestClearCart(t *testing.T) {
	svc, _ := newTestService(t)
	auth := customer("user-1")
	require.NoError(t, svc.AddItem(auth, "p1", "", 2))

	require.NoError(t, svc.Clear(auth))
	require.NoError(t, svc.Clear(auth))

	view, err := svc.GetCart(auth, "user-1")
	require.NoError(t, err)
	assert.Empty(t, view.Lines)
	assert.Zero(t, view.TotalMinor)
}
