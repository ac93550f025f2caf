package address

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/shopease/internal/domain"
	"github.com/vladislavdragonenkov/shopease/internal/storage/memory"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	return NewService(memory.NewAddressRepository(), nil)
}

func customer(id string) domain.AuthContext {
	return domain.AuthContext{UserID: id, Role: domain.RoleCustomer}
}

func validAddress() domain.Address {
	return domain.Address{
		RecipientName: "Ivan Petrov",
		Phone:         "+7 900 000-00-00",
		Line1:         "Lenina 1",
		City:          "Moscow",
		PostalCode:    "101000",
		Country:       "RU",
	}
}

func TestCreateFillsIdentityAndTimestamps(t *testing.T) {
	svc := newTestService(t)
	auth := customer("user-1")

	addr, err := svc.Create(auth, validAddress())
	require.NoError(t, err)
	assert.NotEmpty(t, addr.ID)
	assert.Equal(t, "user-1", addr.UserID)
	assert.False(t, addr.CreatedAt.IsZero())
	assert.False(t, addr.UpdatedAt.IsZero())
}

func TestCreateRejectsIncompleteAddress(t *testing.T) {
	svc := newTestService(t)
	auth := customer("user-1")

	incomplete := validAddress()
	incomplete.Line1 = "   "
	_, err := svc.Create(auth, incomplete)
	assert.ErrorIs(t, err, domain.ErrAddressIncomplete)

	addresses, err := svc.List(auth)
	require.NoError(t, err)
	assert.Empty(t, addresses)
}

func TestDefaultFlagIsExclusive(t *testing.T) {
	svc := newTestService(t)
	auth := customer("user-1")

	first := validAddress()
	first.IsDefault = true
	created, err := svc.Create(auth, first)
	require.NoError(t, err)

	second := validAddress()
	second.City = "Kazan"
	second.IsDefault = true
	_, err = svc.Create(auth, second)
	require.NoError(t, err)

	addresses, err := svc.List(auth)
	require.NoError(t, err)
	require.Len(t, addresses, 2)
	assert.True(t, addresses[0].IsDefault)
	assert.Equal(t, "Kazan", addresses[0].City)
	assert.False(t, addresses[1].IsDefault)
	assert.Equal(t, created.ID, addresses[1].ID)
}

func TestUpdateMasksForeignAddress(t *testing.T) {
	svc := newTestService(t)
	owner := customer("user-1")
	stranger := customer("user-2")

	created, err := svc.Create(owner, validAddress())
	require.NoError(t, err)

	input := validAddress()
	input.ID = created.ID
	input.City = "Kazan"

	// Чужой адрес неотличим от несуществующего.
	_, err = svc.Update(stranger, input)
	assert.ErrorIs(t, err, domain.ErrAddressNotFound)
	assert.ErrorIs(t, svc.Delete(stranger, created.ID), domain.ErrAddressNotFound)

	updated, err := svc.Update(owner, input)
	require.NoError(t, err)
	assert.Equal(t, "Kazan", updated.City)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
}

func TestDeleteRemovesAddress(t *testing.T) {
	svc := newTestService(t)
	auth := customer("user-1")

	created, err := svc.Create(auth, validAddress())
	require.NoError(t, err)
	require.NoError(t, svc.Delete(auth, created.ID))

	addresses, err := svc.List(auth)
	require.NoError(t, err)
	assert.Empty(t, addresses)

	assert.ErrorIs(t, svc.Delete(auth, created.ID), domain.ErrAddressNotFound)
}

func TestAddressBookRequiresAuthentication(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.List(domain.AuthContext{})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	_, err = svc.Create(domain.AuthContext{}, validAddress())
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	_, err = svc.Update(domain.AuthContext{}, validAddress())
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	assert.ErrorIs(t, svc.Delete(domain.AuthContext{}, "a1"), domain.ErrUnauthenticated)
}
