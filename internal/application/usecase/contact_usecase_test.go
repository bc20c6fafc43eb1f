package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/copier-service-api/internal/application/dto"
	"github.com/jhoicas/copier-service-api/internal/domain"
)

func TestContact_CrearComoTecnicoConClientes(t *testing.T) {
	f := newFixture(t)
	acme := f.seedCustomer(t, "Acme")
	globex := f.seedCustomer(t, "Globex")

	c, err := f.contactUC.Create(as(f.technician), dto.CreateContactRequest{
		Name:        "Ana",
		Email:       "ana@acme.com",
		Phone:       "600123123",
		CustomerIDs: []string{acme.ID, globex.ID},
	})
	require.NoError(t, err)

	rel, err := f.contactUC.GetWithRelations(as(f.admin), c.ID)
	require.NoError(t, err)
	require.Len(t, rel.Customers, 2)
	assert.Equal(t, "Acme", rel.Customers[0].Name)
	assert.Equal(t, "Globex", rel.Customers[1].Name)

	forGlobex, err := f.contactUC.GetAllForCustomer(as(f.admin), globex.ID)
	require.NoError(t, err)
	require.Len(t, forGlobex, 1)
	assert.Equal(t, c.ID, forGlobex[0].ID)
}

func TestContact_ClienteInexistente_NotFoundSinPersistir(t *testing.T) {
	f := newFixture(t)

	_, err := f.contactUC.Create(as(f.admin), dto.CreateContactRequest{
		Name: "Ana", Email: "ana@acme.com", Phone: "600123123", CustomerIDs: []string{"nope"},
	})
	assert.EqualError(t, err, "Customer with ID nope not found")

	all, err := f.contactUC.GetAll(as(f.admin))
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestContact_UpdateAsociaciones(t *testing.T) {
	f := newFixture(t)
	acme := f.seedCustomer(t, "Acme")
	globex := f.seedCustomer(t, "Globex")
	c, err := f.contactUC.Create(as(f.admin), dto.CreateContactRequest{
		Name: "Ana", Email: "ana@acme.com", Phone: "600123123", CustomerIDs: []string{acme.ID},
	})
	require.NoError(t, err)

	// nil conserva las asociaciones
	_, err = f.contactUC.Update(as(f.technician), c.ID, dto.UpdateContactRequest{
		Name: "Ana María", Email: "ana@acme.com", Phone: "600123123",
	})
	require.NoError(t, err)
	rel, err := f.contactUC.GetWithRelations(as(f.admin), c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana María", rel.Name)
	require.Len(t, rel.Customers, 1)
	assert.Equal(t, acme.ID, rel.Customers[0].ID)

	// un slice las reemplaza
	_, err = f.contactUC.Update(as(f.technician), c.ID, dto.UpdateContactRequest{
		Name: "Ana María", Email: "ana@acme.com", Phone: "600123123", CustomerIDs: []string{globex.ID},
	})
	require.NoError(t, err)
	rel, err = f.contactUC.GetWithRelations(as(f.admin), c.ID)
	require.NoError(t, err)
	require.Len(t, rel.Customers, 1)
	assert.Equal(t, globex.ID, rel.Customers[0].ID)

	// vacío las elimina todas
	_, err = f.contactUC.Update(as(f.technician), c.ID, dto.UpdateContactRequest{
		Name: "Ana María", Email: "ana@acme.com", Phone: "600123123", CustomerIDs: []string{},
	})
	require.NoError(t, err)
	rel, err = f.contactUC.GetWithRelations(as(f.admin), c.ID)
	require.NoError(t, err)
	assert.Empty(t, rel.Customers)
}

func TestContact_UpdateYDeleteInexistente_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.contactUC.Update(as(f.technician), "c1", dto.UpdateContactRequest{Name: "A", Email: "a@b.co", Phone: "600123123"})
	assert.EqualError(t, err, "Contact with ID c1 not found")

	err = f.contactUC.Delete(as(f.technician), "c1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestContact_DeleteComoTecnico(t *testing.T) {
	f := newFixture(t)
	c, err := f.contactUC.Create(as(f.admin), dto.CreateContactRequest{Name: "Ana", Email: "ana@acme.com", Phone: "600123123"})
	require.NoError(t, err)

	require.NoError(t, f.contactUC.Delete(as(f.technician), c.ID))

	got, err := f.contactUC.Get(as(f.admin), c.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}
