package usecase_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/copier-service-api/internal/application/dto"
	"github.com/jhoicas/copier-service-api/internal/domain"
	"github.com/jhoicas/copier-service-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Validación cruzada: equipo y técnico
// ──────────────────────────────────────────────────────────────────────────────

func TestServiceOrder_EquipoInexistente_NotFoundSinPersistir(t *testing.T) {
	f := newFixture(t)

	_, err := f.orderUC.Create(as(f.technician), dto.CreateServiceOrderRequest{
		DeviceID:           "dev-404",
		TroubleDescription: "Paper jam in tray 2",
	})
	assert.EqualError(t, err, "Device with ID dev-404 not found")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	all, err := f.orderUC.GetAll(as(f.admin))
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestServiceOrder_AsignarANoTecnico_ValidacionSinPersistir(t *testing.T) {
	f := newFixture(t)
	d := f.seedDevice(t, "X1", nil)

	_, err := f.orderUC.Create(as(f.admin), dto.CreateServiceOrderRequest{
		DeviceID:           d.ID,
		TroubleDescription: "Paper jam in tray 2",
		AssignedToID:       &f.admin.ID,
	})
	assert.EqualError(t, err, "User with ID "+f.admin.ID+" is not a technician")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	all, err := f.orderUC.GetAll(as(f.admin))
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestServiceOrder_UpdateAsignandoANoTecnico_NoMuta(t *testing.T) {
	f := newFixture(t)
	d := f.seedDevice(t, "X1", nil)
	o := f.seedOrder(t, d.ID, entity.StatusPending)

	_, err := f.orderUC.Update(as(f.technician), o.ID, dto.UpdateServiceOrderRequest{
		TroubleDescription: "Changed description text",
		AssignedToID:       &f.admin.ID,
		Status:             entity.StatusIssued,
	})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)

	got, err := f.orderUC.Get(as(f.technician), o.ID)
	require.NoError(t, err)
	assert.Equal(t, o, got)
}

func TestServiceOrder_TecnicoInexistente_NotFound(t *testing.T) {
	f := newFixture(t)
	d := f.seedDevice(t, "X1", nil)

	_, err := f.orderUC.Create(as(f.technician), dto.CreateServiceOrderRequest{
		DeviceID:           d.ID,
		TroubleDescription: "Paper jam in tray 2",
		AssignedToID:       ptr("u-404"),
	})
	assert.EqualError(t, err, "User with ID u-404 not found")
}

// ──────────────────────────────────────────────────────────────────────────────
// Flujo de estados y completedAt
// ──────────────────────────────────────────────────────────────────────────────

func TestServiceOrder_EscenarioTecnicoCreaYCompleta(t *testing.T) {
	f := newFixture(t)
	d := f.seedDevice(t, "X1", nil)

	o, err := f.orderUC.Create(as(f.technician), dto.CreateServiceOrderRequest{
		DeviceID:           d.ID,
		TroubleDescription: "Lines across every copy",
		AssignedToID:       &f.technician.ID,
		Status:             entity.StatusPending,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPending, o.Status)
	assert.Nil(t, o.CompletedAt)

	before := time.Now().UTC().Add(-time.Second)
	done, err := f.orderUC.Update(as(f.technician), o.ID, dto.UpdateServiceOrderRequest{
		TroubleDescription: o.TroubleDescription,
		AssignedToID:       o.AssignedToID,
		Status:             entity.StatusCompleted,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCompleted, done.Status)
	require.NotNil(t, done.CompletedAt)
	assert.True(t, done.CompletedAt.After(before))

	// Repetir COMPLETED no mueve la fecha.
	again, err := f.orderUC.Update(as(f.admin), o.ID, dto.UpdateServiceOrderRequest{
		TroubleDescription: "Lines across every copy, drum replaced",
		AssignedToID:       o.AssignedToID,
		Status:             entity.StatusCompleted,
	})
	require.NoError(t, err)
	require.NotNil(t, again.CompletedAt)
	assert.True(t, done.CompletedAt.Equal(*again.CompletedAt))
}

func TestServiceOrder_CrearCompletadaFijaCompletedAt(t *testing.T) {
	f := newFixture(t)
	d := f.seedDevice(t, "X1", nil)
	o := f.seedOrder(t, d.ID, entity.StatusCompleted)
	assert.NotNil(t, o.CompletedAt)
}

func TestServiceOrder_StatusVacioEsPending(t *testing.T) {
	f := newFixture(t)
	d := f.seedDevice(t, "X1", nil)
	o := f.seedOrder(t, d.ID, "")
	assert.Equal(t, entity.StatusPending, o.Status)
}

func TestServiceOrder_Transiciones(t *testing.T) {
	cases := []struct {
		from, to entity.ServiceOrderStatus
		ok       bool
	}{
		{entity.StatusPending, entity.StatusIssued, true},
		{entity.StatusPending, entity.StatusCancelled, true},
		{entity.StatusIssued, entity.StatusCompleted, true},
		{entity.StatusIssued, entity.StatusIssued, true},
		{entity.StatusIssued, entity.StatusPending, false},
		{entity.StatusCompleted, entity.StatusPending, false},
		{entity.StatusCompleted, entity.StatusCancelled, false},
		{entity.StatusCancelled, entity.StatusCompleted, false},
	}
	for _, tc := range cases {
		t.Run(string(tc.from)+"->"+string(tc.to), func(t *testing.T) {
			f := newFixture(t)
			d := f.seedDevice(t, "X1", nil)
			o := f.seedOrder(t, d.ID, tc.from)

			_, err := f.orderUC.Update(as(f.technician), o.ID, dto.UpdateServiceOrderRequest{
				TroubleDescription: o.TroubleDescription,
				Status:             tc.to,
			})
			if tc.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			got, err := f.orderUC.Get(as(f.technician), o.ID)
			require.NoError(t, err)
			assert.Equal(t, tc.from, got.Status)
		})
	}
}

func TestServiceOrder_UpdateYDeleteInexistente_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.orderUC.Update(as(f.technician), "o1", dto.UpdateServiceOrderRequest{
		TroubleDescription: "Paper jam in tray 2", Status: entity.StatusIssued,
	})
	assert.EqualError(t, err, "Service order with ID o1 not found")

	err = f.orderUC.Delete(as(f.admin), "o1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestServiceOrder_DesasignarConCadenaVacia(t *testing.T) {
	f := newFixture(t)
	d := f.seedDevice(t, "X1", nil)
	o := f.seedOrder(t, d.ID, entity.StatusPending)
	require.NotNil(t, o.AssignedToID)

	updated, err := f.orderUC.Update(as(f.technician), o.ID, dto.UpdateServiceOrderRequest{
		TroubleDescription: o.TroubleDescription,
		AssignedToID:       ptr(""),
		Status:             entity.StatusPending,
	})
	require.NoError(t, err)
	assert.Nil(t, updated.AssignedToID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Proyecciones
// ──────────────────────────────────────────────────────────────────────────────

func TestServiceOrder_TablaYDetalle(t *testing.T) {
	f := newFixture(t)
	c := f.seedCustomer(t, "Acme")
	d := f.seedDevice(t, "A5C0011000001", &c.ID)
	assigned := f.seedOrder(t, d.ID, entity.StatusIssued)
	loose := f.seedDevice(t, "X2", nil)
	unassigned, err := f.orderUC.Create(as(f.admin), dto.CreateServiceOrderRequest{
		DeviceID: loose.ID, TroubleDescription: "Does not power on",
	})
	require.NoError(t, err)

	rows, err := f.orderUC.GetAllForTable(as(f.technician))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, assigned.ID, rows[0].ID)
	assert.Equal(t, "A5C0011000001", rows[0].DeviceSerialNumber)
	require.NotNil(t, rows[0].CustomerName)
	assert.Equal(t, "Acme", *rows[0].CustomerName)
	assert.Equal(t, f.technician.Name, rows[0].AssignedToName)
	assert.Equal(t, unassigned.ID, rows[1].ID)
	assert.Nil(t, rows[1].CustomerName)
	assert.Nil(t, rows[1].AssignedToName)

	details, err := f.orderUC.GetDetails(as(f.technician), assigned.ID)
	require.NoError(t, err)
	require.NotNil(t, details)
	assert.Equal(t, d.ID, details.DeviceID)
	assert.Equal(t, entity.DeviceModelC258, details.DeviceModel)
	assert.Equal(t, &c.ID, details.CustomerID)
	require.NotNil(t, details.AssignedToEmail)
	assert.Equal(t, f.technician.Email, *details.AssignedToEmail)

	missing, err := f.orderUC.GetDetails(as(f.technician), "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestServiceOrder_MisOrdenesYPorEquipo(t *testing.T) {
	f := newFixture(t)
	d := f.seedDevice(t, "X1", nil)
	mine := f.seedOrder(t, d.ID, entity.StatusPending)
	_, err := f.orderUC.Create(as(f.admin), dto.CreateServiceOrderRequest{
		DeviceID: d.ID, TroubleDescription: "Scanner glass cracked", AssignedToID: &f.technician2.ID,
	})
	require.NoError(t, err)

	list, err := f.orderUC.GetMine(as(f.technician))
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, mine.ID, list[0].ID)

	forDevice, err := f.orderUC.GetAllForDevice(as(f.technician), d.ID)
	require.NoError(t, err)
	assert.Len(t, forDevice, 2)
}

func TestServiceOrder_WorkOrderPDF(t *testing.T) {
	f := newFixture(t)
	d := f.seedDevice(t, "X1", nil)
	o := f.seedOrder(t, d.ID, entity.StatusPending)

	pdf, err := f.orderUC.WorkOrderPDF(as(f.technician), o.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
	require.NotNil(t, f.renderer.got)
	assert.Equal(t, o.ID, f.renderer.got.ID)
	assert.Equal(t, "X1", f.renderer.got.DeviceSerialNumber)

	_, err = f.orderUC.WorkOrderPDF(as(f.technician), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
