package service

import (
	"context"
	"errors"
	"testing"

	"backend/internal/model"
	"backend/internal/profit"
	"backend/internal/repository"
	ws "backend/internal/websocket"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type mockShipmentRepo struct {
	records   []model.ShipmentRecord
	listErr   error
	createErr error
	clients   []string
}

func (m *mockShipmentRepo) Create(_ context.Context, record *model.ShipmentRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	record.ID = uuid.New()
	m.records = append(m.records, *record)
	return nil
}

func (m *mockShipmentRepo) GetByID(_ context.Context, id string) (*model.ShipmentRecord, error) {
	for i := range m.records {
		if m.records[i].ID.String() == id {
			r := m.records[i]
			return &r, nil
		}
	}
	return nil, errors.New("record not found")
}

func (m *mockShipmentRepo) List(_ context.Context) ([]model.ShipmentRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.records, nil
}

func (m *mockShipmentRepo) ListByYear(_ context.Context, year int) ([]model.ShipmentRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []model.ShipmentRecord
	for _, r := range m.records {
		if profit.AnchorYear(&r) == year {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockShipmentRepo) DistinctClients(_ context.Context) ([]string, error) {
	return m.clients, nil
}

func (m *mockShipmentRepo) Update(_ context.Context, record *model.ShipmentRecord) error {
	for i := range m.records {
		if m.records[i].ID == record.ID {
			m.records[i] = *record
			return nil
		}
	}
	return errors.New("record not found")
}

func (m *mockShipmentRepo) Delete(_ context.Context, id string) error {
	for i := range m.records {
		if m.records[i].ID.String() == id {
			m.records = append(m.records[:i], m.records[i+1:]...)
			return nil
		}
	}
	return errors.New("record not found")
}

func (m *mockShipmentRepo) DeleteMany(_ context.Context, ids []string) error {
	for _, id := range ids {
		_ = m.Delete(context.Background(), id)
	}
	return nil
}

type mockAuditRepo struct {
	entries []model.AuditLog
	logErr  error
}

func (m *mockAuditRepo) Log(_ context.Context, entry *model.AuditLog) error {
	if m.logErr != nil {
		return m.logErr
	}
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *mockAuditRepo) List(_ context.Context, _, _ int) ([]model.AuditLog, int64, error) {
	return m.entries, int64(len(m.entries)), nil
}

type mockTxManager struct{}

func (m *mockTxManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}

var _ repository.ShipmentRepository = (*mockShipmentRepo)(nil)
var _ repository.AuditRepository = (*mockAuditRepo)(nil)
var _ repository.TransactionManager = (*mockTxManager)(nil)

func newTestHub() *ws.Hub {
	hub := ws.NewHub()
	go hub.Run()
	return hub
}

func newShipmentFixture(t *testing.T) (ShipmentService, *mockShipmentRepo, *mockAuditRepo) {
	t.Helper()
	shipmentRepo := &mockShipmentRepo{}
	auditRepo := &mockAuditRepo{}
	svc := NewShipmentService(shipmentRepo, auditRepo, &mockTxManager{}, newTestHub())
	return svc, shipmentRepo, auditRepo
}

func validCreateRequest() CreateShipmentRequest {
	return CreateShipmentRequest{
		BookingNo:         "BK-1001",
		Client:            "Acme",
		PortOfLoading:     "Shanghai",
		PortOfDischarge:   "Rotterdam",
		ContainerNo:       "TEMU1234567",
		ContainerType:     model.Container40HQ,
		LoadingDate:       "2025-03-10",
		OceanFreightCost:  1000,
		OceanFreightPrice: 1200,
		TruckingCost:      500,
		TruckingPrice:     600,
		CustomsCost:       200,
		CustomsPrice:      250,
		ExchangeRate:      7.0,
	}
}

// --- Tests ---

func TestCreateShipmentComputesNetProfit(t *testing.T) {
	svc, repo, audit := newShipmentFixture(t)

	resp, err := svc.CreateShipment(context.Background(), uuid.NewString(), validCreateRequest())
	require.NoError(t, err)

	assert.InDelta(t, 1550.0, resp.NetProfit, 1e-9)
	assert.Equal(t, "BK-1001", resp.BookingNo)
	require.NotNil(t, resp.LoadingDate)
	assert.Equal(t, "2025-03-10", resp.LoadingDate.Format("2006-01-02"))

	require.Len(t, repo.records, 1)
	require.Len(t, audit.entries, 1)
	assert.Equal(t, model.ActionCreateShipment, audit.entries[0].Action)
	assert.Equal(t, "BK-1001", audit.entries[0].EntityName)
}

func TestCreateShipmentRejectsBadDate(t *testing.T) {
	svc, repo, _ := newShipmentFixture(t)

	req := validCreateRequest()
	req.LoadingDate = "10/03/2025"

	_, err := svc.CreateShipment(context.Background(), "", req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading_date")
	assert.Empty(t, repo.records)
}

func TestUpdateShipmentPartial(t *testing.T) {
	svc, repo, audit := newShipmentFixture(t)

	created, err := svc.CreateShipment(context.Background(), "", validCreateRequest())
	require.NoError(t, err)

	newClient := "Beta"
	newPrice := 700.0
	resp, err := svc.UpdateShipment(context.Background(), "", created.ID.String(), UpdateShipmentRequest{
		Client: &newClient,
		Fees:   map[string]FeePatch{"trucking": {Price: &newPrice}},
	})
	require.NoError(t, err)

	assert.Equal(t, "Beta", resp.Client)
	assert.Equal(t, 700.0, resp.TruckingPrice)
	// untouched fields survive
	assert.Equal(t, "BK-1001", resp.BookingNo)
	assert.Equal(t, 1000.0, resp.OceanFreightCost)
	// net profit follows the patched fee
	assert.InDelta(t, 1650.0, resp.NetProfit, 1e-9)

	assert.Equal(t, "Beta", repo.records[0].Client)
	assert.Equal(t, model.ActionUpdateShipment, audit.entries[len(audit.entries)-1].Action)
}

func TestUpdateShipmentUnknownFee(t *testing.T) {
	svc, _, _ := newShipmentFixture(t)

	created, err := svc.CreateShipment(context.Background(), "", validCreateRequest())
	require.NoError(t, err)

	bad := 10.0
	_, err = svc.UpdateShipment(context.Background(), "", created.ID.String(), UpdateShipmentRequest{
		Fees: map[string]FeePatch{"warehousing": {Cost: &bad}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown fee category")
}

func TestUpdateShipmentRejectsNegativeFee(t *testing.T) {
	svc, _, _ := newShipmentFixture(t)

	created, err := svc.CreateShipment(context.Background(), "", validCreateRequest())
	require.NoError(t, err)

	neg := -5.0
	_, err = svc.UpdateShipment(context.Background(), "", created.ID.String(), UpdateShipmentRequest{
		Fees: map[string]FeePatch{"seal": {Cost: &neg}},
	})
	require.Error(t, err)
}

func TestDeleteShipment(t *testing.T) {
	svc, repo, audit := newShipmentFixture(t)

	created, err := svc.CreateShipment(context.Background(), "", validCreateRequest())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteShipment(context.Background(), "", created.ID.String()))
	assert.Empty(t, repo.records)
	assert.Equal(t, model.ActionDeleteShipment, audit.entries[len(audit.entries)-1].Action)

	err = svc.DeleteShipment(context.Background(), "", created.ID.String())
	assert.EqualError(t, err, "shipment not found")
}

func TestDeleteShipmentsRequiresIDs(t *testing.T) {
	svc, _, _ := newShipmentFixture(t)
	assert.Error(t, svc.DeleteShipments(context.Background(), "", nil))
}

func TestListShipmentsFiltersAndPaginates(t *testing.T) {
	svc, _, _ := newShipmentFixture(t)

	for _, client := range []string{"Acme", "Acme", "Beta"} {
		req := validCreateRequest()
		req.Client = client
		_, err := svc.CreateShipment(context.Background(), "", req)
		require.NoError(t, err)
	}

	shipments, total, err := svc.ListShipments(context.Background(), profit.Filter{Client: "Acme"}, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, shipments, 1)

	// page past the end is empty, total unchanged
	shipments, total, err = svc.ListShipments(context.Background(), profit.Filter{Client: "Acme"}, 5, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Empty(t, shipments)
}
