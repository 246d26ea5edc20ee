package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/sustainchain-backend/internal/models"
)

func importRequest(productID uuid.UUID, conns ...ImportConnection) *ImportRequest {
	req := &ImportRequest{ProductID: productID}
	req.Data.Nodes = []NodeFields{
		{Name: "Harvest Site", Type: models.NodeTypeSource, Country: "Brazil", Coordinates: models.NewGeoPoint(-3.1, -59.9)},
		{Name: "Sawmill", Type: models.NodeTypeProcessing, Country: "Brazil", RiskLevel: models.RiskLevelMedium},
	}
	req.Data.Connections = conns
	return req
}

func TestImportCreatesNodesAndConnections(t *testing.T) {
	f := newFixture(t)
	svc := NewSupplyChainService(f.db)

	existing, err := svc.CreateNode(ctx, &CreateNodeRequest{
		NodeFields: NodeFields{Name: "Port", Type: models.NodeTypeDistribution},
		ProductID:  f.product.ID,
	})
	require.NoError(t, err)

	result, err := svc.Import(ctx, importRequest(f.product.ID,
		ImportConnection{SourceIndex: ptr(0), TargetIndex: ptr(1), ConnectionFields: ConnectionFields{TransportMethod: "Truck"}},
		ImportConnection{SourceIndex: ptr(1), TargetID: &existing.ID},
	))
	require.NoError(t, err)
	require.Len(t, result.Nodes, 2)
	require.Len(t, result.Connections, 2)

	assert.Equal(t, models.RiskLevelLow, result.Nodes[0].RiskLevel)
	assert.Equal(t, result.Nodes[0].ID, result.Connections[0].SourceID)
	assert.Equal(t, result.Nodes[1].ID, result.Connections[0].TargetID)
	assert.Equal(t, models.ConnectionTypeDirect, result.Connections[0].Type)
	assert.Equal(t, existing.ID, result.Connections[1].TargetID)

	m, err := svc.Map(ctx, &f.product.ID)
	require.NoError(t, err)
	assert.Len(t, m.Nodes, 3)
	assert.Len(t, m.Connections, 2)
}

func TestImportRollsBackOnBadIndex(t *testing.T) {
	f := newFixture(t)
	svc := NewSupplyChainService(f.db)

	_, err := svc.Import(ctx, importRequest(f.product.ID,
		ImportConnection{SourceIndex: ptr(0), TargetIndex: ptr(1)},
		ImportConnection{SourceIndex: ptr(0), TargetIndex: ptr(5)},
	))
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Zero(t, count[models.SupplyChainNode](t, f.db))
	assert.Zero(t, count[models.Connection](t, f.db))
}

func TestImportRollsBackOnUnknownNode(t *testing.T) {
	f := newFixture(t)
	svc := NewSupplyChainService(f.db)

	_, err := svc.Import(ctx, importRequest(f.product.ID,
		ImportConnection{SourceIndex: ptr(0), TargetID: ptr(uuid.New())},
	))
	assert.ErrorIs(t, err, ErrInvalidReference)
	assert.Zero(t, count[models.SupplyChainNode](t, f.db))
}

func TestImportUnknownProduct(t *testing.T) {
	f := newFixture(t)
	svc := NewSupplyChainService(f.db)

	_, err := svc.Import(ctx, importRequest(uuid.New()))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestConnectionRejectsSelfLink(t *testing.T) {
	f := newFixture(t)
	svc := NewSupplyChainService(f.db)

	node, err := svc.CreateNode(ctx, &CreateNodeRequest{
		NodeFields: NodeFields{Name: "Loop", Type: models.NodeTypeSource},
		ProductID:  f.product.ID,
	})
	require.NoError(t, err)

	_, err = svc.CreateConnection(ctx, &CreateConnectionRequest{SourceID: node.ID, TargetID: node.ID})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestMapWithoutProductIncludesEverything(t *testing.T) {
	f := newFixture(t)
	other := f.addProduct(t, f.supplier, "Decking", false, false)
	svc := NewSupplyChainService(f.db)

	_, err := svc.Import(ctx, importRequest(f.product.ID, ImportConnection{SourceIndex: ptr(0), TargetIndex: ptr(1)}))
	require.NoError(t, err)
	_, err = svc.Import(ctx, importRequest(other.ID))
	require.NoError(t, err)

	all, err := svc.Map(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all.Nodes, 4)
	assert.Len(t, all.Connections, 1)

	scoped, err := svc.Map(ctx, &other.ID)
	require.NoError(t, err)
	assert.Len(t, scoped.Nodes, 2)
	assert.Empty(t, scoped.Connections)
}
