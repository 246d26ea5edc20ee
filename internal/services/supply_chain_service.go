// internal/services/supply_chain_service.go
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/javajoker/sustainchain-backend/internal/database"
	"github.com/javajoker/sustainchain-backend/internal/models"
	"github.com/javajoker/sustainchain-backend/internal/utils"
)

type SupplyChainService struct {
	db *gorm.DB
}

// NodeFields are the writable attributes of a node.
type NodeFields struct {
	Name          string           `json:"name" validate:"required,max=255"`
	Type          models.NodeType  `json:"type" validate:"required,oneof=source processing manufacturing distribution retail"`
	Country       string           `json:"country,omitempty" validate:"max=100"`
	Region        string           `json:"region,omitempty" validate:"max=100"`
	Coordinates   *models.GeoPoint `json:"coordinates,omitempty"`
	Address       string           `json:"address,omitempty"`
	ContactPerson string           `json:"contact_person,omitempty" validate:"max=255"`
	ContactEmail  string           `json:"contact_email,omitempty" validate:"omitempty,email"`
	ContactPhone  string           `json:"contact_phone,omitempty" validate:"max=50"`
	RiskLevel     models.RiskLevel `json:"risk_level,omitempty" validate:"omitempty,oneof=low medium high"`
	IsActive      *bool            `json:"is_active,omitempty"`
}

type CreateNodeRequest struct {
	NodeFields
	ProductID uuid.UUID `json:"product_id" validate:"required"`
}

type UpdateNodeRequest struct {
	Name          *string           `json:"name,omitempty" validate:"omitempty,max=255"`
	Type          *models.NodeType  `json:"type,omitempty" validate:"omitempty,oneof=source processing manufacturing distribution retail"`
	Country       *string           `json:"country,omitempty" validate:"omitempty,max=100"`
	Region        *string           `json:"region,omitempty" validate:"omitempty,max=100"`
	Coordinates   *models.GeoPoint  `json:"coordinates,omitempty"`
	Address       *string           `json:"address,omitempty"`
	ContactPerson *string           `json:"contact_person,omitempty" validate:"omitempty,max=255"`
	ContactEmail  *string           `json:"contact_email,omitempty" validate:"omitempty,email"`
	ContactPhone  *string           `json:"contact_phone,omitempty" validate:"omitempty,max=50"`
	RiskLevel     *models.RiskLevel `json:"risk_level,omitempty" validate:"omitempty,oneof=low medium high"`
	IsActive      *bool             `json:"is_active,omitempty"`
	ProductID     *uuid.UUID        `json:"product_id,omitempty"`
}

// ConnectionFields are the writable attributes of a connection.
type ConnectionFields struct {
	Type             models.ConnectionType `json:"type,omitempty" validate:"omitempty,oneof=direct indirect potential"`
	TransportMethod  string                `json:"transport_method,omitempty" validate:"max=100"`
	Distance         float64               `json:"distance,omitempty" validate:"gte=0"`
	CarbonFootprint  float64               `json:"carbon_footprint,omitempty" validate:"gte=0"`
	IsVerified       bool                  `json:"is_verified,omitempty"`
	VerificationDate *time.Time            `json:"verification_date,omitempty"`
	IsActive         *bool                 `json:"is_active,omitempty"`
}

type CreateConnectionRequest struct {
	ConnectionFields
	SourceID uuid.UUID `json:"source_id" validate:"required"`
	TargetID uuid.UUID `json:"target_id" validate:"required"`
}

type UpdateConnectionRequest struct {
	SourceID         *uuid.UUID             `json:"source_id,omitempty"`
	TargetID         *uuid.UUID             `json:"target_id,omitempty"`
	Type             *models.ConnectionType `json:"type,omitempty" validate:"omitempty,oneof=direct indirect potential"`
	TransportMethod  *string                `json:"transport_method,omitempty" validate:"omitempty,max=100"`
	Distance         *float64               `json:"distance,omitempty" validate:"omitempty,gte=0"`
	CarbonFootprint  *float64               `json:"carbon_footprint,omitempty" validate:"omitempty,gte=0"`
	IsVerified       *bool                  `json:"is_verified,omitempty"`
	VerificationDate *time.Time             `json:"verification_date,omitempty"`
	IsActive         *bool                  `json:"is_active,omitempty"`
}

// ImportConnection names each endpoint by existing node id or by position in
// the imported node list.
type ImportConnection struct {
	ConnectionFields
	SourceID    *uuid.UUID `json:"source_id,omitempty"`
	TargetID    *uuid.UUID `json:"target_id,omitempty"`
	SourceIndex *int       `json:"source_index,omitempty"`
	TargetIndex *int       `json:"target_index,omitempty"`
}

type ImportRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Data      struct {
		Nodes       []NodeFields       `json:"nodes" validate:"dive"`
		Connections []ImportConnection `json:"connections" validate:"dive"`
	} `json:"data"`
}

type ImportResult struct {
	Nodes       []models.SupplyChainNode `json:"nodes"`
	Connections []models.Connection      `json:"connections"`
}

type MapNode struct {
	ID          uuid.UUID        `json:"id"`
	Name        string           `json:"name"`
	Type        models.NodeType  `json:"type"`
	Coordinates *models.GeoPoint `json:"coordinates"`
	RiskLevel   models.RiskLevel `json:"risk_level"`
	Country     string           `json:"country"`
	Region      string           `json:"region"`
}

type MapConnection struct {
	ID              uuid.UUID             `json:"id"`
	Source          uuid.UUID             `json:"source"`
	Target          uuid.UUID             `json:"target"`
	Type            models.ConnectionType `json:"type"`
	TransportMethod string                `json:"transport_method"`
	IsVerified      bool                  `json:"is_verified"`
}

type SupplyChainMap struct {
	Nodes       []MapNode       `json:"nodes"`
	Connections []MapConnection `json:"connections"`
}

type NodeFilter struct {
	utils.PaginationParams
	ProductID *uuid.UUID
	Type      models.NodeType
	RiskLevel models.RiskLevel
}

var (
	nodeSortFields       = []string{"created_at", "name", "type", "country", "risk_level"}
	connectionSortFields = []string{"created_at", "distance", "carbon_footprint"}
)

func NewSupplyChainService(db *gorm.DB) *SupplyChainService {
	return &SupplyChainService{db: db}
}

// Nodes

func (s *SupplyChainService) ListNodes(ctx context.Context, filter NodeFilter) ([]models.SupplyChainNode, int64, error) {
	query := s.db.WithContext(ctx)
	if filter.ProductID != nil {
		query = query.Where("product_id = ?", *filter.ProductID)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.RiskLevel != "" {
		query = query.Where("risk_level = ?", filter.RiskLevel)
	}
	if filter.Search != "" {
		query = query.Where("LOWER(name) LIKE LOWER(?)", searchPattern(filter.Search))
	}
	return paginate[models.SupplyChainNode](query, filter.PaginationParams, nodeSortFields)
}

func (s *SupplyChainService) GetNode(ctx context.Context, id uuid.UUID) (*models.SupplyChainNode, error) {
	return findByID[models.SupplyChainNode](s.db.WithContext(ctx), "supply chain node", id, "Product")
}

// NodesByProduct returns every node of a product; an unknown product is a miss.
func (s *SupplyChainService) NodesByProduct(ctx context.Context, productID uuid.UUID) ([]models.SupplyChainNode, error) {
	db := s.db.WithContext(ctx)
	if err := ensureFound[models.Product](db, "product", productID); err != nil {
		return nil, err
	}

	nodes := make([]models.SupplyChainNode, 0)
	if err := db.Where("product_id = ?", productID).Order("created_at").Find(&nodes).Error; err != nil {
		return nil, fmt.Errorf("failed to list nodes: %w", err)
	}
	return nodes, nil
}

func (s *SupplyChainService) CreateNode(ctx context.Context, req *CreateNodeRequest) (*models.SupplyChainNode, error) {
	db := s.db.WithContext(ctx)
	if err := ensureExists[models.Product](db, "product", req.ProductID); err != nil {
		return nil, err
	}
	return createNode(db, req.ProductID, &req.NodeFields)
}

func createNode(db *gorm.DB, productID uuid.UUID, fields *NodeFields) (*models.SupplyChainNode, error) {
	if err := validatePoint(fields.Coordinates); err != nil {
		return nil, err
	}

	riskLevel := fields.RiskLevel
	if riskLevel == "" {
		riskLevel = models.RiskLevelLow
	}

	node := &models.SupplyChainNode{
		Name:          fields.Name,
		Type:          fields.Type,
		Country:       fields.Country,
		Region:        fields.Region,
		Coordinates:   fields.Coordinates,
		Address:       fields.Address,
		ContactPerson: fields.ContactPerson,
		ContactEmail:  fields.ContactEmail,
		ContactPhone:  fields.ContactPhone,
		RiskLevel:     riskLevel,
		IsActive:      boolOr(fields.IsActive, true),
		ProductID:     productID,
	}

	if err := db.Create(node).Error; err != nil {
		return nil, fmt.Errorf("failed to create supply chain node: %w", err)
	}
	return node, nil
}

func (s *SupplyChainService) UpdateNode(ctx context.Context, id uuid.UUID, req *UpdateNodeRequest) (*models.SupplyChainNode, error) {
	db := s.db.WithContext(ctx)

	if err := validatePoint(req.Coordinates); err != nil {
		return nil, err
	}
	if req.ProductID != nil {
		if err := ensureExists[models.Product](db, "product", *req.ProductID); err != nil {
			return nil, err
		}
	}

	updates := map[string]interface{}{}
	setIf(updates, "name", req.Name)
	setIf(updates, "type", req.Type)
	setIf(updates, "country", req.Country)
	setIf(updates, "region", req.Region)
	setIf(updates, "address", req.Address)
	setIf(updates, "contact_person", req.ContactPerson)
	setIf(updates, "contact_email", req.ContactEmail)
	setIf(updates, "contact_phone", req.ContactPhone)
	setIf(updates, "risk_level", req.RiskLevel)
	setIf(updates, "is_active", req.IsActive)
	setIf(updates, "product_id", req.ProductID)
	if req.Coordinates != nil {
		updates["coordinates"] = req.Coordinates
	}

	if err := updateByID[models.SupplyChainNode](db, "supply chain node", id, updates); err != nil {
		return nil, err
	}
	return s.GetNode(ctx, id)
}

func (s *SupplyChainService) DeleteNode(ctx context.Context, id uuid.UUID) error {
	return deleteByID[models.SupplyChainNode](s.db.WithContext(ctx), "supply chain node", id)
}

// Connections

func (s *SupplyChainService) ListConnections(ctx context.Context, params utils.PaginationParams, nodeID *uuid.UUID) ([]models.Connection, int64, error) {
	query := s.db.WithContext(ctx)
	if nodeID != nil {
		query = query.Where("source_id = ? OR target_id = ?", *nodeID, *nodeID)
	}
	return paginate[models.Connection](query, params, connectionSortFields, "Source", "Target")
}

func (s *SupplyChainService) GetConnection(ctx context.Context, id uuid.UUID) (*models.Connection, error) {
	return findByID[models.Connection](s.db.WithContext(ctx), "connection", id, "Source", "Target")
}

func (s *SupplyChainService) CreateConnection(ctx context.Context, req *CreateConnectionRequest) (*models.Connection, error) {
	db := s.db.WithContext(ctx)
	if err := ensureExists[models.SupplyChainNode](db, "source node", req.SourceID); err != nil {
		return nil, err
	}
	if err := ensureExists[models.SupplyChainNode](db, "target node", req.TargetID); err != nil {
		return nil, err
	}
	return createConnection(db, req.SourceID, req.TargetID, &req.ConnectionFields)
}

func createConnection(db *gorm.DB, sourceID, targetID uuid.UUID, fields *ConnectionFields) (*models.Connection, error) {
	if sourceID == targetID {
		return nil, invalidInput("a connection cannot link a node to itself")
	}

	connType := fields.Type
	if connType == "" {
		connType = models.ConnectionTypeDirect
	}

	conn := &models.Connection{
		SourceID:         sourceID,
		TargetID:         targetID,
		Type:             connType,
		TransportMethod:  fields.TransportMethod,
		Distance:         fields.Distance,
		CarbonFootprint:  fields.CarbonFootprint,
		IsVerified:       fields.IsVerified,
		VerificationDate: fields.VerificationDate,
		IsActive:         boolOr(fields.IsActive, true),
	}

	if err := db.Create(conn).Error; err != nil {
		return nil, fmt.Errorf("failed to create connection: %w", err)
	}
	return conn, nil
}

func (s *SupplyChainService) UpdateConnection(ctx context.Context, id uuid.UUID, req *UpdateConnectionRequest) (*models.Connection, error) {
	db := s.db.WithContext(ctx)

	if req.SourceID != nil {
		if err := ensureExists[models.SupplyChainNode](db, "source node", *req.SourceID); err != nil {
			return nil, err
		}
	}
	if req.TargetID != nil {
		if err := ensureExists[models.SupplyChainNode](db, "target node", *req.TargetID); err != nil {
			return nil, err
		}
	}

	updates := map[string]interface{}{}
	setIf(updates, "source_id", req.SourceID)
	setIf(updates, "target_id", req.TargetID)
	setIf(updates, "type", req.Type)
	setIf(updates, "transport_method", req.TransportMethod)
	setIf(updates, "distance", req.Distance)
	setIf(updates, "carbon_footprint", req.CarbonFootprint)
	setIf(updates, "is_verified", req.IsVerified)
	setIf(updates, "verification_date", req.VerificationDate)
	setIf(updates, "is_active", req.IsActive)

	if err := updateByID[models.Connection](db, "connection", id, updates); err != nil {
		return nil, err
	}
	return s.GetConnection(ctx, id)
}

func (s *SupplyChainService) DeleteConnection(ctx context.Context, id uuid.UUID) error {
	return deleteByID[models.Connection](s.db.WithContext(ctx), "connection", id)
}

// Map returns the graph for one product, or for every product when productID
// is nil.
func (s *SupplyChainService) Map(ctx context.Context, productID *uuid.UUID) (*SupplyChainMap, error) {
	db := s.db.WithContext(ctx)

	nodeQuery := db.Model(&models.SupplyChainNode{})
	connQuery := db.Model(&models.Connection{})
	if productID != nil {
		if err := ensureFound[models.Product](db, "product", *productID); err != nil {
			return nil, err
		}
		nodeQuery = nodeQuery.Where("product_id = ?", *productID)
		connQuery = connQuery.Where("source_id IN (?)",
			db.Model(&models.SupplyChainNode{}).Select("id").Where("product_id = ?", *productID))
	}

	var nodes []models.SupplyChainNode
	if err := nodeQuery.Order("created_at").Find(&nodes).Error; err != nil {
		return nil, fmt.Errorf("failed to load nodes: %w", err)
	}
	var conns []models.Connection
	if err := connQuery.Order("created_at").Find(&conns).Error; err != nil {
		return nil, fmt.Errorf("failed to load connections: %w", err)
	}

	result := &SupplyChainMap{
		Nodes:       make([]MapNode, 0, len(nodes)),
		Connections: make([]MapConnection, 0, len(conns)),
	}
	for _, n := range nodes {
		result.Nodes = append(result.Nodes, MapNode{
			ID:          n.ID,
			Name:        n.Name,
			Type:        n.Type,
			Coordinates: n.Coordinates,
			RiskLevel:   n.RiskLevel,
			Country:     n.Country,
			Region:      n.Region,
		})
	}
	for _, c := range conns {
		result.Connections = append(result.Connections, MapConnection{
			ID:              c.ID,
			Source:          c.SourceID,
			Target:          c.TargetID,
			Type:            c.Type,
			TransportMethod: c.TransportMethod,
			IsVerified:      c.IsVerified,
		})
	}
	return result, nil
}

// Import creates nodes under a product and the connections between them in
// one transaction. Any failure leaves nothing behind.
func (s *SupplyChainService) Import(ctx context.Context, req *ImportRequest) (*ImportResult, error) {
	db := s.db.WithContext(ctx)
	if err := ensureFound[models.Product](db, "product", req.ProductID); err != nil {
		return nil, err
	}

	result := &ImportResult{
		Nodes:       make([]models.SupplyChainNode, 0, len(req.Data.Nodes)),
		Connections: make([]models.Connection, 0, len(req.Data.Connections)),
	}

	err := database.WithTransaction(db, func(tx *gorm.DB) error {
		for i := range req.Data.Nodes {
			node, err := createNode(tx, req.ProductID, &req.Data.Nodes[i])
			if err != nil {
				return fmt.Errorf("node %d: %w", i, err)
			}
			result.Nodes = append(result.Nodes, *node)
		}

		for i := range req.Data.Connections {
			c := &req.Data.Connections[i]
			source, err := resolveEndpoint(tx, result.Nodes, c.SourceID, c.SourceIndex, "source")
			if err != nil {
				return fmt.Errorf("connection %d: %w", i, err)
			}
			target, err := resolveEndpoint(tx, result.Nodes, c.TargetID, c.TargetIndex, "target")
			if err != nil {
				return fmt.Errorf("connection %d: %w", i, err)
			}

			conn, err := createConnection(tx, source, target, &c.ConnectionFields)
			if err != nil {
				return fmt.Errorf("connection %d: %w", i, err)
			}
			result.Connections = append(result.Connections, *conn)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func resolveEndpoint(tx *gorm.DB, created []models.SupplyChainNode, id *uuid.UUID, index *int, side string) (uuid.UUID, error) {
	switch {
	case index != nil:
		if *index < 0 || *index >= len(created) {
			return uuid.Nil, invalidInput("%s_index %d is out of range", side, *index)
		}
		return created[*index].ID, nil
	case id != nil:
		if err := ensureExists[models.SupplyChainNode](tx, side+" node", *id); err != nil {
			return uuid.Nil, err
		}
		return *id, nil
	default:
		return uuid.Nil, invalidInput("%s_id or %s_index is required", side, side)
	}
}
