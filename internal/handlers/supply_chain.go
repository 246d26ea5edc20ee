// internal/handlers/supply_chain.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/sustainchain-backend/internal/i18n"
	"github.com/javajoker/sustainchain-backend/internal/models"
	"github.com/javajoker/sustainchain-backend/internal/services"
	"github.com/javajoker/sustainchain-backend/internal/utils"
)

type SupplyChainHandler struct {
	supplyChainService *services.SupplyChainService
}

func NewSupplyChainHandler(supplyChainService *services.SupplyChainService) *SupplyChainHandler {
	return &SupplyChainHandler{
		supplyChainService: supplyChainService,
	}
}

// GET /supply-chain/nodes
func (h *SupplyChainHandler) ListNodes(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	productID, ok := queryID(c, "product_id")
	if !ok {
		return
	}

	nodes, total, err := h.supplyChainService.ListNodes(c.Request.Context(), services.NodeFilter{
		PaginationParams: params,
		ProductID:        productID,
		Type:             models.NodeType(c.Query("type")),
		RiskLevel:        models.RiskLevel(c.Query("risk_level")),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, nodes, total, params)
}

// GET /supply-chain/nodes/:id
func (h *SupplyChainHandler) GetNode(c *gin.Context) {
	id, ok := paramID(c, "id", "node")
	if !ok {
		return
	}

	node, err := h.supplyChainService.GetNode(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, node)
}

// GET /supply-chain/nodes/product/:productId
func (h *SupplyChainHandler) NodesByProduct(c *gin.Context) {
	productID, ok := paramID(c, "productId", "product")
	if !ok {
		return
	}

	nodes, err := h.supplyChainService.NodesByProduct(c.Request.Context(), productID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, nodes)
}

// POST /supply-chain/nodes
func (h *SupplyChainHandler) CreateNode(c *gin.Context) {
	var req services.CreateNodeRequest
	if !bindJSON(c, &req) {
		return
	}

	node, err := h.supplyChainService.CreateNode(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.CreatedResponse(c, node)
}

// PUT /supply-chain/nodes/:id
func (h *SupplyChainHandler) UpdateNode(c *gin.Context) {
	id, ok := paramID(c, "id", "node")
	if !ok {
		return
	}

	var req services.UpdateNodeRequest
	if !bindJSON(c, &req) {
		return
	}

	node, err := h.supplyChainService.UpdateNode(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, node)
}

// DELETE /supply-chain/nodes/:id
func (h *SupplyChainHandler) DeleteNode(c *gin.Context) {
	id, ok := paramID(c, "id", "node")
	if !ok {
		return
	}

	if err := h.supplyChainService.DeleteNode(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondDeleted(c, "Node")
}

// GET /supply-chain/connections
func (h *SupplyChainHandler) ListConnections(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	nodeID, ok := queryID(c, "node_id")
	if !ok {
		return
	}

	connections, total, err := h.supplyChainService.ListConnections(c.Request.Context(), params, nodeID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, connections, total, params)
}

// GET /supply-chain/connections/:id
func (h *SupplyChainHandler) GetConnection(c *gin.Context) {
	id, ok := paramID(c, "id", "connection")
	if !ok {
		return
	}

	connection, err := h.supplyChainService.GetConnection(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, connection)
}

// POST /supply-chain/connections
func (h *SupplyChainHandler) CreateConnection(c *gin.Context) {
	var req services.CreateConnectionRequest
	if !bindJSON(c, &req) {
		return
	}

	connection, err := h.supplyChainService.CreateConnection(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.CreatedResponse(c, connection)
}

// PUT /supply-chain/connections/:id
func (h *SupplyChainHandler) UpdateConnection(c *gin.Context) {
	id, ok := paramID(c, "id", "connection")
	if !ok {
		return
	}

	var req services.UpdateConnectionRequest
	if !bindJSON(c, &req) {
		return
	}

	connection, err := h.supplyChainService.UpdateConnection(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, connection)
}

// DELETE /supply-chain/connections/:id
func (h *SupplyChainHandler) DeleteConnection(c *gin.Context) {
	id, ok := paramID(c, "id", "connection")
	if !ok {
		return
	}

	if err := h.supplyChainService.DeleteConnection(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondDeleted(c, "Connection")
}

// GET /supply-chain/map
func (h *SupplyChainHandler) Map(c *gin.Context) {
	productID, ok := queryID(c, "product_id")
	if !ok {
		return
	}

	chainMap, err := h.supplyChainService.Map(c.Request.Context(), productID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, chainMap)
}

// POST /supply-chain/import
func (h *SupplyChainHandler) Import(c *gin.Context) {
	var req services.ImportRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.supplyChainService.Import(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":     utils.T(c, i18n.KeySupplyChainImported),
		"nodes":       result.Nodes,
		"connections": result.Connections,
	})
}
