package dto

// ConsumePartRequest body para POST /api/ordens-servico/pecas.
type ConsumePartRequest struct {
	WorkOrderID string `json:"ordem_servico_id"`
	ProductID   string `json:"produto_id"`
	StoreID     string `json:"loja_id"`
	Quantity    int64  `json:"quantidade"`
}
