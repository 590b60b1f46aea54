package entity

import "time"

// Stock representa a quantidade atual de um produto em uma loja
// (linha materializada de estoque_lojas). Criada de forma preguiçosa na
// primeira movimentação do par; quantidade zero é estado válido, nunca
// removemos a linha.
type Stock struct {
	ProductID string
	StoreID   string
	Quantity  int64
	UpdatedAt time.Time
}
