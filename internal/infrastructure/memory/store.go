// Package memory implementa os contratos de persistência do núcleo de
// estoque sobre mapas em memória, com a mesma semântica transacional dos
// adaptadores PostgreSQL (tudo ou nada via snapshot/restore). É usado nos
// testes de casos de uso e de handlers, onde um banco real não é necessário.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/application/transfer"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

// Garante que Store implementa os runners transacionais dos casos de uso.
var _ inventory.TxRunner = (*Store)(nil)
var _ transfer.TxRunner = (*Store)(nil)

// Store guarda todo o estado em memória. Os valores armazenados nunca são
// mutados no lugar: leituras devolvem cópias e escritas substituem a entrada,
// o que permite snapshot barato (cópia dos mapas, não dos valores).
type Store struct {
	mu        sync.Mutex
	products  map[string]*entity.Product
	stores    map[string]*entity.Store
	stock     map[string]*entity.Stock // chave id_produto|id_loja
	ledger    []*entity.LedgerEntry
	transfers map[string]*entity.Transfer
	nextID    int64
}

// NewStore cria um Store vazio.
func NewStore() *Store {
	return &Store{
		products:  make(map[string]*entity.Product),
		stores:    make(map[string]*entity.Store),
		stock:     make(map[string]*entity.Stock),
		transfers: make(map[string]*entity.Transfer),
	}
}

func stockKey(productID, storeID string) string {
	return productID + "|" + storeID
}

// SeedProduct insere um produto no catálogo.
func (s *Store) SeedProduct(p *entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.products[p.ID] = &cp
}

// SeedStore insere uma loja.
func (s *Store) SeedStore(st *entity.Store) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *st
	s.stores[st.ID] = &cp
}

// SeedStock define a quantidade inicial de um par (produto, loja) sem passar
// pelo histórico; útil para montar cenários de teste.
func (s *Store) SeedStock(productID, storeID string, quantity int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stock[stockKey(productID, storeID)] = &entity.Stock{
		ProductID: productID,
		StoreID:   storeID,
		Quantity:  quantity,
	}
}

// snapshot captura o estado mutável. Como valores nunca mudam no lugar,
// basta copiar os mapas e o slice do histórico.
type snapshot struct {
	stock     map[string]*entity.Stock
	ledger    []*entity.LedgerEntry
	transfers map[string]*entity.Transfer
	nextID    int64
}

func (s *Store) takeSnapshot() snapshot {
	stock := make(map[string]*entity.Stock, len(s.stock))
	for k, v := range s.stock {
		stock[k] = v
	}
	transfers := make(map[string]*entity.Transfer, len(s.transfers))
	for k, v := range s.transfers {
		transfers[k] = v
	}
	ledger := make([]*entity.LedgerEntry, len(s.ledger))
	copy(ledger, s.ledger)
	return snapshot{stock: stock, ledger: ledger, transfers: transfers, nextID: s.nextID}
}

func (s *Store) restore(snap snapshot) {
	s.stock = snap.stock
	s.ledger = snap.ledger
	s.transfers = snap.transfers
	s.nextID = snap.nextID
}

// Run executa fn como uma transação: qualquer erro restaura o estado
// anterior, igual ao Rollback do PostgreSQL.
func (s *Store) Run(ctx context.Context, fn func(
	ledgerRepo repository.LedgerRepository,
	stockRepo repository.StockRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.takeSnapshot()
	if err := fn(&ledgerRepo{s: s}, &stockRepo{s: s}); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// RunTransfer idem, incluindo o repositório de transferências.
func (s *Store) RunTransfer(ctx context.Context, fn func(
	ledgerRepo repository.LedgerRepository,
	stockRepo repository.StockRepository,
	transferRepo repository.TransferRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.takeSnapshot()
	if err := fn(&ledgerRepo{s: s}, &stockRepo{s: s}, &transferRepo{s: s}); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// ProductRepository devolve o adaptador de produtos.
func (s *Store) ProductRepository() repository.ProductRepository {
	return &productRepo{s: s}
}

// StoreRepository devolve o adaptador de lojas.
func (s *Store) StoreRepository() repository.StoreRepository {
	return &storeRepo{s: s}
}

// StockRepository devolve o adaptador de estoque (fora de transação).
func (s *Store) StockRepository() repository.StockRepository {
	return &stockRepo{s: s, lock: true}
}

// LedgerRepository devolve o adaptador do histórico (fora de transação).
func (s *Store) LedgerRepository() repository.LedgerRepository {
	return &ledgerRepo{s: s, lock: true}
}

// TransferRepository devolve o adaptador de transferências (fora de transação).
func (s *Store) TransferRepository() repository.TransferRepository {
	return &transferRepo{s: s, lock: true}
}
