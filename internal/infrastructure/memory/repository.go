package memory

import (
	"sort"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var _ repository.StockRepository = (*stockRepo)(nil)
var _ repository.LedgerRepository = (*ledgerRepo)(nil)
var _ repository.TransferRepository = (*transferRepo)(nil)
var _ repository.ProductRepository = (*productRepo)(nil)
var _ repository.StoreRepository = (*storeRepo)(nil)

// Os adaptadores com lock=true adquirem o mutex (uso fora de transação);
// dentro de Run/RunTransfer o mutex já está com o chamador.
type stockRepo struct {
	s    *Store
	lock bool
}

func (r *stockRepo) Get(productID, storeID string) (*entity.Stock, error) {
	if r.lock {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	if st, ok := r.s.stock[stockKey(productID, storeID)]; ok {
		cp := *st
		return &cp, nil
	}
	return &entity.Stock{ProductID: productID, StoreID: storeID}, nil
}

func (r *stockRepo) GetForUpdate(productID, storeID string) (*entity.Stock, error) {
	// O mutex do Store já serializa tudo; o bloqueio de linha é inerente.
	// Materializa a linha zerada como o adaptador PostgreSQL (o snapshot da
	// transação desfaz a criação se a movimentação falhar).
	if r.lock {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	key := stockKey(productID, storeID)
	if _, ok := r.s.stock[key]; !ok {
		r.s.stock[key] = &entity.Stock{ProductID: productID, StoreID: storeID}
	}
	cp := *r.s.stock[key]
	return &cp, nil
}

func (r *stockRepo) Upsert(stock *entity.Stock) error {
	if r.lock {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	cp := *stock
	r.s.stock[stockKey(stock.ProductID, stock.StoreID)] = &cp
	return nil
}

func (r *stockRepo) ListByStore(storeID string, limit, offset int) ([]*entity.Stock, int, error) {
	if r.lock {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	var all []*entity.Stock
	for _, st := range r.s.stock {
		if st.StoreID == storeID {
			cp := *st
			all = append(all, &cp)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Quantity != all[j].Quantity {
			return all[i].Quantity > all[j].Quantity
		}
		return all[i].ProductID < all[j].ProductID
	})
	total := len(all)
	return paginate(all, limit, offset), total, nil
}

func (r *stockRepo) ListByProduct(productID string) ([]*entity.Stock, error) {
	if r.lock {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	var all []*entity.Stock
	for _, st := range r.s.stock {
		if st.ProductID == productID {
			cp := *st
			all = append(all, &cp)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].StoreID < all[j].StoreID })
	return all, nil
}

type ledgerRepo struct {
	s    *Store
	lock bool
}

func (r *ledgerRepo) Create(entry *entity.LedgerEntry) error {
	if r.lock {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	r.s.nextID++
	cp := *entry
	cp.ID = r.s.nextID
	r.s.ledger = append(r.s.ledger, &cp)
	entry.ID = cp.ID
	return nil
}

func matchesLedger(e *entity.LedgerEntry, f repository.LedgerFilter) bool {
	if f.ProductID != "" && e.ProductID != f.ProductID {
		return false
	}
	if f.StoreID != "" && e.StoreID != f.StoreID {
		return false
	}
	if f.Type != "" && e.Type != f.Type {
		return false
	}
	if f.Reference != "" && e.Reference != f.Reference {
		return false
	}
	if f.From != nil && e.CreatedAt.Before(*f.From) {
		return false
	}
	if f.To != nil && e.CreatedAt.After(*f.To) {
		return false
	}
	return true
}

func (r *ledgerRepo) List(filter repository.LedgerFilter, limit, offset int) ([]*entity.LedgerEntry, int, error) {
	if r.lock {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	var matched []*entity.LedgerEntry
	// Do mais recente para o mais antigo (IDs são monotônicos).
	for i := len(r.s.ledger) - 1; i >= 0; i-- {
		e := r.s.ledger[i]
		if matchesLedger(e, filter) {
			cp := *e
			matched = append(matched, &cp)
		}
	}
	total := len(matched)
	return paginate(matched, limit, offset), total, nil
}

func (r *ledgerRepo) ListByReference(reference string) ([]*entity.LedgerEntry, error) {
	if r.lock {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	var list []*entity.LedgerEntry
	for _, e := range r.s.ledger {
		if e.Reference == reference {
			cp := *e
			list = append(list, &cp)
		}
	}
	return list, nil
}

func (r *ledgerRepo) LastForPair(productID, storeID string) (*entity.LedgerEntry, error) {
	if r.lock {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	for i := len(r.s.ledger) - 1; i >= 0; i-- {
		e := r.s.ledger[i]
		if e.ProductID == productID && e.StoreID == storeID {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

type transferRepo struct {
	s    *Store
	lock bool
}

func cloneTransfer(t *entity.Transfer) *entity.Transfer {
	cp := *t
	cp.Lines = append([]entity.TransferLine(nil), t.Lines...)
	return &cp
}

func (r *transferRepo) Create(t *entity.Transfer) error {
	if r.lock {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	r.s.transfers[t.ID] = cloneTransfer(t)
	return nil
}

func (r *transferRepo) GetByID(id string) (*entity.Transfer, error) {
	if r.lock {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	t, ok := r.s.transfers[id]
	if !ok {
		return nil, nil
	}
	return cloneTransfer(t), nil
}

func (r *transferRepo) GetForUpdate(id string) (*entity.Transfer, error) {
	return r.GetByID(id)
}

func (r *transferRepo) UpdateStatus(t *entity.Transfer) error {
	if r.lock {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	r.s.transfers[t.ID] = cloneTransfer(t)
	return nil
}

func (r *transferRepo) List(filter repository.TransferFilter, limit, offset int) ([]*entity.Transfer, int, error) {
	if r.lock {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	var matched []*entity.Transfer
	for _, t := range r.s.transfers {
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if filter.StoreID != "" && t.OriginStoreID != filter.StoreID && t.DestinationStoreID != filter.StoreID {
			continue
		}
		matched = append(matched, cloneTransfer(t))
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID < matched[j].ID
	})
	total := len(matched)
	return paginate(matched, limit, offset), total, nil
}

type productRepo struct {
	s *Store
}

func (r *productRepo) GetByID(id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

type storeRepo struct {
	s *Store
}

func (r *storeRepo) GetByID(id string) (*entity.Store, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	st, ok := r.s.stores[id]
	if !ok {
		return nil, nil
	}
	cp := *st
	return &cp, nil
}

func paginate[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
