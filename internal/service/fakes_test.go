package service

import (
	"context"
	"sync"
	"time"

	"app/internal/model"
	"app/internal/repository"
)

// memStore is an in-memory stand-in for the Postgres repositories. It keeps
// the same invariants the real store enforces: balances never go negative,
// every balance change appends a ledger row, and a user holds at most one
// non-rejected verification request.
type memStore struct {
	mu         sync.Mutex
	users      map[string]*model.User
	txs        []model.Transaction
	auths      []*model.EnterpriseAuthRequest
	nextAuthID int64
	nextTxID   int64
}

func newMemStore() *memStore {
	return &memStore{
		users:      make(map[string]*model.User),
		nextAuthID: 1,
		nextTxID:   1,
	}
}

func (s *memStore) userRepo() repository.UserRepository     { return &fakeUserRepo{s} }
func (s *memStore) ledgerRepo() repository.LedgerRepository { return &fakeLedgerRepo{s} }
func (s *memStore) authRepo() repository.EnterpriseAuthRepository {
	return &fakeAuthRepo{s}
}

func (s *memStore) addUser(id string, balance int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[id] = &model.User{ID: id, Email: id + "@example.com", Balance: balance, CreatedAt: time.Now()}
}

func (s *memStore) balanceOf(id string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users[id].Balance
}

func (s *memStore) transactionsOf(id string) []model.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Transaction
	for _, t := range s.txs {
		if t.UserID == id {
			out = append(out, t)
		}
	}
	return out
}

func (s *memStore) authByID(id int64) *model.EnterpriseAuthRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.auths {
		if a.ID == id {
			copied := *a
			return &copied
		}
	}
	return nil
}

func (s *memStore) authCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.auths)
}

func (s *memStore) appendTx(userID string, amount int64, txType, description string) {
	s.txs = append(s.txs, model.Transaction{
		ID:          s.nextTxID,
		UserID:      userID,
		Amount:      amount,
		Type:        txType,
		Description: description,
		CreatedAt:   time.Now(),
	})
	s.nextTxID++
}

type fakeUserRepo struct{ s *memStore }

func (r *fakeUserRepo) GetByID(ctx context.Context, userID string) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[userID]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) EnsureExists(ctx context.Context, userID, email string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[userID]; !ok {
		r.s.users[userID] = &model.User{ID: userID, Email: email, CreatedAt: time.Now()}
	}
	return nil
}

type fakeLedgerRepo struct{ s *memStore }

func (r *fakeLedgerRepo) Debit(ctx context.Context, userID string, amount int64, description string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[userID]
	if !ok {
		return 0, repository.ErrUserNotFound
	}
	if u.Balance < amount {
		return u.Balance, repository.ErrInsufficientBalance
	}
	u.Balance -= amount
	r.s.appendTx(userID, -amount, model.TransactionTypeUsage, description)
	return u.Balance, nil
}

func (r *fakeLedgerRepo) Credit(ctx context.Context, userID string, amount int64, txType, description string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[userID]
	if !ok {
		return 0, repository.ErrUserNotFound
	}
	u.Balance += amount
	r.s.appendTx(userID, amount, txType, description)
	return u.Balance, nil
}

func (r *fakeLedgerRepo) ListTransactions(ctx context.Context, userID string, limit, offset int) ([]model.Transaction, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var all []model.Transaction
	for i := len(r.s.txs) - 1; i >= 0; i-- {
		if r.s.txs[i].UserID == userID {
			all = append(all, r.s.txs[i])
		}
	}
	total := len(all)
	if offset >= total {
		return []model.Transaction{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

type fakeAuthRepo struct{ s *memStore }

func (r *fakeAuthRepo) Create(ctx context.Context, req *model.EnterpriseAuthRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.auths {
		if a.UserID == req.UserID && a.Status != model.AuthStatusRejected {
			return repository.ErrDuplicateAuthRequest
		}
	}
	req.ID = r.s.nextAuthID
	r.s.nextAuthID++
	req.Status = model.AuthStatusPending
	req.CreatedAt = time.Now()
	copied := *req
	r.s.auths = append(r.s.auths, &copied)
	return nil
}

func (r *fakeAuthRepo) GetByID(ctx context.Context, id int64) (*model.EnterpriseAuthRequest, error) {
	return r.s.authByID(id), nil
}

func (r *fakeAuthRepo) FindActiveByUser(ctx context.Context, userID string) (*model.EnterpriseAuthRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.auths {
		if a.UserID == userID && a.Status != model.AuthStatusRejected {
			copied := *a
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeAuthRepo) ListPending(ctx context.Context) ([]model.EnterpriseAuthRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []model.EnterpriseAuthRequest{}
	for i := len(r.s.auths) - 1; i >= 0; i-- {
		if r.s.auths[i].Status == model.AuthStatusPending {
			out = append(out, *r.s.auths[i])
		}
	}
	return out, nil
}

func (r *fakeAuthRepo) Reject(ctx context.Context, id int64, reason string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.auths {
		if a.ID == id {
			if a.Status != model.AuthStatusPending {
				return repository.ErrAlreadyProcessed
			}
			a.Status = model.AuthStatusRejected
			a.RejectionReason = &reason
			return nil
		}
	}
	return repository.ErrAlreadyProcessed
}

func (r *fakeAuthRepo) ApproveAndGrant(ctx context.Context, id int64, userID string, grant int64, description string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.auths {
		if a.ID == id {
			if a.Status != model.AuthStatusPending {
				return 0, repository.ErrAlreadyProcessed
			}
			u, ok := r.s.users[userID]
			if !ok {
				return 0, repository.ErrUserNotFound
			}
			a.Status = model.AuthStatusApproved
			u.Balance += grant
			r.s.appendTx(userID, grant, model.TransactionTypeTrialGrant, description)
			return u.Balance, nil
		}
	}
	return 0, repository.ErrAlreadyProcessed
}
