// Package memory holds an in-memory implementation of the repository
// contracts, used by the service tests in place of Postgres. The mutex
// stands in for the database transaction: every operation sees and leaves
// consistent state, and failed preconditions leave nothing mutated.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/bankdash/bank-system/internal/domain"
	"github.com/shopspring/decimal"
)

type Store struct {
	mu           sync.Mutex
	nextID       int
	users        map[string]domain.User    // keyed by user id
	accounts     map[string]domain.Account // keyed by user id
	profiles     map[string]domain.Profile // keyed by user id
	transactions []domain.Transaction
}

func NewStore() *Store {
	return &Store{
		users:    make(map[string]domain.User),
		accounts: make(map[string]domain.Account),
		profiles: make(map[string]domain.Profile),
	}
}

func (s *Store) CreateWithAccountAndProfile(_ context.Context, user domain.User, account domain.Account) (domain.User, domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Username == user.Username {
			return domain.User{}, domain.Account{}, domain.ErrDuplicateUsername
		}
	}
	for _, existing := range s.accounts {
		if existing.AccountNumber == account.AccountNumber {
			return domain.User{}, domain.Account{}, domain.ErrAccountNumberTaken
		}
	}

	now := time.Now()

	user.ID = s.generateID("user")
	user.CreatedAt = now
	user.UpdatedAt = now
	s.users[user.ID] = user

	account.ID = s.generateID("account")
	account.UserID = user.ID
	account.CreatedAt = now
	account.UpdatedAt = now
	s.accounts[user.ID] = account

	profile := domain.Profile{
		ID:        s.generateID("profile"),
		UserID:    user.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.profiles[user.ID] = profile

	return user, account, nil
}

func (s *Store) GetByID(_ context.Context, id string) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return domain.User{}, domain.ErrRecordNotFound
	}
	return user, nil
}

func (s *Store) GetByUsername(_ context.Context, username string) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.Username == username {
			return user, nil
		}
	}
	return domain.User{}, domain.ErrRecordNotFound
}

func (s *Store) UpdateDetails(_ context.Context, user domain.User) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.users[user.ID]
	if !ok {
		return domain.User{}, domain.ErrRecordNotFound
	}

	existing.Email = user.Email
	existing.FirstName = user.FirstName
	existing.LastName = user.LastName
	existing.UpdatedAt = time.Now()
	s.users[user.ID] = existing

	return existing, nil
}

func (s *Store) GetByUserID(_ context.Context, userID string) (domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[userID]
	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound
	}
	return account, nil
}

func (s *Store) GetByAccountNumber(_ context.Context, accountNumber string) (domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.findByAccountNumber(accountNumber)
	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound
	}
	return account, nil
}

func (s *Store) ExistsByAccountNumber(_ context.Context, accountNumber string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.findByAccountNumber(accountNumber)
	return ok, nil
}

func (s *Store) Deposit(_ context.Context, userID string, amount decimal.Decimal) (domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[userID]
	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound
	}

	account.Balance = account.Balance.Add(amount)
	account.UpdatedAt = time.Now()
	s.accounts[userID] = account

	s.appendTransaction(userID, domain.TransactionTypeDeposit, amount,
		fmt.Sprintf("Deposited %s", amount.StringFixed(2)))

	return account, nil
}

func (s *Store) Withdraw(_ context.Context, userID string, amount decimal.Decimal) (domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[userID]
	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound
	}

	if account.Balance.LessThan(amount) {
		return domain.Account{}, domain.ErrInsufficientFunds
	}

	account.Balance = account.Balance.Sub(amount)
	account.UpdatedAt = time.Now()
	s.accounts[userID] = account

	s.appendTransaction(userID, domain.TransactionTypeWithdraw, amount,
		fmt.Sprintf("Withdrew %s", amount.StringFixed(2)))

	return account, nil
}

func (s *Store) Transfer(_ context.Context, senderUserID string, receiverAccountNumber string, amount decimal.Decimal, reference string) (domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sender, ok := s.accounts[senderUserID]
	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound
	}
	if sender.AccountNumber == receiverAccountNumber {
		return domain.Account{}, domain.ErrSelfTransfer
	}

	receiver, ok := s.findByAccountNumber(receiverAccountNumber)
	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound
	}

	if sender.Balance.LessThan(amount) {
		return domain.Account{}, domain.ErrInsufficientFunds
	}

	now := time.Now()
	sender.Balance = sender.Balance.Sub(amount)
	sender.UpdatedAt = now
	receiver.Balance = receiver.Balance.Add(amount)
	receiver.UpdatedAt = now
	s.accounts[sender.UserID] = sender
	s.accounts[receiver.UserID] = receiver

	s.appendTransaction(sender.UserID, domain.TransactionTypeTransfer, amount,
		fmt.Sprintf("Transferred %s to account %s (ref %s)", amount.StringFixed(2), receiver.AccountNumber, reference))
	s.appendTransaction(receiver.UserID, domain.TransactionTypeDeposit, amount,
		fmt.Sprintf("Received %s from account %s (ref %s)", amount.StringFixed(2), sender.AccountNumber, reference))

	return sender, nil
}

func (s *Store) ListByUser(_ context.Context, userID string, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := make([]domain.Transaction, 0)
	for _, txn := range s.transactions {
		if txn.UserID != userID {
			continue
		}
		if filter.StartDate != nil && txn.CreatedAt.Before(startOfDay(*filter.StartDate)) {
			continue
		}
		if filter.EndDate != nil && !txn.CreatedAt.Before(startOfDay(*filter.EndDate).AddDate(0, 0, 1)) {
			continue
		}
		if filter.Type != nil && txn.Type != *filter.Type {
			continue
		}
		matched = append(matched, txn)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}

	return matched, nil
}

func (s *Store) ListByUserAscending(_ context.Context, userID string) ([]domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := make([]domain.Transaction, 0)
	for _, txn := range s.transactions {
		if txn.UserID == userID {
			matched = append(matched, txn)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})

	return matched, nil
}

func (s *Store) GetByIDForUser(_ context.Context, id string, userID string) (domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, txn := range s.transactions {
		if txn.ID == id && txn.UserID == userID {
			return txn, nil
		}
	}
	return domain.Transaction{}, domain.ErrRecordNotFound
}

func (s *Store) SumByType(_ context.Context, userID string, txType domain.TransactionType) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, txn := range s.transactions {
		if txn.UserID == userID && txn.Type == txType {
			total = total.Add(txn.Amount)
		}
	}
	return total, nil
}

// Profiles exposes the profile rows behind the ProfileRepository contract.
// A separate view is needed because the account side already claims the
// GetByUserID method name on Store.
func (s *Store) Profiles() *ProfileStore {
	return &ProfileStore{store: s}
}

type ProfileStore struct {
	store *Store
}

func (p *ProfileStore) GetByUserID(_ context.Context, userID string) (domain.Profile, error) {
	return p.store.profileByUserID(userID)
}

func (p *ProfileStore) UpdateImagePath(_ context.Context, userID string, imagePath string) (domain.Profile, error) {
	p.store.mu.Lock()
	defer p.store.mu.Unlock()

	profile, ok := p.store.profiles[userID]
	if !ok {
		return domain.Profile{}, domain.ErrRecordNotFound
	}

	profile.ImagePath = &imagePath
	profile.UpdatedAt = time.Now()
	p.store.profiles[userID] = profile

	return profile, nil
}

// Transactions returns a copy of the full append-only log, for assertions.
func (s *Store) Transactions() []domain.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out
}

// SeedAccount inserts a user and an account directly, bypassing
// registration, for test setup.
func (s *Store) SeedAccount(username string, accountNumber string, balance decimal.Decimal) domain.Account {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	user := domain.User{
		ID:        s.generateID("user"),
		Username:  username,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.users[user.ID] = user

	account := domain.Account{
		ID:            s.generateID("account"),
		UserID:        user.ID,
		AccountNumber: accountNumber,
		Balance:       balance,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	s.accounts[user.ID] = account

	s.profiles[user.ID] = domain.Profile{
		ID:        s.generateID("profile"),
		UserID:    user.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	return account
}

func (s *Store) profileByUserID(userID string) (domain.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, ok := s.profiles[userID]
	if !ok {
		return domain.Profile{}, domain.ErrRecordNotFound
	}
	return profile, nil
}

func (s *Store) findByAccountNumber(accountNumber string) (domain.Account, bool) {
	for _, account := range s.accounts {
		if account.AccountNumber == accountNumber {
			return account, true
		}
	}
	return domain.Account{}, false
}

func (s *Store) appendTransaction(userID string, txType domain.TransactionType, amount decimal.Decimal, description string) {
	s.transactions = append(s.transactions, domain.Transaction{
		ID:          s.generateID("txn"),
		UserID:      userID,
		Type:        txType,
		Amount:      amount,
		Description: description,
		CreatedAt:   time.Now(),
	})
}

func (s *Store) generateID(prefix string) string {
	s.nextID++
	return fmt.Sprintf("%s-%d", prefix, s.nextID)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
