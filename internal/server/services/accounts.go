package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/paintmap/internal/common"
	"github.com/dmitrijs2005/paintmap/internal/server/idgen"
	"github.com/dmitrijs2005/paintmap/internal/server/models"
	"github.com/dmitrijs2005/paintmap/internal/server/repositories/repomanager"
)

// AuthResult is the outcome of a credential check. An unknown user is a
// normal negative result, not an error.
type AuthResult struct {
	Exists  bool
	Matches bool
	ID      string
}

// Login reports whether the credentials identify an account.
func (r AuthResult) Login() bool {
	return r.Exists && r.Matches
}

// AccountService registers accounts and checks their credentials.
type AccountService struct {
	mu          *sync.RWMutex
	repomanager repomanager.RepositoryManager
	ids         idgen.Generator
	clock       Clock
}

// Count returns the number of live accounts.
func (s *AccountService) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.repomanager.Accounts().Count(ctx)
}

// Create registers userName and gives the account its default map of
// mapType shared at shareLevel. It fails with common.ErrorAlreadyExists
// when the name is taken.
func (s *AccountService) Create(ctx context.Context, userName, password, mapType string, shareLevel int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account := &models.Account{
		ID:       s.ids.NewID(),
		UserName: userName,
		Password: password,
	}

	if err := s.repomanager.Accounts().Create(ctx, account); err != nil {
		return "", fmt.Errorf("error creating account: %w", err)
	}

	m := models.NewDefaultMap(mapType, shareLevel, s.clock.Now())
	if err := s.repomanager.Maps().Put(ctx, account.ID, m); err != nil {
		// keep the one-map-per-account invariant
		_ = s.repomanager.Accounts().Delete(ctx, account.ID)
		return "", fmt.Errorf("error creating map: %w", err)
	}

	return account.ID, nil
}

// Authenticate looks userName up and compares the password.
func (s *AccountService) Authenticate(ctx context.Context, userName, password string) (AuthResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, err := s.repomanager.Accounts().GetByUserName(ctx, userName)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return AuthResult{}, nil
		}
		return AuthResult{}, common.ErrorInternal
	}

	if !checkPassword(account.Password, password) {
		return AuthResult{Exists: true}, nil
	}
	return AuthResult{Exists: true, Matches: true, ID: account.ID}, nil
}

// Resolve returns the account identified by the credentials, or
// common.ErrorUnauthorized.
func (s *AccountService) Resolve(ctx context.Context, userName, password string) (*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resolve(ctx, userName, password)
}

// ChangePassword replaces the password after checking the old one.
func (s *AccountService) ChangePassword(ctx context.Context, userName, oldPassword, newPassword string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.resolve(ctx, userName, oldPassword)
	if err != nil {
		return err
	}

	if err := s.repomanager.Accounts().UpdatePassword(ctx, account.ID, newPassword); err != nil {
		return fmt.Errorf("error updating password: %w", err)
	}
	return nil
}

// Delete removes the account and its map.
func (s *AccountService) Delete(ctx context.Context, userName, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.resolve(ctx, userName, password)
	if err != nil {
		return err
	}

	if err := s.repomanager.Accounts().Delete(ctx, account.ID); err != nil {
		return fmt.Errorf("error deleting account: %w", err)
	}
	if err := s.repomanager.Maps().Delete(ctx, account.ID); err != nil && !errors.Is(err, common.ErrorNotFound) {
		return fmt.Errorf("error deleting map: %w", err)
	}
	return nil
}

// resolve expects s.mu to be held.
func (s *AccountService) resolve(ctx context.Context, userName, password string) (*models.Account, error) {
	account, err := s.repomanager.Accounts().GetByUserName(ctx, userName)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	if !checkPassword(account.Password, password) {
		return nil, common.ErrorUnauthorized
	}
	return account, nil
}

func checkPassword(stored, candidate string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(candidate)) == 1
}
