package api

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/CrestNiraj12/feedthread/domain"
)

// accountService implements app.AccountService over the REST API.
type accountService struct {
	client *Client
	cached domain.User
}

// NewAccountService creates an AccountService backed by the REST API.
func NewAccountService(client *Client) *accountService {
	return &accountService{client: client}
}

// CurrentUser returns the authenticated account, cached after the first success.
func (s *accountService) CurrentUser(ctx context.Context) (domain.User, error) {
	if s.cached.ID != "" {
		return s.cached, nil
	}
	data, err := s.client.Get(ctx, "/api/users/me")
	if err != nil {
		return domain.User{}, fmt.Errorf("fetching account: %w", err)
	}
	var acct struct {
		ID       flexID `json:"id"`
		Name     string `json:"name"`
		FullName string `json:"fullName"`
	}
	if err := json.Unmarshal(data, &acct); err != nil {
		return domain.User{}, fmt.Errorf("parsing account: %w", err)
	}
	if acct.ID == "" {
		return domain.User{}, fmt.Errorf("parsing account: %w", domain.ErrMissingID)
	}
	s.cached = domain.User{
		ID:   string(acct.ID),
		Name: sanitizeForTerminal(firstNonEmpty(acct.FullName, acct.Name)),
	}
	return s.cached, nil
}
