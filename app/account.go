package app

import (
	"context"

	"github.com/CrestNiraj12/feedthread/domain"
)

// AccountService provides information about the authenticated user.
type AccountService interface {
	// CurrentUser returns the authenticated account.
	CurrentUser(ctx context.Context) (domain.User, error)
}
