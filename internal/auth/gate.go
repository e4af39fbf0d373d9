// Package auth holds the authorization gate for account-mutating operations
// and the bearer-token plumbing that supplies the acting principal.
package auth

import (
	"storefront-api/internal/model"
)

// Authorize permits admins to act on any account and everyone else only on
// their own. It performs no lookups; the caller resolves the target first.
func Authorize(p model.Principal, targetOwnerID string) error {
	if p.IsAdmin() {
		return nil
	}
	if p.ID != "" && p.ID == targetOwnerID {
		return nil
	}
	return model.NewDomainError(model.KindUnauthorized, "you are not allowed to perform this action")
}
