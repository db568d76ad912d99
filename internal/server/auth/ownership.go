package auth

import "github.com/dmitrijs2005/gophnotes/internal/common"

// CheckOwner allows access only when the authenticated principal owns the
// resource. Whether the resource exists is the caller's concern.
func CheckOwner(authenticated, owner Principal) error {
	if !authenticated.Valid() || authenticated != owner {
		return common.ErrForbidden
	}
	return nil
}
