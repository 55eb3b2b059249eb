package model

// WishlistRow is one membership row returned by the wishlist service.
type WishlistRow struct {
	ID     ID    `json:"id"`
	ItemID ID    `json:"book_id"`
	UserID ID    `json:"userid"`
	Added  *bool `json:"addedtolist,omitempty"`
}

// Listed reports whether the row counts as a current membership.
// Rows without an explicit flag are treated as members.
func (r WishlistRow) Listed() bool {
	return r.Added == nil || *r.Added
}

// WishlistMembership is the membership of one item after a toggle.
type WishlistMembership struct {
	ItemID     string `json:"item_id"`
	InWishlist bool   `json:"in_wishlist"`
}
