package model

// Item identifies a catalog item in cart and wishlist mutations.
type Item struct {
	ID    string  `json:"item_id"`
	Price float64 `json:"price"`
}

// CartLine is the client's cached belief about one remote cart row.
type CartLine struct {
	ItemID    ID      `json:"book_id"`
	Quantity  Count   `json:"quantity"`
	UnitPrice Decimal `json:"price"`
}

// CartEntry is a cart row with its book, as listed on the cart page.
type CartEntry struct {
	LineID   ID      `json:"cart_id"`
	Quantity Count   `json:"quantity"`
	Price    Decimal `json:"price"`
	Book     Book    `json:"book"`
}

// CartTotal sums price times quantity over entries.
func CartTotal(entries []CartEntry) float64 {
	var total float64
	for _, e := range entries {
		total += float64(e.Price) * float64(e.Quantity)
	}
	return total
}

// MutationOutcome reports the visible quantity of an item after a cart mutation.
type MutationOutcome struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
	// Conflict is set when the item was already in the remote cart.
	Conflict bool `json:"conflict,omitempty"`
	// Noop is set when no remote call was made.
	Noop bool `json:"noop,omitempty"`
	// Stale is set when the item was reopened while the call was in flight;
	// the response was not applied to the new view.
	Stale bool `json:"stale,omitempty"`
}

// CartListing is the cart page: every row and the order total.
type CartListing struct {
	Entries []CartEntry `json:"entries"`
	Total   float64     `json:"total"`
}
