package session

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Key spellings used by the different issuers of bookstore credentials,
// in lookup order. Every page of the storefront resolves identity through
// these lists, never through its own field names.
var (
	userIDKeys = []string{"userid", "userId", "user_id", "sub", "id"}
	cartIDKeys = []string{"usercartid", "userCartId", "cartId", "cart_id"}
)

// lookup returns the first present, non-empty value among keys.
func lookup(claims map[string]any, keys []string) string {
	for _, key := range keys {
		raw, ok := claims[key]
		if !ok {
			continue
		}
		if v := claimString(raw); v != "" {
			return v
		}
	}
	return ""
}

func claimString(raw any) string {
	switch v := raw.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return ""
	}
}
