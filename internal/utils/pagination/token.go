package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/smart_wallet/internal/core/domain"
)

const timeFormat = time.RFC3339Nano

// EncodeToken creates an opaque cursor from the date and id of the last transaction of a page.
func EncodeToken(date time.Time, id string) string {
	tokenStr := fmt.Sprintf("%s|%s", date.UTC().Format(timeFormat), id)
	return base64.URLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeToken parses a cursor back into the date and id it was built from.
func DecodeToken(token string) (time.Time, string, error) {
	decodedBytes, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 2)
	if len(parts) != 2 || parts[1] == "" {
		return time.Time{}, "", fmt.Errorf("invalid pagination token format (split)")
	}

	date, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return time.Time{}, "", fmt.Errorf("invalid pagination token format (date parse): %w", err)
	}
	return date, parts[1], nil
}

// Page cuts one page out of txns, which must already be ordered newest first.
// The page starts right after the transaction named by token, or, when that
// transaction no longer exists, at the first one dated strictly before it.
// The returned token is empty on the last page.
func Page(txns []domain.Transaction, limit int, token string) ([]domain.Transaction, string, error) {
	start := 0
	if token != "" {
		date, id, err := DecodeToken(token)
		if err != nil {
			return nil, "", err
		}
		start = len(txns)
		for i, t := range txns {
			if t.ID == id {
				start = i + 1
				break
			}
		}
		if start == len(txns) {
			for i, t := range txns {
				if t.Date.Before(date) {
					start = i
					break
				}
			}
		}
	}

	if limit <= 0 || start+limit >= len(txns) {
		return txns[start:], "", nil
	}
	page := txns[start : start+limit]
	last := page[len(page)-1]
	return page, EncodeToken(last.Date, last.ID), nil
}
