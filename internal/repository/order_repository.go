package repository

import (
	"fmt"
	"strconv"
	"strings"

	"order_manager/internal/models"
)

// OrderRepository is the persistence contract for orders. Scan returns rows
// in insertion order; Find and Delete match on the exact order id. Ids are
// never reused, even after deletion.
type OrderRepository interface {
	EnsureInitialized() error
	NextID() (string, error)
	Append(order *models.Order) error
	Scan() ([]models.Order, error)
	Find(orderID string) (*models.Order, error)
	Delete(orderID string) (bool, error)
}

const orderIDPrefix = "ORD-"

// nextOrderID derives a fresh id from the existing ones: the numeric suffix
// of every well-formed id is parsed (malformed ids ignored) and the result is
// max+1, zero-padded to four digits. Gaps left by deletions are permanent.
func nextOrderID(existing []string) string {
	max := 0
	for _, id := range existing {
		_, suffix, found := strings.Cut(id, "-")
		if !found {
			continue
		}
		n, err := strconv.Atoi(suffix)
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return fmt.Sprintf("%s%04d", orderIDPrefix, max+1)
}
