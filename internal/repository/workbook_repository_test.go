package repository

import (
	"path/filepath"
	"testing"

	"order_manager/internal/models"

	"github.com/shopspring/decimal"
)

func newWorkbookTestRepository(t *testing.T) OrderRepository {
	t.Helper()
	return NewWorkbookRepository(filepath.Join(t.TempDir(), "orders.xlsx"))
}

func testOrder(orderID string) *models.Order {
	return &models.Order{
		OrderID:            orderID,
		FullName:           "Jane Doe",
		FirstName:          "Jane",
		LastName:           "Doe",
		WeightKg:           "62",
		HeightCm:           "170",
		Address:            "1 Main St",
		Phone:              "+123456789",
		SocialLink:         "https://instagram.com/janedoe",
		OrderLink:          "https://shop.example.com/item/9",
		ProductDescription: "Blue dress",
		Comment:            "Gift wrap",
		CostPrice:          decimal.RequireFromString("40"),
		SalePrice:          decimal.RequireFromString("100.5"),
		OtherCost:          decimal.RequireFromString("0.5"),
		Profit:             decimal.RequireFromString("60"),
		OrderDateTime:      "2024-01-15 10:30:00",
		OrderMonth:         "2024-01",
		ShippingMethod:     "courier",
		DiscountType:       "percent",
		DiscountValue:      "5",
		DiscountNotes:      "loyal customer",
		PaymentMethod:      "card",
		OrderStatus:        "new",
		ImagePath:          "2024-01/20240115103000_dress.png",
	}
}

func assertOrderEqual(t *testing.T, want, got *models.Order) {
	t.Helper()
	if got.OrderID != want.OrderID {
		t.Fatalf("order_id = %q, want %q", got.OrderID, want.OrderID)
	}
	if got.FullName != want.FullName || got.FirstName != want.FirstName || got.LastName != want.LastName {
		t.Fatalf("name fields = %q/%q/%q, want %q/%q/%q",
			got.FullName, got.FirstName, got.LastName, want.FullName, want.FirstName, want.LastName)
	}
	if got.WeightKg != want.WeightKg || got.HeightCm != want.HeightCm {
		t.Fatalf("physical fields = %q/%q, want %q/%q", got.WeightKg, got.HeightCm, want.WeightKg, want.HeightCm)
	}
	if got.Address != want.Address || got.Phone != want.Phone {
		t.Fatalf("contact fields = %q/%q, want %q/%q", got.Address, got.Phone, want.Address, want.Phone)
	}
	if got.SocialLink != want.SocialLink || got.OrderLink != want.OrderLink {
		t.Fatalf("link fields = %q/%q, want %q/%q", got.SocialLink, got.OrderLink, want.SocialLink, want.OrderLink)
	}
	if got.ProductDescription != want.ProductDescription || got.Comment != want.Comment {
		t.Fatalf("text fields = %q/%q, want %q/%q", got.ProductDescription, got.Comment, want.ProductDescription, want.Comment)
	}
	if !got.CostPrice.Equal(want.CostPrice) || !got.SalePrice.Equal(want.SalePrice) ||
		!got.OtherCost.Equal(want.OtherCost) || !got.Profit.Equal(want.Profit) {
		t.Fatalf("amount fields = %s/%s/%s/%s, want %s/%s/%s/%s",
			got.CostPrice, got.SalePrice, got.OtherCost, got.Profit,
			want.CostPrice, want.SalePrice, want.OtherCost, want.Profit)
	}
	if got.OrderDateTime != want.OrderDateTime || got.OrderMonth != want.OrderMonth {
		t.Fatalf("time fields = %q/%q, want %q/%q", got.OrderDateTime, got.OrderMonth, want.OrderDateTime, want.OrderMonth)
	}
	if got.ShippingMethod != want.ShippingMethod || got.DiscountType != want.DiscountType ||
		got.DiscountValue != want.DiscountValue || got.DiscountNotes != want.DiscountNotes {
		t.Fatalf("shipping/discount fields differ: got %q/%q/%q/%q",
			got.ShippingMethod, got.DiscountType, got.DiscountValue, got.DiscountNotes)
	}
	if got.PaymentMethod != want.PaymentMethod || got.OrderStatus != want.OrderStatus {
		t.Fatalf("payment/status fields = %q/%q, want %q/%q",
			got.PaymentMethod, got.OrderStatus, want.PaymentMethod, want.OrderStatus)
	}
	if got.ImagePath != want.ImagePath {
		t.Fatalf("image_path = %q, want %q", got.ImagePath, want.ImagePath)
	}
}

func TestWorkbookEnsureInitializedIdempotent(t *testing.T) {
	repo := newWorkbookTestRepository(t)
	if err := repo.EnsureInitialized(); err != nil {
		t.Fatalf("first initialize failed: %v", err)
	}
	if err := repo.EnsureInitialized(); err != nil {
		t.Fatalf("second initialize failed: %v", err)
	}

	orders, err := repo.Scan()
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if len(orders) != 0 {
		t.Fatalf("expected empty store, got %d orders", len(orders))
	}
}

func TestWorkbookAppendScanRoundTrip(t *testing.T) {
	repo := newWorkbookTestRepository(t)

	want := testOrder("ORD-0001")
	if err := repo.Append(want); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	orders, err := repo.Scan()
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("expected 1 order, got %d", len(orders))
	}
	assertOrderEqual(t, want, &orders[0])
}

func TestWorkbookScanPreservesInsertionOrder(t *testing.T) {
	repo := newWorkbookTestRepository(t)
	for _, id := range []string{"ORD-0001", "ORD-0002", "ORD-0003"} {
		if err := repo.Append(testOrder(id)); err != nil {
			t.Fatalf("append %s failed: %v", id, err)
		}
	}

	orders, err := repo.Scan()
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if len(orders) != 3 {
		t.Fatalf("expected 3 orders, got %d", len(orders))
	}
	for i, id := range []string{"ORD-0001", "ORD-0002", "ORD-0003"} {
		if orders[i].OrderID != id {
			t.Fatalf("row %d = %q, want %q", i, orders[i].OrderID, id)
		}
	}
}

func TestWorkbookNextID(t *testing.T) {
	repo := newWorkbookTestRepository(t)

	id, err := repo.NextID()
	if err != nil {
		t.Fatalf("next id failed: %v", err)
	}
	if id != "ORD-0001" {
		t.Fatalf("first id = %q, want ORD-0001", id)
	}

	if err := repo.Append(testOrder("ORD-0007")); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	// Malformed ids are skipped when scanning for the max suffix
	if err := repo.Append(testOrder("garbage")); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	id, err = repo.NextID()
	if err != nil {
		t.Fatalf("next id failed: %v", err)
	}
	if id != "ORD-0008" {
		t.Fatalf("next id = %q, want ORD-0008", id)
	}
}

func TestWorkbookNextIDSkipsDeletedSuffixes(t *testing.T) {
	repo := newWorkbookTestRepository(t)
	if err := repo.Append(testOrder("ORD-0001")); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if err := repo.Append(testOrder("ORD-0002")); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	found, err := repo.Delete("ORD-0002")
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if !found {
		t.Fatalf("expected delete to find ORD-0002")
	}

	id, err := repo.NextID()
	if err != nil {
		t.Fatalf("next id failed: %v", err)
	}
	if id != "ORD-0003" {
		t.Fatalf("next id after delete = %q, want ORD-0003", id)
	}
}

func TestWorkbookFind(t *testing.T) {
	repo := newWorkbookTestRepository(t)
	if err := repo.Append(testOrder("ORD-0001")); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	order, err := repo.Find("ORD-0001")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if order == nil {
		t.Fatalf("expected ORD-0001 to be found")
	}

	order, err = repo.Find("ORD-9999")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if order != nil {
		t.Fatalf("expected ORD-9999 to be absent, got %+v", order)
	}
}

func TestWorkbookDeleteMissingLeavesStoreUnchanged(t *testing.T) {
	repo := newWorkbookTestRepository(t)
	if err := repo.Append(testOrder("ORD-0001")); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	found, err := repo.Delete("ORD-9999")
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if found {
		t.Fatalf("expected delete of unknown id to report not found")
	}

	orders, err := repo.Scan()
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if len(orders) != 1 || orders[0].OrderID != "ORD-0001" {
		t.Fatalf("store changed by failed delete: %+v", orders)
	}
}

func TestWorkbookDeleteRemovesOnlyMatch(t *testing.T) {
	repo := newWorkbookTestRepository(t)
	for _, id := range []string{"ORD-0001", "ORD-0002", "ORD-0003"} {
		if err := repo.Append(testOrder(id)); err != nil {
			t.Fatalf("append %s failed: %v", id, err)
		}
	}

	found, err := repo.Delete("ORD-0002")
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if !found {
		t.Fatalf("expected delete to find ORD-0002")
	}

	orders, err := repo.Scan()
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if len(orders) != 2 || orders[0].OrderID != "ORD-0001" || orders[1].OrderID != "ORD-0003" {
		t.Fatalf("unexpected rows after delete: %+v", orders)
	}
}

func TestNextOrderID(t *testing.T) {
	cases := []struct {
		name     string
		existing []string
		want     string
	}{
		{"empty", nil, "ORD-0001"},
		{"sequential", []string{"ORD-0001", "ORD-0002"}, "ORD-0003"},
		{"gaps", []string{"ORD-0001", "ORD-0042"}, "ORD-0043"},
		{"malformed ignored", []string{"ORD-0004", "garbage", "ORD-x", ""}, "ORD-0005"},
		{"beyond four digits", []string{"ORD-99999"}, "ORD-100000"},
	}

	for _, tc := range cases {
		if got := nextOrderID(tc.existing); got != tc.want {
			t.Fatalf("%s: nextOrderID = %q, want %q", tc.name, got, tc.want)
		}
	}
}
