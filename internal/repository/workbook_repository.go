package repository

import (
	"fmt"
	"os"

	"order_manager/internal/models"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Orders"

// orderHeaders is the canonical 25-column header row. Column order is part of
// the on-disk contract: external readers rely on positional access.
var orderHeaders = []string{
	"Order ID", "Full Name", "First Name", "Last Name", "Weight (kg)", "Height (cm)",
	"Address", "Phone / Contact", "Social Link", "Order Link", "Product Description", "Comment",
	"Cost Price", "Sale Price", "Other Cost", "Profit", "Order DateTime", "Order Month",
	"Shipping Method", "Discount Type", "Discount Value", "Discount Notes", "Payment Method",
	"Order Status", "Image File",
}

// workbookRepository keeps every order in a single .xlsx file. Each mutation
// reads the whole workbook, changes it in memory and writes it back. There is
// no locking; concurrent writers can lose each other's changes.
type workbookRepository struct {
	path string
}

func NewWorkbookRepository(path string) OrderRepository {
	return &workbookRepository{path: path}
}

func (r *workbookRepository) EnsureInitialized() error {
	if _, err := os.Stat(r.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat workbook: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("failed to name orders sheet: %w", err)
	}
	header := make([]interface{}, len(orderHeaders))
	for i, h := range orderHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}
	if err := f.SaveAs(r.path); err != nil {
		return fmt.Errorf("failed to create workbook: %w", err)
	}
	return nil
}

func (r *workbookRepository) NextID() (string, error) {
	orders, err := r.Scan()
	if err != nil {
		return "", err
	}
	ids := make([]string, 0, len(orders))
	for _, order := range orders {
		ids = append(ids, order.OrderID)
	}
	return nextOrderID(ids), nil
}

func (r *workbookRepository) Append(order *models.Order) error {
	f, err := r.open()
	if err != nil {
		return err
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return fmt.Errorf("failed to read workbook rows: %w", err)
	}
	cell, err := excelize.CoordinatesToCellName(1, len(rows)+1)
	if err != nil {
		return fmt.Errorf("failed to locate append row: %w", err)
	}
	row := orderToRow(order)
	if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
		return fmt.Errorf("failed to append order row: %w", err)
	}
	if err := f.Save(); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func (r *workbookRepository) Scan() ([]models.Order, error) {
	f, err := r.open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read workbook rows: %w", err)
	}
	orders := make([]models.Order, 0)
	for i, row := range rows {
		if i == 0 {
			continue
		}
		orders = append(orders, rowToOrder(row))
	}
	return orders, nil
}

func (r *workbookRepository) Find(orderID string) (*models.Order, error) {
	orders, err := r.Scan()
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if orders[i].OrderID == orderID {
			return &orders[i], nil
		}
	}
	return nil, nil
}

func (r *workbookRepository) Delete(orderID string) (bool, error) {
	f, err := r.open()
	if err != nil {
		return false, err
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return false, fmt.Errorf("failed to read workbook rows: %w", err)
	}
	for i, row := range rows {
		if i == 0 || len(row) == 0 || row[0] != orderID {
			continue
		}
		if err := f.RemoveRow(sheetName, i+1); err != nil {
			return false, fmt.Errorf("failed to remove order row: %w", err)
		}
		if err := f.Save(); err != nil {
			return false, fmt.Errorf("failed to save workbook: %w", err)
		}
		return true, nil
	}
	return false, nil
}

func (r *workbookRepository) open() (*excelize.File, error) {
	if err := r.EnsureInitialized(); err != nil {
		return nil, err
	}
	f, err := excelize.OpenFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	return f, nil
}

func orderToRow(order *models.Order) []interface{} {
	return []interface{}{
		order.OrderID,
		order.FullName,
		order.FirstName,
		order.LastName,
		order.WeightKg,
		order.HeightCm,
		order.Address,
		order.Phone,
		order.SocialLink,
		order.OrderLink,
		order.ProductDescription,
		order.Comment,
		order.CostPrice.InexactFloat64(),
		order.SalePrice.InexactFloat64(),
		order.OtherCost.InexactFloat64(),
		order.Profit.InexactFloat64(),
		order.OrderDateTime,
		order.OrderMonth,
		order.ShippingMethod,
		order.DiscountType,
		order.DiscountValue,
		order.DiscountNotes,
		order.PaymentMethod,
		order.OrderStatus,
		order.ImagePath,
	}
}

func rowToOrder(row []string) models.Order {
	cells := make([]string, len(orderHeaders))
	copy(cells, row)
	return models.Order{
		OrderID:            cells[0],
		FullName:           cells[1],
		FirstName:          cells[2],
		LastName:           cells[3],
		WeightKg:           cells[4],
		HeightCm:           cells[5],
		Address:            cells[6],
		Phone:              cells[7],
		SocialLink:         cells[8],
		OrderLink:          cells[9],
		ProductDescription: cells[10],
		Comment:            cells[11],
		CostPrice:          cellToAmount(cells[12]),
		SalePrice:          cellToAmount(cells[13]),
		OtherCost:          cellToAmount(cells[14]),
		Profit:             cellToAmount(cells[15]),
		OrderDateTime:      cells[16],
		OrderMonth:         cells[17],
		ShippingMethod:     cells[18],
		DiscountType:       cells[19],
		DiscountValue:      cells[20],
		DiscountNotes:      cells[21],
		PaymentMethod:      cells[22],
		OrderStatus:        cells[23],
		ImagePath:          cells[24],
	}
}

// cellToAmount coerces a spreadsheet cell to a decimal amount, defaulting to
// zero for anything unparsable.
func cellToAmount(cell string) decimal.Decimal {
	d, err := decimal.NewFromString(cell)
	if err != nil {
		return decimal.Zero
	}
	return d
}
