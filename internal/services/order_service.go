package services

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"order_manager/internal/logger"
	"order_manager/internal/models"
	"order_manager/internal/repository"

	"github.com/shopspring/decimal"
)

// ErrInvalidDeleteCode is returned when the supplied deletion code does not
// match the configured one.
var ErrInvalidDeleteCode = errors.New("invalid delete code")

var allowedImageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

const imageTimestampLayout = "20060102150405"

// OrderForm carries the submitted order fields. All values arrive as free
// text; the three amount fields are coerced to numbers on submission.
type OrderForm struct {
	FirstName          string `form:"first_name" json:"first_name"`
	LastName           string `form:"last_name" json:"last_name"`
	WeightKg           string `form:"weight_kg" json:"weight_kg"`
	HeightCm           string `form:"height_cm" json:"height_cm"`
	Address            string `form:"address" json:"address"`
	Phone              string `form:"phone" json:"phone"`
	SocialLink         string `form:"social_link" json:"social_link"`
	OrderLink          string `form:"order_link" json:"order_link"`
	ProductDescription string `form:"product_desc" json:"product_desc"`
	Comment            string `form:"comment" json:"comment"`
	CostPrice          string `form:"cost_price" json:"cost_price"`
	SalePrice          string `form:"sale_price" json:"sale_price"`
	OtherCost          string `form:"other_cost" json:"other_cost"`
	ShippingMethod     string `form:"shipping_method" json:"shipping_method"`
	DiscountType       string `form:"discount_type" json:"discount_type"`
	DiscountValue      string `form:"discount_value" json:"discount_value"`
	DiscountNotes      string `form:"discount_notes" json:"discount_notes"`
	PaymentMethod      string `form:"payment_method" json:"payment_method"`
	OrderStatus        string `form:"order_status" json:"order_status"`
}

// ImageUpload is an optional product image attached to a submission.
type ImageUpload struct {
	Filename string
	Reader   io.Reader
}

type OrderService interface {
	SubmitOrder(form OrderForm, image *ImageUpload) (string, error)
	GetOrder(orderID string) (*models.Order, error)
	ListOrders() ([]models.Order, error)
	DeleteOrder(orderID, code string) (bool, error)
}

type orderService struct {
	repo       repository.OrderRepository
	uploadRoot string
	deleteCode string
}

func NewOrderService(repo repository.OrderRepository, uploadRoot, deleteCode string) OrderService {
	return &orderService{repo: repo, uploadRoot: uploadRoot, deleteCode: deleteCode}
}

// SubmitOrder validates and normalizes the submitted fields, stores an
// allowed image under a month-keyed directory, computes the derived financial
// fields once and appends the record. The assigned order id is returned.
// A saved image is not rolled back if the append fails.
func (s *orderService) SubmitOrder(form OrderForm, image *ImageUpload) (string, error) {
	if err := s.repo.EnsureInitialized(); err != nil {
		return "", err
	}

	now := time.Now()
	month := now.Format(models.MonthLayout)

	imagePath := ""
	if image != nil && allowedImage(image.Filename) {
		rel, err := s.saveImage(image, now, month)
		if err != nil {
			return "", fmt.Errorf("failed to save image: %w", err)
		}
		imagePath = rel
	}

	cost := s.amountField("cost_price", form.CostPrice)
	sale := s.amountField("sale_price", form.SalePrice)
	other := s.amountField("other_cost", form.OtherCost)
	profit := sale.Sub(cost).Sub(other)

	fullName := strings.TrimSpace(strings.TrimSpace(form.FirstName) + " " + strings.TrimSpace(form.LastName))

	order := &models.Order{
		FullName:           fullName,
		FirstName:          form.FirstName,
		LastName:           form.LastName,
		WeightKg:           form.WeightKg,
		HeightCm:           form.HeightCm,
		Address:            form.Address,
		Phone:              form.Phone,
		SocialLink:         form.SocialLink,
		OrderLink:          form.OrderLink,
		ProductDescription: form.ProductDescription,
		Comment:            form.Comment,
		CostPrice:          cost,
		SalePrice:          sale,
		OtherCost:          other,
		Profit:             profit,
		OrderDateTime:      now.Format(models.DateTimeLayout),
		OrderMonth:         month,
		ShippingMethod:     form.ShippingMethod,
		DiscountType:       form.DiscountType,
		DiscountValue:      form.DiscountValue,
		DiscountNotes:      form.DiscountNotes,
		PaymentMethod:      form.PaymentMethod,
		OrderStatus:        form.OrderStatus,
		ImagePath:          imagePath,
	}

	orderID, err := s.repo.NextID()
	if err != nil {
		return "", err
	}
	order.OrderID = orderID

	if err := s.repo.Append(order); err != nil {
		return "", err
	}
	return orderID, nil
}

func (s *orderService) GetOrder(orderID string) (*models.Order, error) {
	if err := s.repo.EnsureInitialized(); err != nil {
		return nil, err
	}
	return s.repo.Find(orderID)
}

func (s *orderService) ListOrders() ([]models.Order, error) {
	if err := s.repo.EnsureInitialized(); err != nil {
		return nil, err
	}
	return s.repo.Scan()
}

// DeleteOrder removes the order after checking the deletion code. The
// associated image is removed best-effort before the row. Returns whether a
// matching order existed.
func (s *orderService) DeleteOrder(orderID, code string) (bool, error) {
	if code != s.deleteCode {
		return false, ErrInvalidDeleteCode
	}
	if err := s.repo.EnsureInitialized(); err != nil {
		return false, err
	}

	order, err := s.repo.Find(orderID)
	if err != nil {
		return false, err
	}
	if order == nil {
		return false, nil
	}

	if order.ImagePath != "" {
		imagePath := filepath.Join(s.uploadRoot, filepath.FromSlash(order.ImagePath))
		if err := os.Remove(imagePath); err != nil && !os.IsNotExist(err) {
			logger.Warnw("failed to remove order image", "order_id", orderID, "error", err)
		}
	}
	return s.repo.Delete(orderID)
}

func (s *orderService) saveImage(image *ImageUpload, now time.Time, month string) (string, error) {
	dir := filepath.Join(s.uploadRoot, month)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	filename := now.Format(imageTimestampLayout) + "_" + sanitizeFilename(image.Filename)
	dst, err := os.Create(filepath.Join(dir, filename))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, image.Reader); err != nil {
		return "", err
	}
	return month + "/" + filename, nil
}

// amountField coerces a submitted amount, logging when a supplied value was
// replaced by the zero default.
func (s *orderService) amountField(name, raw string) decimal.Decimal {
	amount, ok := parseAmount(raw)
	if !ok {
		logger.Warnw("unparsable amount coerced to zero", "field", name, "value", raw)
	}
	return amount
}

// parseAmount coerces free-text input to a decimal amount. The second return
// value reports whether the supplied value was used: an empty field counts as
// an intentional zero, an unparsable one does not.
func parseAmount(raw string) (decimal.Decimal, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return decimal.Zero, true
	}
	amount, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, false
	}
	return amount, true
}

func allowedImage(filename string) bool {
	return allowedImageExts[strings.ToLower(filepath.Ext(filename))]
}

// sanitizeFilename strips path components and unsafe characters from an
// uploaded filename.
func sanitizeFilename(filename string) string {
	filename = strings.ReplaceAll(filename, "\\", "/")
	filename = filename[strings.LastIndex(filename, "/")+1:]
	filename = strings.ReplaceAll(filename, " ", "_")
	filename = unsafeFilenameChars.ReplaceAllString(filename, "")
	if filename == "" || strings.Trim(filename, ".") == "" {
		return "upload"
	}
	return filename
}
