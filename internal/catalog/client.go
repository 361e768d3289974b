package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gracebuffer/storefront/pkg/config"
	pkgerrors "github.com/gracebuffer/storefront/pkg/errors"
	"github.com/gracebuffer/storefront/pkg/metrics"
	"github.com/gracebuffer/storefront/pkg/pagination"
)

const errorBodyReadLimit int64 = 1024

var errBaseURLRequired = errors.New("remote api base url is required")

// Client wraps the remote commerce API consumed by the storefront.
type Client struct {
	httpClient *http.Client
	baseURL    string
	metrics    *metrics.HTTPMetrics
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithMetrics wires remote-call counters into the client.
func WithMetrics(m *metrics.HTTPMetrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient builds the remote API client from configuration.
func NewClient(cfg config.APIConfig, opts ...Option) (*Client, error) {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		return nil, errBaseURLRequired
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: timeout}
	}

	return client, nil
}

// ListProducts fetches one catalog page.
func (c *Client) ListProducts(ctx context.Context, page pagination.Params) ([]Product, error) {
	raw, err := c.get(ctx, "list_products", "products", page.Apply(url.Values{}))
	if err != nil {
		return nil, err
	}
	products, err := decodeList[Product](raw)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode products")
	}
	return products, nil
}

// GetProduct fetches one product by its identifier.
func (c *Client) GetProduct(ctx context.Context, productID string) (*Product, error) {
	if strings.TrimSpace(productID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	raw, err := c.get(ctx, "get_product", "products/"+url.PathEscape(productID), nil)
	if err != nil {
		return nil, err
	}
	product, err := decodeObject[Product](raw)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode product")
	}
	return product, nil
}

// UpdateStock patches a product's remaining stock on the server.
func (c *Client) UpdateStock(ctx context.Context, productID string, stock int) error {
	if strings.TrimSpace(productID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if stock < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "stock must be non-negative")
	}
	body := map[string]int{"stock": stock}
	_, err := c.do(ctx, "update_stock", http.MethodPatch, "products/"+url.PathEscape(productID)+"/stock", nil, body)
	if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeConflict {
		return pkgerrors.Wrap(pkgerrors.CodeOutOfStock, err, "stock update rejected")
	}
	return err
}

// ListCategories fetches the catalog categories.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	raw, err := c.get(ctx, "list_categories", "categories", nil)
	if err != nil {
		return nil, err
	}
	categories, err := decodeList[Category](raw)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode categories")
	}
	return categories, nil
}

// CategoryByName resolves a category by case-insensitive name match.
func (c *Client) CategoryByName(ctx context.Context, name string) (*Category, error) {
	categories, err := c.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	for _, category := range categories {
		if strings.EqualFold(category.Name, name) {
			cat := category
			return &cat, nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("category %q not found", name))
}

// ProductsByCategory fetches one page of a category's products.
func (c *Client) ProductsByCategory(ctx context.Context, categoryID string, page pagination.Params) ([]Product, error) {
	if strings.TrimSpace(categoryID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category id is required")
	}
	raw, err := c.get(ctx, "products_by_category", "products/get-by-category/"+url.PathEscape(categoryID), page.Apply(url.Values{}))
	if err != nil {
		return nil, err
	}
	products, err := decodeList[Product](raw)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode category products")
	}
	return products, nil
}

// ListReviews fetches the reviews for a product.
func (c *Client) ListReviews(ctx context.Context, productID string) ([]Review, error) {
	if strings.TrimSpace(productID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	raw, err := c.get(ctx, "list_reviews", "reviews/products/"+url.PathEscape(productID), nil)
	if err != nil {
		return nil, err
	}
	reviews, err := decodeList[Review](raw)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode reviews")
	}
	return reviews, nil
}

// CreateReview submits a review comment for a product.
func (c *Client) CreateReview(ctx context.Context, productID, comment string) (*Review, error) {
	if strings.TrimSpace(productID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if strings.TrimSpace(comment) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "comment is required")
	}
	raw, err := c.do(ctx, "create_review", http.MethodPost, "reviews/"+url.PathEscape(productID), nil, map[string]string{"comment": comment})
	if err != nil {
		return nil, err
	}
	review, err := decodeObject[Review](raw)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode review")
	}
	return review, nil
}

// AddItemToCart records a cart line on the server.
func (c *Client) AddItemToCart(ctx context.Context, item CartItemPayload) error {
	if strings.TrimSpace(item.UserUUID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "user uuid is required")
	}
	if strings.TrimSpace(item.ProductUUID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product uuid is required")
	}
	if item.Qty < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	_, err := c.do(ctx, "add_item_to_cart", http.MethodPost, "carts/add-item-to-cart", nil, item)
	return err
}

// Checkout converts the shopper's remote cart into an order.
func (c *Client) Checkout(ctx context.Context, userID string) (*Order, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	body := map[string]string{"userUuid": userID}
	raw, err := c.do(ctx, "checkout", http.MethodPost, "carts/checkout", nil, body)
	if err != nil {
		return nil, err
	}
	order, err := decodeObject[Order](raw)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode order")
	}
	return order, nil
}

// GetOrder fetches one order for the given shopper.
func (c *Client) GetOrder(ctx context.Context, orderID, userID string) (*Order, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	query := url.Values{}
	if userID != "" {
		query.Set("userUuid", userID)
	}
	raw, err := c.get(ctx, "get_order", "orders/"+url.PathEscape(orderID), query)
	if err != nil {
		return nil, err
	}
	order, err := decodeObject[Order](raw)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode order")
	}
	return order, nil
}

// CreatePayment records a settled payment against an order.
func (c *Client) CreatePayment(ctx context.Context, payment PaymentRequest) error {
	if strings.TrimSpace(payment.OrderUUID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	if strings.TrimSpace(payment.PaymentMethod) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "payment method is required")
	}
	_, err := c.do(ctx, "create_payment", http.MethodPost, "payments", nil, payment)
	return err
}

// GenerateQR requests a Bakong payment QR code for an order.
func (c *Client) GenerateQR(ctx context.Context, orderID string) (*QRCode, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	raw, err := c.do(ctx, "generate_qr", http.MethodPost, "payments/bakong/qr", nil, map[string]string{"orderId": orderID})
	if err != nil {
		return nil, err
	}
	qr, err := decodeObject[QRCode](raw)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode qr code")
	}
	return qr, nil
}

// Login authenticates against the remote API and returns the user payload.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email and password are required")
	}
	body := map[string]string{"email": email, "password": password}
	raw, err := c.do(ctx, "login", http.MethodPost, "auths/login", nil, body)
	if err != nil {
		return nil, err
	}
	result, err := decodeObject[LoginResult](raw)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode login result")
	}
	return result, nil
}

func (c *Client) get(ctx context.Context, operation, path string, query url.Values) ([]byte, error) {
	return c.do(ctx, operation, http.MethodGet, path, query, nil)
}

func (c *Client) do(ctx context.Context, operation, method, path string, query url.Values, body any) ([]byte, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "remote api client not configured")
	}

	endpoint := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "marshal request body")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build request")
	}
	req.Header.Set("Accept", "*/*")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	c.metrics.IncRemoteCall(operation, err)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, operation+" request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
		cause := fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
		return nil, pkgerrors.Wrap(codeForStatus(resp.StatusCode), cause, operation+" rejected")
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read response body")
	}
	return raw, nil
}

func codeForStatus(status int) pkgerrors.Code {
	switch status {
	case http.StatusUnauthorized:
		return pkgerrors.CodeUnauthorized
	case http.StatusForbidden:
		return pkgerrors.CodeForbidden
	case http.StatusNotFound:
		return pkgerrors.CodeNotFound
	case http.StatusConflict, http.StatusUnprocessableEntity:
		return pkgerrors.CodeConflict
	default:
		return pkgerrors.CodeDependency
	}
}
