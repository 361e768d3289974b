package catalog

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Product mirrors the remote catalog entity. Stock is a pointer because
// drink products omit it entirely.
type Product struct {
	UUID        string          `json:"uuid"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Thumbnail   string          `json:"thumbnail"`
	Images      ImageList       `json:"images"`
	Stock       *int            `json:"stock,omitempty"`
}

// PrimaryImage picks the best display image, preferring the thumbnail.
func (p Product) PrimaryImage() string {
	if p.Thumbnail != "" {
		return p.Thumbnail
	}
	if len(p.Images) > 0 {
		return p.Images[0]
	}
	return ""
}

// ImageList tolerates the remote API returning either a single image URL
// string or an array of URLs.
type ImageList []string

func (l *ImageList) UnmarshalJSON(data []byte) error {
	var many []string
	if err := json.Unmarshal(data, &many); err == nil {
		*l = many
		return nil
	}
	var one string
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	if one == "" {
		*l = nil
		return nil
	}
	*l = ImageList{one}
	return nil
}

// Category mirrors the remote category entity.
type Category struct {
	UUID string `json:"uuid"`
	Name string `json:"name"`
}

// Review mirrors the remote review entity.
type Review struct {
	UUID      string    `json:"uuid"`
	Comment   string    `json:"comment"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	IsDeleted bool      `json:"isDeleted"`
}

// CartItemPayload is the body posted to carts/add-item-to-cart.
type CartItemPayload struct {
	UserUUID     string          `json:"userUuid"`
	ProductUUID  string          `json:"productUuid"`
	SugarLevel   string          `json:"sugarLevel,omitempty"`
	Qty          int             `json:"qty"`
	ProductName  string          `json:"productName,omitempty"`
	ProductPrice decimal.Decimal `json:"productPrice,omitempty"`
	ProductImage string          `json:"productImage,omitempty"`
}

// Order mirrors the remote order entity returned by checkout.
type Order struct {
	UUID     string           `json:"uuid"`
	Items    []OrderItem      `json:"items"`
	Subtotal *decimal.Decimal `json:"subtotal,omitempty"`
	Tax      *decimal.Decimal `json:"tax,omitempty"`
	Shipping *decimal.Decimal `json:"shipping,omitempty"`
	Total    *decimal.Decimal `json:"total,omitempty"`
}

// OrderItem is one line of a remote order.
type OrderItem struct {
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Qty        int             `json:"qty"`
	SugarLevel string          `json:"sugarLevel,omitempty"`
}

// PaymentRequest is the body posted to record a settled payment.
type PaymentRequest struct {
	OrderUUID     string          `json:"orderId"`
	PaymentMethod string          `json:"paymentMethod"`
	Amount        decimal.Decimal `json:"amount"`
	Status        string          `json:"status"`
}

// QRCode is the Bakong payment QR payload.
type QRCode struct {
	QRCode string `json:"qrCode"`
}

// LoginResult is the remote API's login response payload.
type LoginResult struct {
	UUID        string `json:"uuid"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	AccessToken string `json:"accessToken"`
}
