package backend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"

	"github.com/realahmed45/future-bali-frontend/internal/domain"
)

type generateOTPResponse struct {
	envelope
	OTP string `json:"otp"`
}

// GenerateOTP asks the backend for a one-time code for email.
// The code comes back in the response and is relayed to the user by email.
func (c *Client) GenerateOTP(ctx context.Context, email string, opts ...CallOption) (string, error) {
	var resp generateOTPResponse
	if err := c.doJSON(ctx, "generate_otp", http.MethodPost, "/auth/generate-otp", map[string]string{"email": email}, &resp, opts); err != nil {
		return "", err
	}
	if !resp.Success {
		return "", &APIError{StatusCode: http.StatusOK, Message: resp.Message}
	}
	return resp.OTP, nil
}

type verifyOTPResponse struct {
	envelope
	Token string `json:"token"`
}

// VerifyOTP exchanges email and code for a bearer token
func (c *Client) VerifyOTP(ctx context.Context, email, otp string, opts ...CallOption) (string, error) {
	var resp verifyOTPResponse
	body := map[string]string{"email": email, "otp": otp}
	if err := c.doJSON(ctx, "verify_otp", http.MethodPost, "/auth/verify-otp", body, &resp, opts); err != nil {
		return "", err
	}
	if !resp.Success || resp.Token == "" {
		return "", &APIError{StatusCode: http.StatusOK, Message: resp.Message}
	}
	return resp.Token, nil
}

type verifyTokenResponse struct {
	envelope
	User struct {
		Email string `json:"email"`
	} `json:"user"`
}

// VerifyToken validates the current bearer token and returns the account email
func (c *Client) VerifyToken(ctx context.Context, opts ...CallOption) (string, error) {
	var resp verifyTokenResponse
	if err := c.doJSON(ctx, "verify_token", http.MethodGet, "/auth/verify-token", nil, &resp, opts); err != nil {
		return "", err
	}
	if !resp.Success {
		return "", &APIError{StatusCode: http.StatusUnauthorized, Message: resp.Message}
	}
	return resp.User.Email, nil
}

// SaveCartRequest is the cart payload; Email is set once the user is verified
type SaveCartRequest struct {
	Email          string              `json:"email,omitempty"`
	BasePackage    *domain.BasePackage `json:"basePackage"`
	SelectedAddOns []domain.AddOn      `json:"selectedAddOns"`
	TotalAmount    float64             `json:"totalAmount"`
}

type saveCartResponse struct {
	envelope
	Cart struct {
		ID string `json:"_id"`
	} `json:"cart"`
}

// SaveCart persists the package selection and returns the cart id
func (c *Client) SaveCart(ctx context.Context, req SaveCartRequest, opts ...CallOption) (string, error) {
	var resp saveCartResponse
	if err := c.doJSON(ctx, "save_cart", http.MethodPost, "/cart/save", req, &resp, opts); err != nil {
		return "", err
	}
	if !resp.Success {
		return "", &APIError{StatusCode: http.StatusOK, Message: resp.Message}
	}
	return resp.Cart.ID, nil
}

// CreateOrderRequest turns a saved cart into an order
type CreateOrderRequest struct {
	CartID         string              `json:"cartId"`
	BasePackage    *domain.BasePackage `json:"basePackage"`
	SelectedAddOns []domain.AddOn      `json:"selectedAddOns"`
	TotalAmount    float64             `json:"totalAmount"`
}

type createOrderResponse struct {
	envelope
	Order struct {
		ID string `json:"_id"`
	} `json:"order"`
}

// CreateOrder creates the order for a saved cart and returns its id
func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest, opts ...CallOption) (string, error) {
	var resp createOrderResponse
	if err := c.doJSON(ctx, "create_order", http.MethodPost, "/orders/create", req, &resp, opts); err != nil {
		return "", err
	}
	if !resp.Success || resp.Order.ID == "" {
		return "", &APIError{StatusCode: http.StatusOK, Message: resp.Message}
	}
	return resp.Order.ID, nil
}

// SaveUserInfo stores the people named on the order
func (c *Client) SaveUserInfo(ctx context.Context, orderID string, people []domain.Person, opts ...CallOption) error {
	body := struct {
		OrderID  string          `json:"orderId"`
		UserInfo []domain.Person `json:"userInfo"`
	}{orderID, people}
	return c.doJSON(ctx, "save_user_info", http.MethodPost, "/orders/save-user-info", body, nil, opts)
}

// InheritanceContact is the wire shape of an inheritance contact. Local ids are not sent.
type InheritanceContact struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
	PassportID  string `json:"passportId"`
	Percentage  string `json:"percentage"`
}

// SaveInheritance stores the inheritance contacts of an order
func (c *Client) SaveInheritance(ctx context.Context, orderID string, contacts []domain.Contact, opts ...CallOption) error {
	wire := make([]InheritanceContact, 0, len(contacts))
	for _, ct := range contacts {
		wire = append(wire, InheritanceContact{
			Name:        ct.Name,
			PhoneNumber: ct.PhoneNumber,
			PassportID:  ct.PassportID,
			Percentage:  ct.Percentage,
		})
	}
	body := struct {
		OrderID  string               `json:"orderId"`
		Contacts []InheritanceContact `json:"contacts"`
	}{orderID, wire}
	return c.doJSON(ctx, "save_inheritance", http.MethodPost, "/orders/save-inheritance", body, nil, opts)
}

// SaveEmergency stores the emergency contacts of an order, including uploaded id image paths
func (c *Client) SaveEmergency(ctx context.Context, orderID string, contacts []domain.Contact, opts ...CallOption) error {
	body := struct {
		OrderID  string           `json:"orderId"`
		Contacts []domain.Contact `json:"contacts"`
	}{orderID, contacts}
	return c.doJSON(ctx, "save_emergency", http.MethodPost, "/orders/save-emergency", body, nil, opts)
}

// FinalizeOrder submits billing details and closes the order for payment
func (c *Client) FinalizeOrder(ctx context.Context, orderID string, billing domain.BillingDetails, opts ...CallOption) error {
	body := struct {
		OrderID        string                `json:"orderId"`
		BillingDetails domain.BillingDetails `json:"billingDetails"`
	}{orderID, billing}
	return c.doJSON(ctx, "finalize_order", http.MethodPost, "/orders/finalize", body, nil, opts)
}

type getOrderResponse struct {
	envelope
	Order *domain.Order `json:"order"`
}

// GetOrder fetches a server-side order by id
func (c *Client) GetOrder(ctx context.Context, orderID string, opts ...CallOption) (*domain.Order, error) {
	var resp getOrderResponse
	if err := c.doJSON(ctx, "get_order", http.MethodGet, "/orders/"+url.PathEscape(orderID), nil, &resp, opts); err != nil {
		return nil, err
	}
	if !resp.Success || resp.Order == nil {
		return nil, &APIError{StatusCode: http.StatusOK, Message: resp.Message}
	}
	return resp.Order, nil
}

// GenerateContract records the payment and renders the contract for an order
func (c *Client) GenerateContract(ctx context.Context, orderID string, payment domain.PaymentDetails, opts ...CallOption) error {
	body := struct {
		OrderID        string                `json:"orderId"`
		PaymentDetails domain.PaymentDetails `json:"paymentDetails"`
	}{orderID, payment}
	var resp envelope
	if err := c.doJSON(ctx, "generate_contract", http.MethodPost, "/contracts/generate", body, &resp, opts); err != nil {
		return err
	}
	if !resp.Success {
		return &APIError{StatusCode: http.StatusOK, Message: resp.Message}
	}
	return nil
}

// ContractDownloadURL is the public link to the generated contract
func (c *Client) ContractDownloadURL(orderID string) string {
	return c.baseURL + "/contracts/download/" + url.PathEscape(orderID)
}

type uploadResponse struct {
	envelope
	FilePath string `json:"filePath"`
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// Upload sends one document as multipart field "file" and returns the stored path
func (c *Client) Upload(ctx context.Context, filename, contentType string, r io.Reader, opts ...CallOption) (string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(filename)))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", fmt.Errorf("failed to read upload %s: %w", filename, err)
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	var resp uploadResponse
	if err := c.do(ctx, "upload", http.MethodPost, "/upload", w.FormDataContentType(), &buf, &resp, opts); err != nil {
		return "", err
	}
	if resp.FilePath == "" {
		return "", &APIError{StatusCode: http.StatusOK, Message: resp.Message}
	}
	return resp.FilePath, nil
}
