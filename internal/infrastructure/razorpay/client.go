// Package razorpay adaptador de la pasarela de pagos Razorpay (Orders API y firmas de checkout).
package razorpay

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jhoicas/BillSync-api/internal/application/payment"
	"github.com/jhoicas/BillSync-api/pkg/config"
)

var _ payment.Gateway = (*Client)(nil)

// Client habla con la API REST de Razorpay usando net/http.
type Client struct {
	keyID      string
	keySecret  string
	baseURL    string
	httpClient *http.Client
}

// NewClient construye el cliente. Sin credenciales, CreateOrder devuelve error y ninguna firma verifica.
func NewClient(cfg config.GatewayConfig) *Client {
	return &Client{
		keyID:      cfg.KeyID,
		keySecret:  cfg.KeySecret,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type orderRequest struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}

type orderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Error    *struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// CreateOrder crea una orden en unidades menores de la moneda.
func (c *Client) CreateOrder(ctx context.Context, amount int64, currency, receipt string, notes map[string]string) (*payment.GatewayOrder, error) {
	if c.keyID == "" || c.keySecret == "" {
		return nil, fmt.Errorf("razorpay: credenciales no configuradas")
	}

	body, err := json.Marshal(orderRequest{Amount: amount, Currency: currency, Receipt: receipt, Notes: notes})
	if err != nil {
		return nil, fmt.Errorf("razorpay: serializar orden: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("razorpay: crear request: %w", err)
	}
	req.SetBasicAuth(c.keyID, c.keySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("razorpay: timeout o cancelación: %w", ctx.Err())
		}
		return nil, fmt.Errorf("razorpay: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return nil, fmt.Errorf("razorpay: leer respuesta: %w", err)
	}
	var out orderResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("razorpay: respuesta inválida (HTTP %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK {
		if out.Error != nil {
			return nil, fmt.Errorf("razorpay: HTTP %d %s: %s", resp.StatusCode, out.Error.Code, out.Error.Description)
		}
		return nil, fmt.Errorf("razorpay: HTTP %d", resp.StatusCode)
	}
	if out.ID == "" {
		return nil, fmt.Errorf("razorpay: orden sin id")
	}
	return &payment.GatewayOrder{ID: out.ID, Amount: out.Amount, Currency: out.Currency, Receipt: out.Receipt}, nil
}

// VerifySignature compara la firma del checkout con HMAC-SHA256(orderID|paymentID) en tiempo constante.
func (c *Client) VerifySignature(orderID, paymentID, signature string) bool {
	if c.keySecret == "" || signature == "" {
		return false
	}
	got, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}
	return hmac.Equal(got, Sign(c.keySecret, orderID, paymentID))
}

func (c *Client) KeyID() string { return c.keyID }

// Sign calcula la firma cruda que Razorpay envía en hexadecimal.
func Sign(secret, orderID, paymentID string) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return mac.Sum(nil)
}
