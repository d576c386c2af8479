// Package proof renders proof-of-purchase codes scanned at the event entrance.
package proof

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/skip2/go-qrcode"
)

const dataURLPrefix = "data:image/png;base64,"

// Payload is encoded in the QR code of every purchase.
type Payload struct {
	TicketID     string    `json:"ticketId"`
	CustomerName string    `json:"customerName"`
	Email        string    `json:"email"`
	Quantity     int       `json:"quantity"`
	PurchaseDate time.Time `json:"purchaseDate"`
}

type Generator struct {
	size  int
	level qrcode.RecoveryLevel
}

func NewGenerator() Generator {
	return Generator{
		size:  256,
		level: qrcode.Medium,
	}
}

// Generate returns the QR code for payload as a PNG data URL.
func (g Generator) Generate(payload Payload) (string, error) {
	content, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshalling payload: %w", err)
	}

	png, err := qrcode.Encode(string(content), g.level, g.size)
	if err != nil {
		return "", fmt.Errorf("encoding qr code: %w", err)
	}

	return dataURLPrefix + base64.StdEncoding.EncodeToString(png), nil
}

// ParsePayload decodes the text read from a scanned code.
func ParsePayload(scanned string) (Payload, error) {
	var p Payload
	if err := json.Unmarshal([]byte(scanned), &p); err != nil {
		return Payload{}, fmt.Errorf("decoding payload: %w", err)
	}

	if p.TicketID == "" || p.Email == "" {
		return Payload{}, errors.New("payload is missing ticket id or email")
	}

	return p, nil
}

// DecodeImage returns the PNG bytes of a data URL produced by Generate.
func DecodeImage(dataURL string) ([]byte, error) {
	encoded, ok := strings.CutPrefix(dataURL, dataURLPrefix)
	if !ok {
		return nil, errors.New("not a png data url")
	}

	png, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decoding base64: %w", err)
	}

	return png, nil
}
