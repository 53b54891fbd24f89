package qr

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"

	"eventgate/internal/domain"
)

type pngRenderer struct{}

// NewRenderer returns a QRRenderer that encodes tokens as PNG images with
// medium error correction, enough to survive typical print and screen wear.
func NewRenderer() domain.QRRenderer {
	return &pngRenderer{}
}

func (r *pngRenderer) Render(token string, size int) ([]byte, error) {
	if token == "" {
		return nil, fmt.Errorf("empty token")
	}
	if size <= 0 {
		size = 256
	}
	png, err := qrcode.Encode(token, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	return png, nil
}
