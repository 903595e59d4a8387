package credential

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// qrSize is the rendered PNG edge in pixels, sized for phone screens at
// checkpoint scanning distance.
const qrSize = 512

// QRPNG renders the verification URL as a scannable PNG. Medium error
// correction matches what event badges tolerate (creases, glare) without
// inflating the module count for long URLs.
func QRPNG(verificationURL string) ([]byte, error) {
	png, err := qrcode.Encode(verificationURL, qrcode.Medium, qrSize)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	return png, nil
}
