// services/qrcode_service.go
package services

import (
	"errors"
	"net/url"
	"strings"

	"github.com/skip2/go-qrcode"
)

// QREncoder matches qrcode.Encode so tests can swap the encoder.
type QREncoder func(content string, level qrcode.RecoveryLevel, size int) ([]byte, error)

// EventShareURL is the public detail page of an event.
func EventShareURL(applicationURL, eventID string) string {
	return strings.TrimRight(applicationURL, "/") + "/events/" + url.PathEscape(eventID)
}

// GenerateEventQRCode renders a PNG QR code pointing at the event's page.
func GenerateEventQRCode(applicationURL, eventID string, size int, encode QREncoder) ([]byte, error) {
	if size <= 0 {
		return nil, errors.New("invalid size: must be positive")
	}
	if eventID == "" {
		return nil, errors.New("missing event id")
	}
	if encode == nil {
		encode = qrcode.Encode
	}

	png, err := encode(EventShareURL(applicationURL, eventID), qrcode.Medium, size)
	if err != nil {
		return nil, err
	}
	return png, nil
}
