package service

import (
	"github.com/google/uuid"
)

// QRCodeService defines the interface for QR code generation and parsing services
type QRCodeService interface {
	// GenerateFollowQR renders a PNG QR code that lets another account follow accountID.
	GenerateFollowQR(accountID uuid.UUID) ([]byte, error)

	// ParseFollowQR decodes a scanned follow payload and returns the account to follow.
	ParseFollowQR(qrData string) (uuid.UUID, error)
}
