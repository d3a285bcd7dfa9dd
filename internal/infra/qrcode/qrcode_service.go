// Package qrcode renders and parses follow QR codes.
package qrcode

import (
	"encoding/json"

	"circle/config"
	"circle/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/skip2/go-qrcode"
)

const (
	followType  = "follow"
	defaultSize = 256
)

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
	baseURL              string
}

// FollowPayload is the JSON encoded in a follow QR code.
type FollowPayload struct {
	AccountID string `json:"account_id"`
	Type      string `json:"type"`
	URL       string `json:"url,omitempty"`
}

// NewQRCodeService creates a new QR code service instance
func NewQRCodeService(size int, errorCorrectionLevel, baseURL string) service.QRCodeService {
	if size <= 0 {
		size = defaultSize
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: recoveryLevel(errorCorrectionLevel),
		baseURL:              baseURL,
	}
}

// NewFromConfig builds the service from the qrcode section.
func NewFromConfig(cfg *config.Config) service.QRCodeService {
	if cfg.QRCode == nil {
		return NewQRCodeService(defaultSize, "M", "")
	}

	return NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel, cfg.QRCode.BaseURL)
}

func recoveryLevel(level string) qrcode.RecoveryLevel {
	switch level {
	case "L":
		return qrcode.Low
	case "Q":
		return qrcode.High
	case "H":
		return qrcode.Highest
	default:
		return qrcode.Medium
	}
}

// GenerateFollowQR renders the follow payload for accountID as PNG.
func (s *qrcodeService) GenerateFollowQR(accountID uuid.UUID) ([]byte, error) {
	payload := FollowPayload{
		AccountID: accountID.String(),
		Type:      followType,
	}
	if s.baseURL != "" {
		payload.URL = s.baseURL + "/api/v1/users/" + accountID.String()
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal QR code data")
	}

	qrCode, err := qrcode.New(string(jsonData), s.errorCorrectionLevel)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create QR code")
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate PNG")
	}

	return pngBytes, nil
}

// ParseFollowQR decodes a scanned follow payload.
func (s *qrcodeService) ParseFollowQR(qrData string) (uuid.UUID, error) {
	var payload FollowPayload
	if err := json.Unmarshal([]byte(qrData), &payload); err != nil {
		return uuid.Nil, errors.Wrap(err, "failed to unmarshal QR code data")
	}

	if payload.Type != followType {
		return uuid.Nil, errors.Errorf("invalid QR code type: %s", payload.Type)
	}

	accountID, err := uuid.Parse(payload.AccountID)
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "failed to parse account ID")
	}

	return accountID, nil
}
