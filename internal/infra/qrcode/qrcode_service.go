// Package qrcode renders PNG QR codes that link to public business pages.
package qrcode

import (
	"strings"

	"bizdir/config"
	"bizdir/internal/domain/service"
	"bizdir/internal/errors"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
)

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
	baseURL              string
}

// NewQRCodeService builds the service from the qrcode config section.
func NewQRCodeService(cfg *config.Config) service.QRCodeService {
	return newQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel, cfg.QRCode.BaseURL)
}

func newQRCodeService(size int, errorCorrectionLevel, baseURL string) *qrcodeService {
	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: recoveryLevel(errorCorrectionLevel),
		baseURL:              strings.TrimSuffix(baseURL, "/"),
	}
}

// recoveryLevel maps the L/M/Q/H letters to go-qrcode levels; unknown letters fall back to M.
func recoveryLevel(letter string) qrcode.RecoveryLevel {
	switch strings.ToUpper(letter) {
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

// BusinessURL returns "<baseURL>/business/<id>".
func (s *qrcodeService) BusinessURL(businessID uuid.UUID) string {
	return s.baseURL + "/business/" + businessID.String()
}

// GenerateBusinessQR encodes BusinessURL as a PNG.
func (s *qrcodeService) GenerateBusinessQR(businessID uuid.UUID) ([]byte, error) {
	qrCode, err := qrcode.New(s.BusinessURL(businessID), s.errorCorrectionLevel)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create QR code")
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate PNG")
	}

	return pngBytes, nil
}
