package service

import (
	"fmt"

	"github.com/fernet/fernet-go"

	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/repository"
)

// settingCoinGeckoAPIKey is the settings key for the stored market data API key.
const settingCoinGeckoAPIKey = "coingecko_api_key"

// SettingService stores and retrieves application settings. Secret values
// are encrypted at rest with the configured fernet key.
type SettingService struct {
	settingRepo *repository.SettingRepository
	key         *fernet.Key
}

// NewSettingService creates a new SettingService. fernetKey may be empty, in
// which case secret settings cannot be stored.
func NewSettingService(settingRepo *repository.SettingRepository, fernetKey string) (*SettingService, error) {
	s := &SettingService{settingRepo: settingRepo}
	if fernetKey != "" {
		key, err := fernet.DecodeKey(fernetKey)
		if err != nil {
			return nil, fmt.Errorf("invalid fernet key: %w", err)
		}
		s.key = key
	}
	return s, nil
}

// SetAPIKey encrypts and stores the market data API key.
// Returns apperrors.ErrFernetKeyNotConfigured when no fernet key is set and
// apperrors.ErrMissingAPIKey for an empty value.
func (s *SettingService) SetAPIKey(value string) error {
	if value == "" {
		return apperrors.ErrMissingAPIKey
	}
	if s.key == nil {
		return apperrors.ErrFernetKeyNotConfigured
	}

	token, err := fernet.EncryptAndSign([]byte(value), s.key)
	if err != nil {
		return fmt.Errorf("failed to encrypt api key: %w", err)
	}
	return s.settingRepo.Set(settingCoinGeckoAPIKey, string(token))
}

// APIKey returns the decrypted market data API key, or "" when none is
// stored, the fernet key is missing, or the stored token does not verify.
// Market data requests work without a key, so lookup failures degrade to
// anonymous access instead of erroring.
func (s *SettingService) APIKey() string {
	if s.key == nil {
		return ""
	}
	token, err := s.settingRepo.Get(settingCoinGeckoAPIKey)
	if err != nil {
		return ""
	}

	message := fernet.VerifyAndDecrypt([]byte(token), 0, []*fernet.Key{s.key})
	if message == nil {
		return ""
	}
	return string(message)
}
