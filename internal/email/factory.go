package email

import (
	"fmt"

	"github.com/nfrund/authforms/internal/config"
	"github.com/nfrund/authforms/internal/domain"
)

// NewEmailService picks the sender named by EMAIL_PROVIDER. An empty
// provider means "log".
func NewEmailService(cfg config.Provider) (domain.EmailSender, error) {
	switch provider := cfg.GetEmailProvider(); provider {
	case "", "log":
		return NewLogSender(cfg.GetEmailSender()), nil
	case "resend":
		if cfg.GetEmailAPIKey() == "" {
			return nil, fmt.Errorf("email provider %q requires EMAIL_API_KEY", provider)
		}
		return NewResendSender(cfg.GetEmailAPIKey(), cfg.GetEmailSender()), nil
	default:
		return nil, fmt.Errorf("unknown email provider: %q", provider)
	}
}
