package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"elyseeWeb/internal/shared/auth"
)

type ConnectConciergeInput struct {
	Token string
}

type ConnectConciergeOutput struct {
	Claims *auth.Claims
	Topics []string
}

// ConnectConciergeUseCase authorises a staff member before their stream is opened.
type ConnectConciergeUseCase struct {
	Validator auth.TokenValidator
	topics    []string
}

var ErrConciergeDisabled = errors.New("concierge stream disabled")

func NewConnectConciergeUseCase(validator auth.TokenValidator, topics []string) *ConnectConciergeUseCase {
	clean := make([]string, 0, len(topics))
	for _, topic := range topics {
		if trimmed := strings.TrimSpace(topic); trimmed != "" {
			clean = append(clean, trimmed)
		}
	}
	return &ConnectConciergeUseCase{Validator: validator, topics: clean}
}

func (uc *ConnectConciergeUseCase) Execute(_ context.Context, input ConnectConciergeInput) (*ConnectConciergeOutput, error) {
	if uc.Validator == nil {
		return nil, ErrConciergeDisabled
	}
	if strings.TrimSpace(input.Token) == "" {
		return nil, auth.ErrMissingToken
	}

	claims, err := uc.Validator.Validate(input.Token)
	if err != nil {
		slog.Warn("connect-concierge token validation failed", slog.Any("error", err))
		return nil, err
	}
	slog.Info("connect-concierge token valid", slog.String("subject", claims.Subject), slog.String("sessionId", claims.SessionID), slog.Any("roles", claims.Roles))

	return &ConnectConciergeOutput{Claims: claims, Topics: append([]string(nil), uc.topics...)}, nil
}
