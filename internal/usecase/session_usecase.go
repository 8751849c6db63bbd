package usecase

import (
	"context"

	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
)

type SessionUseCase struct {
	sessions SessionRepository
	logger   logger.Logger
}

func NewSessionUC(sessions SessionRepository, logger logger.Logger) *SessionUseCase {
	return &SessionUseCase{sessions: sessions, logger: logger}
}

// Ensure возвращает id живой сессии: продлевает переданную или создаёт новую,
// если id пустой, неизвестный или сессия истекла.
func (s *SessionUseCase) Ensure(ctx context.Context, id string) (string, error) {
	const op = "SessionUseCase.Ensure"

	if id != "" && s.sessions.Touch(ctx, id) {
		return id, nil
	}

	newID, err := s.sessions.Create(ctx)
	if err != nil {
		return "", e.Wrap(op, err)
	}

	s.logger.Debugf("session created: %s", newID)
	return newID, nil
}
