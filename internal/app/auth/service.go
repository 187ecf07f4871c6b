package auth

import (
	"context"
	"time"

	"github.com/ukemeuu/mani24-kds/internal/adapter/logger"
	"github.com/ukemeuu/mani24-kds/internal/domain"
	"github.com/ukemeuu/mani24-kds/internal/interfaces"
)

// Service signs staff in against the fixed roster. Non-admin roles are also
// gated on the configured shift window.
type Service struct {
	roster domain.Roster
	shift  domain.ShiftWindow
	logger logger.Logger
	now    func() time.Time
}

func NewService(roster domain.Roster, shift domain.ShiftWindow, lgr logger.Logger) *Service {
	return &Service{
		roster: roster,
		shift:  shift,
		logger: lgr,
		now:    time.Now,
	}
}

var _ interfaces.AuthService = (*Service)(nil)

func (s *Service) Login(ctx context.Context, role domain.Role, pin string) (domain.StaffUser, error) {
	user, ok := s.roster.Find(role, pin)
	if !ok {
		return domain.StaffUser{}, domain.ErrStaffNotFound
	}

	if role != domain.RoleAdmin && !s.shift.Contains(s.now().Hour()) {
		return domain.StaffUser{}, domain.ErrOutsideShift
	}

	s.logger.Info("staff_login", "Staff member signed in", "", map[string]interface{}{
		"staff": user.Name,
		"role":  user.Role,
	})
	return user, nil
}
