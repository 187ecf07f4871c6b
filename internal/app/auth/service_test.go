package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukemeuu/mani24-kds/internal/adapter/logger"
	"github.com/ukemeuu/mani24-kds/internal/domain"
)

var testRoster = domain.Roster{
	{ID: "s1", Name: "Enock", Role: domain.RoleFrontDesk, PIN: "1001"},
	{ID: "s2", Name: "Paul", Role: domain.RoleChef, PIN: "2001"},
	{ID: "s3", Name: "Samuel", Role: domain.RolePacker, PIN: "3001"},
	{ID: "s4", Name: "Manager Kemi", Role: domain.RoleAdmin, PIN: "9001"},
}

func newService(hour int) *Service {
	svc := NewService(testRoster, domain.ShiftWindow{Start: 8, End: 22}, logger.NewNop())
	svc.now = func() time.Time {
		return time.Date(2025, time.November, 3, hour, 30, 0, 0, time.UTC)
	}
	return svc
}

func TestLogin(t *testing.T) {
	svc := newService(12)

	user, err := svc.Login(context.Background(), domain.RoleChef, "2001")
	require.NoError(t, err)
	assert.Equal(t, "Paul", user.Name)
	assert.Equal(t, domain.RoleChef, user.Role)
}

func TestLogin_WrongPIN(t *testing.T) {
	svc := newService(12)

	_, err := svc.Login(context.Background(), domain.RoleChef, "0000")
	assert.ErrorIs(t, err, domain.ErrStaffNotFound)
}

func TestLogin_PINBoundToRole(t *testing.T) {
	svc := newService(12)

	// A valid chef PIN does not open the front desk.
	_, err := svc.Login(context.Background(), domain.RoleFrontDesk, "2001")
	assert.ErrorIs(t, err, domain.ErrStaffNotFound)
}

func TestLogin_OutsideShift(t *testing.T) {
	svc := newService(23)

	_, err := svc.Login(context.Background(), domain.RolePacker, "3001")
	assert.ErrorIs(t, err, domain.ErrOutsideShift)
}

func TestLogin_ShiftBoundaries(t *testing.T) {
	_, err := newService(8).Login(context.Background(), domain.RoleChef, "2001")
	assert.NoError(t, err, "shift start is inclusive")

	_, err = newService(22).Login(context.Background(), domain.RoleChef, "2001")
	assert.ErrorIs(t, err, domain.ErrOutsideShift, "shift end is exclusive")
}

func TestLogin_AdminBypassesShift(t *testing.T) {
	svc := newService(2)

	user, err := svc.Login(context.Background(), domain.RoleAdmin, "9001")
	require.NoError(t, err)
	assert.Equal(t, "Manager Kemi", user.Name)
}
