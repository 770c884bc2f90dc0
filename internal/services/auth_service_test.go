package services_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gavelhouse/internal/auctionerrors"
	"gavelhouse/internal/repos"
	"gavelhouse/internal/services"
)

func TestAuthService_RegisterAndLogin(t *testing.T) {
	db := memdb(t)
	svc := &services.AuthService{Users: repos.NewUserRepo(db)}

	u, err := svc.Register("sid-1", "carol", "carol@gavelhouse.test", "S3cretPass!", "S3cretPass!")
	require.NoError(t, err)
	require.Equal(t, "carol", u.Username)

	// registration signs the user in on the same session
	cur, err := svc.CurrentUser("sid-1")
	require.NoError(t, err)
	require.Equal(t, u.ID, cur.ID)

	require.NoError(t, svc.Logout("sid-1"))
	_, err = svc.CurrentUser("sid-1")
	require.Error(t, err)

	got, err := svc.Login("sid-2", "carol", "S3cretPass!")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)

	_, err = svc.Login("sid-2", "carol", "wrong-pass")
	require.ErrorIs(t, err, auctionerrors.ErrBadCreds)
}

func TestAuthService_RegisterRejections(t *testing.T) {
	db := memdb(t)
	svc := &services.AuthService{Users: repos.NewUserRepo(db)}

	_, err := svc.Register("sid-1", "carol", "carol@gavelhouse.test", "S3cretPass!", "other")
	require.ErrorIs(t, err, auctionerrors.ErrValidation)

	// alice is seeded
	_, err = svc.Register("sid-1", "alice", "other@gavelhouse.test", "S3cretPass!", "S3cretPass!")
	require.ErrorIs(t, err, auctionerrors.ErrUsernameTaken)
}
