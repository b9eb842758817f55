package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gitlab.com/yelinaung/fintrack/internal/models"
)

func TestProfileRepository_Update(t *testing.T) {
	f := setupFixture(t, "0")
	repo := NewProfileRepository(f.db)

	f.profile.Name = "Side business"
	f.profile.Type = models.ProfileTypeBusiness
	require.NoError(t, repo.Update(f.ctx, f.profile))

	got, err := repo.GetByID(f.ctx, f.profile.ID)
	require.NoError(t, err)
	require.Equal(t, "Side business", got.Name)
	require.Equal(t, models.ProfileTypeBusiness, got.Type)

	missing := &models.Profile{ID: -1, Name: "x", Type: models.ProfileTypePersonal}
	require.ErrorIs(t, repo.Update(f.ctx, missing), ErrNotFound)
}
