package farmer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"agritrust/models"
)

func seedFarmerWithResetCode(repo *fakeFarmerRepo, expiresAt time.Time) *models.Farmer {
	record := &models.Farmer{
		ID:             "farmer-1",
		Email:          "amina@example.com",
		Username:       "aminafarms",
		Firstname:      "Amina",
		ResetCode:      "482913",
		ResetExpiresAt: expiresAt,
	}
	repo.farmers[record.ID] = record
	return record
}

func TestVerifyResetCode_Valid(t *testing.T) {
	repo := newFakeFarmerRepo()
	seedFarmerWithResetCode(repo, time.Now().Add(5*time.Minute))
	svc := newTestService(repo)

	assert.NoError(t, svc.VerifyResetCode("Amina@Example.com", "482913"))
}

func TestVerifyResetCode_Wrong(t *testing.T) {
	repo := newFakeFarmerRepo()
	seedFarmerWithResetCode(repo, time.Now().Add(5*time.Minute))
	svc := newTestService(repo)

	err := svc.VerifyResetCode("amina@example.com", "000000")
	require.Error(t, err)

	var aerr AuthError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, "invalid reset code", aerr.Message)
}

func TestVerifyResetCode_Expired(t *testing.T) {
	repo := newFakeFarmerRepo()
	seedFarmerWithResetCode(repo, time.Now().Add(-time.Minute))
	svc := newTestService(repo)

	err := svc.VerifyResetCode("amina@example.com", "482913")
	require.Error(t, err)

	var aerr AuthError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, "reset code has expired", aerr.Message)
}

func TestVerifyResetCode_UnknownEmail(t *testing.T) {
	svc := newTestService(newFakeFarmerRepo())

	err := svc.VerifyResetCode("nobody@example.com", "482913")
	require.Error(t, err)

	var nerr NotFoundError
	require.ErrorAs(t, err, &nerr)
}

func TestResetPassword_ConsumesCode(t *testing.T) {
	repo := newFakeFarmerRepo()
	seedFarmerWithResetCode(repo, time.Now().Add(5*time.Minute))
	svc := newTestService(repo)

	require.NoError(t, svc.ResetPassword("amina@example.com", "482913", "newsecret"))

	require.Len(t, repo.updates, 1)
	update := repo.updates[0]
	set, ok := update["$set"].(bson.M)
	require.True(t, ok)
	assert.NotEmpty(t, set["password_hash"])
	assert.NotEqual(t, "newsecret", set["password_hash"])

	unset, ok := update["$unset"].(bson.M)
	require.True(t, ok)
	assert.Contains(t, unset, "reset_code")
	assert.Contains(t, unset, "reset_expires_at")
}

func TestResetPassword_ShortPassword(t *testing.T) {
	repo := newFakeFarmerRepo()
	seedFarmerWithResetCode(repo, time.Now().Add(5*time.Minute))
	svc := newTestService(repo)

	err := svc.ResetPassword("amina@example.com", "482913", "abc")
	require.Error(t, err)

	var verr ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Empty(t, repo.updates)
}
