package buyer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"agritrust/models"
)

// fakeBuyerRepo is an in-memory BuyerRepository.
type fakeBuyerRepo struct {
	buyers  map[string]*models.Buyer
	updates []bson.M
}

func newFakeBuyerRepo() *fakeBuyerRepo {
	return &fakeBuyerRepo{buyers: make(map[string]*models.Buyer)}
}

func (r *fakeBuyerRepo) Create(b *models.Buyer) error {
	r.buyers[b.ID] = b
	return nil
}

func (r *fakeBuyerRepo) Update(b *models.Buyer) error {
	r.buyers[b.ID] = b
	return nil
}

func (r *fakeBuyerRepo) UpdateWithDocument(id string, update bson.M) error {
	r.updates = append(r.updates, update)
	return nil
}

func (r *fakeBuyerRepo) Delete(id string) error {
	delete(r.buyers, id)
	return nil
}

func (r *fakeBuyerRepo) GetByID(id string) (*models.Buyer, error) {
	return r.buyers[id], nil
}

func (r *fakeBuyerRepo) GetByEmail(email string) (*models.Buyer, error) {
	for _, b := range r.buyers {
		if b.Email == email {
			return b, nil
		}
	}
	return nil, nil
}

func (r *fakeBuyerRepo) GetByUsername(username string) (*models.Buyer, error) {
	for _, b := range r.buyers {
		if b.Username == username {
			return b, nil
		}
	}
	return nil, nil
}

func (r *fakeBuyerRepo) IsUsernameTaken(username string) (bool, error) {
	b, _ := r.GetByUsername(username)
	return b != nil, nil
}

func validRegistration() models.BuyerRegistrationRequest {
	return models.BuyerRegistrationRequest{
		Firstname:     "Njeri",
		Lastname:      "Kamau",
		Email:         "Njeri@Example.com",
		PhoneNumber:   "+254701112233",
		Username:      "njerik",
		Password:      "secret123",
		PickupAddress: "44 Market Street",
		CardNumber:    "5555555555554444",
		CardExpiry:    "11/29",
		CardCVC:       "321",
		CardEmail:     "njeri@example.com",
	}
}

func TestRegister_SingleStep(t *testing.T) {
	repo := newFakeBuyerRepo()
	svc := &DefaultBuyerService{Repo: repo}

	resp, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "njeri@example.com", resp.Email)

	record := repo.buyers[resp.ID]
	require.NotNil(t, record)
	assert.Equal(t, "44 Market Street", record.PickupAddress)
	assert.Equal(t, "pending", record.Status)
	assert.NotEqual(t, "secret123", record.PasswordHash)
	assert.NotEqual(t, "5555555555554444", record.CardNumber)
}

func TestRegister_PickupAddressRequired(t *testing.T) {
	svc := &DefaultBuyerService{Repo: newFakeBuyerRepo()}

	req := validRegistration()
	req.PickupAddress = ""
	_, err := svc.Register(context.Background(), req)
	require.Error(t, err)

	var verr ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "pickupaddress", verr.Field)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	repo := newFakeBuyerRepo()
	svc := &DefaultBuyerService{Repo: repo}

	_, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	req := validRegistration()
	req.Email = "other@example.com"
	_, err = svc.Register(context.Background(), req)
	require.Error(t, err)

	var cerr ConflictError
	require.ErrorAs(t, err, &cerr)
}

func TestAuthenticate_NotBlockedOnVerification(t *testing.T) {
	repo := newFakeBuyerRepo()
	svc := &DefaultBuyerService{Repo: repo}

	_, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	// Buyers sign in immediately; verification never gates them.
	resp, err := svc.Authenticate(context.Background(), "njerik", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.False(t, resp.Verified)
}
