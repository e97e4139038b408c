package farmer

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"

	farmerRepo "agritrust/database/repository/farmer"
	"agritrust/models"
	"agritrust/services/storage"
)

// fakeFarmerRepo is an in-memory FarmerRepository.
type fakeFarmerRepo struct {
	farmers map[string]*models.Farmer
	updates []bson.M
}

func newFakeFarmerRepo() *fakeFarmerRepo {
	return &fakeFarmerRepo{farmers: make(map[string]*models.Farmer)}
}

func (r *fakeFarmerRepo) Create(f *models.Farmer) error {
	for _, existing := range r.farmers {
		if existing.Email == f.Email || existing.Username == f.Username {
			return farmerRepo.ErrDuplicateHandle
		}
	}
	r.farmers[f.ID] = f
	return nil
}

func (r *fakeFarmerRepo) Update(f *models.Farmer) error {
	r.farmers[f.ID] = f
	return nil
}

func (r *fakeFarmerRepo) UpdateWithDocument(id string, update bson.M) error {
	r.updates = append(r.updates, update)
	return nil
}

func (r *fakeFarmerRepo) Delete(id string) error {
	delete(r.farmers, id)
	return nil
}

func (r *fakeFarmerRepo) GetByID(id string) (*models.Farmer, error) {
	return r.farmers[id], nil
}

func (r *fakeFarmerRepo) GetByEmail(email string) (*models.Farmer, error) {
	for _, f := range r.farmers {
		if f.Email == email {
			return f, nil
		}
	}
	return nil, nil
}

func (r *fakeFarmerRepo) GetByUsername(username string) (*models.Farmer, error) {
	for _, f := range r.farmers {
		if f.Username == username {
			return f, nil
		}
	}
	return nil, nil
}

func (r *fakeFarmerRepo) IsUsernameTaken(username string) (bool, error) {
	f, _ := r.GetByUsername(username)
	return f != nil, nil
}

func (r *fakeFarmerRepo) ClearExpiredResetCodes() (int64, error) {
	return 0, nil
}

type fakeUploader struct{}

func (fakeUploader) UploadImage(ctx context.Context, source, folder, publicID string) (string, error) {
	return "https://cdn.example.com/" + publicID, nil
}

type fakeQueue struct {
	sent []string
}

func (q *fakeQueue) EnqueueResetEmail(email, name, code string) error {
	q.sent = append(q.sent, email+":"+code)
	return nil
}

func newTestService(repo *fakeFarmerRepo) *DefaultFarmerService {
	return &DefaultFarmerService{
		Repo:   repo,
		Images: &storage.ImageResolver{Uploader: fakeUploader{}},
		Queue:  &fakeQueue{},
	}
}

func validRegistration() models.FarmerRegistrationRequest {
	return models.FarmerRegistrationRequest{
		Firstname:       "Amina",
		Lastname:        "Odhiambo",
		Email:           "Amina@Example.com",
		PhoneNumber:     "+254712345678",
		Username:        "aminafarms",
		Password:        "secret123",
		FarmName:        "Green Acres",
		FarmAddress:     "12 Ridge Road",
		FarmDescription: "Mixed produce farm",
		ProfileImage:    "data:image/png;base64,AAAA",
		FarmImage:       "https://elsewhere.example.com/farm.jpg",
		CardNumber:      "4242424242424242",
		CardExpiry:      "12/30",
		CardCVC:         "123",
		CardEmail:       "amina@example.com",
	}
}

func TestRegister_Success(t *testing.T) {
	repo := newFakeFarmerRepo()
	svc := newTestService(repo)

	resp, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "amina@example.com", resp.Email)
	assert.False(t, resp.Verified)

	record := repo.farmers[resp.ID]
	require.NotNil(t, record)
	assert.Equal(t, "pending", record.Status)
	assert.NotEmpty(t, record.RegistrationDate)

	// The password is stored hashed, never as typed.
	assert.NotEqual(t, "secret123", record.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(record.PasswordHash), []byte("secret123")))

	// Card fields are sealed at rest.
	assert.NotEqual(t, "4242424242424242", record.CardNumber)
	assert.NotEmpty(t, record.CardNumber)

	// Images resolved to hosted URLs.
	assert.True(t, strings.HasPrefix(record.ProfileImage, "https://cdn.example.com/"))
	assert.Equal(t, "https://elsewhere.example.com/farm.jpg", record.FarmImage)
}

func TestRegister_MissingField(t *testing.T) {
	svc := newTestService(newFakeFarmerRepo())

	req := validRegistration()
	req.FarmName = ""
	_, err := svc.Register(context.Background(), req)
	require.Error(t, err)

	var verr ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "farmname", verr.Field)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	repo := newFakeFarmerRepo()
	svc := newTestService(repo)

	_, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	req := validRegistration()
	req.Email = "other@example.com"
	_, err = svc.Register(context.Background(), req)
	require.Error(t, err)

	var cerr ConflictError
	require.ErrorAs(t, err, &cerr)
	assert.Contains(t, cerr.Message, "username")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := newFakeFarmerRepo()
	svc := newTestService(repo)

	_, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	req := validRegistration()
	req.Username = "othername"
	_, err = svc.Register(context.Background(), req)
	require.Error(t, err)

	var cerr ConflictError
	require.ErrorAs(t, err, &cerr)
}

func TestRegister_EmptyImageFails(t *testing.T) {
	svc := newTestService(newFakeFarmerRepo())

	req := validRegistration()
	req.ProfileImage = ""
	_, err := svc.Register(context.Background(), req)
	require.Error(t, err)

	var uerr storage.UploadError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, "profileimage", uerr.Field)
}

func TestAuthenticate_ByUsernameAndEmail(t *testing.T) {
	repo := newFakeFarmerRepo()
	svc := newTestService(repo)

	_, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	resp, err := svc.Authenticate(context.Background(), "aminafarms", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	resp, err = svc.Authenticate(context.Background(), "Amina@Example.com", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	repo := newFakeFarmerRepo()
	svc := newTestService(repo)

	_, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	_, err = svc.Authenticate(context.Background(), "aminafarms", "wrong")
	require.Error(t, err)

	var aerr AuthError
	require.ErrorAs(t, err, &aerr)
}

func TestAuthenticate_UnknownHandle(t *testing.T) {
	svc := newTestService(newFakeFarmerRepo())

	_, err := svc.Authenticate(context.Background(), "nobody", "secret123")
	require.Error(t, err)

	var aerr AuthError
	require.ErrorAs(t, err, &aerr)
}

func TestCheckUsername(t *testing.T) {
	repo := newFakeFarmerRepo()
	svc := newTestService(repo)

	available, err := svc.CheckUsername("aminafarms")
	require.NoError(t, err)
	assert.True(t, available)

	_, err = svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	available, err = svc.CheckUsername("aminafarms")
	require.NoError(t, err)
	assert.False(t, available)

	_, err = svc.CheckUsername("ab")
	assert.Error(t, err)
}
