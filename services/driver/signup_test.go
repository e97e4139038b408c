package driver

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"

	"agritrust/models"
	"agritrust/services/storage"
)

// fakeDriverRepo is an in-memory DriverRepository.
type fakeDriverRepo struct {
	drivers map[string]*models.DeliveryDriver
	updates []bson.M
}

func newFakeDriverRepo() *fakeDriverRepo {
	return &fakeDriverRepo{drivers: make(map[string]*models.DeliveryDriver)}
}

func (r *fakeDriverRepo) Create(d *models.DeliveryDriver) error {
	r.drivers[d.ID] = d
	return nil
}

func (r *fakeDriverRepo) Update(d *models.DeliveryDriver) error {
	r.drivers[d.ID] = d
	return nil
}

func (r *fakeDriverRepo) UpdateWithDocument(id string, update bson.M) error {
	r.updates = append(r.updates, update)
	return nil
}

func (r *fakeDriverRepo) Delete(id string) error {
	delete(r.drivers, id)
	return nil
}

func (r *fakeDriverRepo) GetByID(id string) (*models.DeliveryDriver, error) {
	return r.drivers[id], nil
}

func (r *fakeDriverRepo) GetByEmail(email string) (*models.DeliveryDriver, error) {
	for _, d := range r.drivers {
		if d.Email == email {
			return d, nil
		}
	}
	return nil, nil
}

func (r *fakeDriverRepo) IsEmailTaken(email string) (bool, error) {
	d, _ := r.GetByEmail(email)
	return d != nil, nil
}

func (r *fakeDriverRepo) ClearExpiredResetCodes() (int64, error) {
	return 0, nil
}

type fakeUploader struct {
	failures map[string]error
}

func (f *fakeUploader) UploadImage(ctx context.Context, source, folder, publicID string) (string, error) {
	for field, err := range f.failures {
		if len(publicID) >= len(field) && publicID[:len(field)] == field {
			return "", err
		}
	}
	return "https://cdn.example.com/" + publicID, nil
}

func newTestService(repo *fakeDriverRepo, up *fakeUploader) *DefaultDriverService {
	if up == nil {
		up = &fakeUploader{}
	}
	return &DefaultDriverService{
		Repo:   repo,
		Images: &storage.ImageResolver{Uploader: up},
	}
}

func validRegistration() models.DriverRegistrationRequest {
	return models.DriverRegistrationRequest{
		Firstname:             "Kip",
		Lastname:              "Mwangi",
		Email:                 "Kip@Example.com",
		PhoneNumber:           "+254798765432",
		Password:              "secret123",
		VehicleMake:           "Toyota",
		VehicleModel:          "Hilux",
		VehicleYear:           "2021",
		VehiclePlate:          "KDA 123X",
		VehicleColor:          "white",
		LicenseNumber:         "DL-99887",
		LicenseExpiry:         "2027-04-30",
		InsuranceProvider:     "Jubilee",
		InsurancePolicyNumber: "POL-5541",
		DeviceCompatible:      true,
		ProfileImage:          "data:image/png;base64,AAAA",
		LicenseFrontImage:     "data:image/png;base64,BBBB",
		LicenseBackImage:      "data:image/png;base64,CCCC",
		InsuranceImage:        "data:image/png;base64,DDDD",
		RegistrationImage:     "data:image/png;base64,EEEE",
		VehicleFrontImage:     "data:image/png;base64,FFFF",
		VehicleBackImage:      "data:image/png;base64,GGGG",
		VehicleLeftImage:      "data:image/png;base64,HHHH",
		VehicleRightImage:     "data:image/png;base64,IIII",
		VehicleInteriorImage:  "data:image/png;base64,JJJJ",
		CardNumber:            "4242424242424242",
		CardExpiry:            "12/30",
		CardCVC:               "123",
		CardEmail:             "kip@example.com",
	}
}

func TestRegister_Success(t *testing.T) {
	repo := newFakeDriverRepo()
	svc := newTestService(repo, nil)

	resp, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "kip@example.com", resp.Email)
	assert.False(t, resp.Verified)

	record := repo.drivers[resp.ID]
	require.NotNil(t, record)
	for _, url := range []string{
		record.ProfileImage, record.LicenseFrontImage, record.LicenseBackImage,
		record.InsuranceImage, record.RegistrationImage, record.VehicleFrontImage,
		record.VehicleBackImage, record.VehicleLeftImage, record.VehicleRightImage,
		record.VehicleInteriorImage,
	} {
		assert.Contains(t, url, "https://cdn.example.com/")
	}
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(record.PasswordHash), []byte("secret123")))
}

func TestRegister_OneImageFailureFailsAll(t *testing.T) {
	repo := newFakeDriverRepo()
	up := &fakeUploader{failures: map[string]error{
		"vehicleleftimage": errors.New("cloud down"),
	}}
	svc := newTestService(repo, up)

	_, err := svc.Register(context.Background(), validRegistration())
	require.Error(t, err)

	var uerr storage.UploadError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, "vehicleleftimage", uerr.Field)
	assert.Empty(t, repo.drivers)
}

func TestRegister_MissingImage(t *testing.T) {
	svc := newTestService(newFakeDriverRepo(), nil)

	req := validRegistration()
	req.RegistrationImage = ""
	_, err := svc.Register(context.Background(), req)
	require.Error(t, err)

	var uerr storage.UploadError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, "registrationimage", uerr.Field)
}

func TestRegister_DeviceCompatibilityRequired(t *testing.T) {
	svc := newTestService(newFakeDriverRepo(), nil)

	req := validRegistration()
	req.DeviceCompatible = false
	_, err := svc.Register(context.Background(), req)
	require.Error(t, err)

	var verr ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "devicecompatible", verr.Field)
}

func TestRegister_VehicleYearOutOfRange(t *testing.T) {
	svc := newTestService(newFakeDriverRepo(), nil)

	req := validRegistration()
	req.VehicleYear = "1899"
	_, err := svc.Register(context.Background(), req)
	require.Error(t, err)

	var verr ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "vehicleyear", verr.Field)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := newFakeDriverRepo()
	svc := newTestService(repo, nil)

	_, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), validRegistration())
	require.Error(t, err)

	var cerr ConflictError
	require.ErrorAs(t, err, &cerr)
}

func TestAuthenticate_UnverifiedBlocked(t *testing.T) {
	repo := newFakeDriverRepo()
	svc := newTestService(repo, nil)

	_, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	_, err = svc.Authenticate(context.Background(), "kip@example.com", "secret123")
	require.Error(t, err)

	var uerr UnverifiedError
	require.ErrorAs(t, err, &uerr)
}

func TestAuthenticate_VerifiedGetsToken(t *testing.T) {
	repo := newFakeDriverRepo()
	svc := newTestService(repo, nil)

	resp, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	repo.drivers[resp.ID].Verified = true

	auth, err := svc.Authenticate(context.Background(), "kip@example.com", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, auth.Token)
	assert.True(t, auth.Verified)
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	repo := newFakeDriverRepo()
	svc := newTestService(repo, nil)

	resp, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)
	repo.drivers[resp.ID].Verified = true

	_, err = svc.Authenticate(context.Background(), "kip@example.com", "nope")
	require.Error(t, err)

	var aerr AuthError
	require.ErrorAs(t, err, &aerr)
}

func TestCheckEmail(t *testing.T) {
	repo := newFakeDriverRepo()
	svc := newTestService(repo, nil)

	available, err := svc.CheckEmail("kip@example.com")
	require.NoError(t, err)
	assert.True(t, available)

	_, err = svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	available, err = svc.CheckEmail("Kip@Example.com")
	require.NoError(t, err)
	assert.False(t, available)
}
