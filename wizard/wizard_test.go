package wizard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAvailability struct {
	usernameFree bool
	emailFree    bool
	err          error
	calls        int
}

func (f *fakeAvailability) UsernameAvailable(ctx context.Context, username string) (bool, error) {
	f.calls++
	return f.usernameFree, f.err
}

func (f *fakeAvailability) EmailAvailable(ctx context.Context, email string) (bool, error) {
	f.calls++
	return f.emailFree, f.err
}

type fakeBilling struct {
	err   error
	calls int
}

func (f *fakeBilling) VerifyCard(ctx context.Context, number, expiry, cvc, email string) error {
	f.calls++
	return f.err
}

func fillFarmerStep1(w *Wizard) {
	w.UpdateField(FieldFirstname, "Amina")
	w.UpdateField(FieldLastname, "Odhiambo")
	w.UpdateField(FieldEmail, "Amina@Example.com")
	w.UpdateField(FieldPhoneNumber, "+254712345678")
	w.UpdateField(FieldUsername, "aminafarms")
	w.UpdateField(FieldPassword, "secret123")
	w.UpdateField(FieldConfirmPassword, "secret123")
}

func TestValidateCurrentStep_MissingEmail(t *testing.T) {
	w := New(RoleFarmer, nil, nil)
	fillFarmerStep1(w)
	w.UpdateField(FieldEmail, "")

	assert.False(t, w.ValidateCurrentStep())
	msg, ok := w.FieldError(FieldEmail)
	require.True(t, ok)
	assert.Equal(t, "this field is required", msg)

	// The other fields of the step stay clean.
	_, ok = w.FieldError(FieldUsername)
	assert.False(t, ok)
}

func TestValidateCurrentStep_PhoneDigitCount(t *testing.T) {
	w := New(RoleFarmer, nil, nil)
	fillFarmerStep1(w)

	// Seven digits is too short, and formatting characters do not count.
	for _, phone := range []string{"1234567", "(123) 45-67", "123-456-789"} {
		w.UpdateField(FieldPhoneNumber, phone)
		assert.False(t, w.ValidateCurrentStep(), "phone %q should be rejected", phone)
		msg, ok := w.FieldError(FieldPhoneNumber)
		require.True(t, ok)
		assert.Equal(t, "enter a valid phone number", msg)
	}

	for _, phone := range []string{"0712345678", "+254 712 345-678", "(071) 234-5678"} {
		w.UpdateField(FieldPhoneNumber, phone)
		assert.True(t, w.ValidateCurrentStep(), "phone %q should be accepted", phone)
	}
}

func TestValidateCurrentStep_ReplacesPreviousErrors(t *testing.T) {
	w := New(RoleFarmer, nil, nil)
	fillFarmerStep1(w)
	w.UpdateField(FieldEmail, "not-an-email")

	assert.False(t, w.ValidateCurrentStep())
	_, ok := w.FieldError(FieldEmail)
	require.True(t, ok)

	w.UpdateField(FieldEmail, "amina@example.com")
	assert.True(t, w.ValidateCurrentStep())
	_, ok = w.FieldError(FieldEmail)
	assert.False(t, ok)
}

func TestNextStep_AdvancesWhenChecksPass(t *testing.T) {
	avail := &fakeAvailability{usernameFree: true}
	w := New(RoleFarmer, avail, nil)
	fillFarmerStep1(w)

	advanced, err := w.NextStep(context.Background())
	require.NoError(t, err)
	assert.True(t, advanced)
	assert.Equal(t, 2, w.CurrentStep())
	assert.Equal(t, 1, avail.calls)
}

func TestNextStep_UsernameTaken(t *testing.T) {
	avail := &fakeAvailability{usernameFree: false}
	w := New(RoleFarmer, avail, nil)
	fillFarmerStep1(w)

	advanced, err := w.NextStep(context.Background())
	require.NoError(t, err)
	assert.False(t, advanced)
	assert.Equal(t, 1, w.CurrentStep())

	msg, ok := w.FieldError(FieldUsername)
	require.True(t, ok)
	assert.Equal(t, "this username is already taken", msg)
}

func TestNextStep_TransportFailureLeavesStep(t *testing.T) {
	avail := &fakeAvailability{err: errors.New("network down")}
	w := New(RoleFarmer, avail, nil)
	fillFarmerStep1(w)

	advanced, err := w.NextStep(context.Background())
	require.Error(t, err)
	assert.False(t, advanced)
	assert.Equal(t, 1, w.CurrentStep())
	assert.False(t, w.Loading(OpAvailability))
}

func TestNextStep_InvalidStepDoesNotCallServer(t *testing.T) {
	avail := &fakeAvailability{usernameFree: true}
	w := New(RoleFarmer, avail, nil)

	advanced, err := w.NextStep(context.Background())
	require.NoError(t, err)
	assert.False(t, advanced)
	assert.Equal(t, 0, avail.calls)
}

func TestNextStep_BillingFailureOnFinalStep(t *testing.T) {
	billing := &fakeBilling{err: errors.New("card number could not be verified")}
	w := New(RoleFarmer, &fakeAvailability{usernameFree: true}, billing)
	fillFarmerStep1(w)
	w.UpdateField(FieldFarmName, "Green Acres")
	w.UpdateField(FieldFarmAddress, "12 Ridge Road")
	w.UpdateField(FieldFarmDescription, "Mixed produce farm")
	img := "data:image/png;base64,AAAA"
	w.UpdateImage(FieldProfileImage, &img, "me.png")
	w.UpdateImage(FieldFarmImage, &img, "farm.png")
	w.UpdateField(FieldCardNumber, "4242424242424242")
	w.UpdateField(FieldCardExpiry, "12/30")
	w.UpdateField(FieldCardCVC, "123")
	w.UpdateField(FieldCardEmail, "amina@example.com")

	ctx := context.Background()
	for step := 1; step < StepCount(RoleFarmer); step++ {
		advanced, err := w.NextStep(ctx)
		require.NoError(t, err)
		require.True(t, advanced, "step %d should advance", step)
	}
	require.Equal(t, StepCount(RoleFarmer), w.CurrentStep())

	advanced, err := w.NextStep(ctx)
	require.NoError(t, err)
	assert.False(t, advanced)
	assert.Equal(t, 1, billing.calls)
	msg, ok := w.FieldError(FieldCardNumber)
	require.True(t, ok)
	assert.Contains(t, msg, "card verification failed")
}

func TestDriverStepCount(t *testing.T) {
	assert.Equal(t, 4, StepCount(RoleFarmer))
	assert.Equal(t, 6, StepCount(RoleDriver))
	assert.Equal(t, 1, StepCount(RoleBuyer))
}

func TestSetStep_BackwardOnly(t *testing.T) {
	w := New(RoleFarmer, &fakeAvailability{usernameFree: true}, nil)
	fillFarmerStep1(w)
	_, err := w.NextStep(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, w.CurrentStep())

	assert.False(t, w.SetStep(4))
	assert.Equal(t, 2, w.CurrentStep())

	assert.True(t, w.SetStep(1))
	assert.Equal(t, 1, w.CurrentStep())
}

func TestRegistrationData(t *testing.T) {
	w := New(RoleFarmer, nil, nil)
	fillFarmerStep1(w)
	w.UpdateField(FieldEmail, "  Amina@Example.COM ")
	w.UpdateField(FieldFarmName, " Green Acres ")
	img := "data:image/png;base64,AAAA"
	w.UpdateImage(FieldProfileImage, &img, "me.png")

	data := w.RegistrationData()

	assert.Equal(t, "amina@example.com", data["email"])
	assert.Equal(t, "Green Acres", data["farmname"])
	assert.Equal(t, "secret123", data["password"])
	assert.Equal(t, img, data["profileimage"])
	assert.Equal(t, "mobile", data["registrationsource"])
	assert.Equal(t, "pending", data["status"])
	assert.NotEmpty(t, data["registrationdate"])

	// The confirmation never leaves the client.
	_, present := data["confirmpassword"]
	assert.False(t, present)
	for key := range data {
		assert.NotEqual(t, "confirmPassword", key)
	}
}

func TestValidateCompleteRegistration(t *testing.T) {
	w := New(RoleBuyer, nil, nil)
	fillFarmerStep1(w)

	ok, messages := w.ValidateCompleteRegistration()
	assert.False(t, ok)
	require.NotEmpty(t, messages)
	assert.Contains(t, messages[0], "pickupAddress")

	w.UpdateField(FieldPickupAddress, "44 Market Street")
	ok, messages = w.ValidateCompleteRegistration()
	assert.True(t, ok)
	assert.Empty(t, messages)
}

func TestReset_Idempotent(t *testing.T) {
	w := New(RoleFarmer, &fakeAvailability{usernameFree: true}, nil)
	fillFarmerStep1(w)
	_, err := w.NextStep(context.Background())
	require.NoError(t, err)

	w.Reset()
	assert.Equal(t, 1, w.CurrentStep())
	assert.Empty(t, w.Value(FieldUsername))

	// Resetting an already-fresh wizard changes nothing.
	w.Reset()
	assert.Equal(t, 1, w.CurrentStep())
}

func TestUpdateImage_NilClears(t *testing.T) {
	w := New(RoleFarmer, nil, nil)
	img := "data:image/png;base64,AAAA"
	w.UpdateImage(FieldProfileImage, &img, "me.png")
	got, ok := w.ImageFor(FieldProfileImage)
	require.True(t, ok)
	assert.Equal(t, "me.png", got.Name)

	w.UpdateImage(FieldProfileImage, nil, "")
	_, ok = w.ImageFor(FieldProfileImage)
	assert.False(t, ok)
}
