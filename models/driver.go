package models

import "time"

// DriverImageCount is the number of image documents a delivery driver
// submits during registration.
const DriverImageCount = 10

// DeliveryDriver is the durable account record for the delivery driver role.
// Drivers cannot sign in until an administrator flips Verified.
type DeliveryDriver struct {
	ID           string `bson:"id" json:"id"`
	Firstname    string `bson:"firstname" json:"firstname"`
	Lastname     string `bson:"lastname" json:"lastname"`
	Email        string `bson:"email" json:"email"`
	PhoneNumber  string `bson:"phonenumber" json:"phonenumber"`
	PasswordHash string `bson:"password_hash" json:"-"`

	VehicleMake  string `bson:"vehiclemake" json:"vehiclemake"`
	VehicleModel string `bson:"vehiclemodel" json:"vehiclemodel"`
	VehicleYear  string `bson:"vehicleyear" json:"vehicleyear"`
	VehiclePlate string `bson:"vehicleplate" json:"vehicleplate"`
	VehicleColor string `bson:"vehiclecolor" json:"vehiclecolor"`

	LicenseNumber         string `bson:"licensenumber" json:"licensenumber"`
	LicenseExpiry         string `bson:"licenseexpiry" json:"licenseexpiry"`
	InsuranceProvider     string `bson:"insuranceprovider" json:"insuranceprovider"`
	InsurancePolicyNumber string `bson:"insurancepolicynumber" json:"insurancepolicynumber"`

	ProfileImage         string `bson:"profileimage" json:"profileimage"`
	LicenseFrontImage    string `bson:"licensefrontimage" json:"licensefrontimage"`
	LicenseBackImage     string `bson:"licensebackimage" json:"licensebackimage"`
	InsuranceImage       string `bson:"insuranceimage" json:"insuranceimage"`
	RegistrationImage    string `bson:"registrationimage" json:"registrationimage"`
	VehicleFrontImage    string `bson:"vehiclefrontimage" json:"vehiclefrontimage"`
	VehicleBackImage     string `bson:"vehiclebackimage" json:"vehiclebackimage"`
	VehicleLeftImage     string `bson:"vehicleleftimage" json:"vehicleleftimage"`
	VehicleRightImage    string `bson:"vehiclerightimage" json:"vehiclerightimage"`
	VehicleInteriorImage string `bson:"vehicleinteriorimage" json:"vehicleinteriorimage"`

	DeviceCompatible bool `bson:"devicecompatible" json:"devicecompatible"`

	CardNumber string `bson:"card_number,omitempty" json:"-"`
	CardExpiry string `bson:"card_expiry,omitempty" json:"-"`
	CardCVC    string `bson:"card_cvc,omitempty" json:"-"`
	CardEmail  string `bson:"card_email,omitempty" json:"-"`

	Verified bool `bson:"verified" json:"verified"`

	ResetCode      string    `bson:"reset_code,omitempty" json:"-"`
	ResetExpiresAt time.Time `bson:"reset_expires_at,omitempty" json:"-"`

	RegistrationDate   string    `bson:"registrationdate" json:"registrationdate"`
	RegistrationSource string    `bson:"registrationsource" json:"registrationsource"`
	Status             string    `bson:"status" json:"status"`
	CreatedAt          time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt          time.Time `bson:"updated_at" json:"updated_at"`
}

// DriverRegistrationRequest is the flat payload assembled by the six-step
// driver registration wizard.
type DriverRegistrationRequest struct {
	Firstname   string `json:"firstname"`
	Lastname    string `json:"lastname"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phonenumber"`
	Password    string `json:"password"`

	VehicleMake  string `json:"vehiclemake"`
	VehicleModel string `json:"vehiclemodel"`
	VehicleYear  string `json:"vehicleyear"`
	VehiclePlate string `json:"vehicleplate"`
	VehicleColor string `json:"vehiclecolor"`

	LicenseNumber         string `json:"licensenumber"`
	LicenseExpiry         string `json:"licenseexpiry"`
	InsuranceProvider     string `json:"insuranceprovider"`
	InsurancePolicyNumber string `json:"insurancepolicynumber"`

	ProfileImage         string `json:"profileimage"`
	LicenseFrontImage    string `json:"licensefrontimage"`
	LicenseBackImage     string `json:"licensebackimage"`
	InsuranceImage       string `json:"insuranceimage"`
	RegistrationImage    string `json:"registrationimage"`
	VehicleFrontImage    string `json:"vehiclefrontimage"`
	VehicleBackImage     string `json:"vehiclebackimage"`
	VehicleLeftImage     string `json:"vehicleleftimage"`
	VehicleRightImage    string `json:"vehiclerightimage"`
	VehicleInteriorImage string `json:"vehicleinteriorimage"`

	DeviceCompatible bool `json:"devicecompatible"`

	CardNumber string `json:"cardnumber,omitempty"`
	CardExpiry string `json:"cardexpiry,omitempty"`
	CardCVC    string `json:"cardcvc,omitempty"`
	CardEmail  string `json:"cardemail,omitempty"`

	RegistrationDate   string `json:"registrationdate,omitempty"`
	RegistrationSource string `json:"registrationsource,omitempty"`
	Status             string `json:"status,omitempty"`
}

// DriverUpdateRequest is a partial profile update; empty fields are ignored.
type DriverUpdateRequest struct {
	Firstname             string `json:"firstname,omitempty"`
	Lastname              string `json:"lastname,omitempty"`
	PhoneNumber           string `json:"phonenumber,omitempty"`
	VehicleMake           string `json:"vehiclemake,omitempty"`
	VehicleModel          string `json:"vehiclemodel,omitempty"`
	VehicleYear           string `json:"vehicleyear,omitempty"`
	VehiclePlate          string `json:"vehicleplate,omitempty"`
	VehicleColor          string `json:"vehiclecolor,omitempty"`
	InsuranceProvider     string `json:"insuranceprovider,omitempty"`
	InsurancePolicyNumber string `json:"insurancepolicynumber,omitempty"`
}

// ImageFields returns the driver's image payload values keyed by field name,
// in the order they are resolved during registration.
func (r *DriverRegistrationRequest) ImageFields() map[string]string {
	return map[string]string{
		"profileimage":         r.ProfileImage,
		"licensefrontimage":    r.LicenseFrontImage,
		"licensebackimage":     r.LicenseBackImage,
		"insuranceimage":       r.InsuranceImage,
		"registrationimage":    r.RegistrationImage,
		"vehiclefrontimage":    r.VehicleFrontImage,
		"vehiclebackimage":     r.VehicleBackImage,
		"vehicleleftimage":     r.VehicleLeftImage,
		"vehiclerightimage":    r.VehicleRightImage,
		"vehicleinteriorimage": r.VehicleInteriorImage,
	}
}
