package models

import "time"

// Farmer is the durable account record for the farmer role.
type Farmer struct {
	ID           string `bson:"id" json:"id"`
	Firstname    string `bson:"firstname" json:"firstname"`
	Lastname     string `bson:"lastname" json:"lastname"`
	Email        string `bson:"email" json:"email"`
	PhoneNumber  string `bson:"phonenumber" json:"phonenumber"`
	Username     string `bson:"username" json:"username"`
	PasswordHash string `bson:"password_hash" json:"-"`

	FarmName        string `bson:"farmname" json:"farmname"`
	FarmAddress     string `bson:"farmaddress" json:"farmaddress"`
	FarmDescription string `bson:"farmdescription" json:"farmdescription"`
	ProduceTypes    string `bson:"producetypes" json:"producetypes"`

	ProfileImage string `bson:"profileimage" json:"profileimage"`
	FarmImage    string `bson:"farmimage" json:"farmimage"`

	// Card fields are sealed with AES-GCM before persistence and are
	// never serialized back to a client.
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

// FarmerRegistrationRequest is the flat payload assembled by the
// registration wizard and submitted in a single request.
type FarmerRegistrationRequest struct {
	Firstname   string `json:"firstname"`
	Lastname    string `json:"lastname"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phonenumber"`
	Username    string `json:"username"`
	Password    string `json:"password"`

	FarmName        string `json:"farmname"`
	FarmAddress     string `json:"farmaddress"`
	FarmDescription string `json:"farmdescription"`
	ProduceTypes    string `json:"producetypes"`

	ProfileImage string `json:"profileimage"`
	FarmImage    string `json:"farmimage"`

	CardNumber string `json:"cardnumber,omitempty"`
	CardExpiry string `json:"cardexpiry,omitempty"`
	CardCVC    string `json:"cardcvc,omitempty"`
	CardEmail  string `json:"cardemail,omitempty"`

	RegistrationDate   string `json:"registrationdate,omitempty"`
	RegistrationSource string `json:"registrationsource,omitempty"`
	Status             string `json:"status,omitempty"`
}

// FarmerUpdateRequest is a partial profile update; empty fields are ignored.
type FarmerUpdateRequest struct {
	Firstname       string `json:"firstname,omitempty"`
	Lastname        string `json:"lastname,omitempty"`
	PhoneNumber     string `json:"phonenumber,omitempty"`
	FarmName        string `json:"farmname,omitempty"`
	FarmAddress     string `json:"farmaddress,omitempty"`
	FarmDescription string `json:"farmdescription,omitempty"`
	ProduceTypes    string `json:"producetypes,omitempty"`
}
