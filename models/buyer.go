package models

import "time"

// Buyer is the durable account record for the buyer role.
type Buyer struct {
	ID           string `bson:"id" json:"id"`
	Firstname    string `bson:"firstname" json:"firstname"`
	Lastname     string `bson:"lastname" json:"lastname"`
	Email        string `bson:"email" json:"email"`
	PhoneNumber  string `bson:"phonenumber" json:"phonenumber"`
	Username     string `bson:"username" json:"username"`
	PasswordHash string `bson:"password_hash" json:"-"`

	PickupAddress string `bson:"pickupaddress" json:"pickupaddress"`

	CardNumber string `bson:"card_number,omitempty" json:"-"`
	CardExpiry string `bson:"card_expiry,omitempty" json:"-"`
	CardCVC    string `bson:"card_cvc,omitempty" json:"-"`
	CardEmail  string `bson:"card_email,omitempty" json:"-"`

	Verified bool `bson:"verified" json:"verified"`

	RegistrationDate   string    `bson:"registrationdate" json:"registrationdate"`
	RegistrationSource string    `bson:"registrationsource" json:"registrationsource"`
	Status             string    `bson:"status" json:"status"`
	CreatedAt          time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt          time.Time `bson:"updated_at" json:"updated_at"`
}

// BuyerRegistrationRequest is the single-step buyer registration payload.
type BuyerRegistrationRequest struct {
	Firstname   string `json:"firstname"`
	Lastname    string `json:"lastname"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phonenumber"`
	Username    string `json:"username"`
	Password    string `json:"password"`

	PickupAddress string `json:"pickupaddress"`

	CardNumber string `json:"cardnumber,omitempty"`
	CardExpiry string `json:"cardexpiry,omitempty"`
	CardCVC    string `json:"cardcvc,omitempty"`
	CardEmail  string `json:"cardemail,omitempty"`

	RegistrationDate   string `json:"registrationdate,omitempty"`
	RegistrationSource string `json:"registrationsource,omitempty"`
	Status             string `json:"status,omitempty"`
}

// BuyerUpdateRequest is a partial profile update; empty fields are ignored.
type BuyerUpdateRequest struct {
	Firstname     string `json:"firstname,omitempty"`
	Lastname      string `json:"lastname,omitempty"`
	PhoneNumber   string `json:"phonenumber,omitempty"`
	PickupAddress string `json:"pickupaddress,omitempty"`
}
