package wizard

// Role selects the step table and payload shape of a registration flow.
type Role string

const (
	RoleFarmer Role = "farmer"
	RoleBuyer  Role = "buyer"
	RoleDriver Role = "deliverydriver"
)

// Field is a closed enumeration of every wizard field across all roles.
// The payload key a field maps to is declared once in payloadKeys; there is
// no runtime field-name assembly.
type Field string

const (
	FieldFirstname       Field = "firstName"
	FieldLastname        Field = "lastName"
	FieldEmail           Field = "email"
	FieldPhoneNumber     Field = "phoneNumber"
	FieldUsername        Field = "username"
	FieldPassword        Field = "password"
	FieldConfirmPassword Field = "confirmPassword"

	FieldFarmName        Field = "farmName"
	FieldFarmAddress     Field = "farmAddress"
	FieldFarmDescription Field = "farmDescription"
	FieldProduceTypes    Field = "produceTypes"

	FieldPickupAddress Field = "pickupAddress"

	FieldVehicleMake  Field = "vehicleMake"
	FieldVehicleModel Field = "vehicleModel"
	FieldVehicleYear  Field = "vehicleYear"
	FieldVehiclePlate Field = "vehiclePlate"
	FieldVehicleColor Field = "vehicleColor"

	FieldLicenseNumber         Field = "licenseNumber"
	FieldLicenseExpiry         Field = "licenseExpiry"
	FieldInsuranceProvider     Field = "insuranceProvider"
	FieldInsurancePolicyNumber Field = "insurancePolicyNumber"

	FieldDeviceCompatible Field = "deviceCompatible"

	FieldCardNumber Field = "cardNumber"
	FieldCardExpiry Field = "cardExpiry"
	FieldCardCVC    Field = "cardCVC"
	FieldCardEmail  Field = "cardEmail"

	FieldProfileImage         Field = "profileImage"
	FieldFarmImage            Field = "farmImage"
	FieldLicenseFrontImage    Field = "licenseFrontImage"
	FieldLicenseBackImage     Field = "licenseBackImage"
	FieldInsuranceImage       Field = "insuranceImage"
	FieldRegistrationImage    Field = "registrationImage"
	FieldVehicleFrontImage    Field = "vehicleFrontImage"
	FieldVehicleBackImage     Field = "vehicleBackImage"
	FieldVehicleLeftImage     Field = "vehicleLeftImage"
	FieldVehicleRightImage    Field = "vehicleRightImage"
	FieldVehicleInteriorImage Field = "vehicleInteriorImage"
)

// payloadKeys maps every UI field to the flat lowercase key the server
// expects. Fields without an entry never leave the client.
var payloadKeys = map[Field]string{
	FieldFirstname:       "firstname",
	FieldLastname:        "lastname",
	FieldEmail:           "email",
	FieldPhoneNumber:     "phonenumber",
	FieldUsername:        "username",
	FieldPassword:        "password",
	FieldFarmName:        "farmname",
	FieldFarmAddress:     "farmaddress",
	FieldFarmDescription: "farmdescription",
	FieldProduceTypes:    "producetypes",
	FieldPickupAddress:   "pickupaddress",

	FieldVehicleMake:  "vehiclemake",
	FieldVehicleModel: "vehiclemodel",
	FieldVehicleYear:  "vehicleyear",
	FieldVehiclePlate: "vehicleplate",
	FieldVehicleColor: "vehiclecolor",

	FieldLicenseNumber:         "licensenumber",
	FieldLicenseExpiry:         "licenseexpiry",
	FieldInsuranceProvider:     "insuranceprovider",
	FieldInsurancePolicyNumber: "insurancepolicynumber",

	FieldDeviceCompatible: "devicecompatible",

	FieldCardNumber: "cardnumber",
	FieldCardExpiry: "cardexpiry",
	FieldCardCVC:    "cardcvc",
	FieldCardEmail:  "cardemail",

	FieldProfileImage:         "profileimage",
	FieldFarmImage:            "farmimage",
	FieldLicenseFrontImage:    "licensefrontimage",
	FieldLicenseBackImage:     "licensebackimage",
	FieldInsuranceImage:       "insuranceimage",
	FieldRegistrationImage:    "registrationimage",
	FieldVehicleFrontImage:    "vehiclefrontimage",
	FieldVehicleBackImage:     "vehiclebackimage",
	FieldVehicleLeftImage:     "vehicleleftimage",
	FieldVehicleRightImage:    "vehiclerightimage",
	FieldVehicleInteriorImage: "vehicleinteriorimage",
}

// imageFields marks fields that hold a binary asset (encoded blob plus an
// associated display name).
var imageFields = map[Field]bool{
	FieldProfileImage:         true,
	FieldFarmImage:            true,
	FieldLicenseFrontImage:    true,
	FieldLicenseBackImage:     true,
	FieldInsuranceImage:       true,
	FieldRegistrationImage:    true,
	FieldVehicleFrontImage:    true,
	FieldVehicleBackImage:     true,
	FieldVehicleLeftImage:     true,
	FieldVehicleRightImage:    true,
	FieldVehicleInteriorImage: true,
}

// boolFields marks fields whose value is a boolean confirmation.
var boolFields = map[Field]bool{
	FieldDeviceCompatible: true,
}

// optionalFields are declared on a step but carry no required check.
var optionalFields = map[Field]bool{
	FieldProduceTypes: true,
}

// stepFields is the per-role step table: stepFields[role][n-1] lists the
// fields validated when leaving step n. Farmer has 4 steps, driver 6,
// buyer 1.
var stepFields = map[Role][][]Field{
	RoleFarmer: {
		{FieldFirstname, FieldLastname, FieldEmail, FieldPhoneNumber, FieldUsername, FieldPassword, FieldConfirmPassword},
		{FieldFarmName, FieldFarmAddress, FieldFarmDescription, FieldProduceTypes},
		{FieldProfileImage, FieldFarmImage},
		{FieldCardNumber, FieldCardExpiry, FieldCardCVC, FieldCardEmail},
	},
	RoleBuyer: {
		{FieldFirstname, FieldLastname, FieldEmail, FieldPhoneNumber, FieldUsername, FieldPassword, FieldConfirmPassword, FieldPickupAddress},
	},
	RoleDriver: {
		{FieldFirstname, FieldLastname, FieldEmail, FieldPhoneNumber, FieldPassword, FieldConfirmPassword},
		{FieldVehicleMake, FieldVehicleModel, FieldVehicleYear, FieldVehiclePlate, FieldVehicleColor},
		{FieldLicenseNumber, FieldLicenseExpiry, FieldLicenseFrontImage, FieldLicenseBackImage},
		{FieldInsuranceProvider, FieldInsurancePolicyNumber, FieldInsuranceImage, FieldRegistrationImage},
		{FieldProfileImage, FieldVehicleFrontImage, FieldVehicleBackImage, FieldVehicleLeftImage, FieldVehicleRightImage, FieldVehicleInteriorImage},
		{FieldDeviceCompatible, FieldCardNumber, FieldCardExpiry, FieldCardCVC, FieldCardEmail},
	},
}

// StepCount returns the number of wizard steps for a role.
func StepCount(role Role) int {
	return len(stepFields[role])
}

// availabilityStep returns the step whose forward transition requires a
// successful handle-availability round-trip, or 0 if none.
func availabilityStep(role Role) int {
	switch role {
	case RoleFarmer, RoleBuyer, RoleDriver:
		return 1
	default:
		return 0
	}
}

// billingStep returns the step whose forward transition requires a
// successful billing-verification round-trip, or 0 if none.
func billingStep(role Role) int {
	switch role {
	case RoleFarmer:
		return 4
	case RoleDriver:
		return 6
	default:
		return 0
	}
}
