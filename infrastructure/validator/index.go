package validator

func init() {
	validate.RegisterValidation("descriptor", validateDescriptor)
	validate.RegisterValidation("verification_action", validateVerificationAction)
	validate.RegisterValidation("name_spacial_char", validateNameWithSpecialChars)
	validate.RegisterValidation("clock", validateClock)
}

type Validator struct{}

func (v *Validator) ValidateStruct(payload interface{}) *[]error {
	return validateStruct(payload)
}

func (v *Validator) ValidateValue(value any, rules string) error {
	return validateField(value, rules)
}

var ValidatorInstance = Validator{}
