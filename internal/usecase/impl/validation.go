package impl

import (
	"fmt"
	"regexp"
	"strings"

	"bizdir/internal/domain/entity"
	domainerrors "bizdir/internal/domain/errors"
	"bizdir/internal/errors"

	"github.com/go-playground/validator/v10"
)

var (
	phonePattern   = regexp.MustCompile(`^\+?[0-9]{10,15}$`)
	emailPattern   = regexp.MustCompile(`^[\w\-.]+@([\w-]+\.)+[\w-]{2,4}$`)
	websitePattern = regexp.MustCompile(`https?://(www\.)?[-a-zA-Z0-9@:%._+~#=]{1,256}\.[a-zA-Z0-9()]{1,6}\b([-a-zA-Z0-9()@:%_+.~#?&/=]*)`)
)

// businessFields is the validated view of a business record. Field order fixes message order.
type businessFields struct {
	BusinessName  string `validate:"required,max=100"`
	Description   string `validate:"required,max=1000"`
	ContactNumber string `validate:"required,phone"`
	Email         string `validate:"required,email_address"`
	Category      string `validate:"required,category"`
	Website       string `validate:"omitempty,website"`
}

// adminFields is the validated view of a registration request.
type adminFields struct {
	Name     string `validate:"required,max=50"`
	Email    string `validate:"required,email_address"`
	Password string `validate:"required,min=6"`
}

var businessMessages = map[string]map[string]string{
	"BusinessName": {
		"required": "Business name is required",
		"max":      "Business name cannot be more than 100 characters",
	},
	"Description": {
		"required": "Description is required",
		"max":      "Description cannot be more than 1000 characters",
	},
	"ContactNumber": {
		"required": "Contact number is required",
		"phone":    "Please provide a valid phone number",
	},
	"Email": {
		"required":      "Email is required",
		"email_address": "Please provide a valid email",
	},
	"Category": {
		"required": "Business category is required",
	},
	"Website": {
		"website": "Please provide a valid URL",
	},
}

var adminMessages = map[string]map[string]string{
	"Name": {
		"required": "Please add a name",
		"max":      "Name cannot be more than 50 characters",
	},
	"Email": {
		"required":      "Please add an email",
		"email_address": "Please add a valid email",
	},
	"Password": {
		"required": "Please add a password",
		"min":      "Password must be at least 6 characters",
	},
}

// recordValidator turns go-playground/validator failures into user-facing messages.
type recordValidator struct {
	validate *validator.Validate
}

func newRecordValidator() *recordValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	mustRegister(v, "phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "email_address", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "website", func(fl validator.FieldLevel) bool {
		return websitePattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "category", func(fl validator.FieldLevel) bool {
		return entity.Category(fl.Field().String()).IsValid()
	})

	return &recordValidator{validate: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

// Business checks every field rule of b and returns a ValidationError listing all failures.
func (rv *recordValidator) Business(b *entity.Business) error {
	fields := businessFields{
		BusinessName:  b.BusinessName,
		Description:   b.Description,
		ContactNumber: b.ContactNumber,
		Email:         b.Email,
		Category:      string(b.Category),
		Website:       b.Website,
	}

	verr := domainerrors.NewValidationError()
	rv.collect(verr, fields, businessMessages)

	if b.Location != nil && b.Location.Coordinates != nil {
		if _, ok := b.Location.Coordinates.Point(); !ok {
			verr.Add("Coordinates must be [longitude, latitude]")
		}
	}

	return verr.OrNil()
}

// Admin checks a registration request.
func (rv *recordValidator) Admin(name, email, password string) error {
	verr := domainerrors.NewValidationError()
	rv.collect(verr, adminFields{Name: name, Email: email, Password: password}, adminMessages)

	return verr.OrNil()
}

func (rv *recordValidator) collect(verr *domainerrors.ValidationError, fields any, messages map[string]map[string]string) {
	err := rv.validate.Struct(fields)
	if err == nil {
		return
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		verr.Add(err.Error())

		return
	}

	for _, fe := range fieldErrs {
		verr.Add(fieldMessage(fe, messages))
	}
}

func fieldMessage(fe validator.FieldError, messages map[string]map[string]string) string {
	if fe.Tag() == "category" {
		return fmt.Sprintf("%v is not a valid business category", fe.Value())
	}

	if msg, ok := messages[fe.Field()][fe.Tag()]; ok {
		return msg
	}

	return fmt.Sprintf("%s is invalid", strings.ToLower(fe.Field()))
}
