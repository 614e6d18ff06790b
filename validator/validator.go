package validator

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	playground "github.com/go-playground/validator/v10"

	"github.com/IkingariSolorzano/gymcredit-be/apperrors"
	"github.com/IkingariSolorzano/gymcredit-be/models"
)

const (
	MinPasswordLength = 8
	MinNameLength     = 2
)

// Bangladeshi mobile numbers: +8801 followed by an operator digit 3-9 and 8 digits.
var mobileRegex = regexp.MustCompile(`^\+8801[3-9]\d{8}$`)

// IsValidMobile reports whether mobile is a Bangladeshi mobile number.
func IsValidMobile(mobile string) bool {
	return mobileRegex.MatchString(mobile)
}

// RegisterBindings adds the bdmobile tag to gin's binding validator and makes
// it report fields by their JSON names.
func RegisterBindings() error {
	v, ok := binding.Validator.Engine().(*playground.Validate)
	if !ok {
		return errors.New("unexpected gin validator engine")
	}
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v.RegisterValidation("bdmobile", func(fl playground.FieldLevel) bool {
		return IsValidMobile(fl.Field().String())
	})
}

// ValidateSignup checks the fields every new account needs.
func ValidateSignup(name, mobile, password string) error {
	if strings.TrimSpace(name) == "" || mobile == "" || password == "" {
		return apperrors.Validation("All fields are required")
	}
	if len([]rune(strings.TrimSpace(name))) < MinNameLength {
		return apperrors.Validation(fmt.Sprintf("Name must be at least %d characters long", MinNameLength))
	}
	if !IsValidMobile(mobile) {
		return apperrors.Validation("Invalid mobile number format")
	}
	if len(password) < MinPasswordLength {
		return apperrors.Validation(fmt.Sprintf("Password must be at least %d characters long", MinPasswordLength))
	}
	return nil
}

func ValidateRole(role models.UserRole) error {
	if !role.Valid() {
		return apperrors.Validation("Invalid role specified")
	}
	return nil
}

// ValidateGym checks a gym before it is persisted.
func ValidateGym(gym *models.Gym) error {
	gym.Name = strings.TrimSpace(gym.Name)
	if gym.Name == "" || gym.Address == "" || gym.District == "" || gym.Image == "" || gym.PartnerID == 0 {
		return apperrors.Validation("All fields are required")
	}
	if gym.CreditCost < 1 {
		return apperrors.Validation("Credit cost must be at least 1")
	}
	if gym.Rating < 0 || gym.Rating > 5 {
		return apperrors.Validation("Rating must be between 0 and 5")
	}
	return nil
}

// Describe turns a gin binding error into a message fit for clients.
func Describe(err error) string {
	var verrs playground.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid request body"
	}
	fe := verrs[0]
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "bdmobile":
		return "Invalid mobile number format"
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "gt", "gte":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	}
	return fmt.Sprintf("%s is invalid", field)
}
