package middleware

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/state244/hub/internal/domain/membership"
	"github.com/state244/hub/internal/domain/stateinfo"
	"github.com/state244/hub/internal/domain/warplan"
	"github.com/state244/hub/internal/interfaces/http/dto"
)

var allianceTagPattern = regexp.MustCompile(`^[A-Za-z0-9]{2,5}$`)

// customValidations are the hub specific binding tags
var customValidations = map[string]validator.Func{
	"recruitment_status": func(fl validator.FieldLevel) bool {
		return membership.RecruitmentStatus(fl.Field().String()).IsValid()
	},
	"troop_type": func(fl validator.FieldLevel) bool {
		return warplan.TroopType(fl.Field().String()).IsValid()
	},
	"event_type": func(fl validator.FieldLevel) bool {
		return warplan.EventType(fl.Field().String()).IsValid()
	},
	"alliance_tag": func(fl validator.FieldLevel) bool {
		return allianceTagPattern.MatchString(fl.Field().String())
	},
	"hub_role": func(fl validator.FieldLevel) bool {
		return membership.Role(fl.Field().String()).IsValid()
	},
	"section_key": func(fl validator.FieldLevel) bool {
		return stateinfo.ValidKey(fl.Field().String())
	},
}

// SetupValidator configures gin's validator: JSON field names in errors and
// the custom tags above
func SetupValidator() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected validator engine")
	}
	return RegisterValidations(v)
}

// RegisterValidations installs the tag name function and custom tags on v
func RegisterValidations(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "form", "uri"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})
	for tag, fn := range customValidations {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

// ValidationDetails converts binding errors to response details. The second
// result is false when err is not a validation error (malformed JSON, for one).
func ValidationDetails(err error) ([]dto.ValidationDetail, bool) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil, false
	}
	details := make([]dto.ValidationDetail, 0, len(validationErrors))
	for _, e := range validationErrors {
		details = append(details, dto.ValidationDetail{
			Field:   e.Field(),
			Message: getValidationMessage(e),
		})
	}
	return details, true
}

// getValidationMessage returns a human-readable validation message
func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "min":
		if e.Kind() == reflect.String {
			return "Must be at least " + e.Param() + " characters"
		}
		return "Must be at least " + e.Param()
	case "max":
		if e.Kind() == reflect.String {
			return "Must be at most " + e.Param() + " characters"
		}
		return "Must be at most " + e.Param()
	case "uuid":
		return "Invalid UUID format"
	case "oneof":
		return "Must be one of: " + e.Param()
	case "gte":
		return "Must be greater than or equal to " + e.Param()
	case "lte":
		return "Must be less than or equal to " + e.Param()
	case "url":
		return "Invalid URL format"
	case "numeric":
		return "Must be numeric"
	case "recruitment_status":
		return "Must be one of: open closed invite_only"
	case "troop_type":
		return "Must be one of: infantry lancer marksman mixed"
	case "event_type":
		return "Must be one of: svs bear_trap foundry canyon other"
	case "alliance_tag":
		return "Must be 2 to 5 letters or digits"
	case "hub_role":
		return "Must be one of: user member r4 r5 president admin"
	case "section_key":
		return "Must be a lowercase slug"
	default:
		return "Invalid value"
	}
}
