package patient

import (
	"encoding/json"
	"errors"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Gender is the enumerated patient gender.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOthers Gender = "others"
)

const (
	VerdictUnderweight = "Underweight"
	VerdictNormal      = "Normal"
	VerdictObese       = "Obese"
)

// Record is the stored body of a patient: every field except the id.
// BMI and verdict are never stored in the struct; they are derived from
// Height and Weight whenever they are needed.
type Record struct {
	Name   string  `json:"name"`
	City   string  `json:"city"`
	Age    int     `json:"age"`
	Gender Gender  `json:"gender"`
	Height float64 `json:"height"`
	Weight float64 `json:"weight"`
}

// BMI returns weight / height² rounded to two decimal places.
func (r Record) BMI() float64 {
	if r.Height <= 0 {
		return 0
	}
	return math.Round(r.Weight/(r.Height*r.Height)*100) / 100
}

// Verdict classifies the rounded BMI. The 25-30 band is reported as Normal.
func (r Record) Verdict() string {
	bmi := r.BMI()
	switch {
	case bmi < 18.5:
		return VerdictUnderweight
	case bmi < 30:
		return VerdictNormal
	default:
		return VerdictObese
	}
}

// Input returns the raw fields of the record under the given id, suitable
// for re-validation through NewPatient.
func (r Record) Input(id string) PatientInput {
	gender := string(r.Gender)
	return PatientInput{
		ID:     &id,
		Name:   &r.Name,
		City:   &r.City,
		Age:    &r.Age,
		Gender: &gender,
		Height: &r.Height,
		Weight: &r.Weight,
	}
}

type storedRecord Record

func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		storedRecord
		BMI     float64 `json:"bmi"`
		Verdict string  `json:"verdict"`
	}{storedRecord(r), r.BMI(), r.Verdict()})
}

// Patient is a validated record together with its id. Values are only
// produced by NewPatient and PatientUpdate.Apply.
type Patient struct {
	ID string
	Record
}

func (p Patient) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID string `json:"id"`
		storedRecord
		BMI     float64 `json:"bmi"`
		Verdict string  `json:"verdict"`
	}{p.ID, storedRecord(p.Record), p.BMI(), p.Verdict()})
}

// PatientInput is the unvalidated shape of a patient as it arrives in a
// request body. Pointers distinguish a missing field from a zero value.
type PatientInput struct {
	ID     *string  `json:"id" validate:"required,min=1"`
	Name   *string  `json:"name" validate:"required,min=1"`
	City   *string  `json:"city" validate:"required,min=1"`
	Age    *int     `json:"age" validate:"required,gt=0,lt=120"`
	Gender *string  `json:"gender" validate:"required,oneof=male female others"`
	Height *float64 `json:"height" validate:"required,gt=0"`
	Weight *float64 `json:"weight" validate:"required,gt=0"`
}

// NewPatient validates in and builds a Patient. On failure the error is a
// ValidationErrors listing every offending field.
func NewPatient(in PatientInput) (Patient, error) {
	if err := validate.Struct(in); err != nil {
		return Patient{}, translate(err, "")
	}
	return Patient{
		ID: *in.ID,
		Record: Record{
			Name:   *in.Name,
			City:   *in.City,
			Age:    *in.Age,
			Gender: Gender(*in.Gender),
			Height: *in.Height,
			Weight: *in.Weight,
		},
	}, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// translate converts validator errors into ValidationErrors. field overrides
// the reported field name, which validator leaves empty for Var checks.
func translate(err error, field string) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := make(ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		name := fe.Field()
		if field != "" {
			name = field
		}
		out = append(out, ValidationError{
			Field:      name,
			Constraint: constraint(fe),
			Message:    message(fe),
		})
	}
	return out
}

func constraint(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fe.Tag()
	}
	return fe.Tag() + "=" + fe.Param()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "min":
		return "must not be empty"
	case "gt":
		return "must be greater than " + fe.Param()
	case "lt":
		return "must be less than " + fe.Param()
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return "failed " + fe.Tag() + " check"
	}
}
