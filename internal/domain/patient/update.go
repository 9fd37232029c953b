package patient

import (
	"encoding/json"
)

// Optional carries a value together with whether it was supplied at all.
// An explicit JSON null is supplied (Set) but Null.
type Optional[T any] struct {
	Value T
	Set   bool
	Null  bool
}

// Some returns a supplied, non-null Optional.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		var zero T
		o.Value = zero
		o.Null = true
		return nil
	}
	o.Null = false
	return json.Unmarshal(data, &o.Value)
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// PatientUpdate is a sparse patch. Fields left unset are not validated and
// do not touch the target record.
type PatientUpdate struct {
	Name   Optional[string]  `json:"name"`
	City   Optional[string]  `json:"city"`
	Age    Optional[int]     `json:"age"`
	Gender Optional[string]  `json:"gender"`
	Height Optional[float64] `json:"height"`
	Weight Optional[float64] `json:"weight"`
}

// Update gender accepts only male and female.
const updateGenderRule = "oneof=male female"

// Validate checks supplied fields with the same constraints as NewPatient.
func (u PatientUpdate) Validate() error {
	var errs ValidationErrors
	var fatal error

	check := func(field string, set, null bool, value any, rules string) {
		if !set || fatal != nil {
			return
		}
		if null {
			errs = append(errs, ValidationError{Field: field, Constraint: "required", Message: "field required"})
			return
		}
		if err := validate.Var(value, rules); err != nil {
			terr := translate(err, field)
			verrs, ok := terr.(ValidationErrors)
			if !ok {
				fatal = terr
				return
			}
			errs = append(errs, verrs...)
		}
	}

	check("name", u.Name.Set, u.Name.Null, u.Name.Value, "min=1")
	check("city", u.City.Set, u.City.Null, u.City.Value, "min=1")
	check("age", u.Age.Set, u.Age.Null, u.Age.Value, "gt=0,lt=120")
	check("gender", u.Gender.Set, u.Gender.Null, u.Gender.Value, updateGenderRule)
	check("height", u.Height.Set, u.Height.Null, u.Height.Value, "gt=0")
	check("weight", u.Weight.Set, u.Weight.Null, u.Weight.Value, "gt=0")

	if fatal != nil {
		return fatal
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Fields returns only the supplied fields, keyed by their JSON names.
// Explicit nulls map to nil.
func (u PatientUpdate) Fields() map[string]any {
	out := make(map[string]any)
	put := func(name string, set, null bool, value any) {
		if !set {
			return
		}
		if null {
			out[name] = nil
			return
		}
		out[name] = value
	}
	put("name", u.Name.Set, u.Name.Null, u.Name.Value)
	put("city", u.City.Set, u.City.Null, u.City.Value)
	put("age", u.Age.Set, u.Age.Null, u.Age.Value)
	put("gender", u.Gender.Set, u.Gender.Null, u.Gender.Value)
	put("height", u.Height.Set, u.Height.Null, u.Height.Value)
	put("weight", u.Weight.Set, u.Weight.Null, u.Weight.Value)
	return out
}

// IsEmpty reports whether no field was supplied.
func (u PatientUpdate) IsEmpty() bool {
	return len(u.Fields()) == 0
}

// Apply merges the supplied fields onto current and rebuilds the patient
// through NewPatient, so the merged record is validated as a whole and its
// derived fields follow the merged height and weight.
func (u PatientUpdate) Apply(id string, current Record) (Patient, error) {
	if err := u.Validate(); err != nil {
		return Patient{}, err
	}

	in := current.Input(id)
	if u.Name.Set {
		in.Name = &u.Name.Value
	}
	if u.City.Set {
		in.City = &u.City.Value
	}
	if u.Age.Set {
		in.Age = &u.Age.Value
	}
	if u.Gender.Set {
		in.Gender = &u.Gender.Value
	}
	if u.Height.Set {
		in.Height = &u.Height.Value
	}
	if u.Weight.Set {
		in.Weight = &u.Weight.Value
	}
	return NewPatient(in)
}
