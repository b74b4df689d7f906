package api

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

const (
	minPasswordLength = 6
	minAge            = 1
	maxAge            = 120
)

// emailPattern accepts the same addresses as the email matcher on the clients
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9+._%\-]{1,256}@[a-zA-Z0-9][a-zA-Z0-9\-]{0,64}(\.[a-zA-Z0-9][a-zA-Z0-9\-]{0,25})+$`)

// fieldErrors maps a form field to the message id of its first problem
type fieldErrors map[string]string

func (f fieldErrors) add(field, messageID string) {
	if _, ok := f[field]; !ok {
		f[field] = messageID
	}
}

// ageField accepts an age sent either as a JSON number or as a string.
// null leaves it blank.
type ageField string

func (a *ageField) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = ageField(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*a = ageField(n.String())
	return nil
}

type signUpForm struct {
	Email           string   `json:"email"`
	FirstName       string   `json:"first_name"`
	LastName        string   `json:"last_name"`
	Age             ageField `json:"age"`
	Password        string   `json:"password"`
	ConfirmPassword string   `json:"confirm_password"`
}

// normalize trims everything but the passwords
func (f *signUpForm) normalize() {
	f.Email = strings.TrimSpace(f.Email)
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.Age = ageField(strings.TrimSpace(string(f.Age)))
}

// validate checks every field and reports all failures at once
func (f *signUpForm) validate() fieldErrors {
	errs := fieldErrors{}

	if f.FirstName == "" {
		errs.add("first_name", "field.first_name.required")
	}

	if f.LastName == "" {
		errs.add("last_name", "field.last_name.required")
	}

	validateEmail(f.Email, errs)

	if f.Age != "" {
		if _, ok := parseAge(string(f.Age)); !ok {
			errs.add("age", "field.age.invalid")
		}
	}

	validatePassword(f.Password, errs)

	if f.ConfirmPassword == "" {
		errs.add("confirm_password", "field.confirm_password.required")
	} else if f.ConfirmPassword != f.Password {
		errs.add("confirm_password", "field.confirm_password.mismatch")
	}

	return errs
}

// age returns the parsed age, nil when it is blank
func (f *signUpForm) age() *int {
	if f.Age == "" {
		return nil
	}
	age, ok := parseAge(string(f.Age))
	if !ok {
		return nil
	}
	return &age
}

type signInForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (f *signInForm) normalize() {
	f.Email = strings.TrimSpace(f.Email)
}

func (f *signInForm) validate() fieldErrors {
	errs := fieldErrors{}
	validateEmail(f.Email, errs)
	validatePassword(f.Password, errs)
	return errs
}

func validateEmail(email string, errs fieldErrors) {
	if email == "" {
		errs.add("email", "field.email.required")
	} else if !emailPattern.MatchString(email) {
		errs.add("email", "field.email.invalid")
	}
}

func validatePassword(password string, errs fieldErrors) {
	if password == "" {
		errs.add("password", "field.password.required")
	} else if len([]rune(password)) < minPasswordLength {
		errs.add("password", "field.password.too_short")
	}
}

func parseAge(s string) (int, bool) {
	age, err := strconv.Atoi(s)
	if err != nil || age < minAge || age > maxAge {
		return 0, false
	}
	return age, true
}
