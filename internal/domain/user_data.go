package domain

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

// ClientIPPlaceholder é substituído pelo IP real do cliente antes do envio
const ClientIPPlaceholder = "{{client_ip}}"

// IdentityField é a chave de um atributo de identidade em user_data
type IdentityField string

const (
	FieldEmail       IdentityField = "em"
	FieldPhone       IdentityField = "ph"
	FieldFirstName   IdentityField = "fn"
	FieldLastName    IdentityField = "ln"
	FieldGender      IdentityField = "ge"
	FieldDateOfBirth IdentityField = "db"
	FieldCity        IdentityField = "ct"
	FieldState       IdentityField = "st"
	FieldZipCode     IdentityField = "zp"
	FieldCountry     IdentityField = "country"
)

// HashedFields lista os campos que a Meta exige em SHA-256.
// client_ip_address e client_user_agent ficam de fora: a Meta os recebe em texto puro.
var HashedFields = []IdentityField{
	FieldEmail,
	FieldPhone,
	FieldFirstName,
	FieldLastName,
	FieldGender,
	FieldDateOfBirth,
	FieldCity,
	FieldState,
	FieldZipCode,
	FieldCountry,
}

// Values aceita tanto uma string quanto uma lista de strings no JSON
type Values []string

func (v *Values) UnmarshalJSON(data []byte) error {
	json := jsoniter.ConfigCompatibleWithStandardLibrary

	if string(data) == "null" {
		*v = nil
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*v = Values{single}
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("valor de identidade deve ser string ou lista de strings")
	}

	*v = Values(list)
	return nil
}

func (v Values) MarshalJSON() ([]byte, error) {
	json := jsoniter.ConfigCompatibleWithStandardLibrary

	if len(v) == 1 {
		return json.Marshal(v[0])
	}
	return json.Marshal([]string(v))
}

// Clone devolve uma cópia independente dos valores
func (v Values) Clone() Values {
	if v == nil {
		return nil
	}
	out := make(Values, len(v))
	copy(out, v)
	return out
}

type UserData struct {
	Email       Values `json:"em,omitempty"`
	Phone       Values `json:"ph,omitempty"`
	FirstName   Values `json:"fn,omitempty"`
	LastName    Values `json:"ln,omitempty"`
	Gender      Values `json:"ge,omitempty"`
	DateOfBirth Values `json:"db,omitempty"`
	City        Values `json:"ct,omitempty"`
	State       Values `json:"st,omitempty"`
	ZipCode     Values `json:"zp,omitempty"`
	Country     Values `json:"country,omitempty"`

	ExternalID      Values `json:"external_id,omitempty"`
	ClientIPAddress string `json:"client_ip_address,omitempty"`
	ClientUserAgent string `json:"client_user_agent,omitempty"`
	FBC             string `json:"fbc,omitempty"`
	FBP             string `json:"fbp,omitempty"`
	SubscriptionID  string `json:"subscription_id,omitempty"`
	FBLoginID       string `json:"fb_login_id,omitempty"`
	LeadID          string `json:"lead_id,omitempty"`
}

// Field devolve o ponteiro para os valores de um campo hasheável, ou nil se o campo não for conhecido
func (u *UserData) Field(f IdentityField) *Values {
	switch f {
	case FieldEmail:
		return &u.Email
	case FieldPhone:
		return &u.Phone
	case FieldFirstName:
		return &u.FirstName
	case FieldLastName:
		return &u.LastName
	case FieldGender:
		return &u.Gender
	case FieldDateOfBirth:
		return &u.DateOfBirth
	case FieldCity:
		return &u.City
	case FieldState:
		return &u.State
	case FieldZipCode:
		return &u.ZipCode
	case FieldCountry:
		return &u.Country
	}
	return nil
}

// Clone copia o bloco de identidade sem compartilhar slices com o original
func (u UserData) Clone() UserData {
	out := u
	for _, f := range HashedFields {
		field := out.Field(f)
		*field = field.Clone()
	}
	out.ExternalID = u.ExternalID.Clone()
	return out
}
