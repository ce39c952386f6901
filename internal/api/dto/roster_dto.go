package dto

import "github.com/CaioVictor3/Bus-Manager-App/internal/domain"

// AddressPayload carries address fields on the wire.
type AddressPayload struct {
	CEP          string `json:"cep"`
	Street       string `json:"street"`
	Number       string `json:"number"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
	Complement   string `json:"complement,omitempty"`
}

// ToDomain converts the payload, normalizing the postal code.
func (a AddressPayload) ToDomain() domain.Address {
	return domain.Address{
		CEP:          domain.NormalizeCEP(a.CEP),
		Street:       a.Street,
		Number:       a.Number,
		Neighborhood: a.Neighborhood,
		City:         a.City,
		State:        a.State,
		Complement:   a.Complement,
	}
}

// AddStudentRequest payload for enrolling a student.
type AddStudentRequest struct {
	Name          string          `json:"name"`
	Phone         string          `json:"phone"`
	AddressGo     AddressPayload  `json:"addressGo"`
	AddressReturn *AddressPayload `json:"addressReturn,omitempty"`
}

// UpdateStudentRequest is a partial update; absent fields are retained.
type UpdateStudentRequest struct {
	Name          *string         `json:"name,omitempty"`
	Phone         *string         `json:"phone,omitempty"`
	AddressGo     *AddressPayload `json:"addressGo,omitempty"`
	AddressReturn *AddressPayload `json:"addressReturn,omitempty"`
	IsPresent     *bool           `json:"isPresent,omitempty"`
}

// ToPatch converts the request into the store's patch type.
func (r UpdateStudentRequest) ToPatch() domain.StudentPatch {
	patch := domain.StudentPatch{
		Name:      r.Name,
		Phone:     r.Phone,
		IsPresent: r.IsPresent,
	}
	if r.AddressGo != nil {
		addr := r.AddressGo.ToDomain()
		patch.AddressGo = &addr
	}
	if r.AddressReturn != nil {
		addr := r.AddressReturn.ToDomain()
		patch.AddressReturn = &addr
	}
	return patch
}

// RouteSettingsRequest payload replacing the route singleton.
type RouteSettingsRequest struct {
	StartAddress AddressPayload `json:"startAddress"`
	EndAddress   AddressPayload `json:"endAddress"`
}

// ToDomain converts the request.
func (r RouteSettingsRequest) ToDomain() domain.RouteSettings {
	return domain.RouteSettings{
		StartAddress: r.StartAddress.ToDomain(),
		EndAddress:   r.EndAddress.ToDomain(),
	}
}
