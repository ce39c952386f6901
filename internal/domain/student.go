package domain

import "time"

// Student is one rostered passenger. AddressGo is the mandatory outbound
// pickup address; AddressReturn is an optional distinct drop-off address.
type Student struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone"`
	AddressGo     Address   `json:"addressGo"`
	AddressReturn *Address  `json:"addressReturn,omitempty"`
	IsPresent     bool      `json:"isPresent"`
	CreatedAt     time.Time `json:"createdAt"`
}

// NewStudentInput carries the fields supplied when enrolling a student.
// ID, creation timestamp and the presence flag are assigned by the store.
type NewStudentInput struct {
	Name          string
	Phone         string
	AddressGo     Address
	AddressReturn *Address
}

// StudentPatch is a partial update for a student. Nil fields are retained
// from the stored record; non-nil fields replace it wholesale.
type StudentPatch struct {
	Name          *string
	Phone         *string
	AddressGo     *Address
	AddressReturn *Address
	IsPresent     *bool
}

// Apply merges the patch into a copy of the student and returns it.
func (p StudentPatch) Apply(s Student) Student {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Phone != nil {
		s.Phone = *p.Phone
	}
	if p.AddressGo != nil {
		s.AddressGo = *p.AddressGo
	}
	if p.AddressReturn != nil {
		addr := *p.AddressReturn
		s.AddressReturn = &addr
	}
	if p.IsPresent != nil {
		s.IsPresent = *p.IsPresent
	}
	return s
}

// IsZero reports whether the patch carries no fields at all.
func (p StudentPatch) IsZero() bool {
	return p.Name == nil && p.Phone == nil && p.AddressGo == nil &&
		p.AddressReturn == nil && p.IsPresent == nil
}
