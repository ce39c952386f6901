package domain

// RouteSettings is the singleton start/end pair for the daily route.
// It is replaced wholesale on save, never merged field by field.
type RouteSettings struct {
	StartAddress Address `json:"startAddress"`
	EndAddress   Address `json:"endAddress"`
}

// Complete reports whether both endpoints are fully populated.
func (r RouteSettings) Complete() bool {
	return r.StartAddress.Complete() && r.EndAddress.Complete()
}

// StopKind tags the variants of a derived route stop.
type StopKind string

const (
	StopKindStart   StopKind = "start"
	StopKindStudent StopKind = "student"
	StopKindEnd     StopKind = "end"
)

// RouteStop is one point in the derived route sequence. Start and End
// carry a route-settings address when settings are configured; Student
// stops reference the rostered student to pick up.
type RouteStop struct {
	Kind    StopKind `json:"kind"`
	Address *Address `json:"address,omitempty"`
	Student *Student `json:"student,omitempty"`
}
