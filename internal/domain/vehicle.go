package domain

// Vehicle describes the van or bus a driver operates.
type Vehicle struct {
	Model    string `json:"model"`
	Plate    string `json:"plate"`
	Capacity int    `json:"capacity"`
	Color    string `json:"color"`
}
