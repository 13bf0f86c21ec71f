package entity

// DoctorFilter is a domain-level filter for the public doctor directory.
// Used by the repository layer to avoid coupling with delivery DTOs.
type DoctorFilter struct {
	Specialty string // ILIKE match on specialization
	City      string
	Country   string
}

// HospitalFilter filters the hospital directory.
type HospitalFilter struct {
	City    string
	Country string
}
