package domain

// Role differentiates patient vs doctor accounts. The two populations
// live in disjoint stores.
type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
)

// Valid reports whether the role belongs to the recognized set.
func (r Role) Valid() bool {
	return r == RolePatient || r == RoleDoctor
}
