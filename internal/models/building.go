package models

// Building is a residential building managed through the dashboard.
type Building struct {
	// ID is the unique identifier for the building (UUID format).
	ID string

	// ManagerID is the user who owns this building. All reads and writes
	// of the building's data are restricted to this user.
	ManagerID string

	// Name is the display name (e.g., "برج یاس").
	Name string

	// Address is free text.
	Address string

	// CreatedAt is the Unix timestamp when the building was created.
	CreatedAt int64
}

// Unit is an individually owned or rented space within a building.
type Unit struct {
	ID         string
	BuildingID string

	// Number is the label shown on the door (e.g., "12", "B-3").
	Number string

	Floor int

	// Area is the floor area in square meters. Always positive.
	Area float64

	// Coefficient is the ownership-share weight, independent of area.
	Coefficient float64

	// ResidentsCount is the headcount used by the residents division method.
	ResidentsCount int

	// OwnerName is the registered owner of the unit.
	OwnerName string

	CreatedAt int64
}

// ResidentRole distinguishes owners from tenants.
type ResidentRole string

const (
	ResidentRoleOwner  ResidentRole = "owner"
	ResidentRoleTenant ResidentRole = "tenant"
)

// Resident is a person living in a unit.
type Resident struct {
	ID        string
	UnitID    string
	FullName  string
	Phone     string
	Role      ResidentRole
	CreatedAt int64
}
