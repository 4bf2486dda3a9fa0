package api

type Building struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Address   string `json:"address"`
	UnitCount int    `json:"unit_count"`
	CreatedAt int64  `json:"created_at"`
}

type Unit struct {
	ID             string  `json:"id"`
	BuildingID     string  `json:"building_id"`
	Number         string  `json:"number"`
	Floor          int     `json:"floor"`
	Area           float64 `json:"area"`
	Coefficient    float64 `json:"coefficient"`
	ResidentsCount int     `json:"residents_count"`
	OwnerName      string  `json:"owner_name"`
}

type Resident struct {
	ID       string `json:"id"`
	UnitID   string `json:"unit_id"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
}

type CreateBuildingRequest struct {
	Name    string `json:"name" validate:"required,max=120"`
	Address string `json:"address" validate:"max=500"`
}

type CreateBuildingResponse struct {
	Building *Building `json:"building"`
}

type GetBuildingRequest struct {
	BuildingID string `json:"building_id" validate:"required"`
}

type GetBuildingResponse struct {
	Building *Building `json:"building"`
}

type ListBuildingsRequest struct{}

type ListBuildingsResponse struct {
	Buildings []*Building `json:"buildings"`
}

type DeleteBuildingRequest struct {
	BuildingID string `json:"building_id" validate:"required"`
}

type DeleteBuildingResponse struct{}

// UnitInput is the editable part of a unit.
type UnitInput struct {
	Number         string  `json:"number" validate:"required,max=20"`
	Floor          int     `json:"floor" validate:"gte=-5,lte=200"`
	Area           float64 `json:"area" validate:"gt=0"`
	Coefficient    float64 `json:"coefficient" validate:"gt=0"`
	ResidentsCount int     `json:"residents_count" validate:"gte=0"`
	OwnerName      string  `json:"owner_name" validate:"max=120"`
}

type CreateUnitRequest struct {
	BuildingID string    `json:"building_id" validate:"required"`
	Unit       UnitInput `json:"unit"`
}

type CreateUnitResponse struct {
	Unit *Unit `json:"unit"`
}

type UpdateUnitRequest struct {
	UnitID string    `json:"unit_id" validate:"required"`
	Unit   UnitInput `json:"unit"`
}

type UpdateUnitResponse struct {
	Unit *Unit `json:"unit"`
}

type ListUnitsRequest struct {
	BuildingID string `json:"building_id" validate:"required"`
}

type ListUnitsResponse struct {
	Units []*Unit `json:"units"`
}

type DeleteUnitRequest struct {
	UnitID string `json:"unit_id" validate:"required"`
}

type DeleteUnitResponse struct{}

type AddResidentRequest struct {
	UnitID   string `json:"unit_id" validate:"required"`
	FullName string `json:"full_name" validate:"required,max=120"`
	Phone    string `json:"phone" validate:"omitempty,numeric,min=10,max=13"`
	Role     string `json:"role" validate:"required,oneof=owner tenant"`
}

type AddResidentResponse struct {
	Resident *Resident `json:"resident"`
}

type ListResidentsRequest struct {
	UnitID string `json:"unit_id" validate:"required"`
}

type ListResidentsResponse struct {
	Residents []*Resident `json:"residents"`
}

type RemoveResidentRequest struct {
	ResidentID string `json:"resident_id" validate:"required"`
}

type RemoveResidentResponse struct{}
