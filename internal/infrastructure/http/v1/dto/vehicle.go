package dto

import (
	"bengkel/internal/core/apperror"
	"bengkel/internal/core/id"
	"bengkel/internal/domain/catalogs/vehicle"
)

// --- Request DTOs ---

// CreateVehicleRequest is the request body for registering a vehicle.
type CreateVehicleRequest struct {
	CustomerID  string `json:"customerId" binding:"required"`
	PlateNumber string `json:"plateNumber" binding:"required"`
	Make        string `json:"make" binding:"required"`
	Model       string `json:"model"`
	Year        int    `json:"year"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateVehicleRequest) ToEntity() (*vehicle.Vehicle, error) {
	customerID, err := id.Parse(r.CustomerID)
	if err != nil {
		return nil, apperror.NewValidation("invalid customer id").
			WithDetail("customerId", r.CustomerID)
	}
	v := vehicle.New(customerID, r.PlateNumber, r.Make)
	v.Model = r.Model
	v.Year = r.Year
	return v, nil
}

// UpdateVehicleRequest is the request body for updating a vehicle.
type UpdateVehicleRequest struct {
	PlateNumber string `json:"plateNumber" binding:"required"`
	Make        string `json:"make" binding:"required"`
	Model       string `json:"model"`
	Year        int    `json:"year"`
	Version     int    `json:"version" binding:"required,min=1"`
}

// ApplyTo applies update DTO to existing entity. The owning customer
// never changes through this endpoint.
func (r *UpdateVehicleRequest) ApplyTo(v *vehicle.Vehicle) {
	v.PlateNumber = r.PlateNumber
	v.Make = r.Make
	v.Model = r.Model
	v.Year = r.Year
	v.Version = r.Version
	v.Name = v.Label()
}

// --- Response DTOs ---

// VehicleResponse is the response body for a vehicle.
type VehicleResponse struct {
	ID           string `json:"id"`
	CustomerID   string `json:"customerId"`
	Label        string `json:"label"`
	PlateNumber  string `json:"plateNumber"`
	Make         string `json:"make"`
	Model        string `json:"model,omitempty"`
	Year         int    `json:"year,omitempty"`
	DeletionMark bool   `json:"deletionMark"`
	Version      int    `json:"version"`
}

// FromVehicle creates response DTO from domain entity.
func FromVehicle(v *vehicle.Vehicle) *VehicleResponse {
	return &VehicleResponse{
		ID:           v.ID.String(),
		CustomerID:   v.CustomerID.String(),
		Label:        v.Label(),
		PlateNumber:  v.PlateNumber,
		Make:         v.Make,
		Model:        v.Model,
		Year:         v.Year,
		DeletionMark: v.DeletionMark,
		Version:      v.Version,
	}
}

// FromVehicles maps a slice of entities.
func FromVehicles(list []*vehicle.Vehicle) []*VehicleResponse {
	out := make([]*VehicleResponse, 0, len(list))
	for _, v := range list {
		out = append(out, FromVehicle(v))
	}
	return out
}
