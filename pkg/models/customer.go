package models

// Customer is a client record. VehicleModel and Email are optional and
// default to empty strings.
type Customer struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	VehicleNumber string `json:"vehicle_number"`
	VehicleModel  string `json:"vehicle_model"`
	Email         string `json:"email"`
}
