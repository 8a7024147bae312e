package domain

import (
	"regexp"
	"time"
)

// TransportType is the vehicle a courier delivers with.
type TransportType string

// List of possible courier transport types
const (
	TransportOnFoot     TransportType = "on_foot"
	TransportBicycle    TransportType = "bicycle"
	TransportMotorcycle TransportType = "motorcycle"
	TransportCar        TransportType = "car"
)

var allowedTransportTypes = [...]TransportType{
	TransportOnFoot, TransportBicycle, TransportMotorcycle, TransportCar,
}

// Valid checks if the TransportType is valid
func (t TransportType) Valid() bool {
	for _, v := range allowedTransportTypes {
		if t == v {
			return true
		}
	}
	return false
}

// Courier represents a delivery agent (repartidor).
type Courier struct {
	ID            int64
	FullName      string
	Phone         string
	TransportType TransportType
	CreatedAt     time.Time
}

// PartialCourierUpdate carries optional fields to update a courier.
// A nil field means “do not change” that attribute.
type PartialCourierUpdate struct {
	ID            int64
	FullName      *string
	Phone         *string
	TransportType *TransportType
}

var rePhone = regexp.MustCompile(`^\+[0-9]{10,15}$`)

// ValidatePhone reports whether s is an international phone number.
func ValidatePhone(s string) bool {
	return rePhone.MatchString(s)
}
