package entity

import "time"

// DeviceModel código de modelo de equipo soportado.
type DeviceModel string

const (
	DeviceModelC224  DeviceModel = "C224"
	DeviceModelC224e DeviceModel = "C224e"
	DeviceModelC258  DeviceModel = "C258"
	DeviceModelC250i DeviceModel = "C250i"
	DeviceModelC251i DeviceModel = "C251i"
)

// DeviceModels lista en orden de presentación.
var DeviceModels = []DeviceModel{
	DeviceModelC224,
	DeviceModelC224e,
	DeviceModelC258,
	DeviceModelC250i,
	DeviceModelC251i,
}

// Valid informa si m es un modelo conocido.
func (m DeviceModel) Valid() bool {
	for _, known := range DeviceModels {
		if m == known {
			return true
		}
	}
	return false
}

// Device equipo (fotocopiadora/impresora) identificado por número de serie.
type Device struct {
	ID           string
	Model        string
	SerialNumber string
	CustomerID   *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DeviceWithRelations equipo con su cliente propietario (si tiene).
type DeviceWithRelations struct {
	Device
	Customer *Customer
}
