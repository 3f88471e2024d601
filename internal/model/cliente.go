package model

import "time"

// Cliente is deactivated, never hard-deleted, once any venta references it.
type Cliente struct {
	ID        uint   `gorm:"primaryKey"`
	Nombre    string `gorm:"index;not null"`
	Telefono  string
	Direccion string
	Activo    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Cliente) TableName() string { return "clientes" }
