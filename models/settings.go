package models

import "time"

// DefaultSettingsID is the id of the single hospedajes row
const DefaultSettingsID = "default"

// PropertySettings represents the hospedajes row with property info and theme
type PropertySettings struct {
	ID             string    `json:"id"`
	Name           string    `json:"name" validate:"required,max=120"`
	Description    string    `json:"description" validate:"max=4000"`
	Address        string    `json:"address" validate:"max=240"`
	Phone          string    `json:"phone" validate:"max=40"`
	Email          string    `json:"email" validate:"omitempty,email"`
	CurrencySymbol string    `json:"currencySymbol" validate:"max=5"`
	PrimaryColor   string    `json:"primaryColor" validate:"omitempty,hexcolor"`
	ThemeMode      string    `json:"themeMode" validate:"omitempty,oneof=light dark"`
	CheckInTime    string    `json:"checkInTime" validate:"omitempty,len=5"`
	CheckOutTime   string    `json:"checkOutTime" validate:"omitempty,len=5"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// DefaultSettings returns the settings used when no row has been saved yet
func DefaultSettings() PropertySettings {
	return PropertySettings{
		ID:             DefaultSettingsID,
		Name:           "Hospedaje",
		CurrencySymbol: "Bs",
		PrimaryColor:   "#2f6f4e",
		ThemeMode:      "light",
		CheckInTime:    "14:00",
		CheckOutTime:   "11:00",
	}
}
