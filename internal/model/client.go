package model

import "time"

// Client is a permanent account, created from registration data at migration time.
type Client struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"passwordHash"`
	CompanyName  string    `json:"companyName" bson:"companyName"`
	PhoneNumber  string    `json:"phoneNumber,omitempty" bson:"phoneNumber,omitempty"`
	Address      string    `json:"address,omitempty" bson:"address,omitempty"`
	City         string    `json:"city,omitempty" bson:"city,omitempty"`
	PostalCode   string    `json:"postalCode,omitempty" bson:"postalCode,omitempty"`
	SIREN        string    `json:"siren,omitempty" bson:"siren,omitempty"`
	MigratedFrom string    `json:"migratedFrom,omitempty" bson:"migratedFrom,omitempty"` // session token
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
}

// ClientRegistration is the payload accepted when turning a session into an account.
type ClientRegistration struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	CompanyName string `json:"companyName"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`
	City        string `json:"city"`
	PostalCode  string `json:"postalCode"`
	SIREN       string `json:"siren"`
}
