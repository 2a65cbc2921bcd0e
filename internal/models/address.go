package models

import "github.com/gocql/gocql"

type Address struct {
	ID        gocql.UUID `json:"id"`
	UserID    string     `json:"userId"`
	Recipient string     `json:"recipient"`
	Phone     string     `json:"phone"`
	Line      string     `json:"line"`
	Ward      string     `json:"ward"`
	District  string     `json:"district"`
	City      string     `json:"city"`
	IsDefault bool       `json:"isDefault"`
}
