package domain

import "time"

type WorkOrder struct {
	ID          string
	WONo        string
	Reg         string
	Customer    string
	Description string
	PN          string
	SN          string
	CreatedAt   time.Time
}
