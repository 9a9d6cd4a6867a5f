package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

func GenerateLedgerID() string {
	return fmt.Sprintf("ledger_%s_%d",
		time.Now().Format("20060102"),
		uuid.New().ID())
}

func GenerateSessionID() string {
	return uuid.New().String()
}

func (r *RegisterRequest) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("display name is required")
	}
	if len(r.Name) > 64 {
		return fmt.Errorf("display name must be at most 64 characters")
	}
	return nil
}

func (r *CertifyRequest) Validate() error {
	if r.Address == "" {
		return fmt.Errorf("target address is required")
	}
	// Points are admin-supplied with no upper bound; the admin role is
	// trusted. Negative awards are rejected so Point never shrinks.
	if r.Points < 0 {
		return fmt.Errorf("points must not be negative")
	}
	return nil
}
