package models

import (
	"fmt"
	"strings"
)

// Procedure is a billable clinical act performed for a patient. The billed
// flag flips to true when a bill is generated from it and never reverts.
type Procedure struct {
	Name   string  `json:"name"`
	Cost   float64 `json:"cost"`
	Billed bool    `json:"billed"`
}

// Validate checks that the procedure record is valid.
func (p *Procedure) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("procedure name is required")
	}
	if p.Cost < 0 {
		return fmt.Errorf("procedure cost must be non-negative")
	}
	return nil
}
