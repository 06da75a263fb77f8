// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/income-eligibility/pkg/eligibility"
)

// FindDetermination finds a program's determination by name.
// Returns a pointer to the determination if found, nil otherwise.
func FindDetermination(determinations []eligibility.Determination, program string) *eligibility.Determination {
	for i := range determinations {
		if determinations[i].Program == program {
			return &determinations[i]
		}
	}
	return nil
}

// ContainsProgram reports whether program appears in a referral list.
func ContainsProgram(programs []string, program string) bool {
	for _, p := range programs {
		if p == program {
			return true
		}
	}
	return false
}
