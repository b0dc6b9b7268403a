// Package config provides environment configuration loading and validation
package config

import (
	"fmt"
	"os"
	"strings"
)

// RequiredVars lists the variables the blog service refuses to start without
var RequiredVars = []string{"DATABASE_URL", "JWT_SECRET"}

// MigrateVars lists the variables the migrate command needs
var MigrateVars = []string{"DATABASE_URL"}

// ValidateEnv validates that all required environment variables are set
func ValidateEnv(requiredVars []string) error {
	var missing []string

	for _, varName := range requiredVars {
		if strings.TrimSpace(os.Getenv(varName)) == "" {
			missing = append(missing, varName)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return nil
}
