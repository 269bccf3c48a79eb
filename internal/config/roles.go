package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/linskybing/robolab-go/internal/domain/profile"
	"gopkg.in/yaml.v2"
)

type rolesFile struct {
	Roles map[string]string `yaml:"roles"`
}

// LoadRoles reads the email to role allow-list, e.g.
//
//	roles:
//	  admin@example.edu: super_admin
//	  prof@example.edu: faculty
func LoadRoles(path string) (map[string]profile.Role, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return map[string]profile.Role{}, fmt.Errorf("read roles file: %w", err)
	}
	return ParseRoles(raw)
}

func ParseRoles(raw []byte) (map[string]profile.Role, error) {
	var f rolesFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return map[string]profile.Role{}, fmt.Errorf("parse roles file: %w", err)
	}
	out := make(map[string]profile.Role, len(f.Roles))
	for email, role := range f.Roles {
		r := profile.Role(strings.TrimSpace(role))
		if !r.Valid() {
			return map[string]profile.Role{}, fmt.Errorf("roles file: unknown role %q for %s", role, email)
		}
		out[strings.ToLower(strings.TrimSpace(email))] = r
	}
	return out, nil
}
