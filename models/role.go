package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

type StandardRole string

const (
	RoleEleve  StandardRole = "eleve"
	RoleMembre StandardRole = "membre"
	RoleBureau StandardRole = "bureau"
	RoleAdmin  StandardRole = "admin"
)

const customRolePrefix = "custom:"

var ErrInvalidRole = errors.New("invalid role")

// Role is either one of the standard roles or a free-form custom label.
// The string form "custom:<label>" only exists at the storage and JSON boundary.
type Role struct {
	custom   bool
	standard StandardRole
	label    string
}

func Standard(r StandardRole) Role {
	return Role{standard: r}
}

func Custom(label string) Role {
	return Role{custom: true, label: label}
}

// ParseRole decodes the stored representation of a role.
func ParseRole(s string) (Role, error) {
	s = strings.TrimSpace(s)
	if label, ok := strings.CutPrefix(s, customRolePrefix); ok {
		label = strings.TrimSpace(label)
		if label == "" {
			return Role{}, fmt.Errorf("%w: empty custom label", ErrInvalidRole)
		}
		return Custom(label), nil
	}

	switch r := StandardRole(s); r {
	case RoleEleve, RoleMembre, RoleBureau, RoleAdmin:
		return Standard(r), nil
	case "":
		return Standard(RoleEleve), nil
	default:
		return Role{}, fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
}

func (r Role) IsCustom() bool {
	return r.custom
}

// Standard returns the standard role, or false for custom roles.
func (r Role) Standard() (StandardRole, bool) {
	if r.custom {
		return "", false
	}
	if r.standard == "" {
		return RoleEleve, true
	}
	return r.standard, true
}

// Label is the custom label, empty for standard roles.
func (r Role) Label() string {
	return r.label
}

func (r Role) Is(s StandardRole) bool {
	std, ok := r.Standard()
	return ok && std == s
}

func (r Role) String() string {
	if r.custom {
		return customRolePrefix + r.label
	}
	std, _ := r.Standard()
	return string(std)
}

func (r Role) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *Role) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseRole(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

func (r Role) Value() (driver.Value, error) {
	return r.String(), nil
}

func (r *Role) Scan(value interface{}) error {
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	case nil:
		s = ""
	default:
		return fmt.Errorf("cannot scan %T into Role", value)
	}
	parsed, err := ParseRole(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

func (Role) GormDataType() string {
	return "varchar(100)"
}
