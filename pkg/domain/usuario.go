package domain

// Role is a staff account type. It gates admin-only capability.
type Role string

const (
	RoleAdministrador Role = "Administrador"
	RoleOperador      Role = "Operador"
	RoleVisualizador  Role = "Visualizador"

	// roleLegacyAdmin is what the seeded admin account carries.
	roleLegacyAdmin Role = "ADMIN"
)

// Roles lists the assignable roles in display order.
var Roles = []Role{RoleAdministrador, RoleOperador, RoleVisualizador}

// IsAdmin reports whether the role grants administrator capability.
func (r Role) IsAdmin() bool {
	return r == RoleAdministrador || r == roleLegacyAdmin
}

// CanWrite reports whether the role may register customers, visits and
// redemptions. Viewers are read-only.
func (r Role) CanWrite() bool {
	return r.IsAdmin() || r == RoleOperador
}

// Valid reports whether r is one of the assignable roles.
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// Usuario is a staff account as returned by /auth/login and /auth/me.
type Usuario struct {
	ID          int64     `json:"id,omitempty"`
	Login       string    `json:"login"`
	Nome        string    `json:"nome"`
	Email       string    `json:"email,omitempty"`
	Tipo        Role      `json:"tipo"`
	Ativo       bool      `json:"ativo"`
	DataCriacao Timestamp `json:"data_criacao"`
	UltimoLogin Timestamp `json:"ultimo_login"`
}

// LoginResult is the /auth/login response body.
type LoginResult struct {
	AccessToken string  `json:"access_token"`
	Usuario     Usuario `json:"usuario"`
}
