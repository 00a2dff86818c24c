package auth

// Role es el rol de la cuenta. Se persiste como string en users.role.
type Role string

const (
	RoleOwner Role = "owner"
	RoleVet   Role = "vet"
)

func ValidRole(r Role) bool {
	return r == RoleOwner || r == RoleVet
}

// Claims representa la información extraída del token.
// El payload firmado lleva solo {sub, exp}; el resto se resuelve contra la DB.
type Claims struct {
	UserID string
}

// Identity es el usuario ya resuelto desde el subject del token.
type Identity struct {
	UserID   string
	Email    string
	FullName string
	Role     Role
}
