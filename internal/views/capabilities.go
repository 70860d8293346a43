package views

import "adminhub/internal/domain"

// Capabilities decides which actions a page offers. It only hides buttons;
// the server checks every write again.
type Capabilities struct {
	Role domain.UserRole
}

func CapabilitiesFor(role domain.UserRole) Capabilities {
	return Capabilities{Role: domain.NormalizeCode[domain.UserRole](string(role))}
}

func (c Capabilities) Can(a domain.Action) bool { return domain.Can(c.Role, a) }

// Require is the local guard form of Can.
func (c Capabilities) Require(a domain.Action) error {
	if !c.Can(a) {
		return domain.ForbiddenError{}
	}
	return nil
}

// Allowed lists the actions the role may perform.
func (c Capabilities) Allowed() []domain.Action {
	out := []domain.Action{}
	for _, a := range domain.Actions() {
		if c.Can(a) {
			out = append(out, a)
		}
	}
	return out
}
