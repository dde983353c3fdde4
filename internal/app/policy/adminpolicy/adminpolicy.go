// Package adminpolicy decides who may use the admin surface. The
// allow-list is injected from configuration at startup; nothing in the
// request path consults an ambient constant.
package adminpolicy

import (
	"github.com/tacar/listhub/internal/app/system/normalize"
)

// Policy holds the admin email allow-list.
type Policy struct {
	emails map[string]struct{}
}

// New builds a Policy from the configured allow-list. Addresses are
// normalized the same way userstore stores them, so comparison is exact.
func New(allowed []string) *Policy {
	set := make(map[string]struct{}, len(allowed))
	for _, e := range allowed {
		e = normalize.Email(e)
		if e == "" {
			continue
		}
		set[e] = struct{}{}
	}
	return &Policy{emails: set}
}

// IsAdmin reports whether email is on the allow-list. An empty email is
// never an admin, even if the list somehow contains one.
func (p *Policy) IsAdmin(email string) bool {
	email = normalize.Email(email)
	if email == "" {
		return false
	}
	_, ok := p.emails[email]
	return ok
}
