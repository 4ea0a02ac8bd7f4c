package core

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"workoo-web/internal/models"
)

// ProfileCache holds recently fetched user and company snapshots for rendering.
// Entries are advisory; guards never read them.
type ProfileCache struct {
	users     *expirable.LRU[int, models.User]
	companies *expirable.LRU[int, models.Company]
}

// NewProfileCache creates a cache holding up to size entries of each kind for ttl.
func NewProfileCache(size int, ttl time.Duration) *ProfileCache {
	return &ProfileCache{
		users:     expirable.NewLRU[int, models.User](size, nil, ttl),
		companies: expirable.NewLRU[int, models.Company](size, nil, ttl),
	}
}

func (p *ProfileCache) PutUser(u models.User) {
	if u.ID == 0 {
		return
	}
	p.users.Add(u.ID, u)
}

func (p *ProfileCache) User(id int) (models.User, bool) {
	return p.users.Get(id)
}

func (p *ProfileCache) ForgetUser(id int) {
	p.users.Remove(id)
}

func (p *ProfileCache) PutCompany(c models.Company) {
	if c.ID == 0 {
		return
	}
	p.companies.Add(c.ID, c)
}

func (p *ProfileCache) Company(id int) (models.Company, bool) {
	return p.companies.Get(id)
}
