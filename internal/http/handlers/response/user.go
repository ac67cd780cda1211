package response

import (
	"simpleauth/internal/core/domain/user"
	"time"
)

type User struct {
	ID          int64      `json:"id"`
	Email       string     `json:"email"`
	CreatedAt   time.Time  `json:"created_at"`
	ActivatedAt *time.Time `json:"activated_at,omitempty"`
}

func (u *User) FromDomainUser(du user.User) {
	u.ID = int64(du.ID)
	u.Email = string(du.Email)
	u.CreatedAt = du.CreatedAt
	if du.ActivatedAt.IsPresent {
		activatedAt := du.ActivatedAt.Value
		u.ActivatedAt = &activatedAt
	}
}
