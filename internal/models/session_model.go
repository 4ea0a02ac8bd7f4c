package models

import (
	"strconv"
)

// Role is the account role issued by the backend.
type Role string

const (
	RoleUser      Role = "USER"
	RoleAdmin     Role = "ADMIN"
	RoleDeveloper Role = "DEVELOPER"
)

// Keys under which a browser's session entries are persisted.
const (
	KeyToken           = "token"
	KeyRole            = "role"
	KeyUserID          = "userId"
	KeyCompanyID       = "companyId"
	KeyProfileComplete = "isProfileComplete"
	KeyUser            = "user"
	KeyVerifiedUser    = "verifiedUser"
	KeyVerifiedToken   = "verifiedToken"
)

// SessionKeys are the entries written together by a session Set.
var SessionKeys = []string{KeyToken, KeyRole, KeyUserID, KeyCompanyID, KeyProfileComplete}

// AllKeys are every entry removed by a Clear.
var AllKeys = []string{
	KeyToken, KeyRole, KeyUserID, KeyCompanyID, KeyProfileComplete,
	KeyUser, KeyVerifiedUser, KeyVerifiedToken,
}

// Session is the client-side view of the signed-in account. The backend is authoritative.
type Session struct {
	Token           string `json:"token"`
	Role            Role   `json:"role"`
	UserID          int    `json:"userId"`
	CompanyID       *int   `json:"companyId,omitempty"`
	ProfileComplete bool   `json:"isProfileComplete"`
}

// Anonymous reports whether the session carries no token.
func (s Session) Anonymous() bool {
	return s.Token == ""
}

// Entries encodes the session as individual string entries plus the session
// keys that must be removed because they have no value.
func (s Session) Entries() (set map[string]string, remove []string) {
	set = map[string]string{
		KeyToken:           s.Token,
		KeyRole:            string(s.Role),
		KeyUserID:          strconv.Itoa(s.UserID),
		KeyProfileComplete: strconv.FormatBool(s.ProfileComplete),
	}
	if s.CompanyID != nil {
		set[KeyCompanyID] = strconv.Itoa(*s.CompanyID)
	} else {
		remove = append(remove, KeyCompanyID)
	}
	if s.Token == "" {
		delete(set, KeyToken)
		remove = append(remove, KeyToken)
	}
	return set, remove
}

// SessionFromEntries decodes persisted entries. Without a token every other
// field is ignored and the zero (anonymous) session is returned.
func SessionFromEntries(values map[string]string) Session {
	token := values[KeyToken]
	if token == "" {
		return Session{}
	}
	s := Session{
		Token: token,
		Role:  Role(values[KeyRole]),
	}
	if id, err := strconv.Atoi(values[KeyUserID]); err == nil {
		s.UserID = id
	}
	if raw, ok := values[KeyCompanyID]; ok && raw != "" {
		if id, err := strconv.Atoi(raw); err == nil {
			s.CompanyID = &id
		}
	}
	s.ProfileComplete, _ = strconv.ParseBool(values[KeyProfileComplete])
	return s
}

// AuthPayload is the body returned by sign-in, social sign-in and keep-alive.
type AuthPayload struct {
	Token             string `json:"token"`
	Role              Role   `json:"role"`
	UserID            int    `json:"userId"`
	CompanyID         *int   `json:"companyId,omitempty"`
	IsProfileComplete bool   `json:"isProfileComplete"`
	User              *User  `json:"user,omitempty"`
}

// Session converts the payload into the session to persist.
func (p AuthPayload) Session() Session {
	s := Session{
		Token:           p.Token,
		Role:            p.Role,
		UserID:          p.UserID,
		CompanyID:       p.CompanyID,
		ProfileComplete: p.IsProfileComplete,
	}
	if p.User != nil {
		if s.UserID == 0 {
			s.UserID = p.User.ID
		}
		if s.Role == "" {
			s.Role = p.User.Role
		}
		if s.CompanyID == nil && p.User.CompanyID != nil {
			s.CompanyID = p.User.CompanyID
		}
	}
	return s
}
