package models

// Session is the authenticated caller of a request. The role predicates are
// computed once when the session is built.
type Session struct {
	UserID     uint   `json:"user_id"`
	Username   string `json:"username"`
	Role       Role   `json:"role"`
	IsAdmin    bool   `json:"is_admin"`
	CanPublish bool   `json:"can_publish"`
	CanVote    bool   `json:"can_vote"`
}

func NewSession(userID uint, username string, role Role) Session {
	s := Session{UserID: userID, Username: username, Role: role}

	if role.IsCustom() {
		// Custom roles are council members with a bespoke title.
		s.CanVote = true
		return s
	}

	switch std, _ := role.Standard(); std {
	case RoleAdmin:
		s.IsAdmin, s.CanPublish, s.CanVote = true, true, true
	case RoleBureau:
		s.CanPublish, s.CanVote = true, true
	case RoleMembre:
		s.CanVote = true
	}
	return s
}

func (s Session) Authenticated() bool {
	return s.UserID != 0
}
