package dto

import (
	appctx "storeops/internal/core/context"
	"storeops/internal/core/id"
)

// SwitchStoreRequest moves the session to another store.
type SwitchStoreRequest struct {
	StoreID id.Ref `json:"storeId" binding:"required"`
}

// SessionResponse describes the current console session.
type SessionResponse struct {
	UserID    string   `json:"userId"`
	UserName  string   `json:"userName,omitempty"`
	StoreID   string   `json:"storeId"`
	StoreKind string   `json:"storeKind,omitempty"`
	Roles     []string `json:"roles"`
}

// FromSession builds the session response.
func FromSession(s *appctx.Session) SessionResponse {
	roles := s.Roles
	if roles == nil {
		roles = []string{}
	}
	return SessionResponse{
		UserID:    s.UserID,
		UserName:  s.UserName,
		StoreID:   s.StoreID,
		StoreKind: s.StoreKind,
		Roles:     roles,
	}
}
