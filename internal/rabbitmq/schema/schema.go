package schema

import (
	"encoding/json"
)

type PasswordResetEmail struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Token    string `json:"token"`
}

func (m *PasswordResetEmail) Marshal() ([]byte, error) {
	return json.Marshal(m)
}

func (m *PasswordResetEmail) Unmarshal(data []byte) error {
	return json.Unmarshal(data, m)
}
