package schema

import (
	"encoding/json"
)

type ActivationEmail struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Code   string `json:"code"`
}

func (m *ActivationEmail) Marshal() ([]byte, error) {
	return json.Marshal(m)
}

func (m *ActivationEmail) Unmarshal(data []byte) error {
	return json.Unmarshal(data, m)
}
