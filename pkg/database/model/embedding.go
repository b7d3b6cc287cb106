// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// Embedding is the JSON-resident copy of a vector. It is the source of truth;
// the native vector column is a best-effort mirror of it.
type Embedding []float32

// Value implements driver.Valuer interface
func (e Embedding) Value() (driver.Value, error) {
	if e == nil {
		return nil, nil
	}
	b, err := json.Marshal([]float32(e))
	return string(b), err
}

// Scan implements sql.Scanner interface
func (e *Embedding) Scan(value interface{}) error {
	if value == nil {
		*e = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, (*[]float32)(e))
	case string:
		return json.Unmarshal([]byte(v), (*[]float32)(e))
	default:
		return errors.New("type assertion to []byte or string failed")
	}
}

// Equal reports whether two embeddings hold the same values
func (e Embedding) Equal(other Embedding) bool {
	if len(e) != len(other) {
		return false
	}
	for i := range e {
		if e[i] != other[i] {
			return false
		}
	}
	return true
}
