// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/AMD-AGI/Primus-SaFE/Lens/talent-matcher/pkg/database"
	"github.com/AMD-AGI/Primus-SaFE/Lens/talent-matcher/pkg/vectorstore"
	"gorm.io/gorm"
)

// VectorMirror writes an embedding into its indexed column, best effort
type VectorMirror interface {
	Write(ctx context.Context, target database.VectorTarget, id int64, vec []float32) vectorstore.Outcome
}

// notFound maps gorm's missing-record error onto ErrNotFound
func notFound(err error, what string, id int64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %d %w", what, id, ErrNotFound)
	}
	return fmt.Errorf("failed to load %s %d: %w", what, id, err)
}
