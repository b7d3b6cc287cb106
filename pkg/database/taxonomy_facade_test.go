// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package database

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 { return &v }

func TestTaxonomyFacade_Resolve_FillsAncestors(t *testing.T) {
	db, mock := newMockDB(t)
	f := NewTaxonomyFacade(db)

	mock.ExpectQuery(`FROM "subcategories" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "category_id"}).AddRow(3, "Structural", 2))
	mock.ExpectQuery(`FROM "categories" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "discipline_id"}).AddRow(2, "Welding", 1))
	mock.ExpectQuery(`FROM "disciplines" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "Trades"))

	// the discipline passed by the caller disagrees with the chain
	got, err := f.Resolve(context.Background(), HierarchyRefs{
		DisciplineID:  int64Ptr(99),
		SubcategoryID: int64Ptr(3),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), *got.Refs.DisciplineID)
	assert.Equal(t, int64(2), *got.Refs.CategoryID)
	assert.Equal(t, int64(3), *got.Refs.SubcategoryID)
	assert.Equal(t, "Trades", got.DisciplineName)
	assert.Equal(t, "Welding", got.CategoryName)
	assert.Equal(t, "Structural", got.SubcategoryName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaxonomyFacade_Resolve_DropsDanglingRefs(t *testing.T) {
	db, mock := newMockDB(t)
	f := NewTaxonomyFacade(db)

	mock.ExpectQuery(`FROM "categories" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "discipline_id"}))

	got, err := f.Resolve(context.Background(), HierarchyRefs{CategoryID: int64Ptr(8)})
	require.NoError(t, err)
	assert.Nil(t, got.Refs.CategoryID)
	assert.Nil(t, got.Refs.DisciplineID)
	assert.Empty(t, got.CategoryName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaxonomyFacade_Resolve_DatabaseError(t *testing.T) {
	db, mock := newMockDB(t)
	f := NewTaxonomyFacade(db)

	mock.ExpectQuery(`FROM "disciplines" WHERE id = \$1`).WillReturnError(errors.New("connection reset"))

	_, err := f.Resolve(context.Background(), HierarchyRefs{DisciplineID: int64Ptr(1)})
	assert.ErrorContains(t, err, "connection reset")
}
