// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package database

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestVectorLiteral(t *testing.T) {
	assert.Equal(t, "[1,2.5,-3]", VectorLiteral([]float32{1, 2.5, -3}))
}

func TestVectorFacade_NearestCandidates(t *testing.T) {
	db, mock := newMockDB(t)
	f := NewVectorFacade(db, 1536)

	mock.ExpectQuery(`SELECT id, bio_embedding_vec <=> \$1::vector AS distance\s+FROM candidates\s+WHERE bio_embedding_vec IS NOT NULL\s+AND bio_embedding_vec <=> \$2::vector < \$3\s+ORDER BY distance ASC\s+LIMIT \$4`).
		WithArgs("[0.1,0.2]", "[0.1,0.2]", 0.7, 50).
		WillReturnRows(sqlmock.NewRows([]string{"id", "distance"}).
			AddRow(5, 0.12).
			AddRow(9, 0.31))

	hits, err := f.NearestCandidates(context.Background(), []float32{0.1, 0.2}, 0.7, 50)
	require.NoError(t, err)
	assert.Equal(t, []VectorHit{{ID: 5, Distance: 0.12}, {ID: 9, Distance: 0.31}}, hits)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVectorFacade_NearestSkills(t *testing.T) {
	db, mock := newMockDB(t)
	f := NewVectorFacade(db, 1536)

	mock.ExpectQuery(`FROM skills\s+WHERE embedding_vec IS NOT NULL\s+AND embedding_vec <=> \$2::vector < \$3`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "group_text", "distance"}).
			AddRow(3, "Welding", "Major Discipline: Trades | Skill: Welding", 0.2))

	hits, err := f.NearestSkills(context.Background(), []float32{0.5}, 0.7, 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, int64(3), hits[0].ID)
	assert.Equal(t, "Welding", hits[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVectorFacade_CandidatesBySkills(t *testing.T) {
	db, mock := newMockDB(t)
	f := NewVectorFacade(db, 1536)

	mock.ExpectQuery(`WHERE primary_skill_id IN \(\$1,\$2\)\s+ORDER BY CASE primary_skill_id WHEN \$3 THEN 0 WHEN \$4 THEN 1 END, id ASC\s+LIMIT \$5`).
		WithArgs(int64(7), int64(2), int64(7), int64(2), 50).
		WillReturnRows(sqlmock.NewRows([]string{"id", "primary_skill_id"}).
			AddRow(12, 7).
			AddRow(4, 2))

	refs, err := f.CandidatesBySkills(context.Background(), []int64{7, 2}, 50)
	require.NoError(t, err)
	assert.Equal(t, []SkillCandidateRef{{ID: 12, PrimarySkillID: 7}, {ID: 4, PrimarySkillID: 2}}, refs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVectorFacade_CandidatesBySkills_Empty(t *testing.T) {
	db, mock := newMockDB(t)
	f := NewVectorFacade(db, 1536)

	refs, err := f.CandidatesBySkills(context.Background(), nil, 50)
	require.NoError(t, err)
	assert.Empty(t, refs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVectorFacade_UpdateVectorColumn(t *testing.T) {
	db, mock := newMockDB(t)
	f := NewVectorFacade(db, 1536)

	mock.ExpectExec(`UPDATE candidates SET bio_embedding_vec = \$1::vector\(1536\) WHERE id = \$2`).
		WithArgs("[1,2]", int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := f.UpdateVectorColumn(context.Background(), CandidateVectorTarget, 7, "[1,2]")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVectorFacade_UpdateVectorColumn_UnknownTarget(t *testing.T) {
	db, _ := newMockDB(t)
	f := NewVectorFacade(db, 1536)

	err := f.UpdateVectorColumn(context.Background(), VectorTarget{Table: "users", Column: "password"}, 1, "[1]")
	assert.Error(t, err)
}

func TestVectorFacade_SearchSkillsByText_EscapesWildcards(t *testing.T) {
	db, mock := newMockDB(t)
	f := NewVectorFacade(db, 1536)

	mock.ExpectQuery(`WHERE name ILIKE \$1 OR group_text ILIKE \$2`).
		WithArgs(`%100\%%`, `%100\%%`, `100\%%`, 20).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "group_text"}))

	hits, err := f.SearchSkillsByText(context.Background(), " 100% ", 20)
	require.NoError(t, err)
	assert.Empty(t, hits)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyQuery_RejectsUnknownField(t *testing.T) {
	db, _ := newMockDB(t)
	_, err := applyQuery(db, Query{All: []Filter{{Field: "password_hash", Op: OpEquals, Value: "x"}}}, candidateFilterFields)
	assert.Error(t, err)

	_, err = applyQuery(db, Query{Any: []Filter{{Field: "job_title", Op: "regex", Value: "x"}}}, candidateFilterFields)
	assert.Error(t, err)
}
