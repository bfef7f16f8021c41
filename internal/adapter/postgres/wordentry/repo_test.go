package wordentry

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/zhdict/internal/domain"
)

func newMockRepo(t *testing.T) (*Repo, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return New(mock), mock
}

func entryRows() *pgxmock.Rows {
	return pgxmock.NewRows(columns)
}

func TestRepo_ListAll(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM word_entries ORDER BY word_id`).
		WillReturnRows(entryRows().
			AddRow(int32(1), int64(11), "你好", "你好", "ni3 hao3", "nǐ hǎo",
				[]string{"hello", "hi"}, []byte(`[]`), []int16{3, 3}, int16(1)).
			AddRow(int32(2), int64(-5), "書", "书", "shu1", "shū",
				[]string{"book"}, []byte(`[{"traditional":"本","simplified":"本","pinyinMarks":"běn","pinyinNumbers":"ben3"}]`),
				[]int16{1}, int16(0)))

	got, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "你好", got[0].Simplified)
	assert.Equal(t, uint32(1), got[0].WordID)
	assert.Equal(t, uint8(1), got[0].HSK)
	assert.Equal(t, []uint8{3, 3}, got[0].ToneMarks)
	assert.Nil(t, got[0].MeasureWords)

	assert.Equal(t, "書", got[1].Traditional)
	assert.Equal(t, uint64(0xFFFFFFFFFFFFFFFB), got[1].Hash, "negative bigint maps back to the full uint64")
	require.Len(t, got[1].MeasureWords, 1)
	assert.Equal(t, "ben3", got[1].MeasureWords[0].PinyinNumbers)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_ListAll_BadMeasureWords(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM word_entries`).
		WillReturnRows(entryRows().
			AddRow(int32(1), int64(1), "个", "个", "ge4", "gè",
				[]string{"classifier"}, []byte(`{not json`), []int16{4}, int16(1)))

	_, err := repo.ListAll(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "measure_words")
}

func TestRepo_Load_EmptyTable(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM word_entries`).WillReturnRows(entryRows())

	_, err := repo.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrInvalidDataset)
}

func TestRepo_Load_QueryError(t *testing.T) {
	repo, mock := newMockRepo(t)
	dbErr := errors.New("connection reset")

	mock.ExpectQuery(`SELECT (.+) FROM word_entries`).WillReturnError(dbErr)

	_, err := repo.Load(context.Background())
	assert.ErrorIs(t, err, dbErr)
}

func TestRepo_GetByHash(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM word_entries WHERE hash = \$1`).
		WithArgs(int64(42)).
		WillReturnRows(entryRows().
			AddRow(int32(7), int64(42), "天氣", "天气", "tian1 qi4", "tiānqì",
				[]string{"weather"}, []byte(`[]`), []int16{1, 4}, int16(1)))

	got, err := repo.GetByHash(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, "天气", got.Simplified)
	assert.Equal(t, uint32(7), got.WordID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_GetByHash_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM word_entries WHERE hash = \$1`).
		WithArgs(int64(99)).
		WillReturnRows(entryRows())

	_, err := repo.GetByHash(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepo_FindBySimplified(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM word_entries WHERE simplified = \$1 ORDER BY word_id`).
		WithArgs("还").
		WillReturnRows(entryRows().
			AddRow(int32(3), int64(3), "還", "还", "hai2", "hái", []string{"still"}, []byte(`[]`), []int16{2}, int16(2)).
			AddRow(int32(4), int64(4), "還", "还", "huan2", "huán", []string{"to return"}, []byte(`[]`), []int16{2}, int16(0)))

	got, err := repo.FindBySimplified(context.Background(), "还")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "hai2", got[0].PinyinNumbers)
	assert.Equal(t, "huan2", got[1].PinyinNumbers)
}

func TestRepo_Count(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM word_entries`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(218)))

	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 218, n)
}

func TestRepo_MaxWordID(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT coalesce\(max\(word_id\), 0\) FROM word_entries`).
		WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(int32(0)))

	n, err := repo.MaxWordID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint32(0), n)
}

func TestRepo_RecordImport(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.New()

	mock.ExpectExec(`INSERT INTO dataset_imports`).
		WithArgs(id, "cedict", "abc123", int32(10), int32(8), int32(2), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	got, err := repo.RecordImport(context.Background(), domain.DatasetImport{
		ID:         id,
		Source:     "cedict",
		Checksum:   "abc123",
		Entries:    10,
		Inserted:   8,
		HSKUpdated: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, id, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_RecordImport_GeneratesID(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`INSERT INTO dataset_imports`).
		WithArgs(pgxmock.AnyArg(), "embedded", "", int32(0), int32(0), int32(0), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	got, err := repo.RecordImport(context.Background(), domain.DatasetImport{Source: "embedded"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got)
}

func TestRepo_BulkInsert_Empty(t *testing.T) {
	repo, mock := newMockRepo(t)

	n, err := repo.BulkInsert(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_UpdateHSK_Empty(t *testing.T) {
	repo, mock := newMockRepo(t)

	n, err := repo.UpdateHSK(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	require.NoError(t, mock.ExpectationsWereMet())
}
