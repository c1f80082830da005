package migrations

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationVersion(t *testing.T) {
	assert.Equal(t, "001", MigrationVersion("migrations/001_init.sql"))
	assert.Equal(t, "010", MigrationVersion("010_add_index_on_x.sql"))
}

func TestMigrateFromDirectory_AppliesPendingOnly(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "002_second.sql"), []byte("CREATE TABLE b (id INT);"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "001_first.sql"), []byte("CREATE TABLE a (id INT);"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("ignored"), 0o600))

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	existsQuery := regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1);")

	// 001 already applied
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectQuery(existsQuery).WithArgs("001").WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	// 002 pending
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectQuery(existsQuery).WithArgs("002").WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE b (id INT);")).WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectExec("INSERT INTO schema_migrations").WithArgs("002", pgxmock.AnyArg()).WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	m := NewMigrator(mock, zerolog.Nop())
	require.NoError(t, m.MigrateFromDirectory(context.Background(), dir))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func readSchema(t *testing.T) string {
	t.Helper()
	content, err := os.ReadFile(filepath.Join("..", "..", "..", "migrations", "001_init.sql"))
	require.NoError(t, err)
	return string(content)
}

// tableBody returns the column list of table, with runs of whitespace collapsed
func tableBody(t *testing.T, schema, table string) string {
	t.Helper()
	re := regexp.MustCompile(`(?s)CREATE TABLE IF NOT EXISTS ` + table + ` \((.*?)\n\);`)
	m := re.FindStringSubmatch(schema)
	require.Len(t, m, 2, "table %s not found", table)
	return strings.Join(strings.Fields(m[1]), " ")
}

func TestSchemaDeclaresIntegrityRules(t *testing.T) {
	schema := readSchema(t)

	tests := []struct {
		table string
		rules []string
	}{
		{table: "students", rules: []string{
			"batch_id BIGINT NOT NULL REFERENCES batches (batch_id) ON DELETE RESTRICT",
		}},
		{table: "exams", rules: []string{
			"course_id TEXT NOT NULL REFERENCES courses (course_id) ON DELETE CASCADE",
			"batch_id BIGINT NOT NULL REFERENCES batches (batch_id) ON DELETE CASCADE",
			"instructor_id BIGINT NOT NULL REFERENCES instructors (instructor_id) ON DELETE CASCADE",
			"CONSTRAINT exams_cutoff_within_max CHECK (cutoff_score <= max_score)",
		}},
		{table: "results", rules: []string{
			"student_id BIGINT NOT NULL REFERENCES students (reg_no) ON DELETE CASCADE",
			"exam_id BIGINT NOT NULL REFERENCES exams (exam_id) ON DELETE CASCADE",
			"status TEXT NOT NULL CHECK (status IN ('Pass', 'Fail', 'Absent'))",
			"CONSTRAINT results_student_exam_key UNIQUE (student_id, exam_id)",
		}},
		{table: "finance", rules: []string{
			"student_id BIGINT NOT NULL REFERENCES students (reg_no) ON DELETE CASCADE",
			"amount BIGINT NOT NULL CHECK (amount > 0)",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.table, func(t *testing.T) {
			body := tableBody(t, schema, tt.table)
			for _, rule := range tt.rules {
				assert.Contains(t, body, rule)
			}
		})
	}
}

func TestTableBody_IsolatesOneTable(t *testing.T) {
	body := tableBody(t, readSchema(t), "courses")
	assert.Equal(t, "course_id TEXT PRIMARY KEY, course_name TEXT NOT NULL", body)
	assert.NotContains(t, body, "REFERENCES")
}
