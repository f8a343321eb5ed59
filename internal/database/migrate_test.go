package database

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadMigrations(t *testing.T) {
	t.Run("Embedded", func(t *testing.T) {
		migrations, err := readMigrations(migrationFiles, "migrations")

		require.NoError(t, err)
		require.NotEmpty(t, migrations)
		assert.Equal(t, 1, migrations[0].Version)
		assert.Equal(t, "init", migrations[0].Name)
		assert.Contains(t, migrations[0].SQL, "CREATE TABLE vendors")
		assert.Len(t, migrations[0].Checksum, 64)
	})

	t.Run("SchemaKeepsFullPrecision", func(t *testing.T) {
		migrations, err := readMigrations(migrationFiles, "migrations")
		require.NoError(t, err)

		last := migrations[len(migrations)-1]
		for _, column := range []string{"invoices ALTER COLUMN amount", "line_items ALTER COLUMN price", "payments ALTER COLUMN amount"} {
			assert.Contains(t, last.SQL, "ALTER TABLE "+column+" TYPE NUMERIC;")
		}

		assert.Contains(t, last.SQL, "CHECK (btrim(name) <> '')")
	})

	tests := []struct {
		name    string
		files   fstest.MapFS
		want    []int
		wantErr bool
	}{
		{
			name: "SortsByVersion",
			files: fstest.MapFS{
				"m/0010_later.sql": {Data: []byte("SELECT 2;")},
				"m/0002_first.sql": {Data: []byte("SELECT 1;")},
			},
			want: []int{2, 10},
		},
		{
			name:    "InvalidName",
			files:   fstest.MapFS{"m/init.sql": {Data: []byte("SELECT 1;")}},
			wantErr: true,
		},
		{
			name: "DuplicateVersion",
			files: fstest.MapFS{
				"m/0001_a.sql": {Data: []byte("SELECT 1;")},
				"m/01_b.sql":   {Data: []byte("SELECT 1;")},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			migrations, err := readMigrations(tt.files, "m")

			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)

			var versions []int
			for _, m := range migrations {
				versions = append(versions, m.Version)
			}

			assert.Equal(t, tt.want, versions)
		})
	}
}
