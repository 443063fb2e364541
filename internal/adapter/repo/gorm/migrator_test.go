package gormrepo

import (
	"testing"
	"testing/fstest"
)

func TestMigrationFiles_SortedSQLOnly(t *testing.T) {
	fsys := fstest.MapFS{
		"0002_add_index.sql": {Data: []byte("SELECT 1;")},
		"0001_init.sql":      {Data: []byte("SELECT 1;")},
		"README.md":          {Data: []byte("notes")},
		"archive/0000.sql":   {Data: []byte("SELECT 0;")},
	}

	files, err := migrationFiles(fsys)
	if err != nil {
		t.Fatalf("migrationFiles: %v", err)
	}
	if len(files) != 2 || files[0] != "0001_init.sql" || files[1] != "0002_add_index.sql" {
		t.Fatalf("unexpected files: %v", files)
	}
}
