package dsn

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lmsforge/lms-backend/internal/config"
)

func TestCreate(t *testing.T) {
	testCases := []struct {
		name string
		db   config.DB
		want string
	}{
		{
			name: "mysql adds parseTime",
			db: config.DB{
				GormEngine: config.EngineMySQL, User: "lms", Password: "secret",
				Host: "localhost", Port: 3306, Name: "lms", Extras: "charset=utf8mb4",
			},
			want: "lms:secret@tcp(localhost:3306)/lms?charset=utf8mb4&parseTime=true",
		},
		{
			name: "mysql keeps explicit parseTime",
			db: config.DB{
				User: "lms", Password: "secret", Host: "db", Port: 3306, Name: "lms",
				Extras: "parseTime=True&loc=Local",
			},
			want: "lms:secret@tcp(db:3306)/lms?parseTime=True&loc=Local",
		},
		{
			name: "mysql without extras",
			db:   config.DB{User: "u", Password: "p", Host: "h", Port: 1, Name: "n"},
			want: "u:p@tcp(h:1)/n?parseTime=true",
		},
		{
			name: "postgres",
			db: config.DB{
				GormEngine: config.EnginePostgres, User: "lms", Password: "s3cr@t",
				Host: "pg", Port: 5432, Name: "lms", Extras: "sslmode=disable",
			},
			want: "postgres://lms:s3cr%40t@pg:5432/lms?sslmode=disable",
		},
		{
			name: "sqlite",
			db:   config.DB{GormEngine: config.EngineSQLite, SQLitePath: "lms.db"},
			want: "lms.db",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &config.Config{DB: tc.db}
			assert.Equal(t, tc.want, Create(cfg))
		})
	}
}
