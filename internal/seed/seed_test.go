package seed

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type fakeSeeder struct {
	calls   int
	created bool
	err     error
}

func (f *fakeSeeder) EnsureOperator(_ context.Context, _, _ string) (bool, error) {
	f.calls++
	return f.created, f.err
}

func TestCreateDefaultData(t *testing.T) {
	tests := []struct {
		name      string
		username  string
		password  string
		seeder    *fakeSeeder
		wantCalls int
		wantErr   bool
	}{
		{"no password skips", "admin", "", &fakeSeeder{}, 0, false},
		{"creates", "admin", "pw", &fakeSeeder{created: true}, 1, false},
		{"already exists", "admin", "pw", &fakeSeeder{}, 1, false},
		{"store failure", "admin", "pw", &fakeSeeder{err: errors.New("db down")}, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CreateDefaultData(context.Background(), tt.seeder, tt.username, tt.password, zerolog.Nop())
			assert.Equal(t, tt.wantErr, err != nil)
			assert.Equal(t, tt.wantCalls, tt.seeder.calls)
		})
	}
}
