package seed

import (
	"context"

	"github.com/rs/zerolog"
)

// OperatorSeeder creates an operator account when the username is free
type OperatorSeeder interface {
	EnsureOperator(ctx context.Context, username, password string) (bool, error)
}

// CreateDefaultData creates the default operator account if it doesn't exist.
// An empty default password disables seeding.
func CreateDefaultData(ctx context.Context, operators OperatorSeeder, username, password string, lgr zerolog.Logger) error {
	if password == "" {
		lgr.Warn().Msg("No default operator password configured, skipping operator seeding")
		return nil
	}

	lgr.Info().Str("username", username).Msg("Checking default operator...")
	created, err := operators.EnsureOperator(ctx, username, password)
	if err != nil {
		lgr.Error().Err(err).Msg("Error creating default operator")
		return err
	}

	if created {
		lgr.Info().Str("username", username).Msg("Default operator created successfully")
	} else {
		lgr.Info().Msg("Default operator already exists, skipping creation")
	}
	return nil
}
