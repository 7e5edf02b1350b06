package service

import (
	"context"

	"budgie-shop/internal/repository"

	"github.com/rs/zerolog"
)

const (
	maxListedCollections = 10
	maxErrorLength       = 50
)

// DiagnosticsReport is the body of the diagnostic endpoint.
type DiagnosticsReport struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseURL      string   `json:"database_url"`
	DatabaseName     string   `json:"database_name"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
}

// EnvPresence records which database environment variables are set.
type EnvPresence struct {
	DatabaseURL  bool
	DatabaseName bool
}

type diagnosticsService struct {
	diagnostics repository.Diagnostics
	env         EnvPresence
	logger      zerolog.Logger
}

// NewDiagnosticsService creates a diagnostics service. A nil diagnostics
// means no database handle exists.
func NewDiagnosticsService(diagnostics repository.Diagnostics, env EnvPresence, logger zerolog.Logger) DiagnosticsService {
	return &diagnosticsService{
		diagnostics: diagnostics,
		env:         env,
		logger:      logger.With().Str("service", "diagnostics").Logger(),
	}
}

func (s *diagnosticsService) Report(ctx context.Context) DiagnosticsReport {
	report := DiagnosticsReport{
		Backend:          "✅ Running",
		Database:         "❌ Not Available",
		ConnectionStatus: "Not Connected",
		Collections:      []string{},
	}

	if s.diagnostics != nil {
		report.Database = "✅ Available"
		report.ConnectionStatus = "Connected"

		names, err := s.diagnostics.ListCollectionNames(ctx)
		if err != nil {
			s.logger.Warn().Err(err).Str("database", s.diagnostics.Name()).Msg("failed to list collections")
			report.Database = "⚠️  Connected but Error: " + truncate(err.Error(), maxErrorLength)
		} else {
			if len(names) > maxListedCollections {
				names = names[:maxListedCollections]
			}
			if names != nil {
				report.Collections = names
			}
			report.Database = "✅ Connected & Working"
		}
	} else {
		report.Database = "⚠️  Available but not initialized"
	}

	report.DatabaseURL = presence(s.env.DatabaseURL)
	report.DatabaseName = presence(s.env.DatabaseName)

	return report
}

func presence(set bool) string {
	if set {
		return "✅ Set"
	}
	return "❌ Not Set"
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
