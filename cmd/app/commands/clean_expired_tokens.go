package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	authUseCase "github.com/allisson/idvault/internal/auth/usecase"
)

// RunCleanExpiredTokens deletes bearer tokens that expired more than days ago.
// With dryRun set it only reports how many tokens would be deleted.
func RunCleanExpiredTokens(
	ctx context.Context,
	tokenUseCase authUseCase.TokenUseCase,
	logger *slog.Logger,
	writer io.Writer,
	days int,
	dryRun bool,
	format string,
) error {
	if days < 0 {
		return fmt.Errorf("days must be a positive number, got: %d", days)
	}
	if err := validateFormat(format); err != nil {
		return err
	}

	logger.Info("cleaning expired tokens",
		slog.Int("days", days),
		slog.Bool("dry_run", dryRun),
	)

	count, err := tokenUseCase.CleanupExpired(ctx, days, dryRun)
	if err != nil {
		return fmt.Errorf("failed to cleanup expired tokens: %w", err)
	}

	if format == FormatJSON {
		err = writeJSON(writer, map[string]any{
			"count":   count,
			"days":    days,
			"dry_run": dryRun,
		})
	} else if dryRun {
		_, err = fmt.Fprintf(writer, "Dry-run mode: Would delete %d expired token(s) older than %d day(s)\n", count, days)
	} else {
		_, err = fmt.Fprintf(writer, "Successfully deleted %d expired token(s) older than %d day(s)\n", count, days)
	}
	if err != nil {
		return err
	}

	logger.Info("cleanup completed",
		slog.Int64("count", count),
		slog.Int("days", days),
		slog.Bool("dry_run", dryRun),
	)

	return nil
}
