package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	authDomain "github.com/allisson/idvault/internal/auth/domain"
	authUseCase "github.com/allisson/idvault/internal/auth/usecase"
)

// RunCreateClient creates an API client and prints its ID and one-time secret.
//
// capabilities is a comma-separated list such as "read,reveal". When it is empty the
// command prompts for it on io.Reader.
func RunCreateClient(
	ctx context.Context,
	clientUseCase authUseCase.ClientUseCase,
	logger *slog.Logger,
	name string,
	isActive bool,
	capabilities string,
	format string,
	io IOTuple,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("client name cannot be empty")
	}

	if strings.TrimSpace(capabilities) == "" {
		var err error
		capabilities, err = promptForCapabilities(io)
		if err != nil {
			return fmt.Errorf("failed to get capabilities: %w", err)
		}
	}

	parsed, err := authDomain.ParseCapabilities(capabilities)
	if err != nil {
		return fmt.Errorf("failed to parse capabilities: %w", err)
	}

	logger.Info("creating new client", slog.String("name", name), slog.Any("capabilities", parsed))

	output, err := clientUseCase.Create(ctx, &authDomain.CreateClientInput{
		Name:         name,
		IsActive:     isActive,
		Capabilities: parsed,
	})
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	if format == FormatJSON {
		err = writeJSON(io.Writer, map[string]any{
			"client_id":    output.ID.String(),
			"secret":       output.PlainSecret,
			"capabilities": parsed,
		})
	} else {
		err = writeClientText(io.Writer, output, parsed)
	}
	if err != nil {
		return err
	}

	logger.Info("client created successfully",
		slog.String("client_id", output.ID.String()),
		slog.String("name", name),
		slog.Bool("is_active", isActive),
	)

	return nil
}

func promptForCapabilities(io IOTuple) (string, error) {
	if io.Reader == nil {
		return "", fmt.Errorf("no input available")
	}

	names := make([]string, 0, len(authDomain.AllCapabilities))
	for _, capability := range authDomain.AllCapabilities {
		names = append(names, string(capability))
	}

	_, _ = fmt.Fprintf(io.Writer, "Available capabilities: %s\n", strings.Join(names, ", "))
	_, _ = fmt.Fprint(io.Writer, "Enter capabilities (comma-separated, e.g. 'read,write'): ")

	line, err := bufio.NewReader(io.Reader).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read capabilities: %w", err)
	}

	line = strings.TrimSpace(line)
	if line == "" {
		return "", fmt.Errorf("capabilities cannot be empty")
	}
	return line, nil
}

func writeClientText(writer io.Writer, output *authDomain.CreateClientOutput, capabilities []authDomain.Capability) error {
	names := make([]string, 0, len(capabilities))
	for _, capability := range capabilities {
		names = append(names, string(capability))
	}

	_, err := fmt.Fprintf(writer,
		"\nClient created successfully!\nClient ID: %s\nSecret: %s\nCapabilities: %s\n\n"+
			"IMPORTANT: The secret is shown only once. Store it securely.\n",
		output.ID.String(),
		output.PlainSecret,
		strings.Join(names, ","),
	)
	return err
}
