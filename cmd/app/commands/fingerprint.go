package commands

import (
	"bufio"
	"fmt"
	"strings"

	identityDomain "github.com/allisson/idvault/internal/identity/domain"
	identityService "github.com/allisson/idvault/internal/identity/service"
)

// RunFingerprint validates an identifier and prints its fingerprint. It needs neither
// the identity key nor a database.
//
// When identifier is empty it is read from the first line of io.Reader, which keeps it
// out of shell history.
func RunFingerprint(identifier string, format string, io IOTuple) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	if identifier == "" && io.Reader != nil {
		line, err := bufio.NewReader(io.Reader).ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("failed to read identifier: %w", err)
		}
		identifier = strings.TrimRight(line, "\r\n")
	}

	normalized, err := identityDomain.NormalizeIdentifier(identifier)
	if err != nil {
		return err
	}

	fingerprint := identityService.NewSHA256FingerprintService().Fingerprint(normalized)

	if format == FormatJSON {
		return writeJSON(io.Writer, map[string]string{"fingerprint": fingerprint})
	}
	_, err = fmt.Fprintln(io.Writer, fingerprint)
	return err
}
