// Package repository implements client and token persistence for PostgreSQL and MySQL.
//
// PostgreSQL uses native UUID types, MySQL uses BINARY(16). Both go through database.GetTx()
// so calls join a transaction carried on the context.
package repository

import (
	"encoding/json"

	authDomain "github.com/allisson/idvault/internal/auth/domain"
	apperrors "github.com/allisson/idvault/internal/errors"
)

type rowScanner interface {
	Scan(dest ...any) error
}

func marshalCapabilities(capabilities []authDomain.Capability) ([]byte, error) {
	if capabilities == nil {
		capabilities = []authDomain.Capability{}
	}
	data, err := json.Marshal(capabilities)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal client capabilities")
	}
	return data, nil
}

func unmarshalCapabilities(data []byte) ([]authDomain.Capability, error) {
	var capabilities []authDomain.Capability
	if err := json.Unmarshal(data, &capabilities); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal client capabilities")
	}
	return capabilities, nil
}
