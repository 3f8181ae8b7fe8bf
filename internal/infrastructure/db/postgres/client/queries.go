package client

import (
	"asset-manager-api/internal/infrastructure/sqlbuilder"
)

const clientColumns = "id, pid, name, created_at"

type queries struct {
	insertClient      string
	selectClientByPID string
	deleteClientByID  string
}

func buildQueries(b sqlbuilder.Backend) (queries, error) {
	byPID, err := sqlbuilder.NewFilters("pid", 1).ToQuery(b)
	if err != nil {
		return queries{}, err
	}
	byID, err := sqlbuilder.NewFilters("id", 1).ToQuery(b)
	if err != nil {
		return queries{}, err
	}

	return queries{
		insertClient: "INSERT INTO clients (pid, name) " +
			sqlbuilder.Values{Count: 2, Offset: 1}.ToQuery(b) +
			" RETURNING " + clientColumns,
		selectClientByPID: "SELECT " + clientColumns + " FROM clients WHERE " + byPID,
		deleteClientByID:  "DELETE FROM clients WHERE " + byID,
	}, nil
}
