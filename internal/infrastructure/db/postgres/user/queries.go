package user

import (
	"asset-manager-api/internal/infrastructure/sqlbuilder"
)

const userColumns = "id, pid, role, client_id, root_folder, password_hash, created_at"

type queries struct {
	insertUser      string
	selectUserByID  string
	selectUserByPID string
	deleteUserByID  string
}

func buildQueries(b sqlbuilder.Backend) (queries, error) {
	byID, err := sqlbuilder.NewFilters("id", 1).ToQuery(b)
	if err != nil {
		return queries{}, err
	}
	byPID, err := sqlbuilder.NewFilters("pid", 1).ToQuery(b)
	if err != nil {
		return queries{}, err
	}

	return queries{
		insertUser: "INSERT INTO users (pid, role, client_id, root_folder, password_hash) " +
			sqlbuilder.Values{Count: 5, Offset: 1}.ToQuery(b) +
			" RETURNING " + userColumns,
		selectUserByID:  "SELECT " + userColumns + " FROM users WHERE " + byID,
		selectUserByPID: "SELECT " + userColumns + " FROM users WHERE " + byPID,
		deleteUserByID:  "DELETE FROM users WHERE " + byID,
	}, nil
}
