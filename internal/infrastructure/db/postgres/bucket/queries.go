package bucket

import (
	"asset-manager-api/internal/infrastructure/sqlbuilder"
)

const bucketColumns = "id, name, client_id, max_size, created_at"

type queries struct {
	insertBucket       string
	selectBucketByName string
}

func buildQueries(b sqlbuilder.Backend) (queries, error) {
	byName, err := sqlbuilder.NewFilters("name", 1).ToQuery(b)
	if err != nil {
		return queries{}, err
	}

	return queries{
		insertBucket: "INSERT INTO buckets (name, client_id, max_size) " +
			sqlbuilder.Values{Count: 3, Offset: 1}.ToQuery(b) +
			" RETURNING " + bucketColumns,
		selectBucketByName: "SELECT " + bucketColumns + " FROM buckets WHERE " + byName,
	}, nil
}
