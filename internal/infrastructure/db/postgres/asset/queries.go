package asset

import (
	"asset-manager-api/internal/infrastructure/sqlbuilder"
)

const (
	assetColumns   = "id, asset_path, custom_path, user_id, asset_type, public, created_at"
	sharingColumns = "asset_id, user_id, permission"
)

type queries struct {
	insertAsset       string
	selectAssetByPath string
	deleteAssetByID   string
	insertSharing     string
	selectSharing     string
}

func buildQueries(b sqlbuilder.Backend) (queries, error) {
	// a request path may address the asset by either its canonical or
	// its concealed path; concealment is enforced above the store
	byPath, err := sqlbuilder.NewFilters("asset_path OR custom_path", 1).
		Add("AND asset_type").
		ToQuery(b)
	if err != nil {
		return queries{}, err
	}
	byID, err := sqlbuilder.NewFilters("id", 1).ToQuery(b)
	if err != nil {
		return queries{}, err
	}
	bySharingKey, err := sqlbuilder.NewFilters("asset_id", 1).Add("AND user_id").ToQuery(b)
	if err != nil {
		return queries{}, err
	}

	return queries{
		insertAsset: "INSERT INTO assets (asset_path, custom_path, user_id, asset_type, public) " +
			sqlbuilder.Values{Count: 5, Offset: 1}.ToQuery(b) +
			" RETURNING " + assetColumns,
		selectAssetByPath: "SELECT " + assetColumns + " FROM assets WHERE " + byPath,
		deleteAssetByID:   "DELETE FROM assets WHERE " + byID,
		insertSharing: "INSERT INTO asset_sharings (asset_id, user_id, permission) " +
			sqlbuilder.Values{Count: 3, Offset: 1}.ToQuery(b),
		selectSharing: "SELECT " + sharingColumns + " FROM asset_sharings WHERE " + bySharingKey,
	}, nil
}
