package repository

import (
	"voicedeck/internal/model"

	"go.mongodb.org/mongo-driver/bson"
)

// orgFilter builds the base query for an org, optionally bounded on a
// timestamp field. A nil range means unbounded.
func orgFilter(orgID, timeField string, rng *model.DateRange) bson.M {
	filter := bson.M{"orgId": orgID}
	if rng != nil {
		filter[timeField] = bson.M{"$gte": rng.Start, "$lte": rng.End}
	}
	return filter
}
