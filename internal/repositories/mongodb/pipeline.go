package mongodb

import (
	"go.mongodb.org/mongo-driver/bson"

	"spinwin/internal/models"
	"spinwin/internal/repositories/interfaces"
	"spinwin/internal/utils"
)

func stringExpr(field string) bson.M {
	return bson.M{"$convert": bson.M{"input": field, "to": "string", "onError": "", "onNull": ""}}
}

// canonicalExpr lowercases and trims a field; non-string values become "".
func canonicalExpr(field string) bson.M {
	return bson.M{"$toLower": bson.M{"$trim": bson.M{"input": stringExpr(field)}}}
}

// fullNameExpr is the canonical "name surname" of a spin.
func fullNameExpr() bson.M {
	return bson.M{"$toLower": bson.M{"$trim": bson.M{"input": bson.M{
		"$concat": bson.A{stringExpr("$name"), " ", stringExpr("$surname")},
	}}}}
}

// timestampExpr picks the first present timestamp field, as the normalizer does.
func timestampExpr() interface{} {
	var expr interface{} = nil
	for i := len(utils.TimestampFields) - 1; i >= 0; i-- {
		field := "$" + utils.TimestampFields[i]
		if expr == nil {
			expr = field
			continue
		}
		expr = bson.M{"$ifNull": bson.A{field, expr}}
	}
	return expr
}

// eligiblePipeline narrows spins by route, drops routes missing from the
// login registry, and applies the window to native dates. Other timestamp
// types pass through and are windowed after normalization.
func eligiblePipeline(loginCollection string, filter interfaces.SpinFilter) bson.A {
	pipeline := bson.A{
		bson.M{"$addFields": bson.M{
			"__rn": canonicalExpr("$routeName"),
			"__ts": timestampExpr(),
		}},
		bson.M{"$match": bson.M{"__rn": bson.M{"$ne": ""}, "__ts": bson.M{"$ne": nil}}},
	}

	if filter.Route != "" {
		pipeline = append(pipeline, bson.M{"$match": bson.M{"__rn": filter.Route}})
	}
	if filter.Visitor != "" {
		pipeline = append(pipeline, visitorMatch(filter.Visitor))
	}
	if window := windowMatch(filter); window != nil {
		pipeline = append(pipeline, bson.M{"$match": bson.M{"$or": bson.A{
			bson.M{"__ts": bson.M{"$not": bson.M{"$type": "date"}}},
			bson.M{"__ts": window},
		}}})
	}

	pipeline = append(pipeline,
		bson.M{"$lookup": bson.M{
			"from": loginCollection,
			"let":  bson.M{"rn": "$__rn"},
			"pipeline": bson.A{
				bson.M{"$addFields": bson.M{"__rn": canonicalExpr("$routeName")}},
				bson.M{"$match": bson.M{"$expr": bson.M{"$eq": bson.A{"$$rn", "$__rn"}}}},
				bson.M{"$limit": 1},
				bson.M{"$project": bson.M{"_id": 1}},
			},
			"as": "__registry",
		}},
		bson.M{"$match": bson.M{"__registry.0": bson.M{"$exists": true}}},
		bson.M{"$addFields": bson.M{"__at": bson.M{"$convert": bson.M{
			"input": "$__ts", "to": "date", "onError": nil, "onNull": nil,
		}}}},
	)

	if filter.Newest > 0 {
		pipeline = append(pipeline,
			bson.M{"$sort": bson.D{{Key: "__at", Value: -1}, {Key: "_id", Value: -1}}},
			bson.M{"$limit": filter.Newest},
		)
	} else {
		pipeline = append(pipeline, bson.M{"$sort": bson.D{{Key: "__at", Value: 1}, {Key: "_id", Value: 1}}})
	}

	return append(pipeline, bson.M{"$project": bson.M{"__registry": 0, "__rn": 0, "__at": 0}})
}

// visitorMatch keeps spins where any identity signal equals key. The exact
// name, then session, then IP precedence is applied after normalization.
func visitorMatch(key string) bson.M {
	candidates := bson.A{
		bson.M{"$eq": bson.A{fullNameExpr(), key}},
		bson.M{"$eq": bson.A{canonicalExpr("$ipAddress"), key}},
	}
	for _, field := range models.SessionFields {
		candidates = append(candidates, bson.M{"$eq": bson.A{canonicalExpr("$" + field), key}})
	}
	return bson.M{"$match": bson.M{"$expr": bson.M{"$or": candidates}}}
}

func windowMatch(filter interfaces.SpinFilter) bson.M {
	if filter.From == nil && filter.To == nil {
		return nil
	}
	window := bson.M{}
	if filter.From != nil {
		window["$gte"] = *filter.From
	}
	if filter.To != nil {
		window["$lte"] = *filter.To
	}
	return window
}
