package repository

import (
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tasktrack/tasktrack-api/internal/query"
)

// compileMongoFilter translates a filter into a query document. Field names
// are used as stored element names.
func compileMongoFilter(f query.Filter) (bson.D, error) {
	if f.MatchAll() {
		return bson.D{}, nil
	}

	and := make(bson.A, 0, len(f))
	for _, clause := range f {
		if len(clause) == 1 {
			cond, err := compileMongoCondition(clause[0])
			if err != nil {
				return nil, err
			}
			and = append(and, cond)
			continue
		}

		or := make(bson.A, 0, len(clause))
		for _, c := range clause {
			cond, err := compileMongoCondition(c)
			if err != nil {
				return nil, err
			}
			or = append(or, cond)
		}
		and = append(and, bson.D{{Key: "$or", Value: or}})
	}

	return bson.D{{Key: "$and", Value: and}}, nil
}

func compileMongoCondition(c query.Condition) (bson.D, error) {
	switch c.Op {
	case query.OpEq, query.OpHas:
		// equality against an array element matches membership
		return bson.D{{Key: c.Field, Value: c.Value}}, nil
	case query.OpEqFold:
		pattern := "^" + regexp.QuoteMeta(fmt.Sprint(c.Value)) + "$"
		return bson.D{{Key: c.Field, Value: primitive.Regex{Pattern: pattern, Options: "i"}}}, nil
	case query.OpContainsFold:
		pattern := regexp.QuoteMeta(fmt.Sprint(c.Value))
		return bson.D{{Key: c.Field, Value: primitive.Regex{Pattern: pattern, Options: "i"}}}, nil
	case query.OpGte:
		return bson.D{{Key: c.Field, Value: bson.D{{Key: "$gte", Value: c.Value}}}}, nil
	case query.OpLte:
		return bson.D{{Key: c.Field, Value: bson.D{{Key: "$lte", Value: c.Value}}}}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedOperator, c.Op)
	}
}

// mongoFindOptions builds the sort and window of a find.
func mongoFindOptions(sort query.Sort, window query.Window) *options.FindOptions {
	direction := 1
	if sort.Descending {
		direction = -1
	}

	opts := options.Find()
	if sort.Field != "" {
		opts.SetSort(bson.D{{Key: sort.Field, Value: direction}})
	}
	if window.Skip > 0 {
		opts.SetSkip(window.Skip)
	}
	if window.Limit > 0 {
		opts.SetLimit(window.Limit)
	}
	return opts
}

func objectIDFilter(id primitive.ObjectID) bson.D {
	return bson.D{{Key: "_id", Value: id}}
}

func objectIDsFilter(ids []primitive.ObjectID) bson.D {
	return bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}}
}
