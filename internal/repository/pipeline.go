package repository

import (
	"github.com/Sodstar/mountain-pos/internal/domain"
	"github.com/Sodstar/mountain-pos/internal/infrastructure/database/mongodb"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func productMatch(query domain.ProductQuery) (bson.D, error) {
	match := bson.D{}

	if query.CategoryID != nil {
		match = append(match, bson.E{Key: "category", Value: *query.CategoryID})
	}

	if query.BrandID != nil {
		match = append(match, bson.E{Key: "brand", Value: *query.BrandID})
	}

	if query.MinPrice != nil || query.MaxPrice != nil {
		priceRange := bson.D{}
		if query.MinPrice != nil {
			minPrice, err := mongodb.ToDecimal128(*query.MinPrice)
			if err != nil {
				return nil, err
			}
			priceRange = append(priceRange, bson.E{Key: "$gte", Value: minPrice})
		}
		if query.MaxPrice != nil {
			maxPrice, err := mongodb.ToDecimal128(*query.MaxPrice)
			if err != nil {
				return nil, err
			}
			priceRange = append(priceRange, bson.E{Key: "$lte", Value: maxPrice})
		}
		match = append(match, bson.E{Key: "price", Value: priceRange})
	}

	if query.LowStock {
		match = append(match, bson.E{Key: "$expr", Value: bson.D{
			{Key: "$lt", Value: bson.A{"$stock", "$stock_alert"}},
		}})
	}

	return match, nil
}

func productSort(orderBy domain.OrderBy) bson.D {
	switch orderBy {
	case domain.OrderTitleAsc:
		return bson.D{{Key: "title", Value: 1}, {Key: "_id", Value: 1}}
	case domain.OrderTitleDesc:
		return bson.D{{Key: "title", Value: -1}, {Key: "_id", Value: 1}}
	case domain.OrderPriceAsc:
		return bson.D{{Key: "price", Value: 1}, {Key: "_id", Value: 1}}
	case domain.OrderPriceDesc:
		return bson.D{{Key: "price", Value: -1}, {Key: "_id", Value: 1}}
	case domain.OrderViewsDesc:
		return bson.D{{Key: "views", Value: -1}, {Key: "_id", Value: 1}}
	default:
		return nil
	}
}

func lookupStages(localField string, from string) []bson.D {
	return []bson.D{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: from},
			{Key: "localField", Value: localField},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: localField},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$" + localField},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
	}
}

// buildProductPipeline filters, orders and limits products, then expands the
// category and brand references.
func buildProductPipeline(query domain.ProductQuery) (mongo.Pipeline, error) {
	match, err := productMatch(query)
	if err != nil {
		return nil, err
	}

	pipeline := mongo.Pipeline{{{Key: "$match", Value: match}}}

	if sort := productSort(query.OrderBy); sort != nil {
		pipeline = append(pipeline, bson.D{{Key: "$sort", Value: sort}})
	}

	if query.Limit > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$limit", Value: int64(query.Limit)}})
	}

	pipeline = append(pipeline, lookupStages("category", categoriesCollection)...)
	pipeline = append(pipeline, lookupStages("brand", brandsCollection)...)

	return pipeline, nil
}

func buildCategoryCountPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$category"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: categoriesCollection},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "category"},
		}}},
		{{Key: "$unwind", Value: "$category"}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 1},
			{Key: "slug", Value: "$category.slug"},
			{Key: "name", Value: "$category.name"},
			{Key: "count", Value: 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "name", Value: 1}}}},
	}
}
