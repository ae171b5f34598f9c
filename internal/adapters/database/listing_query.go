package database

import (
	"strings"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/rentnest/rentnest/backend/internal/domain/repositories"
)

// filterConditions translates a ListingFilter into goqu conditions. Pure
// translation, no I/O; pagination and ordering are applied by the caller.
func filterConditions(f repositories.ListingFilter) []goqu.Expression {
	conds := []goqu.Expression{}

	if f.OnlyAvailable {
		conds = append(conds, goqu.C("is_available").IsTrue())
	}

	if f.OwnerID != "" {
		conds = append(conds, goqu.C("owner_id").Eq(f.OwnerID))
	}

	if f.PropertyType != "" {
		conds = append(conds, goqu.C("property_type").Eq(string(f.PropertyType)))
	}

	// ILIKE without wildcards gives case-insensitive exact matching; the
	// input is escaped so user-supplied % and _ are matched literally.
	if f.Division != "" {
		conds = append(conds, goqu.C("division").ILike(escapeLikePattern(f.Division)))
	}
	if f.District != "" {
		conds = append(conds, goqu.C("district").ILike(escapeLikePattern(f.District)))
	}
	if f.Area != "" {
		conds = append(conds, goqu.C("area").ILike(escapeLikePattern(f.Area)))
	}

	if f.MinRent != nil {
		conds = append(conds, goqu.C("rent_amount").Gte(*f.MinRent))
	}
	if f.MaxRent != nil {
		conds = append(conds, goqu.C("rent_amount").Lte(*f.MaxRent))
	}

	if f.Bedrooms != nil {
		conds = append(conds, goqu.C("bedrooms").Eq(*f.Bedrooms))
	}

	if f.Furnished != "" {
		conds = append(conds, goqu.C("furnished").Eq(string(f.Furnished)))
	}

	if f.Search != "" {
		pattern := "%" + escapeLikePattern(f.Search) + "%"
		fields := []string{"title", "description", "address", "area", "district", "division"}
		ors := make([]exp.Expression, 0, len(fields))
		for _, field := range fields {
			ors = append(ors, goqu.C(field).ILike(pattern))
		}
		conds = append(conds, goqu.Or(ors...))
	}

	return conds
}

// escapeLikePattern escapes LIKE metacharacters so user input matches
// literally.
func escapeLikePattern(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}
