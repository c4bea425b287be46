package controllers

import (
	"net/http"
	"strings"

	"github.com/shoptodo/shoptodo-backend/api/responses"
	"github.com/shoptodo/shoptodo-backend/api/validators"
	"github.com/shoptodo/shoptodo-backend/internal/catalog"
	"github.com/shoptodo/shoptodo-backend/internal/i18n"
	"github.com/shoptodo/shoptodo-backend/pkg/enums"
	pkgerrors "github.com/shoptodo/shoptodo-backend/pkg/errors"
	"github.com/shoptodo/shoptodo-backend/pkg/logger"
	"github.com/shoptodo/shoptodo-backend/pkg/money"
)

const maxSearchLen = 100

type productResponse struct {
	ID            int            `json:"id"`
	Name          string         `json:"name"`
	Price         int64          `json:"price"`
	PriceLabel    string         `json:"price_label"`
	Category      enums.Category `json:"category"`
	CategoryLabel string         `json:"category_label"`
}

// ProductList serves the public catalog. The language comes from ?lang= and
// falls back to Accept-Language.
func ProductList(cat *catalog.Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query, err := parseProductQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		products := cat.Filter(query)
		out := make([]productResponse, 0, len(products))
		for _, p := range products {
			p = cat.Localize(p, query.Language)
			out = append(out, productResponse{
				ID:            p.ID,
				Name:          p.Name,
				Price:         p.Price,
				PriceLabel:    money.Format(p.Price, query.Language),
				Category:      p.Category,
				CategoryLabel: i18n.CategoryLabel(p.Category, query.Language),
			})
		}
		responses.WriteSuccess(w, out)
	}
}

func parseProductQuery(r *http.Request) (catalog.Query, error) {
	values := r.URL.Query()
	q := catalog.Query{
		Search: validators.SanitizeString(values.Get("search"), maxSearchLen),
	}

	if raw := strings.TrimSpace(values.Get("category")); raw != "" && !strings.EqualFold(raw, "all") {
		category, err := enums.ParseCategory(raw)
		if err != nil {
			return q, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category").WithDetails(map[string]any{"field": "category"})
		}
		q.Category = category
	}

	sortKey, err := enums.ParseSortKey(strings.TrimSpace(values.Get("sort")))
	if err != nil {
		return q, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid sort").WithDetails(map[string]any{"field": "sort"})
	}
	q.Sort = sortKey

	if raw := strings.TrimSpace(values.Get("lang")); raw != "" {
		lang, err := enums.ParseLanguage(raw)
		if err != nil {
			return q, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid language").WithDetails(map[string]any{"field": "lang"})
		}
		q.Language = lang
	} else {
		q.Language = enums.MatchLanguage(r.Header.Get("Accept-Language"))
	}
	return q, nil
}
