package controllers

import (
	"net/http"

	"github.com/tradehub-io/tradehub-backend/api/responses"
	catalogsvc "github.com/tradehub-io/tradehub-backend/internal/catalog"
	pkgerrors "github.com/tradehub-io/tradehub-backend/pkg/errors"
	"github.com/tradehub-io/tradehub-backend/pkg/logger"
)

// ProductList serves the public storefront listing.
func ProductList(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		products, err := svc.ListProducts(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, products)
	}
}
