package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shopcartlabs/shopcart-backend/api/responses"
	"github.com/shopcartlabs/shopcart-backend/api/validators"
	"github.com/shopcartlabs/shopcart-backend/internal/basket"
	pkgerrors "github.com/shopcartlabs/shopcart-backend/pkg/errors"
	"github.com/shopcartlabs/shopcart-backend/pkg/logger"
	"github.com/shopcartlabs/shopcart-backend/pkg/objectid"
)

// intentPublisher queues basket mutations for the worker to apply.
type intentPublisher interface {
	Publish(ctx context.Context, intent basket.Intent) error
}

type basketProductRequest struct {
	BasketID  string `json:"basket_id" validate:"required"`
	ProductID string `json:"product_id" validate:"required"`
}

// BasketCreate queues creation of an empty basket for the user.
func BasketCreate(pub intentPublisher, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if pub == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "basket publisher unavailable"))
			return
		}

		userID := chi.URLParam(r, "id")
		if err := objectid.Validate("user_id", userID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := pub.Publish(r.Context(), basket.NewCreateBasketIntent(userID)); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteAccepted(w, "Basket creation queued successfully")
	}
}

// BasketFetch returns the user's basket with products and owner loaded.
func BasketFetch(svc basket.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "basket service unavailable"))
			return
		}

		userID := chi.URLParam(r, "id")
		dto, err := svc.GetBasketByUserID(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if dto == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "Basket not found for this user"))
			return
		}

		responses.WriteSuccess(w, "Basket fetched successfully", dto)
	}
}

// BasketDelete queues deletion of the basket.
func BasketDelete(pub intentPublisher, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if pub == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "basket publisher unavailable"))
			return
		}

		basketID := chi.URLParam(r, "id")
		if err := objectid.Validate("basket_id", basketID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := pub.Publish(r.Context(), basket.NewDeleteBasketIntent(basketID)); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteAccepted(w, "Basket deletion queued successfully")
	}
}

// BasketAddProduct checks the pair exists right now, then queues the append.
// The worker re-validates on apply, so the check is advisory only.
func BasketAddProduct(svc basket.Service, pub intentPublisher, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || pub == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "basket service unavailable"))
			return
		}

		var payload basketProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.CheckAddProduct(r.Context(), payload.BasketID, payload.ProductID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := pub.Publish(r.Context(), basket.NewAddProductIntent(payload.BasketID, payload.ProductID)); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteAccepted(w, "Added product successfully to basket")
	}
}

// BasketRemoveProduct checks the basket holds the reference, then queues the removal.
func BasketRemoveProduct(svc basket.Service, pub intentPublisher, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || pub == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "basket service unavailable"))
			return
		}

		var payload basketProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.CheckRemoveProduct(r.Context(), payload.BasketID, payload.ProductID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := pub.Publish(r.Context(), basket.NewRemoveProductIntent(payload.BasketID, payload.ProductID)); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteAccepted(w, "Removed product successfully from basket")
	}
}
