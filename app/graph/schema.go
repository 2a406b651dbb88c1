// Package graph exposes the menu and the caller's orders as a read-only
// GraphQL schema:
//
//	{ menu(search: "pizza") { food_id food_name discounted_price } }
//	{ orders { order_id food_name total_price status } }
package graph

import (
	"context"
	"errors"
	"time"

	"github.com/graphql-go/graphql"

	"github.com/shashiranjanraj/foodhub/app/models"
	"github.com/shashiranjanraj/foodhub/app/pricing"
	"github.com/shashiranjanraj/foodhub/app/services"
	gql "github.com/shashiranjanraj/foodhub/pkg/graphql"
	"github.com/shashiranjanraj/foodhub/pkg/middleware"
)

type couponKey struct{}

// WithCoupon makes the caller's coupon visible to price resolvers.
func WithCoupon(ctx context.Context, c *pricing.Coupon) context.Context {
	return context.WithValue(ctx, couponKey{}, c)
}

func couponFrom(ctx context.Context) *pricing.Coupon {
	c, _ := ctx.Value(couponKey{}).(*pricing.Coupon)
	return c
}

var errLogin = errors.New("please log in first")

var foodType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Food",
	Fields: graphql.Fields{
		"food_id":          &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"food_name":        &graphql.Field{Type: graphql.String},
		"category":         &graphql.Field{Type: graphql.String},
		"price":            &graphql.Field{Type: graphql.String},
		"discount_percent": &graphql.Field{Type: graphql.String},
		"discounted_price": &graphql.Field{Type: graphql.String},
		"available":        &graphql.Field{Type: graphql.Boolean},
		"image_url":        &graphql.Field{Type: graphql.String},
	},
})

var orderType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Order",
	Fields: graphql.Fields{
		"order_id":         &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"food_id":          &graphql.Field{Type: graphql.Int},
		"food_name":        &graphql.Field{Type: graphql.String},
		"customer_name":    &graphql.Field{Type: graphql.String},
		"quantity":         &graphql.Field{Type: graphql.Int},
		"total_price":      &graphql.Field{Type: graphql.String},
		"status":           &graphql.Field{Type: graphql.String},
		"delivery_option":  &graphql.Field{Type: graphql.String},
		"delivery_service": &graphql.Field{Type: graphql.String},
		"order_date":       &graphql.Field{Type: graphql.String},
		"paid":             &graphql.Field{Type: graphql.Boolean},
		"payment_method":   &graphql.Field{Type: graphql.String},
	},
})

// NewSchema builds the schema over the menu and order services.
func NewSchema(menu *services.MenuService, orders *services.OrderService) (graphql.Schema, error) {
	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"menu": &graphql.Field{
				Type: graphql.NewList(foodType),
				Args: graphql.FieldConfigArgument{
					"search":   &graphql.ArgumentConfig{Type: graphql.String},
					"category": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					search, _ := p.Args["search"].(string)
					category, _ := p.Args["category"].(string)
					m, err := menu.Browse(p.Context, search, category, couponFrom(p.Context))
					if err != nil {
						return nil, err
					}
					out := make([]map[string]interface{}, len(m.Foods))
					for i, f := range m.Foods {
						out[i] = foodFields(f)
					}
					return out, nil
				},
			},
			"categories": &graphql.Field{
				Type: graphql.NewList(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					m, err := menu.Browse(p.Context, "", "", nil)
					if err != nil {
						return nil, err
					}
					return m.Categories, nil
				},
			},
			"food": &graphql.Field{
				Type: foodType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(int)
					f, err := menu.Find(p.Context, uint(id), couponFrom(p.Context))
					if errors.Is(err, services.ErrNotFound) {
						return nil, nil
					}
					if err != nil {
						return nil, err
					}
					return foodFields(*f), nil
				},
			},
			"orders": &graphql.Field{
				Type: graphql.NewList(orderType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					scope, err := ownerScope(p.Context)
					if err != nil {
						return nil, err
					}
					views, err := orders.List(p.Context, scope)
					if err != nil {
						return nil, err
					}
					out := make([]map[string]interface{}, len(views))
					for i, v := range views {
						out[i] = orderFields(v)
					}
					return out, nil
				},
			},
			"order": &graphql.Field{
				Type: orderType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					scope, err := ownerScope(p.Context)
					if err != nil {
						return nil, err
					}
					id, _ := p.Args["id"].(int)
					v, err := orders.Get(p.Context, uint(id), scope)
					if errors.Is(err, services.ErrNotFound) {
						return nil, nil
					}
					if err != nil {
						return nil, err
					}
					return orderFields(*v), nil
				},
			},
		},
	})
	return gql.NewSchema(query)
}

func ownerScope(ctx context.Context) (string, error) {
	id, ok := middleware.IdentityFromContext(ctx)
	if !ok {
		return "", errLogin
	}
	if id.IsAdmin() {
		return "", nil
	}
	return id.Username, nil
}

func foodFields(f services.PricedFood) map[string]interface{} {
	m := map[string]interface{}{
		"food_id":          int(f.ID),
		"food_name":        f.Name,
		"category":         f.Category,
		"price":            f.Price.StringFixed(2),
		"discounted_price": f.DiscountedPrice.StringFixed(2),
		"available":        f.Available,
		"discount_percent": nil,
		"image_url":        nil,
	}
	if f.DiscountPercent.Valid {
		m["discount_percent"] = f.DiscountPercent.Decimal.String()
	}
	if f.ImageURL != nil {
		m["image_url"] = *f.ImageURL
	}
	return m
}

func orderFields(v models.OrderView) map[string]interface{} {
	m := map[string]interface{}{
		"order_id":         int(v.ID),
		"food_id":          int(v.FoodID),
		"food_name":        v.FoodName,
		"customer_name":    v.CustomerName,
		"quantity":         v.Quantity,
		"total_price":      v.TotalPrice.StringFixed(2),
		"status":           v.Status,
		"delivery_option":  v.DeliveryOption,
		"delivery_service": v.DeliveryService,
		"order_date":       v.OrderDate.Format(time.RFC3339),
		"paid":             v.Paid(),
		"payment_method":   nil,
	}
	if v.PaymentMethod != nil {
		m["payment_method"] = *v.PaymentMethod
	}
	return m
}
